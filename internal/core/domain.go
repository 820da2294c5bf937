package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	USD  Currency = "USD"
	ILS  Currency = "ILS"
	GBP  Currency = "GBP"
	EURO Currency = "EURO"
)

const (
	Expense           CostType = "expense"
	Income            CostType = "income"
	SavingsDeposit    CostType = "savings_deposit"
	SavingsWithdrawal CostType = "savings_withdrawal"
)

const (
	MonthlyBudget  BudgetType = "monthly"
	YearlyBudget   BudgetType = "yearly"
	CategoryBudget BudgetType = "category"
)

// DefaultCategoryColor is used for category labels seen in costs but never
// registered in the category collection.
const DefaultCategoryColor = "#9e9e9e"

type (
	Currency   string
	CostType   string
	BudgetType string

	// Date is a whole calendar day. Month is 1-12, Day is 1-31.
	Date struct {
		Year  int `json:"year"`
		Month int `json:"month"`
		Day   int `json:"day"`
	}

	Cost struct {
		ID          int64           `json:"id"`
		Sum         decimal.Decimal `json:"sum"`
		Currency    Currency        `json:"currency"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Type        CostType        `json:"type"`
		Date        Date            `json:"date"`
	}

	Category struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
		Icon  string `json:"icon,omitempty"`
	}

	// Budget scopes a spending limit. Exactly one of {Month set, Category
	// set, neither} holds, consistent with Type.
	Budget struct {
		ID       int64           `json:"id"`
		Year     int             `json:"year"`
		Month    *int            `json:"month,omitempty"`
		Amount   decimal.Decimal `json:"amount"`
		Currency Currency        `json:"currency"`
		Category *string         `json:"category,omitempty"`
		Type     BudgetType      `json:"type"`
	}

	SavingsGoal struct {
		ID           int64           `json:"id"`
		Name         string          `json:"name"`
		TargetAmount decimal.Decimal `json:"targetAmount"`
		Currency     Currency        `json:"currency"`
		TargetDate   Date            `json:"targetDate"`
	}

	// Rates maps a currency to its units per one USD.
	Rates map[Currency]float64
)

func (c Currency) Valid() bool {
	switch c {
	case USD, ILS, GBP, EURO:
		return true
	}
	return false
}

func (t CostType) Valid() bool {
	switch t {
	case Expense, Income, SavingsDeposit, SavingsWithdrawal:
		return true
	}
	return false
}

// NewDate creates a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// Ordinal returns a comparable whole-day ordinal for range checks.
func (d Date) Ordinal() int {
	return d.Year*10000 + d.Month*100 + d.Day
}

func (d Date) Validate() error {
	if d.Year <= 0 {
		return ErrInvalidYear
	}
	if d.Month < 1 || d.Month > 12 {
		return ErrInvalidMonth
	}
	if d.Day < 1 || d.Day > 31 {
		return ErrInvalidDay
	}
	return nil
}

// DaysInMonth returns the calendar day count of a month (28/29/30/31).
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (c Cost) Validate() error {
	if c.Sum.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidSum
	}
	if !c.Currency.Valid() {
		return ErrInvalidCurrency
	}
	if !c.Type.Valid() {
		return ErrInvalidCostType
	}
	if strings.TrimSpace(c.Category) == "" {
		return ErrEmptyCategory
	}
	return c.Date.Validate()
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (b Budget) Validate() error {
	if b.Year <= 0 {
		return ErrInvalidYear
	}
	if b.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidSum
	}
	if !b.Currency.Valid() {
		return ErrInvalidCurrency
	}
	switch b.Type {
	case MonthlyBudget:
		if b.Month == nil || b.Category != nil {
			return ErrInvalidBudgetScope
		}
		if *b.Month < 1 || *b.Month > 12 {
			return ErrInvalidMonth
		}
	case YearlyBudget:
		if b.Month != nil || b.Category != nil {
			return ErrInvalidBudgetScope
		}
	case CategoryBudget:
		if b.Category == nil || b.Month != nil {
			return ErrInvalidBudgetScope
		}
		if strings.TrimSpace(*b.Category) == "" {
			return ErrEmptyCategory
		}
	default:
		return ErrInvalidBudgetType
	}
	return nil
}

func (g SavingsGoal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if g.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidSum
	}
	if !g.Currency.Valid() {
		return ErrInvalidCurrency
	}
	return g.TargetDate.Validate()
}
