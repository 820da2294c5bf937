package core

import "github.com/shopspring/decimal"

type (
	// ReportDay is the simplified per-line date of a report. The report
	// already scopes to one month, so only the day survives.
	ReportDay struct {
		Day int `json:"day"`
	}

	// ReportEntry is a cost converted into the report's target currency.
	ReportEntry struct {
		Sum         decimal.Decimal `json:"sum"`
		Currency    Currency        `json:"currency"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        ReportDay       `json:"date"`
	}

	SavingsBuckets struct {
		Deposits    []ReportEntry `json:"deposits"`
		Withdrawals []ReportEntry `json:"withdrawals"`
	}

	Totals struct {
		Expenses decimal.Decimal `json:"expenses"`
		Incomes  decimal.Decimal `json:"incomes"`
		Savings  decimal.Decimal `json:"savings"`
		Balance  decimal.Decimal `json:"balance"`
		Currency Currency        `json:"currency"`
	}

	// Report aggregates one month's costs into per-type buckets, all
	// amounts converted into a single target currency.
	Report struct {
		Year     int            `json:"year"`
		Month    int            `json:"month"`
		Currency Currency       `json:"currency"`
		Expenses []ReportEntry  `json:"expenses"`
		Incomes  []ReportEntry  `json:"incomes"`
		Savings  SavingsBuckets `json:"savings"`
		Totals   Totals         `json:"totals"`
	}

	// Statistics carries month-over-month derived metrics.
	Statistics struct {
		Year             int                        `json:"year"`
		Month            int                        `json:"month"`
		Currency         Currency                   `json:"currency"`
		TotalThisMonth   decimal.Decimal            `json:"totalThisMonth"`
		TotalLastMonth   decimal.Decimal            `json:"totalLastMonth"`
		AverageDaily     decimal.Decimal            `json:"averageDaily"`
		TotalByCategory  map[string]decimal.Decimal `json:"totalByCategory"`
		ChangePercentage float64                    `json:"changePercentage"`
	}

	BudgetStatus string

	// BudgetEvaluation is the outcome of matching one budget against
	// actual spend.
	BudgetEvaluation struct {
		Budget     Budget          `json:"budget"`
		Spent      decimal.Decimal `json:"spent"`
		Percentage float64         `json:"percentage"`
		Status     BudgetStatus    `json:"status"`
	}

	// GoalProgress is a computed view over the cost collection, never
	// stored.
	GoalProgress struct {
		Goal       SavingsGoal     `json:"goal"`
		Saved      decimal.Decimal `json:"saved"`
		Percentage float64         `json:"percentage"`
	}
)

const (
	BudgetOK       BudgetStatus = "ok"
	BudgetWarning  BudgetStatus = "warning"
	BudgetExceeded BudgetStatus = "exceeded"
)

// EmptyReport returns a valid zero-total report for a month with no costs.
func EmptyReport(year, month int, currency Currency) Report {
	return Report{
		Year:     year,
		Month:    month,
		Currency: currency,
		Totals: Totals{
			Expenses: decimal.Zero,
			Incomes:  decimal.Zero,
			Savings:  decimal.Zero,
			Balance:  decimal.Zero,
			Currency: currency,
		},
	}
}
