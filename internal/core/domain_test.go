package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{NewDate(0, 1, 1), false},
		{NewDate(2025, 0, 1), false},
		{NewDate(2025, 13, 1), false},
		{NewDate(2025, 1, 0), false},
		{NewDate(2025, 1, 32), false},
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateOrdinalOrdering(t *testing.T) {
	if NewDate(2023, 12, 31).Ordinal() >= NewDate(2024, 1, 1).Ordinal() {
		t.Fatal("year boundary ordering broken")
	}
	if NewDate(2024, 1, 31).Ordinal() >= NewDate(2024, 2, 1).Ordinal() {
		t.Fatal("month boundary ordering broken")
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{2024, 1, 31},
		{2024, 2, 29}, // leap year
		{2023, 2, 28},
		{2024, 4, 30},
		{2024, 12, 31},
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.year, tc.month); got != tc.want {
			t.Fatalf("DaysInMonth(%d, %d) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestCostValidate(t *testing.T) {
	good := Cost{
		Sum:      decimal.NewFromInt(100),
		Currency: USD,
		Category: "Food",
		Type:     Expense,
		Date:     NewDate(2024, 3, 10),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Cost{
		{Sum: decimal.Zero, Currency: USD, Category: "c", Type: Expense, Date: NewDate(2024, 1, 1)},
		{Sum: decimal.NewFromInt(-1), Currency: USD, Category: "c", Type: Expense, Date: NewDate(2024, 1, 1)},
		{Sum: decimal.NewFromInt(1), Currency: "YEN", Category: "c", Type: Expense, Date: NewDate(2024, 1, 1)},
		{Sum: decimal.NewFromInt(1), Currency: USD, Category: "c", Type: "loan", Date: NewDate(2024, 1, 1)},
		{Sum: decimal.NewFromInt(1), Currency: USD, Category: "", Type: Expense, Date: NewDate(2024, 1, 1)},
		{Sum: decimal.NewFromInt(1), Currency: USD, Category: "c", Type: Expense, Date: NewDate(2024, 13, 1)},
	}
	for i, c := range bads {
		err := c.Validate()
		if err == nil {
			t.Fatalf("case %d expected error", i)
		}
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d: error %v should match ErrValidation", i, err)
		}
	}
}

func TestBudgetValidateScope(t *testing.T) {
	month := 3
	category := "Food"
	amount := decimal.NewFromInt(200)

	cases := []struct {
		name string
		b    Budget
		ok   bool
	}{
		{"monthly ok", Budget{Year: 2024, Month: &month, Amount: amount, Currency: USD, Type: MonthlyBudget}, true},
		{"yearly ok", Budget{Year: 2024, Amount: amount, Currency: USD, Type: YearlyBudget}, true},
		{"category ok", Budget{Year: 2024, Category: &category, Amount: amount, Currency: USD, Type: CategoryBudget}, true},
		{"monthly without month", Budget{Year: 2024, Amount: amount, Currency: USD, Type: MonthlyBudget}, false},
		{"monthly with category", Budget{Year: 2024, Month: &month, Category: &category, Amount: amount, Currency: USD, Type: MonthlyBudget}, false},
		{"yearly with month", Budget{Year: 2024, Month: &month, Amount: amount, Currency: USD, Type: YearlyBudget}, false},
		{"category without category", Budget{Year: 2024, Amount: amount, Currency: USD, Type: CategoryBudget}, false},
		{"unknown type", Budget{Year: 2024, Amount: amount, Currency: USD, Type: "weekly"}, false},
		{"zero amount", Budget{Year: 2024, Month: &month, Amount: decimal.Zero, Currency: USD, Type: MonthlyBudget}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.b.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSavingsGoalValidate(t *testing.T) {
	good := SavingsGoal{
		Name:         "Vacation",
		TargetAmount: decimal.NewFromInt(5000),
		Currency:     EURO,
		TargetDate:   NewDate(2025, 6, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (SavingsGoal{TargetAmount: decimal.NewFromInt(1), Currency: USD, TargetDate: NewDate(2025, 1, 1)}).Validate(); err == nil {
		t.Fatal("expected error for empty name")
	}
}
