package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

func TestBuildReportSingleExpense(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	mustAddCost(t, s, "100", core.USD, "Food", core.Expense, core.NewDate(2024, 3, 10))

	report, err := s.BuildReport(ctx, 2024, 3, core.USD)
	if err != nil {
		t.Fatal(err)
	}
	if !report.Totals.Expenses.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected expenses total 100, got %s", report.Totals.Expenses)
	}
	if len(report.Expenses) != 1 {
		t.Fatalf("expected 1 expense entry, got %d", len(report.Expenses))
	}
	if report.Expenses[0].Date.Day != 10 {
		t.Fatalf("expected day 10, got %d", report.Expenses[0].Date.Day)
	}
	if report.Expenses[0].Currency != core.USD {
		t.Fatalf("entry currency should be the target currency, got %s", report.Expenses[0].Currency)
	}
}

func TestBuildReportBucketsAndTotals(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	mustAddCost(t, s, "100", core.USD, "Food", core.Expense, core.NewDate(2024, 3, 1))
	mustAddCost(t, s, "40", core.USD, "Transport", core.Expense, core.NewDate(2024, 3, 2))
	mustAddCost(t, s, "500", core.USD, "Salary", core.Income, core.NewDate(2024, 3, 3))
	mustAddCost(t, s, "60", core.USD, "Savings", core.SavingsDeposit, core.NewDate(2024, 3, 4))
	mustAddCost(t, s, "10", core.USD, "Savings", core.SavingsWithdrawal, core.NewDate(2024, 3, 5))
	mustAddCost(t, s, "999", core.USD, "Food", core.Expense, core.NewDate(2024, 4, 1)) // other month

	report, err := s.BuildReport(ctx, 2024, 3, core.USD)
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Expenses) != 2 || len(report.Incomes) != 1 ||
		len(report.Savings.Deposits) != 1 || len(report.Savings.Withdrawals) != 1 {
		t.Fatalf("bucket sizes wrong: %d/%d/%d/%d",
			len(report.Expenses), len(report.Incomes),
			len(report.Savings.Deposits), len(report.Savings.Withdrawals))
	}

	// Every bucket total equals the sum of its entries.
	sum := decimal.Zero
	for _, e := range report.Expenses {
		sum = sum.Add(e.Sum)
	}
	if !report.Totals.Expenses.Equal(sum) {
		t.Fatalf("expenses total %s != bucket sum %s", report.Totals.Expenses, sum)
	}

	if !report.Totals.Expenses.Equal(decimal.NewFromInt(140)) {
		t.Fatalf("expected expenses 140, got %s", report.Totals.Expenses)
	}
	if !report.Totals.Incomes.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected incomes 500, got %s", report.Totals.Incomes)
	}
	if !report.Totals.Savings.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected savings 50, got %s", report.Totals.Savings)
	}
	if !report.Totals.Balance.Equal(decimal.NewFromInt(360)) {
		t.Fatalf("expected balance 360, got %s", report.Totals.Balance)
	}
}

func TestBuildReportConvertsToTargetCurrency(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	mustAddCost(t, s, "100", core.USD, "Food", core.Expense, core.NewDate(2024, 3, 10))

	report, err := s.BuildReport(ctx, 2024, 3, core.ILS)
	if err != nil {
		t.Fatal(err)
	}
	want := decimal.RequireFromString("340") // 100 USD at 3.4 ILS/USD
	if !report.Totals.Expenses.Equal(want) {
		t.Fatalf("expected %s ILS, got %s", want, report.Totals.Expenses)
	}
	if report.Totals.Currency != core.ILS {
		t.Fatalf("expected totals currency ILS, got %s", report.Totals.Currency)
	}
}

func TestBuildReportEmptyMonth(t *testing.T) {
	s, _, _ := newTestService(t)

	report, err := s.BuildReport(context.Background(), 2024, 7, core.USD)
	if err != nil {
		t.Fatalf("empty month is a valid result, got error %v", err)
	}
	if len(report.Expenses) != 0 || len(report.Incomes) != 0 {
		t.Fatal("expected empty buckets")
	}
	if !report.Totals.Expenses.IsZero() || !report.Totals.Balance.IsZero() {
		t.Fatalf("expected zero totals, got %+v", report.Totals)
	}
}

func TestBuildReportRateFetchFailure(t *testing.T) {
	s, _, src := newTestService(t)
	src.err = core.ErrRateFetch

	mustNotFetch := func() {
		_, err := s.BuildReport(context.Background(), 2024, 3, core.USD)
		if !errors.Is(err, core.ErrRateFetch) {
			t.Fatalf("expected ErrRateFetch, got %v", err)
		}
	}
	mustNotFetch()
}

func TestBuildReportMissingRate(t *testing.T) {
	s, _, src := newTestService(t)
	src.rates = core.Rates{core.USD: 1} // no GBP

	mustAddCost(t, s, "100", core.GBP, "Food", core.Expense, core.NewDate(2024, 3, 10))

	_, err := s.BuildReport(context.Background(), 2024, 3, core.USD)
	if !errors.Is(err, core.ErrMissingRate) {
		t.Fatalf("expected ErrMissingRate, got %v", err)
	}
}
