package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

func TestBuildStatisticsMonthOverMonth(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	mustAddCost(t, s, "100", core.USD, "Food", core.Expense, core.NewDate(2024, 1, 10))
	mustAddCost(t, s, "150", core.USD, "Food", core.Expense, core.NewDate(2024, 2, 10))

	stats, err := s.BuildStatistics(ctx, 2024, 2, core.USD)
	if err != nil {
		t.Fatal(err)
	}
	if !stats.TotalThisMonth.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected totalThisMonth 150, got %s", stats.TotalThisMonth)
	}
	if !stats.TotalLastMonth.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected totalLastMonth 100, got %s", stats.TotalLastMonth)
	}
	if stats.ChangePercentage != 50 {
		t.Fatalf("expected changePercentage 50, got %v", stats.ChangePercentage)
	}
}

func TestBuildStatisticsJanuaryWrapsToPreviousYear(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	mustAddCost(t, s, "200", core.USD, "Food", core.Expense, core.NewDate(2023, 12, 20))
	mustAddCost(t, s, "100", core.USD, "Food", core.Expense, core.NewDate(2024, 1, 5))

	stats, err := s.BuildStatistics(ctx, 2024, 1, core.USD)
	if err != nil {
		t.Fatal(err)
	}
	if !stats.TotalLastMonth.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("previous period should be December of prior year, got %s", stats.TotalLastMonth)
	}
	if stats.ChangePercentage != -50 {
		t.Fatalf("expected changePercentage -50, got %v", stats.ChangePercentage)
	}
}

func TestBuildStatisticsZeroDivisionGuard(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	// Spend this month, nothing last month.
	mustAddCost(t, s, "150", core.USD, "Food", core.Expense, core.NewDate(2024, 2, 10))

	stats, err := s.BuildStatistics(ctx, 2024, 2, core.USD)
	if err != nil {
		t.Fatal(err)
	}
	if stats.ChangePercentage != 0 {
		t.Fatalf("no prior spend must mean 0%% change, got %v", stats.ChangePercentage)
	}
}

func TestBuildStatisticsAverageDaily(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	// April has 30 days: 90 total -> 3/day.
	mustAddCost(t, s, "90", core.USD, "Food", core.Expense, core.NewDate(2024, 4, 10))

	stats, err := s.BuildStatistics(ctx, 2024, 4, core.USD)
	if err != nil {
		t.Fatal(err)
	}
	if !stats.AverageDaily.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("expected averageDaily 3, got %s", stats.AverageDaily)
	}

	// February of a leap year has 29 days.
	mustAddCost(t, s, "58", core.USD, "Food", core.Expense, core.NewDate(2024, 2, 1))
	stats, err = s.BuildStatistics(ctx, 2024, 2, core.USD)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := stats.AverageDaily.Float64()
	if math.Abs(got-2) > 1e-9 {
		t.Fatalf("expected averageDaily 2 for leap February, got %v", got)
	}
}

func TestBuildStatisticsTotalByCategory(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	mustAddCost(t, s, "100", core.USD, "Food", core.Expense, core.NewDate(2024, 3, 1))
	mustAddCost(t, s, "50", core.USD, "Food", core.Expense, core.NewDate(2024, 3, 2))
	mustAddCost(t, s, "30", core.USD, "Transport", core.Expense, core.NewDate(2024, 3, 3))
	mustAddCost(t, s, "500", core.USD, "Salary", core.Income, core.NewDate(2024, 3, 4)) // not an expense

	stats, err := s.BuildStatistics(ctx, 2024, 3, core.USD)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats.TotalByCategory) != 2 {
		t.Fatalf("expected 2 expense categories, got %d", len(stats.TotalByCategory))
	}
	if !stats.TotalByCategory["Food"].Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected Food 150, got %s", stats.TotalByCategory["Food"])
	}
	if !stats.TotalByCategory["Transport"].Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected Transport 30, got %s", stats.TotalByCategory["Transport"])
	}
}

func TestBuildStatisticsRateFailurePropagates(t *testing.T) {
	s, _, src := newTestService(t)
	src.err = core.ErrRateFetch

	if _, err := s.BuildStatistics(context.Background(), 2024, 2, core.USD); !errors.Is(err, core.ErrRateFetch) {
		t.Fatalf("expected ErrRateFetch, got %v", err)
	}
}
