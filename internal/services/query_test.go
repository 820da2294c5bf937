package services

import (
	"context"
	"testing"

	"fintrack/internal/core"
)

func TestCostsByMonthExactMatch(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	jan := mustAddCost(t, s, "10", core.USD, "Food", core.Expense, core.NewDate(2024, 1, 15))
	mustAddCost(t, s, "20", core.USD, "Food", core.Expense, core.NewDate(2024, 2, 15))
	mustAddCost(t, s, "30", core.USD, "Food", core.Expense, core.NewDate(2023, 1, 15)) // other year

	got, err := s.CostsByMonth(ctx, 2024, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != jan.ID {
		t.Fatalf("expected only the 2024-01 cost, got %+v", got)
	}
}

func TestCostsByCategoryCaseSensitive(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	food := mustAddCost(t, s, "10", core.USD, "Food", core.Expense, core.NewDate(2024, 1, 1))
	mustAddCost(t, s, "10", core.USD, "food", core.Expense, core.NewDate(2024, 1, 2))

	got, err := s.CostsByCategory(ctx, "Food")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != food.ID {
		t.Fatalf("category match must be case-sensitive, got %+v", got)
	}
}

func TestCostsByDateRangeInclusiveBounds(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	mustAddCost(t, s, "1", core.USD, "x", core.Expense, core.NewDate(2023, 12, 31)) // before
	first := mustAddCost(t, s, "2", core.USD, "x", core.Expense, core.NewDate(2024, 1, 1))
	mid := mustAddCost(t, s, "3", core.USD, "x", core.Expense, core.NewDate(2024, 1, 15))
	last := mustAddCost(t, s, "4", core.USD, "x", core.Expense, core.NewDate(2024, 1, 31))
	mustAddCost(t, s, "5", core.USD, "x", core.Expense, core.NewDate(2024, 2, 1)) // after

	got, err := s.CostsByDateRange(ctx, core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 costs within January, got %d", len(got))
	}
	wantIDs := map[int64]bool{first.ID: true, mid.ID: true, last.ID: true}
	for _, c := range got {
		if !wantIDs[c.ID] {
			t.Fatalf("unexpected cost %d in range result", c.ID)
		}
	}
}

func TestCostsByDateRangeInvalidDate(t *testing.T) {
	s, _, _ := newTestService(t)
	if _, err := s.CostsByDateRange(context.Background(), core.NewDate(2024, 13, 1), core.NewDate(2024, 12, 31)); err == nil {
		t.Fatal("expected validation error for invalid start date")
	}
}
