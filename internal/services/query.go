package services

import (
	"context"

	"fintrack/internal/core"
)

// Query engine. Every filter is a full scan over the cost collection;
// the dataset is a single user's local history, so no index is kept.

// CostsByMonth returns costs whose date matches the year and month
// exactly. No cross-year wrapping.
func (s *FinanceService) CostsByMonth(ctx context.Context, year, month int) ([]core.Cost, error) {
	costs, err := s.store.ListCosts(ctx)
	if err != nil {
		return nil, err
	}
	var matched []core.Cost
	for _, c := range costs {
		if c.Date.Year == year && c.Date.Month == month {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// CostsByCategory returns costs with an exact, case-sensitive category
// match.
func (s *FinanceService) CostsByCategory(ctx context.Context, category string) ([]core.Cost, error) {
	costs, err := s.store.ListCosts(ctx)
	if err != nil {
		return nil, err
	}
	var matched []core.Cost
	for _, c := range costs {
		if c.Category == category {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// CostsByDateRange returns costs with start <= date <= end, comparing
// whole calendar days. Both ends are inclusive.
func (s *FinanceService) CostsByDateRange(ctx context.Context, start, end core.Date) ([]core.Cost, error) {
	if err := start.Validate(); err != nil {
		return nil, err
	}
	if err := end.Validate(); err != nil {
		return nil, err
	}
	costs, err := s.store.ListCosts(ctx)
	if err != nil {
		return nil, err
	}
	lo, hi := start.Ordinal(), end.Ordinal()
	var matched []core.Cost
	for _, c := range costs {
		if ord := c.Date.Ordinal(); ord >= lo && ord <= hi {
			matched = append(matched, c)
		}
	}
	return matched, nil
}
