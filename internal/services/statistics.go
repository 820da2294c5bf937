package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"fintrack/internal/core"
)

// BuildStatistics derives month-over-month metrics from two reports. The
// current and previous month reports are built concurrently; either
// failure fails the whole computation.
func (s *FinanceService) BuildStatistics(ctx context.Context, year, month int, currency core.Currency) (core.Statistics, error) {
	prevYear, prevMonth := previousPeriod(year, month)

	var current, previous core.Report
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.BuildReport(gctx, year, month, currency)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = s.BuildReport(gctx, prevYear, prevMonth, currency)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.Statistics{}, fmt.Errorf("build statistics %d-%02d: %w", year, month, err)
	}

	totalThis := current.Totals.Expenses
	totalLast := previous.Totals.Expenses

	days := int64(core.DaysInMonth(year, month))
	averageDaily := totalThis.Div(decimal.NewFromInt(days))

	byCategory := make(map[string]decimal.Decimal)
	for _, e := range current.Expenses {
		byCategory[e.Category] = byCategory[e.Category].Add(e.Sum)
	}

	// No prior spend counts as 0% change rather than undefined.
	change := 0.0
	if totalLast.GreaterThan(decimal.Zero) {
		change, _ = totalThis.Sub(totalLast).Div(totalLast).Mul(decimal.NewFromInt(100)).Float64()
	}

	return core.Statistics{
		Year:             year,
		Month:            month,
		Currency:         currency,
		TotalThisMonth:   totalThis,
		TotalLastMonth:   totalLast,
		AverageDaily:     averageDaily,
		TotalByCategory:  byCategory,
		ChangePercentage: change,
	}, nil
}

func previousPeriod(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}
