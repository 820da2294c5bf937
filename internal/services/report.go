package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/rates"
)

// BuildReport aggregates one month's costs into per-type buckets with
// every amount converted into the target currency. A failed rate fetch
// fails the whole report; a month with no costs yields empty buckets and
// zero totals, which is a valid result.
func (s *FinanceService) BuildReport(ctx context.Context, year, month int, target core.Currency) (core.Report, error) {
	if !target.Valid() {
		return core.Report{}, core.ErrInvalidCurrency
	}

	rateMap, err := s.rates.Fetch(ctx)
	if err != nil {
		return core.Report{}, fmt.Errorf("build report %d-%02d: %w", year, month, err)
	}

	costs, err := s.CostsByMonth(ctx, year, month)
	if err != nil {
		return core.Report{}, fmt.Errorf("build report %d-%02d: %w", year, month, err)
	}

	report := core.EmptyReport(year, month, target)
	deposits := decimal.Zero
	withdrawals := decimal.Zero

	for _, c := range costs {
		sum, err := rates.Convert(c.Sum, c.Currency, target, rateMap)
		if err != nil {
			return core.Report{}, fmt.Errorf("convert cost %d: %w", c.ID, err)
		}
		entry := core.ReportEntry{
			Sum:         sum,
			Currency:    target,
			Category:    c.Category,
			Description: c.Description,
			Date:        core.ReportDay{Day: c.Date.Day},
		}
		switch c.Type {
		case core.Expense:
			report.Expenses = append(report.Expenses, entry)
			report.Totals.Expenses = report.Totals.Expenses.Add(sum)
		case core.Income:
			report.Incomes = append(report.Incomes, entry)
			report.Totals.Incomes = report.Totals.Incomes.Add(sum)
		case core.SavingsDeposit:
			report.Savings.Deposits = append(report.Savings.Deposits, entry)
			deposits = deposits.Add(sum)
		case core.SavingsWithdrawal:
			report.Savings.Withdrawals = append(report.Savings.Withdrawals, entry)
			withdrawals = withdrawals.Add(sum)
		}
	}

	report.Totals.Savings = deposits.Sub(withdrawals)
	report.Totals.Balance = report.Totals.Incomes.Sub(report.Totals.Expenses)

	slog.DebugContext(ctx, "Report built",
		"year", year,
		"month", month,
		"currency", target,
		"costs", len(costs),
		"expenses_total", report.Totals.Expenses.String())

	return report, nil
}
