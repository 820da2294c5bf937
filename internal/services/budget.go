package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/rates"
)

// warningThreshold is the percentage at which a budget emits a warning.
const warningThreshold = 80.0

// EvaluateBudgets matches every budget against actual spend and flags
// warning/exceeded thresholds. A single budget's failure is isolated: it
// is logged and evaluated as zero spend instead of aborting the batch.
func (s *FinanceService) EvaluateBudgets(ctx context.Context) ([]core.BudgetEvaluation, error) {
	budgets, err := s.store.ListBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("evaluate budgets: %w", err)
	}

	evaluations := make([]core.BudgetEvaluation, 0, len(budgets))
	for _, b := range budgets {
		spent, err := s.spentFor(ctx, b)
		if err != nil {
			slog.WarnContext(ctx, "Budget evaluation failed, treating as zero spend",
				"budget_id", b.ID,
				"type", b.Type,
				"error", err)
			spent = decimal.Zero
		}
		eval := evaluate(b, spent)
		evaluations = append(evaluations, eval)

		if eval.Status != core.BudgetOK {
			s.publishAlert(ctx, eval)
		}
	}
	return evaluations, nil
}

// evaluate applies the threshold rules: exceeded only on strict
// spent > amount; warning at percentage >= 80 when not exceeded.
func evaluate(b core.Budget, spent decimal.Decimal) core.BudgetEvaluation {
	percentage, _ := spent.Div(b.Amount).Mul(decimal.NewFromInt(100)).Float64()

	status := core.BudgetOK
	switch {
	case spent.GreaterThan(b.Amount):
		status = core.BudgetExceeded
	case percentage >= warningThreshold:
		status = core.BudgetWarning
	}

	return core.BudgetEvaluation{
		Budget:     b,
		Spent:      spent,
		Percentage: percentage,
		Status:     status,
	}
}

func (s *FinanceService) spentFor(ctx context.Context, b core.Budget) (decimal.Decimal, error) {
	switch b.Type {
	case core.MonthlyBudget:
		// Stored rows can bypass SetBudget validation, so the scope is
		// re-checked before dereferencing.
		if b.Month == nil {
			return decimal.Decimal{}, fmt.Errorf("budget %d: %w", b.ID, core.ErrInvalidBudgetScope)
		}
		report, err := s.BuildReport(ctx, b.Year, *b.Month, b.Currency)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return report.Totals.Expenses, nil

	case core.YearlyBudget:
		// One range scan over the year instead of twelve monthly reports.
		// Per-record conversion and summing are the same, so totals are
		// numerically identical.
		rateMap, err := s.rates.Fetch(ctx)
		if err != nil {
			return decimal.Decimal{}, err
		}
		costs, err := s.CostsByDateRange(ctx, core.NewDate(b.Year, 1, 1), core.NewDate(b.Year, 12, 31))
		if err != nil {
			return decimal.Decimal{}, err
		}
		spent := decimal.Zero
		for _, c := range costs {
			if c.Type != core.Expense {
				continue
			}
			sum, err := rates.Convert(c.Sum, c.Currency, b.Currency, rateMap)
			if err != nil {
				return decimal.Decimal{}, err
			}
			spent = spent.Add(sum)
		}
		return spent, nil

	case core.CategoryBudget:
		// Category scope counts every cost carrying the label, whatever
		// its type.
		if b.Category == nil {
			return decimal.Decimal{}, fmt.Errorf("budget %d: %w", b.ID, core.ErrInvalidBudgetScope)
		}
		rateMap, err := s.rates.Fetch(ctx)
		if err != nil {
			return decimal.Decimal{}, err
		}
		costs, err := s.CostsByCategory(ctx, *b.Category)
		if err != nil {
			return decimal.Decimal{}, err
		}
		spent := decimal.Zero
		for _, c := range costs {
			sum, err := rates.Convert(c.Sum, c.Currency, b.Currency, rateMap)
			if err != nil {
				return decimal.Decimal{}, err
			}
			spent = spent.Add(sum)
		}
		return spent, nil
	}

	return decimal.Decimal{}, fmt.Errorf("budget %d: %w", b.ID, core.ErrInvalidBudgetType)
}

func (s *FinanceService) publishAlert(ctx context.Context, eval core.BudgetEvaluation) {
	if s.alerts == nil {
		return
	}
	if err := s.alerts.PublishBudgetAlert(ctx, eval); err != nil {
		// Alerting is best-effort; evaluation results are returned anyway.
		slog.ErrorContext(ctx, "Failed to publish budget alert",
			"budget_id", eval.Budget.ID,
			"status", eval.Status,
			"error", err)
	}
}
