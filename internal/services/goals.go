package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/rates"
)

// GetGoalProgress computes progress for every savings goal: the sum of
// all savings deposits minus all withdrawals, converted into each goal's
// currency. Progress is derived on demand, never stored, so it cannot
// drift from the cost collection.
func (s *FinanceService) GetGoalProgress(ctx context.Context) ([]core.GoalProgress, error) {
	goals, err := s.store.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("goal progress: %w", err)
	}
	if len(goals) == 0 {
		return nil, nil
	}

	rateMap, err := s.rates.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("goal progress: %w", err)
	}
	costs, err := s.store.ListCosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("goal progress: %w", err)
	}

	progress := make([]core.GoalProgress, 0, len(goals))
	for _, g := range goals {
		saved, err := savedTowards(g.Currency, costs, rateMap)
		if err != nil {
			return nil, fmt.Errorf("goal %d: %w", g.ID, err)
		}
		percentage, _ := saved.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
		progress = append(progress, core.GoalProgress{
			Goal:       g,
			Saved:      saved,
			Percentage: percentage,
		})
	}
	return progress, nil
}

func savedTowards(target core.Currency, costs []core.Cost, rateMap core.Rates) (decimal.Decimal, error) {
	saved := decimal.Zero
	for _, c := range costs {
		if c.Type != core.SavingsDeposit && c.Type != core.SavingsWithdrawal {
			continue
		}
		sum, err := rates.Convert(c.Sum, c.Currency, target, rateMap)
		if err != nil {
			return decimal.Decimal{}, err
		}
		if c.Type == core.SavingsDeposit {
			saved = saved.Add(sum)
		} else {
			saved = saved.Sub(sum)
		}
	}
	return saved, nil
}
