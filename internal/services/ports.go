// Package services holds the finance engine: queries, reports,
// statistics, budget evaluation and the consumer-facing API surface the
// UI layer calls.
package services

import (
	"context"

	"fintrack/internal/core"
)

// Ports for the storage and rate backends. Both the SQLite repository
// and the in-memory store satisfy Store.
type (
	CostStore interface {
		InsertCost(ctx context.Context, c core.Cost) (core.Cost, error)
		GetCost(ctx context.Context, id int64) (core.Cost, error)
		UpdateCost(ctx context.Context, id int64, patch core.CostPatch) (core.Cost, error)
		DeleteCost(ctx context.Context, id int64) error
		ListCosts(ctx context.Context) ([]core.Cost, error)
	}

	CategoryStore interface {
		InsertCategory(ctx context.Context, c core.Category) (core.Category, error)
		GetCategory(ctx context.Context, id int64) (core.Category, error)
		UpdateCategory(ctx context.Context, id int64, patch core.CategoryPatch) (core.Category, error)
		DeleteCategory(ctx context.Context, id int64) error
		ListCategories(ctx context.Context) ([]core.Category, error)
	}

	BudgetStore interface {
		InsertBudget(ctx context.Context, b core.Budget) (core.Budget, error)
		DeleteBudget(ctx context.Context, id int64) error
		ListBudgets(ctx context.Context) ([]core.Budget, error)
	}

	GoalStore interface {
		InsertGoal(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error)
		UpdateGoal(ctx context.Context, id int64, patch core.SavingsGoalPatch) (core.SavingsGoal, error)
		DeleteGoal(ctx context.Context, id int64) error
		ListGoals(ctx context.Context) ([]core.SavingsGoal, error)
	}

	SettingsStore interface {
		GetSetting(ctx context.Context, key string) (string, error)
		SetSetting(ctx context.Context, key, value string) error
	}

	Store interface {
		CostStore
		CategoryStore
		BudgetStore
		GoalStore
		SettingsStore
	}

	// RateSource provides the current exchange rate map.
	RateSource interface {
		Fetch(ctx context.Context) (core.Rates, error)
	}

	// AlertPublisher receives budget threshold signals. A nil publisher
	// disables alerting.
	AlertPublisher interface {
		PublishBudgetAlert(ctx context.Context, eval core.BudgetEvaluation) error
	}
)
