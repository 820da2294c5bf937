// Package memory provides an in-memory record store with the same
// contract as the SQLite repository. It backs tests and the
// DATA_BACKEND=memory mode.
package memory

import (
	"context"
	"fmt"
	"sync"

	"fintrack/internal/core"
)

type Store struct {
	mu sync.Mutex

	nextCostID     int64
	nextCategoryID int64
	nextBudgetID   int64
	nextGoalID     int64

	costs      []core.Cost
	categories []core.Category
	budgets    []core.Budget
	goals      []core.SavingsGoal
	settings   map[string]string
}

func New() *Store {
	return &Store{settings: make(map[string]string)}
}

// --- costs ---

func (s *Store) InsertCost(_ context.Context, c core.Cost) (core.Cost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCostID++
	c.ID = s.nextCostID
	s.costs = append(s.costs, c)
	return c, nil
}

func (s *Store) GetCost(_ context.Context, id int64) (core.Cost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.costs {
		if c.ID == id {
			return c, nil
		}
	}
	return core.Cost{}, fmt.Errorf("cost %d: %w", id, core.ErrNotFound)
}

func (s *Store) UpdateCost(_ context.Context, id int64, patch core.CostPatch) (core.Cost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.costs {
		if c.ID == id {
			merged := patch.Apply(c)
			s.costs[i] = merged
			return merged, nil
		}
	}
	return core.Cost{}, fmt.Errorf("cost %d: %w", id, core.ErrNotFound)
}

func (s *Store) DeleteCost(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.costs {
		if c.ID == id {
			s.costs = append(s.costs[:i], s.costs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("cost %d: %w", id, core.ErrNotFound)
}

func (s *Store) ListCosts(_ context.Context) ([]core.Cost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Cost(nil), s.costs...), nil
}

// --- categories ---

func (s *Store) InsertCategory(_ context.Context, c core.Category) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCategoryID++
	c.ID = s.nextCategoryID
	s.categories = append(s.categories, c)
	return c, nil
}

func (s *Store) GetCategory(_ context.Context, id int64) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return core.Category{}, fmt.Errorf("category %d: %w", id, core.ErrNotFound)
}

func (s *Store) UpdateCategory(_ context.Context, id int64, patch core.CategoryPatch) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.categories {
		if c.ID == id {
			merged := patch.Apply(c)
			s.categories[i] = merged
			return merged, nil
		}
	}
	return core.Category{}, fmt.Errorf("category %d: %w", id, core.ErrNotFound)
}

func (s *Store) DeleteCategory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("category %d: %w", id, core.ErrNotFound)
}

func (s *Store) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.categories...), nil
}

// --- budgets ---

func (s *Store) InsertBudget(_ context.Context, b core.Budget) (core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextBudgetID++
	b.ID = s.nextBudgetID
	s.budgets = append(s.budgets, b)
	return b, nil
}

func (s *Store) DeleteBudget(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.budgets {
		if b.ID == id {
			s.budgets = append(s.budgets[:i], s.budgets[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("budget %d: %w", id, core.ErrNotFound)
}

func (s *Store) ListBudgets(_ context.Context) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Budget(nil), s.budgets...), nil
}

// --- savings goals ---

func (s *Store) InsertGoal(_ context.Context, g core.SavingsGoal) (core.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextGoalID++
	g.ID = s.nextGoalID
	s.goals = append(s.goals, g)
	return g, nil
}

func (s *Store) UpdateGoal(_ context.Context, id int64, patch core.SavingsGoalPatch) (core.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.goals {
		if g.ID == id {
			merged := patch.Apply(g)
			s.goals[i] = merged
			return merged, nil
		}
	}
	return core.SavingsGoal{}, fmt.Errorf("savings goal %d: %w", id, core.ErrNotFound)
}

func (s *Store) DeleteGoal(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.goals {
		if g.ID == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("savings goal %d: %w", id, core.ErrNotFound)
}

func (s *Store) ListGoals(_ context.Context) ([]core.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.SavingsGoal(nil), s.goals...), nil
}

// --- settings ---

func (s *Store) GetSetting(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.settings[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("setting %q: %w", key, core.ErrNotFound)
}

func (s *Store) SetSetting(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}
