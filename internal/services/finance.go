package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"fintrack/internal/core"
)

// SettingRatesURL is the settings key holding the user-chosen exchange
// rate endpoint.
const SettingRatesURL = "rates_url"

// FinanceService is the consumer-facing surface of the tracker core.
type FinanceService struct {
	store  Store
	rates  RateSource
	alerts AlertPublisher
}

func NewFinanceService(store Store, rates RateSource, alerts AlertPublisher) *FinanceService {
	return &FinanceService{
		store:  store,
		rates:  rates,
		alerts: alerts,
	}
}

// --- costs ---

func (s *FinanceService) AddCost(ctx context.Context, c core.Cost) (core.Cost, error) {
	c.Category = strings.TrimSpace(c.Category)
	if err := c.Validate(); err != nil {
		return core.Cost{}, err
	}
	return s.store.InsertCost(ctx, c)
}

func (s *FinanceService) GetAllCosts(ctx context.Context) ([]core.Cost, error) {
	return s.store.ListCosts(ctx)
}

// UpdateCost merges the patch into the stored record after validating the
// result. The read-validate-write sequence is not isolated from other
// writers, which is acceptable under the single-user model.
func (s *FinanceService) UpdateCost(ctx context.Context, id int64, patch core.CostPatch) (core.Cost, error) {
	existing, err := s.store.GetCost(ctx, id)
	if err != nil {
		return core.Cost{}, err
	}
	if err := patch.Apply(existing).Validate(); err != nil {
		return core.Cost{}, err
	}
	return s.store.UpdateCost(ctx, id, patch)
}

func (s *FinanceService) DeleteCost(ctx context.Context, id int64) error {
	return s.store.DeleteCost(ctx, id)
}

// --- categories ---

func (s *FinanceService) AddCategory(ctx context.Context, c core.Category) (core.Category, error) {
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	if c.Color == "" {
		c.Color = core.DefaultCategoryColor
	}
	return s.store.InsertCategory(ctx, c)
}

// GetCategories returns the merge view: every registered category plus a
// synthesized entry (default color, zero id) for each label observed in
// costs that was never registered. Categories are a free-text
// pseudo-foreign-key, so unregistered labels are tolerated.
func (s *FinanceService) GetCategories(ctx context.Context) ([]core.Category, error) {
	registered, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	costs, err := s.store.ListCosts(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(registered))
	for _, c := range registered {
		known[c.Name] = true
	}

	var synthesized []core.Category
	seen := make(map[string]bool)
	for _, c := range costs {
		if known[c.Category] || seen[c.Category] {
			continue
		}
		seen[c.Category] = true
		synthesized = append(synthesized, core.Category{
			Name:  c.Category,
			Color: core.DefaultCategoryColor,
		})
	}
	sort.Slice(synthesized, func(i, j int) bool { return synthesized[i].Name < synthesized[j].Name })

	return append(registered, synthesized...), nil
}

func (s *FinanceService) UpdateCategory(ctx context.Context, id int64, patch core.CategoryPatch) (core.Category, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return core.Category{}, core.ErrEmptyName
	}
	return s.store.UpdateCategory(ctx, id, patch)
}

// DeleteCategory never cascades into costs referencing the name.
func (s *FinanceService) DeleteCategory(ctx context.Context, id int64) error {
	return s.store.DeleteCategory(ctx, id)
}

// --- budgets ---

func (s *FinanceService) SetBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	return s.store.InsertBudget(ctx, b)
}

func (s *FinanceService) GetAllBudgets(ctx context.Context) ([]core.Budget, error) {
	return s.store.ListBudgets(ctx)
}

// GetBudget finds the budget matching a scope: (year, month) selects a
// monthly budget, (year, category) a category budget, a bare year the
// yearly budget.
func (s *FinanceService) GetBudget(ctx context.Context, year int, month *int, category *string) (core.Budget, error) {
	budgets, err := s.store.ListBudgets(ctx)
	if err != nil {
		return core.Budget{}, err
	}
	for _, b := range budgets {
		if b.Year != year {
			continue
		}
		switch {
		case month != nil:
			if b.Type == core.MonthlyBudget && b.Month != nil && *b.Month == *month {
				return b, nil
			}
		case category != nil:
			if b.Type == core.CategoryBudget && b.Category != nil && *b.Category == *category {
				return b, nil
			}
		default:
			if b.Type == core.YearlyBudget {
				return b, nil
			}
		}
	}
	return core.Budget{}, fmt.Errorf("budget for year %d: %w", year, core.ErrNotFound)
}

func (s *FinanceService) DeleteBudget(ctx context.Context, id int64) error {
	return s.store.DeleteBudget(ctx, id)
}

// --- savings goals ---

func (s *FinanceService) AddSavingsGoal(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error) {
	if err := g.Validate(); err != nil {
		return core.SavingsGoal{}, err
	}
	return s.store.InsertGoal(ctx, g)
}

func (s *FinanceService) GetSavingsGoals(ctx context.Context) ([]core.SavingsGoal, error) {
	return s.store.ListGoals(ctx)
}

func (s *FinanceService) UpdateSavingsGoal(ctx context.Context, id int64, patch core.SavingsGoalPatch) (core.SavingsGoal, error) {
	goals, err := s.store.ListGoals(ctx)
	if err != nil {
		return core.SavingsGoal{}, err
	}
	for _, g := range goals {
		if g.ID == id {
			if err := patch.Apply(g).Validate(); err != nil {
				return core.SavingsGoal{}, err
			}
			return s.store.UpdateGoal(ctx, id, patch)
		}
	}
	return core.SavingsGoal{}, fmt.Errorf("savings goal %d: %w", id, core.ErrNotFound)
}

func (s *FinanceService) DeleteSavingsGoal(ctx context.Context, id int64) error {
	return s.store.DeleteGoal(ctx, id)
}

// --- settings ---

func (s *FinanceService) GetRatesURL(ctx context.Context) (string, error) {
	url, err := s.store.GetSetting(ctx, SettingRatesURL)
	if errors.Is(err, core.ErrNotFound) {
		return "", nil
	}
	return url, err
}

func (s *FinanceService) SetRatesURL(ctx context.Context, url string) error {
	if strings.TrimSpace(url) == "" {
		return fmt.Errorf("%w: empty rates url", core.ErrValidation)
	}
	if err := s.store.SetSetting(ctx, SettingRatesURL, url); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Rates endpoint setting updated", "url", url)
	return nil
}

// RatesURLResolver builds the endpoint resolution chain for the rate
// provider: persisted user setting first, then the environment default.
// The rates package falls back to its hardcoded URL when both are empty.
func RatesURLResolver(settings SettingsStore, envDefault string) func(ctx context.Context) string {
	return func(ctx context.Context) string {
		if url, err := settings.GetSetting(ctx, SettingRatesURL); err == nil && url != "" {
			return url
		}
		return envDefault
	}
}
