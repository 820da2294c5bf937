package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"fintrack/internal/core"
)

// SQLiteRepository is the durable record store for all four collections.
// Each statement runs in its own implicit transaction, so every mutating
// operation is committed before it returns.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// isMissingTable reports whether err means the collection has not been
// created yet. Scanning such a collection degrades to an empty result
// instead of failing, so additive schema versions stay forward-compatible.
func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}

// --- costs ---

func (r *SQLiteRepository) InsertCost(ctx context.Context, c core.Cost) (core.Cost, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO costs (sum, currency, category, description, cost_type, year, month, day)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Sum.String(), string(c.Currency), c.Category, c.Description, string(c.Type),
		c.Date.Year, c.Date.Month, c.Date.Day)
	if err != nil {
		return core.Cost{}, fmt.Errorf("insert cost: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Cost{}, fmt.Errorf("insert cost id: %w", err)
	}
	c.ID = id

	slog.InfoContext(ctx, "Cost saved",
		"id", c.ID,
		"sum", c.Sum.String(),
		"currency", c.Currency,
		"category", c.Category,
		"type", c.Type)

	return c, nil
}

func (r *SQLiteRepository) GetCost(ctx context.Context, id int64) (core.Cost, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, sum, currency, category, description, cost_type, year, month, day
		 FROM costs WHERE id = ?`, id)
	c, err := scanCost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Cost{}, fmt.Errorf("cost %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Cost{}, fmt.Errorf("get cost: %w", err)
	}
	return c, nil
}

// UpdateCost applies a shallow merge: set patch fields overwrite the
// stored record, all other fields are retained.
func (r *SQLiteRepository) UpdateCost(ctx context.Context, id int64, patch core.CostPatch) (core.Cost, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Cost{}, fmt.Errorf("begin update cost: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT id, sum, currency, category, description, cost_type, year, month, day
		 FROM costs WHERE id = ?`, id)
	existing, err := scanCost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Cost{}, fmt.Errorf("cost %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Cost{}, fmt.Errorf("read cost for update: %w", err)
	}

	merged := patch.Apply(existing)
	_, err = tx.ExecContext(ctx,
		`UPDATE costs SET sum = ?, currency = ?, category = ?, description = ?, cost_type = ?,
		 year = ?, month = ?, day = ? WHERE id = ?`,
		merged.Sum.String(), string(merged.Currency), merged.Category, merged.Description,
		string(merged.Type), merged.Date.Year, merged.Date.Month, merged.Date.Day, id)
	if err != nil {
		return core.Cost{}, fmt.Errorf("update cost: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Cost{}, fmt.Errorf("commit update cost: %w", err)
	}
	return merged, nil
}

func (r *SQLiteRepository) DeleteCost(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM costs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete cost: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cost rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("cost %d: %w", id, core.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) ListCosts(ctx context.Context) ([]core.Cost, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sum, currency, category, description, cost_type, year, month, day
		 FROM costs ORDER BY id`)
	if isMissingTable(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list costs: %w", err)
	}
	defer rows.Close()

	var costs []core.Cost
	for rows.Next() {
		c, err := scanCost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cost: %w", err)
		}
		costs = append(costs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list costs: %w", err)
	}
	return costs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCost(row rowScanner) (core.Cost, error) {
	var (
		c        core.Cost
		sum      string
		currency string
		costType string
	)
	err := row.Scan(&c.ID, &sum, &currency, &c.Category, &c.Description, &costType,
		&c.Date.Year, &c.Date.Month, &c.Date.Day)
	if err != nil {
		return core.Cost{}, err
	}
	c.Sum, err = decimal.NewFromString(sum)
	if err != nil {
		return core.Cost{}, fmt.Errorf("parse stored sum %q: %w", sum, err)
	}
	c.Currency = core.Currency(currency)
	c.Type = core.CostType(costType)
	return c, nil
}

// --- categories ---

func (r *SQLiteRepository) InsertCategory(ctx context.Context, c core.Category) (core.Category, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (name, color, icon) VALUES (?, ?, ?)`,
		c.Name, c.Color, c.Icon)
	if err != nil {
		return core.Category{}, fmt.Errorf("insert category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Category{}, fmt.Errorf("insert category id: %w", err)
	}
	c.ID = id
	return c, nil
}

func (r *SQLiteRepository) GetCategory(ctx context.Context, id int64) (core.Category, error) {
	var c core.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, color, icon FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Color, &c.Icon)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, fmt.Errorf("category %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) UpdateCategory(ctx context.Context, id int64, patch core.CategoryPatch) (core.Category, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Category{}, fmt.Errorf("begin update category: %w", err)
	}
	defer tx.Rollback()

	var existing core.Category
	err = tx.QueryRowContext(ctx,
		`SELECT id, name, color, icon FROM categories WHERE id = ?`, id).
		Scan(&existing.ID, &existing.Name, &existing.Color, &existing.Icon)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, fmt.Errorf("category %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("read category for update: %w", err)
	}

	merged := patch.Apply(existing)
	_, err = tx.ExecContext(ctx,
		`UPDATE categories SET name = ?, color = ?, icon = ? WHERE id = ?`,
		merged.Name, merged.Color, merged.Icon, id)
	if err != nil {
		return core.Category{}, fmt.Errorf("update category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Category{}, fmt.Errorf("commit update category: %w", err)
	}
	return merged, nil
}

// DeleteCategory removes the registered category only. Costs referencing
// its name are untouched; there is no cascade.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("category %d: %w", id, core.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, color, icon FROM categories ORDER BY id`)
	if isMissingTable(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Icon); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// --- budgets ---

func (r *SQLiteRepository) InsertBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	var month sql.NullInt64
	if b.Month != nil {
		month = sql.NullInt64{Int64: int64(*b.Month), Valid: true}
	}
	var category sql.NullString
	if b.Category != nil {
		category = sql.NullString{String: *b.Category, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (year, month, amount, currency, category, budget_type)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.Year, month, b.Amount.String(), string(b.Currency), category, string(b.Type))
	if err != nil {
		return core.Budget{}, fmt.Errorf("insert budget: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Budget{}, fmt.Errorf("insert budget id: %w", err)
	}
	b.ID = id
	return b, nil
}

func (r *SQLiteRepository) DeleteBudget(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete budget rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("budget %d: %w", id, core.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, year, month, amount, currency, category, budget_type FROM budgets ORDER BY id`)
	if isMissingTable(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		var (
			b        core.Budget
			month    sql.NullInt64
			amount   string
			currency string
			category sql.NullString
			btype    string
		)
		if err := rows.Scan(&b.ID, &b.Year, &month, &amount, &currency, &category, &btype); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		if month.Valid {
			m := int(month.Int64)
			b.Month = &m
		}
		if category.Valid {
			c := category.String
			b.Category = &c
		}
		b.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse stored amount %q: %w", amount, err)
		}
		b.Currency = core.Currency(currency)
		b.Type = core.BudgetType(btype)
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

// --- savings goals ---

func (r *SQLiteRepository) InsertGoal(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO savings_goals (name, target_amount, currency, target_year, target_month, target_day)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		g.Name, g.TargetAmount.String(), string(g.Currency),
		g.TargetDate.Year, g.TargetDate.Month, g.TargetDate.Day)
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("insert savings goal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("insert savings goal id: %w", err)
	}
	g.ID = id
	return g, nil
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, id int64, patch core.SavingsGoalPatch) (core.SavingsGoal, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("begin update savings goal: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT id, name, target_amount, currency, target_year, target_month, target_day
		 FROM savings_goals WHERE id = ?`, id)
	existing, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.SavingsGoal{}, fmt.Errorf("savings goal %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("read savings goal for update: %w", err)
	}

	merged := patch.Apply(existing)
	_, err = tx.ExecContext(ctx,
		`UPDATE savings_goals SET name = ?, target_amount = ?, currency = ?,
		 target_year = ?, target_month = ?, target_day = ? WHERE id = ?`,
		merged.Name, merged.TargetAmount.String(), string(merged.Currency),
		merged.TargetDate.Year, merged.TargetDate.Month, merged.TargetDate.Day, id)
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("update savings goal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.SavingsGoal{}, fmt.Errorf("commit update savings goal: %w", err)
	}
	return merged, nil
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM savings_goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete savings goal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete savings goal rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("savings goal %d: %w", id, core.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) ListGoals(ctx context.Context) ([]core.SavingsGoal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, target_amount, currency, target_year, target_month, target_day
		 FROM savings_goals ORDER BY id`)
	if isMissingTable(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}
	defer rows.Close()

	var goals []core.SavingsGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan savings goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}
	return goals, nil
}

func scanGoal(row rowScanner) (core.SavingsGoal, error) {
	var (
		g        core.SavingsGoal
		amount   string
		currency string
	)
	err := row.Scan(&g.ID, &g.Name, &amount, &currency,
		&g.TargetDate.Year, &g.TargetDate.Month, &g.TargetDate.Day)
	if err != nil {
		return core.SavingsGoal{}, err
	}
	g.TargetAmount, err = decimal.NewFromString(amount)
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("parse stored target amount %q: %w", amount, err)
	}
	g.Currency = core.Currency(currency)
	return g, nil
}

// --- settings ---

func (r *SQLiteRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) || isMissingTable(err) {
		return "", fmt.Errorf("setting %q: %w", key, core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

func (r *SQLiteRepository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}
