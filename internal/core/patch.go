package core

import "github.com/shopspring/decimal"

// Patch types carry partial updates. Nil fields are left untouched; set
// fields overwrite the stored value (shallow merge).
type (
	CostPatch struct {
		Sum         *decimal.Decimal `json:"sum,omitempty"`
		Currency    *Currency        `json:"currency,omitempty"`
		Category    *string          `json:"category,omitempty"`
		Description *string          `json:"description,omitempty"`
		Type        *CostType        `json:"type,omitempty"`
		Date        *Date            `json:"date,omitempty"`
	}

	CategoryPatch struct {
		Name  *string `json:"name,omitempty"`
		Color *string `json:"color,omitempty"`
		Icon  *string `json:"icon,omitempty"`
	}

	SavingsGoalPatch struct {
		Name         *string          `json:"name,omitempty"`
		TargetAmount *decimal.Decimal `json:"targetAmount,omitempty"`
		Currency     *Currency        `json:"currency,omitempty"`
		TargetDate   *Date            `json:"targetDate,omitempty"`
	}
)

// Apply merges the patch into c and returns the result.
func (p CostPatch) Apply(c Cost) Cost {
	if p.Sum != nil {
		c.Sum = *p.Sum
	}
	if p.Currency != nil {
		c.Currency = *p.Currency
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Date != nil {
		c.Date = *p.Date
	}
	return c
}

// Apply merges the patch into c and returns the result.
func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	return c
}

// Apply merges the patch into g and returns the result.
func (p SavingsGoalPatch) Apply(g SavingsGoal) SavingsGoal {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.TargetAmount != nil {
		g.TargetAmount = *p.TargetAmount
	}
	if p.Currency != nil {
		g.Currency = *p.Currency
	}
	if p.TargetDate != nil {
		g.TargetDate = *p.TargetDate
	}
	return g
}
