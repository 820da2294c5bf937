package amqp

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// BudgetAlertMessage carries a budget evaluation that crossed the warning
// or exceeded threshold. Consumers fetch nothing extra, the message is
// self-contained.
type BudgetAlertMessage struct {
	BudgetID   int64             `json:"budgetId"`
	BudgetType core.BudgetType   `json:"budgetType"`
	Year       int               `json:"year"`
	Month      *int              `json:"month,omitempty"`
	Category   *string           `json:"category,omitempty"`
	Status     core.BudgetStatus `json:"status"`
	Amount     decimal.Decimal   `json:"amount"`
	Spent      decimal.Decimal   `json:"spent"`
	Percentage float64           `json:"percentage"`
	Currency   core.Currency     `json:"currency"`
	Timestamp  time.Time         `json:"timestamp"`
}

// NewBudgetAlertMessage builds an alert message from an evaluation.
func NewBudgetAlertMessage(eval core.BudgetEvaluation) *BudgetAlertMessage {
	return &BudgetAlertMessage{
		BudgetID:   eval.Budget.ID,
		BudgetType: eval.Budget.Type,
		Year:       eval.Budget.Year,
		Month:      eval.Budget.Month,
		Category:   eval.Budget.Category,
		Status:     eval.Status,
		Amount:     eval.Budget.Amount,
		Spent:      eval.Spent,
		Percentage: eval.Percentage,
		Currency:   eval.Budget.Currency,
		Timestamp:  time.Now(),
	}
}

func (m *BudgetAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func BudgetAlertMessageFromJSON(data []byte) (*BudgetAlertMessage, error) {
	var msg BudgetAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
