package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	PayIn  TransactionType = "PAY_IN"
	PayOut TransactionType = "PAY_OUT"
)

func (t TransactionType) IsValid() bool {
	return t == PayIn || t == PayOut
}

const TransactionCompleted = "COMPLETED"

// TransactionEntity ist unveränderlich, Korrekturen laufen über Gegenbuchungen.
type TransactionEntity struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"project_id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	PaymentMode string          `json:"payment_mode"`
	Description string          `json:"description"`
	CreatedBy   string          `json:"created_by"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CostCenterEntity hält die laufenden Summen eines Projekts.
type CostCenterEntity struct {
	ProjectID       string          `json:"project_id"`
	TotalPayIn      decimal.Decimal `json:"total_pay_in"`
	TotalPayOut     decimal.Decimal `json:"total_pay_out"`
	RemainingBudget decimal.Decimal `json:"remaining_budget"`
	LastUpdated     time.Time       `json:"last_updated"`
}

func NewCostCenter(projectID string, now time.Time) *CostCenterEntity {
	return &CostCenterEntity{
		ProjectID:       projectID,
		TotalPayIn:      decimal.Zero,
		TotalPayOut:     decimal.Zero,
		RemainingBudget: decimal.Zero,
		LastUpdated:     now,
	}
}

// Balance = Einzahlungen - Auszahlungen.
func (c *CostCenterEntity) Balance() decimal.Decimal {
	return c.TotalPayIn.Sub(c.TotalPayOut)
}

// Apply bucht tx auf die Summen. remaining = in - out bleibt immer erhalten.
func (c *CostCenterEntity) Apply(tx *TransactionEntity) {
	switch tx.Type {
	case PayIn:
		c.TotalPayIn = c.TotalPayIn.Add(tx.Amount)
	case PayOut:
		c.TotalPayOut = c.TotalPayOut.Add(tx.Amount)
	}
	c.RemainingBudget = c.Balance()
	c.LastUpdated = tx.CreatedAt
}
