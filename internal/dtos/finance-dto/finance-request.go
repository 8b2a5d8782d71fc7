package finance_dto

import (
	"time"

	"github.com/Xenn-00/fitout-meister/internal/entity"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type ParamProjectID struct {
	ID string `params:"project_id" validate:"required,uuid"`
}

// AddTransactionRequest: amount > 0 prüft der Service, der Validator kennt decimal nicht.
type AddTransactionRequest struct {
	ProjectID   string          `json:"project_id" validate:"required,uuid"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type" validate:"required,txType"`
	Category    string          `json:"category" validate:"omitempty,max=100"`
	Date        *time.Time      `json:"date,omitempty"`
	PaymentMode string          `json:"payment_mode" validate:"omitempty,max=50"`
	Description string          `json:"description" validate:"omitempty,max=1000"`
}

type TransactionListFilter struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=200"`
	Page  int `query:"page" validate:"omitempty,min=1"`
}

func IsValidTransactionType(fl validator.FieldLevel) bool {
	return entity.TransactionType(fl.Field().String()).IsValid()
}
