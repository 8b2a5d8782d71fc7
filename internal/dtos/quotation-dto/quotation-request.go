package quotation_dto

import "github.com/shopspring/decimal"

type ParamQuotationID struct {
	ID string `params:"quotation_id" validate:"required,uuid"`
}

type QuotationItemInput struct {
	ItemID      string          `json:"item_id" validate:"omitempty,max=64"`
	Description string          `json:"description" validate:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
}

type SubmitQuotationRequest struct {
	Items []QuotationItemInput `json:"items" validate:"required,min=1,dive"`
}

type BOQItemInput struct {
	Name          string          `json:"name" validate:"required,max=200"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit" validate:"required,max=20"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

type SubmitBOQRequest struct {
	Items []BOQItemInput `json:"items" validate:"required,min=1,dive"`
}

type AuditQuotationRequest struct {
	Decision string  `json:"decision" validate:"required,oneof=approved rejected"`
	PRCode   *string `json:"pr_code,omitempty" validate:"omitempty,max=64"`
}

type DecideQuotationRequest struct {
	Decision string `json:"decision" validate:"required,oneof=Approved Rejected"`
}
