package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type QuotationStatus string

const (
	QuotationPendingApproval QuotationStatus = "Pending Approval"
	QuotationApproved        QuotationStatus = "Approved"
	QuotationRejected        QuotationStatus = "Rejected"
)

type AuditStatus string

const (
	AuditNone     AuditStatus = "none"
	AuditPending  AuditStatus = "pending"
	AuditApproved AuditStatus = "approved"
	AuditRejected AuditStatus = "rejected"
)

type QuotationItem struct {
	ItemID      string          `json:"item_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
}

// LineTotal = Menge * Einzelpreis, ohne Rabatt.
func (i QuotationItem) LineTotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

type CaseQuotationEntity struct {
	ID              string          `json:"id"`
	CaseID          string          `json:"case_id"`
	QuotationNumber string          `json:"quotation_number"`
	Version         int             `json:"version"`
	Items           []QuotationItem `json:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	Status          QuotationStatus `json:"status"`
	AuditStatus     AuditStatus     `json:"audit_status"`
	AuditedBy       *string         `json:"audited_by,omitempty"`
	DecidedBy       *string         `json:"decided_by,omitempty"`
	PRCode          *string         `json:"pr_code,omitempty"`
	SubmittedBy     string          `json:"submitted_by"`
	SubmittedAt     time.Time       `json:"submitted_at"`
}

// QuotationTotals berechnet Summen aus den Positionen.
// tax = (total - discount) * taxRate, grand = total - discount + tax.
func QuotationTotals(items []QuotationItem, taxRate decimal.Decimal) (total, discount, tax, grand decimal.Decimal) {
	total, discount = decimal.Zero, decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
		discount = discount.Add(it.Discount)
	}
	tax = total.Sub(discount).Mul(taxRate).Round(2)
	grand = total.Sub(discount).Add(tax)
	return total, discount, tax, grand
}

// Redacted liefert eine Kopie ohne pr_code, für Kunden und Rollen ohne Einkaufsrechte.
func (q CaseQuotationEntity) Redacted() CaseQuotationEntity {
	q.PRCode = nil
	q.Items = append([]QuotationItem(nil), q.Items...)
	return q
}

// CanSeePRCode: nur Verwaltung, Einkauf und Buchhaltung sehen den internen Code.
func CanSeePRCode(role UserRole) bool {
	return role == RoleAdmin || role == RoleProcurementTeam || role == RoleAccountsTeam
}

// ExternalQuotation ist die Darstellung für den Kunden. Sie hat bewusst kein pr_code-Feld.
type ExternalQuotation struct {
	QuotationNumber string          `json:"quotation_number"`
	Version         int             `json:"version"`
	ClientName      string          `json:"client_name"`
	ProjectName     string          `json:"project_name"`
	Items           []QuotationItem `json:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	IssuedAt        time.Time       `json:"issued_at"`
}

func ToExternalQuotation(q *CaseQuotationEntity, c *CaseEntity) ExternalQuotation {
	return ExternalQuotation{
		QuotationNumber: q.QuotationNumber,
		Version:         q.Version,
		ClientName:      c.ClientName,
		ProjectName:     c.ProjectName,
		Items:           q.Items,
		TotalAmount:     q.TotalAmount,
		DiscountAmount:  q.DiscountAmount,
		TaxAmount:       q.TaxAmount,
		GrandTotal:      q.GrandTotal,
		IssuedAt:        q.SubmittedAt,
	}
}

type BOQItem struct {
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

type BOQStatus string

const (
	BOQSubmitted BOQStatus = "Submitted"
	BOQApproved  BOQStatus = "Approved"
)

type CaseBOQEntity struct {
	ID          string          `json:"id"`
	CaseID      string          `json:"case_id"`
	Items       []BOQItem       `json:"items"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Status      BOQStatus       `json:"status"`
	SubmittedBy string          `json:"submitted_by"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

func BOQTotal(items []BOQItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Quantity.Mul(it.EstimatedCost))
	}
	return sum
}
