package quotation_dto

import (
	case_dto "github.com/Xenn-00/fitout-meister/internal/dtos/case-dto"
	"github.com/Xenn-00/fitout-meister/internal/entity"
)

// AuditQuotationResponse enthält die Ausschreibungsaufgabe, falls das Audit genehmigt wurde.
type AuditQuotationResponse struct {
	Quotation *entity.CaseQuotationEntity `json:"quotation"`
	Route     *case_dto.RouteResult       `json:"route,omitempty"`
}
