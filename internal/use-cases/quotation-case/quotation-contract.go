package quotation_case

import (
	"context"

	quotation_dto "github.com/Xenn-00/fitout-meister/internal/dtos/quotation-dto"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
)

type QuotationServiceContract interface {
	SubmitBOQ(ctx context.Context, session entity.Session, caseID string, req *quotation_dto.SubmitBOQRequest) (*entity.CaseBOQEntity, *app_errors.AppError)
	ListBOQs(ctx context.Context, session entity.Session, caseID string) ([]entity.CaseBOQEntity, *app_errors.AppError)
	SubmitQuotation(ctx context.Context, session entity.Session, caseID string, req *quotation_dto.SubmitQuotationRequest) (*entity.CaseQuotationEntity, *app_errors.AppError)
	ListQuotations(ctx context.Context, session entity.Session, caseID string) ([]entity.CaseQuotationEntity, *app_errors.AppError)
	GetQuotation(ctx context.Context, session entity.Session, quotationID string) (*entity.CaseQuotationEntity, *app_errors.AppError)
	AuditQuotation(ctx context.Context, session entity.Session, quotationID string, req *quotation_dto.AuditQuotationRequest) (*quotation_dto.AuditQuotationResponse, *app_errors.AppError)
	DecideQuotation(ctx context.Context, session entity.Session, quotationID string, req *quotation_dto.DecideQuotationRequest) (*entity.CaseQuotationEntity, *app_errors.AppError)
	ExternalQuotation(ctx context.Context, session entity.Session, quotationID string) (*entity.ExternalQuotation, *app_errors.AppError)
}
