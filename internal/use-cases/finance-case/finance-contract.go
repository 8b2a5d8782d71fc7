package finance_case

import (
	"context"

	finance_dto "github.com/Xenn-00/fitout-meister/internal/dtos/finance-dto"
	"github.com/Xenn-00/fitout-meister/internal/entity"
	app_errors "github.com/Xenn-00/fitout-meister/internal/errors"
)

type FinanceServiceContract interface {
	AddTransaction(ctx context.Context, session entity.Session, req *finance_dto.AddTransactionRequest) (*finance_dto.AddTransactionResponse, *app_errors.AppError)
	GetCostCenter(ctx context.Context, session entity.Session, projectID string) (*entity.CostCenterEntity, *app_errors.AppError)
	ListCostCenters(ctx context.Context, session entity.Session) ([]entity.CostCenterEntity, *app_errors.AppError)
	ListTransactions(ctx context.Context, session entity.Session, projectID string, filter finance_dto.TransactionListFilter) ([]entity.TransactionEntity, *app_errors.AppError)
}
