package finance_dto

import "github.com/Xenn-00/fitout-meister/internal/entity"

type AddTransactionResponse struct {
	Transaction *entity.TransactionEntity `json:"transaction"`
	CostCenter  *entity.CostCenterEntity  `json:"cost_center"`
}
