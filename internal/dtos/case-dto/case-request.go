package case_dto

import (
	"time"

	"github.com/Xenn-00/fitout-meister/internal/entity"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type ParamCaseID struct {
	ID string `params:"case_id" validate:"required,uuid"`
}

type ParamTaskID struct {
	ID string `params:"task_id" validate:"required,uuid"`
}

type CreateCaseRequest struct {
	ClientName    string           `json:"client_name" validate:"required,min=2,max=200"`
	ProjectName   string           `json:"project_name" validate:"omitempty,max=200"`
	Email         string           `json:"email" validate:"omitempty,email"`
	Mobile        string           `json:"mobile" validate:"omitempty,min=6,max=20"`
	SiteAddress   string           `json:"site_address" validate:"omitempty,max=500"`
	Source        string           `json:"source" validate:"omitempty,max=100"`
	Priority      *string          `json:"priority,omitempty" validate:"omitempty,casePriority"`
	Budget        *decimal.Decimal `json:"budget,omitempty"`
	AssignedSales *string          `json:"assigned_sales,omitempty" validate:"omitempty,uuid"`
}

type UpdateCaseRequest struct {
	ClientName          *string           `json:"client_name,omitempty" validate:"omitempty,min=2,max=200"`
	ProjectName         *string           `json:"project_name,omitempty" validate:"omitempty,max=200"`
	Email               *string           `json:"email,omitempty" validate:"omitempty,email"`
	Mobile              *string           `json:"mobile,omitempty" validate:"omitempty,min=6,max=20"`
	SiteAddress         *string           `json:"site_address,omitempty" validate:"omitempty,max=500"`
	Source              *string           `json:"source,omitempty" validate:"omitempty,max=100"`
	Priority            *string           `json:"priority,omitempty" validate:"omitempty,casePriority"`
	Budget              *decimal.Decimal  `json:"budget,omitempty"`
	AssignedSales       *string           `json:"assigned_sales,omitempty" validate:"omitempty,uuid"`
	AssignedProcurement *string           `json:"assigned_procurement,omitempty" validate:"omitempty,uuid"`
	AssignedTeam        map[string]string `json:"assigned_team,omitempty" validate:"omitempty,dive,keys,userRole,endkeys,omitempty,uuid"`
}

type CaseListFilter struct {
	Status    *string `query:"status" validate:"omitempty,caseStatus"`
	IsProject *bool   `query:"is_project"`
	Search    *string `query:"q" validate:"omitempty,max=100"`
	Limit     int     `query:"limit" validate:"omitempty,min=1,max=100"`
	Page      int     `query:"page" validate:"omitempty,min=1"`
}

// TransitionRequest: from_status ist der Status, den der Aufrufer gesehen hat.
// Weicht er vom gespeicherten ab, antwortet der Router mit 409.
type TransitionRequest struct {
	FromStatus string `json:"from_status" validate:"required"`
	ToStatus   string `json:"to_status" validate:"required"`
}

type ReassignTaskRequest struct {
	AssigneeID string     `json:"assignee_id" validate:"required,uuid"`
	Deadline   *time.Time `json:"deadline,omitempty"`
}

type TaskListFilter struct {
	Status *string `query:"status" validate:"omitempty,taskStatus"`
	Limit  int     `query:"limit" validate:"omitempty,min=1,max=100"`
	Page   int     `query:"page" validate:"omitempty,min=1"`
}

type ActivityListFilter struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=200"`
	Page  int `query:"page" validate:"omitempty,min=1"`
}

func IsValidCaseStatus(fl validator.FieldLevel) bool {
	return entity.CaseStatus(fl.Field().String()).IsValid()
}

func IsValidCasePriority(fl validator.FieldLevel) bool {
	return entity.CasePriority(fl.Field().String()).IsValid()
}

func IsValidUserRole(fl validator.FieldLevel) bool {
	return entity.UserRole(fl.Field().String()).IsValid()
}

func IsValidTaskStatus(fl validator.FieldLevel) bool {
	switch entity.TaskStatus(fl.Field().String()) {
	case entity.TaskPending, entity.TaskStarted, entity.TaskCompleted:
		return true
	default:
		return false
	}
}
