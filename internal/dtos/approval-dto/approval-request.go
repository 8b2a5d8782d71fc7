package approval_dto

import (
	"time"

	"github.com/Xenn-00/fitout-meister/internal/entity"
	"github.com/go-playground/validator/v10"
)

type ParamApprovalID struct {
	ID string `params:"approval_id" validate:"required,uuid"`
}

type SubmitApprovalRequest struct {
	RequestType string  `json:"request_type" validate:"required,requestType"`
	Description string  `json:"description" validate:"required,min=3,max=2000"`
	CaseID      *string `json:"case_id,omitempty" validate:"omitempty,uuid"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,casePriority"`
	// TargetRole fehlt meist, dann gilt die Rolle aus dem Antragstyp
	TargetRole *string `json:"target_role,omitempty" validate:"omitempty,userRole"`
}

type ApproveRequest struct {
	AssigneeID *string    `json:"assignee_id,omitempty" validate:"omitempty,uuid"`
	Comments   *string    `json:"comments,omitempty" validate:"omitempty,max=2000"`
	Deadline   *time.Time `json:"deadline,omitempty"`
}

type RejectRequest struct {
	Comments string `json:"comments" validate:"max=2000"`
}

// EditReviewRequest entscheidet einen bereits entschiedenen Antrag neu.
type EditReviewRequest struct {
	Decision   string     `json:"decision" validate:"required,oneof=Approved Rejected"`
	AssigneeID *string    `json:"assignee_id,omitempty" validate:"omitempty,uuid"`
	Comments   *string    `json:"comments,omitempty" validate:"omitempty,max=2000"`
	Deadline   *time.Time `json:"deadline,omitempty"`
}

type ApprovalListFilter struct {
	Status      *string `query:"status" validate:"omitempty,oneof=Pending Approved Rejected"`
	RequestType *string `query:"request_type" validate:"omitempty,requestType"`
	Mine        bool    `query:"mine"`
	Limit       int     `query:"limit" validate:"omitempty,min=1,max=100"`
	Page        int     `query:"page" validate:"omitempty,min=1"`
}

func IsValidRequestType(fl validator.FieldLevel) bool {
	return entity.RequestType(fl.Field().String()).IsValid()
}
