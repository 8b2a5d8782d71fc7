package entity

import "time"

type ActivityAction string

const (
	ActivityCaseCreated       ActivityAction = "case_created"
	ActivityCaseUpdated       ActivityAction = "case_updated"
	ActivityStatusChanged     ActivityAction = "status_changed"
	ActivityTaskCreated       ActivityAction = "task_created"
	ActivityTaskCompleted     ActivityAction = "task_completed"
	ActivityTaskReassigned    ActivityAction = "task_reassigned"
	ActivityApprovalDecided   ActivityAction = "approval_decided"
	ActivityQuotationSent     ActivityAction = "quotation_submitted"
	ActivityQuotationAudited  ActivityAction = "quotation_audited"
	ActivityQuotationDecided  ActivityAction = "quotation_decided"
	ActivityBOQSubmitted      ActivityAction = "boq_submitted"
	ActivityTransactionPosted ActivityAction = "transaction_posted"
	ActivityLeadImported      ActivityAction = "lead_imported"
)

// CaseActivityEntity wird nur angehängt, nie geändert.
type CaseActivityEntity struct {
	ID         string         `json:"id"`
	CaseID     string         `json:"case_id"`
	ActorID    string         `json:"actor_id"`
	ActorName  string         `json:"actor_name"`
	Action     ActivityAction `json:"action"`
	FromStatus *CaseStatus    `json:"from_status,omitempty"`
	ToStatus   *CaseStatus    `json:"to_status,omitempty"`
	Message    string         `json:"message"`
	CreatedAt  time.Time      `json:"created_at"`
}
