package entity

import "time"

type TaskType string

const (
	TaskSiteVisit          TaskType = "SITE_VISIT"
	TaskDrawing            TaskType = "DRAWING"
	TaskBOQ                TaskType = "BOQ"
	TaskQuotation          TaskType = "QUOTATION"
	TaskProcurementAudit   TaskType = "PROCUREMENT_AUDIT"
	TaskProcurementBidding TaskType = "PROCUREMENT_BIDDING"
	TaskExecution          TaskType = "EXECUTION"
)

func (t TaskType) IsValid() bool {
	switch t {
	case TaskSiteVisit, TaskDrawing, TaskBOQ, TaskQuotation, TaskProcurementAudit,
		TaskProcurementBidding, TaskExecution:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskPending   TaskStatus = "Pending"
	TaskStarted   TaskStatus = "Started"
	TaskCompleted TaskStatus = "Completed"
)

func (s TaskStatus) IsActive() bool {
	return s == TaskPending || s == TaskStarted
}

// CaseTaskEntity ist eine Arbeitseinheit zu einem Case. AssignedTo nil heißt: liegt in der Rollen-Queue.
type CaseTaskEntity struct {
	ID             string       `json:"id"`
	CaseID         string       `json:"case_id"`
	Type           TaskType     `json:"type"`
	AssignedRole   UserRole     `json:"assigned_role"`
	AssignedTo     *string      `json:"assigned_to,omitempty"`
	AssignedBy     string       `json:"assigned_by"`
	Status         TaskStatus   `json:"status"`
	Priority       CasePriority `json:"priority"`
	Deadline       *time.Time   `json:"deadline,omitempty"`
	Notes          string       `json:"notes"`
	CreatedAt      time.Time    `json:"created_at"`
	StartedAt      *time.Time   `json:"started_at,omitempty"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty"`
	LastReminderAt *time.Time   `json:"last_reminder_at,omitempty"`
}

// OverdueTask ist die Projektion, die der Worker für Erinnerungen braucht.
type OverdueTask struct {
	ID             string     `json:"id"`
	CaseID         string     `json:"case_id"`
	OrgID          string     `json:"org_id"`
	ClientName     string     `json:"client_name"`
	Type           TaskType   `json:"type"`
	AssignedTo     string     `json:"assigned_to"`
	Deadline       time.Time  `json:"deadline"`
	LastReminderAt *time.Time `json:"last_reminder_at,omitempty"`
}

type TaskFilter struct {
	CaseID     *string
	AssignedTo *string
	Status     *TaskStatus
	Limit      int
	Offset     int
}
