package entity

import "time"

type RequestType string

const (
	RequestLeave           RequestType = "LEAVE"
	RequestSiteVisitToken  RequestType = "SITE_VISIT_TOKEN"
	RequestDesignChange    RequestType = "DESIGN_CHANGE"
	RequestSourcingToken   RequestType = "SOURCING_TOKEN"
	RequestMaterialRequest RequestType = "MATERIAL_REQUEST"
	RequestPaymentRequest  RequestType = "PAYMENT_REQUEST"
	RequestOther           RequestType = "OTHER"
)

func (t RequestType) IsValid() bool {
	switch t {
	case RequestLeave, RequestSiteVisitToken, RequestDesignChange, RequestSourcingToken,
		RequestMaterialRequest, RequestPaymentRequest, RequestOther:
		return true
	}
	return false
}

// TargetRole ist die Rolle, an die ein genehmigter Antrag delegiert wird.
func (t RequestType) TargetRole() UserRole {
	switch t {
	case RequestSiteVisitToken:
		return RoleSiteEngineer
	case RequestDesignChange:
		return RoleDrawingTeam
	case RequestSourcingToken, RequestMaterialRequest:
		return RoleProcurementTeam
	case RequestPaymentRequest:
		return RoleAccountsTeam
	default:
		return RoleManager
	}
}

// DelegatesWork: alles außer Urlaub braucht bei Genehmigung einen Bearbeiter und eine Frist.
func (t RequestType) DelegatesWork() bool {
	return t != RequestLeave
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "Pending"
	ApprovalApproved ApprovalStatus = "Approved"
	ApprovalRejected ApprovalStatus = "Rejected"
)

func (s ApprovalStatus) IsTerminal() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

type ApprovalRequestEntity struct {
	ID               string         `json:"id"`
	OrgID            string         `json:"org_id"`
	RequestType      RequestType    `json:"request_type"`
	RequesterID      string         `json:"requester_id"`
	RequesterName    string         `json:"requester_name"`
	RequesterRole    UserRole       `json:"requester_role"`
	TargetRole       UserRole       `json:"target_role"`
	CaseID           *string        `json:"case_id,omitempty"`
	Status           ApprovalStatus `json:"status"`
	Priority         CasePriority   `json:"priority"`
	Description      string         `json:"description"`
	ReviewerID       *string        `json:"reviewer_id,omitempty"`
	ReviewerName     *string        `json:"reviewer_name,omitempty"`
	ReviewerComments *string        `json:"reviewer_comments,omitempty"`
	ReviewedAt       *time.Time     `json:"reviewed_at,omitempty"`
	AssigneeID       *string        `json:"assignee_id,omitempty"`
	EndDate          *time.Time     `json:"end_date,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// ApprovalDecision ist der Stempel, den Approve/Reject/EditReview schreiben.
type ApprovalDecision struct {
	Status       ApprovalStatus
	ReviewerID   string
	ReviewerName string
	Comments     *string
	AssigneeID   *string
	EndDate      *time.Time
	ReviewedAt   time.Time
}

type ApprovalFilter struct {
	Status      *ApprovalStatus
	RequestType *RequestType
	RequesterID *string
	Limit       int
	Offset      int
}

// AssigneeSuggestion ist ein Kandidat für die Delegation, nach Passung sortiert.
type AssigneeSuggestion struct {
	UserID    string   `json:"user_id"`
	Name      string   `json:"name"`
	Role      UserRole `json:"role"`
	RoleMatch bool     `json:"role_match"`
}
