package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type CaseStatus string

// Lead-Phasen
const (
	CaseNew       CaseStatus = "NEW"
	CaseContacted CaseStatus = "CONTACTED"
	CaseSiteVisit CaseStatus = "SITE_VISIT"
	CaseDrawing   CaseStatus = "DRAWING"
	CaseBOQ       CaseStatus = "BOQ"
	CaseQuotation CaseStatus = "QUOTATION"
	CaseLost      CaseStatus = "LOST"
)

// Projekt-Phasen
const (
	CaseProcurement CaseStatus = "PROCUREMENT"
	CaseExecution   CaseStatus = "EXECUTION"
	CaseCompleted   CaseStatus = "COMPLETED"
	CaseOnHold      CaseStatus = "ON_HOLD"
)

// Reihenfolge der Pipeline, LOST und ON_HOLD liegen außerhalb.
var casePipeline = []CaseStatus{
	CaseNew, CaseContacted, CaseSiteVisit, CaseDrawing, CaseBOQ, CaseQuotation,
	CaseProcurement, CaseExecution, CaseCompleted,
}

func (s CaseStatus) IsLeadStage() bool {
	switch s {
	case CaseNew, CaseContacted, CaseSiteVisit, CaseDrawing, CaseBOQ, CaseQuotation, CaseLost:
		return true
	}
	return false
}

func (s CaseStatus) IsProjectStage() bool {
	switch s {
	case CaseProcurement, CaseExecution, CaseCompleted, CaseOnHold:
		return true
	}
	return false
}

func (s CaseStatus) IsValid() bool {
	return s.IsLeadStage() || s.IsProjectStage()
}

// PipelineIndex liefert die Position in der Pipeline oder -1 für LOST/ON_HOLD.
func (s CaseStatus) PipelineIndex() int {
	for i, st := range casePipeline {
		if st == s {
			return i
		}
	}
	return -1
}

// AtLeast: s ist gleich oder später als other in der Pipeline.
func (s CaseStatus) AtLeast(other CaseStatus) bool {
	i, j := s.PipelineIndex(), other.PipelineIndex()
	return i >= 0 && j >= 0 && i >= j
}

type CasePriority string

const (
	PriorityLow    CasePriority = "LOW"
	PriorityMedium CasePriority = "MEDIUM"
	PriorityHigh   CasePriority = "HIGH"
	PriorityUrgent CasePriority = "URGENT"
)

func (p CasePriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// CaseEntity ist ein Lead oder ein Projekt. Ein Datensatz wechselt durch is_project die Rolle.
type CaseEntity struct {
	ID                  string              `json:"id"`
	OrgID               string              `json:"org_id"`
	ClientName          string              `json:"client_name"`
	ProjectName         string              `json:"project_name"`
	Email               string              `json:"email"`
	Mobile              string              `json:"mobile"`
	SiteAddress         string              `json:"site_address"`
	Source              string              `json:"source"`
	Priority            CasePriority        `json:"priority"`
	Status              CaseStatus          `json:"status"`
	IsProject           bool                `json:"is_project"`
	AssignedSales       *string             `json:"assigned_sales,omitempty"`
	AssignedProcurement *string             `json:"assigned_procurement,omitempty"`
	AssignedTeam        map[UserRole]string `json:"assigned_team"`
	Budget              decimal.Decimal     `json:"budget"`
	CreatedBy           string              `json:"created_by"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

var ErrCaseStageMismatch = errors.New("case status does not match is_project")

// Validate prüft, dass Status und is_project zusammenpassen.
func (c *CaseEntity) Validate() error {
	if !c.Status.IsValid() {
		return fmt.Errorf("unknown case status %q", c.Status)
	}
	if c.IsProject && !c.Status.IsProjectStage() {
		return ErrCaseStageMismatch
	}
	if !c.IsProject && !c.Status.IsLeadStage() {
		return ErrCaseStageMismatch
	}
	return nil
}

// TeamMember liefert das zugewiesene Teammitglied für eine Rolle.
func (c *CaseEntity) TeamMember(role UserRole) (string, bool) {
	if role == RoleProcurementTeam && c.AssignedProcurement != nil && *c.AssignedProcurement != "" {
		return *c.AssignedProcurement, true
	}
	if role == RoleSalesTeam && c.AssignedSales != nil && *c.AssignedSales != "" {
		return *c.AssignedSales, true
	}
	id, ok := c.AssignedTeam[role]
	return id, ok && id != ""
}

type CaseFilter struct {
	Status    *CaseStatus
	IsProject *bool
	Search    *string
	Limit     int
	Offset    int
}

// CaseUpdate enthält nur die Felder, die gesetzt werden sollen.
type CaseUpdate struct {
	ClientName          *string
	ProjectName         *string
	Email               *string
	Mobile              *string
	SiteAddress         *string
	Source              *string
	Priority            *CasePriority
	Budget              *decimal.Decimal
	AssignedSales       *string
	AssignedProcurement *string
	AssignedTeam        map[UserRole]string
}

func (u CaseUpdate) IsEmpty() bool {
	return u.ClientName == nil && u.ProjectName == nil && u.Email == nil && u.Mobile == nil &&
		u.SiteAddress == nil && u.Source == nil && u.Priority == nil && u.Budget == nil &&
		u.AssignedSales == nil && u.AssignedProcurement == nil && u.AssignedTeam == nil
}
