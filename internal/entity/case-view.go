package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeadPipelineStatus ist der Status im alten Lead-Vokabular, das Berichte und
// der CSV-Export noch verwenden.
type LeadPipelineStatus string

const (
	LeadNotContacted       LeadPipelineStatus = "NOT_CONTACTED"
	LeadContacted          LeadPipelineStatus = "CONTACTED"
	LeadSiteVisitScheduled LeadPipelineStatus = "SITE_VISIT_SCHEDULED"
	LeadDesignInProgress   LeadPipelineStatus = "DESIGN_IN_PROGRESS"
	LeadQuotationSent      LeadPipelineStatus = "QUOTATION_SENT"
	LeadConverted          LeadPipelineStatus = "CONVERTED"
	LeadLost               LeadPipelineStatus = "LOST"
)

// MapLegacyStatus ist total: unbekannte Werte landen bei NOT_CONTACTED.
func MapLegacyStatus(s CaseStatus) LeadPipelineStatus {
	switch s {
	case CaseNew:
		return LeadNotContacted
	case CaseContacted:
		return LeadContacted
	case CaseSiteVisit:
		return LeadSiteVisitScheduled
	case CaseDrawing, CaseBOQ:
		return LeadDesignInProgress
	case CaseQuotation:
		return LeadQuotationSent
	case CaseProcurement, CaseExecution, CaseCompleted, CaseOnHold:
		return LeadConverted
	case CaseLost:
		return LeadLost
	default:
		return LeadNotContacted
	}
}

// CaseView ist entweder LeadView oder ProjectView.
type CaseView interface {
	caseView()
	CaseID() string
}

type LeadView struct {
	Kind           string             `json:"kind"`
	ID             string             `json:"id"`
	ClientName     string             `json:"client_name"`
	ProjectName    string             `json:"project_name"`
	Email          string             `json:"email"`
	Mobile         string             `json:"mobile"`
	Source         string             `json:"source"`
	Priority       CasePriority       `json:"priority"`
	Status         CaseStatus         `json:"status"`
	PipelineStatus LeadPipelineStatus `json:"pipeline_status"`
	AssignedSales  *string            `json:"assigned_sales,omitempty"`
	Value          decimal.Decimal    `json:"value"`
	CreatedAt      time.Time          `json:"created_at"`
}

type ProjectView struct {
	Kind                string              `json:"kind"`
	ID                  string              `json:"id"`
	ClientName          string              `json:"client_name"`
	ProjectName         string              `json:"project_name"`
	SiteAddress         string              `json:"site_address"`
	Stage               CaseStatus          `json:"stage"`
	AssignedProcurement *string             `json:"assigned_procurement,omitempty"`
	AssignedTeam        map[UserRole]string `json:"assigned_team"`
	Budget              decimal.Decimal     `json:"budget"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

func (LeadView) caseView()    {}
func (ProjectView) caseView() {}

func (v LeadView) CaseID() string    { return v.ID }
func (v ProjectView) CaseID() string { return v.ID }

func ToCaseView(c *CaseEntity) CaseView {
	if c.IsProject {
		return ProjectView{
			Kind:                "project",
			ID:                  c.ID,
			ClientName:          c.ClientName,
			ProjectName:         c.ProjectName,
			SiteAddress:         c.SiteAddress,
			Stage:               c.Status,
			AssignedProcurement: c.AssignedProcurement,
			AssignedTeam:        c.AssignedTeam,
			Budget:              c.Budget,
			CreatedAt:           c.CreatedAt,
			UpdatedAt:           c.UpdatedAt,
		}
	}
	return LeadView{
		Kind:           "lead",
		ID:             c.ID,
		ClientName:     c.ClientName,
		ProjectName:    c.ProjectName,
		Email:          c.Email,
		Mobile:         c.Mobile,
		Source:         c.Source,
		Priority:       c.Priority,
		Status:         c.Status,
		PipelineStatus: MapLegacyStatus(c.Status),
		AssignedSales:  c.AssignedSales,
		Value:          c.Budget,
		CreatedAt:      c.CreatedAt,
	}
}
