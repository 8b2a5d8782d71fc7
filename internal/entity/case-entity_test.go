package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapLegacyStatus(t *testing.T) {
	cases := map[CaseStatus]LeadPipelineStatus{
		CaseNew:         LeadNotContacted,
		CaseContacted:   LeadContacted,
		CaseSiteVisit:   LeadSiteVisitScheduled,
		CaseDrawing:     LeadDesignInProgress,
		CaseBOQ:         LeadDesignInProgress,
		CaseQuotation:   LeadQuotationSent,
		CaseProcurement: LeadConverted,
		CaseExecution:   LeadConverted,
		CaseCompleted:   LeadConverted,
		CaseOnHold:      LeadConverted,
		CaseLost:        LeadLost,
		"GARBAGE":       LeadNotContacted,
		"":              LeadNotContacted,
	}

	for in, want := range cases {
		assert.Equal(t, want, MapLegacyStatus(in), "status %q", in)
	}
}

func TestCaseValidate(t *testing.T) {
	lead := &CaseEntity{Status: CaseDrawing}
	assert.NoError(t, lead.Validate())

	project := &CaseEntity{Status: CaseExecution, IsProject: true}
	assert.NoError(t, project.Validate())

	mismatch := &CaseEntity{Status: CaseExecution, IsProject: false}
	assert.ErrorIs(t, mismatch.Validate(), ErrCaseStageMismatch)

	leadAsProject := &CaseEntity{Status: CaseBOQ, IsProject: true}
	assert.ErrorIs(t, leadAsProject.Validate(), ErrCaseStageMismatch)

	unknown := &CaseEntity{Status: "WHATEVER"}
	assert.Error(t, unknown.Validate())
}

func TestCaseStatus_AtLeast(t *testing.T) {
	assert.True(t, CaseBOQ.AtLeast(CaseBOQ))
	assert.True(t, CaseExecution.AtLeast(CaseBOQ))
	assert.False(t, CaseDrawing.AtLeast(CaseBOQ))
	assert.False(t, CaseLost.AtLeast(CaseBOQ))
	assert.False(t, CaseOnHold.AtLeast(CaseBOQ))
}

func TestToCaseView(t *testing.T) {
	sales := "user-sales"
	lead := &CaseEntity{ID: "c-1", ClientName: "Acme", Status: CaseQuotation, AssignedSales: &sales}

	view := ToCaseView(lead)
	lv, ok := view.(LeadView)
	assert.True(t, ok)
	assert.Equal(t, "lead", lv.Kind)
	assert.Equal(t, LeadQuotationSent, lv.PipelineStatus)
	assert.Equal(t, "c-1", view.CaseID())

	project := &CaseEntity{ID: "c-2", Status: CaseProcurement, IsProject: true}
	pv, ok := ToCaseView(project).(ProjectView)
	assert.True(t, ok)
	assert.Equal(t, "project", pv.Kind)
	assert.Equal(t, CaseProcurement, pv.Stage)
}

func TestTeamMember(t *testing.T) {
	proc := "user-proc"
	c := &CaseEntity{
		AssignedProcurement: &proc,
		AssignedTeam:        map[UserRole]string{RoleSiteEngineer: "user-eng"},
	}

	id, ok := c.TeamMember(RoleProcurementTeam)
	assert.True(t, ok)
	assert.Equal(t, "user-proc", id)

	id, ok = c.TeamMember(RoleSiteEngineer)
	assert.True(t, ok)
	assert.Equal(t, "user-eng", id)

	_, ok = c.TeamMember(RoleDrawingTeam)
	assert.False(t, ok)
}
