package entity

import "time"

// UserEntity repräsentiert einen Mitarbeiter einer Organisation.
type UserEntity struct {
	ID                 string    `json:"id"`
	OrgID              string    `json:"org_id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Role               UserRole  `json:"role"`
	IsActive           bool      `json:"is_active"`
	EmailNotifications bool      `json:"email_notifications"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type UserUpdate struct {
	Name               *string
	EmailNotifications *bool
}

type UserRole string

const (
	RoleAdmin           UserRole = "ADMIN"
	RoleManager         UserRole = "MANAGER"
	RoleSalesTeam       UserRole = "SALES_TEAM"
	RoleSalesManager    UserRole = "SALES_MANAGER"
	RoleSiteEngineer    UserRole = "SITE_ENGINEER"
	RoleDrawingTeam     UserRole = "DRAWING_TEAM"
	RoleQuotationTeam   UserRole = "QUOTATION_TEAM"
	RoleProcurementTeam UserRole = "PROCUREMENT_TEAM"
	RoleExecutionTeam   UserRole = "EXECUTION_TEAM"
	RoleAccountsTeam    UserRole = "ACCOUNTS_TEAM"
	RoleHR              UserRole = "HR"
)

func (u UserRole) IsValid() bool {
	switch u {
	case RoleAdmin, RoleManager, RoleSalesTeam, RoleSalesManager, RoleSiteEngineer,
		RoleDrawingTeam, RoleQuotationTeam, RoleProcurementTeam, RoleExecutionTeam,
		RoleAccountsTeam, RoleHR:
		return true
	}

	return false
}

// IsReviewer: wer Genehmigungsanträge entscheiden darf.
func (u UserRole) IsReviewer() bool {
	return u == RoleAdmin || u == RoleManager
}
