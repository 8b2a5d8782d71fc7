package entity

import "slices"

// Session ist der authentifizierte Aufrufer. Die Middleware baut sie pro Request
// und jeder Service bekommt sie explizit übergeben.
type Session struct {
	UserID string   `json:"user_id"`
	OrgID  string   `json:"org_id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
}

func (s Session) HasRole(roles ...UserRole) bool {
	return slices.Contains(roles, s.Role)
}

func SessionFromUser(u *UserEntity) Session {
	return Session{
		UserID: u.ID,
		OrgID:  u.OrgID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
	}
}
