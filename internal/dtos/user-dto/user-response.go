package user_dto

import (
	"time"

	"github.com/Xenn-00/fitout-meister/internal/entity"
)

type UserProfileResponse struct {
	ID                 string          `json:"id"`
	OrgID              string          `json:"org_id"`
	Email              string          `json:"email,omitempty"`
	Name               string          `json:"name"`
	Role               entity.UserRole `json:"role"`
	IsActive           bool            `json:"is_active"`
	EmailNotifications bool            `json:"email_notifications"`
	CreatedAt          time.Time       `json:"created_at,omitzero"`
	UpdatedAt          time.Time       `json:"updated_at,omitzero"`
}

// DirectoryEntry ist die öffentliche Sicht auf Kollegen, ohne E-Mail-Einstellungen.
type DirectoryEntry struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Role     entity.UserRole `json:"role"`
	IsActive bool            `json:"is_active"`
}

func ToUserProfileResponse(u *entity.UserEntity) *UserProfileResponse {
	return &UserProfileResponse{
		ID:                 u.ID,
		OrgID:              u.OrgID,
		Email:              u.Email,
		Name:               u.Name,
		Role:               u.Role,
		IsActive:           u.IsActive,
		EmailNotifications: u.EmailNotifications,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}
