package user_dto

type ParamGetUserByID struct {
	ID string `params:"id" validate:"required,uuid"`
}

type UpdateSelfProfileRequest struct {
	Name               *string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	EmailNotifications *bool   `json:"email_notifications,omitempty"`
}

type DirectoryFilter struct {
	Role *string `query:"role" validate:"omitempty,userRole"`
}
