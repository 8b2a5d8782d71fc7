package notification_dto

type ParamNotificationID struct {
	ID string `params:"notification_id" validate:"required,uuid"`
}

type NotificationListFilter struct {
	Unread bool `query:"unread"`
	Limit  int  `query:"limit" validate:"omitempty,min=1,max=100"`
	Page   int  `query:"page" validate:"omitempty,min=1"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
