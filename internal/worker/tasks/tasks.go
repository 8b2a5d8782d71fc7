package worker_task

import "time"

const TaskSendNotificationEmail = "email:send_notification"

const TaskCaseTaskDeadlineReminder = "low:case_task_deadline_reminder"

const TaskOverdueCaseTasks = "low:overdue_case_tasks"

// SendNotificationEmailPayload verweist nur auf die Notification, der Worker lädt den Rest.
type SendNotificationEmailPayload struct {
	NotificationID string `json:"notification_id"`
	UserID         string `json:"user_id"`
}

type CaseTaskDeadlineReminderPayload struct {
	TaskID   string    `json:"task_id"`
	OrgID    string    `json:"org_id"`
	Deadline time.Time `json:"deadline"`
}
