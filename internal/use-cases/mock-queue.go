package use_cases

import (
	"time"

	"github.com/Xenn-00/fitout-meister/internal/queue"
	worker_task "github.com/Xenn-00/fitout-meister/internal/worker/tasks"
	"github.com/stretchr/testify/mock"
)

var _ queue.TaskQueueClient = (*MockTaskQueue)(nil)

// Mock TaskQueue for testing
type MockTaskQueue struct {
	mock.Mock
}

func (m *MockTaskQueue) EnqueueSendNotificationEmail(payload *worker_task.SendNotificationEmailPayload) error {
	args := m.Called(payload)
	return args.Error(0)
}

func (m *MockTaskQueue) EnqueueCaseTaskDeadlineReminder(payload *worker_task.CaseTaskDeadlineReminderPayload, remindAt time.Time) error {
	args := m.Called(payload, remindAt)
	return args.Error(0)
}
