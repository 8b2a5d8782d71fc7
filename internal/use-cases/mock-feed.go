package use_cases

import (
	"context"

	"github.com/Xenn-00/fitout-meister/internal/feed"
	"github.com/stretchr/testify/mock"
)

var _ feed.Publisher = (*MockPublisher)(nil)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, orgID string, c feed.Collection) error {
	args := m.Called(ctx, orgID, c)
	return args.Error(0)
}
