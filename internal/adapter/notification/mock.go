package notification

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockNotifier 测试用通知器
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, msg *NotificationMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
