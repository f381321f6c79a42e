package mock

import (
	"context"
	"time"
)

// TaskDispatcher records enqueued session resets.
type TaskDispatcher struct {
	Err    error
	Called bool
	UserID string
	Delay  time.Duration
}

func (m *TaskDispatcher) EnqueueSessionReset(ctx context.Context, userID string, delay time.Duration) error {
	m.Called = true
	m.UserID = userID
	m.Delay = delay
	return m.Err
}
