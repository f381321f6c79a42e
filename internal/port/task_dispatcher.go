package port

import (
	"context"
	"time"
)

// TaskDispatcher enqueues asynchronous tasks related to upload sessions.
type TaskDispatcher interface {
	EnqueueSessionReset(ctx context.Context, userID string, delay time.Duration) error
}
