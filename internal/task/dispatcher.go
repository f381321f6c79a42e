package task

import (
	"context"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/port"
	"github.com/hibiken/asynq"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Dispatcher struct {
	client enqueuer
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c}
}

func (d *Dispatcher) EnqueueSessionReset(ctx context.Context, userID string, delay time.Duration) error {
	t, err := NewResetSessionTask(userID)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t, asynq.ProcessIn(delay), asynq.MaxRetry(3)); err != nil {
		return err
	}
	return nil
}
