package task

import (
	"context"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/logger"
	"github.com/fhuszti/videos-ms-go/internal/port"
)

// LocalDispatcher runs session resets in process after the delay. Used when
// redis is not configured.
type LocalDispatcher struct {
	resetter  port.SessionResetter
	afterFunc func(d time.Duration, f func()) *time.Timer
}

var _ port.TaskDispatcher = (*LocalDispatcher)(nil)

func NewLocalDispatcher(resetter port.SessionResetter) *LocalDispatcher {
	return &LocalDispatcher{resetter: resetter, afterFunc: time.AfterFunc}
}

func (d *LocalDispatcher) EnqueueSessionReset(ctx context.Context, userID string, delay time.Duration) error {
	// the request context is gone by the time the timer fires
	bg := context.WithoutCancel(ctx)
	d.afterFunc(delay, func() {
		if err := d.resetter.ResetSession(bg, userID); err != nil {
			logger.Errorf(bg, "❌  Failed to reset upload session of user %q: %v", userID, err)
		}
	})
	return nil
}
