package port

import (
	"context"

	"github.com/fhuszti/videos-ms-go/internal/model"
)

// Notifier surfaces transient messages to a user. It never fails the caller.
type Notifier interface {
	Notify(ctx context.Context, userID string, n model.Notification)
}
