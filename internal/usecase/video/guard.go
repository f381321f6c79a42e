package video

import (
	"context"
	"fmt"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/logger"
	"github.com/fhuszti/videos-ms-go/internal/port"
)

// acquire takes the user's single-flight lock. The returned func releases it.
func acquire(ctx context.Context, store port.SessionStore, userID string, ttl time.Duration) (func(), error) {
	token, ok, err := store.AcquireLock(ctx, userID, ttl)
	if err != nil {
		return nil, fmt.Errorf("acquire upload lock: %w", err)
	}
	if !ok {
		return nil, ErrUploadInProgress
	}
	return func() {
		if err := store.ReleaseLock(context.WithoutCancel(ctx), userID, token); err != nil {
			logger.Warnf(ctx, "⚠️  Failed to release upload lock of user %q: %v", userID, err)
		}
	}, nil
}
