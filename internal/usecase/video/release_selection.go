package video

import (
	"context"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/logger"
	"github.com/fhuszti/videos-ms-go/internal/port"
)

// NewSelectionReleaser returns a listener dropping a user's selected file once
// they sign out. An upload in flight is left to finish.
func NewSelectionReleaser(store port.SessionStore, spool port.Spool, lockTTL time.Duration) port.IdentityListener {
	return func(ctx context.Context, change port.IdentityChange) {
		if change.Identity != nil || change.UserID == "" {
			return
		}

		release, err := acquire(ctx, store, change.UserID, lockTTL)
		if err != nil {
			logger.Infof(ctx, "keeping selection of signed-out user %q: %v", change.UserID, err)
			return
		}
		defer release()

		if err := dropSelection(ctx, store, spool, change.UserID); err != nil {
			logger.Warnf(ctx, "⚠️  Failed to drop selection of signed-out user %q: %v", change.UserID, err)
		}
	}
}
