package port

import (
	"context"

	"github.com/fhuszti/videos-ms-go/internal/model"
)

// IdentityChange is pushed to subscribers whenever a user's identity changes.
// Identity is nil after sign-out.
type IdentityChange struct {
	UserID   string
	Identity *model.Identity
}

type IdentityListener func(ctx context.Context, change IdentityChange)

// SessionObserver exposes the authenticated user of a request.
type SessionObserver interface {
	CurrentUser(ctx context.Context) *model.Identity
	Subscribe(fn IdentityListener) (unsubscribe func())
	SignOut(ctx context.Context) error
}
