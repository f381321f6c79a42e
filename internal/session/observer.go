package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/api_context"
	"github.com/fhuszti/videos-ms-go/internal/logger"
	"github.com/fhuszti/videos-ms-go/internal/model"
	"github.com/fhuszti/videos-ms-go/internal/port"
)

// Observer resolves the caller from the request context and broadcasts
// identity changes to subscribers.
type Observer struct {
	revocations port.RevocationList

	mu        sync.RWMutex
	nextID    int
	listeners map[int]port.IdentityListener
}

var _ port.SessionObserver = (*Observer)(nil)

func NewObserver(revocations port.RevocationList) *Observer {
	return &Observer{revocations: revocations, listeners: map[int]port.IdentityListener{}}
}

// CurrentUser returns nil for anonymous callers and for signed-out tokens.
func (o *Observer) CurrentUser(ctx context.Context) *model.Identity {
	userID, ok := api_context.AuthUserIDFromContext(ctx)
	if !ok {
		return nil
	}

	if jti, ok := api_context.AuthTokenIDFromContext(ctx); ok {
		revoked, err := o.revocations.IsRevoked(ctx, jti)
		if err != nil {
			logger.Errorf(ctx, "❌  Failed to check revocation of token %q: %v", jti, err)
			return nil
		}
		if revoked {
			return nil
		}
	}

	email, _ := api_context.AuthEmailFromContext(ctx)
	return &model.Identity{ID: userID, Email: email}
}

func (o *Observer) Subscribe(fn port.IdentityListener) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.nextID
	o.nextID++
	o.listeners[id] = fn

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.listeners, id)
	}
}

// SignOut revokes the caller's token until it expires and tells subscribers
// the identity is gone. Anonymous callers are a no-op.
func (o *Observer) SignOut(ctx context.Context) error {
	id := o.CurrentUser(ctx)
	if id == nil {
		return nil
	}

	if jti, ok := api_context.AuthTokenIDFromContext(ctx); ok {
		until, ok := api_context.AuthExpiresAtFromContext(ctx)
		if !ok || until.IsZero() {
			until = time.Now().Add(24 * time.Hour)
		}
		if err := o.revocations.Revoke(ctx, jti, until); err != nil {
			return fmt.Errorf("revoke token: %w", err)
		}
	}

	logger.Infof(ctx, "👋  User %q signed out", id.ID)
	o.publish(ctx, port.IdentityChange{UserID: id.ID, Identity: nil})
	return nil
}

func (o *Observer) publish(ctx context.Context, change port.IdentityChange) {
	o.mu.RLock()
	fns := make([]port.IdentityListener, 0, len(o.listeners))
	for _, fn := range o.listeners {
		fns = append(fns, fn)
	}
	o.mu.RUnlock()

	for _, fn := range fns {
		fn(ctx, change)
	}
}
