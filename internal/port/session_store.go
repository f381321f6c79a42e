package port

import (
	"context"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/model"
)

// SessionStore keeps one upload session per user and the single-flight lock
// guarding it.
type SessionStore interface {
	// Get returns the stored session, or a fresh idle one when none exists.
	Get(ctx context.Context, userID string) (*model.UploadSession, error)
	Save(ctx context.Context, s *model.UploadSession) error
	// AcquireLock reports false when another holder owns the lock. The token
	// identifies this holder to ReleaseLock.
	AcquireLock(ctx context.Context, userID string, ttl time.Duration) (token string, ok bool, err error)
	// ReleaseLock frees the lock only while token still owns it.
	ReleaseLock(ctx context.Context, userID, token string) error
}

// RevocationList remembers signed-out token ids until they expire.
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
