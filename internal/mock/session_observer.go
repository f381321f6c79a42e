package mock

import (
	"context"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/model"
	"github.com/fhuszti/videos-ms-go/internal/port"
)

// SessionObserver returns a fixed identity.
type SessionObserver struct {
	Identity      *model.Identity
	SignOutErr    error
	SignOutCalled bool
	Listeners     []port.IdentityListener
}

func (m *SessionObserver) CurrentUser(ctx context.Context) *model.Identity {
	return m.Identity
}

func (m *SessionObserver) Subscribe(fn port.IdentityListener) func() {
	m.Listeners = append(m.Listeners, fn)
	return func() {}
}

func (m *SessionObserver) SignOut(ctx context.Context) error {
	m.SignOutCalled = true
	return m.SignOutErr
}

// RevocationList records revocations.
type RevocationList struct {
	Revoked    map[string]time.Time
	RevokeErr  error
	IsRevErr   error
	IsRevCalls int
}

func NewRevocationList() *RevocationList {
	return &RevocationList{Revoked: map[string]time.Time{}}
}

func (m *RevocationList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	if m.RevokeErr != nil {
		return m.RevokeErr
	}
	m.Revoked[tokenID] = until
	return nil
}

func (m *RevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.IsRevCalls++
	if m.IsRevErr != nil {
		return false, m.IsRevErr
	}
	_, ok := m.Revoked[tokenID]
	return ok, nil
}
