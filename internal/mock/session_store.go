package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/model"
)

// SessionStore keeps sessions in a map and records every save.
type SessionStore struct {
	Sessions map[string]model.UploadSession
	Saved    []model.UploadSession
	Locked   map[string]bool
	tokens   map[string]string
	seq      int

	GetErr     error
	SaveErr    error
	AcquireErr error
	ReleaseErr error

	AcquireCalled bool
	ReleaseCalled bool
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		Sessions: map[string]model.UploadSession{},
		Locked:   map[string]bool{},
		tokens:   map[string]string{},
	}
}

// Put seeds a session.
func (m *SessionStore) Put(s model.UploadSession) {
	m.Sessions[s.UserID] = s
}

func (m *SessionStore) Get(ctx context.Context, userID string) (*model.UploadSession, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	s, ok := m.Sessions[userID]
	if !ok {
		return model.NewUploadSession(userID), nil
	}
	cp := s
	if s.File != nil {
		f := *s.File
		cp.File = &f
	}
	return &cp, nil
}

func (m *SessionStore) Save(ctx context.Context, s *model.UploadSession) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	cp := *s
	if s.File != nil {
		f := *s.File
		cp.File = &f
	}
	m.Sessions[s.UserID] = cp
	m.Saved = append(m.Saved, cp)
	return nil
}

// AcquireLock hands out tokens "lock-1", "lock-2", ... A lock seeded through
// Locked has no token, so no release can free it.
func (m *SessionStore) AcquireLock(ctx context.Context, userID string, ttl time.Duration) (string, bool, error) {
	m.AcquireCalled = true
	if m.AcquireErr != nil {
		return "", false, m.AcquireErr
	}
	if m.Locked[userID] {
		return "", false, nil
	}
	m.seq++
	token := fmt.Sprintf("lock-%d", m.seq)
	m.Locked[userID] = true
	m.tokens[userID] = token
	return token, true, nil
}

func (m *SessionStore) ReleaseLock(ctx context.Context, userID, token string) error {
	m.ReleaseCalled = true
	if held, ok := m.tokens[userID]; ok && held == token {
		delete(m.Locked, userID)
		delete(m.tokens, userID)
	}
	return m.ReleaseErr
}
