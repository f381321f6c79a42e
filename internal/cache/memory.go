package cache

import (
	"context"
	"sync"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/model"
	"github.com/fhuszti/videos-ms-go/internal/port"
	"github.com/fhuszti/videos-ms-go/internal/uuid"
)

// MemorySessionStore keeps sessions in process. Used when redis is not configured.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]model.Stored
	locks    map[string]memLock
	now      func() time.Time
}

type memLock struct {
	token string
	exp   time.Time
}

// compile-time check: *MemorySessionStore must satisfy port.SessionStore
var _ port.SessionStore = (*MemorySessionStore)(nil)

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]model.Stored),
		locks:    make(map[string]memLock),
		now:      time.Now,
	}
}

func (m *MemorySessionStore) Get(_ context.Context, userID string) (*model.UploadSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.sessions[userID]
	if !ok {
		return model.NewUploadSession(userID), nil
	}
	return st.ToSession(), nil
}

func (m *MemorySessionStore) Save(_ context.Context, s *model.UploadSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.UpdatedAt = m.now().UTC()
	m.sessions[s.UserID] = s.ToStored()
	return nil
}

func (m *MemorySessionStore) AcquireLock(_ context.Context, userID string, ttl time.Duration) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if l, held := m.locks[userID]; held && now.Before(l.exp) {
		return "", false, nil
	}
	token := uuid.NewUUID().String()
	m.locks[userID] = memLock{token: token, exp: now.Add(ttl)}
	return token, true, nil
}

func (m *MemorySessionStore) ReleaseLock(_ context.Context, userID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, held := m.locks[userID]; held && l.token == token {
		delete(m.locks, userID)
	}
	return nil
}

// MemoryRevocationList keeps revoked token ids in process.
type MemoryRevocationList struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// compile-time check: *MemoryRevocationList must satisfy port.RevocationList
var _ port.RevocationList = (*MemoryRevocationList)(nil)

func NewMemoryRevocationList() *MemoryRevocationList {
	return &MemoryRevocationList{revoked: make(map[string]time.Time), now: time.Now}
}

func (m *MemoryRevocationList) Revoke(_ context.Context, tokenID string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, exp := range m.revoked {
		if !now.Before(exp) {
			delete(m.revoked, id)
		}
	}
	if now.Before(until) {
		m.revoked[tokenID] = until
	}
	return nil
}

func (m *MemoryRevocationList) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.revoked[tokenID]
	return ok && m.now().Before(exp), nil
}
