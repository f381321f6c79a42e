package video

import (
	"context"

	"github.com/fhuszti/videos-ms-go/internal/model"
	"github.com/fhuszti/videos-ms-go/internal/port"
)

type sessionGetterSrv struct {
	observer port.SessionObserver
	store    port.SessionStore
}

func NewSessionGetter(observer port.SessionObserver, store port.SessionStore) port.SessionGetter {
	return &sessionGetterSrv{observer: observer, store: store}
}

func (s *sessionGetterSrv) GetSession(ctx context.Context) (*model.UploadSession, error) {
	id := s.observer.CurrentUser(ctx)
	if id == nil {
		return nil, ErrAuthenticationRequired
	}
	return s.store.Get(ctx, id.ID)
}
