package video

import (
	"context"
	"errors"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/logger"
	"github.com/fhuszti/videos-ms-go/internal/model"
	"github.com/fhuszti/videos-ms-go/internal/port"
)

type sessionResetterSrv struct {
	store   port.SessionStore
	lockTTL time.Duration
}

func NewSessionResetter(store port.SessionStore, lockTTL time.Duration) port.SessionResetter {
	return &sessionResetterSrv{store: store, lockTTL: lockTTL}
}

// ResetSession returns a succeeded session to idle. Sessions that moved on
// since the upload finished are left alone.
func (s *sessionResetterSrv) ResetSession(ctx context.Context, userID string) error {
	release, err := acquire(ctx, s.store, userID, s.lockTTL)
	if errors.Is(err, ErrUploadInProgress) {
		logger.Infof(ctx, "session of user %q is busy, skipping reset", userID)
		return nil
	}
	if err != nil {
		return err
	}
	defer release()

	sess, err := s.store.Get(ctx, userID)
	if err != nil {
		return err
	}
	if sess.State != model.UploadSucceeded {
		return nil
	}

	sess.State = model.UploadIdle
	sess.Progress = 0
	sess.LastError = ""
	return s.store.Save(ctx, sess)
}
