package video

import (
	"context"
	"errors"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/logger"
	"github.com/fhuszti/videos-ms-go/internal/model"
	"github.com/fhuszti/videos-ms-go/internal/port"
	"github.com/fhuszti/videos-ms-go/internal/uuid"
)

// UploaderDeps gathers the collaborators of the upload orchestrator.
type UploaderDeps struct {
	Observer   port.SessionObserver
	Store      port.SessionStore
	Spool      port.Spool
	Storage    port.Storage
	Repo       port.VideoUploadRepository
	Notifier   port.Notifier
	Dispatcher port.TaskDispatcher
	NewID      port.UUIDGen
	Now        port.Clock
}

// UploaderConfig holds the tunables of the upload orchestrator.
type UploaderConfig struct {
	Bucket        string
	LockTTL       time.Duration
	RedirectDelay time.Duration
}

type videoUploaderSrv struct {
	UploaderDeps
	cfg UploaderConfig
}

func NewVideoUploader(deps UploaderDeps, cfg UploaderConfig) port.VideoUploader {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewUUID
	}
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = DefaultLockTTL
	}
	if cfg.RedirectDelay <= 0 {
		cfg.RedirectDelay = DefaultRedirectDelay
	}
	return &videoUploaderSrv{UploaderDeps: deps, cfg: cfg}
}

func (s *videoUploaderSrv) SubmitUpload(ctx context.Context, meta model.VideoMetadata) (port.SubmitUploadOutput, error) {
	id := s.Observer.CurrentUser(ctx)
	if id == nil {
		s.Notifier.Notify(ctx, "", notifyAuthRequired)
		return port.SubmitUploadOutput{}, ErrAuthenticationRequired
	}

	release, err := acquire(ctx, s.Store, id.ID, s.cfg.LockTTL)
	if err != nil {
		return port.SubmitUploadOutput{}, err
	}
	defer release()

	sess, err := s.Store.Get(ctx, id.ID)
	if err != nil {
		return port.SubmitUploadOutput{}, err
	}
	if sess.File == nil {
		s.Notifier.Notify(ctx, id.ID, notifyNoFile)
		return port.SubmitUploadOutput{}, ErrNoFileSelected
	}
	file := *sess.File

	sess.State = model.UploadUploading
	sess.Progress = 0
	sess.LastError = ""
	s.persist(ctx, sess)

	key := ObjectKey(id.ID, s.Now(), file.Name)
	if err := s.writeObject(ctx, key, file); err != nil {
		return port.SubmitUploadOutput{}, s.fail(ctx, sess, &UploadError{Kind: StorageWriteFailed, Err: err})
	}
	sess.Progress = 50
	s.persist(ctx, sess)

	rec := &model.UploadRecord{
		ID:          s.NewID(),
		UserID:      id.ID,
		Title:       meta.Title,
		Description: optional(meta.Description),
		Tags:        ParseTags(meta.Tags),
		Privacy:     meta.Privacy,
		FilePath:    key,
		FileSize:    file.SizeBytes,
		MimeType:    file.MimeType,
	}
	if meta.Category != "" {
		c := meta.Category
		rec.Category = &c
	}
	if rec.Privacy == "" {
		rec.Privacy = model.PrivacyPrivate
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		// the stored object is left in place
		return port.SubmitUploadOutput{}, s.fail(ctx, sess, &UploadError{Kind: RecordInsertFailed, Err: err})
	}
	sess.Progress = 100
	s.persist(ctx, sess)

	s.Notifier.Notify(ctx, id.ID, notifySuccess)

	if err := s.Spool.Remove(file.SpoolPath); err != nil {
		logger.Warnf(ctx, "⚠️  Failed to remove spooled file %q: %v", file.SpoolPath, err)
	}
	sess.File = nil
	sess.State = model.UploadSucceeded
	s.persist(ctx, sess)

	if err := s.Dispatcher.EnqueueSessionReset(ctx, id.ID, s.cfg.RedirectDelay); err != nil {
		logger.Warnf(ctx, "⚠️  Failed to schedule session reset for user %q: %v", id.ID, err)
	}

	logger.Infof(ctx, "✅  Uploaded %q as %q (record #%s)", file.Name, key, rec.ID)
	return port.SubmitUploadOutput{
		RecordID:        rec.ID,
		FilePath:        key,
		Notification:    notifySuccess,
		RedirectTo:      RedirectTo,
		RedirectAfterMs: s.cfg.RedirectDelay.Milliseconds(),
	}, nil
}

func (s *videoUploaderSrv) writeObject(ctx context.Context, key string, file model.SelectedFile) error {
	rc, err := s.Spool.Open(file.SpoolPath)
	if err != nil {
		return err
	}
	defer func() {
		if cErr := rc.Close(); cErr != nil {
			logger.Warnf(ctx, "⚠️  Failed to close spooled file %q: %v", file.SpoolPath, cErr)
		}
	}()

	return s.Storage.SaveFile(ctx, s.cfg.Bucket, key, rc, file.SizeBytes, port.PutOptions{
		ContentType:  file.MimeType,
		CacheControl: CacheControl,
		Overwrite:    false,
	})
}

// fail leaves the session in the failed state with its file still selected.
func (s *videoUploaderSrv) fail(ctx context.Context, sess *model.UploadSession, upErr *UploadError) error {
	logger.Errorf(ctx, "❌  Upload failed (%s): %v", upErr.Kind, upErr.Err)

	sess.State = model.UploadFailed
	sess.LastError = upErr.UserMessage()
	s.persist(ctx, sess)

	s.Notifier.Notify(ctx, sess.UserID, notifyFailure(upErr))
	return upErr
}

func (s *videoUploaderSrv) persist(ctx context.Context, sess *model.UploadSession) {
	if err := s.Store.Save(ctx, sess); err != nil {
		logger.Warnf(ctx, "⚠️  Failed to save upload session of user %q: %v", sess.UserID, err)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// AsUploadError extracts the error that aborted a submission after the writes began.
func AsUploadError(err error) (*UploadError, bool) {
	var upErr *UploadError
	ok := errors.As(err, &upErr)
	return upErr, ok
}
