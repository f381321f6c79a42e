package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/logger"
	"github.com/fhuszti/videos-ms-go/internal/model"
	"github.com/fhuszti/videos-ms-go/internal/port"
	"github.com/gabriel-vasile/mimetype"
)

const (
	sniffLimit      = 3072
	genericMimeType = "application/octet-stream"
)

type fileSelectorSrv struct {
	observer port.SessionObserver
	store    port.SessionStore
	spool    port.Spool
	lockTTL  time.Duration
}

func NewFileSelector(observer port.SessionObserver, store port.SessionStore, spool port.Spool, lockTTL time.Duration) port.FileSelector {
	return &fileSelectorSrv{observer: observer, store: store, spool: spool, lockTTL: lockTTL}
}

// ValidateCandidate applies the file rules in order; the first failure wins.
func ValidateCandidate(mimeType string, size int64) error {
	if !IsVideo(mimeType) {
		return &ValidationError{Kind: NotAVideo, Message: msgNotAVideo}
	}
	if size > MaxFileSize {
		return &ValidationError{Kind: ExceedsSizeLimit, Message: msgExceedsSizeMax}
	}
	return nil
}

func (s *fileSelectorSrv) SelectFile(ctx context.Context, in port.SelectFileInput) (*model.SelectedFile, error) {
	id := s.observer.CurrentUser(ctx)
	if id == nil {
		return nil, ErrAuthenticationRequired
	}

	content, mimeType, err := resolveMimeType(in.MimeType, in.Content)
	if err != nil {
		return nil, fmt.Errorf("read candidate file: %w", err)
	}
	if err := ValidateCandidate(mimeType, in.Size); err != nil {
		return nil, err
	}

	release, err := acquire(ctx, s.store, id.ID, s.lockTTL)
	if err != nil {
		return nil, err
	}
	defer release()

	sess, err := s.store.Get(ctx, id.ID)
	if err != nil {
		return nil, err
	}

	path, n, err := s.spool.Write(id.ID, in.Name, content)
	if err != nil {
		return nil, err
	}
	// the declared size cannot be trusted
	if err := ValidateCandidate(mimeType, n); err != nil {
		s.discard(ctx, path)
		return nil, err
	}

	previous := sess.File
	sess.File = &model.SelectedFile{Name: in.Name, MimeType: mimeType, SizeBytes: n, SpoolPath: path}
	sess.State = model.UploadIdle
	sess.Progress = 0
	sess.LastError = ""
	if err := s.store.Save(ctx, sess); err != nil {
		s.discard(ctx, path)
		return nil, err
	}

	if previous != nil {
		s.discard(ctx, previous.SpoolPath)
	}

	logger.Infof(ctx, "🎞️  Selected %q (%s, %d bytes)", in.Name, mimeType, n)
	return sess.File, nil
}

func (s *fileSelectorSrv) ClearFile(ctx context.Context) error {
	id := s.observer.CurrentUser(ctx)
	if id == nil {
		return ErrAuthenticationRequired
	}

	release, err := acquire(ctx, s.store, id.ID, s.lockTTL)
	if err != nil {
		return err
	}
	defer release()

	return dropSelection(ctx, s.store, s.spool, id.ID)
}

func (s *fileSelectorSrv) discard(ctx context.Context, path string) {
	if err := s.spool.Remove(path); err != nil {
		logger.Warnf(ctx, "⚠️  Failed to remove spooled file %q: %v", path, err)
	}
}

// dropSelection forgets the selected file and returns the session to idle.
// The caller holds the user's lock.
func dropSelection(ctx context.Context, store port.SessionStore, spool port.Spool, userID string) error {
	sess, err := store.Get(ctx, userID)
	if err != nil {
		return err
	}
	if sess.File != nil {
		if err := spool.Remove(sess.File.SpoolPath); err != nil {
			logger.Warnf(ctx, "⚠️  Failed to remove spooled file %q: %v", sess.File.SpoolPath, err)
		}
	}
	sess.File = nil
	sess.State = model.UploadIdle
	sess.Progress = 0
	sess.LastError = ""
	return store.Save(ctx, sess)
}

// resolveMimeType sniffs the content when the declared type is missing or
// generic. The returned reader still yields the full content.
func resolveMimeType(declared string, r io.Reader) (io.Reader, string, error) {
	if declared != "" && declared != genericMimeType {
		return r, declared, nil
	}
	if r == nil {
		return nil, declared, nil
	}

	head := make([]byte, sniffLimit)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, "", err
	}
	head = head[:n]

	return io.MultiReader(bytes.NewReader(head), r), mimetype.Detect(head).String(), nil
}
