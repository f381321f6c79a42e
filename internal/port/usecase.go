package port

import (
	"context"
	"io"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/model"
	"github.com/fhuszti/videos-ms-go/internal/uuid"
)

type UUIDGen func() uuid.UUID

type Clock func() time.Time

// FileSelector accepts or rejects the video the user picked.
type FileSelector interface {
	SelectFile(ctx context.Context, in SelectFileInput) (*model.SelectedFile, error)
	ClearFile(ctx context.Context) error
}
type SelectFileInput struct {
	Name     string
	MimeType string
	Size     int64
	Content  io.Reader
}

// VideoUploader writes the selected file and its metadata.
type VideoUploader interface {
	SubmitUpload(ctx context.Context, meta model.VideoMetadata) (SubmitUploadOutput, error)
}
type SubmitUploadOutput struct {
	RecordID        uuid.UUID          `json:"id"`
	FilePath        string             `json:"file_path"`
	Notification    model.Notification `json:"notification"`
	RedirectTo      string             `json:"redirect_to"`
	RedirectAfterMs int64              `json:"redirect_after_ms"`
}

// SessionGetter returns the caller's upload session. A failed session is idle:
// the lock is released and the file stays selected for a resubmit.
type SessionGetter interface {
	GetSession(ctx context.Context) (*model.UploadSession, error)
}

// SessionResetter returns a finished session to idle.
type SessionResetter interface {
	ResetSession(ctx context.Context, userID string) error
}
