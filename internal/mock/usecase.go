package mock

import (
	"context"
	"io"

	"github.com/fhuszti/videos-ms-go/internal/model"
	"github.com/fhuszti/videos-ms-go/internal/port"
)

// FileSelector implements port.FileSelector for tests.
type FileSelector struct {
	Out         *model.SelectedFile
	Err         error
	ClearErr    error
	In          port.SelectFileInput
	Content     []byte
	Called      bool
	ClearCalled bool
}

func (m *FileSelector) SelectFile(ctx context.Context, in port.SelectFileInput) (*model.SelectedFile, error) {
	m.Called = true
	m.In = in
	if in.Content != nil {
		m.Content, _ = io.ReadAll(in.Content)
	}
	return m.Out, m.Err
}

func (m *FileSelector) ClearFile(ctx context.Context) error {
	m.ClearCalled = true
	return m.ClearErr
}

// VideoUploader implements port.VideoUploader for tests.
type VideoUploader struct {
	Out    port.SubmitUploadOutput
	Err    error
	In     model.VideoMetadata
	Called bool
}

func (m *VideoUploader) SubmitUpload(ctx context.Context, meta model.VideoMetadata) (port.SubmitUploadOutput, error) {
	m.Called = true
	m.In = meta
	return m.Out, m.Err
}

// SessionGetter implements port.SessionGetter for tests.
type SessionGetter struct {
	Out    *model.UploadSession
	Err    error
	Called bool
}

func (m *SessionGetter) GetSession(ctx context.Context) (*model.UploadSession, error) {
	m.Called = true
	return m.Out, m.Err
}

// SessionResetter implements port.SessionResetter for tests.
type SessionResetter struct {
	Err    error
	UserID string
	Called bool
}

func (m *SessionResetter) ResetSession(ctx context.Context, userID string) error {
	m.Called = true
	m.UserID = userID
	return m.Err
}
