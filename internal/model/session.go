package model

import "time"

// UploadState tracks one upload attempt. Only uploading holds the workspace;
// succeeded and failed are idle for the guard and accept a new selection or
// submission. A failed session keeps the progress it reached.
type UploadState string

const (
	UploadIdle      UploadState = "idle"
	UploadUploading UploadState = "uploading"
	UploadSucceeded UploadState = "succeeded"
	UploadFailed    UploadState = "failed"
)

// SelectedFile is the video picked by the user, spooled until it is uploaded
// or cleared.
type SelectedFile struct {
	Name      string `json:"name"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
	SpoolPath string `json:"-"`
}

// spooledFile mirrors SelectedFile for persistence, where the spool path
// has to survive the round trip.
type spooledFile struct {
	Name      string `json:"name"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
	SpoolPath string `json:"spool_path"`
}

// UploadSession is the per-user upload workspace.
type UploadSession struct {
	UserID    string        `json:"user_id"`
	State     UploadState   `json:"state"`
	Progress  int           `json:"progress"`
	File      *SelectedFile `json:"file"`
	LastError string        `json:"last_error,omitempty"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewUploadSession returns the idle session every user starts with.
func NewUploadSession(userID string) *UploadSession {
	return &UploadSession{UserID: userID, State: UploadIdle}
}

func (s *UploadSession) Uploading() bool {
	return s.State == UploadUploading
}

// Stored is the persisted form of a session.
type Stored struct {
	UserID    string       `json:"user_id"`
	State     UploadState  `json:"state"`
	Progress  int          `json:"progress"`
	File      *spooledFile `json:"file,omitempty"`
	LastError string       `json:"last_error,omitempty"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (s *UploadSession) ToStored() Stored {
	st := Stored{
		UserID:    s.UserID,
		State:     s.State,
		Progress:  s.Progress,
		LastError: s.LastError,
		UpdatedAt: s.UpdatedAt,
	}
	if s.File != nil {
		f := spooledFile(*s.File)
		st.File = &f
	}
	return st
}

func (st Stored) ToSession() *UploadSession {
	s := &UploadSession{
		UserID:    st.UserID,
		State:     st.State,
		Progress:  st.Progress,
		LastError: st.LastError,
		UpdatedAt: st.UpdatedAt,
	}
	if st.File != nil {
		f := SelectedFile(*st.File)
		s.File = &f
	}
	return s
}
