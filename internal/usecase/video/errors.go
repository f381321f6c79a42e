package video

import "errors"

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrNoFileSelected         = errors.New("no file selected")
	ErrUploadInProgress       = errors.New("an upload is already in progress")
)

type ValidationKind string

const (
	NotAVideo         ValidationKind = "not_a_video"
	ExceedsSizeLimit  ValidationKind = "exceeds_size_limit"
	msgNotAVideo                     = "Please select a valid video file"
	msgExceedsSizeMax                = "Video file must be less than 50MB"
)

// ValidationError rejects a candidate file. Message is shown to the user as is.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type UploadErrorKind string

const (
	StorageWriteFailed UploadErrorKind = "storage_write_failed"
	RecordInsertFailed UploadErrorKind = "record_insert_failed"
)

const fallbackUploadMessage = "An error occurred during upload"

// UploadError wraps the backend error that aborted a submission.
type UploadError struct {
	Kind UploadErrorKind
	Err  error
}

func (e *UploadError) Error() string { return string(e.Kind) + ": " + e.UserMessage() }

func (e *UploadError) Unwrap() error { return e.Err }

// UserMessage is the backend message, or a generic one when it has none.
func (e *UploadError) UserMessage() string {
	if e.Err == nil || e.Err.Error() == "" {
		return fallbackUploadMessage
	}
	return e.Err.Error()
}
