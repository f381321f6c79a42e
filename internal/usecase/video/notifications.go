package video

import (
	"errors"

	"github.com/fhuszti/videos-ms-go/internal/model"
)

var (
	notifyAuthRequired = model.Notification{
		Title:       "Authentication required",
		Description: "Please log in to upload videos",
		Severity:    model.SeverityDestructive,
	}
	notifyNoFile = model.Notification{
		Title:       "No file selected",
		Description: "Please select a video file to upload",
		Severity:    model.SeverityDestructive,
	}
	notifySuccess = model.Notification{
		Title:       "Upload successful!",
		Description: "Your video has been uploaded successfully",
		Severity:    model.SeverityDefault,
	}
)

func notifyFailure(err *UploadError) model.Notification {
	return model.Notification{
		Title:       "Upload failed",
		Description: err.UserMessage(),
		Severity:    model.SeverityDestructive,
	}
}

// NotificationFor returns the notification raised for a refused or failed
// submission.
func NotificationFor(err error) (model.Notification, bool) {
	switch {
	case errors.Is(err, ErrAuthenticationRequired):
		return notifyAuthRequired, true
	case errors.Is(err, ErrNoFileSelected):
		return notifyNoFile, true
	}
	if upErr, ok := AsUploadError(err); ok {
		return notifyFailure(upErr), true
	}
	return model.Notification{}, false
}
