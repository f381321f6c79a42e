package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fhuszti/videos-ms-go/internal/logger"
	"github.com/fhuszti/videos-ms-go/internal/model"
	"github.com/fhuszti/videos-ms-go/internal/usecase/video"
)

type ErrorResponse struct {
	Error        string              `json:"error"`
	Notification *model.Notification `json:"notification,omitempty"`
}

func WriteError(ctx context.Context, w http.ResponseWriter, status int, msg string, err error) {
	writeError(ctx, w, status, ErrorResponse{Error: msg}, err)
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, body ErrorResponse, err error) {
	if err != nil {
		logger.Errorf(ctx, "❌  %s: %v", body.Error, err)
	} else {
		logger.Error(ctx, "❌  "+body.Error)
	}
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(ctx, w, status, body)
}

func RespondJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(ctx, "❌  Failed to encode JSON response: %v", err)
	}
}

func RespondRawJSON(ctx context.Context, w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		logger.Errorf(ctx, "❌  Failed to write JSON payload: %v", err)
	}
}

// writeUseCaseError maps the upload workspace errors to HTTP statuses.
// Refused and failed submissions carry the notification shown to the user.
func writeUseCaseError(ctx context.Context, w http.ResponseWriter, err error) {
	body := ErrorResponse{}
	if n, ok := video.NotificationFor(err); ok {
		body.Notification = &n
	}

	var vErr *video.ValidationError
	var status int
	switch {
	case errors.Is(err, video.ErrAuthenticationRequired):
		status, body.Error = http.StatusUnauthorized, "Please log in to upload videos"
	case errors.Is(err, video.ErrNoFileSelected):
		status, body.Error = http.StatusConflict, "No file selected"
	case errors.Is(err, video.ErrUploadInProgress):
		status, body.Error = http.StatusConflict, "An upload is already in progress"
	case errors.As(err, &vErr):
		status, body.Error = http.StatusBadRequest, vErr.Message
	default:
		if upErr, ok := video.AsUploadError(err); ok {
			status, body.Error = http.StatusBadGateway, upErr.UserMessage()
		} else {
			status, body.Error = http.StatusInternalServerError, "Internal server error"
		}
	}
	writeError(ctx, w, status, body, err)
}
