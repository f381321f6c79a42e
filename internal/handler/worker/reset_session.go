package worker

import (
	"context"

	"github.com/fhuszti/videos-ms-go/internal/logger"
	"github.com/fhuszti/videos-ms-go/internal/port"
	"github.com/fhuszti/videos-ms-go/internal/task"
	"github.com/fhuszti/videos-ms-go/internal/validation"
)

// ResetSessionHandler handles a reset-session task.
// It validates the incoming payload and delegates the call to the service.
func ResetSessionHandler(ctx context.Context, p task.ResetSessionPayload, svc port.SessionResetter) error {
	if err := validation.ValidateStruct(p); err != nil {
		logger.Errorf(ctx, "❌  Payload validation failed: %v", err)
		return err
	}

	if err := svc.ResetSession(ctx, p.UserID); err != nil {
		logger.Errorf(ctx, "❌  Failed to reset upload session of user %q: %v", p.UserID, err)
		return err
	}

	logger.Infof(ctx, "✅  Reset upload session of user %q", p.UserID)
	return nil
}
