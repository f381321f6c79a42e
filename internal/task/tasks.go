package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeResetSession = "upload:reset_session"

type ResetSessionPayload struct {
	UserID string `json:"user_id" validate:"required"`
}

// NewResetSessionTask creates an Asynq task returning a user's upload session to idle.
func NewResetSessionTask(userID string) (*asynq.Task, error) {
	data, err := json.Marshal(ResetSessionPayload{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("could not marshal reset-session payload: %w", err)
	}
	return asynq.NewTask(TypeResetSession, data), nil
}

// ParseResetSessionPayload parses the task payload to ResetSessionPayload.
func ParseResetSessionPayload(t *asynq.Task) (ResetSessionPayload, error) {
	var p ResetSessionPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return ResetSessionPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	if p.UserID == "" {
		return ResetSessionPayload{}, fmt.Errorf("reset-session payload has no user id")
	}
	return p, nil
}
