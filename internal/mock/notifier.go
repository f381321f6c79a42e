package mock

import (
	"context"

	"github.com/fhuszti/videos-ms-go/internal/model"
)

type SentNotification struct {
	UserID string
	model.Notification
}

// Notifier records notifications.
type Notifier struct {
	Sent []SentNotification
}

func (m *Notifier) Notify(ctx context.Context, userID string, n model.Notification) {
	m.Sent = append(m.Sent, SentNotification{UserID: userID, Notification: n})
}

// Last returns the latest notification, or the zero value.
func (m *Notifier) Last() SentNotification {
	if len(m.Sent) == 0 {
		return SentNotification{}
	}
	return m.Sent[len(m.Sent)-1]
}
