package notifier

import (
	"context"
	"encoding/json"

	"github.com/fhuszti/videos-ms-go/internal/logger"
	"github.com/fhuszti/videos-ms-go/internal/model"
	"github.com/fhuszti/videos-ms-go/internal/port"
	"github.com/redis/go-redis/v9"
)

// LogNotifier writes every notification to the structured log.
type LogNotifier struct{}

// compile-time check: *LogNotifier must satisfy port.Notifier
var _ port.Notifier = (*LogNotifier)(nil)

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (LogNotifier) Notify(ctx context.Context, userID string, n model.Notification) {
	attrs := []any{"recipient", userID, "title", n.Title, "description", n.Description}
	if n.Severity == model.SeverityDestructive {
		logger.Warn(ctx, "🔔 notification", attrs...)
		return
	}
	logger.Info(ctx, "🔔 notification", attrs...)
}

// RedisNotifier publishes notifications on the notifications:{userID} channel.
type RedisNotifier struct {
	client *redis.Client
}

// compile-time check: *RedisNotifier must satisfy port.Notifier
var _ port.Notifier = (*RedisNotifier)(nil)

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func Channel(userID string) string {
	return "notifications:" + userID
}

func (r *RedisNotifier) Notify(ctx context.Context, userID string, n model.Notification) {
	if userID == "" {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to marshal notification: %v", err)
		return
	}
	if err := r.client.Publish(ctx, Channel(userID), payload).Err(); err != nil {
		logger.Warnf(ctx, "⚠️  Failed to publish notification for user %q: %v", userID, err)
	}
}

// Multi fans a notification out to several notifiers.
type Multi []port.Notifier

// compile-time check: Multi must satisfy port.Notifier
var _ port.Notifier = Multi(nil)

func (m Multi) Notify(ctx context.Context, userID string, n model.Notification) {
	for _, nt := range m {
		nt.Notify(ctx, userID, n)
	}
}
