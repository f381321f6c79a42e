package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/model"
	"github.com/fhuszti/videos-ms-go/internal/port"
	"github.com/fhuszti/videos-ms-go/internal/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionTTL = 24 * time.Hour

type RedisSessionStore struct {
	client *redis.Client
}

// compile-time check: *RedisSessionStore must satisfy port.SessionStore
var _ port.SessionStore = (*RedisSessionStore)(nil)

func NewClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Get(ctx context.Context, userID string) (*model.UploadSession, error) {
	val, err := s.client.Get(ctx, sessionKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.NewUploadSession(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var st model.Stored
	if err := json.Unmarshal(val, &st); err != nil {
		return nil, fmt.Errorf("unmarshal failed: %w", err)
	}
	return st.ToSession(), nil
}

func (s *RedisSessionStore) Save(ctx context.Context, sess *model.UploadSession) error {
	sess.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(sess.ToStored())
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(sess.UserID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// releaseLock deletes the lock only while it still holds the caller's token.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (s *RedisSessionStore) AcquireLock(ctx context.Context, userID string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewUUID().String()
	ok, err := s.client.SetNX(ctx, lockKey(userID), token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("redis setnx failed: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (s *RedisSessionStore) ReleaseLock(ctx context.Context, userID, token string) error {
	log.Printf("releasing upload lock of user %q...", userID)

	n, err := releaseLock.Run(ctx, s.client, []string{lockKey(userID)}, token).Int()
	if err != nil {
		return fmt.Errorf("redis release failed: %w", err)
	}
	if n == 0 {
		log.Printf("upload lock of user %q was already taken over, left in place", userID)
	}
	return nil
}

func sessionKey(userID string) string {
	return "upload_session:" + userID
}

func lockKey(userID string) string {
	return "upload_lock:" + userID
}
