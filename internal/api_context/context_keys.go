package api_context

import (
	"context"
	"time"
)

type ctxKey string

const (
	AuthUserIDKey    ctxKey = "authUserID"
	AuthEmailKey     ctxKey = "authEmail"
	AuthTokenIDKey   ctxKey = "authTokenID"
	AuthExpiresAtKey ctxKey = "authExpiresAt"
)

func AuthUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(AuthUserIDKey).(string)
	return id, ok && id != ""
}

func AuthEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(AuthEmailKey).(string)
	return email, ok
}

func AuthTokenIDFromContext(ctx context.Context) (string, bool) {
	jti, ok := ctx.Value(AuthTokenIDKey).(string)
	return jti, ok && jti != ""
}

func AuthExpiresAtFromContext(ctx context.Context) (time.Time, bool) {
	exp, ok := ctx.Value(AuthExpiresAtKey).(time.Time)
	return exp, ok
}

// WithIdentity returns a copy of ctx carrying the authenticated caller.
func WithIdentity(ctx context.Context, userID, email, tokenID string, expiresAt time.Time) context.Context {
	ctx = context.WithValue(ctx, AuthUserIDKey, userID)
	ctx = context.WithValue(ctx, AuthEmailKey, email)
	ctx = context.WithValue(ctx, AuthTokenIDKey, tokenID)
	ctx = context.WithValue(ctx, AuthExpiresAtKey, expiresAt)
	return ctx
}
