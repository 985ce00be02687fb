package auth

import (
	"context"
)

type contextKey string

var sessionKey contextKey = "session"

func SetSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

func GetSession(ctx context.Context) *Session {
	val := ctx.Value(sessionKey)
	if session, ok := val.(*Session); ok {
		return session
	}
	return nil
}
