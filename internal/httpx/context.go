package httpx

import (
	"context"
	"net/http"

	"bookconsole/internal/session"
)

type contextKey string

const (
	sessionKey   contextKey = "session"
	requestIDKey contextKey = "requestID"
	accessKey    contextKey = "access"
)

// accessInfo is filled in by inner middleware so the access log, which
// wraps everything, can report who made the request.
type accessInfo struct {
	user string
}

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithRequestID returns a new context carrying the request ID.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// SessionFrom retrieves the operator session from the request context.
func SessionFrom(r *http.Request) (session.Session, bool) {
	s, ok := r.Context().Value(sessionKey).(session.Session)
	return s, ok
}

// UsernameFrom retrieves the operator name from the request context.
func UsernameFrom(r *http.Request) string {
	if s, ok := SessionFrom(r); ok {
		return s.Username
	}
	if info, ok := r.Context().Value(accessKey).(*accessInfo); ok {
		return info.user
	}
	return ""
}

// ContextWithSession returns a new context carrying s.
func ContextWithSession(ctx context.Context, s session.Session) context.Context {
	if info, ok := ctx.Value(accessKey).(*accessInfo); ok {
		info.user = s.Username
	}
	return context.WithValue(ctx, sessionKey, s)
}
