package session

import (
	"context"
	"time"
)

// Repository persists sessions keyed by the hash of their id.
type Repository interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, idHash string) (Session, error)
	Delete(ctx context.Context, idHash string) error
	Touch(ctx context.Context, idHash string, at time.Time) error
	CleanupExpired(ctx context.Context, now time.Time) (int64, error)
}

// Authenticator exchanges operator credentials for an API token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}
