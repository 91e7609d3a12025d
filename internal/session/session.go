package session

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no session matches the id.
	ErrNotFound = errors.New("session not found")
	// ErrExpired is returned for sessions past their expiry.
	ErrExpired = errors.New("session expired")
)

// Session binds a console operator to the bearer token the bookshop API
// issued at login. It lives from Login until Logout or expiry.
type Session struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	Token      string    `json:"-"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at"`
}

// BearerToken lets a Session be handed straight to the gateway.
func (s Session) BearerToken() string {
	return s.Token
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Session ids travel in cookies; stores only ever see their hash.
func hashID(id string) string {
	hash := sha256.Sum256([]byte(id))
	return hex.EncodeToString(hash[:])
}
