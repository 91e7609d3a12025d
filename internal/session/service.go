package session

import (
	"context"
	"errors"
	"log"
	"time"

	"bookconsole/internal/platform/crypto"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	auth Authenticator
	ttl  time.Duration
	now  func() time.Time
}

// NewService builds the session service. ttl bounds sessions whose token
// does not carry an expiry of its own.
func NewService(repo Repository, auth Authenticator, ttl time.Duration) *Service {
	return &Service{
		repo: repo,
		auth: auth,
		ttl:  ttl,
		now:  time.Now,
	}
}

// Login authenticates against the bookshop API and opens a session holding
// the returned token. The returned Session.ID is the cookie value.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	token, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return Session{}, err
	}

	now := s.now()
	sess := Session{
		ID:         uuid.NewString(),
		Username:   username,
		Token:      token,
		ExpiresAt:  now.Add(s.ttl),
		CreatedAt:  now,
		LastUsedAt: now,
	}
	if claims, err := crypto.ReadClaims(token); err == nil {
		sess.Role = claims.Role
		if exp := claims.Expiry(); !exp.IsZero() {
			sess.ExpiresAt = exp
		}
	}
	if sess.Expired(now) {
		return Session{}, ErrExpired
	}

	stored := sess
	stored.ID = hashID(sess.ID)
	if err := s.repo.Create(ctx, stored); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Get resolves a cookie value to a live session. Expired sessions are
// removed on sight.
func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, ErrNotFound
	}
	key := hashID(id)
	sess, err := s.repo.Get(ctx, key)
	if err != nil {
		return Session{}, err
	}
	now := s.now()
	if sess.Expired(now) {
		if err := s.repo.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
			log.Printf("session delete failed: error=%v", err)
		}
		return Session{}, ErrExpired
	}
	if err := s.repo.Touch(ctx, key, now); err != nil {
		log.Printf("session touch failed: error=%v", err)
	}
	sess.ID = id
	sess.LastUsedAt = now
	return sess, nil
}

// Live reports whether id still names an unexpired session. Lookup errors
// other than a missing session count as live.
func (s *Service) Live(ctx context.Context, id string) bool {
	if id == "" {
		return false
	}
	sess, err := s.repo.Get(ctx, hashID(id))
	switch {
	case errors.Is(err, ErrNotFound):
		return false
	case err != nil:
		log.Printf("session lookup failed: error=%v", err)
		return true
	}
	return !sess.Expired(s.now())
}

// Logout ends the session. Unknown ids are not an error.
func (s *Service) Logout(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, hashID(id))
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

func (s *Service) CleanupExpired(ctx context.Context) (int64, error) {
	return s.repo.CleanupExpired(ctx, s.now())
}

// RunJanitor removes expired sessions every interval until ctx is done.
// afterSweep, when set, runs after every cleanup that did not fail.
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration, afterSweep func(ctx context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.CleanupExpired(ctx)
			if err != nil {
				log.Printf("session cleanup failed: error=%v", err)
				continue
			}
			if n > 0 {
				log.Printf("session cleanup removed=%d", n)
			}
			if afterSweep != nil {
				afterSweep(ctx)
			}
		}
	}
}
