package session

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo keeps sessions in process memory. It is used when no database
// is configured; sessions do not survive a restart.
type MemoryRepo struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{sessions: make(map[string]Session)}
}

func (r *MemoryRepo) Create(ctx context.Context, s Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, idHash string) (Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[idHash]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, idHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[idHash]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, idHash)
	return nil
}

func (r *MemoryRepo) Touch(ctx context.Context, idHash string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[idHash]
	if !ok {
		return ErrNotFound
	}
	s.LastUsedAt = at
	r.sessions[idHash] = s
	return nil
}

func (r *MemoryRepo) CleanupExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for key, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, key)
			n++
		}
	}
	return n, nil
}
