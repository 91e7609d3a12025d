package console

import (
	"context"
	"log"
	"sync"

	"bookconsole/internal/gateway"
)

// Registry keeps one View per session.
type Registry struct {
	mu     sync.Mutex
	views  map[string]*View
	gw     Gateway
	logger *log.Logger
}

func NewRegistry(gw Gateway, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		views:  make(map[string]*View),
		gw:     gw,
		logger: logger,
	}
}

// View returns the view of sessionID, creating and mounting it on first use.
func (r *Registry) View(ctx context.Context, sessionID string, creds gateway.Credentials) *View {
	r.mu.Lock()
	v, ok := r.views[sessionID]
	if !ok {
		v = NewView(r.gw, creds, r.logger)
		r.views[sessionID] = v
	}
	r.mu.Unlock()

	v.mountOnce(ctx)
	return v
}

// Prune drops every view whose session live reports as gone and returns how
// many were dropped. live is called without the registry lock held.
func (r *Registry) Prune(live func(sessionID string) bool) int {
	r.mu.Lock()
	ids := make([]string, 0, len(r.views))
	for id := range r.views {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	var gone []string
	for _, id := range ids {
		if !live(id) {
			gone = append(gone, id)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range gone {
		delete(r.views, id)
	}
	return len(gone)
}

// Drop forgets the view of sessionID.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.views, sessionID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}
