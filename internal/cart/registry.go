package cart

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/MoaeadAlhosami/STREETWEER/internal/kvstore"
	apperrors "github.com/MoaeadAlhosami/STREETWEER/pkg/errors"
)

// DefaultIdleTTL is how long a session store stays in memory after its last
// use when NewRegistry is given no TTL.
const DefaultIdleTTL = 30 * time.Minute

type entry struct {
	store    *Store
	lastUsed time.Time
}

// Registry hands out one hydrated Store per session. Stores idle for longer
// than the TTL are dropped by Sweep and rehydrated from their slot on the
// next Get. The TTL must exceed the longest request so that a store is never
// dropped while a handler still holds it.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	kv      kvstore.Store
	ttl     time.Duration
	logger  *slog.Logger
	nowFunc func() time.Time // injectable clock for testing
}

// NewRegistry creates a registry whose stores persist into kv. A ttl of zero
// or less uses DefaultIdleTTL.
func NewRegistry(kv kvstore.Store, ttl time.Duration, logger *slog.Logger) *Registry {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	return &Registry{
		entries: make(map[string]*entry),
		kv:      kv,
		ttl:     ttl,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// SessionKey returns the slot key for sessionID.
func SessionKey(sessionID string) string {
	return StorageKey + ":" + sessionID
}

// Get returns the store for sessionID, creating and hydrating it on first use.
// Hydration reads the slot without holding the registry lock; when two callers
// race on a new session the first one registered wins.
func (r *Registry) Get(ctx context.Context, sessionID string) (*Store, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	if s, ok := r.lookup(sessionID); ok {
		return s, nil
	}

	fresh := NewStore(r.kv, SessionKey(sessionID), r.logger)
	if err := fresh.Hydrate(ctx); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	if e, ok := r.entries[sessionID]; ok {
		e.lastUsed = now
		return e.store, nil
	}
	r.entries[sessionID] = &entry{store: fresh, lastUsed: now}
	activeSessions.Inc()
	return fresh, nil
}

func (r *Registry) lookup(sessionID string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok {
		return nil, false
	}
	e.lastUsed = r.nowFunc()
	return e.store, true
}

// Sweep drops every store not used within the TTL and returns how many were
// dropped. Persisted slots are kept.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	dropped := 0
	for id, e := range r.entries {
		if now.Sub(e.lastUsed) > r.ttl {
			delete(r.entries, id)
			dropped++
		}
	}
	activeSessions.Sub(float64(dropped))
	return dropped
}

// RunSweeper calls Sweep every interval until ctx is canceled.
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug("idle cart sessions dropped", slog.Int("count", n))
			}
		}
	}
}

// TTL returns the idle time after which a session store is dropped.
func (r *Registry) TTL() time.Duration {
	return r.ttl
}

// Len returns the number of sessions held in memory.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
