// Package session owns the per-user sessions. Each session holds its own
// scenario store and runner; nothing is shared between sessions.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"epidemic-scenarios/internal/engine"
	"epidemic-scenarios/internal/metrics"
	"epidemic-scenarios/internal/store"
)

// Disclaimer is shown once, when the session is created.
const Disclaimer = "This tool compares hypothetical intervention scenarios " +
	"with a simplified compartmental model. Its outputs are illustrative " +
	"and must not be read as forecasts or as medical or policy advice."

// Session is one user's isolated working state.
type Session struct {
	ID     string
	Store  *store.Store
	Runner *engine.Runner

	lastSeen time.Time
}

// Registry tracks live sessions and expires idle ones.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	engine  engine.ModelEngine
	icuBeds int
	ttl     time.Duration
	log     zerolog.Logger
	metrics *metrics.Collector
}

func NewRegistry(eng engine.ModelEngine, icuBeds int, ttl time.Duration, log zerolog.Logger, mc *metrics.Collector) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		engine:   eng,
		icuBeds:  icuBeds,
		ttl:      ttl,
		log:      log,
		metrics:  mc,
	}
}

// Create opens a new session with an empty store.
func (r *Registry) Create() *Session {
	id := uuid.NewString()
	st := store.New()
	s := &Session{
		ID:       id,
		Store:    st,
		Runner:   engine.New(st, r.engine, r.icuBeds, r.log.With().Str("session_id", id).Logger(), r.metrics),
		lastSeen: time.Now(),
	}

	r.mu.Lock()
	r.sessions[id] = s
	n := len(r.sessions)
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.ActiveSessions.Set(float64(n))
	}
	r.log.Info().Str("session_id", id).Msg("session created")
	return s
}

// Get looks a session up and marks it seen.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if ok {
		s.lastSeen = time.Now()
	}
	return s, ok
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Janitor sweeps idle sessions at the given interval until ctx is done. It
// does no domain work; it only drops sessions idle past the TTL.
func (r *Registry) Janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.sweep(now)
		}
	}
}

func (r *Registry) sweep(now time.Time) {
	r.mu.Lock()
	var expired []string
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.ttl {
			expired = append(expired, id)
			delete(r.sessions, id)
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.ActiveSessions.Set(float64(n))
	}
	for _, id := range expired {
		r.log.Info().Str("session_id", id).Msg("session expired")
	}
}
