package session

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lumio-ai/benchdash/internal/options"
)

// DefaultTTL is how long an idle session is kept when none is configured.
const DefaultTTL = 30 * time.Minute

// Store holds form sessions in memory. Upload directories live under root.
type Store struct {
	root   string
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*Session
}

// NewStore creates a store keeping uploads under root. A nil logger uses
// slog.Default().
func NewStore(root string, ttl time.Duration, logger *slog.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		root:     root,
		logger:   logger,
		now:      time.Now,
		ttl:      ttl,
		sessions: map[string]*Session{},
	}
}

// SetTTL changes the idle timeout for subsequent sweeps.
func (st *Store) SetTTL(ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	st.mu.Lock()
	st.ttl = ttl
	st.mu.Unlock()
}

// Create starts a session for provider with a fresh controller.
func (st *Store) Create(provider string, set options.Set, state options.State) *Session {
	id := uuid.New().String()
	s := &Session{
		ID:         id,
		Provider:   provider,
		Controller: options.NewController(set, state),
		dir:        filepath.Join(st.root, id),
		lastSeen:   st.now(),
	}

	st.mu.Lock()
	st.sessions[id] = s
	st.mu.Unlock()

	st.logger.Debug("session.created", "session", id, "provider", provider)
	return s
}

// Get returns a live session and marks it as used.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	st.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.touch(st.now())
	return s, nil
}

// Discard closes a session's controller and removes its uploads. Unknown
// ids are ignored.
func (st *Store) Discard(id string) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if !ok {
		return
	}
	st.teardown(s)
	st.logger.Debug("session.discarded", "session", id)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep evicts sessions idle longer than the TTL and returns how many.
// Sessions with a submission in flight are kept.
func (st *Store) Sweep() int {
	st.mu.Lock()
	cutoff := st.now().Add(-st.ttl)
	var expired []*Session
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) && !s.Controller.Submitting() {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range expired {
		st.teardown(s)
	}
	if len(expired) > 0 {
		st.logger.Info("session.sweep", "evicted", len(expired), "live", st.Len())
	}
	return len(expired)
}

// Run sweeps periodically until ctx is done, then discards every session.
func (st *Store) Run(ctx context.Context) {
	st.mu.Lock()
	interval := st.ttl / 2
	st.mu.Unlock()
	if interval < time.Second {
		interval = time.Second
	}
	if interval > time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			st.closeAll()
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}

func (st *Store) closeAll() {
	st.mu.Lock()
	all := st.sessions
	st.sessions = map[string]*Session{}
	st.mu.Unlock()
	for _, s := range all {
		st.teardown(s)
	}
}

func (st *Store) teardown(s *Session) {
	s.Controller.Close()
	if err := os.RemoveAll(s.dir); err != nil {
		st.logger.Warn("session.cleanup failed", "session", s.ID, "error", err)
	}
}
