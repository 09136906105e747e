package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/parley/internal/logging"
	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound is returned for ids the manager does not hold.
	ErrSessionNotFound = errors.New("session not found")
	// ErrLimitReached is returned by Create when the session limit is hit.
	ErrLimitReached = errors.New("session limit reached")
)

// lockEntry holds the mutex guarding one Play.
type lockEntry struct {
	mu      sync.Mutex
	play    *Play
	created time.Time
	removed bool // set under mu by Delete
}

// Manager orchestrates session access, ensuring safe concurrent operations.
type Manager struct {
	factory Factory

	mu       sync.Mutex            // Global lock for the map
	sessions map[string]*lockEntry // Map of live sessions

	limit  int
	newID  func() string
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithLimit caps the number of live sessions. Zero means no cap.
func WithLimit(n int) Option {
	return func(m *Manager) {
		m.limit = n
	}
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.newID = fn
	}
}

// NewManager creates a Session Manager whose sessions come from factory.
func NewManager(factory Factory, opts ...Option) *Manager {
	m := &Manager{
		factory:  factory,
		sessions: make(map[string]*lockEntry),
		newID:    uuid.NewString,
		logger:   logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a new session and returns its id.
func (m *Manager) Create() (string, error) {
	m.mu.Lock()
	full := m.limit > 0 && len(m.sessions) >= m.limit
	m.mu.Unlock()
	if full {
		return "", ErrLimitReached
	}

	play, err := m.factory()
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.limit > 0 && len(m.sessions) >= m.limit {
		return "", ErrLimitReached
	}
	id := m.newID()
	if _, exists := m.sessions[id]; exists {
		return "", fmt.Errorf("create session: id %q already in use", id)
	}
	m.sessions[id] = &lockEntry{play: play, created: time.Now()}
	m.logger.Debug("session created", "session_id", id)
	return id, nil
}

// acquire returns the locked entry for id. The caller must unlock entry.mu.
func (m *Manager) acquire(id string) (*lockEntry, error) {
	m.mu.Lock()
	entry, exists := m.sessions[id]
	m.mu.Unlock()
	if !exists {
		return nil, fmt.Errorf("%q: %w", id, ErrSessionNotFound)
	}

	entry.mu.Lock()
	if entry.removed {
		// Deleted while we waited.
		entry.mu.Unlock()
		return nil, fmt.Errorf("%q: %w", id, ErrSessionNotFound)
	}
	return entry, nil
}

// WithLock executes fn while holding the lock for the session.
func (m *Manager) WithLock(id string, fn func(*Play) error) error {
	entry, err := m.acquire(id)
	if err != nil {
		return err
	}
	defer entry.mu.Unlock()
	return fn(entry.play)
}

// Delete removes the session. Callers blocked in WithLock see ErrSessionNotFound.
func (m *Manager) Delete(id string) error {
	entry, err := m.acquire(id)
	if err != nil {
		return err
	}
	entry.removed = true
	entry.mu.Unlock()

	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	m.logger.Debug("session deleted", "session_id", id)
	return nil
}

// Prune deletes sessions created before cutoff and returns how many went.
func (m *Manager) Prune(cutoff time.Time) int {
	m.mu.Lock()
	var stale []string
	for id, entry := range m.sessions {
		if entry.created.Before(cutoff) {
			stale = append(stale, id)
		}
	}
	m.mu.Unlock()

	n := 0
	for _, id := range stale {
		if err := m.Delete(id); err == nil {
			n++
		}
	}
	if n > 0 {
		m.logger.Info("sessions pruned", "count", n)
	}
	return n
}

// List returns the live session ids, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
