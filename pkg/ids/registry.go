package ids

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/parley/internal/logging"
	"github.com/aretw0/parley/pkg/domain"
)

// ErrDuplicateID is returned by Register when the external id is already known.
var ErrDuplicateID = errors.New("external id already registered")

// ErrNotFound is returned by the total lookups when no mapping exists.
var ErrNotFound = errors.New("id not registered")

// Registry maps caller-facing node identifiers to dense internal ids and back.
// Registration is serialized; lookups of existing entries take no lock.
type Registry[K comparable] struct {
	mu       sync.Mutex
	next     domain.NodeID
	internal sync.Map // K -> domain.NodeID
	external sync.Map // domain.NodeID -> K
	logger   *slog.Logger
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for lookup failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates an empty registry. The first id handed out is 0.
func New[K comparable](opts ...Option) *Registry[K] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	return &Registry[K]{logger: o.logger}
}

// GetOrRegister returns the internal id for ext, minting the next id on first sight.
func (r *Registry[K]) GetOrRegister(ext K) domain.NodeID {
	if id, ok := r.Lookup(ext); ok {
		return id
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another caller may have registered ext while we waited.
	if id, ok := r.Lookup(ext); ok {
		return id
	}
	return r.mint(ext)
}

// Register mints a new internal id for ext and fails if ext is already known.
// On failure the id already assigned to ext is returned with the error.
func (r *Registry[K]) Register(ext K) (domain.NodeID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.Lookup(ext); ok {
		err := fmt.Errorf("%v (internal %d): %w", ext, id, ErrDuplicateID)
		r.logger.Error("id registration rejected", "external_id", fmt.Sprint(ext), "error", err)
		return id, err
	}
	return r.mint(ext), nil
}

// mint must be called with mu held.
// The reverse entry is stored first so a visible forward entry always has its inverse.
func (r *Registry[K]) mint(ext K) domain.NodeID {
	id := r.next
	r.next++
	r.external.Store(id, ext)
	r.internal.Store(ext, id)
	r.logger.Debug("id registered", "external_id", fmt.Sprint(ext), "internal_id", int(id))
	return id
}

// Lookup returns the internal id for ext, if registered.
func (r *Registry[K]) Lookup(ext K) (domain.NodeID, bool) {
	v, ok := r.internal.Load(ext)
	if !ok {
		return 0, false
	}
	return v.(domain.NodeID), true
}

// LookupExternal returns the external id for id, if registered.
func (r *Registry[K]) LookupExternal(id domain.NodeID) (K, bool) {
	v, ok := r.external.Load(id)
	if !ok {
		var zero K
		return zero, false
	}
	return v.(K), true
}

// InternalID returns the internal id for ext or ErrNotFound.
func (r *Registry[K]) InternalID(ext K) (domain.NodeID, error) {
	if id, ok := r.Lookup(ext); ok {
		return id, nil
	}
	err := fmt.Errorf("external id %v: %w", ext, ErrNotFound)
	r.logger.Error("unknown external id", "external_id", fmt.Sprint(ext))
	return 0, err
}

// ExternalID returns the external id for id or ErrNotFound.
func (r *Registry[K]) ExternalID(id domain.NodeID) (K, error) {
	if ext, ok := r.LookupExternal(id); ok {
		return ext, nil
	}
	var zero K
	r.logger.Error("unknown internal id", "internal_id", int(id))
	return zero, fmt.Errorf("internal id %d: %w", id, ErrNotFound)
}

// Len returns the number of registered ids.
func (r *Registry[K]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int(r.next)
}

// ExternalIDs returns every registered external id, indexed by internal id.
func (r *Registry[K]) ExternalIDs() []K {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]K, 0, int(r.next))
	for id := domain.NodeID(0); id < r.next; id++ {
		ext, _ := r.LookupExternal(id)
		out = append(out, ext)
	}
	return out
}

// Label formats id using its external id, falling back to the number.
func (r *Registry[K]) Label(id domain.NodeID) string {
	if ext, ok := r.LookupExternal(id); ok {
		return fmt.Sprint(ext)
	}
	return fmt.Sprintf("#%d", id)
}
