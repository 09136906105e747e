package values

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/parley/internal/logging"
)

// Registry stores shared values that conditions and actions read and write.
// Entries are addressed only through the Handle returned at registration.
// Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	keys   map[string]slot
	slots  map[slot]string
	logger *slog.Logger
}

// slot is the untyped view of a cell, used only for bookkeeping.
type slot interface {
	isSlot()
}

type cell[T any] struct {
	value T
}

func (*cell[T]) isSlot() {}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report registry misuse.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		keys:   make(map[string]slot),
		slots:  make(map[slot]string),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register stores initial under key and returns a read-write handle to it.
// Keys are unique across all value types.
func Register[T any](r *Registry, key string, initial T) (Handle[T], error) {
	return register(r, key, initial, false)
}

// RegisterReadOnly stores initial under key and returns a handle that rejects Set.
func RegisterReadOnly[T any](r *Registry, key string, initial T) (Handle[T], error) {
	return register(r, key, initial, true)
}

// MustRegister is like Register but panics on error.
// Intended for static content tables.
func MustRegister[T any](r *Registry, key string, initial T) Handle[T] {
	h, err := Register(r, key, initial)
	if err != nil {
		panic(err)
	}
	return h
}

// MustRegisterReadOnly is like RegisterReadOnly but panics on error.
func MustRegisterReadOnly[T any](r *Registry, key string, initial T) Handle[T] {
	h, err := RegisterReadOnly(r, key, initial)
	if err != nil {
		panic(err)
	}
	return h
}

func register[T any](r *Registry, key string, initial T, readOnly bool) (Handle[T], error) {
	if r == nil {
		return Handle[T]{}, fmt.Errorf("register %q: %w", key, ErrUnknownHandle)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.keys[key]; exists {
		err := fmt.Errorf("key %q: %w", key, ErrDuplicateKey)
		r.logger.Error("value registration rejected", "key", key, "error", err)
		return Handle[T]{}, err
	}

	c := &cell[T]{value: initial}
	r.keys[key] = c
	r.slots[c] = key

	return Handle[T]{owner: r, cell: c, key: key, readOnly: readOnly}, nil
}

// Get returns the value behind h.
func Get[T any](r *Registry, h Handle[T]) (T, error) {
	var zero T
	if err := r.check(h.owner, h.cell, h.key); err != nil {
		return zero, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return h.cell.value, nil
}

// Set replaces the value behind h.
func Set[T any](r *Registry, h Handle[T], value T) error {
	return Update(r, h, func(T) T { return value })
}

// Update applies fn to the current value and stores the result in one step.
func Update[T any](r *Registry, h Handle[T], fn func(T) T) error {
	if err := r.check(h.owner, h.cell, h.key); err != nil {
		return err
	}
	if h.readOnly {
		err := fmt.Errorf("key %q: %w", h.key, ErrReadOnly)
		r.logger.Error("value write rejected", "key", h.key, "error", err)
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	h.cell.value = fn(h.cell.value)
	return nil
}

// check verifies that the handle parts were issued by r and are still live.
func (r *Registry) check(owner *Registry, s slot, key string) error {
	if r == nil || owner != r {
		return fmt.Errorf("key %q: %w", key, ErrUnknownHandle)
	}
	r.mu.RLock()
	_, live := r.slots[s]
	r.mu.RUnlock()
	if !live {
		err := fmt.Errorf("key %q: %w", key, ErrUnknownHandle)
		r.logger.Error("stale value handle", "key", key, "error", err)
		return err
	}
	return nil
}

// Remove deletes the entry under key and invalidates its handle.
// The key may be registered again afterwards.
func (r *Registry) Remove(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.keys[key]
	if !ok {
		return false
	}
	delete(r.keys, key)
	delete(r.slots, s)
	return true
}

// Has reports whether key is registered.
func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.keys[key]
	return ok
}

// Keys returns the registered keys in lexical order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.keys))
	for k := range r.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keys)
}
