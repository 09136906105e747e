package values

// Handle is the capability to read (and, unless read-only, write) one registry entry.
// The type parameter fixes the value type at registration, so access never needs a type check.
// The zero Handle is not issued by any registry.
type Handle[T any] struct {
	owner    *Registry
	cell     *cell[T]
	key      string
	readOnly bool
}

// Key returns the key the handle was registered under.
func (h Handle[T]) Key() string {
	return h.key
}

// ReadOnly reports whether Set is rejected for this handle.
func (h Handle[T]) ReadOnly() bool {
	return h.readOnly
}

// Valid reports whether the handle was issued by a registry.
// It does not check whether the entry was removed since.
func (h Handle[T]) Valid() bool {
	return h.owner != nil && h.cell != nil
}
