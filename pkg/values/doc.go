/*
Package values implements the typed value registry shared by conditions and actions.

Every entry is registered once under a unique key and from then on addressed only
through the Handle returned by registration. The handle carries the value type as a
type parameter, so reads and writes are statically typed:

	reg := values.New()
	gold := values.MustRegister(reg, "gold", 100)

	_ = values.Update(reg, gold, func(v int) int { return v - 25 })
	n, _ := values.Get(reg, gold) // 75

Handles are bound to the registry that issued them; using a handle with another
registry fails with ErrUnknownHandle.
*/
package values
