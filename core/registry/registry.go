package registry

import "sync"

// Registry is a global key-value store for extension registries (cmd, cron,
// api, graphql). Keys can be locked after init to make them immutable.
type Registry struct {
	m      sync.Map
	locked sync.Map // key -> struct{}
}

// GlobalRegistry is the process-wide registry instance.
var GlobalRegistry = &Registry{}

// SetGlobal stores a value for a key. Panics if the key is locked.
func (r *Registry) SetGlobal(key string, value interface{}) {
	if r.IsLocked(key) {
		panic("core/registry: " + key + " is locked")
	}
	r.m.Store(key, value)
}

// GetGlobal retrieves a value for a key.
func (r *Registry) GetGlobal(key string) (interface{}, bool) {
	return r.m.Load(key)
}

// Lock makes a key immutable. Called by Apply/first-use in the extension
// registries.
func (r *Registry) Lock(key string) {
	r.locked.Store(key, struct{}{})
}

// IsLocked reports whether a key is locked.
func (r *Registry) IsLocked(key string) bool {
	_, ok := r.locked.Load(key)
	return ok
}

// UnlockForTesting removes the lock on a key (for tests only).
func (r *Registry) UnlockForTesting(key string) {
	r.locked.Delete(key)
}
