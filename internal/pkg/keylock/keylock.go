package keylock

import "sync"

// Registry hands out one mutex per key, creating it lazily on first access
// and reusing the same instance afterwards. Entries are never evicted, so a
// registry grows with the number of distinct keys seen over the process
// lifetime. A registry is meant to be owned by the component serializing on
// it rather than shared as process-wide state.
type Registry struct {
	locks sync.Map // key -> *sync.Mutex
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{}
}

// Get returns the mutex associated with key. The first call for a key
// creates the mutex; concurrent first calls for the same key all observe a
// single instance because creation goes through LoadOrStore.
func (r *Registry) Get(key int64) *sync.Mutex {
	if mu, ok := r.locks.Load(key); ok {
		return mu.(*sync.Mutex)
	}
	mu, _ := r.locks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Len reports how many keys currently have a lock allocated.
func (r *Registry) Len() int {
	n := 0
	r.locks.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}
