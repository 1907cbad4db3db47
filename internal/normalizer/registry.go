package normalizer

// Entry is one registered key with its surrogate id.
type Entry[K comparable] struct {
	Key K
	ID  int64
}

// Registry assigns dense 1-based surrogate ids to distinct keys in first-seen
// order. An id is never reassigned within a registry's lifetime.
type Registry[K comparable] struct {
	ids   map[K]int64
	order []Entry[K]
}

// NewRegistry creates an empty registry.
func NewRegistry[K comparable]() *Registry[K] {
	return &Registry[K]{
		ids: make(map[K]int64),
	}
}

// AssignOrGet returns the id of key, assigning the next one if key is new.
// created is true only on the first call for a key.
func (r *Registry[K]) AssignOrGet(key K) (id int64, created bool) {
	if id, ok := r.ids[key]; ok {
		return id, false
	}

	id = int64(len(r.order)) + 1
	r.ids[key] = id
	r.order = append(r.order, Entry[K]{Key: key, ID: id})

	return id, true
}

// Lookup resolves key without registering it.
func (r *Registry[K]) Lookup(key K) (int64, bool) {
	id, ok := r.ids[key]

	return id, ok
}

// Entries returns the registered keys in first-seen order.
func (r *Registry[K]) Entries() []Entry[K] {
	out := make([]Entry[K], len(r.order))
	copy(out, r.order)

	return out
}

// Len returns the number of registered keys.
func (r *Registry[K]) Len() int {
	return len(r.order)
}
