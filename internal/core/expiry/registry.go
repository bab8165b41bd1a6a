package expiry

import (
	"time"

	"github.com/hay-kot/tempbox/pkg/kv"
)

// DefaultSoonWindow is the early-warning window used when none is given.
const DefaultSoonWindow = 60 * time.Minute

// Registry is the in-memory bookkeeping of tracked resources. It never
// evicts on its own: a record stays until it is removed explicitly, however
// long ago it expired.
//
// Single operations are safe for concurrent use. Sequences of operations
// are not atomic.
type Registry struct {
	store *kv.Store[string, Record]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{store: kv.New[string, Record]()}
}

// Add inserts rec, replacing any record with the same id.
func (r *Registry) Add(rec Record) {
	r.store.Set(rec.ID, rec)
}

// Get returns the record with the given id.
func (r *Registry) Get(id string) (Record, bool) {
	return r.store.Get(id)
}

// GetAll returns every record in unspecified order.
func (r *Registry) GetAll() []Record {
	return r.store.Values()
}

// GetExpired returns the records with ExpiresAt <= now.
func (r *Registry) GetExpired(now time.Time) []Record {
	return r.store.Filter(func(rec Record) bool {
		return rec.Expired(now)
	})
}

// GetExpiringSoon returns the records with now < ExpiresAt <= now+window.
// Already expired records are excluded, so the result never overlaps
// GetExpired for the same now.
func (r *Registry) GetExpiringSoon(window time.Duration, now time.Time) []Record {
	threshold := now.Add(window)
	return r.store.Filter(func(rec Record) bool {
		return rec.ExpiresAt.After(now) && !rec.ExpiresAt.After(threshold)
	})
}

// Remove deletes one record and reports whether it was present.
func (r *Registry) Remove(id string) bool {
	return r.store.Delete(id)
}

// RemoveMultiple deletes every given id. Unknown ids are ignored.
func (r *Registry) RemoveMultiple(ids []string) {
	r.store.DeleteBatch(ids)
}

// Clear removes all records.
func (r *Registry) Clear() {
	r.store.Clear()
}

// Size returns the number of records.
func (r *Registry) Size() int {
	return r.store.Len()
}
