// Package ids provides a small dense-id allocator shared by the term
// language and the e-graph. Both components need ids that are dense in
// [0, N) for a single owner (one expression DAG, one e-graph), so a
// monotonic per-owner counter is enough; ids are scoped to one owning
// structure and are never compared across owners.
package ids

// ID is a dense, zero-based identifier local to a single owner.
type ID int

// Invalid is returned by lookups that find nothing.
const Invalid ID = -1

// Allocator hands out a dense sequence of ids starting at 0.
type Allocator struct {
	next ID
}

// Next returns the next unused id and advances the allocator.
func (a *Allocator) Next() ID {
	id := a.next
	a.next++
	return id
}

// Len reports how many ids have been allocated so far.
func (a *Allocator) Len() int {
	return int(a.next)
}
