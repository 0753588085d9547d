package record

import "github.com/LambdaTest/xdist-tracker/pkg/core"

// Record is an insertion ordered set of test identifiers.
type Record struct {
	ids  []core.TestID
	seen map[core.TestID]struct{}
}

// New returns an empty Record.
func New() *Record {
	return &Record{seen: make(map[core.TestID]struct{})}
}

// Add appends id and reports whether it was new. Re-adding is a no-op.
func (r *Record) Add(id core.TestID) bool {
	if _, exists := r.seen[id]; exists {
		return false
	}
	r.seen[id] = struct{}{}
	r.ids = append(r.ids, id)
	return true
}

// Contains reports whether id was added.
func (r *Record) Contains(id core.TestID) bool {
	_, exists := r.seen[id]
	return exists
}

// Len returns the number of identifiers.
func (r *Record) Len() int {
	return len(r.ids)
}

// IDs returns a copy of the identifiers in insertion order.
func (r *Record) IDs() []core.TestID {
	out := make([]core.TestID, len(r.ids))
	copy(out, r.ids)
	return out
}
