package record

import (
	"sort"

	"github.com/LambdaTest/xdist-tracker/pkg/core"
)

// Spec is the immutable, ordered list of tests to replay.
type Spec struct {
	ids   []core.TestID
	index map[core.TestID]int
}

// NewSpec builds a Spec keeping ids in the given order. The first occurrence
// of a repeated identifier defines its position.
func NewSpec(ids []core.TestID) *Spec {
	s := &Spec{
		ids:   make([]core.TestID, len(ids)),
		index: make(map[core.TestID]int, len(ids)),
	}
	copy(s.ids, ids)
	for i, id := range s.ids {
		if _, exists := s.index[id]; !exists {
			s.index[id] = i
		}
	}
	return s
}

// IDs returns a copy of the identifiers in file order.
func (s *Spec) IDs() []core.TestID {
	out := make([]core.TestID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of lines in the spec.
func (s *Spec) Len() int {
	return len(s.ids)
}

// Index returns the position of the first occurrence of id.
func (s *Spec) Index(id core.TestID) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// Modules returns the distinct modules of the spec in first seen order.
func (s *Spec) Modules() []core.TestID {
	seen := make(map[core.TestID]struct{})
	modules := make([]core.TestID, 0)
	for _, id := range s.ids {
		module := id.Module()
		if _, exists := seen[module]; exists {
			continue
		}
		seen[module] = struct{}{}
		modules = append(modules, module)
	}
	return modules
}

// Filter returns the candidates present in the spec, ordered by their spec
// position. Candidates missing from the spec are dropped, spec entries missing
// from the candidates are ignored.
func (s *Spec) Filter(candidates []core.TestID) []core.TestID {
	kept := make([]core.TestID, 0, len(candidates))
	for _, id := range candidates {
		if _, ok := s.index[id]; ok {
			kept = append(kept, id)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return s.index[kept[i]] < s.index[kept[j]]
	})
	return kept
}
