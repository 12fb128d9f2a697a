package solver

import (
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/crossfill/crossword"
)

// selectUnassigned picks the next slot to fill: smallest remaining
// domain first (MRV), most crossing slots on ties (degree). The stable
// sort falls back to the crossword's canonical variable order, so the
// choice is deterministic.
func (s *Solver) selectUnassigned(a Assignment) crossword.Variable {
	unassigned := lo.Filter(s.cw.Variables, func(v crossword.Variable, _ int) bool {
		_, ok := a[v]
		return !ok
	})
	sort.SliceStable(unassigned, func(i, j int) bool {
		di, dj := len(s.domains[unassigned[i]]), len(s.domains[unassigned[j]])
		if di != dj {
			return di < dj
		}
		return len(s.cw.Neighbors(unassigned[i])) > len(s.cw.Neighbors(unassigned[j]))
	})
	return unassigned[0]
}

// orderDomainValues orders v's candidates least-constraining first: by
// how many candidates the word would knock out of unassigned crossing
// slots' domains, ascending. Ties break lexicographically so the order
// does not depend on map iteration.
func (s *Solver) orderDomainValues(v crossword.Variable, a Assignment) []string {
	type scored struct {
		word       string
		eliminated int
	}
	candidates := make([]scored, 0, len(s.domains[v]))
	for word := range s.domains[v] {
		eliminated := 0
		for _, n := range s.cw.Neighbors(v) {
			if _, assigned := a[n]; assigned {
				continue
			}
			ov, _ := s.cw.Overlap(v, n)
			for other := range s.domains[n] {
				if word[ov.X] != other[ov.Y] {
					eliminated++
				}
			}
		}
		candidates = append(candidates, scored{word, eliminated})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].eliminated != candidates[j].eliminated {
			return candidates[i].eliminated < candidates[j].eliminated
		}
		return candidates[i].word < candidates[j].word
	})
	return lo.Map(candidates, func(c scored, _ int) string {
		return c.word
	})
}
