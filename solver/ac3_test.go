package solver

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/crossfill/crossword"
)

func domainSnapshot(s *Solver) map[crossword.Variable]map[string]struct{} {
	snap := make(map[crossword.Variable]map[string]struct{}, len(s.domains))
	for v, dom := range s.domains {
		cp := make(map[string]struct{}, len(dom))
		for w := range dom {
			cp[w] = struct{}{}
		}
		snap[v] = cp
	}
	return snap
}

func domainsEqual(a, b map[crossword.Variable]map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for v, dom := range a {
		if len(dom) != len(b[v]) {
			return false
		}
		for w := range dom {
			if _, ok := b[v][w]; !ok {
				return false
			}
		}
	}
	return true
}

func TestNodeConsistency(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, structure0, numberWords)
	s.enforceNodeConsistency()
	for _, v := range s.cw.Variables {
		is.True(len(s.domains[v]) > 0)
		for w := range s.domains[v] {
			is.Equal(len(w), v.Length)
		}
	}
}

func TestAC3Soundness(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, structure0, numberWords)
	s.enforceNodeConsistency()
	is.True(s.ac3(nil))

	// Arc consistency: every surviving word has support in every
	// crossing slot's domain.
	for _, x := range s.cw.Variables {
		for _, y := range s.cw.Neighbors(x) {
			ov, ok := s.cw.Overlap(x, y)
			is.True(ok)
			for wx := range s.domains[x] {
				is.True(s.supported(wx, ov, y))
			}
		}
	}
}

func TestAC3Idempotent(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, structure0, numberWords)
	s.enforceNodeConsistency()
	is.True(s.ac3(nil))
	snap := domainSnapshot(s)
	is.True(s.ac3(nil))
	is.True(domainsEqual(snap, s.domains))
}

func TestAC3EmptyDomainFails(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, twoSlotGrid, []string{"cat", "dog", "map"})
	s.enforceNodeConsistency()
	is.True(!s.ac3(nil))
	empty := 0
	for _, v := range s.cw.Variables {
		if len(s.domains[v]) == 0 {
			empty++
		}
	}
	is.True(empty > 0)
}

func TestAC3SeedArcs(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, twoSlotGrid, []string{"cat", "ten", "ace"})
	s.enforceNodeConsistency()
	across := crossword.Variable{Row: 0, Col: 0, Direction: crossword.Across, Length: 3}
	down := crossword.Variable{Row: 0, Col: 2, Direction: crossword.Down, Length: 3}

	// Revising only the across slot against the down slot leaves the
	// down slot's domain untouched until its own arc is queued.
	is.True(s.ac3([]arc{{across, down}}))
	is.Equal(len(s.domains[across]), 1)

	is.True(s.ac3([]arc{{down, across}}))
	is.Equal(len(s.domains[down]), 1)
	_, ok := s.domains[down]["TEN"]
	is.True(ok)
}

func TestReviseRemovesUnsupported(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, twoSlotGrid, []string{"cat", "ten", "ace"})
	s.enforceNodeConsistency()
	across := crossword.Variable{Row: 0, Col: 0, Direction: crossword.Across, Length: 3}
	down := crossword.Variable{Row: 0, Col: 2, Direction: crossword.Down, Length: 3}

	is.True(s.revise(across, down))
	// Only CAT has a crossing partner (TEN); TEN and ACE lose support.
	is.Equal(len(s.domains[across]), 1)
	_, ok := s.domains[across]["CAT"]
	is.True(ok)
	// A second revision changes nothing.
	is.True(!s.revise(across, down))
}
