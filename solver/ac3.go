package solver

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/crossfill/crossword"
)

// An arc is an ordered pair of crossing slots queued for revision: we
// make x's domain consistent with y's.
type arc struct {
	x, y crossword.Variable
}

// enforceNodeConsistency removes from every slot's domain the words whose
// length does not match the slot. Runs once, before propagation.
func (s *Solver) enforceNodeConsistency() {
	for _, v := range s.cw.Variables {
		dom := s.domains[v]
		for w := range dom {
			if len(w) != v.Length {
				delete(dom, w)
			}
		}
	}
}

// revise removes from x's domain every word with no support in y's
// domain. A word wy supports wx when the two agree on the letter at the
// shared cell and the words differ (a slot and a crossing slot may not
// hold the same word). Reports whether anything was removed.
func (s *Solver) revise(x, y crossword.Variable) bool {
	ov, ok := s.cw.Overlap(x, y)
	if !ok {
		return false
	}
	revised := false
	for wx := range s.domains[x] {
		if !s.supported(wx, ov, y) {
			delete(s.domains[x], wx)
			revised = true
		}
	}
	return revised
}

func (s *Solver) supported(wx string, ov crossword.Overlap, y crossword.Variable) bool {
	for wy := range s.domains[y] {
		if wx != wy && wx[ov.X] == wy[ov.Y] {
			return true
		}
	}
	return false
}

// ac3 propagates pairwise constraints until a fixed point. With a nil
// seed it starts from every arc in the puzzle; callers re-propagating
// after a change may pass just the affected arcs. Returns false as soon
// as some domain empties, meaning the puzzle is unsolvable from the
// current state.
func (s *Solver) ac3(seed []arc) bool {
	queue := seed
	if queue == nil {
		for _, x := range s.cw.Variables {
			for _, y := range s.cw.Neighbors(x) {
				queue = append(queue, arc{x, y})
			}
		}
	}
	// FIFO; order affects performance only.
	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]
		if !s.revise(a.x, a.y) {
			continue
		}
		if len(s.domains[a.x]) == 0 {
			log.Debug().Str("variable", a.x.String()).Msg("empty domain")
			return false
		}
		// x shrank, so every constraint pointing at x needs a re-check,
		// except the one we just used.
		for _, z := range s.cw.Neighbors(a.x) {
			if z != a.y {
				queue = append(queue, arc{z, a.x})
			}
		}
	}
	return true
}
