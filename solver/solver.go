// Package solver fills a crossword grid with words from the puzzle's
// dictionary. It enforces node consistency, runs AC-3 constraint
// propagation to a fixed point, and then searches the remaining domains
// with heuristic-ordered backtracking (MRV + degree for variable
// selection, LCV for value ordering).
package solver

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/domino14/crossfill/crossword"
)

// ErrNoSolution is the normal negative result: the constraints admit no
// complete assignment. It is not an internal failure.
var ErrNoSolution = errors.New("no solution found")

// errSolved aborts sibling workers in a parallel solve once one of them
// has found a complete assignment.
var errSolved = errors.New("solved")

// An Assignment maps each slot to its chosen word. Solve returns a
// complete assignment: exactly one entry per variable.
type Assignment map[crossword.Variable]string

type Solver struct {
	cw      *crossword.Crossword
	domains map[crossword.Variable]map[string]struct{}
	threads int
	nodes   atomic.Uint64
}

// Init attaches the solver to a crossword and seeds every slot's domain
// with the full dictionary. Words of the wrong length are removed by the
// node-consistency pass at the start of Solve.
func (s *Solver) Init(cw *crossword.Crossword) error {
	if cw == nil {
		return errors.New("nil crossword")
	}
	s.cw = cw
	s.threads = 1
	s.domains = make(map[crossword.Variable]map[string]struct{}, len(cw.Variables))
	for _, v := range cw.Variables {
		dom := make(map[string]struct{}, len(cw.Words))
		for _, w := range cw.Words {
			dom[w] = struct{}{}
		}
		s.domains[v] = dom
	}
	return nil
}

// SetThreads sets the number of workers the root of the search tree is
// split across. Values below 2 keep the search single-threaded.
func (s *Solver) SetThreads(threads int) {
	s.threads = threads
}

// Nodes returns the number of search nodes visited by the last Solve.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// Solve runs the full pipeline: node consistency, AC-3, then backtracking
// search over the static post-propagation domains. It returns
// ErrNoSolution if the puzzle is unsolvable, or ctx's error if the
// context is canceled mid-search.
func (s *Solver) Solve(ctx context.Context) (Assignment, error) {
	tstart := time.Now()
	s.nodes.Store(0)
	s.enforceNodeConsistency()
	if !s.ac3(nil) {
		log.Debug().Msg("domain emptied during propagation")
		return nil, ErrNoSolution
	}

	var (
		solution Assignment
		err      error
	)
	if s.threads > 1 && len(s.cw.Variables) > 0 {
		solution, err = s.solveParallel(ctx)
	} else {
		a := make(Assignment, len(s.cw.Variables))
		var found bool
		found, err = s.backtrack(ctx, a)
		if found {
			solution = a
		}
	}
	if err != nil {
		return nil, err
	}
	if solution == nil {
		return nil, ErrNoSolution
	}
	log.Debug().
		Uint64("nodes", s.nodes.Load()).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("solve-returning")
	return solution, nil
}

// backtrack extends a in place, undoing its own tentative entries before
// returning false. The domains are read-only here, so concurrent workers
// may share them as long as each owns its assignment.
func (s *Solver) backtrack(ctx context.Context, a Assignment) (bool, error) {
	if len(a) == len(s.cw.Variables) {
		return true, nil
	}
	if s.nodes.Add(1)&0x3ff == 0 {
		if err := ctx.Err(); err != nil {
			return false, err
		}
	}
	v := s.selectUnassigned(a)
	for _, word := range s.orderDomainValues(v, a) {
		if !s.consistent(v, word, a) {
			continue
		}
		a[v] = word
		found, err := s.backtrack(ctx, a)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
		delete(a, v)
	}
	return false, nil
}

// consistent reports whether assigning word to v keeps the assignment
// consistent: every already-assigned crossing slot must agree on the
// shared letter, and no crossing slot may hold the identical word.
func (s *Solver) consistent(v crossword.Variable, word string, a Assignment) bool {
	for _, n := range s.cw.Neighbors(v) {
		other, assigned := a[n]
		if !assigned {
			continue
		}
		if other == word {
			return false
		}
		ov, _ := s.cw.Overlap(v, n)
		if word[ov.X] != other[ov.Y] {
			return false
		}
	}
	return true
}

// solveParallel splits the root variable's candidates across workers.
// Worker 0 keeps the LCV order; the others shuffle their share so that
// the workers diverge early instead of racing down the same subtree.
func (s *Solver) solveParallel(ctx context.Context) (Assignment, error) {
	root := s.selectUnassigned(Assignment{})
	values := s.orderDomainValues(root, Assignment{})
	if len(values) == 0 {
		return nil, nil
	}
	n := s.threads
	if n > len(values) {
		n = len(values)
	}
	chunks := make([][]string, n)
	for i, w := range values {
		chunks[i%n] = append(chunks[i%n], w)
	}

	var (
		mu       sync.Mutex
		solution Assignment
	)
	g, gctx := errgroup.WithContext(ctx)
	for t := 0; t < n; t++ {
		chunk := chunks[t]
		if t > 0 {
			frand.Shuffle(len(chunk), func(i, j int) {
				chunk[i], chunk[j] = chunk[j], chunk[i]
			})
		}
		g.Go(func() error {
			for _, word := range chunk {
				a := make(Assignment, len(s.cw.Variables))
				a[root] = word
				found, err := s.backtrack(gctx, a)
				if err != nil {
					return err
				}
				if found {
					mu.Lock()
					if solution == nil {
						solution = a
					}
					mu.Unlock()
					return errSolved
				}
			}
			return nil
		})
	}
	err := g.Wait()
	if solution != nil {
		return solution, nil
	}
	if err != nil && !errors.Is(err, errSolved) {
		return nil, err
	}
	return nil, nil
}
