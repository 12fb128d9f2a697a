// Package crossword contains the puzzle model: the grid structure, the
// variables (word slots) derived from it, and the overlap map between
// crossing slots. It also knows how to render a filled-in grid.
package crossword

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// OpenCell is the rune that marks a fillable cell in a structure file.
// Every other rune is a blocked cell.
const OpenCell = '_'

var ErrNoVariables = errors.New("structure contains no slots of length 2 or more")

// An Overlap records, for a pair of crossing slots, the letter index
// within each slot's word that falls on the shared cell. Overlaps are
// symmetric: if Overlap(x, y) is (a, b), then Overlap(y, x) is (b, a).
type Overlap struct {
	X int
	Y int
}

// A Crossword is the immutable puzzle description: grid dimensions and
// occupancy, the word list, the variable set, and the precomputed
// overlap/neighbor maps. Construct one with New or LoadFile; never mutate
// it afterwards.
type Crossword struct {
	Width  int
	Height int
	// Words is the dictionary: uppercased, deduplicated.
	Words []string
	// Variables is sorted by (row, col, direction) so that every
	// iteration over slots is deterministic.
	Variables []Variable

	structure [][]bool
	overlaps  map[[2]Variable]Overlap
	neighbors map[Variable][]Variable
}

// New builds a crossword from the raw structure lines and a word list.
// A cell is open iff its rune is OpenCell; short lines are padded with
// blocked cells. Slots are maximal runs of at least two open cells.
func New(gridLines []string, words []string) (*Crossword, error) {
	if len(gridLines) == 0 {
		return nil, errors.New("empty structure")
	}
	height := len(gridLines)
	width := 0
	for _, line := range gridLines {
		if len(line) > width {
			width = len(line)
		}
	}
	structure := make([][]bool, height)
	for i, line := range gridLines {
		structure[i] = make([]bool, width)
		for j, r := range line {
			structure[i][j] = r == OpenCell
		}
	}

	cw := &Crossword{
		Width:     width,
		Height:    height,
		structure: structure,
		Words: lo.Uniq(lo.Map(words, func(w string, _ int) string {
			return strings.ToUpper(strings.TrimSpace(w))
		})),
	}
	cw.findVariables()
	if len(cw.Variables) == 0 {
		return nil, ErrNoVariables
	}
	cw.computeOverlaps()
	log.Debug().Int("width", width).Int("height", height).
		Int("variables", len(cw.Variables)).Int("words", len(cw.Words)).
		Msg("built crossword")
	return cw, nil
}

// LoadFile reads a structure file and a words file (one word per line)
// and builds the crossword.
func LoadFile(structurePath, wordsPath string) (*Crossword, error) {
	sf, err := os.Open(structurePath)
	if err != nil {
		return nil, err
	}
	defer sf.Close()
	lines, err := readLines(sf)
	if err != nil {
		return nil, fmt.Errorf("reading structure %s: %w", structurePath, err)
	}
	wf, err := os.Open(wordsPath)
	if err != nil {
		return nil, err
	}
	defer wf.Close()
	words, err := readLines(wf)
	if err != nil {
		return nil, fmt.Errorf("reading words %s: %w", wordsPath, err)
	}
	words = lo.Filter(words, func(w string, _ int) bool {
		return strings.TrimSpace(w) != ""
	})
	return New(lines, words)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r\n"))
	}
	return lines, scanner.Err()
}

// Open tells whether the cell at (row, col) is fillable.
func (cw *Crossword) Open(row, col int) bool {
	if row < 0 || row >= cw.Height || col < 0 || col >= cw.Width {
		return false
	}
	return cw.structure[row][col]
}

// Overlap returns the letter-index pair at the cell shared by x and y,
// or ok=false if the two slots never cross.
func (cw *Crossword) Overlap(x, y Variable) (Overlap, bool) {
	ov, ok := cw.overlaps[[2]Variable{x, y}]
	return ov, ok
}

// Neighbors returns the slots crossing x, in deterministic order. The
// returned slice is shared; callers must not modify it.
func (cw *Crossword) Neighbors(x Variable) []Variable {
	return cw.neighbors[x]
}

func (cw *Crossword) findVariables() {
	for i := 0; i < cw.Height; i++ {
		for j := 0; j < cw.Width; j++ {
			if !cw.structure[i][j] {
				continue
			}
			// An across slot starts here if the cell to the left is
			// blocked or off-grid; analogously for down.
			if j == 0 || !cw.structure[i][j-1] {
				length := 1
				for k := j + 1; k < cw.Width && cw.structure[i][k]; k++ {
					length++
				}
				if length > 1 {
					cw.Variables = append(cw.Variables,
						Variable{Row: i, Col: j, Direction: Across, Length: length})
				}
			}
			if i == 0 || !cw.structure[i-1][j] {
				length := 1
				for k := i + 1; k < cw.Height && cw.structure[k][j]; k++ {
					length++
				}
				if length > 1 {
					cw.Variables = append(cw.Variables,
						Variable{Row: i, Col: j, Direction: Down, Length: length})
				}
			}
		}
	}
	sort.Slice(cw.Variables, func(a, b int) bool {
		va, vb := cw.Variables[a], cw.Variables[b]
		if va.Row != vb.Row {
			return va.Row < vb.Row
		}
		if va.Col != vb.Col {
			return va.Col < vb.Col
		}
		return va.Direction < vb.Direction
	})
}

func (cw *Crossword) computeOverlaps() {
	cw.overlaps = make(map[[2]Variable]Overlap)
	cw.neighbors = make(map[Variable][]Variable)

	// Index every open cell by the slot and letter index covering it.
	type slotIndex struct {
		v   Variable
		idx int
	}
	cells := make(map[[2]int][]slotIndex)
	for _, v := range cw.Variables {
		for k := 0; k < v.Length; k++ {
			row, col := v.Cell(k)
			cells[[2]int{row, col}] = append(cells[[2]int{row, col}], slotIndex{v, k})
		}
	}
	// Two maximal runs can share at most one cell, and only if they run
	// in different directions.
	for _, covering := range cells {
		for a := 0; a < len(covering); a++ {
			for b := a + 1; b < len(covering); b++ {
				x, y := covering[a], covering[b]
				cw.overlaps[[2]Variable{x.v, y.v}] = Overlap{X: x.idx, Y: y.idx}
				cw.overlaps[[2]Variable{y.v, x.v}] = Overlap{X: y.idx, Y: x.idx}
				cw.neighbors[x.v] = append(cw.neighbors[x.v], y.v)
				cw.neighbors[y.v] = append(cw.neighbors[y.v], x.v)
			}
		}
	}
	for v, ns := range cw.neighbors {
		sort.Slice(ns, func(a, b int) bool {
			if ns[a].Row != ns[b].Row {
				return ns[a].Row < ns[b].Row
			}
			if ns[a].Col != ns[b].Col {
				return ns[a].Col < ns[b].Col
			}
			return ns[a].Direction < ns[b].Direction
		})
		cw.neighbors[v] = ns
	}
}
