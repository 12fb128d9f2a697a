package crossword

import "fmt"

type Direction uint8

const (
	Across Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Across {
		return "across"
	}
	return "down"
}

// A Variable is one fillable slot in the grid: a maximal horizontal or
// vertical run of open cells. Variables are immutable values and are used
// as map keys throughout the solver.
type Variable struct {
	Row       int
	Col       int
	Direction Direction
	Length    int
}

func (v Variable) String() string {
	return fmt.Sprintf("(%d,%d)-%s-%d", v.Row, v.Col, v.Direction, v.Length)
}

// Cell returns the grid coordinates of the k-th letter of this slot.
func (v Variable) Cell(k int) (row, col int) {
	if v.Direction == Down {
		return v.Row + k, v.Col
	}
	return v.Row, v.Col + k
}
