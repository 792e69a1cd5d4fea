package board

import "fmt"

// Empty is the value reported for a position whose cell has been removed.
const Empty = 0

const (
	MinValue = 1
	MaxValue = 9
)

// Pos is a board coordinate.
type Pos struct {
	Row int
	Col int
}

// Rect is an inclusive, normalized rectangle of board positions (R1 <= R2, C1 <= C2).
type Rect struct {
	R1, R2 int
	C1, C2 int
}

// Contains reports whether p lies within the rectangle bounds.
func (r Rect) Contains(p Pos) bool {
	return p.Row >= r.R1 && p.Row <= r.R2 && p.Col >= r.C1 && p.Col <= r.C2
}

// Cell is a single numbered occupant of one board position.
type Cell struct {
	Value int
}

// Source supplies random integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Board is a fixed rows x cols grid. A nil entry marks an empty position.
type Board struct {
	Rows  int
	Cols  int
	cells [][]*Cell
}

// New deals a board where every position holds an independent uniform value in [1,9].
func New(rows, cols int, rng Source) *Board {
	b := &Board{Rows: rows, Cols: cols, cells: make([][]*Cell, rows)}
	for r := 0; r < rows; r++ {
		b.cells[r] = make([]*Cell, cols)
		for c := 0; c < cols; c++ {
			b.cells[r][c] = &Cell{Value: MinValue + rng.Intn(MaxValue-MinValue+1)}
		}
	}
	return b
}

// FromValues builds a board from explicit values; Empty (0) marks an empty position.
// All rows must have the same length and every non-empty value must be in [1,9].
func FromValues(values [][]int) (*Board, error) {
	rows := len(values)
	if rows == 0 {
		return nil, fmt.Errorf("board needs at least one row")
	}
	cols := len(values[0])
	b := &Board{Rows: rows, Cols: cols, cells: make([][]*Cell, rows)}
	for r, row := range values {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", r, len(row), cols)
		}
		b.cells[r] = make([]*Cell, cols)
		for c, v := range row {
			if v == Empty {
				continue
			}
			if v < MinValue || v > MaxValue {
				return nil, fmt.Errorf("value %d at (%d,%d) out of range", v, r, c)
			}
			b.cells[r][c] = &Cell{Value: v}
		}
	}
	return b, nil
}

// InBounds reports whether (row, col) is a board position.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.Rows && col >= 0 && col < b.Cols
}

// ValueAt returns the value at p, or Empty. Callers must check bounds first.
func (b *Board) ValueAt(p Pos) int {
	if c := b.cells[p.Row][p.Col]; c != nil {
		return c.Value
	}
	return Empty
}

// Remove empties the given positions. Already-empty positions are left alone.
func (b *Board) Remove(positions []Pos) {
	for _, p := range positions {
		b.cells[p.Row][p.Col] = nil
	}
}

// Remaining counts occupied positions.
func (b *Board) Remaining() int {
	n := 0
	for _, row := range b.cells {
		for _, c := range row {
			if c != nil {
				n++
			}
		}
	}
	return n
}

// Values returns a copy of the grid with Empty for removed cells.
func (b *Board) Values() [][]int {
	out := make([][]int, b.Rows)
	for r := range out {
		out[r] = make([]int, b.Cols)
		for c := range out[r] {
			out[r][c] = b.ValueAt(Pos{Row: r, Col: c})
		}
	}
	return out
}
