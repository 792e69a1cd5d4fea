package match

import "go-tenbox/internal/board"

// Reward is the fixed score awarded for each cleared selection.
const Reward = 10

// Outcome describes the result of evaluating a selection.
type Outcome struct {
	Rect      board.Rect
	Cells     []board.Pos
	Sum       int
	Matched   bool
	Points    int
	Deadlock  bool // only meaningful when Matched
	Evaluated bool // false when the rectangle held no occupied cells
}

// Normalize turns two corners into an inclusive rectangle.
func Normalize(anchor, current board.Pos) board.Rect {
	return board.Rect{
		R1: min(anchor.Row, current.Row),
		R2: max(anchor.Row, current.Row),
		C1: min(anchor.Col, current.Col),
		C2: max(anchor.Col, current.Col),
	}
}

// SelectedPositions lists the occupied positions inside rect. Positions outside the
// board are clipped.
func SelectedPositions(b *board.Board, rect board.Rect) []board.Pos {
	var out []board.Pos
	for r := max(rect.R1, 0); r <= rect.R2 && r < b.Rows; r++ {
		for c := max(rect.C1, 0); c <= rect.C2 && c < b.Cols; c++ {
			p := board.Pos{Row: r, Col: c}
			if b.ValueAt(p) != board.Empty {
				out = append(out, p)
			}
		}
	}
	return out
}

// Evaluate sums the occupied cells in rect without touching the board.
func Evaluate(b *board.Board, rect board.Rect) Outcome {
	cells := SelectedPositions(b, rect)
	o := Outcome{Rect: rect, Cells: cells, Evaluated: len(cells) > 0}
	for _, p := range cells {
		o.Sum += b.ValueAt(p)
	}
	o.Matched = o.Evaluated && o.Sum == board.Target
	return o
}

// Apply evaluates rect and, on a match, removes the selected cells and runs the
// deadlock query against the updated board.
func Apply(b *board.Board, rect board.Rect) Outcome {
	o := Evaluate(b, rect)
	if !o.Matched {
		return o
	}
	b.Remove(o.Cells)
	o.Points = Reward
	o.Deadlock = !b.HasAnyTenSumRectangle()
	return o
}
