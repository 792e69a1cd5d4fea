package game

import (
	"go-tenbox/internal/board"
	"go-tenbox/internal/match"
	"go-tenbox/internal/state"
)

// SelectionView is the live drag rectangle and its running sum.
type SelectionView struct {
	Rect   board.Rect
	Sum    int
	Cells  int
	Target int
}

// Snapshot is a read-only copy of everything a presentation layer renders.
type Snapshot struct {
	Rows          int
	Cols          int
	Cells         [][]int // board.Empty for removed cells
	Score         int
	Moves         int
	TimeRemaining int
	TimeLimit     int
	Phase         state.Phase
	Reason        string
	Selection     *SelectionView
	Feedback      *state.Feedback
}

func (g *Game) Snapshot() Snapshot {
	s := g.State
	snap := Snapshot{
		Rows:          s.Board.Rows,
		Cols:          s.Board.Cols,
		Cells:         s.Board.Values(),
		Score:         s.Score,
		Moves:         s.Moves,
		TimeRemaining: s.TimeRemaining,
		TimeLimit:     s.TimeLimit,
		Phase:         s.Phase(),
		Reason:        s.Reason,
	}
	if s.Selection != nil {
		o := match.Evaluate(s.Board, s.Selection.Rect())
		snap.Selection = &SelectionView{Rect: o.Rect, Sum: o.Sum, Cells: len(o.Cells), Target: board.Target}
	}
	if s.Feedback != nil {
		fb := *s.Feedback
		snap.Feedback = &fb
	}
	return snap
}

// TimeRatio is the fraction of the time limit still remaining, in [0,1].
func (snap Snapshot) TimeRatio() float64 {
	if snap.TimeLimit <= 0 {
		return 0
	}
	return float64(snap.TimeRemaining) / float64(snap.TimeLimit)
}

// Selected reports whether (row, col) lies inside the live selection.
func (snap Snapshot) Selected(row, col int) bool {
	return snap.Selection != nil && snap.Selection.Rect.Contains(board.Pos{Row: row, Col: col})
}
