package game

import (
	"go-tenbox/internal/board"
	"go-tenbox/internal/match"
	"go-tenbox/internal/schedule"
	"go-tenbox/internal/state"
)

// Game is the puzzle engine's outward surface: it accepts discrete input events,
// publishes match and state events, and produces snapshots for rendering.
type Game struct {
	State *state.State

	listeners []Listener
	onFinish  func(score int, reason string)
}

// NewGame creates an idle session with a freshly dealt board.
func NewGame(opts state.GameOptions, rng board.Source, scheduler schedule.Scheduler) *Game {
	g := &Game{}
	g.State = state.NewState(opts, rng, scheduler, state.Hooks{
		StateChanged: g.emitStateChanged,
		Finished:     g.finished,
	})
	return g
}

// Subscribe registers l for engine events.
func (g *Game) Subscribe(l Listener) {
	g.listeners = append(g.listeners, l)
}

// OnFinish sets the callback run once per finished session, typically to ask
// for a name and submit the score.
func (g *Game) OnFinish(fn func(score int, reason string)) {
	g.onFinish = fn
}

func (g *Game) Start()       { g.State.Start() }
func (g *Game) Reset()       { g.State.Reset() }
func (g *Game) TogglePause() { g.State.TogglePause() }
func (g *Game) Tick()        { g.State.Tick() }

// PressAt anchors a new selection. Pressing outside the board clears any selection.
func (g *Game) PressAt(row, col int) {
	s := g.State
	if !s.IsRunning() {
		return
	}
	if !s.Board.InBounds(row, col) {
		s.Selection = nil
		return
	}
	p := board.Pos{Row: row, Col: col}
	s.Selection = &state.Selection{Anchor: p, Current: p}
}

// DragTo moves the selection's free corner. Off-board positions are ignored.
func (g *Game) DragTo(row, col int) {
	s := g.State
	if !s.IsRunning() || s.Selection == nil || !s.Board.InBounds(row, col) {
		return
	}
	s.Selection.Current = board.Pos{Row: row, Col: col}
}

// ReleaseAt completes the drag and applies the match rule to the selection.
func (g *Game) ReleaseAt(row, col int) {
	s := g.State
	if !s.IsRunning() || s.Selection == nil {
		return
	}
	if s.Board.InBounds(row, col) {
		s.Selection.Current = board.Pos{Row: row, Col: col}
	}
	rect := s.Selection.Rect()
	s.Selection = nil

	o := match.Apply(s.Board, rect)
	s.Record(o)
	if !o.Evaluated {
		return
	}

	if !o.Matched {
		g.emit(func(l Listener) { l.OnMismatch(*s.Feedback) })
		return
	}
	g.emit(func(l Listener) { l.OnMatchCleared(*s.Feedback) })
	if o.Deadlock {
		s.Finish(state.ReasonDeadlock)
	}
}

// CancelDrag drops the current selection without counting a move.
func (g *Game) CancelDrag() {
	g.State.Selection = nil
}

func (g *Game) finished(score int, reason string) {
	if g.onFinish != nil {
		g.onFinish(score, reason)
	}
}

func (g *Game) emitStateChanged(to state.Phase) {
	g.emit(func(l Listener) { l.OnSessionStateChanged(to) })
}

func (g *Game) emit(fn func(Listener)) {
	for _, l := range g.listeners {
		fn(l)
	}
}
