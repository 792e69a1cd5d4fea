package state

import (
	"context"
	"go-tenbox/internal/board"
	"go-tenbox/internal/match"
	"go-tenbox/internal/schedule"
	"time"

	"github.com/looplab/fsm"
)

type Phase string

const (
	Idle    Phase = "idle"
	Running Phase = "running"
	Paused  Phase = "paused"
	Over    Phase = "over"
)

const (
	ReasonTimeExpired = "time expired"
	ReasonDeadlock    = "no further match possible"
)

const (
	DefaultRows      = 10
	DefaultCols      = 17
	DefaultTimeLimit = 120 // seconds
)

const tickInterval = time.Second

type GameOptions struct {
	Rows      int
	Cols      int
	TimeLimit int // seconds
}

// Hooks are called from inside state transitions.
type Hooks struct {
	StateChanged func(to Phase)
	Finished     func(score int, reason string)
}

// Selection is an in-progress drag: the anchor where it was pressed and the
// position it has been dragged to.
type Selection struct {
	Anchor  board.Pos
	Current board.Pos
}

func (sel Selection) Rect() board.Rect {
	return match.Normalize(sel.Anchor, sel.Current)
}

type State struct {
	Board         *board.Board
	Score         int
	Moves         int
	TimeLimit     int
	TimeRemaining int
	Started       bool   // true once start has been called
	Reason        string // why the session ended
	Selection     *Selection
	Feedback      *Feedback
	Options       GameOptions
	FSM           *fsm.FSM

	rng       board.Source
	scheduler schedule.Scheduler
	tick      schedule.Task
	hooks     Hooks
}

func NewState(opts GameOptions, rng board.Source, scheduler schedule.Scheduler, hooks Hooks) *State {
	if opts.Rows <= 0 {
		opts.Rows = DefaultRows
	}
	if opts.Cols <= 0 {
		opts.Cols = DefaultCols
	}
	if opts.TimeLimit <= 0 {
		opts.TimeLimit = DefaultTimeLimit
	}

	s := &State{
		Options:   opts,
		rng:       rng,
		scheduler: scheduler,
		hooks:     hooks,
	}
	s.newRound()

	s.FSM = fsm.NewFSM(
		string(Idle),
		getStateTransitions(),
		getStateCallbacks(s),
	)

	return s
}

// Phase returns the current state tag.
func (s *State) Phase() Phase {
	return Phase(s.FSM.Current())
}

func (s *State) IsRunning() bool {
	return s.Phase() == Running
}

// Start begins play from Idle.
func (s *State) Start() {
	_ = s.FSM.Event(context.Background(), "start")
}

// Reset re-deals the board. Before the first start it stays Idle, afterwards it
// restarts play.
func (s *State) Reset() {
	if !s.Started {
		s.newRound()
		return
	}
	_ = s.FSM.Event(context.Background(), "restart")
}

// TogglePause switches between Running and Paused.
func (s *State) TogglePause() {
	switch s.Phase() {
	case Running:
		_ = s.FSM.Event(context.Background(), "pause")
	case Paused:
		_ = s.FSM.Event(context.Background(), "resume")
	}
}

// Finish ends the session. Calling it again once Over does nothing.
func (s *State) Finish(reason string) {
	_ = s.FSM.Event(context.Background(), "finish", reason)
}

// Tick consumes one second of play time. Ticks outside Running are dropped.
func (s *State) Tick() {
	if !s.IsRunning() {
		return
	}
	s.TimeRemaining = max(0, s.TimeRemaining-1)
	if s.TimeRemaining == 0 {
		s.Finish(ReasonTimeExpired)
		return
	}
	s.scheduleTick()
}

// Record applies a completed drag's outcome to score, moves and feedback.
// Drags over empty space are not moves.
func (s *State) Record(o match.Outcome) {
	if !o.Evaluated {
		return
	}
	s.Moves++
	if o.Matched {
		s.Score += o.Points
		s.Feedback = &Feedback{Kind: FeedbackClear, Sum: o.Sum, Count: len(o.Cells), Points: o.Points}
		return
	}
	s.Feedback = &Feedback{Kind: FeedbackMismatch, Sum: o.Sum, Count: len(o.Cells)}
}

// TickPending reports whether a tick callback is outstanding.
func (s *State) TickPending() bool {
	return s.tick != nil
}

func (s *State) newRound() {
	s.cancelTick()
	s.Board = board.New(s.Options.Rows, s.Options.Cols, s.rng)
	s.Score = 0
	s.Moves = 0
	s.TimeLimit = s.Options.TimeLimit
	s.TimeRemaining = s.Options.TimeLimit
	s.Reason = ""
	s.Selection = nil
	s.Feedback = nil
}

func (s *State) scheduleTick() {
	s.cancelTick()
	s.tick = s.scheduler.After(tickInterval, func() {
		s.tick = nil
		s.Tick()
	})
}

func (s *State) cancelTick() {
	if s.tick != nil {
		s.tick.Cancel()
		s.tick = nil
	}
}

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: "start", Src: []string{string(Idle)}, Dst: string(Running)},
		{Name: "restart", Src: []string{string(Running), string(Paused), string(Over)}, Dst: string(Running)},
		{Name: "pause", Src: []string{string(Running)}, Dst: string(Paused)},
		{Name: "resume", Src: []string{string(Paused)}, Dst: string(Running)},
		{Name: "finish", Src: []string{string(Idle), string(Running), string(Paused)}, Dst: string(Over)},
	}
}

func getStateCallbacks(s *State) map[string]fsm.Callback {
	deal := func(_ context.Context, e *fsm.Event) {
		s.newRound()
		s.Started = true
	}
	beginTicking := func(_ context.Context, e *fsm.Event) {
		s.scheduleTick()
	}

	return fsm.Callbacks{
		"before_start":   deal,
		"before_restart": deal,

		// after_ callbacks also run for restart while already Running
		"after_start":   beginTicking,
		"after_restart": beginTicking,
		"after_resume":  beginTicking,

		"enter_paused": func(_ context.Context, e *fsm.Event) {
			s.cancelTick()
			s.Selection = nil
		},
		"enter_over": func(_ context.Context, e *fsm.Event) {
			s.cancelTick()
			s.Selection = nil
			if len(e.Args) > 0 {
				s.Reason, _ = e.Args[0].(string)
			}
			s.Feedback = &Feedback{Kind: FeedbackOver, Reason: s.Reason, Points: s.Score}
			if s.hooks.Finished != nil {
				s.hooks.Finished(s.Score, s.Reason)
			}
		},
		"enter_state": func(_ context.Context, e *fsm.Event) {
			if s.hooks.StateChanged != nil {
				s.hooks.StateChanged(Phase(e.Dst))
			}
		},
	}
}
