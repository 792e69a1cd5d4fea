package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"go-tenbox/internal/board"
	"go-tenbox/internal/game"
	"go-tenbox/internal/scoring"
	"go-tenbox/internal/state"
)

// Screen layout. The board's top-left cell is drawn at (boardOriginX,
// boardOriginY) and every cell is cellWidth columns wide.
const (
	boardOriginX = 2
	boardOriginY = 3
	cellWidth    = 3
)

type finishedRound struct {
	score  int
	reason string
}

type LocalState struct {
	Game     *game.Game
	Rankings *scoring.RankingStore

	sched  *teaScheduler
	log    zerolog.Logger
	bellTo io.Writer

	Light bool
	Bell  bool

	nameInput textinput.Model
	finished  *finishedRound // set while asking for a name
	notice    string
	warning   bool
}

func newLocalState(opts state.GameOptions, rng board.Source, rankings *scoring.RankingStore, logger zerolog.Logger, bellTo io.Writer) *LocalState {
	sched := newTeaScheduler()
	s := &LocalState{
		Game:     game.NewGame(opts, rng, sched),
		Rankings: rankings,
		sched:    sched,
		log:      logger,
		bellTo:   bellTo,
		Bell:     true,
	}

	ti := textinput.New()
	ti.Placeholder = scoring.DefaultName
	ti.CharLimit = scoring.MaxNameLen
	ti.Width = scoring.MaxNameLen + 1
	ti.Prompt = "Name: "
	s.nameInput = ti

	s.Game.Subscribe(game.ListenerFuncs{
		MatchCleared: func(fb state.Feedback) {
			s.log.Debug().Int("cells", fb.Count).Msg("match cleared")
			s.ring(1)
		},
		Mismatch: func(fb state.Feedback) {
			s.log.Debug().Int("sum", fb.Sum).Msg("mismatch")
			s.ring(2)
		},
		SessionStateChanged: func(to state.Phase) {
			s.log.Info().Str("phase", string(to)).Msg("session state changed")
		},
	})
	s.Game.OnFinish(s.askName)
	return s
}

func (s *LocalState) ring(n int) {
	if !s.Bell || s.bellTo == nil {
		return
	}
	for i := 0; i < n; i++ {
		_, _ = io.WriteString(s.bellTo, "\a")
	}
}

func (s *LocalState) askName(score int, reason string) {
	s.log.Info().Int("score", score).Str("reason", reason).Msg("session finished")
	s.finished = &finishedRound{score: score, reason: reason}
	s.Rankings.Refresh()
	s.nameInput.SetValue("")
	s.nameInput.Focus()
}

func (s *LocalState) submitName() {
	round := s.finished
	s.finished = nil
	s.nameInput.Blur()

	rank, err := s.Rankings.Submit(s.nameInput.Value(), round.score)
	switch {
	case err != nil:
		s.notice = "Ranking not saved: " + err.Error()
		s.warning = true
	case rank > 0:
		s.notice = fmt.Sprintf("Ranked #%d with %d points", rank, round.score)
		s.warning = false
	default:
		s.notice = fmt.Sprintf("%d points did not make the top %d", round.score, scoring.MaxEntries)
		s.warning = false
	}
}

func (s *LocalState) skipName() {
	s.finished = nil
	s.nameInput.Blur()
	s.notice = "Score not recorded"
	s.warning = false
}

// cellAt maps a terminal position to board coordinates. Positions left of or
// above the board map to -1 so the engine treats them as out of bounds.
func cellAt(x, y int) (row, col int) {
	row, col = -1, -1
	if y >= boardOriginY {
		row = y - boardOriginY
	}
	if x >= boardOriginX {
		col = (x - boardOriginX) / cellWidth
	}
	return row, col
}

func (s *LocalState) Init() tea.Cmd {
	return s.sched.Drain()
}

func (s *LocalState) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		s.sched.Fire(msg.id)
	case tea.MouseMsg:
		if s.finished == nil {
			s.handleMouse(msg)
		}
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return s, tea.Quit
		}
		if s.finished != nil {
			cmd = s.handleNameKey(msg)
			break
		}
		if quit := s.handleKey(msg.String()); quit {
			return s, tea.Quit
		}
	}

	return s, tea.Batch(cmd, s.sched.Drain())
}

func (s *LocalState) handleMouse(msg tea.MouseMsg) {
	row, col := cellAt(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			s.Game.PressAt(row, col)
		}
	case tea.MouseActionMotion:
		s.Game.DragTo(row, col)
	case tea.MouseActionRelease:
		s.Game.ReleaseAt(row, col)
	}
}

func (s *LocalState) handleKey(key string) (quit bool) {
	switch key {
	case "q":
		return true
	case "s", "enter":
		s.notice = ""
		s.Game.Start()
	case "p", " ":
		s.Game.TogglePause()
	case "r":
		s.notice = ""
		s.Game.Reset()
	case "esc":
		s.Game.CancelDrag()
	case "t":
		s.Light = !s.Light
	case "b":
		s.Bell = !s.Bell
	}
	return false
}

func (s *LocalState) handleNameKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		s.submitName()
		return nil
	case tea.KeyEsc:
		s.skipName()
		return nil
	}
	var cmd tea.Cmd
	s.nameInput, cmd = s.nameInput.Update(msg)
	return cmd
}
