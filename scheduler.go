package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-tenbox/internal/schedule"
)

type tickMsg struct{ id int }

// teaScheduler runs delayed callbacks on the bubbletea update loop, so the
// engine is only ever touched from Update. After queues a tea.Tick command that
// the model hands back to the runtime via Drain.
type teaScheduler struct {
	next    int
	pending map[int]func()
	queued  []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{pending: make(map[int]func())}
}

func (s *teaScheduler) After(d time.Duration, fn func()) schedule.Task {
	s.next++
	id := s.next
	s.pending[id] = fn
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	}))
	return teaTask{s: s, id: id}
}

// Fire runs the callback registered under id unless it was cancelled.
func (s *teaScheduler) Fire(id int) {
	fn, ok := s.pending[id]
	if !ok {
		return
	}
	delete(s.pending, id)
	fn()
}

// Drain returns the tick commands queued since the last call.
func (s *teaScheduler) Drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

type teaTask struct {
	s  *teaScheduler
	id int
}

func (t teaTask) Cancel() bool {
	if _, ok := t.s.pending[t.id]; !ok {
		return false
	}
	delete(t.s.pending, t.id)
	return true
}
