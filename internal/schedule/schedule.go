// Package schedule abstracts the host event loop's delayed callbacks so the engine
// can run under any scheduler.
package schedule

import (
	"sort"
	"time"
)

// Task is a handle to a pending callback.
type Task interface {
	// Cancel stops the callback from running. It returns true only on the first
	// call made while the task is still pending.
	Cancel() bool
}

// Scheduler runs fn once after d has elapsed, on the host's event loop.
type Scheduler interface {
	After(d time.Duration, fn func()) Task
}

// Manual is a Scheduler driven by explicit Advance calls. Callbacks run on the
// goroutine calling Advance.
type Manual struct {
	now     time.Duration
	seq     int
	pending []*manualTask
}

type manualTask struct {
	m   *Manual
	due time.Duration
	seq int
	fn  func()
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) After(d time.Duration, fn func()) Task {
	m.seq++
	t := &manualTask{m: m, due: m.now + d, seq: m.seq, fn: fn}
	m.pending = append(m.pending, t)
	return t
}

func (t *manualTask) Cancel() bool {
	for i, p := range t.m.pending {
		if p == t {
			t.m.pending = append(t.m.pending[:i], t.m.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Pending returns the number of callbacks waiting to run.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Advance moves virtual time forward by d, running due callbacks in order.
// Callbacks scheduled while advancing run too if they fall due within the window.
func (m *Manual) Advance(d time.Duration) {
	end := m.now + d
	for {
		next := m.nextDue(end)
		if next == nil {
			break
		}
		next.Cancel()
		m.now = next.due
		next.fn()
	}
	m.now = end
}

func (m *Manual) nextDue(end time.Duration) *manualTask {
	if len(m.pending) == 0 {
		return nil
	}
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].due != m.pending[j].due {
			return m.pending[i].due < m.pending[j].due
		}
		return m.pending[i].seq < m.pending[j].seq
	})
	if m.pending[0].due > end {
		return nil
	}
	return m.pending[0]
}
