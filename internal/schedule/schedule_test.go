package schedule

import (
	"testing"
	"time"
)

func TestManual_RunsInOrder(t *testing.T) {
	m := NewManual()
	var got []int
	m.After(2*time.Second, func() { got = append(got, 2) })
	m.After(time.Second, func() { got = append(got, 1) })
	m.After(3*time.Second, func() { got = append(got, 3) })

	m.Advance(2 * time.Second)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("Expected [1 2], got %v", got)
	}
	if m.Pending() != 1 {
		t.Errorf("Expected 1 pending, got %d", m.Pending())
	}
	m.Advance(time.Second)
	if len(got) != 3 {
		t.Errorf("Expected 3 callbacks, got %v", got)
	}
}

func TestManual_CancelOnce(t *testing.T) {
	m := NewManual()
	ran := false
	task := m.After(time.Second, func() { ran = true })

	if !task.Cancel() {
		t.Error("First cancel should succeed")
	}
	if task.Cancel() {
		t.Error("Second cancel should report false")
	}
	m.Advance(5 * time.Second)
	if ran {
		t.Error("Cancelled task ran")
	}
}

func TestManual_CancelAfterRun(t *testing.T) {
	m := NewManual()
	task := m.After(time.Second, func() {})
	m.Advance(time.Second)
	if task.Cancel() {
		t.Error("Cancel after the task ran should report false")
	}
}

func TestManual_Rescheduling(t *testing.T) {
	m := NewManual()
	count := 0
	var tick func()
	tick = func() {
		count++
		m.After(time.Second, tick)
	}
	m.After(time.Second, tick)

	m.Advance(10 * time.Second)
	if count != 10 {
		t.Errorf("Expected 10 ticks, got %d", count)
	}
	if m.Now() != 10*time.Second {
		t.Errorf("Expected now=10s, got %v", m.Now())
	}
}
