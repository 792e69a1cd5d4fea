package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-tenbox/internal/board"
	"go-tenbox/internal/game"
	"go-tenbox/internal/scoring"
	"go-tenbox/internal/state"
)

const panelNameLen = 14

type theme struct {
	cell     lipgloss.Style
	empty    lipgloss.Style
	selected lipgloss.Style
	hit      lipgloss.Style // selection currently summing to the target
	title    lipgloss.Style
	status   lipgloss.Style
	info     lipgloss.Style
	good     lipgloss.Style
	warn     lipgloss.Style
	bad      lipgloss.Style
	panel    lipgloss.Style
}

func newTheme(light bool) theme {
	good, warn, bad := lipgloss.Color("10"), lipgloss.Color("11"), lipgloss.Color("9")
	cellFg, cellBg, emptyFg, selBg, hitBg, panelBorder := lipgloss.Color("15"), lipgloss.Color("22"), lipgloss.Color("238"), lipgloss.Color("24"), lipgloss.Color("28"), lipgloss.Color("240")
	if light {
		good, warn, bad = lipgloss.Color("28"), lipgloss.Color("130"), lipgloss.Color("160")
		cellFg, cellBg, emptyFg, selBg, hitBg, panelBorder = lipgloss.Color("22"), lipgloss.Color("157"), lipgloss.Color("250"), lipgloss.Color("153"), lipgloss.Color("120"), lipgloss.Color("247")
	}
	return theme{
		cell:     lipgloss.NewStyle().Foreground(cellFg).Background(cellBg).Bold(true),
		empty:    lipgloss.NewStyle().Foreground(emptyFg),
		selected: lipgloss.NewStyle().Foreground(cellFg).Background(selBg).Bold(true),
		hit:      lipgloss.NewStyle().Foreground(cellFg).Background(hitBg).Bold(true),
		title:    lipgloss.NewStyle().Bold(true).Foreground(good),
		status:   lipgloss.NewStyle().Foreground(warn),
		info:     lipgloss.NewStyle().Faint(true),
		good:     lipgloss.NewStyle().Foreground(good),
		warn:     lipgloss.NewStyle().Foreground(warn),
		bad:      lipgloss.NewStyle().Foreground(bad),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(panelBorder).Padding(0, 1).MarginLeft(2),
	}
}

// timeStyle picks the countdown colour from the fraction of time left.
func (t theme) timeStyle(ratio float64) lipgloss.Style {
	switch {
	case ratio > 0.5:
		return t.good
	case ratio > 0.25:
		return t.warn
	default:
		return t.bad
	}
}

func (s *LocalState) View() string {
	t := newTheme(s.Light)
	snap := s.Game.Snapshot()

	lines := []string{
		t.title.Render("TENBOX") + t.info.Render("  s start · p pause · r reset · t theme · b bell · q quit"),
		s.renderStatus(t, snap),
		"",
	}
	lines = append(lines, renderBoard(t, snap)...)
	lines = append(lines, "", s.renderInfo(t, snap))
	if snap.Selection != nil {
		sel := snap.Selection
		style := t.warn
		if sel.Sum == sel.Target {
			style = t.good
		}
		lines = append(lines, style.Render(fmt.Sprintf("Selection: sum %d over %d cells", sel.Sum, sel.Cells)))
	}
	if s.finished != nil {
		lines = append(lines, "", "Record your score (enter to save, esc to skip)", s.nameInput.View())
	} else if s.notice != "" {
		style := t.good
		if s.warning {
			style = t.bad
		}
		lines = append(lines, style.Render(s.notice))
	}

	left := strings.Join(lines, "\n")
	return lipgloss.JoinHorizontal(lipgloss.Top, left, t.panel.Render(renderRankings(s.Rankings.List())))
}

func (s *LocalState) renderStatus(t theme, snap game.Snapshot) string {
	timeStr := fmt.Sprintf("%02d:%02d", snap.TimeRemaining/60, snap.TimeRemaining%60)
	sound := "on"
	if !s.Bell {
		sound = "off"
	}
	return t.status.Render(fmt.Sprintf("SCORE: %d | MOVES: %d | TIME: ", snap.Score, snap.Moves)) +
		t.timeStyle(snap.TimeRatio()).Render(timeStr) +
		t.status.Render(" | BELL: "+sound)
}

func renderBoard(t theme, snap game.Snapshot) []string {
	hit := snap.Selection != nil && snap.Selection.Sum == snap.Selection.Target
	rows := make([]string, snap.Rows)
	for r := 0; r < snap.Rows; r++ {
		var b strings.Builder
		b.WriteString(strings.Repeat(" ", boardOriginX))
		for c := 0; c < snap.Cols; c++ {
			v := snap.Cells[r][c]
			if v == board.Empty {
				b.WriteString(t.empty.Render(" · "))
				continue
			}
			style := t.cell
			if snap.Selected(r, c) {
				style = t.selected
				if hit {
					style = t.hit
				}
			}
			b.WriteString(style.Render(fmt.Sprintf(" %d ", v)))
		}
		rows[r] = b.String()
	}
	return rows
}

func (s *LocalState) renderInfo(t theme, snap game.Snapshot) string {
	switch snap.Phase {
	case state.Idle:
		return t.info.Render("Press s to start")
	case state.Paused:
		return t.warn.Render("Paused (p to resume)")
	}
	if snap.Feedback == nil {
		return t.info.Render(fmt.Sprintf("Drag a rectangle whose numbers sum to %d", board.Target))
	}
	msg := snap.Feedback.Message()
	switch snap.Feedback.Kind {
	case state.FeedbackClear:
		return t.good.Render(msg)
	case state.FeedbackMismatch:
		return t.warn.Render(msg)
	}
	return t.bad.Render(msg)
}

func renderRankings(entries []scoring.Entry) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("TOP %d", scoring.MaxEntries))
	if len(entries) == 0 {
		b.WriteString("\nNo records")
		return b.String()
	}
	for i, e := range entries {
		b.WriteString(fmt.Sprintf("\n%2d. %-*s %5d", i+1, panelNameLen, truncateName(e.Name, panelNameLen), e.Score))
	}
	return b.String()
}

func truncateName(name string, n int) string {
	r := []rune(name)
	if len(r) <= n {
		return name
	}
	return string(r[:n])
}
