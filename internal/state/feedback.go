package state

import (
	"fmt"
	"go-tenbox/internal/board"
)

type FeedbackKind string

const (
	FeedbackClear    FeedbackKind = "clear"
	FeedbackMismatch FeedbackKind = "mismatch"
	FeedbackOver     FeedbackKind = "over"
)

// Feedback is the last message-worthy result for the presentation layer.
// For FeedbackOver, Points holds the final score.
type Feedback struct {
	Kind   FeedbackKind
	Sum    int
	Count  int
	Points int
	Reason string
}

func (f Feedback) Message() string {
	switch f.Kind {
	case FeedbackClear:
		return fmt.Sprintf("Clear! +%d (%d cells)", f.Points, f.Count)
	case FeedbackMismatch:
		return fmt.Sprintf("Sum %d (not %d)", f.Sum, board.Target)
	case FeedbackOver:
		return fmt.Sprintf("Game over: %s | final score %d", f.Reason, f.Points)
	}
	return ""
}
