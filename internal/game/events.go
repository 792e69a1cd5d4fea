package game

import "go-tenbox/internal/state"

// Listener receives engine events. Sound and presentation layers subscribe
// through it; the engine does not know what they do with them.
type Listener interface {
	OnMatchCleared(fb state.Feedback)
	OnMismatch(fb state.Feedback)
	OnSessionStateChanged(to state.Phase)
}

// ListenerFuncs adapts optional functions to a Listener. Nil fields are skipped.
type ListenerFuncs struct {
	MatchCleared        func(state.Feedback)
	Mismatch            func(state.Feedback)
	SessionStateChanged func(state.Phase)
}

func (f ListenerFuncs) OnMatchCleared(fb state.Feedback) {
	if f.MatchCleared != nil {
		f.MatchCleared(fb)
	}
}

func (f ListenerFuncs) OnMismatch(fb state.Feedback) {
	if f.Mismatch != nil {
		f.Mismatch(fb)
	}
}

func (f ListenerFuncs) OnSessionStateChanged(to state.Phase) {
	if f.SessionStateChanged != nil {
		f.SessionStateChanged(to)
	}
}
