// Package phase implements the competition protocol as a pure transition
// function over State. It has no clock of its own; a driver calls Tick once
// per elapsed second.
package phase

import (
	"time"

	"apneatimer/internal/core/discipline"
)

const (
	warningAt   = 6
	countdownAt = 5
)

// Announcement texts.
const (
	MessageOfficialTop     = "Official top started"
	MessagePerformance     = "Performance start"
	MessageBottomTime      = "Bottom time"
	MessageSurfaceProtocol = "Surface protocol"
	MessageCompleted       = "Protocol completed"
)

// State is the active phase with its counters. OfficialTop and
// SurfaceProtocol count Remaining down, Performance counts Elapsed up,
// BottomTime does both. Idle and Completed carry zeros.
type State struct {
	Phase     Phase
	Remaining int
	Elapsed   int
}

// Idle is the state of a session that is not running.
func Idle() State {
	return State{Phase: PhaseIdle}
}

// Start enters the official top countdown.
func Start(config discipline.Config) (State, []Cue) {
	state := State{Phase: PhaseOfficialTop, Remaining: config.OfficialTop}
	cue := tone(800, 300*time.Millisecond).announcing(MessageOfficialTop, SeveritySuccess)
	return state, []Cue{cue}
}

// Stop aborts silently.
func Stop() State {
	return Idle()
}

// Tick advances state by one second.
func Tick(state State, config discipline.Config) (State, []Cue) {
	switch state.Phase {
	case PhaseOfficialTop:
		return tickOfficialTop(state)
	case PhasePerformance:
		return tickPerformance(state, config)
	case PhaseBottomTime:
		return tickBottomTime(state, config)
	case PhaseSurfaceProtocol:
		return tickSurfaceProtocol(state)
	default:
		return state, nil
	}
}

func tickOfficialTop(state State) (State, []Cue) {
	remaining := state.Remaining
	if remaining <= 1 {
		cue := tone(1200, 500*time.Millisecond).withVolume(0.4).announcing(MessagePerformance, SeverityInfo)
		return State{Phase: PhasePerformance}, []Cue{cue}
	}

	next := State{Phase: PhaseOfficialTop, Remaining: remaining - 1}
	switch {
	case remaining == warningAt:
		return next, []Cue{tone(600, 200*time.Millisecond)}
	case remaining <= countdownAt:
		return next, []Cue{tone(600, 150*time.Millisecond)}
	default:
		return next, nil
	}
}

func tickPerformance(state State, config discipline.Config) (State, []Cue) {
	if config.HasBottomTime() && state.Elapsed == config.BottomTime-1 {
		next := State{
			Phase:     PhaseBottomTime,
			Elapsed:   state.Elapsed + 1,
			Remaining: config.BottomTime,
		}
		cue := tone(400, 400*time.Millisecond).announcing(MessageBottomTime, SeverityWarning)
		return next, []Cue{cue}
	}
	return State{Phase: PhasePerformance, Elapsed: state.Elapsed + 1}, nil
}

func tickBottomTime(state State, config discipline.Config) (State, []Cue) {
	remaining := state.Remaining
	if remaining <= 1 {
		next := State{Phase: PhaseSurfaceProtocol, Remaining: config.SurfaceProtocol}
		cue := tone(1000, 600*time.Millisecond).withVolume(0.5).announcing(MessageSurfaceProtocol, SeverityInfo)
		return next, []Cue{cue}
	}

	next := State{Phase: PhaseBottomTime, Elapsed: state.Elapsed + 1, Remaining: remaining - 1}
	if remaining <= countdownAt {
		return next, []Cue{tone(500, 150*time.Millisecond)}
	}
	return next, nil
}

func tickSurfaceProtocol(state State) (State, []Cue) {
	remaining := state.Remaining
	if remaining <= 1 {
		cue := tone(1400, 800*time.Millisecond).withVolume(0.5).announcing(MessageCompleted, SeveritySuccess)
		return State{Phase: PhaseCompleted}, []Cue{cue}
	}

	next := State{Phase: PhaseSurfaceProtocol, Remaining: remaining - 1}
	if remaining <= countdownAt {
		return next, []Cue{tone(700, 150*time.Millisecond)}
	}
	return next, nil
}
