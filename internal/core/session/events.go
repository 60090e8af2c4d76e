package session

import (
	"time"

	"apneatimer/internal/core/phase"
)

// EventType defines the type of session event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
)

// Event is a session update for observers. Cues lists what the update
// dispatched, for observers that mirror them.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	Cues     []phase.Cue
	At       time.Time
}
