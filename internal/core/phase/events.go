package phase

import "time"

// Phase names the active step of the protocol.
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseOfficialTop     Phase = "official_top"
	PhasePerformance     Phase = "performance"
	PhaseBottomTime      Phase = "bottom_time"
	PhaseSurfaceProtocol Phase = "surface_protocol"
	PhaseCompleted       Phase = "completed"
)

// Title returns the board caption for the phase.
func (phase Phase) Title() string {
	switch phase {
	case PhaseOfficialTop:
		return "OFFICIAL TOP"
	case PhasePerformance:
		return "PERFORMANCE TIME"
	case PhaseBottomTime:
		return "BOTTOM TIME"
	case PhaseSurfaceProtocol:
		return "SURFACE PROTOCOL"
	case PhaseCompleted:
		return "COMPLETED"
	default:
		return "READY"
	}
}

// Active reports whether the phase belongs to a running protocol.
func (phase Phase) Active() bool {
	return phase != PhaseIdle && phase != PhaseCompleted
}

// Severity grades an announcement.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

// DefaultVolume is used for cues that do not set their own level.
const DefaultVolume = 0.3

// Cue is a tone to play and an optional announcement produced by a tick.
type Cue struct {
	Frequency float64
	Duration  time.Duration
	Volume    float64
	Announce  string
	Severity  Severity
}

// HasAnnouncement reports whether the cue carries a message.
func (cue Cue) HasAnnouncement() bool {
	return cue.Announce != ""
}

func tone(frequency float64, duration time.Duration) Cue {
	return Cue{Frequency: frequency, Duration: duration, Volume: DefaultVolume}
}

func (cue Cue) withVolume(volume float64) Cue {
	cue.Volume = volume
	return cue
}

func (cue Cue) announcing(message string, severity Severity) Cue {
	cue.Announce = message
	cue.Severity = severity
	return cue
}
