package session

import (
	"fmt"

	"apneatimer/internal/core/discipline"
	"apneatimer/internal/core/phase"
)

// Snapshot is the renderable view of a session.
type Snapshot struct {
	Discipline         discipline.Config
	Phase              phase.Phase
	PhaseTitle         string
	DisplayedSeconds   int
	PerformanceSeconds int
	ProgressPercent    float64
	Running            bool
}

// DisplayedTime formats the main counter as mm:ss.
func (snapshot Snapshot) DisplayedTime() string {
	return FormatSeconds(snapshot.DisplayedSeconds)
}

// PerformanceTime formats the performance counter as mm:ss.
func (snapshot Snapshot) PerformanceTime() string {
	return FormatSeconds(snapshot.PerformanceSeconds)
}

// ShowsPerformance reports whether the secondary performance line applies.
func (snapshot Snapshot) ShowsPerformance() bool {
	return snapshot.Phase == phase.PhasePerformance || snapshot.Phase == phase.PhaseBottomTime
}

// FormatSeconds renders seconds as zero-padded mm:ss.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func newSnapshot(config discipline.Config, state phase.State, running bool) Snapshot {
	snapshot := Snapshot{
		Discipline: config,
		Phase:      state.Phase,
		PhaseTitle: state.Phase.Title(),
		Running:    running,
	}

	switch state.Phase {
	case phase.PhaseOfficialTop:
		snapshot.DisplayedSeconds = state.Remaining
	case phase.PhasePerformance, phase.PhaseBottomTime:
		snapshot.DisplayedSeconds = state.Elapsed
		snapshot.PerformanceSeconds = state.Elapsed
		if config.MaxPerformance > 0 {
			snapshot.ProgressPercent = float64(state.Elapsed) / float64(config.MaxPerformance) * 100
		}
	case phase.PhaseSurfaceProtocol:
		snapshot.DisplayedSeconds = state.Remaining
		if config.SurfaceProtocol > 0 {
			snapshot.ProgressPercent = float64(config.SurfaceProtocol-state.Remaining) / float64(config.SurfaceProtocol) * 100
		}
	}
	snapshot.ProgressPercent = clampPercent(snapshot.ProgressPercent)
	return snapshot
}

func clampPercent(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
