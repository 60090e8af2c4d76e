// Package metrics exposes timing protocol counters for Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apneatimer_sessions_started_total",
		Help: "Protocols started per discipline",
	}, []string{"discipline"})

	sessionsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apneatimer_sessions_finished_total",
		Help: "Protocols finished per discipline by outcome",
	}, []string{"discipline", "outcome"}) // outcome=completed|aborted

	phaseTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apneatimer_phase_transitions_total",
		Help: "Phase transitions by target phase",
	}, []string{"phase"})

	cuesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apneatimer_cues_total",
		Help: "Cue deliveries by channel and outcome",
	}, []string{"channel", "outcome"}) // channel=tone|announce, outcome=delivered|skipped|failed

	ticksDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "apneatimer_ticks_dropped_total",
		Help: "Ticks discarded because the session was stopped or restarted",
	})

	sessionRunning = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "apneatimer_session_running",
		Help: "Whether a protocol is currently running (1) or not (0)",
	})
)

// Outcomes for finished sessions.
const (
	OutcomeCompleted = "completed"
	OutcomeAborted   = "aborted"
)

// Cue channels and delivery outcomes.
const (
	ChannelTone     = "tone"
	ChannelAnnounce = "announce"

	CueDelivered = "delivered"
	CueSkipped   = "skipped"
	CueFailed    = "failed"
)

// RecordSessionStarted counts a start and marks the session running.
func RecordSessionStarted(discipline string) {
	sessionsStarted.WithLabelValues(discipline).Inc()
	sessionRunning.Set(1)
}

// RecordSessionFinished counts a completion or abort.
func RecordSessionFinished(discipline, outcome string) {
	sessionsFinished.WithLabelValues(discipline, outcome).Inc()
	sessionRunning.Set(0)
}

// RecordPhaseTransition counts entry into phase.
func RecordPhaseTransition(phase string) {
	phaseTransitions.WithLabelValues(phase).Inc()
}

// RecordCue counts one cue delivery attempt.
func RecordCue(channel, outcome string) {
	cuesTotal.WithLabelValues(channel, outcome).Inc()
}

// RecordTickDropped counts a discarded tick.
func RecordTickDropped() {
	ticksDropped.Inc()
}
