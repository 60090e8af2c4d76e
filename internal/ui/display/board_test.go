package display

import (
	"testing"

	"apneatimer/internal/core/discipline"
	"apneatimer/internal/core/phase"
	"apneatimer/internal/core/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseColor(t *testing.T) {
	assert.Equal(t, colorMuted, PhaseColor(phase.PhaseIdle))
	assert.Equal(t, colorYellow, PhaseColor(phase.PhaseOfficialTop))
	assert.Equal(t, colorPrimary, PhaseColor(phase.PhasePerformance))
	assert.Equal(t, colorOrange, PhaseColor(phase.PhaseBottomTime))
	assert.Equal(t, colorRed, PhaseColor(phase.PhaseSurfaceProtocol))
	assert.Equal(t, colorGreen, PhaseColor(phase.PhaseCompleted))
}

func TestSeverityColor(t *testing.T) {
	assert.Equal(t, colorPrimary, SeverityColor(phase.SeverityInfo))
	assert.Equal(t, colorGreen, SeverityColor(phase.SeveritySuccess))
	assert.Equal(t, colorOrange, SeverityColor(phase.SeverityWarning))
}

func TestInfoRows(t *testing.T) {
	sta, err := discipline.Get(discipline.Static)
	require.NoError(t, err)
	assert.Equal(t, []InfoRow{
		{Label: "Official Top", Value: "30s"},
		{Label: "Surface Protocol", Value: "15s"},
		{Label: "Max Performance", Value: "10:00"},
	}, InfoRows(sta))

	cwt, err := discipline.Get(discipline.ConstantWeight)
	require.NoError(t, err)
	assert.Equal(t, []InfoRow{
		{Label: "Official Top", Value: "30s"},
		{Label: "Bottom Time", Value: "30s"},
		{Label: "Surface Protocol", Value: "15s"},
		{Label: "Max Performance", Value: "04:00"},
	}, InfoRows(cwt))
}

func TestButtonLabelAndProgressVisibility(t *testing.T) {
	assert.Equal(t, "Start", ButtonLabel(session.Snapshot{Phase: phase.PhaseIdle}))
	assert.Equal(t, "Start", ButtonLabel(session.Snapshot{Phase: phase.PhaseCompleted}))
	assert.Equal(t, "Stop", ButtonLabel(session.Snapshot{Phase: phase.PhaseOfficialTop, Running: true}))

	assert.False(t, ShowsProgress(phase.PhaseIdle))
	assert.False(t, ShowsProgress(phase.PhaseCompleted))
	assert.True(t, ShowsProgress(phase.PhaseOfficialTop))
	assert.True(t, ShowsProgress(phase.PhaseSurfaceProtocol))
}
