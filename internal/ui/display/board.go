package display

import (
	"fmt"
	"image/color"

	"apneatimer/internal/core/discipline"
	"apneatimer/internal/core/phase"
	"apneatimer/internal/core/session"
)

var (
	colorYellow  = color.NRGBA{R: 250, G: 204, B: 21, A: 255}
	colorPrimary = color.NRGBA{R: 56, G: 152, B: 236, A: 255}
	colorOrange  = color.NRGBA{R: 251, G: 146, B: 60, A: 255}
	colorRed     = color.NRGBA{R: 239, G: 68, B: 68, A: 255}
	colorGreen   = color.NRGBA{R: 74, G: 222, B: 128, A: 255}
	colorMuted   = color.NRGBA{R: 148, G: 163, B: 184, A: 255}
)

// PhaseColor returns the board colour of p.
func PhaseColor(p phase.Phase) color.NRGBA {
	switch p {
	case phase.PhaseOfficialTop:
		return colorYellow
	case phase.PhasePerformance:
		return colorPrimary
	case phase.PhaseBottomTime:
		return colorOrange
	case phase.PhaseSurfaceProtocol:
		return colorRed
	case phase.PhaseCompleted:
		return colorGreen
	default:
		return colorMuted
	}
}

// SeverityColor returns the banner colour for an announcement.
func SeverityColor(severity phase.Severity) color.NRGBA {
	switch severity {
	case phase.SeveritySuccess:
		return colorGreen
	case phase.SeverityWarning:
		return colorOrange
	default:
		return colorPrimary
	}
}

// InfoRow is one label/value pair of the discipline panel.
type InfoRow struct {
	Label string
	Value string
}

// InfoRows lists the timing parameters of config.
func InfoRows(config discipline.Config) []InfoRow {
	rows := []InfoRow{{Label: "Official Top", Value: fmt.Sprintf("%ds", config.OfficialTop)}}
	if config.HasBottomTime() {
		rows = append(rows, InfoRow{Label: "Bottom Time", Value: fmt.Sprintf("%ds", config.BottomTime)})
	}
	rows = append(rows,
		InfoRow{Label: "Surface Protocol", Value: fmt.Sprintf("%ds", config.SurfaceProtocol)},
		InfoRow{Label: "Max Performance", Value: session.FormatSeconds(config.MaxPerformance)},
	)
	return rows
}

// ButtonLabel returns the caption of the Start/Stop toggle.
func ButtonLabel(snapshot session.Snapshot) string {
	if snapshot.Running {
		return "Stop"
	}
	return "Start"
}

// ShowsProgress reports whether the progress bar is visible for p.
func ShowsProgress(p phase.Phase) bool {
	return p.Active()
}
