// Package display renders the competition board: discipline selector,
// phase caption, big timer, progress and the Start/Stop toggle.
package display

import (
	"image/color"

	"apneatimer/internal/core/discipline"
	"apneatimer/internal/core/phase"
	"apneatimer/internal/core/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	windowWidth  = float32(520)
	windowHeight = float32(640)

	timerTextSize = 96
	titleTextSize = 16
	glowAlphaMax  = 120
)

// Window manages the timer board.
type Window struct {
	window fyne.Window

	selector    *widget.Select
	titleLabel  *canvas.Text
	timerLabel  *canvas.Text
	performance *widget.Label
	progress    *widget.ProgressBar
	toggle      *widget.Button
	glow        *canvas.Rectangle
	bannerLabel *canvas.Text
	infoGrid    *fyne.Container
	disciplines []discipline.Config
	current     session.Snapshot
	syncing     bool
	onStart     func()
	onStop      func()
	onSelect    func(discipline.Code)
}

// New creates the board window with the initial snapshot.
func New(app fyne.App, initial session.Snapshot) *Window {
	window := app.NewWindow("Apnea Timer")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	disciplines := discipline.All()
	options := make([]string, 0, len(disciplines))
	for _, config := range disciplines {
		options = append(options, config.Name)
	}

	board := &Window{
		window:      window,
		disciplines: disciplines,
	}

	board.selector = widget.NewSelect(options, board.handleSelect)

	board.titleLabel = canvas.NewText("", colorMuted)
	board.titleLabel.Alignment = fyne.TextAlignCenter
	board.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	board.titleLabel.TextSize = titleTextSize

	board.timerLabel = canvas.NewText("00:00", colorMuted)
	board.timerLabel.Alignment = fyne.TextAlignCenter
	board.timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	board.timerLabel.TextSize = timerTextSize

	board.performance = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})

	board.progress = widget.NewProgressBar()
	board.progress.Max = 100

	board.toggle = widget.NewButton("Start", board.handleToggle)
	board.toggle.Importance = widget.HighImportance

	board.glow = canvas.NewRectangle(color.Transparent)
	board.glow.CornerRadius = 12

	board.bannerLabel = canvas.NewText("", colorPrimary)
	board.bannerLabel.Alignment = fyne.TextAlignCenter
	board.bannerLabel.TextStyle = fyne.TextStyle{Bold: true}

	board.infoGrid = container.NewGridWithColumns(2)

	timerBlock := container.NewStack(board.glow, container.NewVBox(board.titleLabel, board.timerLabel, board.performance))
	content := container.NewVBox(
		widget.NewLabelWithStyle("Discipline", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		board.selector,
		timerBlock,
		board.progress,
		board.toggle,
		board.bannerLabel,
		widget.NewSeparator(),
		board.infoGrid,
	)

	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(windowWidth, windowHeight))

	board.render(initial)
	return board
}

// SetOnStart sets the Start handler.
func (board *Window) SetOnStart(handler func()) {
	board.onStart = handler
}

// SetOnStop sets the Stop handler.
func (board *Window) SetOnStop(handler func()) {
	board.onStop = handler
}

// SetOnSelect sets the discipline change handler.
func (board *Window) SetOnSelect(handler func(discipline.Code)) {
	board.onSelect = handler
}

// Show brings the board to the front.
func (board *Window) Show() {
	board.window.Show()
	board.window.RequestFocus()
}

// Window exposes the underlying fyne window.
func (board *Window) Window() fyne.Window {
	return board.window
}

// Render updates the board from any goroutine.
func (board *Window) Render(snapshot session.Snapshot) {
	fyne.Do(func() {
		board.render(snapshot)
	})
}

// Announce shows message in the banner line from any goroutine.
func (board *Window) Announce(message string, severity phase.Severity) error {
	fyne.Do(func() {
		board.setBanner(message, severity)
	})
	return nil
}

// SetGlow sets the timer glow intensity in [0,1] from any goroutine.
func (board *Window) SetGlow(intensity float64) {
	fyne.Do(func() {
		board.setGlow(intensity)
	})
}

func (board *Window) render(snapshot session.Snapshot) {
	disciplineChanged := snapshot.Discipline.Code != board.current.Discipline.Code || len(board.infoGrid.Objects) == 0
	board.current = snapshot

	phaseColor := PhaseColor(snapshot.Phase)
	board.titleLabel.Text = snapshot.PhaseTitle
	board.titleLabel.Color = phaseColor
	board.titleLabel.Refresh()

	board.timerLabel.Text = snapshot.DisplayedTime()
	board.timerLabel.Color = phaseColor
	board.timerLabel.Refresh()

	if snapshot.ShowsPerformance() {
		board.performance.SetText("Performance: " + snapshot.PerformanceTime())
		board.performance.Show()
	} else {
		board.performance.Hide()
	}

	if ShowsProgress(snapshot.Phase) {
		board.progress.SetValue(snapshot.ProgressPercent)
		board.progress.Show()
	} else {
		board.progress.Hide()
	}

	board.toggle.SetText(ButtonLabel(snapshot))
	if snapshot.Running {
		board.toggle.Importance = widget.DangerImportance
		board.selector.Disable()
	} else {
		board.toggle.Importance = widget.HighImportance
		board.selector.Enable()
	}
	board.toggle.Refresh()

	if snapshot.Phase == phase.PhaseIdle {
		board.setBanner("", phase.SeverityInfo)
	}
	if !snapshot.Phase.Active() {
		board.setGlow(0)
	}

	if disciplineChanged {
		board.syncing = true
		board.selector.SetSelected(snapshot.Discipline.Name)
		board.syncing = false
		board.renderInfo(snapshot.Discipline)
	}
}

func (board *Window) renderInfo(config discipline.Config) {
	objects := make([]fyne.CanvasObject, 0, 8)
	for _, row := range InfoRows(config) {
		caption := canvas.NewText(row.Label, colorMuted)
		caption.TextSize = 12
		value := widget.NewLabelWithStyle(row.Value, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
		objects = append(objects, container.NewVBox(caption, value))
	}
	board.infoGrid.Objects = objects
	board.infoGrid.Refresh()
}

func (board *Window) setBanner(message string, severity phase.Severity) {
	board.bannerLabel.Text = message
	board.bannerLabel.Color = SeverityColor(severity)
	board.bannerLabel.Refresh()
}

func (board *Window) setGlow(intensity float64) {
	if intensity <= 0 {
		board.glow.FillColor = color.Transparent
		board.glow.Refresh()
		return
	}
	if intensity > 1 {
		intensity = 1
	}
	glowColor := PhaseColor(board.current.Phase)
	glowColor.A = uint8(intensity * glowAlphaMax)
	board.glow.FillColor = glowColor
	board.glow.Refresh()
}

func (board *Window) handleSelect(name string) {
	if board.syncing || board.onSelect == nil {
		return
	}
	for _, config := range board.disciplines {
		if config.Name == name {
			board.onSelect(config.Code)
			return
		}
	}
}

func (board *Window) handleToggle() {
	if board.current.Running {
		if board.onStop != nil {
			board.onStop()
		}
		return
	}
	if board.onStart != nil {
		board.onStart()
	}
}
