package preferences

import (
	"fmt"
	"math"
	"strings"

	"apneatimer/internal/core/discipline"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	onCancel      func()
	discipline    *widget.Select
	sound         *widget.Check
	volume        *widget.Slider
	volumeLabel   *widget.Label
	notifications *widget.Check
	logLevel      *widget.Select
	metricsAddr   *widget.Entry
	options       map[string]discipline.Code
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Apnea Timer Settings")

	options := make(map[string]discipline.Code)
	names := make([]string, 0, len(discipline.Codes()))
	for _, config := range discipline.All() {
		options[config.Name] = config.Code
		names = append(names, config.Name)
	}

	prefs := &Window{
		window:   window,
		settings: settings,
		onSave:   onSave,
		options:  options,
	}

	prefs.discipline = widget.NewSelect(names, nil)
	prefs.sound = widget.NewCheck("Play tones", nil)
	prefs.volumeLabel = widget.NewLabel("")
	prefs.volume = widget.NewSlider(MinVolume, MaxVolume)
	prefs.volume.Step = 0.05
	prefs.volume.OnChanged = func(value float64) {
		prefs.volumeLabel.SetText(formatVolume(value))
	}
	prefs.notifications = widget.NewCheck("Desktop notifications", nil)
	prefs.logLevel = widget.NewSelect(LogLevels, nil)
	prefs.metricsAddr = widget.NewEntry()
	prefs.metricsAddr.SetPlaceHolder("127.0.0.1:9464 (empty disables)")

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Default discipline"), prefs.discipline),
		widget.NewLabelWithStyle("Sound", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.sound,
		container.NewBorder(nil, nil, widget.NewLabel("Master volume"), prefs.volumeLabel, prefs.volume),
		prefs.notifications,
		widget.NewLabelWithStyle("Diagnostics", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Log level"), prefs.logLevel),
		widget.NewLabel("Metrics address"),
		prefs.metricsAddr,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", prefs.handleCancel)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 460))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// SetOnCancel sets a handler fired when editing is abandoned. The fields
// keep the abandoned edits until UpdateSettings is called.
func (prefs *Window) SetOnCancel(handler func()) {
	prefs.onCancel = handler
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	if config, err := discipline.Get(settings.Discipline); err == nil {
		prefs.discipline.SetSelected(config.Name)
	}
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.volume.SetValue(settings.MasterVolume)
	prefs.volumeLabel.SetText(formatVolume(settings.MasterVolume))
	prefs.notifications.SetChecked(settings.NotificationsEnabled)
	prefs.logLevel.SetSelected(settings.LogLevel)
	prefs.metricsAddr.SetText(settings.MetricsAddr)
}

// Settings returns the last saved values.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if code, ok := prefs.options[prefs.discipline.Selected]; ok {
		settings.Discipline = code
	}
	settings.SoundEnabled = prefs.sound.Checked
	settings.MasterVolume = math.Min(math.Max(prefs.volume.Value, MinVolume), MaxVolume)
	settings.NotificationsEnabled = prefs.notifications.Checked
	if ValidLogLevel(prefs.logLevel.Selected) {
		settings.LogLevel = prefs.logLevel.Selected
	}
	settings.MetricsAddr = strings.TrimSpace(prefs.metricsAddr.Text)

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) handleCancel() {
	prefs.window.Hide()
	if prefs.onCancel != nil {
		prefs.onCancel()
	}
}

func formatVolume(value float64) string {
	return fmt.Sprintf("%d%%", int(value*100+0.5))
}
