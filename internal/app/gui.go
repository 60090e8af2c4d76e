package app

import (
	"context"
	"errors"
	"sync"

	"apneatimer/internal/audio"
	"apneatimer/internal/core/cue"
	"apneatimer/internal/core/discipline"
	"apneatimer/internal/core/session"
	applog "apneatimer/internal/log"
	"apneatimer/internal/metrics"
	"apneatimer/internal/platform"
	"apneatimer/internal/ui/display"
	"apneatimer/internal/ui/notify"
	"apneatimer/internal/ui/preferences"
	"apneatimer/internal/ui/pulse"
	"apneatimer/internal/ui/tray"
	"apneatimer/resources"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

// Name identifies the application for the config directory and the
// single-instance lock.
const Name = "ApneaTimer"

const appID = "com.apneatimer.app"

// GUIOptions configures the desktop front end.
type GUIOptions struct {
	Settings     preferences.Settings
	SaveSettings func(preferences.Settings) error
}

// RunGUI opens the timer board and blocks until the user quits.
func RunGUI(options GUIOptions) error {
	logger := applog.WithComponent("app")
	settings := options.Settings

	guard, err := platform.AcquireSingleInstance(Name)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info().Msg("timer already running, activated existing window")
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := fyneapp.NewWithID(appID)
	idleIcon := resources.MustLogo(resources.LogoIdle)
	activeIcon := resources.MustLogo(resources.LogoActive)
	fyneApp.SetIcon(idleIcon)

	var tone cue.ToneEmitter
	player, err := audio.NewPlayer(settings.MasterVolume, applog.WithComponent("audio"))
	if err != nil {
		logger.Warn().Err(err).Msg("tones disabled")
	} else {
		tone = player
	}
	sound := NewSoundSwitch(tone, settings.SoundEnabled)

	notifier := notify.New(fyneApp, nil, settings.NotificationsEnabled)
	dispatcher := cue.NewDispatcher(sound, notifier, applog.WithComponent("cue"))

	controller, err := session.New(session.Options{
		Discipline: settings.Discipline,
		Dispatcher: dispatcher,
		Logger:     applog.WithComponent("session"),
	})
	if err != nil {
		return err
	}

	board := display.New(fyneApp, controller.Snapshot())
	notifier.SetBanner(board)
	glow := pulse.New(pulse.DefaultConfig(), board.SetGlow)

	start := func() {
		if err := controller.Start(); err != nil {
			logger.Warn().Err(err).Msg("start rejected")
		}
	}
	selectDiscipline := func(code discipline.Code) {
		if err := controller.SelectDiscipline(code); err != nil {
			logger.Warn().Err(err).Str("discipline", string(code)).Msg("discipline change rejected")
		}
	}
	board.SetOnStart(start)
	board.SetOnStop(controller.Stop)
	board.SetOnSelect(selectDiscipline)

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if updated.MetricsAddr != settings.MetricsAddr {
			logger.Info().Str("addr", updated.MetricsAddr).Msg("metrics address applies after restart")
		}
		if updated.Discipline != settings.Discipline {
			selectDiscipline(updated.Discipline)
		}
		settings = updated
		applySettings(settings, player, sound, notifier)
		if options.SaveSettings != nil {
			if err := options.SaveSettings(settings); err != nil {
				logger.Error().Err(err).Msg("save settings")
			}
		}
	})

	prefsWindow.SetOnCancel(func() {
		prefsWindow.UpdateSettings(prefsWindow.Settings())
		logger.Debug().Msg("preferences edit discarded")
	})

	desktopApp, hasTray := fyneApp.(desktop.App)
	var trayManager *tray.Manager
	if hasTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        board.Show,
			OnStart:       start,
			OnStop:        controller.Stop,
			OnSelect:      selectDiscipline,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(idleIcon)
		trayManager.Update(controller.Snapshot())
		board.Window().SetCloseIntercept(board.Window().Hide)
	} else {
		board.Window().SetMaster()
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := metrics.Serve(ctx, settings.MetricsAddr, applog.WithComponent("metrics")); err != nil {
			logger.Error().Err(err).Msg("metrics endpoint")
		}
	}()

	events := controller.Subscribe(32)
	wg.Add(1)
	go func() {
		defer wg.Done()
		followSession(ctx, events, glow, func(snapshot session.Snapshot) {
			board.Render(snapshot)
			if trayManager == nil {
				return
			}
			fyne.Do(func() {
				trayManager.Update(snapshot)
				if snapshot.Running {
					desktopApp.SetSystemTrayIcon(activeIcon)
				} else {
					desktopApp.SetSystemTrayIcon(idleIcon)
				}
			})
		})
	}()

	guard.OnActivate(func() {
		fyne.Do(board.Show)
	})

	logger.Info().Str("discipline", string(settings.Discipline)).Msg("timer ready")
	board.Show()
	fyneApp.Run()

	shutdown(controller, cancel, &wg, glow)
	if player != nil {
		player.Wait()
	}
	return nil
}

type glowControl interface {
	Start(ctx context.Context)
	Stop()
}

// followSession renders every event and drives the glow until events is
// closed.
func followSession(ctx context.Context, events <-chan session.Event, glow glowControl, render func(session.Snapshot)) {
	for event := range events {
		render(event.Snapshot)
		if event.Snapshot.Phase.Active() {
			glow.Start(ctx)
		} else {
			glow.Stop()
		}
	}
}

// shutdown closes the controller and waits for its observers before the
// glow is stopped, so a buffered event cannot restart it.
func shutdown(controller interface{ Close() }, cancel context.CancelFunc, wg *sync.WaitGroup, glow glowControl) {
	controller.Close()
	cancel()
	wg.Wait()
	glow.Stop()
}

func applySettings(settings preferences.Settings, player *audio.Player, sound *SoundSwitch, notifier *notify.Notifier) {
	if player != nil {
		player.SetMasterVolume(settings.MasterVolume)
	}
	sound.SetEnabled(settings.SoundEnabled)
	notifier.SetEnabled(settings.NotificationsEnabled)
	applog.SetLevel(settings.LogLevel)
}
