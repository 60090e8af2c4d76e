// Package app wires the timer core to its front ends: the fyne board with
// tray and preferences, and the headless console.
package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"apneatimer/internal/audio"
	"apneatimer/internal/core/cue"
	"apneatimer/internal/core/discipline"
	"apneatimer/internal/core/phase"
	"apneatimer/internal/core/session"
	"apneatimer/internal/core/timekeeper"

	"github.com/rs/zerolog"
)

// ConsoleOptions configures a headless run.
type ConsoleOptions struct {
	Discipline   discipline.Code
	TickInterval time.Duration
	Sound        bool
	Logger       zerolog.Logger
}

// RunConsole runs one protocol and prints its progress to out. It returns
// when the protocol completes or ctx is cancelled; STA only ends on
// cancellation.
func RunConsole(ctx context.Context, options ConsoleOptions, out io.Writer) error {
	writer := &syncWriter{writer: out}

	var tone cue.ToneEmitter
	if options.Sound {
		tone = audio.NewBell(writer)
	}
	dispatcher := cue.NewDispatcher(tone, consoleAnnouncer{writer: writer}, options.Logger)

	scheduler := timekeeper.New(timekeeper.Config{TickInterval: options.TickInterval})
	controller, err := session.New(session.Options{
		Discipline: options.Discipline,
		Scheduler:  scheduler,
		Dispatcher: dispatcher,
		Logger:     options.Logger,
	})
	if err != nil {
		return err
	}
	defer controller.Close()

	events := controller.Subscribe(64)
	config := controller.Snapshot().Discipline
	writer.printf("%s: official top %ds, surface protocol %ds\n", config.Name, config.OfficialTop, config.SurfaceProtocol)

	if err := controller.Start(); err != nil {
		return err
	}

	// Observers may miss events, so completion is also polled.
	poll := time.NewTicker(scheduler.Interval())
	defer poll.Stop()

	var lastLine string
	for {
		select {
		case <-ctx.Done():
			controller.Stop()
			writer.printf("stopped\n")
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if line := StatusLine(event.Snapshot); line != lastLine {
				writer.printf("%s\n", line)
				lastLine = line
			}
			if event.Snapshot.Phase == phase.PhaseCompleted {
				return nil
			}
		case <-poll.C:
			if controller.Snapshot().Phase == phase.PhaseCompleted {
				return nil
			}
		}
	}
}

// StatusLine renders one console line for snapshot.
func StatusLine(snapshot session.Snapshot) string {
	line := fmt.Sprintf("%-16s %s", snapshot.PhaseTitle, snapshot.DisplayedTime())
	if snapshot.Phase.Active() {
		line += fmt.Sprintf(" %3.0f%%", snapshot.ProgressPercent)
	}
	return line
}

type consoleAnnouncer struct {
	writer *syncWriter
}

func (announcer consoleAnnouncer) Announce(message string, severity phase.Severity) error {
	return announcer.writer.printf("[%s] %s\n", severity, message)
}

type syncWriter struct {
	mu     sync.Mutex
	writer io.Writer
}

func (w *syncWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writer.Write(data)
}

func (w *syncWriter) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
