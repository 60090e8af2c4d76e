// Package session owns the single timing session of the application: it
// selects the discipline, arms the scheduler, applies phase transitions on
// every tick and publishes snapshots to observers.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"apneatimer/internal/core/discipline"
	"apneatimer/internal/core/phase"
	"apneatimer/internal/core/timekeeper"
	"apneatimer/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrInvalidOperation is returned for commands not allowed in the current state.
var ErrInvalidOperation = errors.New("invalid operation")

// Scheduler drives ticks while armed.
type Scheduler interface {
	Arm(onTick timekeeper.TickFunc) error
	Disarm()
	Close()
}

// Dispatcher delivers the cues of a transition.
type Dispatcher interface {
	Dispatch(cues []phase.Cue)
}

// Options configures a Controller.
type Options struct {
	Discipline discipline.Code
	Scheduler  Scheduler
	Dispatcher Dispatcher
	Logger     zerolog.Logger
}

// Session is one selected discipline with its protocol state.
type Session struct {
	ID         string
	Discipline discipline.Config
	State      phase.State
	Armed      bool
}

func newSession(config discipline.Config) Session {
	return Session{
		ID:         uuid.NewString(),
		Discipline: config,
		State:      phase.Idle(),
	}
}

// Controller is the command surface of the timer. All methods are safe for
// concurrent use. Cues are dispatched while the controller lock is held, so
// collaborators must not call back into the Controller.
type Controller struct {
	mu         sync.Mutex
	session    Session
	generation uint64
	scheduler  Scheduler
	dispatcher Dispatcher
	logger     zerolog.Logger
	events     []chan Event
	closed     bool
}

type noopDispatcher struct{}

func (noopDispatcher) Dispatch([]phase.Cue) {}

// New creates an idle Controller for options.Discipline (STA when empty).
func New(options Options) (*Controller, error) {
	code := options.Discipline
	if code == "" {
		code = discipline.Static
	}
	config, err := discipline.Get(code)
	if err != nil {
		return nil, err
	}
	if options.Scheduler == nil {
		options.Scheduler = timekeeper.New(timekeeper.Config{TickInterval: time.Second})
	}
	if options.Dispatcher == nil {
		options.Dispatcher = noopDispatcher{}
	}

	return &Controller{
		session:    newSession(config),
		scheduler:  options.Scheduler,
		dispatcher: options.Dispatcher,
		logger:     options.Logger,
	}, nil
}

// Subscribe registers a new observer channel. Slow observers miss events
// rather than stall the timer.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.closed {
		close(ch)
		return ch
	}
	controller.events = append(controller.events, ch)
	return ch
}

// SelectDiscipline replaces the session with a fresh idle one for code.
func (controller *Controller) SelectDiscipline(code discipline.Code) error {
	config, err := discipline.Get(code)
	if err != nil {
		return err
	}

	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.session.Armed {
		return fmt.Errorf("%w: discipline cannot change while running", ErrInvalidOperation)
	}
	controller.session = newSession(config)
	controller.sessionLoggerLocked().Info().Msg("discipline selected")
	controller.emitLocked(EventStateChange, nil, time.Now())
	return nil
}

// Start begins the protocol at the official top.
func (controller *Controller) Start() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.closed {
		return fmt.Errorf("%w: controller closed", ErrInvalidOperation)
	}
	if controller.session.Armed {
		return fmt.Errorf("%w: already running", ErrInvalidOperation)
	}

	session := newSession(controller.session.Discipline)
	state, cues := phase.Start(session.Discipline)
	session.State = state
	session.Armed = true

	controller.generation++
	generation := controller.generation
	// A run that just completed may not have released the scheduler yet.
	controller.scheduler.Disarm()
	if err := controller.scheduler.Arm(func(tickTime time.Time) bool {
		return controller.advance(generation, tickTime)
	}); err != nil {
		return fmt.Errorf("%w: arm scheduler: %v", ErrInvalidOperation, err)
	}

	controller.session = session
	metrics.RecordSessionStarted(string(session.Discipline.Code))
	metrics.RecordPhaseTransition(string(state.Phase))
	controller.sessionLoggerLocked().Info().Int("official_top", state.Remaining).Msg("protocol started")

	controller.dispatcher.Dispatch(cues)
	controller.emitLocked(EventStateChange, cues, time.Now())
	return nil
}

// Stop aborts the protocol from any phase and resets the counters. Ticks
// that are already due are discarded and their cues never play.
func (controller *Controller) Stop() {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	previous := controller.session.State.Phase
	wasArmed := controller.session.Armed

	controller.generation++
	controller.scheduler.Disarm()
	controller.session.Armed = false
	controller.session.State = phase.Stop()

	if wasArmed {
		metrics.RecordSessionFinished(string(controller.session.Discipline.Code), metrics.OutcomeAborted)
		controller.sessionLoggerLocked().Info().Str("from", string(previous)).Msg("protocol stopped")
	}
	controller.session = newSession(controller.session.Discipline)
	controller.emitLocked(EventStateChange, nil, time.Now())
}

// Snapshot returns the renderable state.
func (controller *Controller) Snapshot() Snapshot {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.snapshotLocked()
}

// Session returns a copy of the current session.
func (controller *Controller) Session() Session {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.session
}

// Close stops the scheduler and closes all observer channels. A running
// protocol is counted as aborted.
func (controller *Controller) Close() {
	controller.mu.Lock()
	if controller.closed {
		controller.mu.Unlock()
		return
	}
	controller.closed = true
	controller.generation++
	wasArmed := controller.session.Armed
	controller.session.Armed = false
	controller.scheduler.Disarm()
	if wasArmed {
		metrics.RecordSessionFinished(string(controller.session.Discipline.Code), metrics.OutcomeAborted)
		controller.sessionLoggerLocked().Info().Str("from", string(controller.session.State.Phase)).Msg("protocol closed while running")
	}
	events := controller.events
	controller.events = nil
	controller.mu.Unlock()

	controller.scheduler.Close()
	for _, ch := range events {
		close(ch)
	}
}

// advance applies one tick. It returns false once the session no longer
// needs ticks.
func (controller *Controller) advance(generation uint64, tickTime time.Time) bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if !controller.session.Armed || controller.generation != generation {
		metrics.RecordTickDropped()
		return false
	}

	previous := controller.session.State
	next, cues := phase.Tick(previous, controller.session.Discipline)
	controller.session.State = next

	eventType := EventTick
	if next.Phase != previous.Phase {
		eventType = EventStateChange
		metrics.RecordPhaseTransition(string(next.Phase))
		controller.sessionLoggerLocked().Info().
			Str("from", string(previous.Phase)).
			Str("to", string(next.Phase)).
			Int("elapsed", previous.Elapsed).
			Msg("phase transition")
	}
	if next.Phase == phase.PhaseCompleted {
		controller.session.Armed = false
		metrics.RecordSessionFinished(string(controller.session.Discipline.Code), metrics.OutcomeCompleted)
	}

	controller.dispatcher.Dispatch(cues)
	controller.emitLocked(eventType, cues, tickTime)
	return controller.session.Armed
}

func (controller *Controller) snapshotLocked() Snapshot {
	return newSnapshot(controller.session.Discipline, controller.session.State, controller.session.Armed)
}

func (controller *Controller) sessionLoggerLocked() *zerolog.Logger {
	logger := controller.logger.With().
		Str("session_id", controller.session.ID).
		Str("discipline", string(controller.session.Discipline.Code)).
		Logger()
	return &logger
}

func (controller *Controller) emitLocked(eventType EventType, cues []phase.Cue, at time.Time) {
	event := Event{
		Type:     eventType,
		Snapshot: controller.snapshotLocked(),
		Cues:     cues,
		At:       at,
	}
	for _, ch := range controller.events {
		select {
		case ch <- event:
		default:
		}
	}
}
