// Package timekeeper drives a tick callback at a fixed interval on a single
// goroutine. Arming and disarming are safe from any goroutine.
package timekeeper

import (
	"errors"
	"sync"
	"time"
)

// ErrAlreadyArmed is returned when Arm is called on an armed scheduler.
var ErrAlreadyArmed = errors.New("scheduler already armed")

// TickFunc handles one tick. Returning false disarms the scheduler.
type TickFunc func(tickTime time.Time) bool

// Config contains runtime options for Scheduler.
type Config struct {
	TickInterval time.Duration
}

// Scheduler invokes a TickFunc once per TickInterval while armed.
type Scheduler struct {
	mu         sync.Mutex
	options    Config
	armed      bool
	generation uint64
	stopCh     chan struct{}
	wg         sync.WaitGroup
}

// New creates a disarmed Scheduler.
func New(options Config) *Scheduler {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	return &Scheduler{options: options}
}

// Interval returns the configured tick interval.
func (scheduler *Scheduler) Interval() time.Duration {
	return scheduler.options.TickInterval
}

// Arm starts delivering ticks to onTick. The first tick fires one interval
// after Arm returns.
func (scheduler *Scheduler) Arm(onTick TickFunc) error {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.armed {
		return ErrAlreadyArmed
	}
	scheduler.armed = true
	scheduler.generation++
	scheduler.stopCh = make(chan struct{})

	scheduler.wg.Add(1)
	go scheduler.run(scheduler.generation, scheduler.stopCh, onTick)
	return nil
}

// Disarm stops tick delivery. A tick that was already due but not yet
// delivered is dropped. Disarm does not wait for the driver goroutine.
func (scheduler *Scheduler) Disarm() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.disarmLocked()
}

// Armed reports whether ticks are being delivered.
func (scheduler *Scheduler) Armed() bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.armed
}

// Close disarms and waits for the driver goroutine to exit. It must not be
// called from inside a TickFunc.
func (scheduler *Scheduler) Close() {
	scheduler.Disarm()
	scheduler.wg.Wait()
}

func (scheduler *Scheduler) disarmLocked() {
	if !scheduler.armed {
		return
	}
	scheduler.armed = false
	close(scheduler.stopCh)
}

func (scheduler *Scheduler) run(generation uint64, stopCh <-chan struct{}, onTick TickFunc) {
	defer scheduler.wg.Done()

	ticker := time.NewTicker(scheduler.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C:
			if !scheduler.current(generation) {
				return
			}
			if !onTick(tickTime) {
				scheduler.finish(generation)
				return
			}
		}
	}
}

func (scheduler *Scheduler) current(generation uint64) bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.armed && scheduler.generation == generation
}

func (scheduler *Scheduler) finish(generation uint64) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.generation == generation {
		scheduler.disarmLocked()
	}
}
