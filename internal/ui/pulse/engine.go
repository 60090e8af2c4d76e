// Package pulse drives the breathing glow behind the running timer.
package pulse

import (
	"context"
	"math"
	"sync"
	"time"
)

// Range bounds a glow intensity between 0 and 1.
type Range struct {
	Min float64
	Max float64
}

// At maps a position in [0,1] onto the range.
func (value Range) At(position float64) float64 {
	if value.Max <= value.Min {
		return value.Min
	}
	return value.Min + (value.Max-value.Min)*position
}

// Config contains pulse timing values.
type Config struct {
	Period    time.Duration
	FrameRate time.Duration
	Intensity Range
}

// DefaultConfig returns a slow two-second pulse at roughly 30 frames per second.
func DefaultConfig() Config {
	return Config{
		Period:    2 * time.Second,
		FrameRate: 33 * time.Millisecond,
		Intensity: Range{Min: 0.15, Max: 0.6},
	}
}

// Engine pushes glow intensities to a callback until stopped.
type Engine struct {
	mu      sync.Mutex
	config  Config
	update  func(float64)
	cancel  context.CancelFunc
	running bool
	wg      sync.WaitGroup
}

// New creates a new pulse engine.
func New(config Config, update func(float64)) *Engine {
	defaults := DefaultConfig()
	if config.Period <= 0 {
		config.Period = defaults.Period
	}
	if config.FrameRate <= 0 {
		config.FrameRate = defaults.FrameRate
	}
	return &Engine{config: config, update: update}
}

// Start begins pulsing. Calling Start while running is a no-op.
func (engine *Engine) Start(ctx context.Context) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.running {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	engine.cancel = cancel
	engine.running = true

	engine.wg.Add(1)
	go func() {
		defer engine.wg.Done()
		engine.run(runCtx)
	}()
}

// Stop ends the pulse and resets the glow to zero.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel := engine.cancel
	wasRunning := engine.running
	engine.cancel = nil
	engine.running = false
	engine.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	engine.wg.Wait()
	if wasRunning {
		engine.update(0)
	}
}

// Running reports whether the pulse loop is active.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.running
}

func (engine *Engine) run(ctx context.Context) {
	start := time.Now()
	for {
		engine.update(engine.intensity(time.Since(start)))
		if !sleepWithContext(ctx, engine.config.FrameRate) {
			return
		}
	}
}

// intensity follows a raised cosine so the glow starts and ends dim.
func (engine *Engine) intensity(elapsed time.Duration) float64 {
	cycle := float64(elapsed%engine.config.Period) / float64(engine.config.Period)
	position := (1 - math.Cos(2*math.Pi*cycle)) / 2
	return engine.config.Intensity.At(position)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
