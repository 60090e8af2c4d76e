package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"apneatimer/internal/core/discipline"
	"apneatimer/internal/core/phase"
	"apneatimer/internal/core/session"
	"apneatimer/internal/ui/pulse"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(data []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(data)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunConsoleCompletesDynamic(t *testing.T) {
	var out safeBuffer
	err := RunConsole(context.Background(), ConsoleOptions{
		Discipline:   discipline.Dynamic,
		TickInterval: time.Millisecond,
		Sound:        true,
		Logger:       zerolog.Nop(),
	}, &out)
	require.NoError(t, err)

	output := out.String()
	assert.True(t, strings.HasPrefix(output, "Dynamic Apnea (DYN): official top 30s, surface protocol 15s\n"))
	assert.Equal(t, 18, strings.Count(output, "\a"))

	announcements := []string{
		"[success] " + phase.MessageOfficialTop,
		"[info] " + phase.MessagePerformance,
		"[warning] " + phase.MessageBottomTime,
		"[info] " + phase.MessageSurfaceProtocol,
		"[success] " + phase.MessageCompleted,
	}
	last := -1
	for _, line := range announcements {
		index := strings.Index(output, line)
		require.GreaterOrEqual(t, index, 0, line)
		assert.Greater(t, index, last, line)
		last = index
	}
}

func TestRunConsoleStopsOnCancel(t *testing.T) {
	var out safeBuffer
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- RunConsole(ctx, ConsoleOptions{
			Discipline:   discipline.Static,
			TickInterval: time.Millisecond,
			Logger:       zerolog.Nop(),
		}, &out)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), phase.MessagePerformance)
	}, 5*time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("console did not stop")
	}
	assert.True(t, strings.HasSuffix(out.String(), "stopped\n"))
	assert.NotContains(t, out.String(), "\a")
}

func TestRunConsoleRejectsUnknownDiscipline(t *testing.T) {
	err := RunConsole(context.Background(), ConsoleOptions{Discipline: "FIM", Logger: zerolog.Nop()}, &safeBuffer{})
	assert.ErrorIs(t, err, discipline.ErrUnknownDiscipline)
}

func TestStatusLine(t *testing.T) {
	cwt, err := discipline.Get(discipline.ConstantWeight)
	require.NoError(t, err)

	idle := session.Snapshot{Discipline: cwt, Phase: phase.PhaseIdle, PhaseTitle: "READY"}
	assert.Equal(t, "READY            00:00", StatusLine(idle))

	running := session.Snapshot{Discipline: cwt, Phase: phase.PhasePerformance, PhaseTitle: "PERFORMANCE TIME", DisplayedSeconds: 60, ProgressPercent: 25, Running: true}
	assert.Equal(t, "PERFORMANCE TIME 01:00  25%", StatusLine(running))
}

type countingTone struct {
	calls int
	err   error
}

func (tone *countingTone) Emit(float64, time.Duration, float64) error {
	tone.calls++
	return tone.err
}

func TestSoundSwitch(t *testing.T) {
	tone := &countingTone{}
	sound := NewSoundSwitch(tone, true)
	require.NoError(t, sound.Emit(600, time.Millisecond, 0.3))
	assert.Equal(t, 1, tone.calls)

	sound.SetEnabled(false)
	assert.False(t, sound.Enabled())
	require.NoError(t, sound.Emit(600, time.Millisecond, 0.3))
	assert.Equal(t, 1, tone.calls)

	sound.SetEnabled(true)
	tone.err = errors.New("busy")
	assert.EqualError(t, sound.Emit(600, time.Millisecond, 0.3), "busy")

	assert.NoError(t, NewSoundSwitch(nil, true).Emit(600, time.Millisecond, 0.3))
}

type closingChannel struct {
	events chan session.Event
}

func (c closingChannel) Close() {
	close(c.events)
}

func TestShutdownStopsGlowAfterObserversDrain(t *testing.T) {
	dyn, err := discipline.Get(discipline.Dynamic)
	require.NoError(t, err)

	glow := pulse.New(pulse.Config{FrameRate: time.Millisecond}, func(float64) {})

	events := make(chan session.Event, 4)
	events <- session.Event{Type: session.EventStateChange, Snapshot: session.Snapshot{Discipline: dyn, Phase: phase.PhaseIdle}}
	events <- session.Event{Type: session.EventStateChange, Snapshot: session.Snapshot{Discipline: dyn, Phase: phase.PhaseOfficialTop, Running: true}}

	ctx, cancel := context.WithCancel(context.Background())
	var rendered []phase.Phase
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		followSession(ctx, events, glow, func(snapshot session.Snapshot) {
			rendered = append(rendered, snapshot.Phase)
		})
	}()

	shutdown(closingChannel{events: events}, cancel, &wg, glow)

	assert.Equal(t, []phase.Phase{phase.PhaseIdle, phase.PhaseOfficialTop}, rendered)
	assert.False(t, glow.Running())
}

func TestFollowSessionStopsGlowWhenIdle(t *testing.T) {
	glow := pulse.New(pulse.Config{FrameRate: time.Millisecond}, func(float64) {})
	events := make(chan session.Event, 2)
	events <- session.Event{Snapshot: session.Snapshot{Phase: phase.PhasePerformance, Running: true}}
	events <- session.Event{Snapshot: session.Snapshot{Phase: phase.PhaseCompleted}}
	close(events)

	followSession(context.Background(), events, glow, func(session.Snapshot) {})
	assert.False(t, glow.Running())
}
