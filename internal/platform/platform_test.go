package platform

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleInstanceSignalsOwner(t *testing.T) {
	name := fmt.Sprintf("apneatimer-test-%d", time.Now().UnixNano())
	guard, err := AcquireSingleInstance(name)
	require.NoError(t, err)

	var activations atomic.Int32
	guard.OnActivate(func() { activations.Add(1) })

	second, err := AcquireSingleInstance(name)
	assert.Nil(t, second)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.Eventually(t, func() bool { return activations.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.NoError(t, guard.Release())

	again, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	assert.NoError(t, again.Release())
}

func TestPortFromNameIsStable(t *testing.T) {
	first := portFromName("ApneaTimer")
	assert.Equal(t, first, portFromName("ApneaTimer"))
	assert.GreaterOrEqual(t, first, 20000)
	assert.LessOrEqual(t, first, 39999)
}

func TestNilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
	guard.OnActivate(func() {})
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	dir, err := ConfigDir("ApneaTimer")
	require.NoError(t, err)
	assert.Equal(t, "ApneaTimer", filepath.Base(dir))

	_, err = ConfigDir("")
	assert.Error(t, err)
}
