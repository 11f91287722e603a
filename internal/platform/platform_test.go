package platform

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstancePortIsStableAndInRange(t *testing.T) {
	first := instancePort("intervals")
	assert.Equal(t, first, instancePort("intervals"))
	assert.GreaterOrEqual(t, first, minInstancePort)
	assert.LessOrEqual(t, first, maxInstancePort)
	assert.True(t, strings.HasPrefix(InstanceAddress("intervals"), "127.0.0.1:"))
}

func TestSecondInstanceIsRejectedAndActivatesFirst(t *testing.T) {
	appName := "intervals-test-" + t.Name()
	guard, err := AcquireInstance(appName)
	if err != nil {
		t.Skipf("loopback port unavailable: %v", err)
	}
	defer guard.Release()

	_, err = AcquireInstance(appName)
	require.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Contains(t, err.Error(), guard.Address())

	require.NoError(t, NotifyRunning(appName))
	select {
	case <-guard.Activations():
	case <-time.After(2 * time.Second):
		t.Fatal("activation not delivered")
	}
}

func TestReleaseFreesLock(t *testing.T) {
	appName := "intervals-test-" + t.Name()
	guard, err := AcquireInstance(appName)
	if err != nil {
		t.Skipf("loopback port unavailable: %v", err)
	}
	require.NoError(t, guard.Release())
	require.NoError(t, guard.Release())

	again, err := AcquireInstance(appName)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestNilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
}

func TestConfigDirEndsWithAppName(t *testing.T) {
	dir, err := ConfigDir("intervals")
	if err != nil {
		t.Skipf("no config or home directory: %v", err)
	}
	assert.Equal(t, "intervals", filepath.Base(dir))
}

type fakeInhibitor struct {
	inhibitErr error
	inhibits   int
	releases   int
	appName    string
}

func (inhibitor *fakeInhibitor) inhibit(_ context.Context, appName, _ string) error {
	if inhibitor.inhibitErr != nil {
		return inhibitor.inhibitErr
	}
	inhibitor.inhibits++
	inhibitor.appName = appName
	return nil
}

func (inhibitor *fakeInhibitor) uninhibit(context.Context) error {
	inhibitor.releases++
	return nil
}

func TestWakeLockIsIdempotent(t *testing.T) {
	fake := &fakeInhibitor{}
	lock := &WakeLock{appName: "intervals", reason: "workout", inhibitor: fake}
	ctx := context.Background()

	require.NoError(t, lock.Release(ctx))
	assert.Zero(t, fake.releases, "release before acquire is a no-op")

	require.NoError(t, lock.Acquire(ctx))
	require.NoError(t, lock.Acquire(ctx))
	assert.Equal(t, 1, fake.inhibits)
	assert.Equal(t, "intervals", fake.appName)
	assert.True(t, lock.Held())

	require.NoError(t, lock.Release(ctx))
	require.NoError(t, lock.Release(ctx))
	assert.Equal(t, 1, fake.releases)
	assert.False(t, lock.Held())
}

func TestWakeLockAcquireFailureWraps(t *testing.T) {
	fake := &fakeInhibitor{inhibitErr: ErrWakeLockUnsupported}
	lock := &WakeLock{inhibitor: fake}

	err := lock.Acquire(context.Background())

	assert.True(t, errors.Is(err, ErrWakeLockUnsupported))
	assert.False(t, lock.Held())
}
