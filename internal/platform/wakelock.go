package platform

import (
	"context"
	"fmt"
	"sync"
)

// inhibitor is the OS mechanism that blocks display sleep.
type inhibitor interface {
	inhibit(ctx context.Context, appName, reason string) error
	uninhibit(ctx context.Context) error
}

// WakeLock keeps the display awake while held. Acquire and Release are
// idempotent.
type WakeLock struct {
	mu        sync.Mutex
	appName   string
	reason    string
	held      bool
	inhibitor inhibitor
}

// NewWakeLock returns the platform wake lock.
func NewWakeLock(appName, reason string) *WakeLock {
	return &WakeLock{
		appName:   appName,
		reason:    reason,
		inhibitor: newInhibitor(),
	}
}

// Acquire blocks display sleep until Release.
func (lock *WakeLock) Acquire(ctx context.Context) error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.held {
		return nil
	}
	if err := lock.inhibitor.inhibit(ctx, lock.appName, lock.reason); err != nil {
		return fmt.Errorf("acquire wake lock: %w", err)
	}
	lock.held = true
	return nil
}

// Release lets the display sleep again.
func (lock *WakeLock) Release(ctx context.Context) error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if !lock.held {
		return nil
	}
	lock.held = false
	if err := lock.inhibitor.uninhibit(ctx); err != nil {
		return fmt.Errorf("release wake lock: %w", err)
	}
	return nil
}

// Held reports whether the lock is currently held.
func (lock *WakeLock) Held() bool {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	return lock.held
}
