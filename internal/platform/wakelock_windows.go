package platform

import (
	"context"
	"fmt"
	"runtime"
	"syscall"
)

const (
	esContinuous      = 0x80000000
	esSystemRequired  = 0x00000001
	esDisplayRequired = 0x00000002
)

var (
	kernel32DLL                 = syscall.NewLazyDLL("kernel32.dll")
	procSetThreadExecutionState = kernel32DLL.NewProc("SetThreadExecutionState")
)

// executionStateInhibitor holds the execution state on a locked OS thread,
// since SetThreadExecutionState applies to the calling thread only.
type executionStateInhibitor struct {
	release chan struct{}
	done    chan error
}

func newInhibitor() inhibitor {
	return &executionStateInhibitor{}
}

func (inhibitor *executionStateInhibitor) inhibit(ctx context.Context, _, _ string) error {
	started := make(chan error, 1)
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		if err := setExecutionState(esContinuous | esSystemRequired | esDisplayRequired); err != nil {
			started <- err
			return
		}
		started <- nil
		<-release
		done <- setExecutionState(esContinuous)
	}()

	select {
	case err := <-started:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		close(release)
		return ctx.Err()
	}

	inhibitor.release = release
	inhibitor.done = done
	return nil
}

func (inhibitor *executionStateInhibitor) uninhibit(ctx context.Context) error {
	if inhibitor.release == nil {
		return nil
	}
	close(inhibitor.release)
	done := inhibitor.done
	inhibitor.release = nil
	inhibitor.done = nil

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func setExecutionState(flags uintptr) error {
	result, _, err := procSetThreadExecutionState.Call(flags)
	if result == 0 {
		if err != nil {
			return fmt.Errorf("set thread execution state: %w", err)
		}
		return fmt.Errorf("set thread execution state: unknown error")
	}
	return nil
}
