package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// caffeinateInhibitor keeps a caffeinate process alive while held.
type caffeinateInhibitor struct {
	command *exec.Cmd
}

func newInhibitor() inhibitor {
	return &caffeinateInhibitor{}
}

func (inhibitor *caffeinateInhibitor) inhibit(_ context.Context, _, _ string) error {
	path, err := exec.LookPath("caffeinate")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWakeLockUnsupported, err)
	}
	// -w ends caffeinate when this process exits.
	command := exec.Command(path, "-d", "-i", "-w", strconv.Itoa(os.Getpid()))
	if err := command.Start(); err != nil {
		return fmt.Errorf("start caffeinate: %w", err)
	}
	inhibitor.command = command
	return nil
}

func (inhibitor *caffeinateInhibitor) uninhibit(_ context.Context) error {
	if inhibitor.command == nil || inhibitor.command.Process == nil {
		return nil
	}
	command := inhibitor.command
	inhibitor.command = nil
	if err := command.Process.Kill(); err != nil {
		return fmt.Errorf("stop caffeinate: %w", err)
	}
	_ = command.Wait()
	return nil
}
