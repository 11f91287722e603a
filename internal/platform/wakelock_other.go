//go:build !linux && !darwin && !windows

package platform

import "context"

type unsupportedInhibitor struct{}

func newInhibitor() inhibitor {
	return unsupportedInhibitor{}
}

func (unsupportedInhibitor) inhibit(context.Context, string, string) error {
	return ErrWakeLockUnsupported
}

func (unsupportedInhibitor) uninhibit(context.Context) error {
	return nil
}
