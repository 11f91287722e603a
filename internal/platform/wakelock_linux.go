package platform

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	screenSaverDest      = "org.freedesktop.ScreenSaver"
	screenSaverPath      = dbus.ObjectPath("/org/freedesktop/ScreenSaver")
	screenSaverInterface = "org.freedesktop.ScreenSaver"
)

// dbusInhibitor uses the freedesktop ScreenSaver inhibit API.
type dbusInhibitor struct {
	conn   *dbus.Conn
	cookie uint32
}

func newInhibitor() inhibitor {
	return &dbusInhibitor{}
}

func (inhibitor *dbusInhibitor) inhibit(ctx context.Context, appName, reason string) error {
	if inhibitor.conn == nil {
		conn, err := dbus.SessionBus()
		if err != nil {
			return fmt.Errorf("%w: session bus: %v", ErrWakeLockUnsupported, err)
		}
		inhibitor.conn = conn
	}

	var cookie uint32
	call := inhibitor.screenSaver().CallWithContext(ctx, screenSaverInterface+".Inhibit", 0, appName, reason)
	if err := call.Store(&cookie); err != nil {
		return fmt.Errorf("screensaver inhibit: %w", err)
	}
	inhibitor.cookie = cookie
	return nil
}

func (inhibitor *dbusInhibitor) uninhibit(ctx context.Context) error {
	if inhibitor.conn == nil {
		return nil
	}
	call := inhibitor.screenSaver().CallWithContext(ctx, screenSaverInterface+".UnInhibit", 0, inhibitor.cookie)
	if call.Err != nil {
		return fmt.Errorf("screensaver uninhibit: %w", call.Err)
	}
	inhibitor.cookie = 0
	return nil
}

func (inhibitor *dbusInhibitor) screenSaver() dbus.BusObject {
	return inhibitor.conn.Object(screenSaverDest, screenSaverPath)
}
