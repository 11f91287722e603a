package tray

import (
	"fmt"
	"strings"

	"intervals/internal/core/model"
	"intervals/internal/core/timekeeper"

	"fyne.io/fyne/v2"
)

const menuTitle = "Intervals"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnTogglePause func()
	OnCancel      func()
	OnQuit        func()
}

// App is the part of desktop.App the tray uses.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Icons are swapped when the workout pauses.
type Icons struct {
	Active fyne.Resource
	Paused fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app        App
	icons      Icons
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	cancelItem *fyne.MenuItem
	active     bool
	paused     bool
}

// New creates a tray manager. A nil app keeps the state without a menu.
func New(app App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		icons:     icons,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Idle", nil)
	manager.statusItem.Disabled = true
	manager.pauseItem = fyne.NewMenuItem("Pause", func() {
		call(manager.callbacks.OnTogglePause)
	})
	manager.cancelItem = fyne.NewMenuItem("Cancel workout", func() {
		call(manager.callbacks.OnCancel)
	})

	manager.refreshItems()
	manager.refreshMenu()
	manager.refreshIcon()
	return manager
}

// SetEvent shows the latest countdown event.
func (manager *Manager) SetEvent(event timekeeper.Event) {
	manager.active = event.Type != timekeeper.EventDone && event.State != timekeeper.StateIdle
	pausedChanged := manager.paused != (manager.active && event.Paused)
	manager.paused = manager.active && event.Paused
	manager.statusItem.Label = StatusText(event)

	manager.refreshItems()
	manager.refreshMenu()
	if pausedChanged {
		manager.refreshIcon()
	}
}

// Status returns the status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

// StatusText renders an event as a one-line status.
func StatusText(event timekeeper.Event) string {
	if event.Type == timekeeper.EventDone {
		if event.Cancelled {
			return "Cancelled"
		}
		return "Finished"
	}

	var status string
	switch event.State {
	case timekeeper.StateCountIn:
		status = fmt.Sprintf("%s get ready %s", modeName(event.Mode), model.FormatClock(event.Remaining))
	case timekeeper.StateRoundActive, timekeeper.StateRoundTransition:
		status = fmt.Sprintf("%s round %d/%d %s", modeName(event.Mode), event.Round, event.TotalRounds, model.FormatClock(event.Remaining))
	default:
		return "Idle"
	}
	if event.Paused {
		status += " (paused)"
	}
	return status
}

func modeName(mode model.Mode) string {
	return strings.ToUpper(string(mode))
}

func (manager *Manager) refreshItems() {
	manager.pauseItem.Disabled = !manager.active
	manager.cancelItem.Disabled = !manager.active
	if manager.paused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show", func() {
			call(manager.callbacks.OnShow)
		}),
		manager.pauseItem,
		manager.cancelItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			call(manager.callbacks.OnQuit)
		}),
	))
}

func (manager *Manager) refreshIcon() {
	if manager.app == nil {
		return
	}
	icon := manager.icons.Active
	if manager.paused && manager.icons.Paused != nil {
		icon = manager.icons.Paused
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
