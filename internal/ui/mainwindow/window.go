package mainwindow

import (
	"intervals/internal/ui/clockface"
	"intervals/internal/ui/panel"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// Window is the application window: the clock face above one tab per
// settings panel. It switches between the idle and active layouts.
type Window struct {
	window fyne.Window
	face   *clockface.Face
	group  *panel.Group
	tabs   *container.AppTabs
}

// New builds the window. It starts in the idle layout.
func New(app fyne.App, title string, face *clockface.Face, group *panel.Group) *Window {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	var items []*container.TabItem
	for _, settingsPanel := range group.Panels() {
		items = append(items, container.NewTabItem(panel.Title(settingsPanel.Mode()), settingsPanel.Content()))
	}
	tabs := container.NewAppTabs(items...)
	tabs.SelectIndex(0)

	window.SetContent(container.NewBorder(face.Content(), nil, nil, nil, tabs))
	window.Resize(fyne.NewSize(420, 560))

	view := &Window{
		window: window,
		face:   face,
		group:  group,
		tabs:   tabs,
	}
	view.SetActive(false)
	return view
}

// SetActive shows the clock controls while a workout runs and the panel
// controls otherwise.
func (view *Window) SetActive(active bool) {
	view.face.SetControlsVisible(active)
	view.group.SetControlsVisible(!active)
}

// SetPauseLabel changes the pause button text.
func (view *Window) SetPauseLabel(label string) {
	view.face.SetPauseLabel(label)
}

// HideOnClose keeps the process alive in the tray when the window closes.
func (view *Window) HideOnClose() {
	view.window.SetCloseIntercept(func() {
		view.window.Hide()
	})
}

// Show displays and focuses the window.
func (view *Window) Show() {
	fyne.Do(func() {
		view.window.Show()
		view.window.RequestFocus()
	})
}

// Window returns the underlying fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// SelectedTab returns the title of the visible tab.
func (view *Window) SelectedTab() string {
	selected := view.tabs.Selected()
	if selected == nil {
		return ""
	}
	return selected.Text
}
