package panel

import (
	"intervals/internal/core/model"

	"fyne.io/fyne/v2"
)

// Group holds the panels of every mode and routes display text to the
// panel owning each key.
type Group struct {
	panels []*Panel
	byMode map[model.Mode]*Panel
	byKey  map[model.SettingKey]*Panel
}

// NewGroup builds one panel per mode. onStart runs on the UI goroutine.
func NewGroup(store Store, onStart func(model.Mode)) *Group {
	group := &Group{
		byMode: map[model.Mode]*Panel{},
		byKey:  map[model.SettingKey]*Panel{},
	}
	for _, mode := range model.Modes {
		panel := newPanel(mode, store, onStart)
		group.panels = append(group.panels, panel)
		group.byMode[mode] = panel
		for key := range panel.values {
			group.byKey[key] = panel
		}
	}
	return group
}

// Panels returns the panels in display order.
func (group *Group) Panels() []*Panel {
	return group.panels
}

// Panel returns the panel of mode.
func (group *Group) Panel(mode model.Mode) *Panel {
	return group.byMode[mode]
}

// SetSetting shows text in the element of key. Unknown keys are ignored.
func (group *Group) SetSetting(key model.SettingKey, text string) {
	panel, ok := group.byKey[key]
	if !ok {
		return
	}
	label := panel.values[key]
	fyne.Do(func() {
		label.SetText(text)
	})
}

// SetTotal shows the total of mode. Modes without a total are ignored.
func (group *Group) SetTotal(mode model.Mode, text string) {
	panel, ok := group.byMode[mode]
	if !ok || panel.total == nil {
		return
	}
	label := panel.total
	fyne.Do(func() {
		label.SetText(text)
	})
}

// SetControlsVisible hides the start and reset buttons while a workout runs.
func (group *Group) SetControlsVisible(visible bool) {
	fyne.Do(func() {
		for _, panel := range group.panels {
			panel.setControlsVisible(visible)
		}
	})
}

// Setting returns the text shown for key.
func (group *Group) Setting(key model.SettingKey) string {
	panel, ok := group.byKey[key]
	if !ok {
		return ""
	}
	return panel.values[key].Text
}

// Total returns the text shown as total of mode.
func (group *Group) Total(mode model.Mode) string {
	panel, ok := group.byMode[mode]
	if !ok || panel.total == nil {
		return ""
	}
	return panel.total.Text
}
