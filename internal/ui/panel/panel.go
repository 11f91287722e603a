package panel

import (
	"fmt"

	"intervals/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Store is the settings store the panel buttons mutate.
type Store interface {
	Adjust(mode model.Mode, key model.SettingKey, step int) (int, bool)
	ResetToDefaults(mode model.Mode)
}

// Row is one adjustable setting. Step is in stored units.
type Row struct {
	Key   model.SettingKey
	Label string
	Unit  string
	Step  int
}

// Rows returns the adjustable settings of mode in display order.
func Rows(mode model.Mode) []Row {
	switch mode {
	case model.ModeEMOM:
		return []Row{
			{Key: model.KeyEMOMDuration, Label: "Every", Unit: "min", Step: 15},
			{Key: model.KeyEMOMRounds, Label: "Rounds", Step: 1},
		}
	case model.ModeAMRAP:
		return []Row{
			{Key: model.KeyAMRAPDuration, Label: "Time cap", Unit: "min", Step: 60},
		}
	case model.ModeConfig:
		return []Row{
			{Key: model.KeyCountIn, Label: "Count-in", Unit: "sec", Step: 1},
			{Key: model.KeyVolume, Label: "Volume", Unit: "%", Step: 10},
		}
	default:
		return nil
	}
}

// Title returns the tab title of mode.
func Title(mode model.Mode) string {
	switch mode {
	case model.ModeEMOM:
		return "EMOM"
	case model.ModeAMRAP:
		return "AMRAP"
	case model.ModeConfig:
		return "Settings"
	default:
		return string(mode)
	}
}

// Panel is the control panel of one mode.
type Panel struct {
	mode     model.Mode
	store    Store
	values   map[model.SettingKey]*widget.Label
	minus    map[model.SettingKey]*widget.Button
	plus     map[model.SettingKey]*widget.Button
	total    *widget.Label
	start    *widget.Button
	reset    *widget.Button
	controls *fyne.Container
	content  fyne.CanvasObject
}

func newPanel(mode model.Mode, store Store, onStart func(model.Mode)) *Panel {
	panel := &Panel{
		mode:   mode,
		store:  store,
		values: map[model.SettingKey]*widget.Label{},
		minus:  map[model.SettingKey]*widget.Button{},
		plus:   map[model.SettingKey]*widget.Button{},
	}

	form := container.NewVBox()
	for _, row := range Rows(mode) {
		form.Add(panel.newRow(row))
	}

	panel.reset = widget.NewButton("Reset", func() {
		panel.store.ResetToDefaults(panel.mode)
	})

	if mode.IsTimer() {
		panel.total = widget.NewLabelWithStyle("0:00", fyne.TextAlignTrailing, fyne.TextStyle{Bold: true})
		form.Add(container.NewHBox(widget.NewLabel("Total"), layout.NewSpacer(), panel.total))

		panel.start = widget.NewButton("Start", func() {
			if onStart != nil {
				onStart(panel.mode)
			}
		})
		panel.start.Importance = widget.HighImportance
		panel.controls = container.NewHBox(panel.reset, layout.NewSpacer(), panel.start)
	} else {
		panel.controls = container.NewHBox(panel.reset)
	}

	panel.content = container.NewBorder(nil, panel.controls, nil, nil, form)
	return panel
}

func (panel *Panel) newRow(row Row) fyne.CanvasObject {
	value := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Monospace: true})
	panel.values[row.Key] = value

	key := row.Key
	step := row.Step
	minus := widget.NewButton("-", func() {
		panel.store.Adjust(panel.mode, key, -step)
	})
	plus := widget.NewButton("+", func() {
		panel.store.Adjust(panel.mode, key, step)
	})
	panel.minus[key] = minus
	panel.plus[key] = plus

	label := row.Label
	if row.Unit != "" {
		label = fmt.Sprintf("%s (%s)", row.Label, row.Unit)
	}
	return container.NewHBox(widget.NewLabel(label), layout.NewSpacer(), minus, value, plus)
}

// Mode returns the panel's mode.
func (panel *Panel) Mode() model.Mode {
	return panel.mode
}

// Content returns the panel widget tree.
func (panel *Panel) Content() fyne.CanvasObject {
	return panel.content
}

func (panel *Panel) setControlsVisible(visible bool) {
	if visible {
		panel.controls.Show()
		return
	}
	panel.controls.Hide()
}
