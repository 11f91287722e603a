package clockface

import (
	"context"
	"image/color"

	"intervals/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const (
	digitSize   = 96
	captionSize = 18
)

var (
	digitColor   = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	captionColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Face is the countdown view: minutes, seconds, round counter and the
// pause and cancel controls.
type Face struct {
	background *canvas.Rectangle
	minutes    *canvas.Text
	seconds    *canvas.Text
	round      *canvas.Text
	total      *canvas.Text
	pause      *widget.Button
	cancel     *widget.Button
	controls   *fyne.Container
	content    fyne.CanvasObject
	engine     *animation.Engine
}

// New creates the face. onPause and onCancel run on the UI goroutine.
func New(onPause, onCancel func()) *Face {
	face := &Face{
		background: canvas.NewRectangle(animation.Idle),
		minutes:    newDigits("0"),
		seconds:    newDigits("00"),
		round:      newCaption("0"),
		total:      newCaption("0"),
	}
	colon := newDigits(":")

	face.pause = widget.NewButton("Pause", func() {
		if onPause != nil {
			onPause()
		}
	})
	face.cancel = widget.NewButton("Cancel", func() {
		if onCancel != nil {
			onCancel()
		}
	})
	face.controls = container.NewHBox(layout.NewSpacer(), face.pause, face.cancel, layout.NewSpacer())

	digits := container.NewHBox(layout.NewSpacer(), face.minutes, colon, face.seconds, layout.NewSpacer())
	rounds := container.NewHBox(layout.NewSpacer(),
		newCaption("Round"), face.round, newCaption("of"), face.total,
		layout.NewSpacer())
	body := container.NewVBox(digits, rounds, face.controls)

	face.content = container.NewStack(face.background, container.NewPadded(body))
	face.engine = animation.New(face.paint)
	return face
}

func newDigits(text string) *canvas.Text {
	digits := canvas.NewText(text, digitColor)
	digits.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	digits.TextSize = digitSize
	return digits
}

func newCaption(text string) *canvas.Text {
	caption := canvas.NewText(text, captionColor)
	caption.TextStyle = fyne.TextStyle{Bold: true}
	caption.TextSize = captionSize
	return caption
}

// Content returns the face widget tree.
func (face *Face) Content() fyne.CanvasObject {
	return face.content
}

// SetTime shows the remaining minutes and zero-padded seconds.
func (face *Face) SetTime(minutes, seconds string) {
	fyne.Do(func() {
		setText(face.minutes, minutes)
		setText(face.seconds, seconds)
	})
}

// SetRound shows the current round and flashes the background. Round zero
// is the terminal frame.
func (face *Face) SetRound(round string) {
	fyne.Do(func() {
		setText(face.round, round)
	})
	if round == "0" {
		face.engine.Flash(context.Background(), animation.FinishFlash())
		return
	}
	face.engine.Flash(context.Background(), animation.RoundFlash())
}

// SetTotalRounds shows the number of rounds.
func (face *Face) SetTotalRounds(total string) {
	fyne.Do(func() {
		setText(face.total, total)
	})
}

// SetPauseLabel changes the pause button text.
func (face *Face) SetPauseLabel(label string) {
	fyne.Do(func() {
		face.pause.SetText(label)
	})
}

// SetControlsVisible shows the pause and cancel buttons.
func (face *Face) SetControlsVisible(visible bool) {
	fyne.Do(func() {
		if visible {
			face.controls.Show()
			return
		}
		face.controls.Hide()
	})
}

// Stop halts any running flash.
func (face *Face) Stop() {
	face.engine.Stop()
}

// Time returns the displayed time as m:ss.
func (face *Face) Time() string {
	return face.minutes.Text + ":" + face.seconds.Text
}

// Rounds returns the displayed round and total.
func (face *Face) Rounds() (string, string) {
	return face.round.Text, face.total.Text
}

func (face *Face) paint(fill color.Color) {
	fyne.Do(func() {
		face.background.FillColor = fill
		face.background.Refresh()
	})
}

func setText(text *canvas.Text, value string) {
	if text.Text == value {
		return
	}
	text.Text = value
	text.Refresh()
}
