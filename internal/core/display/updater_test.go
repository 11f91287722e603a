package display

import (
	"testing"

	"intervals/internal/core/model"
	"intervals/internal/core/tone"

	"github.com/stretchr/testify/assert"
)

type fakeFace struct {
	minutes, seconds string
	round, total     string
}

func (face *fakeFace) SetTime(minutes, seconds string) {
	face.minutes = minutes
	face.seconds = seconds
}

func (face *fakeFace) SetRound(round string)       { face.round = round }
func (face *fakeFace) SetTotalRounds(total string) { face.total = total }

type fakeBeeper struct {
	tones []tone.Tone
}

func (beeper *fakeBeeper) Beep(played tone.Tone) {
	beeper.tones = append(beeper.tones, played)
}

func TestRenderWritesClock(t *testing.T) {
	face := &fakeFace{round: "-", total: "-"}
	updater := New(face, nil)

	updater.Render(model.TimeFrame(65, false))

	assert.Equal(t, "1", face.minutes)
	assert.Equal(t, "05", face.seconds)
	assert.Equal(t, "-", face.round, "round untouched without a round value")
	assert.Equal(t, "-", face.total)
}

func TestRenderWritesRounds(t *testing.T) {
	face := &fakeFace{}
	updater := New(face, nil)

	updater.Render(model.RoundFrame(60, 2, 8))

	assert.Equal(t, "1", face.minutes)
	assert.Equal(t, "00", face.seconds)
	assert.Equal(t, "2", face.round)
	assert.Equal(t, "8", face.total)
}

func TestCountInFrameSetsTotalOnly(t *testing.T) {
	face := &fakeFace{round: "0"}
	beeper := &fakeBeeper{}
	updater := New(face, beeper)

	cue := updater.Render(model.CountInFrame(5, 8))

	assert.Equal(t, CueNone, cue)
	assert.Equal(t, "8", face.total)
	assert.Equal(t, "0", face.round)
	assert.Empty(t, beeper.tones)
}

func TestCuePolicy(t *testing.T) {
	cases := []struct {
		name  string
		frame model.Frame
		want  Cue
		tone  *tone.Tone
	}{
		{name: "finish", frame: model.FinishFrame(), want: CueFinish, tone: &tone.Finish},
		{name: "new round", frame: model.RoundFrame(60, 1, 8), want: CueRound, tone: &tone.RoundStart},
		{name: "round with zero remaining", frame: model.Frame{HasRound: true, Round: 3, HasTotal: true, TotalRounds: 3}, want: CueRound, tone: &tone.RoundStart},
		{name: "zero round without total", frame: model.Frame{HasRound: true}, want: CueRound, tone: &tone.RoundStart},
		{name: "countdown tick", frame: model.TimeFrame(3, false), want: CueTick, tone: &tone.Tick},
		{name: "tick at one", frame: model.TimeFrame(1, false), want: CueTick, tone: &tone.Tick},
		{name: "paused near zero", frame: model.TimeFrame(2, true), want: CueNone},
		{name: "plain second", frame: model.TimeFrame(4, false), want: CueNone},
		{name: "count-in above three", frame: model.CountInFrame(5, 8), want: CueNone},
		{name: "count-in at three", frame: model.CountInFrame(3, 8), want: CueTick, tone: &tone.Tick},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			beeper := &fakeBeeper{}
			got := New(&fakeFace{}, beeper).Render(tc.frame)

			assert.Equal(t, tc.want, got)
			if tc.tone == nil {
				assert.Empty(t, beeper.tones)
				return
			}
			assert.Equal(t, []tone.Tone{*tc.tone}, beeper.tones)
		})
	}
}

func TestCueString(t *testing.T) {
	assert.Equal(t, "finish", CueFinish.String())
	assert.Equal(t, "none", Cue(42).String())
}
