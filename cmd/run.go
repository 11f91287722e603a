package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"intervals/internal/core/display"
	"intervals/internal/core/model"
	"intervals/internal/core/session"
	"intervals/internal/core/settings"
	"intervals/internal/core/timekeeper"
	"intervals/internal/core/tone"
	"intervals/internal/platform"
	"intervals/internal/ui/tray"

	"github.com/spf13/cobra"
)

// workout describes a headless run.
type workout struct {
	mode         model.Mode
	store        *settings.Store
	beeper       display.Beeper
	wakeLock     session.WakeLock
	clock        timekeeper.Clock
	tickInterval time.Duration
	logger       *log.Logger
}

type runFlags struct {
	duration int
	rounds   int
	countIn  int
	volume   int
	mute     bool
}

func newRunCommand(opts *options) *cobra.Command {
	flags := &runFlags{volume: -1}
	run := &cobra.Command{
		Use:       "run <emom|amrap>",
		Short:     "Run a workout in the terminal",
		Long:      `Run a workout without a window. Progress is printed once per second; Ctrl-C cancels the workout.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(model.ModeEMOM), string(model.ModeAMRAP)},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := model.ParseMode(args[0])
			if err != nil {
				return err
			}
			defaults, err := opts.loadDefaults()
			if err != nil {
				return err
			}
			flags.apply(defaults, mode)

			store := settings.New(defaults)
			store.ResetToDefaults("")
			var beeper display.Beeper = tone.NewSilent(store)
			if !flags.mute {
				speaker, err := tone.NewSpeaker(store)
				if err != nil {
					log.Printf("audio: %v", err)
				}
				beeper = speaker
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return runWorkout(ctx, cmd.OutOrStdout(), workout{
				mode:     mode,
				store:    store,
				beeper:   beeper,
				wakeLock: platform.NewWakeLock(appName, lockReason),
				logger:   opts.tickLogger(cmd.ErrOrStderr()),
			})
		},
	}

	run.Flags().IntVar(&flags.duration, "duration", 0, "round duration in seconds")
	run.Flags().IntVar(&flags.rounds, "rounds", 0, "number of rounds (emom)")
	run.Flags().IntVar(&flags.countIn, "count-in", 0, "count-in in seconds")
	run.Flags().IntVar(&flags.volume, "volume", -1, "volume percent, 0-100")
	run.Flags().BoolVar(&flags.mute, "mute", false, "disable audio cues")
	return run
}

// apply overrides defaults with the flags that were set to valid values.
func (flags *runFlags) apply(defaults model.Defaults, mode model.Mode) {
	if flags.duration > 0 {
		defaults[mode][mode.DurationKey()] = flags.duration
	}
	if _, ok := defaults[mode][mode.RoundsKey()]; ok && flags.rounds > 0 {
		defaults[mode][mode.RoundsKey()] = flags.rounds
	}
	if flags.countIn > 0 {
		defaults[model.ModeConfig][model.KeyCountIn] = flags.countIn
	}
	if flags.volume >= 0 && flags.volume <= model.MaxVolume {
		defaults[model.ModeConfig][model.KeyVolume] = flags.volume
	}
}

// runWorkout runs one workout and prints a status line per event. Cancelling
// ctx cancels the workout, which still ends on its next tick.
func runWorkout(ctx context.Context, out io.Writer, plan workout) error {
	if !plan.mode.IsTimer() {
		return fmt.Errorf("run %q: %w", plan.mode, session.ErrUnknownMode)
	}

	updater := display.New(nil, plan.beeper)
	keeper := timekeeper.New(plan.store, updater, plan.clock, timekeeper.Config{
		TickInterval: plan.tickInterval,
		Logger:       plan.logger,
	})
	defer keeper.Stop()

	events := keeper.Subscribe(32)
	controller := session.New(keeper, plan.wakeLock, nil)

	fmt.Fprintf(out, "%s workout, %s total\n", strings.ToUpper(string(plan.mode)), model.FormatClock(plan.store.TotalDuration(plan.mode)))
	if err := controller.Start(ctx, plan.mode); err != nil {
		return err
	}
	done := controller.Done()

	cancelled := ctx.Done()
	for {
		select {
		case event := <-events:
			fmt.Fprintln(out, tray.StatusText(event))
		case <-cancelled:
			controller.Cancel()
			cancelled = nil
		case <-done:
			drain(out, events)
			return nil
		}
	}
}

func drain(out io.Writer, events <-chan timekeeper.Event) {
	for {
		select {
		case event := <-events:
			fmt.Fprintln(out, tray.StatusText(event))
		default:
			return
		}
	}
}
