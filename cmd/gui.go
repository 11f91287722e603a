package main

import (
	"context"
	"errors"
	"log"
	"time"

	"intervals/internal/core/display"
	"intervals/internal/core/model"
	"intervals/internal/core/session"
	"intervals/internal/core/settings"
	"intervals/internal/core/timekeeper"
	"intervals/internal/core/tone"
	"intervals/internal/platform"
	"intervals/internal/ui/clockface"
	"intervals/internal/ui/mainwindow"
	"intervals/internal/ui/panel"
	"intervals/internal/ui/tray"
	"intervals/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 2 * time.Second

func runGUI(cmd *cobra.Command, opts *options) error {
	defaults, err := opts.loadDefaults()
	if err != nil {
		return err
	}

	guard, err := platform.AcquireInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Printf("single instance: %v", err)
			if notifyErr := platform.NotifyRunning(appName); notifyErr != nil {
				log.Printf("single instance: %v", notifyErr)
			}
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.AppIcon))

	store := settings.New(defaults)
	beeper, err := tone.NewSpeaker(store)
	if err != nil {
		log.Printf("audio: %v", err)
	}

	var controller *session.Controller
	face := clockface.New(
		func() { controller.Pause() },
		func() { controller.Cancel() },
	)
	group := panel.NewGroup(store, func(mode model.Mode) {
		if err := controller.Start(context.Background(), mode); err != nil {
			log.Printf("start %s: %v", mode, err)
		}
	})
	store.SetView(group)
	store.ResetToDefaults("")

	keeper := timekeeper.New(store, display.New(face, beeper), nil, timekeeper.Config{
		Logger: opts.tickLogger(cmd.ErrOrStderr()),
	})
	window := mainwindow.New(fyneApp, windowTitle, face, group)
	controller = session.New(keeper, platform.NewWakeLock(appName, lockReason), window)

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, tray.Icons{
			Active: resources.MustIcon(resources.AppIcon),
			Paused: resources.MustIcon(resources.PausedIcon),
		}, tray.Callbacks{
			OnShow:        window.Show,
			OnTogglePause: func() { controller.Pause() },
			OnCancel:      controller.Cancel,
			OnQuit:        fyneApp.Quit,
		})
		window.HideOnClose()

		events := keeper.Subscribe(16)
		go func() {
			for event := range events {
				fyne.Do(func() {
					trayManager.SetEvent(event)
				})
			}
		}()
	} else {
		log.Printf("system tray unsupported on this platform")
		window.Window().SetMaster()
	}

	go func() {
		for range guard.Activations() {
			window.Show()
		}
	}()

	fyneApp.Lifecycle().SetOnStopped(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := controller.Shutdown(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
		keeper.Stop()
		face.Stop()
	})

	window.Window().Show()
	fyneApp.Run()
	return nil
}
