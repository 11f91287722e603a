package main

import (
	"fmt"

	"intervals/internal/core/model"
	"intervals/internal/core/settings"

	"github.com/spf13/cobra"
)

func newTotalCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "total [mode]",
		Short: "Print the total workout time of each mode",
		Long:  `Print count-in plus round duration times rounds for emom and amrap, using the defaults file.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modes := model.TimerModes
			if len(args) == 1 {
				mode, err := model.ParseMode(args[0])
				if err != nil {
					return err
				}
				if !mode.IsTimer() {
					return fmt.Errorf("mode %q has no total", mode)
				}
				modes = []model.Mode{mode}
			}

			defaults, err := opts.loadDefaults()
			if err != nil {
				return err
			}
			store := settings.New(defaults)
			store.ResetToDefaults("")

			for _, mode := range modes {
				fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", mode, model.FormatClock(store.TotalDuration(mode)))
			}
			return nil
		},
	}
}
