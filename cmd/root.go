package main

import (
	"io"
	"log"
	"os"

	"intervals/internal/core/model"
	"intervals/internal/storage"

	"github.com/spf13/cobra"
)

const (
	appName     = "intervals"
	appID       = "com.intervals.app"
	windowTitle = "Intervals"
	lockReason  = "Workout in progress"
)

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	verbose    bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          appName,
		Short:        "EMOM and AMRAP interval workout timer",
		Long:         `A desktop interval timer with a drift-corrected countdown, audio cues and a count-in before the first round.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "defaults file (default is settings.yaml in the user config directory)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every tick with its drift")

	root.AddCommand(
		newRunCommand(opts),
		newTotalCommand(opts),
		newConfigCommand(opts),
	)
	return root
}

// resolveConfigPath returns the --config value or the default location.
func (opts *options) resolveConfigPath() (string, error) {
	if opts.configPath != "" {
		return opts.configPath, nil
	}
	return storage.DefaultPath(appName)
}

func (opts *options) loadDefaults() (model.Defaults, error) {
	path, err := opts.resolveConfigPath()
	if err != nil {
		return nil, err
	}
	defaults, err := storage.LoadDefaults(path)
	if err != nil {
		return nil, err
	}
	return defaults, nil
}

// tickLogger returns the per-tick logger, or nil when not verbose.
func (opts *options) tickLogger(out io.Writer) *log.Logger {
	if !opts.verbose {
		return nil
	}
	if out == nil {
		out = os.Stderr
	}
	return log.New(out, "tick ", log.Ltime|log.Lmicroseconds)
}
