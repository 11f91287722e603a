package main

import (
	"errors"
	"fmt"
	"os"

	"intervals/internal/core/model"
	"intervals/internal/storage"

	"github.com/spf13/cobra"
)

func newConfigCommand(opts *options) *cobra.Command {
	config := &cobra.Command{
		Use:   "config",
		Short: "Manage the defaults file",
	}
	config.AddCommand(newConfigInitCommand(opts), newConfigPathCommand(opts))
	return config
}

func newConfigInitCommand(opts *options) *cobra.Command {
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in defaults to the defaults file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.resolveConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("stat defaults file: %w", err)
			}

			if err := storage.SaveDefaults(path, model.DefaultSettings()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return initCmd
}

func newConfigPathCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the defaults file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.resolveConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
