// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/mblearn/internal/config"
)

// app carries state shared by all subcommands of one invocation.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "mblearn",
		Short: "Grow-Shrink Markov Blanket discovery for categorical data",
		Long: `mblearn reads a CSV table (header row = variable names, one sample per row)
and finds the Markov Blanket of each variable with the Grow-Shrink procedure,
using plug-in conditional mutual information as the independence test.

Settings come from built-in defaults, then a YAML file (--config, or
mblearn.yaml in the working directory when present), then command-line flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			load, path := config.Load, a.configPath
			if path == "" {
				load, path = config.LoadOptional, config.DefaultPath
			}
			cfg, err := load(path)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file (default ./"+config.DefaultPath+" if present)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "trace every phase and independence check")

	root.AddCommand(newDiscoverCmd(a), newSkeletonCmd(a))

	return root
}

// initLogger builds the zap logger once the configuration is final.
// Logs go to stderr so stdout carries only the YAML report.
func (a *app) initLogger() error {
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{"stderr"}
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level := a.cfg.Logging.Level
	if a.verbose {
		level = "debug"
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	return nil
}
