// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/mblearn/dataset"
	"github.com/katalvlaran/mblearn/entropy"
	"github.com/katalvlaran/mblearn/markov"
)

// discoverFlags mirror the discovery part of config.Config.
type discoverFlags struct {
	data        string
	alpha       float64
	targets     []string
	concurrency int
	batch       bool
	minSamples  int
	noCache     bool
}

func (f *discoverFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.data, "data", "d", "", "CSV dataset (header row = variable names)")
	fs.Float64VarP(&f.alpha, "alpha", "a", 0, "independence threshold (0 = 5/#samples)")
	fs.StringSliceVarP(&f.targets, "target", "t", nil, "target variable (repeatable; default all)")
	fs.IntVarP(&f.concurrency, "workers", "w", 1, "targets discovered concurrently")
	fs.BoolVar(&f.batch, "batch", false, "freeze conditioning sets per pass")
	fs.IntVar(&f.minSamples, "min-samples", 0, "samples required per conditioning configuration (0 = off)")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable entropy memoization")
}

// apply overlays explicitly set flags onto the loaded configuration.
func (f *discoverFlags) apply(cmd *cobra.Command, a *app) {
	fs := cmd.Flags()
	if fs.Changed("data") {
		a.cfg.Data = f.data
	}
	if fs.Changed("alpha") {
		a.cfg.Alpha = f.alpha
	}
	if fs.Changed("target") {
		a.cfg.Targets = f.targets
	}
	if fs.Changed("workers") {
		a.cfg.Concurrency = f.concurrency
	}
	if fs.Changed("batch") {
		a.cfg.BatchRounds = f.batch
	}
	if fs.Changed("min-samples") {
		a.cfg.Entropy.MinSamplesPerConfig = f.minSamples
	}
	if fs.Changed("no-cache") {
		a.cfg.Entropy.Cache = !f.noCache
	}
}

// discoverReport is the YAML document printed by discover.
type discoverReport struct {
	Data     string              `yaml:"data"`
	Samples  int                 `yaml:"samples"`
	Alpha    float64             `yaml:"alpha"`
	Blankets map[string][]string `yaml:"blankets"`
}

func newDiscoverCmd(a *app) *cobra.Command {
	f := &discoverFlags{}
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Find the Markov Blanket of each (or each selected) variable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.apply(cmd, a)
			run, err := a.discover()
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), discoverReport{
				Data:     a.cfg.Data,
				Samples:  run.ds.NumRows(),
				Alpha:    run.alpha,
				Blankets: run.blankets.Sorted(),
			})
		},
	}
	f.register(cmd)

	return cmd
}

// discoveryRun holds everything later stages may reuse.
type discoveryRun struct {
	ds       *dataset.Dataset
	oracle   *entropy.Estimator
	alpha    float64
	blankets markov.Blankets
}

// discover validates the configuration, loads the data and runs Grow-Shrink.
func (a *app) discover() (*discoveryRun, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := a.initLogger(); err != nil {
		return nil, err
	}
	log := a.logger

	file, err := os.Open(a.cfg.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to open data: %w", err)
	}
	defer file.Close()

	ds, err := dataset.ReadCSV(file, dataset.WithTrimSpace())
	if err != nil {
		return nil, err
	}
	log.Info("dataset loaded",
		zap.String("path", a.cfg.Data),
		zap.Int("rows", ds.NumRows()),
		zap.Strings("variables", ds.Columns()))

	var eopts []entropy.Option
	if a.cfg.Entropy.Cache {
		eopts = append(eopts, entropy.WithCache())
	}
	eopts = append(eopts, entropy.WithMinSamplesPerConfig(a.cfg.Entropy.MinSamplesPerConfig))
	est, err := entropy.NewEstimator(ds, eopts...)
	if err != nil {
		return nil, err
	}

	alpha := a.cfg.Alpha
	if alpha == 0 {
		alpha = markov.DefaultAlpha(ds.NumRows())
	}

	mopts := []markov.Option{markov.WithConcurrency(a.cfg.Concurrency)}
	if a.cfg.BatchRounds {
		mopts = append(mopts, markov.WithBatchRounds())
	}
	if a.verbose {
		mopts = append(mopts, markov.WithTracer(markov.NewZapTracer(log)))
	}
	gs, err := markov.NewGrowShrink(ds.Columns(), est, alpha, mopts...)
	if err != nil {
		return nil, err
	}

	blankets, err := gs.DiscoverBlankets(a.cfg.Targets...)
	if err != nil {
		return nil, err
	}
	st := est.CacheStats()
	log.Info("blankets discovered",
		zap.Float64("alpha", alpha),
		zap.Int("targets", len(blankets)),
		zap.Uint64("cache_hits", st.Hits),
		zap.Uint64("cache_misses", st.Misses))

	return &discoveryRun{ds: ds, oracle: est, alpha: alpha, blankets: blankets}, nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	return enc.Close()
}
