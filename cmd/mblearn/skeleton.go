// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/mblearn/bnet"
	"github.com/katalvlaran/mblearn/skeleton"
)

// skeletonReport is the YAML document printed by skeleton.
type skeletonReport struct {
	Data       string              `yaml:"data"`
	Samples    int                 `yaml:"samples"`
	Alpha      float64             `yaml:"alpha"`
	Policy     string              `yaml:"policy"`
	Blankets   map[string][]string `yaml:"blankets"`
	Edges      []string            `yaml:"edges"`
	SepSets    map[string][]string `yaml:"sepsets,omitempty"`
	Asymmetric []string            `yaml:"asymmetric,omitempty"`
}

func newSkeletonCmd(a *app) *cobra.Command {
	f := &discoverFlags{}
	var policy string
	var maxCond int

	cmd := &cobra.Command{
		Use:   "skeleton",
		Short: "Discover all blankets, then derive the undirected skeleton",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.apply(cmd, a)
			if cmd.Flags().Changed("policy") {
				a.cfg.Skeleton.Policy = policy
			}
			if cmd.Flags().Changed("max-cond") {
				a.cfg.Skeleton.MaxCondSize = maxCond
			}
			// the skeleton needs every blanket
			a.cfg.Targets = nil

			run, err := a.discover()
			if err != nil {
				return err
			}
			pol, err := skeleton.ParsePolicy(a.cfg.Skeleton.Policy)
			if err != nil {
				return err
			}
			opts := []skeleton.Option{
				skeleton.WithPolicy(pol),
				skeleton.WithStates(run.ds.StateMap()),
			}
			if a.cfg.Skeleton.MaxCondSize >= 0 {
				opts = append(opts, skeleton.WithMaxCondSize(a.cfg.Skeleton.MaxCondSize))
			}

			g, res, err := skeleton.Learn(run.ds.Columns(), run.blankets, run.oracle, run.alpha, opts...)
			if err != nil {
				return err
			}
			a.logger.Info("skeleton learned",
				zap.Int("edges", g.EdgeCount()),
				zap.Int("pruned", len(res.SepSets)),
				zap.Int("checks", res.Checks))

			rep := skeletonReport{
				Data:     a.cfg.Data,
				Samples:  run.ds.NumRows(),
				Alpha:    run.alpha,
				Policy:   pol.String(),
				Blankets: run.blankets.Sorted(),
				Edges:    []string{},
			}
			for _, e := range g.Edges() {
				rep.Edges = append(rep.Edges, edgeName(e))
			}
			if len(res.SepSets) > 0 {
				rep.SepSets = make(map[string][]string, len(res.SepSets))
				for e, s := range res.SepSets {
					rep.SepSets[edgeName(e)] = s
				}
			}
			for _, e := range res.Asymmetric {
				rep.Asymmetric = append(rep.Asymmetric, edgeName(e))
			}

			return writeYAML(cmd.OutOrStdout(), rep)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&policy, "policy", skeleton.Symmetric.String(), "neighbor consistency: symmetric or union")
	cmd.Flags().IntVar(&maxCond, "max-cond", -1, "largest separating set tried (-1 = unbounded)")

	return cmd
}

func edgeName(e bnet.Edge) string { return e.From + " - " + e.To }
