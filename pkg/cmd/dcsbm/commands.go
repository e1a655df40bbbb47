package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/gilchrisn/sbm-partition/pkg/dcsbm"
	"github.com/gilchrisn/sbm-partition/pkg/graphs"
	"github.com/gilchrisn/sbm-partition/pkg/metrics"
	"github.com/gilchrisn/sbm-partition/pkg/partition"
)

type cliState struct {
	config     *dcsbm.Config
	configFile string
	graphName  string
	graphSeed  int64
}

func newRootCmd() *cobra.Command {
	state := &cliState{config: dcsbm.NewConfig()}
	v := state.config.Viper()

	root := &cobra.Command{
		Use:          "dcsbm",
		Short:        "Degree-corrected stochastic block model partitioning",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if state.configFile == "" {
				return nil
			}
			if err := state.config.LoadFromFile(state.configFile); err != nil {
				return fmt.Errorf("loading config %s: %w", state.configFile, err)
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&state.configFile, "config", "", "configuration file (yaml, json or toml)")
	pf.StringVar(&state.graphName, "graph", "karate", "reference graph: "+strings.Join(graphs.Names(), ", "))
	pf.Int64Var(&state.graphSeed, "graph-seed", 1, "seed for randomized reference graphs")
	pf.Int("groups", 2, "number of groups c")
	pf.String("log-level", "info", "log level (debug, info, warn, error, disabled)")
	_ = v.BindPFlag("algorithm.groups", pf.Lookup("groups"))
	_ = v.BindPFlag("logging.level", pf.Lookup("log-level"))

	root.AddCommand(newRunCmd(state), newScoreCmd(state))
	return root
}

func newRunCmd(state *cliState) *cobra.Command {
	v := state.config.Viper()
	var trackFile, metricsFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Search for the maximum-likelihood partition and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := state.graph()
			if err != nil {
				return err
			}

			if trackFile != "" {
				state.config.Set("analysis.track_moves", true)
				state.config.Set("analysis.output_file", trackFile)
			}

			opts := []dcsbm.Option{}
			var reg *metrics.Registry
			if metricsFile != "" {
				reg = metrics.NewRegistry()
				opts = append(opts, dcsbm.WithMetrics(reg))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			result, err := dcsbm.Run(ctx, g, state.config, opts...)
			if err != nil {
				return err
			}

			if reg != nil {
				if err := reg.WriteToTextfile(metricsFile); err != nil {
					return fmt.Errorf("writing metrics: %w", err)
				}
			}

			return partition.Encode(cmd.OutOrStdout(), result.Partition)
		},
	}

	f := cmd.Flags()
	f.Int("trials", 5, "number of independent random trials")
	f.Int64("seed", 0, "master random seed (default: time based)")
	f.Int("workers", 0, "trials run concurrently (default: number of CPUs)")
	f.Int("max-phases", dcsbm.DefaultMaxPhases, "phase cap T per trial")
	f.Duration("timeout", 0, "wall-clock budget for the whole search (0 = none)")
	f.Bool("full-eval", false, "re-tabulate statistics for every candidate move")
	f.StringVar(&trackFile, "track", "", "write every committed move as JSON lines to this file")
	f.StringVar(&metricsFile, "metrics-file", "", "write prometheus metrics in text format to this file")

	// viper defaults outrank unchanged flags
	v.SetDefault("algorithm.trials", 5)
	_ = v.BindPFlag("algorithm.trials", f.Lookup("trials"))
	_ = v.BindPFlag("algorithm.random_seed", f.Lookup("seed"))
	_ = v.BindPFlag("performance.num_workers", f.Lookup("workers"))
	_ = v.BindPFlag("search.max_phases", f.Lookup("max-phases"))
	_ = v.BindPFlag("search.timeout", f.Lookup("timeout"))

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if f.Changed("full-eval") {
			fullEval, _ := f.GetBool("full-eval")
			state.config.Set("search.incremental", !fullEval)
		}
	}

	return cmd
}

func newScoreCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Read a partition from stdin and print its block statistics and log-likelihood",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := state.graph()
			if err != nil {
				return err
			}

			z, err := partition.Decode(cmd.InOrStdin())
			if err != nil {
				return err
			}

			stats, logL, err := dcsbm.Score(g, z, state.config.Groups())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "nodes:          %d\n", g.NumNodes())
			fmt.Fprintf(out, "edges:          %d\n", g.NumEdges())
			fmt.Fprintf(out, "groups:         %d (%d non-empty)\n", stats.Groups, z.NumGroups())
			fmt.Fprintf(out, "sizes:          %v\n", z.Sizes(stats.Groups))
			fmt.Fprintf(out, "kappa:          %v\n", stats.Kappa)
			fmt.Fprintf(out, "ers:            %v\n", mat.Formatted(stats.Ers, mat.Prefix("                "), mat.Squeeze()))
			fmt.Fprintf(out, "log-likelihood: %.6f\n", logL)
			fmt.Fprintf(out, "modularity:     %.6f\n", dcsbm.Modularity(g, z))
			return nil
		},
	}
}

func (s *cliState) graph() (*dcsbm.Graph, error) {
	return graphs.ByName(s.graphName, rand.New(rand.NewSource(s.graphSeed)))
}
