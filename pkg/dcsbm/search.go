// Package dcsbm partitions a graph into groups by maximizing the
// degree-corrected stochastic block model log-likelihood with a greedy
// Kernighan-Lin style local search, repeated over independent random trials.
package dcsbm

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gilchrisn/sbm-partition/pkg/partition"
)

// TrialSummary is the per-trial part of a Result, without the partition and trace.
type TrialSummary struct {
	Index         int     `json:"index"`
	Seed          int64   `json:"seed"`
	LogLikelihood float64 `json:"log_likelihood"`
	Phases        int     `json:"phases"`
	Moves         int     `json:"moves"`
	PhaseCap      bool    `json:"phase_cap"`
	RuntimeMS     int64   `json:"runtime_ms"`
}

// Result is the outcome of a multi-trial search.
type Result struct {
	Groups        int                 `json:"groups"`
	Partition     partition.Partition `json:"partition"`
	LogLikelihood float64             `json:"log_likelihood"`
	Modularity    float64             `json:"modularity"`
	BestTrial     int                 `json:"best_trial"`
	Best          *TrialResult        `json:"-"`
	Trials        []TrialSummary      `json:"trials"`
	RuntimeMS     int64               `json:"runtime_ms"`
}

// Run executes config.Trials() independent trials and returns the partition
// of the one with the highest log-likelihood.
//
// Trial seeds are drawn up front from algorithm.random_seed, and ties are
// resolved in favour of the lowest trial index, so the result does not
// depend on performance.num_workers or on scheduling.
func Run(ctx context.Context, g GraphView, config *Config, opts ...Option) (*Result, error) {
	startTime := time.Now()

	o := applyOptions(opts)
	if !o.hasLogger {
		o.logger = config.CreateLogger()
	}
	logger := o.logger

	if err := config.Validate(); err != nil {
		o.metrics.RecordSearch("error", time.Since(startTime), 0)
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if o.tracker == nil && config.EnableMoveTracking() {
		tracker, err := NewMoveTracker(config.TrackingOutputFile())
		if err != nil {
			return nil, err
		}
		defer tracker.Close()
		o.tracker = tracker
	}

	if timeout := config.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	trials := config.Trials()
	groups := config.Groups()

	logger.Info().
		Int("nodes", g.NumNodes()).
		Int("edges", countEdges(g)).
		Int("groups", groups).
		Int("trials", trials).
		Msg("Starting DC-SBM search")

	seeds := trialSeeds(config.RandomSeed(), trials)
	results := make([]*TrialResult, trials)

	workers := config.NumWorkers()
	if workers <= 0 {
		workers = 1
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := 0; i < trials; i++ {
		i := i
		eg.Go(func() error {
			cfg := TrialConfig{
				Groups:         groups,
				MaxPhases:      config.MaxPhases(),
				FullEvaluation: !config.Incremental(),
				Index:          i,
			}
			res, err := runTrial(egCtx, g, cfg, rand.New(rand.NewSource(seeds[i])), o)
			if err != nil {
				return err
			}
			res.Seed = seeds[i]
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		o.metrics.RecordSearch("error", time.Since(startTime), 0)
		return nil, fmt.Errorf("search failed: %w", err)
	}
	if err := o.tracker.Err(); err != nil {
		logger.Warn().Err(err).Msg("Move tracking incomplete")
	}

	bestIdx := selectBest(results)
	best := results[bestIdx]

	result := &Result{
		Groups:        groups,
		Partition:     best.Partition,
		LogLikelihood: best.LogLikelihood,
		Modularity:    Modularity(g, best.Partition),
		BestTrial:     bestIdx,
		Best:          best,
		Trials:        make([]TrialSummary, trials),
	}
	for i, res := range results {
		result.Trials[i] = TrialSummary{
			Index:         res.Index,
			Seed:          res.Seed,
			LogLikelihood: res.LogLikelihood,
			Phases:        res.Phases,
			Moves:         res.Moves,
			PhaseCap:      res.PhaseCap,
			RuntimeMS:     res.RuntimeMS,
		}
	}
	result.RuntimeMS = time.Since(startTime).Milliseconds()
	o.metrics.RecordSearch("success", time.Since(startTime), result.LogLikelihood)

	logger.Info().
		Int("best_trial", bestIdx).
		Float64("log_likelihood", result.LogLikelihood).
		Float64("modularity", result.Modularity).
		Int("non_empty_groups", result.Partition.NumGroups()).
		Int64("runtime_ms", result.RuntimeMS).
		Msg("DC-SBM search completed")

	return result, nil
}

// trialSeeds derives one seed per trial from the master seed.
func trialSeeds(seed int64, trials int) []int64 {
	master := rand.New(rand.NewSource(seed))
	seeds := make([]int64, trials)
	for i := range seeds {
		seeds[i] = master.Int63()
	}
	return seeds
}

// selectBest returns the index of the highest likelihood, lowest index first.
func selectBest(results []*TrialResult) int {
	best := 0
	for i := 1; i < len(results); i++ {
		if results[i].LogLikelihood > results[best].LogLikelihood {
			best = i
		}
	}
	return best
}
