package dcsbm

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gilchrisn/sbm-partition/pkg/partition"
)

// TrialConfig controls a single trial.
type TrialConfig struct {
	Groups    int
	MaxPhases int
	// FullEvaluation re-tabulates the statistics for every candidate move
	// instead of applying O(degree) updates. Output is identical; it exists as
	// a reference path.
	FullEvaluation bool
	// Index identifies the trial in logs and move traces.
	Index int
}

// PhaseStats describes one local search phase.
type PhaseStats struct {
	Phase     int     `json:"phase"`
	StartLogL float64 `json:"start_log_likelihood"`
	BestLogL  float64 `json:"best_log_likelihood"`
	Moves     int     `json:"moves"`
	Improved  bool    `json:"improved"`
}

// TrialResult is the outcome of one trial.
type TrialResult struct {
	Index         int                 `json:"index"`
	Seed          int64               `json:"seed"`
	LogLikelihood float64             `json:"log_likelihood"`
	Partition     partition.Partition `json:"partition"`
	// Trace holds, for every phase, the likelihood entering the phase followed
	// by the likelihood reached after each committed move.
	Trace     []float64    `json:"trace"`
	Phases    int          `json:"phases"`
	Moves     int          `json:"moves"`
	PhaseCap  bool         `json:"phase_cap"`
	PhaseLog  []PhaseStats `json:"phase_log"`
	RuntimeMS int64        `json:"runtime_ms"`
}

// RunTrial runs the phase loop from a uniformly random initial partition
// drawn from rng.
//
// Each phase resets the freeze markers and commits up to n moves, each the
// best single-node reassignment among unfrozen nodes. The best partition seen
// during the phase is kept as a snapshot and becomes the start of the next
// phase. The trial stops once a phase fails to beat the likelihood it started
// from, or after cfg.MaxPhases+1 phases. The returned partition is the one
// whose likelihood is reported.
func RunTrial(ctx context.Context, g GraphView, cfg TrialConfig, rng *rand.Rand, opts ...Option) (*TrialResult, error) {
	return runTrial(ctx, g, cfg, rng, applyOptions(opts))
}

func runTrial(ctx context.Context, g GraphView, cfg TrialConfig, rng *rand.Rand, o *runOptions) (*TrialResult, error) {
	if cfg.Groups <= 0 {
		return nil, fmt.Errorf("c=%d: %w", cfg.Groups, ErrInvalidGroupCount)
	}
	return runTrialFrom(ctx, g, cfg, partition.Random(g.NumNodes(), cfg.Groups, rng), o)
}

// runTrialFrom runs the phase loop starting from z, which it takes ownership of.
func runTrialFrom(ctx context.Context, g GraphView, cfg TrialConfig, z partition.Partition, o *runOptions) (*TrialResult, error) {
	startTime := time.Now()
	logger := o.logger.With().Int("trial", cfg.Index).Logger()

	if cfg.MaxPhases < 0 {
		return nil, fmt.Errorf("max phases must be non-negative, got %d", cfg.MaxPhases)
	}

	n := g.NumNodes()
	st, err := newSearchState(g, z, cfg.Groups, !cfg.FullEvaluation)
	if err != nil {
		return nil, fmt.Errorf("initial partition: %w", err)
	}

	lMax := st.logLikelihood()
	best := z.Clone()

	result := &TrialResult{
		Index:    cfg.Index,
		Trace:    make([]float64, 0, n+1),
		PhaseLog: make([]PhaseStats, 0),
	}

	logger.Debug().
		Int("nodes", n).
		Int("groups", cfg.Groups).
		Float64("log_likelihood", lMax).
		Msg("Starting trial")

	frozen := make([]bool, n)
	zPhase := make(partition.Partition, n)

	for {
		copy(zPhase, st.z)
		result.Trace = append(result.Trace, lMax)

		evaluationsBefore := st.evaluations
		lPhase, moves, err := st.runPhase(ctx, frozen, lMax, zPhase, func(step int, m Move) {
			result.Trace = append(result.Trace, m.LogLikelihood)
			o.tracker.LogMove(cfg.Index, result.Phases+1, step, m)
		})
		if err != nil {
			o.metrics.RecordTrial("error", time.Since(startTime), result.Phases)
			return nil, fmt.Errorf("trial %d interrupted in phase %d: %w", cfg.Index, result.Phases+1, err)
		}

		result.Phases++
		result.Moves += moves
		improved := lPhase > lMax
		result.PhaseLog = append(result.PhaseLog, PhaseStats{
			Phase:     result.Phases,
			StartLogL: lMax,
			BestLogL:  lPhase,
			Moves:     moves,
			Improved:  improved,
		})
		o.metrics.RecordPhase(improved, moves, st.evaluations-evaluationsBefore)

		logger.Debug().
			Int("phase", result.Phases).
			Int("moves", moves).
			Float64("start_log_likelihood", lMax).
			Float64("best_log_likelihood", lPhase).
			Bool("improved", improved).
			Msg("Phase complete")

		if !improved {
			break
		}
		lMax = lPhase
		copy(best, zPhase)

		if result.Phases > cfg.MaxPhases {
			result.PhaseCap = true
			logger.Debug().Int("phases", result.Phases).Msg("Phase cap reached, stopping")
			break
		}

		st.reset(best.Clone())
	}

	result.LogLikelihood = lMax
	result.Partition = best
	result.RuntimeMS = time.Since(startTime).Milliseconds()

	status := "converged"
	if result.PhaseCap {
		status = "phase_cap"
	}
	o.metrics.RecordTrial(status, time.Since(startTime), result.Phases)

	logger.Debug().
		Int("phases", result.Phases).
		Int("moves", result.Moves).
		Float64("log_likelihood", lMax).
		Msg("Trial complete")

	return result, nil
}
