package dcsbm

import (
	"github.com/rs/zerolog"

	"github.com/gilchrisn/sbm-partition/pkg/metrics"
)

// Option customizes the collaborators a search reports to.
type Option func(*runOptions)

type runOptions struct {
	logger    zerolog.Logger
	hasLogger bool
	tracker   *MoveTracker
	metrics   *metrics.Registry
}

// WithLogger sets the logger. Without it Run uses Config.CreateLogger and
// RunTrial logs nothing.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *runOptions) {
		o.logger = logger
		o.hasLogger = true
	}
}

// WithTracker records every committed move into tracker. It takes precedence
// over the analysis.track_moves setting.
func WithTracker(tracker *MoveTracker) Option {
	return func(o *runOptions) {
		o.tracker = tracker
	}
}

// WithMetrics reports search, trial and phase observations to reg.
func WithMetrics(reg *metrics.Registry) Option {
	return func(o *runOptions) {
		o.metrics = reg
	}
}

func applyOptions(opts []Option) *runOptions {
	o := &runOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
