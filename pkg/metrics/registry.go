// Package metrics exposes prometheus collectors for the block model search.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all search metrics. All Record methods are safe on a nil
// *Registry, which discards the observation.
type Registry struct {
	// Search Metrics
	SearchesTotal     *prometheus.CounterVec
	SearchDuration    prometheus.Histogram
	BestLogLikelihood prometheus.Gauge

	// Trial Metrics
	TrialsTotal     *prometheus.CounterVec
	TrialDuration   prometheus.Histogram
	TrialPhases     prometheus.Histogram
	PhasesTotal     *prometheus.CounterVec
	MovesTotal      prometheus.Counter
	CandidatesTotal prometheus.Counter

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every collector registered on a fresh
// prometheus.Registry.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initSearchMetrics()
	r.initTrialMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying registry for exposition.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// WriteToTextfile writes the current metric values in the text exposition
// format, for node_exporter's textfile collector.
func (r *Registry) WriteToTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, r.registry)
}

func (r *Registry) initSearchMetrics() {
	r.SearchesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "dcsbm_searches_total",
			Help: "Total number of multi-trial searches",
		},
		[]string{"status"}, // success, error
	)

	r.SearchDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dcsbm_search_duration_seconds",
			Help:    "Wall-clock duration of multi-trial searches",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
	)

	r.BestLogLikelihood = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "dcsbm_best_log_likelihood",
			Help: "Log-likelihood of the partition returned by the last search",
		},
	)
}

func (r *Registry) initTrialMetrics() {
	r.TrialsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "dcsbm_trials_total",
			Help: "Total number of trials run",
		},
		[]string{"status"}, // converged, phase_cap, error
	)

	r.TrialDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dcsbm_trial_duration_seconds",
			Help:    "Duration of single trials",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
	)

	r.TrialPhases = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dcsbm_trial_phases",
			Help:    "Number of phases a trial ran before stopping",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 31},
		},
	)

	r.PhasesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "dcsbm_phases_total",
			Help: "Total number of local search phases",
		},
		[]string{"result"}, // improved, stalled
	)

	r.MovesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "dcsbm_moves_total",
			Help: "Total number of committed single-node moves",
		},
	)

	r.CandidatesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "dcsbm_candidate_moves_evaluated_total",
			Help: "Total number of tentative moves scored",
		},
	)
}
