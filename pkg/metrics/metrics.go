package metrics

import (
	"time"
)

// RecordSearch records a finished multi-trial search
func (r *Registry) RecordSearch(status string, duration time.Duration, bestLogL float64) {
	if r == nil {
		return
	}
	r.SearchesTotal.WithLabelValues(status).Inc()
	r.SearchDuration.Observe(duration.Seconds())
	if status == "success" {
		r.BestLogLikelihood.Set(bestLogL)
	}
}

// RecordTrial records a finished trial
func (r *Registry) RecordTrial(status string, duration time.Duration, phases int) {
	if r == nil {
		return
	}
	r.TrialsTotal.WithLabelValues(status).Inc()
	r.TrialDuration.Observe(duration.Seconds())
	if status != "error" {
		r.TrialPhases.Observe(float64(phases))
	}
}

// RecordPhase records one local search phase with its committed moves and
// the number of candidate moves it scored.
func (r *Registry) RecordPhase(improved bool, moves, candidates int) {
	if r == nil {
		return
	}
	result := "stalled"
	if improved {
		result = "improved"
	}
	r.PhasesTotal.WithLabelValues(result).Inc()
	r.MovesTotal.Add(float64(moves))
	r.CandidatesTotal.Add(float64(candidates))
}
