package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func writeMetric(t *testing.T, m prometheus.Metric) *dto.Metric {
	t.Helper()
	var metric dto.Metric
	if err := m.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return &metric
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Verify all metrics are initialized
	if r.SearchesTotal == nil {
		t.Error("SearchesTotal not initialized")
	}
	if r.TrialsTotal == nil {
		t.Error("TrialsTotal not initialized")
	}
	if r.PhasesTotal == nil {
		t.Error("PhasesTotal not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Error("Prometheus registry not initialized")
	}

	// Two registries must not collide on registration
	if NewRegistry() == r {
		t.Error("NewRegistry() should return a fresh instance")
	}
}

func TestRecordSearch(t *testing.T) {
	r := NewRegistry()

	r.RecordSearch("success", 120*time.Millisecond, -21.5)
	r.RecordSearch("error", 5*time.Millisecond, 0)

	success := writeMetric(t, r.SearchesTotal.WithLabelValues("success"))
	if success.Counter.GetValue() != 1 {
		t.Errorf("success counter = %v, want 1", success.Counter.GetValue())
	}

	// A failed search must not overwrite the last best likelihood
	gauge := writeMetric(t, r.BestLogLikelihood)
	if gauge.Gauge.GetValue() != -21.5 {
		t.Errorf("best log-likelihood = %v, want -21.5", gauge.Gauge.GetValue())
	}

	duration := writeMetric(t, r.SearchDuration)
	if duration.Histogram.GetSampleCount() != 2 {
		t.Errorf("duration samples = %v, want 2", duration.Histogram.GetSampleCount())
	}
}

func TestRecordTrial(t *testing.T) {
	r := NewRegistry()

	r.RecordTrial("converged", 10*time.Millisecond, 3)
	r.RecordTrial("phase_cap", 20*time.Millisecond, 31)
	r.RecordTrial("error", time.Millisecond, 1)

	for _, status := range []string{"converged", "phase_cap", "error"} {
		counter := writeMetric(t, r.TrialsTotal.WithLabelValues(status))
		if counter.Counter.GetValue() != 1 {
			t.Errorf("%s trials = %v, want 1", status, counter.Counter.GetValue())
		}
	}

	phases := writeMetric(t, r.TrialPhases)
	if phases.Histogram.GetSampleCount() != 2 {
		t.Errorf("phase samples = %v, want 2", phases.Histogram.GetSampleCount())
	}
	if phases.Histogram.GetSampleSum() != 34 {
		t.Errorf("phase sum = %v, want 34", phases.Histogram.GetSampleSum())
	}
}

func TestRecordPhase(t *testing.T) {
	r := NewRegistry()

	r.RecordPhase(true, 6, 6)
	r.RecordPhase(false, 4, 10)

	improved := writeMetric(t, r.PhasesTotal.WithLabelValues("improved"))
	stalled := writeMetric(t, r.PhasesTotal.WithLabelValues("stalled"))
	if improved.Counter.GetValue() != 1 || stalled.Counter.GetValue() != 1 {
		t.Errorf("phases improved=%v stalled=%v, want 1 and 1",
			improved.Counter.GetValue(), stalled.Counter.GetValue())
	}

	if moves := writeMetric(t, r.MovesTotal).Counter.GetValue(); moves != 10 {
		t.Errorf("moves = %v, want 10", moves)
	}
	if candidates := writeMetric(t, r.CandidatesTotal).Counter.GetValue(); candidates != 16 {
		t.Errorf("candidates = %v, want 16", candidates)
	}
}

func TestNilRegistry(t *testing.T) {
	var r *Registry

	// Must not panic
	r.RecordSearch("success", time.Second, 1)
	r.RecordTrial("converged", time.Second, 1)
	r.RecordPhase(true, 1, 1)
}

func TestWriteToTextfile(t *testing.T) {
	r := NewRegistry()
	r.RecordTrial("converged", 10*time.Millisecond, 2)

	path := filepath.Join(t.TempDir(), "dcsbm.prom")
	if err := r.WriteToTextfile(path); err != nil {
		t.Fatalf("WriteToTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read metrics file: %v", err)
	}
	output := string(data)

	for _, name := range []string{"dcsbm_trials_total", "dcsbm_trial_phases", "dcsbm_moves_total"} {
		if !strings.Contains(output, name) {
			t.Errorf("metrics file missing %s", name)
		}
	}
}
