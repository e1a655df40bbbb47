package dcsbm

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	config := NewConfig()

	assert.Equal(t, 2, config.Groups())
	assert.Equal(t, 1, config.Trials())
	assert.Equal(t, DefaultMaxPhases, config.MaxPhases())
	assert.True(t, config.Incremental())
	assert.Equal(t, time.Duration(0), config.Timeout())
	assert.Positive(t, config.NumWorkers())
	assert.Equal(t, "info", config.LogLevel())
	assert.False(t, config.EnableMoveTracking())
	assert.Equal(t, "moves.jsonl", config.TrackingOutputFile())
	assert.NoError(t, config.Validate())
}

func TestConfigLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dcsbm.yaml")
	content := `
algorithm:
  groups: 4
  trials: 12
  random_seed: 7
search:
  max_phases: 5
  incremental: false
  timeout: 2s
performance:
  num_workers: 3
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config := NewConfig()
	require.NoError(t, config.LoadFromFile(path))

	assert.Equal(t, 4, config.Groups())
	assert.Equal(t, 12, config.Trials())
	assert.Equal(t, int64(7), config.RandomSeed())
	assert.Equal(t, 5, config.MaxPhases())
	assert.False(t, config.Incremental())
	assert.Equal(t, 2*time.Second, config.Timeout())
	assert.Equal(t, 3, config.NumWorkers())
	assert.Equal(t, "debug", config.LogLevel())
}

func TestConfigLoadMissingFile(t *testing.T) {
	config := NewConfig()
	assert.Error(t, config.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   interface{}
		wantErr error
	}{
		{"ZeroGroups", "algorithm.groups", 0, ErrInvalidGroupCount},
		{"NegativeGroups", "algorithm.groups", -2, ErrInvalidGroupCount},
		{"ZeroTrials", "algorithm.trials", 0, ErrInvalidTrialCount},
		{"NegativeMaxPhases", "search.max_phases", -1, nil},
		{"NegativeTimeout", "search.timeout", -time.Second, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := NewConfig()
			config.Set(tt.key, tt.value)

			err := config.Validate()
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestConfigCreateLogger(t *testing.T) {
	config := NewConfig()
	config.Set("logging.level", "warn")
	assert.Equal(t, zerolog.WarnLevel, config.CreateLogger().GetLevel())

	config.Set("logging.level", "not-a-level")
	assert.Equal(t, zerolog.InfoLevel, config.CreateLogger().GetLevel())
}
