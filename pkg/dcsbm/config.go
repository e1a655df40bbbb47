package dcsbm

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultMaxPhases bounds the number of improving phases a trial may run.
const DefaultMaxPhases = 30

// Config manages search configuration using Viper
type Config struct {
	v *viper.Viper
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	v := viper.New()

	// Model parameters
	v.SetDefault("algorithm.groups", 2)
	v.SetDefault("algorithm.trials", 1)
	v.SetDefault("algorithm.random_seed", time.Now().UnixNano())

	// Search parameters
	v.SetDefault("search.max_phases", DefaultMaxPhases)
	v.SetDefault("search.incremental", true)
	v.SetDefault("search.timeout", time.Duration(0))

	// Performance parameters
	v.SetDefault("performance.num_workers", runtime.NumCPU())

	// Logging parameters
	v.SetDefault("logging.level", "info")

	v.SetDefault("analysis.track_moves", false)
	v.SetDefault("analysis.output_file", "moves.jsonl")

	return &Config{v: v}
}

// LoadFromFile loads configuration from file
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// Viper exposes the underlying instance so command-line flags can be bound to it.
func (c *Config) Viper() *viper.Viper { return c.v }

func (c *Config) Groups() int { return c.v.GetInt("algorithm.groups") }
func (c *Config) Trials() int { return c.v.GetInt("algorithm.trials") }
func (c *Config) RandomSeed() int64 { return c.v.GetInt64("algorithm.random_seed") }

func (c *Config) MaxPhases() int { return c.v.GetInt("search.max_phases") }
func (c *Config) Incremental() bool { return c.v.GetBool("search.incremental") }
func (c *Config) Timeout() time.Duration { return c.v.GetDuration("search.timeout") }
func (c *Config) NumWorkers() int { return c.v.GetInt("performance.num_workers") }
func (c *Config) LogLevel() string { return c.v.GetString("logging.level") }
func (c *Config) EnableMoveTracking() bool { return c.v.GetBool("analysis.track_moves") }
func (c *Config) TrackingOutputFile() string {
	return c.v.GetString("analysis.output_file")
}

// Set allows dynamic configuration changes
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// Validate rejects parameter combinations the search cannot run with.
func (c *Config) Validate() error {
	if c.Groups() <= 0 {
		return fmt.Errorf("algorithm.groups=%d: %w", c.Groups(), ErrInvalidGroupCount)
	}
	if c.Trials() <= 0 {
		return fmt.Errorf("algorithm.trials=%d: %w", c.Trials(), ErrInvalidTrialCount)
	}
	if c.MaxPhases() < 0 {
		return fmt.Errorf("search.max_phases must be non-negative, got %d", c.MaxPhases())
	}
	if c.Timeout() < 0 {
		return fmt.Errorf("search.timeout must be non-negative, got %s", c.Timeout())
	}
	return nil
}

// CreateLogger creates a zerolog logger based on config
func (c *Config) CreateLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "dcsbm").Logger()
}
