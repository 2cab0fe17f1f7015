package cli

import (
	"math"
	"os"
	"strconv"
	"time"

	"santorini/experiments/metrics"
	"santorini/meta"
	"santorini/searcher"

	"github.com/rs/zerolog/log"
)

// Config holds CLI configuration
type Config struct {
	Iterations  int
	Duration    time.Duration
	Exploration float64
	Seed        uint64 // 0 seeds from the clock
	Addr        string
	LogLevel    string
	NoColor     bool
}

// DefaultConfig returns a Config with defaults taken from the environment
func DefaultConfig() *Config {
	return &Config{
		Iterations:  getEnvInt("SANTORINI_ITERATIONS", meta.Iterations),
		Exploration: math.Sqrt2,
		Seed:        getEnvUint("SANTORINI_SEED", 0),
		Addr:        getEnvOrDefault("SANTORINI_ADDR", ":8080"),
		LogLevel:    getEnvOrDefault("SANTORINI_LOG_LEVEL", "info"),
	}
}

func (c *Config) searchOptions() []searcher.Option {
	options := []searcher.Option{
		searcher.WithIterations(c.Iterations),
		searcher.WithExploration(c.Exploration),
		searcher.WithMetrics(),
	}
	if c.Duration > 0 {
		options = append(options, searcher.WithDuration(c.Duration))
	}
	if c.Seed != 0 {
		options = append(options, searcher.WithSeed(c.Seed))
	}
	return options
}

func (c *Config) newMCTS() *searcher.MCTS {
	return searcher.NewMCTS(c.searchOptions()...)
}

func (c *Config) agentConfig(id int) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:          id,
		Iterations:  c.Iterations,
		Duration:    c.Duration,
		Exploration: c.Exploration,
		Seed:        c.Seed,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		log.Warn().Msgf("ignoring %s=%q: expected a positive integer", key, val)
		return defaultVal
	}
	return n
}

func getEnvUint(key string, defaultVal uint64) uint64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		log.Warn().Msgf("ignoring %s=%q: expected an unsigned integer", key, val)
		return defaultVal
	}
	return n
}
