// internal/workers/calculator/evaluate-installer-quote/config.go
package evaluateinstallerquote

import (
	"time"

	"solar-workers/internal/solar/quote"
)

type Config struct {
	Timeout     time.Duration
	Benchmarks  quote.Benchmarks
	Multipliers map[string]float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     5 * time.Second,
		Benchmarks:  quote.DefaultBenchmarks,
		Multipliers: quote.DefaultMultipliers,
	}
}
