// internal/workers/calculator/calculate-solar-savings/config.go
package calculatesolarsavings

import (
	"time"

	"solar-workers/internal/solar/engine"
)

type Config struct {
	Timeout           time.Duration
	EnforceBillBounds bool
	BillBounds        engine.BillBounds
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    10 * time.Second,
		BillBounds: engine.BillBounds{Min: 500, Max: 50000},
	}
}
