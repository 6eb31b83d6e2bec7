// internal/workers/calculator/check-apartment-feasibility/config.go
package checkapartmentfeasibility

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
