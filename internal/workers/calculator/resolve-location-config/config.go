// internal/workers/calculator/resolve-location-config/config.go
package resolvelocationconfig

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
