// internal/workers/calculator/check-content-compliance/config.go
package checkcontentcompliance

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
