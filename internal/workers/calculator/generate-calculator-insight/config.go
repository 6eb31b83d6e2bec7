// internal/workers/calculator/generate-calculator-insight/config.go
package generatecalculatorinsight

import "time"

// Config bounds the whole job. Generation itself is bounded by the manager.
type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
