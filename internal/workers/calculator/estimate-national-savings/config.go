// internal/workers/calculator/estimate-national-savings/config.go
package estimatenationalsavings

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
