// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig               `mapstructure:"app"`
	Camunda    CamundaConfig           `mapstructure:"camunda"`
	Database   DatabaseConfig          `mapstructure:"database"`
	Workers    map[string]WorkerConfig `mapstructure:"workers"`
	Logging    LoggingConfig           `mapstructure:"logging"`
	Locations  LocationsConfig         `mapstructure:"locations"`
	Calculator CalculatorConfig        `mapstructure:"calculator"`
	Compliance ComplianceConfig        `mapstructure:"compliance"`
	Metrics    MetricsConfig           `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	ConnLifetime   int    `mapstructure:"conn_lifetime"` // seconds
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// --- Solar Configuration Sections ---

// LocationsConfig selects where state and city overrides come from in addition
// to the built-in tables.
type LocationsConfig struct {
	TablePath      string `mapstructure:"table_path"`
	UseDatabase    bool   `mapstructure:"use_database"`
	Migrate        bool   `mapstructure:"migrate"`
	ReloadInterval int    `mapstructure:"reload_interval"` // seconds
}

// CalculatorConfig holds the monthly bill bounds enforced by the savings worker.
type CalculatorConfig struct {
	MinMonthlyBill    float64 `mapstructure:"min_monthly_bill"`
	MaxMonthlyBill    float64 `mapstructure:"max_monthly_bill"`
	EnforceBillBounds bool    `mapstructure:"enforce_bill_bounds"`
}

// ComplianceConfig holds settings for the compliance and insight workers.
type ComplianceConfig struct {
	AuditSinkEnabled bool   `mapstructure:"audit_sink_enabled"`
	AuditKeyPrefix   string `mapstructure:"audit_key_prefix"`
	AuditListTTL     int    `mapstructure:"audit_list_ttl"`   // seconds
	GenerateTimeout  int    `mapstructure:"generate_timeout"` // milliseconds
	SessionIdleTTL   int    `mapstructure:"session_idle_ttl"` // seconds
}

// MetricsConfig holds the listen address of the /metrics endpoint.
type MetricsConfig struct {
	Address string `mapstructure:"address"`
}
