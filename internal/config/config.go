package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Gym      GymConfig      `yaml:"gym"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// GymConfig holds spaced-repetition and session generation parameters.
type GymConfig struct {
	DesiredRetention   float64 `yaml:"desired_retention"    env:"GYM_DESIRED_RETENTION"    env-default:"0.9"`
	MaxIntervalDays    int     `yaml:"max_interval_days"    env:"GYM_MAX_INTERVAL"         env-default:"365"`
	EnableFuzz         bool    `yaml:"enable_fuzz"          env:"GYM_ENABLE_FUZZ"          env-default:"true"`
	LearningStepsRaw   string  `yaml:"learning_steps"       env:"GYM_LEARNING_STEPS"       env-default:"1m,10m"`
	RelearningStepsRaw string  `yaml:"relearning_steps"     env:"GYM_RELEARNING_STEPS"     env-default:"10m"`
	WeightsRaw         string  `yaml:"fsrs_weights"         env:"GYM_FSRS_WEIGHTS"`

	// LearningSteps is parsed from LearningStepsRaw during validation.
	LearningSteps []time.Duration `yaml:"-" env:"-"`
	// RelearningSteps is parsed from RelearningStepsRaw during validation.
	RelearningSteps []time.Duration `yaml:"-" env:"-"`
	// Weights is parsed from WeightsRaw during validation; empty raw value
	// falls back to the stock FSRS-5 weights.
	Weights [19]float64 `yaml:"-" env:"-"`
}
