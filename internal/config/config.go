// Package config provides configuration management for the MLB edge pipeline.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	MLBAPI    MLBAPIConfig    `mapstructure:"mlb_api" validate:"required"`
	Replay    ReplayConfig    `mapstructure:"replay" validate:"required"`
	Cache     CacheConfig     `mapstructure:"cache" validate:"required"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Model     ModelConfig     `mapstructure:"model" validate:"required"`
	Staking   StakingConfig   `mapstructure:"staking" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
	Events    EventsConfig    `mapstructure:"events"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// MLBAPIConfig configures the MLB Stats API client
type MLBAPIConfig struct {
	BaseURL           string        `mapstructure:"base_url" validate:"required,url"`
	Timeout           time.Duration `mapstructure:"timeout" validate:"required,gt=0"`
	MaxRetries        int           `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit         float64       `mapstructure:"rate_limit" validate:"required,gt=0"`
	CircuitBreakerMax int           `mapstructure:"circuit_breaker_max" validate:"required,gt=0"`
}

// ReplayConfig configures the chronological feature replay
type ReplayConfig struct {
	RollingWindow             int           `mapstructure:"rolling_window" validate:"required,gt=0"`
	FirstSeason               int           `mapstructure:"first_season" validate:"required,season"`
	CurrentSeason             int           `mapstructure:"current_season" validate:"required,season"`
	CacheMinAge               time.Duration `mapstructure:"cache_min_age" validate:"required,gt=0"`
	CarryRollingAcrossSeasons bool          `mapstructure:"carry_rolling_across_seasons"`
	Prefetch                  bool          `mapstructure:"prefetch"`
	ExportPath                string        `mapstructure:"export_path"`
}

// CacheConfig selects the hot box score cache in front of the database
type CacheConfig struct {
	Backend string        `mapstructure:"backend" validate:"required,oneof=none memory redis"`
	TTL     time.Duration `mapstructure:"ttl" validate:"required,gt=0"`
}

// RedisConfig represents redis connection configuration
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// ModelConfig configures the prediction model server
type ModelConfig struct {
	Endpoint      string        `mapstructure:"endpoint" validate:"required,url"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"required,gt=0"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl" validate:"required,gt=0"`
	FeatureMethod string        `mapstructure:"feature_method" validate:"required,oneof=diff raw"`
}

// StakingConfig configures the EV stake calculator
type StakingConfig struct {
	UnitMultiplier float64 `mapstructure:"unit_multiplier" validate:"required,gt=0"`
	MinOddsLength  int     `mapstructure:"min_odds_length" validate:"gte=0"`
	UnitSize       float64 `mapstructure:"unit_size" validate:"required,gt=0"`
	BankrollUnits  float64 `mapstructure:"bankroll_units" validate:"gte=0"`
}

// SchedulerConfig holds cron specs for the background jobs
type SchedulerConfig struct {
	ScheduleRefresh string        `mapstructure:"schedule_refresh" validate:"required"`
	NightlyReplay   string        `mapstructure:"nightly_replay" validate:"required"`
	JobTimeout      time.Duration `mapstructure:"job_timeout" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// EventsConfig configures replay event publishing over NATS
type EventsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	NATSURL string `mapstructure:"nats_url"`
	Subject string `mapstructure:"subject"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Seasons returns every season from the first configured one through the current one
func (c *Config) Seasons() []int {
	if c.Replay.FirstSeason > c.Replay.CurrentSeason {
		return nil
	}
	seasons := make([]int, 0, c.Replay.CurrentSeason-c.Replay.FirstSeason+1)
	for s := c.Replay.FirstSeason; s <= c.Replay.CurrentSeason; s++ {
		seasons = append(seasons, s)
	}
	return seasons
}
