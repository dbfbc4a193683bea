package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix         = "MLB_EDGE"
	defaultConfigPath = "config/config.yaml"
)

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// MLB_EDGE_REPLAY_ROLLING_WINDOW overrides replay.rolling_window
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return unmarshal(v)
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing config file is not an error.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "mlb-edge")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_idle_connections", 2)

	v.SetDefault("mlb_api.base_url", "https://statsapi.mlb.com/api/v1/")
	v.SetDefault("mlb_api.timeout", "30s")
	v.SetDefault("mlb_api.max_retries", 3)
	v.SetDefault("mlb_api.rate_limit", 5.0)
	v.SetDefault("mlb_api.circuit_breaker_max", 10)

	v.SetDefault("replay.rolling_window", 5)
	v.SetDefault("replay.first_season", 2015)
	v.SetDefault("replay.current_season", time.Now().Year())
	v.SetDefault("replay.cache_min_age", "336h")
	v.SetDefault("replay.carry_rolling_across_seasons", false)
	v.SetDefault("replay.prefetch", true)

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl", "6h")

	v.SetDefault("model.endpoint", "http://localhost:8000")
	v.SetDefault("model.timeout", "5s")
	v.SetDefault("model.cache_ttl", "1h")
	v.SetDefault("model.feature_method", "diff")

	v.SetDefault("staking.unit_multiplier", 5.0)
	v.SetDefault("staking.min_odds_length", 4)
	v.SetDefault("staking.unit_size", 1.0)
	v.SetDefault("staking.bankroll_units", 100.0)

	v.SetDefault("scheduler.schedule_refresh", "0 0 9 * * *")
	v.SetDefault("scheduler.nightly_replay", "0 30 9 * * *")
	v.SetDefault("scheduler.job_timeout", "2h")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("events.subject", "mlb_edge.replay")
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := applyCurrentSeason(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyCurrentSeason honours the CURRENT_SEASON variable the pipeline has
// always been driven by
func applyCurrentSeason(cfg *Config) error {
	raw := os.Getenv("CURRENT_SEASON")
	if raw == "" {
		return nil
	}
	season, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid CURRENT_SEASON %q: %w", raw, err)
	}
	cfg.Replay.CurrentSeason = season
	return nil
}
