package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

const (
	validConfigPath              = "testdata/valid_config.yaml"
	expansionConfigPath          = "testdata/expansion_config.yaml"
	nonexistentConfigPath        = "testdata/nonexistent_config.yaml"
	expectedNoErrorLoadingConfig = "expected no error loading config, got %v"
	expectedNoErrorMsg           = "expected no error, got %v"
	appName                      = "mlb-edge"
	developmentEnv               = "development"
	localhostHost                = "localhost"
	postgresPort                 = 5432
	postgresPrefix               = "postgres://"
	testAppName                  = "test-app"
	testDBPassword               = "TEST_DB_PASSWORD"
	expandedSecretValue          = "expanded_secret_value"
)

func loadValid(t *testing.T) *Config {
	t.Helper()
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}
	return cfg
}

func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.App.Name != appName {
		t.Errorf("expected app name '%s', got '%s'", appName, cfg.App.Name)
	}
	if cfg.App.Environment != developmentEnv {
		t.Errorf("expected environment '%s', got '%s'", developmentEnv, cfg.App.Environment)
	}
	if cfg.Database.Host != localhostHost {
		t.Errorf("expected database host '%s', got '%s'", localhostHost, cfg.Database.Host)
	}
	if cfg.Database.Port != postgresPort {
		t.Errorf("expected database port %d, got %d", postgresPort, cfg.Database.Port)
	}
	if cfg.Replay.RollingWindow != 5 {
		t.Errorf("expected rolling window 5, got %d", cfg.Replay.RollingWindow)
	}
	if cfg.Replay.CacheMinAge != 14*24*time.Hour {
		t.Errorf("expected cache min age 336h, got %s", cfg.Replay.CacheMinAge)
	}
	if cfg.Staking.UnitMultiplier != 5 {
		t.Errorf("expected unit multiplier 5, got %v", cfg.Staking.UnitMultiplier)
	}
}

func TestLoadConfigFileNotFound(t *testing.T) {
	if _, err := Load(nonexistentConfigPath); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadWithDefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadWithDefaults(nonexistentConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if cfg.Replay.RollingWindow != 5 || cfg.Replay.FirstSeason != 2015 {
		t.Errorf("unexpected replay defaults: %+v", cfg.Replay)
	}
	if cfg.Model.FeatureMethod != "diff" {
		t.Errorf("expected default feature method diff, got %s", cfg.Model.FeatureMethod)
	}
}

func TestLoadConfigEnvironmentVariables(t *testing.T) {
	t.Setenv("MLB_EDGE_APP_NAME", testAppName)

	cfg := loadValid(t)
	if cfg.App.Name != testAppName {
		t.Errorf("expected app name '%s' from environment, got '%s'", testAppName, cfg.App.Name)
	}
}

func TestLoadConfigCurrentSeasonOverride(t *testing.T) {
	t.Setenv("CURRENT_SEASON", "2023")

	cfg := loadValid(t)
	if cfg.Replay.CurrentSeason != 2023 {
		t.Errorf("expected current season 2023, got %d", cfg.Replay.CurrentSeason)
	}
}

func TestLoadConfigInvalidCurrentSeason(t *testing.T) {
	t.Setenv("CURRENT_SEASON", "next")

	if _, err := Load(validConfigPath); err == nil {
		t.Fatal("expected error for non-numeric CURRENT_SEASON")
	}
}

func TestLoadConfigEnvironmentVariableExpansion(t *testing.T) {
	t.Setenv(testDBPassword, expandedSecretValue)

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf("expected no error loading config with expansion, got %v", err)
	}
	if cfg.Database.Password != expandedSecretValue {
		t.Errorf("expected password '%s' from environment expansion, got '%s'", expandedSecretValue, cfg.Database.Password)
	}
}

func TestValidateSuccess(t *testing.T) {
	if err := Validate(loadValid(t)); err != nil {
		t.Fatalf("expected no validation error, got %v", err)
	}
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"invalid environment", func(c *Config) { c.App.Environment = "invalid" }, "Environment"},
		{"invalid log level", func(c *Config) { c.App.LogLevel = "verbose" }, "LogLevel"},
		{"season out of range", func(c *Config) { c.Replay.FirstSeason = 1850 }, "FirstSeason"},
		{"zero rolling window", func(c *Config) { c.Replay.RollingWindow = 0 }, "RollingWindow"},
		{"unknown feature method", func(c *Config) { c.Model.FeatureMethod = "ratio" }, "FeatureMethod"},
		{"first season after current", func(c *Config) {
			c.Replay.FirstSeason = 2024
			c.Replay.CurrentSeason = 2020
		}, "first_season"},
		{"redis backend without url", func(c *Config) { c.Cache.Backend = "redis" }, "redis.url"},
		{"events without url", func(c *Config) { c.Events.Enabled = true }, "events.nats_url"},
		{"production without ssl", func(c *Config) { c.App.Environment = "production" }, "SSL"},
		{"idle above max connections", func(c *Config) { c.Database.MaxIdleConnections = 50 }, "max_idle_connections"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadValid(t)
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected error mentioning %q, got: %v", tt.wantMsg, err)
			}
		})
	}
}

func TestValidateRedisBackendWithURL(t *testing.T) {
	cfg := loadValid(t)
	cfg.Cache.Backend = "redis"
	cfg.Redis.URL = "redis://localhost:6379/0"

	if err := Validate(cfg); err != nil {
		t.Fatalf("expected no validation error, got %v", err)
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	dsn := loadValid(t).GetDatabaseDSN()
	if !strings.HasPrefix(dsn, postgresPrefix) {
		t.Errorf("expected DSN to start with '%s', got '%s'", postgresPrefix, dsn)
	}
	if !strings.Contains(dsn, "sslmode=disable") {
		t.Errorf("expected sslmode in DSN, got '%s'", dsn)
	}
}

func TestSeasons(t *testing.T) {
	cfg := &Config{Replay: ReplayConfig{FirstSeason: 2021, CurrentSeason: 2023}}
	got := cfg.Seasons()
	want := []int{2021, 2022, 2023}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}

	cfg.Replay.FirstSeason = 2024
	if len(cfg.Seasons()) != 0 {
		t.Error("expected no seasons when first season is after current")
	}
}

func TestEnvironmentChecks(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: developmentEnv}}
	if !cfg.IsDevelopment() || cfg.IsProduction() || cfg.IsStaging() {
		t.Error("expected only IsDevelopment() to be true")
	}

	cfg.App.Environment = "production"
	if !cfg.IsProduction() || cfg.IsDevelopment() {
		t.Error("expected IsProduction() to be true")
	}

	cfg.App.Environment = "staging"
	if !cfg.IsStaging() {
		t.Error("expected IsStaging() to be true")
	}
}

func TestOverlaySecretsOnConfig(t *testing.T) {
	cfg := loadValid(t)
	overlaySecretsOnConfig(cfg, &SecretsOverlay{DatabasePassword: "from-aws"})

	if cfg.Database.Password != "from-aws" {
		t.Errorf("expected overlaid password, got '%s'", cfg.Database.Password)
	}
	if cfg.Redis.URL != "" {
		t.Errorf("expected empty secrets to leave redis url untouched, got '%s'", cfg.Redis.URL)
	}
}

func TestMain(m *testing.M) {
	os.Unsetenv("CURRENT_SEASON")
	os.Exit(m.Run())
}
