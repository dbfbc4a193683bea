// Package replay rebuilds point-in-time feature records by replaying seasons
// game by game in chronological order.
package replay

import (
	"fmt"
	"time"

	"github.com/yourusername/mlb-edge/internal/boxscore"
	"github.com/yourusername/mlb-edge/internal/config"
)

// Config holds the replay settings
type Config struct {
	RollingWindow             int
	CurrentSeason             int
	CacheMinAge               time.Duration
	CarryRollingAcrossSeasons bool
	Prefetch                  bool
	ExportPath                string
}

// FromConfig converts app config to replay config
func FromConfig(cfg *config.ReplayConfig) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("replay config is required")
	}

	rc := Config{
		RollingWindow:             cfg.RollingWindow,
		CurrentSeason:             cfg.CurrentSeason,
		CacheMinAge:               cfg.CacheMinAge,
		CarryRollingAcrossSeasons: cfg.CarryRollingAcrossSeasons,
		Prefetch:                  cfg.Prefetch,
		ExportPath:                cfg.ExportPath,
	}
	if rc.CacheMinAge <= 0 {
		rc.CacheMinAge = boxscore.DefaultMinCacheAge
	}

	return rc, rc.Validate()
}

// Validate validates replay config parameters
func (c Config) Validate() error {
	if c.RollingWindow < 1 {
		return fmt.Errorf("rolling window must be at least 1, got %d", c.RollingWindow)
	}
	if c.CurrentSeason <= 0 {
		return fmt.Errorf("current season is required")
	}
	return nil
}
