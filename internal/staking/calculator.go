package staking

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/mlb-edge/internal/logger"
	"github.com/yourusername/mlb-edge/internal/metrics"
	"github.com/yourusername/mlb-edge/internal/models"
)

// DefaultUnitMultiplier scales ROI into units staked
const DefaultUnitMultiplier = 5.0

// SideNone marks a no-bet recommendation
const SideNone models.Side = ""

// Recommendation is the result of one stake calculation
type Recommendation struct {
	Side       models.Side `json:"side"`
	Stake      float64     `json:"stake"`
	ROIPercent float64     `json:"expected_roi_percent"`
	HomeEV     float64     `json:"home_ev"`
	AwayEV     float64     `json:"away_ev"`
	HomePayout float64     `json:"home_payout"`
	AwayPayout float64     `json:"away_payout"`
}

// IsBet reports whether a side was selected
func (r Recommendation) IsBet() bool {
	return r.Side != SideNone
}

// SideLabel returns "home", "away" or "none"
func (r Recommendation) SideLabel() string {
	if !r.IsBet() {
		return "none"
	}
	return string(r.Side)
}

func round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// CalculateWithMultiplier computes the EV of one unit on each side and picks
// the larger. Ties go to away. Both EVs at or below zero is a no bet.
func CalculateWithMultiplier(pHome, pAway float64, homeOdds, awayOdds string, multiplier float64) (Recommendation, error) {
	home, err := ParseMoneyline(homeOdds)
	if err != nil {
		return Recommendation{}, err
	}
	away, err := ParseMoneyline(awayOdds)
	if err != nil {
		return Recommendation{}, err
	}

	rec := Recommendation{
		HomePayout: MoneylineToPayout(home),
		AwayPayout: MoneylineToPayout(away),
	}
	rec.HomeEV = pHome*rec.HomePayout - pAway
	rec.AwayEV = pAway*rec.AwayPayout - pHome

	if rec.HomeEV <= 0 && rec.AwayEV <= 0 {
		return rec, nil
	}

	ev, payout := rec.AwayEV, rec.AwayPayout
	rec.Side = models.SideAway
	if rec.HomeEV > rec.AwayEV {
		ev, payout = rec.HomeEV, rec.HomePayout
		rec.Side = models.SideHome
	}

	roi := ev / payout
	rec.Stake = round(roi*multiplier, 3)
	rec.ROIPercent = round(roi*100, 2)
	return rec, nil
}

// Calculate sizes a bet with the default unit multiplier
func Calculate(pHome, pAway float64, homeOdds, awayOdds string) (Recommendation, error) {
	return CalculateWithMultiplier(pHome, pAway, homeOdds, awayOdds, DefaultUnitMultiplier)
}

// Calculator wraps Calculate with configuration, logging and metrics
type Calculator struct {
	multiplier float64
	logger     *logger.StakeLogger
}

// NewCalculator creates a calculator. A non-positive multiplier uses the default.
func NewCalculator(multiplier float64, log *logrus.Logger) *Calculator {
	if multiplier <= 0 {
		multiplier = DefaultUnitMultiplier
	}
	if log == nil {
		log = logrus.New()
	}
	return &Calculator{
		multiplier: multiplier,
		logger:     logger.NewStakeLogger(log),
	}
}

// Calculate sizes a bet for one game
func (c *Calculator) Calculate(gamePK int64, pHome, pAway float64, homeOdds, awayOdds string) (Recommendation, error) {
	rec, err := CalculateWithMultiplier(pHome, pAway, homeOdds, awayOdds, c.multiplier)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			c.logger.LogRejectedOdds(gamePK, perr.Input, perr.Reason)
		}
		return Recommendation{}, fmt.Errorf("failed to size stake for game %d: %w", gamePK, err)
	}

	metrics.RecordStakeRecommendation(rec.SideLabel(), rec.ROIPercent)
	c.logger.LogRecommendation(gamePK, pHome, pAway, homeOdds, awayOdds, string(rec.Side),
		rec.HomeEV, rec.AwayEV, rec.Stake, rec.ROIPercent)

	return rec, nil
}
