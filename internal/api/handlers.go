// Package api serves stored feature records and stake sizing over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/mlb-edge/internal/models"
	"github.com/yourusername/mlb-edge/internal/staking"
)

// FeatureGetter loads the feature record of one game
type FeatureGetter interface {
	Get(ctx context.Context, gamePK int64) (*models.FeatureRecord, error)
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	features   FeatureGetter
	calculator *staking.Calculator
	logger     *logrus.Logger
}

// NewHandler creates a new handler
func NewHandler(features FeatureGetter, calculator *staking.Calculator, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	if calculator == nil {
		calculator = staking.NewCalculator(staking.DefaultUnitMultiplier, logger)
	}
	return &Handler{
		features:   features,
		calculator: calculator,
		logger:     logger,
	}
}

// StakeResponse is the body of a stake request
type StakeResponse struct {
	PHome      float64 `json:"p_home"`
	PAway      float64 `json:"p_away"`
	HomeOdds   string  `json:"home_odds"`
	AwayOdds   string  `json:"away_odds"`
	Side       string  `json:"side"`
	Stake      float64 `json:"stake"`
	ROIPercent float64 `json:"expected_roi_percent"`
	HomeEV     float64 `json:"home_ev"`
	AwayEV     float64 `json:"away_ev"`
}

// GetFeatures returns the stored feature record of a game
func (h *Handler) GetFeatures(w http.ResponseWriter, r *http.Request) {
	gamePK, err := strconv.ParseInt(mux.Vars(r)["gamePK"], 10, 64)
	if err != nil || gamePK <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid game id", err)
		return
	}

	rec, err := h.features.Get(r.Context(), gamePK)
	if errors.Is(err, models.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Feature record not found", nil)
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("game_pk", gamePK).Error("Failed to load feature record")
		respondError(w, http.StatusInternalServerError, "Failed to load feature record", err)
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

// GetStake sizes a bet from win probabilities and moneyline odds
func (h *Handler) GetStake(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	pHome, err := parseProbability(q.Get("p_home"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid p_home", err)
		return
	}
	pAway, err := parseProbability(q.Get("p_away"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid p_away", err)
		return
	}

	homeOdds, awayOdds := q.Get("home_odds"), q.Get("away_odds")
	rec, err := h.calculator.Calculate(0, pHome, pAway, homeOdds, awayOdds)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid odds", err)
		return
	}

	respondJSON(w, http.StatusOK, StakeResponse{
		PHome:      pHome,
		PAway:      pAway,
		HomeOdds:   homeOdds,
		AwayOdds:   awayOdds,
		Side:       rec.SideLabel(),
		Stake:      rec.Stake,
		ROIPercent: rec.ROIPercent,
		HomeEV:     rec.HomeEV,
		AwayEV:     rec.AwayEV,
	})
}

var errProbabilityRange = errors.New("probability must be between 0 and 1")

func parseProbability(s string) (float64, error) {
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if p < 0 || p > 1 {
		return 0, errProbabilityRange
	}
	return p, nil
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}
