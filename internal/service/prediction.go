package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/mlb-edge/internal/features"
	"github.com/yourusername/mlb-edge/internal/logger"
	"github.com/yourusername/mlb-edge/internal/ml"
	"github.com/yourusername/mlb-edge/internal/models"
	"github.com/yourusername/mlb-edge/internal/staking"
)

// OddsSource supplies the moneylines of a game, from storage or a prompt
type OddsSource interface {
	OddsFor(ctx context.Context, game models.Game) (*models.GameOdds, error)
}

// GameLister lists the games of a league day
type GameLister interface {
	ListByDate(ctx context.Context, date time.Time) ([]models.Game, error)
}

// FeatureGetter loads a game's feature record
type FeatureGetter interface {
	Get(ctx context.Context, gamePK int64) (*models.FeatureRecord, error)
}

// GamePrediction is the model output and stake for one game
type GamePrediction struct {
	Game           models.Game            `json:"game"`
	Prediction     *ml.Prediction         `json:"prediction"`
	Odds           *models.GameOdds       `json:"odds,omitempty"`
	Recommendation staking.Recommendation `json:"recommendation"`
	DoubleHeader   bool                   `json:"double_header"`
}

// PredictionService produces the daily recommendations
type PredictionService struct {
	games      GameLister
	features   FeatureGetter
	predictor  ml.Predictor
	calculator *staking.Calculator
	method     features.Method
	logger     *logger.MLLogger
}

// NewPredictionService creates a prediction service
func NewPredictionService(games GameLister, feats FeatureGetter, predictor ml.Predictor,
	calculator *staking.Calculator, method features.Method, log *logrus.Logger) *PredictionService {
	if log == nil {
		log = logrus.New()
	}
	return &PredictionService{
		games:      games,
		features:   feats,
		predictor:  predictor,
		calculator: calculator,
		method:     method,
		logger:     logger.NewMLLogger(log),
	}
}

// PredictDay predicts every game on the league day of at that has a feature
// record. A game is flagged as the second half of a double header when its
// home team already played earlier that day.
func (s *PredictionService) PredictDay(ctx context.Context, at time.Time, odds OddsSource) ([]GamePrediction, error) {
	games, err := s.games.ListByDate(ctx, models.LeagueDate(at))
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	seenHome := make(map[int]bool, len(games))
	out := make([]GamePrediction, 0, len(games))

	for _, game := range games {
		fr, err := s.features.Get(ctx, game.GamePK)
		if errors.Is(err, models.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load features for game %d: %w", game.GamePK, err)
		}

		// only games that get a prediction count toward a double header
		doubleHeader := seenHome[game.HomeTeamID]
		seenHome[game.HomeTeamID] = true

		gp, err := s.predictGame(ctx, game, *fr, odds)
		if err != nil {
			return nil, err
		}
		gp.DoubleHeader = doubleHeader
		s.logger.LogPrediction(game.GamePK, gp.Prediction.PHome, gp.Prediction.PAway, doubleHeader)
		out = append(out, gp)
	}
	return out, nil
}

func (s *PredictionService) predictGame(ctx context.Context, game models.Game, fr models.FeatureRecord, odds OddsSource) (GamePrediction, error) {
	inputs, err := features.ModelInputs(fr, s.method)
	if err != nil {
		return GamePrediction{}, fmt.Errorf("failed to build model inputs for game %d: %w", game.GamePK, err)
	}
	pred, err := s.predictor.Predict(ctx, game.GamePK, inputs)
	if err != nil {
		return GamePrediction{}, fmt.Errorf("failed to predict game %d: %w", game.GamePK, err)
	}

	gp := GamePrediction{Game: game, Prediction: pred}
	if odds == nil {
		return gp, nil
	}

	o, err := odds.OddsFor(ctx, game)
	if errors.Is(err, models.ErrNotFound) {
		return gp, nil
	}
	if err != nil {
		return GamePrediction{}, fmt.Errorf("failed to get odds for game %d: %w", game.GamePK, err)
	}
	rec, err := s.calculator.Calculate(game.GamePK, pred.PHome, pred.PAway, o.HomeOdds, o.AwayOdds)
	if err != nil {
		return GamePrediction{}, err
	}
	gp.Odds = o
	gp.Recommendation = rec
	return gp, nil
}

// StoredOdds reads odds recorded in the database
type StoredOdds struct {
	Repo interface {
		Get(ctx context.Context, gamePK int64) (*models.GameOdds, error)
	}
}

// OddsFor implements OddsSource
func (s StoredOdds) OddsFor(ctx context.Context, game models.Game) (*models.GameOdds, error) {
	return s.Repo.Get(ctx, game.GamePK)
}
