package evaluation

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/mlb-edge/internal/features"
	"github.com/yourusername/mlb-edge/internal/ml"
	"github.com/yourusername/mlb-edge/internal/models"
	"github.com/yourusername/mlb-edge/internal/staking"
)

// GameLister lists completed games of a season
type GameLister interface {
	ListCompleted(ctx context.Context, season int) ([]models.Game, error)
}

// FeatureGetter loads a game's feature record
type FeatureGetter interface {
	Get(ctx context.Context, gamePK int64) (*models.FeatureRecord, error)
}

// OddsGetter loads a game's moneyline odds
type OddsGetter interface {
	Get(ctx context.Context, gamePK int64) (*models.GameOdds, error)
}

// Evaluator replays recommendations over completed games
type Evaluator struct {
	games      GameLister
	features   FeatureGetter
	odds       OddsGetter
	predictor  ml.Predictor
	calculator *staking.Calculator
	method     features.Method
	unitSize   float64
	logger     *logrus.Entry
}

// NewEvaluator creates an evaluator
func NewEvaluator(games GameLister, feats FeatureGetter, odds OddsGetter, predictor ml.Predictor,
	calculator *staking.Calculator, method features.Method, unitSize float64, log *logrus.Logger) *Evaluator {
	if log == nil {
		log = logrus.New()
	}
	if unitSize <= 0 {
		unitSize = 1
	}
	return &Evaluator{
		games:      games,
		features:   feats,
		odds:       odds,
		predictor:  predictor,
		calculator: calculator,
		method:     method,
		unitSize:   unitSize,
		logger:     log.WithField("component", "evaluation"),
	}
}

// Evaluate settles a recommendation for every completed game of the season
// that has both a feature record and odds. Games missing either, or carrying
// malformed odds, are skipped.
func (e *Evaluator) Evaluate(ctx context.Context, season int) (*Report, *Ledger, error) {
	games, err := e.games.ListCompleted(ctx, season)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load completed games: %w", err)
	}

	ledger := NewLedger()
	evaluated, noBets, skipped := 0, 0, 0

	for _, game := range games {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		rec, pred, err := e.recommend(ctx, game)
		var parseErr *staking.ParseError
		if errors.Is(err, models.ErrNotFound) || errors.As(err, &parseErr) {
			skipped++
			continue
		}
		if err != nil {
			return nil, nil, err
		}

		evaluated++
		if !rec.IsBet() {
			noBets++
			continue
		}

		bet := Settle(game, rec)
		bet.Probability = pred.PAway
		if bet.Side == models.SideHome {
			bet.Probability = pred.PHome
		}
		ledger.Record(bet)
		e.logger.WithFields(logrus.Fields{
			"game_id": game.GamePK,
			"side":    bet.Side,
			"outcome": bet.Outcome,
			"stake":   bet.Stake,
			"profit":  bet.Profit,
			"running": ledger.Profit,
		}).Debug("Bet settled")
	}

	report := BuildReport(season, ledger, e.unitSize)
	report.GamesEvaluated = evaluated
	report.NoBets = noBets
	report.Skipped = skipped

	e.logger.WithFields(logrus.Fields{
		"season":       season,
		"bets":         report.TotalBets,
		"wins":         report.Wins,
		"total_profit": report.TotalProfit,
		"roi_percent":  report.ROI,
		"max_drawdown": report.MaxDrawdown,
	}).Info("Evaluation complete")

	return &report, ledger, nil
}

func (e *Evaluator) recommend(ctx context.Context, game models.Game) (staking.Recommendation, *ml.Prediction, error) {
	fr, err := e.features.Get(ctx, game.GamePK)
	if err != nil {
		return staking.Recommendation{}, nil, err
	}
	odds, err := e.odds.Get(ctx, game.GamePK)
	if err != nil {
		return staking.Recommendation{}, nil, err
	}

	inputs, err := features.ModelInputs(*fr, e.method)
	if err != nil {
		return staking.Recommendation{}, nil, fmt.Errorf("failed to build model inputs for game %d: %w", game.GamePK, err)
	}
	pred, err := e.predictor.Predict(ctx, game.GamePK, inputs)
	if err != nil {
		return staking.Recommendation{}, nil, fmt.Errorf("failed to predict game %d: %w", game.GamePK, err)
	}
	rec, err := e.calculator.Calculate(game.GamePK, pred.PHome, pred.PAway, odds.HomeOdds, odds.AwayOdds)
	if err != nil {
		return staking.Recommendation{}, nil, err
	}
	return rec, pred, nil
}
