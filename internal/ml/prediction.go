package ml

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/yourusername/mlb-edge/internal/features"
)

// probabilityTolerance bounds how far p_home + p_away may drift from 1
const probabilityTolerance = 1e-3

// Prediction is the model's win probabilities for one game
type Prediction struct {
	GamePK      int64     `json:"game_id"`
	PHome       float64   `json:"p_home"`
	PAway       float64   `json:"p_away"`
	Method      string    `json:"feature_method"`
	PredictedAt time.Time `json:"predicted_at"`
}

// Predictor turns model inputs into win probabilities
type Predictor interface {
	Predict(ctx context.Context, gamePK int64, inputs features.Vector) (*Prediction, error)
}

// Validate checks that both probabilities are in [0,1] and sum to one
func (p *Prediction) Validate() error {
	for _, v := range []float64{p.PHome, p.PAway} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: probability %v out of range", ErrInvalidPrediction, v)
		}
	}
	if math.Abs(p.PHome+p.PAway-1) > probabilityTolerance {
		return fmt.Errorf("%w: probabilities sum to %v", ErrInvalidPrediction, p.PHome+p.PAway)
	}
	return nil
}
