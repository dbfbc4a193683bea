package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"
)

// MonteCarloConfig configures the bankroll simulation
type MonteCarloConfig struct {
	Iterations      int
	Seed            int64
	InitialBankroll float64
}

// MonteCarloResult summarizes the simulated end-of-season bankrolls
type MonteCarloResult struct {
	Iterations          int                `json:"iterations"`
	MeanReturn          float64            `json:"mean_return"`
	StdReturn           float64            `json:"std_return"`
	VaR95               float64            `json:"var_95"`
	VaR99               float64            `json:"var_99"`
	ProbabilityOfProfit float64            `json:"probability_of_profit"`
	ProbabilityOfRuin   float64            `json:"probability_of_ruin"`
	ConfidenceIntervals map[string]float64 `json:"confidence_intervals"`
	Distribution        []float64          `json:"-"`
}

// RunMonteCarlo replays the settled bets with outcomes redrawn from each bet's
// win probability. Stakes and payouts are kept. A bet without a probability
// uses the break-even probability of its payout.
func RunMonteCarlo(ctx context.Context, bets []SettledBet, cfg MonteCarloConfig) (MonteCarloResult, error) {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1000
	}
	if cfg.InitialBankroll <= 0 {
		cfg.InitialBankroll = 100
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(seed))
	distribution := make([]float64, cfg.Iterations)

	for i := 0; i < cfg.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return MonteCarloResult{}, err
		}
		bankroll := cfg.InitialBankroll
		for _, bet := range bets {
			if rng.Float64() < winProbability(bet) {
				bankroll += bet.Stake * bet.Payout
			} else {
				bankroll -= bet.Stake
			}
			if bankroll <= 0 {
				bankroll = 0
				break
			}
		}
		distribution[i] = bankroll
	}

	sorted := append([]float64{}, distribution...)
	sort.Float64s(sorted)

	initial := cfg.InitialBankroll
	mean, std := meanStd(sorted)
	return MonteCarloResult{
		Iterations:          cfg.Iterations,
		MeanReturn:          (mean - initial) / initial,
		StdReturn:           std / initial,
		VaR95:               (percentile(sorted, 0.05) - initial) / initial,
		VaR99:               (percentile(sorted, 0.01) - initial) / initial,
		ProbabilityOfProfit: fractionWhere(sorted, func(v float64) bool { return v > initial }),
		ProbabilityOfRuin:   fractionWhere(sorted, func(v float64) bool { return v <= 0 }),
		ConfidenceIntervals: confidenceIntervals(sorted, []float64{0.9, 0.95, 0.99}),
		Distribution:        distribution,
	}, nil
}

// ToJSON exports the result without the raw distribution
func (m MonteCarloResult) ToJSON() string {
	data, _ := json.Marshal(m)
	return string(data)
}

func winProbability(bet SettledBet) float64 {
	if bet.Probability > 0 {
		return bet.Probability
	}
	if bet.Payout <= 0 {
		return 0
	}
	return 1 / (1 + bet.Payout)
}

// confidenceIntervals returns the width of each central interval
func confidenceIntervals(sorted []float64, levels []float64) map[string]float64 {
	results := make(map[string]float64, len(levels))
	for _, level := range levels {
		p := (1.0 - level) / 2.0
		results[fmt.Sprintf("%.0f%%", level*100)] = percentile(sorted, 1.0-p) - percentile(sorted, p)
	}
	return results
}

func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

// percentile expects sorted input
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Floor(p * float64(len(sorted)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func fractionWhere(values []float64, pred func(float64) bool) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if pred(v) {
			count++
		}
	}
	return float64(count) / float64(len(values))
}
