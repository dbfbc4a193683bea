// Package evaluation settles stake recommendations against final scores and
// reports the resulting profit in units.
package evaluation

import (
	"time"

	"github.com/yourusername/mlb-edge/internal/models"
	"github.com/yourusername/mlb-edge/internal/staking"
)

// SettledBet is one recommendation and its outcome
type SettledBet struct {
	GamePK  int64       `json:"game_id"`
	Date    time.Time   `json:"date"`
	Side    models.Side `json:"side"`
	Outcome models.Side `json:"outcome"`
	Stake   float64     `json:"stake"`
	Payout  float64     `json:"payout"`
	Profit  float64     `json:"profit"`
	// Probability is the model's win probability for Side
	Probability float64 `json:"probability"`
}

// Won reports whether the bet side matched the outcome
func (b SettledBet) Won() bool {
	return b.Side == b.Outcome
}

// Outcome is home when the home team scored more runs, otherwise away
func Outcome(game models.Game) models.Side {
	if game.HomeWon() {
		return models.SideHome
	}
	return models.SideAway
}

// Settle resolves a recommendation. A winning side returns stake times the
// side's payout; a losing side loses the stake.
func Settle(game models.Game, rec staking.Recommendation) SettledBet {
	bet := SettledBet{
		GamePK:  game.GamePK,
		Date:    game.LeagueDate(),
		Side:    rec.Side,
		Outcome: Outcome(game),
		Stake:   rec.Stake,
		Payout:  rec.AwayPayout,
	}
	if rec.Side == models.SideHome {
		bet.Payout = rec.HomePayout
	}
	if bet.Won() {
		bet.Profit = bet.Stake * bet.Payout
	} else {
		bet.Profit = -bet.Stake
	}
	return bet
}

// Ledger tracks running profit in units
type Ledger struct {
	Profit      float64
	Peak        float64
	Bets        []SettledBet
	EquityCurve EquityCurve
}

// NewLedger starts an empty ledger
func NewLedger() *Ledger {
	return &Ledger{
		Bets:        []SettledBet{},
		EquityCurve: EquityCurve{},
	}
}

// Record adds a settled bet and its equity point
func (l *Ledger) Record(bet SettledBet) {
	l.Profit += bet.Profit
	if l.Profit > l.Peak {
		l.Peak = l.Profit
	}
	l.Bets = append(l.Bets, bet)
	l.EquityCurve = append(l.EquityCurve, EquityPoint{
		GamePK:   bet.GamePK,
		Time:     bet.Date,
		Value:    l.Profit,
		Drawdown: l.CurrentDrawdown(),
		PnL:      bet.Profit,
	})
}

// CurrentDrawdown is the distance in units below the running peak
func (l *Ledger) CurrentDrawdown() float64 {
	if l.Peak <= l.Profit {
		return 0
	}
	return l.Peak - l.Profit
}
