package evaluation

import (
	"encoding/json"
	"math"
)

// Report summarizes an evaluation in units
type Report struct {
	Season         int     `json:"season"`
	GamesEvaluated int     `json:"games_evaluated"`
	NoBets         int     `json:"no_bets"`
	Skipped        int     `json:"skipped"`
	TotalBets      int     `json:"total_bets"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	WinRate        float64 `json:"win_rate"`
	TotalStaked    float64 `json:"total_staked"`
	TotalProfit    float64 `json:"total_profit"`
	ProfitAmount   float64 `json:"profit_amount"`
	ROI            float64 `json:"roi_percent"`
	MaxDrawdown    float64 `json:"max_drawdown"`
	ProfitFactor   float64 `json:"profit_factor"`
	LargestWin     float64 `json:"largest_win"`
	LargestLoss    float64 `json:"largest_loss"`
}

// BuildReport derives the report from a ledger. unitSize converts units into
// a currency amount.
func BuildReport(season int, ledger *Ledger, unitSize float64) Report {
	r := Report{Season: season}
	if ledger == nil {
		return r
	}

	r.TotalBets = len(ledger.Bets)
	r.TotalProfit = ledger.Profit
	r.ProfitAmount = ledger.Profit * unitSize
	r.MaxDrawdown = ledger.EquityCurve.MaxDrawdown()

	grossProfit, grossLoss := 0.0, 0.0
	for _, bet := range ledger.Bets {
		r.TotalStaked += bet.Stake
		if bet.Won() {
			r.Wins++
			grossProfit += bet.Profit
			r.LargestWin = math.Max(r.LargestWin, bet.Profit)
		} else {
			r.Losses++
			grossLoss += math.Abs(bet.Profit)
			r.LargestLoss = math.Min(r.LargestLoss, bet.Profit)
		}
	}

	if r.TotalBets > 0 {
		r.WinRate = float64(r.Wins) / float64(r.TotalBets)
	}
	if r.TotalStaked > 0 {
		r.ROI = r.TotalProfit / r.TotalStaked * 100
	}
	r.ProfitFactor = profitFactor(grossProfit, grossLoss)
	return r
}

// profitFactor caps an all-winning record at 999
func profitFactor(grossProfit, grossLoss float64) float64 {
	if grossLoss == 0 {
		if grossProfit > 0 {
			return 999
		}
		return 0
	}
	return grossProfit / grossLoss
}

// ToJSON exports the report to JSON
func (r Report) ToJSON() string {
	data, _ := json.Marshal(r)
	return string(data)
}
