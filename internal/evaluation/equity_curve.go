package evaluation

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// EquityPoint is the running profit after one bet
type EquityPoint struct {
	GamePK   int64     `json:"game_id"`
	Time     time.Time `json:"time"`
	Value    float64   `json:"value"`
	Drawdown float64   `json:"drawdown"`
	PnL      float64   `json:"pnl"`
}

// EquityCurve is the running profit series of an evaluation
type EquityCurve []EquityPoint

// MaxDrawdown returns the largest peak to trough fall in units. The curve
// starts from zero profit.
func (e EquityCurve) MaxDrawdown() float64 {
	maxDD := 0.0
	peak := 0.0
	for _, p := range e {
		if p.Value > peak {
			peak = p.Value
		}
		if dd := peak - p.Value; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// DailyPnL sums profit per league day
func (e EquityCurve) DailyPnL() map[time.Time]float64 {
	out := make(map[time.Time]float64)
	for _, p := range e {
		out[p.Time] += p.PnL
	}
	return out
}

// ToCSV exports equity curve to CSV string
func (e EquityCurve) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("game_id,time,value,drawdown,pnl\n")
	for _, p := range e {
		buf.WriteString(strconv.FormatInt(p.GamePK, 10))
		buf.WriteString(",")
		buf.WriteString(p.Time.Format("2006-01-02"))
		buf.WriteString(",")
		buf.WriteString(formatFloat(p.Value))
		buf.WriteString(",")
		buf.WriteString(formatFloat(p.Drawdown))
		buf.WriteString(",")
		buf.WriteString(formatFloat(p.PnL))
		buf.WriteString("\n")
	}
	return buf.String()
}

// ToJSON exports equity curve to JSON string
func (e EquityCurve) ToJSON() string {
	data, _ := json.Marshal(e)
	return string(data)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
