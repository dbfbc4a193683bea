package staking

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/mlb-edge/internal/models"
)

func TestCalculateWorkedExample(t *testing.T) {
	rec, err := Calculate(0.6, 0.4, "+210", "-250")
	require.NoError(t, err)

	assert.Equal(t, models.SideHome, rec.Side)
	assert.InDelta(t, 2.10, rec.HomePayout, 1e-12)
	assert.InDelta(t, 0.40, rec.AwayPayout, 1e-12)
	assert.InDelta(t, 0.86, rec.HomeEV, 1e-12)
	assert.InDelta(t, -0.44, rec.AwayEV, 1e-12)
	assert.Equal(t, 2.048, rec.Stake)
	assert.Equal(t, 40.95, rec.ROIPercent)
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name      string
		pHome     float64
		pAway     float64
		homeOdds  string
		awayOdds  string
		wantSide  models.Side
		wantStake float64
		wantROI   float64
	}{
		{
			name:  "even odds and even probabilities is no bet",
			pHome: 0.5, pAway: 0.5, homeOdds: "+100", awayOdds: "+100",
			wantSide: SideNone,
		},
		{
			name:  "unfavourable both sides",
			pHome: 0.45, pAway: 0.55, homeOdds: "+110", awayOdds: "-130",
			wantSide: SideNone,
		},
		{
			name:  "away value",
			pHome: 0.4, pAway: 0.6, homeOdds: "-150", awayOdds: "+130",
			// away EV = 0.6*1.3 - 0.4 = 0.38, roi = 0.38/1.3
			wantSide: models.SideAway, wantStake: 1.462, wantROI: 29.23,
		},
		{
			name:  "unsigned odds are accepted",
			pHome: 0.6, pAway: 0.4, homeOdds: "210", awayOdds: "-250",
			wantSide: models.SideHome, wantStake: 2.048, wantROI: 40.95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Calculate(tt.pHome, tt.pAway, tt.homeOdds, tt.awayOdds)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSide, rec.Side)
			assert.Equal(t, tt.wantStake, rec.Stake)
			assert.Equal(t, tt.wantROI, rec.ROIPercent)
		})
	}
}

func TestCalculateTieGoesAway(t *testing.T) {
	rec, err := Calculate(0.6, 0.6, "+200", "+200")
	require.NoError(t, err)

	assert.InDelta(t, rec.HomeEV, rec.AwayEV, 0)
	assert.Equal(t, models.SideAway, rec.Side)
	assert.True(t, rec.IsBet())
}

func TestCalculateParseErrors(t *testing.T) {
	for _, odds := range []string{"", "abc", "+1.5", "--120", "+", "0", "+-150", "-+150", "++150", "-"} {
		t.Run(odds, func(t *testing.T) {
			_, err := Calculate(0.5, 0.5, odds, "+100")
			require.Error(t, err)
			var pe *ParseError
			assert.ErrorAs(t, err, &pe)
		})
	}
}

func TestParseMoneyline(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"+150", 150},
		{"-120", -120},
		{"150", 150},
		{" -105 ", -105},
		{"-0150", -150},
	}
	for _, tt := range tests {
		got, err := ParseMoneyline(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestValidateOddsInput(t *testing.T) {
	assert.NoError(t, ValidateOddsInput("+150", 4))
	assert.NoError(t, ValidateOddsInput("-1200", 4))
	assert.Error(t, ValidateOddsInput("+-150", 4))
	assert.Error(t, ValidateOddsInput("150", 4))
	assert.Error(t, ValidateOddsInput("+99", 4))
	assert.Error(t, ValidateOddsInput("+1x0", 4))
}

func TestMoneylineToPayout(t *testing.T) {
	assert.InDelta(t, 1.5, MoneylineToPayout(150), 1e-12)
	assert.InDelta(t, 1.0, MoneylineToPayout(100), 1e-12)
	assert.InDelta(t, 0.8, MoneylineToPayout(-125), 1e-12)
	assert.InDelta(t, 0.4, MoneylineToPayout(-250), 1e-12)
}

func TestPayoutToMoneyline(t *testing.T) {
	for _, odds := range []int{150, 100, -125, -250} {
		got, err := PayoutToMoneyline(MoneylineToPayout(odds))
		require.NoError(t, err)
		assert.Equal(t, odds, got)
	}
	_, err := PayoutToMoneyline(0)
	assert.Error(t, err)
}

func TestCalculatorUsesMultiplier(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	c := NewCalculator(10, logger)
	rec, err := c.Calculate(1, 0.6, 0.4, "+210", "-250")
	require.NoError(t, err)
	assert.Equal(t, 4.095, rec.Stake)
	assert.Equal(t, 40.95, rec.ROIPercent)

	_, err = c.Calculate(2, 0.6, 0.4, "+2x0", "-250")
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)

	assert.Equal(t, DefaultUnitMultiplier, NewCalculator(0, nil).multiplier)
}
