package evaluation

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/mlb-edge/internal/features"
	"github.com/yourusername/mlb-edge/internal/ml"
	"github.com/yourusername/mlb-edge/internal/models"
	"github.com/yourusername/mlb-edge/internal/staking"
)

func intPtr(v int) *int { return &v }

func finalGame(pk int64, day, home, away int) models.Game {
	return models.Game{
		GamePK:     pk,
		Season:     2024,
		DateTime:   time.Date(2024, 5, day, 23, 5, 0, 0, time.UTC),
		HomeTeamID: 1,
		AwayTeamID: 2,
		HomeScore:  intPtr(home),
		AwayScore:  intPtr(away),
		Status:     models.GameStatusFinal,
	}
}

func TestSettle(t *testing.T) {
	homeRec := staking.Recommendation{Side: models.SideHome, Stake: 2, HomePayout: 1.5, AwayPayout: 0.5}
	awayRec := staking.Recommendation{Side: models.SideAway, Stake: 1, HomePayout: 1.5, AwayPayout: 0.5}

	tests := []struct {
		name   string
		game   models.Game
		rec    staking.Recommendation
		profit float64
	}{
		{name: "home bet wins", game: finalGame(1, 1, 5, 2), rec: homeRec, profit: 3},
		{name: "home bet loses", game: finalGame(1, 1, 2, 5), rec: homeRec, profit: -2},
		{name: "away bet wins", game: finalGame(1, 1, 2, 5), rec: awayRec, profit: 0.5},
		{name: "tie counts as away", game: finalGame(1, 1, 3, 3), rec: awayRec, profit: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bet := Settle(tt.game, tt.rec)
			assert.InDelta(t, tt.profit, bet.Profit, 1e-9)
		})
	}
}

func TestLedgerTracksDrawdown(t *testing.T) {
	ledger := NewLedger()
	for _, pnl := range []float64{2, -1, -3, 1.5} {
		stake := 1.0
		if pnl < 0 {
			stake = -pnl
		}
		ledger.Record(SettledBet{Side: models.SideHome, Outcome: models.SideHome, Stake: stake, Profit: pnl})
	}

	assert.InDelta(t, -0.5, ledger.Profit, 1e-9)
	assert.InDelta(t, 2.0, ledger.Peak, 1e-9)
	assert.InDelta(t, 2.5, ledger.CurrentDrawdown(), 1e-9)
	assert.InDelta(t, 4.0, ledger.EquityCurve.MaxDrawdown(), 1e-9)
	assert.Len(t, ledger.EquityCurve, 4)
}

func TestBuildReport(t *testing.T) {
	ledger := NewLedger()
	ledger.Record(SettledBet{Side: models.SideHome, Outcome: models.SideHome, Stake: 2, Payout: 1.5, Profit: 3})
	ledger.Record(SettledBet{Side: models.SideAway, Outcome: models.SideHome, Stake: 1, Payout: 0.8, Profit: -1})

	r := BuildReport(2024, ledger, 10)
	assert.Equal(t, 2, r.TotalBets)
	assert.Equal(t, 1, r.Wins)
	assert.Equal(t, 1, r.Losses)
	assert.InDelta(t, 0.5, r.WinRate, 1e-9)
	assert.InDelta(t, 2.0, r.TotalProfit, 1e-9)
	assert.InDelta(t, 20.0, r.ProfitAmount, 1e-9)
	assert.InDelta(t, 3.0, r.TotalStaked, 1e-9)
	assert.InDelta(t, 200.0/3.0, r.ROI, 1e-9)
	assert.InDelta(t, 3.0, r.ProfitFactor, 1e-9)
	assert.InDelta(t, 1.0, r.MaxDrawdown, 1e-9)
}

func TestBuildReportEmpty(t *testing.T) {
	r := BuildReport(2024, NewLedger(), 1)
	assert.Zero(t, r.TotalBets)
	assert.Zero(t, r.WinRate)
	assert.Zero(t, r.ROI)
	assert.Zero(t, r.ProfitFactor)
}

func TestEquityCurveCSV(t *testing.T) {
	curve := EquityCurve{{GamePK: 7, Time: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Value: 1.5, PnL: 1.5}}
	assert.Equal(t, "game_id,time,value,drawdown,pnl\n7,2024-05-01,1.500000,0.000000,1.500000\n", curve.ToCSV())
}

type fakeGames struct{ games []models.Game }

func (f *fakeGames) ListCompleted(context.Context, int) ([]models.Game, error) { return f.games, nil }

type fakeFeatures struct {
	records map[int64]models.FeatureRecord
}

func (f *fakeFeatures) Get(_ context.Context, pk int64) (*models.FeatureRecord, error) {
	rec, ok := f.records[pk]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &rec, nil
}

type fakeOdds struct{ odds map[int64]models.GameOdds }

func (f *fakeOdds) Get(_ context.Context, pk int64) (*models.GameOdds, error) {
	o, ok := f.odds[pk]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &o, nil
}

type fixedPredictor struct{ pHome float64 }

func (p fixedPredictor) Predict(_ context.Context, pk int64, _ features.Vector) (*ml.Prediction, error) {
	return &ml.Prediction{GamePK: pk, PHome: p.pHome, PAway: 1 - p.pHome}, nil
}

func TestEvaluatorSettlesSeason(t *testing.T) {
	feature := models.FeatureRecord{Season: 2024, Features: map[string]float64{
		features.SeasonKey(models.SideHome, "era"): 3.1,
		features.SeasonKey(models.SideAway, "era"): 4.2,
	}}
	games := []models.Game{
		finalGame(1, 1, 5, 2), // home bet wins
		finalGame(2, 2, 1, 4), // home bet loses
		finalGame(3, 3, 6, 0), // no odds
		finalGame(4, 4, 6, 0), // no features
		finalGame(5, 5, 6, 0), // both sides negative EV
		finalGame(6, 6, 6, 0), // malformed odds
	}
	feats := &fakeFeatures{records: map[int64]models.FeatureRecord{}}
	for _, pk := range []int64{1, 2, 3, 5, 6} {
		f := feature
		f.GamePK = pk
		feats.records[pk] = f
	}
	odds := &fakeOdds{odds: map[int64]models.GameOdds{
		1: {GamePK: 1, HomeOdds: "+150", AwayOdds: "-200"},
		2: {GamePK: 2, HomeOdds: "+150", AwayOdds: "-200"},
		4: {GamePK: 4, HomeOdds: "+150", AwayOdds: "-200"},
		5: {GamePK: 5, HomeOdds: "-400", AwayOdds: "+100"},
		6: {GamePK: 6, HomeOdds: "abc", AwayOdds: "-110"},
	}}

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	ev := NewEvaluator(&fakeGames{games: games}, feats, odds, fixedPredictor{pHome: 0.6},
		staking.NewCalculator(staking.DefaultUnitMultiplier, log), features.MethodRaw, 1, log)

	report, ledger, err := ev.Evaluate(context.Background(), 2024)
	require.NoError(t, err)

	// pHome 0.6 at +150: EV 0.5, roi 1/3, stake round(5/3, 3) = 1.667
	assert.Equal(t, 2, report.TotalBets)
	assert.Equal(t, 3, report.GamesEvaluated)
	assert.Equal(t, 1, report.NoBets)
	assert.Equal(t, 3, report.Skipped)
	assert.Equal(t, 1, report.Wins)
	assert.InDelta(t, 1.667*1.5-1.667, report.TotalProfit, 1e-9)
	require.Len(t, ledger.Bets, 2)
	assert.Equal(t, models.SideHome, ledger.Bets[0].Side)
	assert.InDelta(t, 0.6, ledger.Bets[0].Probability, 1e-9)
}
