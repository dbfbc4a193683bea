package replay

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/mlb-edge/internal/boxscore"
	"github.com/yourusername/mlb-edge/internal/events"
	"github.com/yourusername/mlb-edge/internal/features"
	"github.com/yourusername/mlb-edge/internal/models"
	"github.com/yourusername/mlb-edge/internal/repository"
)

type fakeSchedule struct {
	games map[int][]models.Game
}

func (s *fakeSchedule) GamesForSeason(_ context.Context, season int, _ bool, _ time.Time) ([]models.Game, error) {
	return s.games[season], nil
}

type fakeFetcher struct {
	mu      sync.Mutex
	records map[int64]models.BoxScoreRecord
	failOn  int64
	calls   map[int64]int
}

func (f *fakeFetcher) FetchBoxScore(_ context.Context, gamePK int64) (boxscore.RawBoxScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[int64]int{}
	}
	f.calls[gamePK]++
	if gamePK == f.failOn {
		return boxscore.RawBoxScore{}, errors.New("connection reset")
	}
	return boxscore.Reconstruct(f.records[gamePK])
}

func (f *fakeFetcher) callCount(gamePK int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[gamePK]
}

type fakeBoxScores struct {
	records map[int64]models.BoxScoreRecord
}

func (r *fakeBoxScores) Exists(_ context.Context, gamePK int64) (bool, error) {
	_, ok := r.records[gamePK]
	return ok, nil
}

func (r *fakeBoxScores) Get(_ context.Context, gamePK int64) (*models.BoxScoreRecord, error) {
	rec, ok := r.records[gamePK]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &rec, nil
}

func (r *fakeBoxScores) Store(_ context.Context, rec *models.BoxScoreRecord) error {
	if _, ok := r.records[rec.GamePK]; !ok {
		r.records[rec.GamePK] = *rec
	}
	return nil
}

func (r *fakeBoxScores) Count(_ context.Context) (int64, error) {
	return int64(len(r.records)), nil
}

func (r *fakeBoxScores) WithTx(pgx.Tx) repository.BoxScoreRepository { return r }

type fakeFeatures struct {
	records map[int64]models.FeatureRecord
	upserts int
}

func (r *fakeFeatures) Upsert(_ context.Context, rec *models.FeatureRecord) error {
	r.upserts++
	r.records[rec.GamePK] = *rec
	return nil
}

func (r *fakeFeatures) Get(_ context.Context, gamePK int64) (*models.FeatureRecord, error) {
	rec, ok := r.records[gamePK]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &rec, nil
}

func (r *fakeFeatures) ListForSeason(_ context.Context, season int) ([]*models.FeatureRecord, error) {
	var out []*models.FeatureRecord
	for _, rec := range r.records {
		if rec.Season == season {
			rec := rec
			out = append(out, &rec)
		}
	}
	return out, nil
}

func (r *fakeFeatures) ListForDate(context.Context, time.Time) ([]*models.FeatureRecord, error) {
	return nil, nil
}

func (r *fakeFeatures) WithTx(pgx.Tx) repository.FeatureRepository { return r }

// fakeTx restores both stores when the function fails
type fakeTx struct {
	boxes *fakeBoxScores
	feats *fakeFeatures
}

func (t *fakeTx) WithTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	boxSnap := make(map[int64]models.BoxScoreRecord, len(t.boxes.records))
	for k, v := range t.boxes.records {
		boxSnap[k] = v
	}
	featSnap := make(map[int64]models.FeatureRecord, len(t.feats.records))
	for k, v := range t.feats.records {
		featSnap[k] = v
	}
	if err := fn(nil); err != nil {
		t.boxes.records = boxSnap
		t.feats.records = featSnap
		return err
	}
	return nil
}

type fakeRuns struct {
	runs map[uuid.UUID]models.ReplayRun
}

func (r *fakeRuns) Create(_ context.Context, run *models.ReplayRun) error {
	r.runs[run.ID] = *run
	return nil
}

func (r *fakeRuns) Update(_ context.Context, run *models.ReplayRun) error {
	r.runs[run.ID] = *run
	return nil
}

func (r *fakeRuns) GetByID(_ context.Context, id uuid.UUID) (*models.ReplayRun, error) {
	run, ok := r.runs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &run, nil
}

func (r *fakeRuns) ListRecent(context.Context, int) ([]*models.ReplayRun, error) {
	return nil, nil
}

type fakePublisher struct {
	summaries []events.SeasonSummary
}

func (p *fakePublisher) PublishSeasonSummary(_ context.Context, s events.SeasonSummary) error {
	p.summaries = append(p.summaries, s)
	return nil
}

func (p *fakePublisher) Close() {}

type harness struct {
	schedule  *fakeSchedule
	fetcher   *fakeFetcher
	boxes     *fakeBoxScores
	feats     *fakeFeatures
	runs      *fakeRuns
	publisher *fakePublisher
	hot       boxscore.HotCache
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

var fixedNow = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func newHarness() *harness {
	return &harness{
		schedule:  &fakeSchedule{games: map[int][]models.Game{}},
		fetcher:   &fakeFetcher{records: map[int64]models.BoxScoreRecord{}},
		boxes:     &fakeBoxScores{records: map[int64]models.BoxScoreRecord{}},
		feats:     &fakeFeatures{records: map[int64]models.FeatureRecord{}},
		runs:      &fakeRuns{runs: map[uuid.UUID]models.ReplayRun{}},
		publisher: &fakePublisher{},
	}
}

// addGame schedules a game and registers its box score with the fetcher
func (h *harness) addGame(season int, pk int64, day int, home, away, homeRuns, awayRuns int) {
	h.schedule.games[season] = append(h.schedule.games[season], models.Game{
		GamePK:     pk,
		Season:     season,
		GameType:   models.GameTypeRegular,
		DateTime:   time.Date(season, 4, day, 23, 0, 0, 0, time.UTC),
		HomeTeamID: home,
		AwayTeamID: away,
		Status:     models.GameStatusFinal,
	})
	h.fetcher.records[pk] = models.BoxScoreRecord{
		GamePK: pk,
		Home:   teamLine(home, homeRuns),
		Away:   teamLine(away, awayRuns),
	}
}

func teamLine(teamID, runs int) models.TeamBoxScore {
	return models.TeamBoxScore{
		TeamID:           teamID,
		Runs:             runs,
		Hits:             runs + 4,
		AtBats:           33,
		PlateAppearances: 37,
		Walks:            3,
		TotalBases:       runs + 8,
		Strikeouts:       8,
		InningsPitched:   9,
		PitchingHits:     7,
		PitchingAtBats:   32,
		EarnedRuns:       2,
	}
}

func (h *harness) engine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	policy := boxscore.Policy{CurrentSeason: cfg.CurrentSeason, MinAge: cfg.CacheMinAge, Now: func() time.Time { return fixedNow }}
	cache := boxscore.NewCacheAdapter(h.fetcher, h.boxes, h.hot, policy, quietLogger())
	eng, err := NewEngine(cfg, Dependencies{
		Schedule:  h.schedule,
		Tx:        &fakeTx{boxes: h.boxes, feats: h.feats},
		Cache:     cache,
		BoxScores: h.boxes,
		Features:  h.feats,
		Runs:      h.runs,
		Publisher: h.publisher,
		Now:       func() time.Time { return fixedNow },
	}, quietLogger())
	require.NoError(t, err)
	return eng
}

func testConfig(window int) Config {
	return Config{RollingWindow: window, CurrentSeason: 2025, CacheMinAge: boxscore.DefaultMinCacheAge}
}

// fourGameSeries has teams 1 and 2 meet four times; the last game is tied
func fourGameSeries(h *harness, season int) {
	h.addGame(season, 101, 1, 1, 2, 5, 3)
	h.addGame(season, 102, 2, 2, 1, 4, 2)
	h.addGame(season, 103, 3, 1, 2, 6, 1)
	h.addGame(season, 104, 4, 2, 1, 3, 3)
}

func TestRunSeasonEmitsOnlyEligibleGames(t *testing.T) {
	h := newHarness()
	fourGameSeries(h, 2023)
	eng := h.engine(t, testConfig(2))

	res, err := eng.RunSeason(context.Background(), 2023)
	require.NoError(t, err)

	assert.Equal(t, 4, res.GamesProcessed)
	assert.Equal(t, 1, res.FeaturesEmitted)
	assert.Equal(t, int64(104), res.LastGamePK)
	require.Len(t, h.feats.records, 1)
	_, ok := h.feats.records[103]
	assert.True(t, ok, "game 103 is the only game with two prior games per team and a winner")
}

func TestRunSeasonUsesOnlyPriorGames(t *testing.T) {
	h := newHarness()
	fourGameSeries(h, 2023)
	eng := h.engine(t, testConfig(2))

	_, err := eng.RunSeason(context.Background(), 2023)
	require.NoError(t, err)

	rec := h.feats.records[103]
	// team 1 scored 5 then 2 before game 103, team 2 scored 3 then 4
	homeRuns, err := rec.Value(features.SeasonKey(models.SideHome, "runs_scored"))
	require.NoError(t, err)
	assert.InDelta(t, 3.5, homeRuns, 1e-9)
	awayRuns, err := rec.Value(features.SeasonKey(models.SideAway, "runs_scored"))
	require.NoError(t, err)
	assert.InDelta(t, 3.5, awayRuns, 1e-9)
	homeGiven, err := rec.Value(features.RollingKey(models.SideHome, "runs_given"))
	require.NoError(t, err)
	assert.InDelta(t, 3.5, homeGiven, 1e-9)

	assert.Equal(t, 1, rec.Label())
	assert.Equal(t, 1, rec.HomeTeamID())
	assert.Equal(t, 2, rec.AwayTeamID())
}

func TestRunSeasonFeaturesIgnoreLaterGames(t *testing.T) {
	for _, prefetch := range []bool{false, true} {
		cfg := testConfig(2)
		cfg.Prefetch = prefetch

		full := newHarness()
		fourGameSeries(full, 2023)
		_, err := full.engine(t, cfg).RunSeason(context.Background(), 2023)
		require.NoError(t, err)

		truncated := newHarness()
		fourGameSeries(truncated, 2023)
		truncated.schedule.games[2023] = truncated.schedule.games[2023][:3]
		_, err = truncated.engine(t, cfg).RunSeason(context.Background(), 2023)
		require.NoError(t, err)

		require.Contains(t, full.feats.records, int64(103))
		require.Contains(t, truncated.feats.records, int64(103))
		assert.Equal(t, truncated.feats.records[103].Features, full.feats.records[103].Features,
			"prefetch=%v: game 104 must not change the record of game 103", prefetch)
	}
}

func TestRunSeasonCountsRepeatedGameOnce(t *testing.T) {
	baseline := newHarness()
	fourGameSeries(baseline, 2023)
	_, err := baseline.engine(t, testConfig(2)).RunSeason(context.Background(), 2023)
	require.NoError(t, err)

	h := newHarness()
	fourGameSeries(h, 2023)
	games := h.schedule.games[2023]
	h.schedule.games[2023] = []models.Game{games[0], games[1], games[1], games[2], games[3]}
	eng := h.engine(t, testConfig(2))

	res, err := eng.RunSeason(context.Background(), 2023)
	require.NoError(t, err)

	assert.Equal(t, 4, res.GamesProcessed)
	assert.Equal(t, 1, res.FeaturesEmitted)
	assert.Equal(t, int64(104), res.LastGamePK)
	require.Contains(t, h.feats.records, int64(103))
	assert.Equal(t, baseline.feats.records[103].Features, h.feats.records[103].Features)
	assert.Equal(t, 1, h.fetcher.callCount(102))
}

func TestRunSeasonRollingWindowIsBounded(t *testing.T) {
	h := newHarness()
	h.addGame(2023, 1, 1, 1, 2, 10, 0)
	h.addGame(2023, 2, 2, 1, 2, 1, 0)
	h.addGame(2023, 3, 3, 1, 2, 1, 0)
	h.addGame(2023, 4, 4, 1, 2, 2, 1)
	eng := h.engine(t, testConfig(2))

	_, err := eng.RunSeason(context.Background(), 2023)
	require.NoError(t, err)

	rec := h.feats.records[4]
	rolling, err := rec.Value(features.RollingKey(models.SideHome, "runs_scored"))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, rolling, 1e-9, "the 10-run opener has left the window")
	season, err := rec.Value(features.SeasonKey(models.SideHome, "runs_scored"))
	require.NoError(t, err)
	assert.InDelta(t, 4.0, season, 1e-9)
}

func TestRunSeasonIsIdempotent(t *testing.T) {
	h := newHarness()
	fourGameSeries(h, 2023)
	eng := h.engine(t, testConfig(2))

	first, err := eng.RunSeason(context.Background(), 2023)
	require.NoError(t, err)
	before := h.feats.records[103]

	second, err := eng.RunSeason(context.Background(), 2023)
	require.NoError(t, err)

	assert.Equal(t, first.FeaturesEmitted, second.FeaturesEmitted)
	assert.Len(t, h.feats.records, 1)
	assert.Equal(t, before.Features, h.feats.records[103].Features)
	for pk := int64(101); pk <= 104; pk++ {
		assert.Equal(t, 1, h.fetcher.callCount(pk), "game %d fetched once, then served from the store", pk)
	}
	assert.Len(t, h.boxes.records, 4)
}

func TestRunSeasonRollsBackOnFetchError(t *testing.T) {
	h := newHarness()
	fourGameSeries(h, 2023)
	h.fetcher.failOn = 103
	eng := h.engine(t, testConfig(2))

	res, err := eng.RunSeason(context.Background(), 2023)
	require.Error(t, err)
	assert.Nil(t, res)

	var seasonErr *SeasonError
	require.ErrorAs(t, err, &seasonErr)
	assert.Equal(t, 2023, seasonErr.Season)
	assert.Equal(t, int64(102), seasonErr.LastGamePK)
	assert.Contains(t, err.Error(), "season 2023")
	assert.Contains(t, err.Error(), "102")

	assert.Empty(t, h.boxes.records)
	assert.Empty(t, h.feats.records)

	require.Len(t, h.publisher.summaries, 1)
	assert.Equal(t, string(models.ReplayStatusFailed), h.publisher.summaries[0].Status)
	require.Len(t, h.runs.runs, 1)
	for _, run := range h.runs.runs {
		assert.Equal(t, models.ReplayStatusFailed, run.Status)
		require.NotNil(t, run.ErrorMessage)
	}
}

func TestRerunAfterRollbackRestoresHotCachedBoxScores(t *testing.T) {
	h := newHarness()
	h.hot = boxscore.NewMemoryCache(time.Hour)
	fourGameSeries(h, 2023)
	h.fetcher.failOn = 103
	eng := h.engine(t, testConfig(2))

	_, err := eng.RunSeason(context.Background(), 2023)
	require.Error(t, err)
	assert.Empty(t, h.boxes.records)

	h.fetcher.failOn = 0
	res, err := eng.RunSeason(context.Background(), 2023)
	require.NoError(t, err)
	assert.Equal(t, 1, res.FeaturesEmitted)

	for pk := int64(101); pk <= 104; pk++ {
		assert.Contains(t, h.boxes.records, pk, "game %d persisted after the rerun", pk)
	}
	assert.Equal(t, 1, h.fetcher.callCount(101), "game 101 served from the hot layer on the rerun")
}

func TestRunSeasonRejectsMismatchedBoxScore(t *testing.T) {
	h := newHarness()
	fourGameSeries(h, 2023)
	rec := h.fetcher.records[102]
	rec.Home.TeamID = 99
	h.fetcher.records[102] = rec
	eng := h.engine(t, testConfig(2))

	_, err := eng.RunSeason(context.Background(), 2023)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTeamMismatch)

	var seasonErr *SeasonError
	require.ErrorAs(t, err, &seasonErr)
	assert.Equal(t, int64(101), seasonErr.LastGamePK)
}

func TestRunResetsRollingStateBetweenSeasons(t *testing.T) {
	h := newHarness()
	fourGameSeries(h, 2023)
	h.addGame(2024, 201, 1, 1, 2, 5, 3)
	h.addGame(2024, 202, 2, 2, 1, 4, 2)
	h.addGame(2024, 203, 3, 1, 2, 6, 1)
	eng := h.engine(t, testConfig(2))

	results, err := eng.Run(context.Background(), []int{2023, 2024})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[1].FeaturesEmitted, "season counts restart, so the second season also waits for two games")
	assert.Nil(t, eng.rolling)
	assert.Len(t, h.publisher.summaries, 2)
}

func TestCarriedRollingStateSurvivesFailedSeason(t *testing.T) {
	h := newHarness()
	fourGameSeries(h, 2023)
	h.addGame(2024, 201, 1, 1, 2, 9, 0)
	h.addGame(2024, 202, 2, 1, 2, 1, 0)
	h.fetcher.failOn = 202

	cfg := testConfig(3)
	cfg.CarryRollingAcrossSeasons = true
	eng := h.engine(t, cfg)

	results, err := eng.Run(context.Background(), []int{2023, 2024})
	require.Error(t, err)
	require.Len(t, results, 1)
	require.NotNil(t, eng.rolling)

	snap := eng.rolling.Get(1)
	assert.Equal(t, 3, snap.Games)
	// window holds 2023 games 102..104 only; game 201 was rolled back
	assert.InDelta(t, 11.0, snap.Sums.RunsScored, 1e-9)
}

func TestRunSeasonWithPrefetchMatchesSerialReplay(t *testing.T) {
	serial := newHarness()
	fourGameSeries(serial, 2023)
	_, err := serial.engine(t, testConfig(2)).RunSeason(context.Background(), 2023)
	require.NoError(t, err)

	prefetched := newHarness()
	fourGameSeries(prefetched, 2023)
	cfg := testConfig(2)
	cfg.Prefetch = true
	res, err := prefetched.engine(t, cfg).RunSeason(context.Background(), 2023)
	require.NoError(t, err)

	assert.Equal(t, 4, res.GamesProcessed)
	assert.Equal(t, serial.feats.records[103].Features, prefetched.feats.records[103].Features)
	for pk := int64(101); pk <= 104; pk++ {
		assert.Equal(t, 1, prefetched.fetcher.callCount(pk))
	}
}

func TestRunSeasonKeepsFeaturesWhenAsked(t *testing.T) {
	h := newHarness()
	fourGameSeries(h, 2023)
	eng := h.engine(t, testConfig(2))
	eng.KeepFeatures = true

	res, err := eng.RunSeason(context.Background(), 2023)
	require.NoError(t, err)
	require.Len(t, res.Features, 1)
	assert.Equal(t, int64(103), res.Features[0].GamePK)
}

func TestNewEngineValidatesDependencies(t *testing.T) {
	_, err := NewEngine(testConfig(0), Dependencies{}, quietLogger())
	assert.Error(t, err)

	_, err = NewEngine(testConfig(3), Dependencies{}, quietLogger())
	assert.Error(t, err)
}
