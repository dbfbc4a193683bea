package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/mlb-edge/internal/models"
)

const scheduleFixture = `{
  "dates": [{
    "date": "2024-04-01",
    "games": [{
      "gamePk": 745000,
      "gameType": "R",
      "season": "2024",
      "gameDate": "2024-04-01T23:10:00Z",
      "status": {"detailedState": "Final"},
      "teams": {
        "away": {"score": 2, "team": {"id": 111, "name": "Boston Red Sox"}},
        "home": {"score": 5, "team": {"id": 147, "name": "New York Yankees"}}
      },
      "venue": {"id": 3313},
      "dayNight": "night"
    }, {
      "gamePk": 745001,
      "gameType": "R",
      "season": "2024",
      "gameDate": "2024-04-02T17:05:00Z",
      "status": {"detailedState": "Scheduled"},
      "teams": {
        "away": {"team": {"id": 111, "name": "Boston Red Sox"}},
        "home": {"team": {"id": 147, "name": "New York Yankees"}}
      },
      "venue": {"id": 3313},
      "dayNight": "day"
    }]
  }]
}`

const teamsFixture = `{
  "teams": [
    {"id": 147, "name": "New York Yankees", "abbreviation": "NYY", "shortName": "NY Yankees", "sport": {"id": 1, "name": "Major League Baseball"}},
    {"id": 531, "name": "Scranton/Wilkes-Barre RailRiders", "abbreviation": "SWB", "shortName": "Scranton", "sport": {"id": 11, "name": "Triple-A"}}
  ]
}`

const boxScoreFixture = `{
  "teams": {
    "home": {"team": {"id": 147}, "teamStats": {"batting": {"runs": 5, "obp": ".375"}, "pitching": {"era": "-.--"}, "fielding": {}}},
    "away": {"team": {"id": 111}, "teamStats": {"batting": {"runs": 2}, "pitching": {}, "fielding": {}}}
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *MLBClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 1000
	cfg.CircuitBreakerMax = 2
	cfg.CircuitResetAfter = time.Hour
	return NewMLBClient(server.URL, NewRateLimitedHTTPClient(cfg, nil), nil)
}

func TestFetchSchedule(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/schedule", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("sportId"))
		assert.Equal(t, "2024", r.URL.Query().Get("season"))
		assert.Equal(t, "R", r.URL.Query().Get("gameType"))
		_, _ = w.Write([]byte(scheduleFixture))
	})

	games, err := client.FetchSchedule(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, games, 2)

	final := games[0]
	assert.Equal(t, int64(745000), final.GamePK)
	assert.Equal(t, 2024, final.Season)
	assert.Equal(t, 147, final.HomeTeamID)
	assert.Equal(t, "Boston Red Sox", final.AwayTeamName)
	assert.Equal(t, models.GameStatusFinal, final.Status)
	require.True(t, final.HasFinalScore())
	assert.Equal(t, 5, *final.HomeScore)
	assert.Equal(t, time.Date(2024, 4, 1, 23, 10, 0, 0, time.UTC), final.DateTime)

	assert.False(t, games[1].HasFinalScore())
	assert.Equal(t, "day", games[1].DayNight)
}

func TestFetchTeamsFiltersToMajorLeague(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teams", r.URL.Path)
		_, _ = w.Write([]byte(teamsFixture))
	})

	teams, err := client.FetchTeams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, models.Team{ID: 147, Name: "New York Yankees", Abbreviation: "NYY", ShortName: "NY Yankees"}, teams[0])
}

func TestFetchBoxScore(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/game/745000/boxscore", r.URL.Path)
		_, _ = w.Write([]byte(boxScoreFixture))
	})

	raw, err := client.FetchBoxScore(context.Background(), 745000)
	require.NoError(t, err)
	assert.Equal(t, 147, raw.Teams.Home.Team.ID)
	assert.Equal(t, ".375", raw.Teams.Home.TeamStats.Batting["obp"])
}

func TestFetchBoxScoreNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.FetchBoxScore(context.Background(), 1)
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, int64(1), fetchErr.GamePK)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchBoxScoreMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"teams": [`))
	})

	_, err := client.FetchBoxScore(context.Background(), 2)
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestCircuitBreakerOpensAfterServerErrors(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	for i := 0; i < 2; i++ {
		_, err := client.FetchBoxScore(context.Background(), 3)
		require.Error(t, err)
	}
	assert.True(t, client.http.IsOpen())

	_, err := client.FetchBoxScore(context.Background(), 3)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "open breaker must not reach the server")
}

func TestCustomRetryPolicy(t *testing.T) {
	policy := customRetryPolicy()
	ctx := context.Background()

	retry, _ := policy(ctx, &http.Response{StatusCode: http.StatusTooManyRequests}, nil)
	assert.True(t, retry)

	retry, _ = policy(ctx, &http.Response{StatusCode: http.StatusNotFound}, nil)
	assert.False(t, retry)

	retry, _ = policy(ctx, nil, errors.New("connection reset"))
	assert.True(t, retry)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	retry, err := policy(cancelled, nil, errors.New("connection reset"))
	assert.False(t, retry)
	assert.ErrorIs(t, err, context.Canceled)
}
