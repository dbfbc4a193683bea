package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/mlb-edge/internal/boxscore"
	"github.com/yourusername/mlb-edge/internal/config"
	"github.com/yourusername/mlb-edge/internal/metrics"
	"github.com/yourusername/mlb-edge/internal/models"
)

const (
	endpointBoxScore = "boxscore"
	endpointSchedule = "schedule"
	endpointTeams    = "teams"

	mlbSportID = 1
)

// MLBClient talks to the MLB Stats API
type MLBClient struct {
	baseURL string
	http    *RateLimitedHTTPClient
	logger  *logrus.Entry
}

// NewMLBClient creates a client for the API rooted at baseURL
func NewMLBClient(baseURL string, httpClient *RateLimitedHTTPClient, logger *logrus.Logger) *MLBClient {
	if logger == nil {
		logger = logrus.New()
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &MLBClient{
		baseURL: baseURL,
		http:    httpClient,
		logger:  logger.WithField("component", "mlb_api"),
	}
}

// NewMLBClientFromConfig wires a rate limited client from the mlb_api section
func NewMLBClientFromConfig(cfg config.MLBAPIConfig, logger *logrus.Logger) *MLBClient {
	return NewMLBClient(cfg.BaseURL, NewRateLimitedHTTPClient(HTTPClientConfigFrom(cfg), logger), logger)
}

// FetchBoxScore retrieves the raw box score of a game
func (c *MLBClient) FetchBoxScore(ctx context.Context, gamePK int64) (boxscore.RawBoxScore, error) {
	var raw boxscore.RawBoxScore
	path := fmt.Sprintf("game/%d/boxscore", gamePK)
	if err := c.getJSON(ctx, endpointBoxScore, gamePK, path, nil, &raw); err != nil {
		return boxscore.RawBoxScore{}, err
	}
	return raw, nil
}

// FetchSchedule retrieves the regular season schedule of a season
func (c *MLBClient) FetchSchedule(ctx context.Context, season int) ([]models.Game, error) {
	params := url.Values{}
	params.Set("sportId", strconv.Itoa(mlbSportID))
	params.Set("season", strconv.Itoa(season))
	params.Set("gameType", models.GameTypeRegular)

	var resp scheduleResponse
	if err := c.getJSON(ctx, endpointSchedule, 0, "schedule", params, &resp); err != nil {
		return nil, err
	}

	var games []models.Game
	for _, day := range resp.Dates {
		for _, g := range day.Games {
			game, err := g.toModel()
			if err != nil {
				return nil, &FetchError{Endpoint: endpointSchedule, GamePK: g.GamePK, Err: err}
			}
			games = append(games, game)
		}
	}

	c.logger.WithFields(logrus.Fields{
		"season": season,
		"games":  len(games),
	}).Debug("Schedule fetched")
	return games, nil
}

// FetchTeams retrieves the major league clubs
func (c *MLBClient) FetchTeams(ctx context.Context) ([]models.Team, error) {
	params := url.Values{}
	params.Set("sportId", strconv.Itoa(mlbSportID))

	var resp teamsResponse
	if err := c.getJSON(ctx, endpointTeams, 0, "teams", params, &resp); err != nil {
		return nil, err
	}

	teams := make([]models.Team, 0, len(resp.Teams))
	for _, t := range resp.Teams {
		if t.Sport.Name != models.MLBSportName {
			continue
		}
		teams = append(teams, models.Team{
			ID:           t.ID,
			Name:         t.Name,
			Abbreviation: t.Abbreviation,
			ShortName:    t.ShortName,
		})
	}
	return teams, nil
}

func (g scheduleGame) toModel() (models.Game, error) {
	season, err := strconv.Atoi(g.Season)
	if err != nil {
		return models.Game{}, fmt.Errorf("%w: season %q", ErrInvalidData, g.Season)
	}
	start, err := time.Parse(time.RFC3339, g.GameDate)
	if err != nil {
		return models.Game{}, fmt.Errorf("%w: gameDate %q", ErrInvalidData, g.GameDate)
	}
	return models.Game{
		GamePK:       g.GamePK,
		Season:       season,
		GameType:     g.GameType,
		DateTime:     start.UTC(),
		HomeTeamID:   g.Teams.Home.Team.ID,
		AwayTeamID:   g.Teams.Away.Team.ID,
		HomeTeamName: g.Teams.Home.Team.Name,
		AwayTeamName: g.Teams.Away.Team.Name,
		HomeScore:    g.Teams.Home.Score,
		AwayScore:    g.Teams.Away.Score,
		Status:       models.GameStatus(g.Status.DetailedState),
		VenueID:      g.Venue.ID,
		DayNight:     g.DayNight,
	}, nil
}

func (c *MLBClient) getJSON(ctx context.Context, endpoint string, gamePK int64, path string, params url.Values, out interface{}) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	start := time.Now()
	resp, err := c.http.Get(ctx, target)
	if err != nil {
		metrics.RecordAPIRequest(endpoint, "error", time.Since(start).Seconds())
		return &FetchError{Endpoint: endpoint, GamePK: gamePK, Err: err}
	}
	defer resp.Body.Close()
	metrics.RecordAPIRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		return &FetchError{Endpoint: endpoint, GamePK: gamePK, StatusCode: resp.StatusCode, Err: statusError(resp.StatusCode)}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return &FetchError{Endpoint: endpoint, GamePK: gamePK, StatusCode: resp.StatusCode,
			Err: fmt.Errorf("%w: %v", ErrInvalidData, err)}
	}
	return nil
}
