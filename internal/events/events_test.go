package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/mlb-edge/internal/config"
)

func TestSummarySubject(t *testing.T) {
	ok := SeasonSummary{Season: 2023, Status: "completed"}
	assert.Equal(t, "mlb_edge.replay.season.completed", summarySubject("mlb_edge.replay", ok))

	failed := SeasonSummary{Season: 2023, Status: "failed", Error: "boom"}
	assert.Equal(t, "mlb_edge.replay.season.failed", summarySubject("mlb_edge.replay", failed))
}

func TestEncodeSummary(t *testing.T) {
	id := uuid.New()
	data, err := encodeSummary(SeasonSummary{
		RunID:           id,
		Season:          2022,
		Status:          "completed",
		GamesProcessed:  2430,
		FeaturesEmitted: 2290,
		FinishedAt:      time.Date(2022, 10, 6, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id.String(), decoded["run_id"])
	assert.Equal(t, float64(2290), decoded["features_emitted"])
	assert.NotContains(t, decoded, "error")
	assert.NotContains(t, decoded, "last_game_id")
}

func TestNewPublisherDisabledIsNoop(t *testing.T) {
	pub, err := NewPublisher(config.EventsConfig{Enabled: false}, nil)
	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, pub)
	assert.NoError(t, pub.PublishSeasonSummary(context.Background(), SeasonSummary{}))
	pub.Close()
}
