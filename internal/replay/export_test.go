package replay

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/mlb-edge/internal/models"
)

func TestExportFeatures(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	records := []models.FeatureRecord{
		{GamePK: 20, Season: 2023, Features: map[string]float64{"label": 0, "home_team_id": 1}},
		{GamePK: 10, Season: 2023, Features: map[string]float64{"label": 1, "home_team_id": 2}},
	}

	path, err := ExportFeatures(records, 2023, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "features_2023.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var export FeatureExport
	require.NoError(t, json.Unmarshal(data, &export))

	assert.Equal(t, 2023, export.Season)
	assert.Equal(t, 2, export.Count)
	assert.Equal(t, []string{"home_team_id", "label"}, export.Columns)
	assert.Equal(t, int64(10), export.Records[0].GamePK)
	assert.Equal(t, int64(20), records[0].GamePK, "input slice is not reordered")
}

func TestExportFeaturesRequiresDirectory(t *testing.T) {
	_, err := ExportFeatures(nil, 2023, "")
	assert.Error(t, err)
}
