package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/yourusername/mlb-edge/internal/models"
)

// FeatureExport is the on-disk snapshot of a season's feature records
type FeatureExport struct {
	Season     int                    `json:"season"`
	ExportedAt time.Time              `json:"exported_at"`
	Count      int                    `json:"count"`
	Columns    []string               `json:"columns"`
	Records    []models.FeatureRecord `json:"records"`
}

// ExportFeatures writes the records of one season to dir/features_<season>.json
// and returns the file path. Records are written in game id order.
func ExportFeatures(records []models.FeatureRecord, season int, dir string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	sorted := make([]models.FeatureRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].GamePK < sorted[j].GamePK })

	export := FeatureExport{
		Season:     season,
		ExportedAt: time.Now().UTC(),
		Count:      len(sorted),
		Records:    sorted,
	}
	if len(sorted) > 0 {
		export.Columns = sorted[0].Keys()
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal export: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("features_%d.json", season))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
