package features

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yourusername/mlb-edge/internal/models"
	"github.com/yourusername/mlb-edge/internal/stats"
)

// Method selects how a feature record is turned into model inputs
type Method string

const (
	// MethodDiff feeds home minus away differences
	MethodDiff Method = "diff"
	// MethodRaw feeds both sides' columns unchanged
	MethodRaw Method = "raw"
)

// ParseMethod validates a method name
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodDiff, MethodRaw:
		return Method(s), nil
	}
	return "", fmt.Errorf("%w: unknown feature method %q", models.ErrInvalidInput, s)
}

// excluded from model inputs: ops and opponent_ops are sums of other inputs
var excludedMetrics = map[string]struct{}{
	"ops":          {},
	"opponent_ops": {},
}

// Vector is an ordered set of named model inputs
type Vector struct {
	Names  []string
	Values []float64
}

// Map returns the vector keyed by name
func (v Vector) Map() map[string]float64 {
	out := make(map[string]float64, len(v.Names))
	for i, n := range v.Names {
		out[n] = v.Values[i]
	}
	return out
}

// DiffKey names a home-minus-away input, e.g. season_avg_era_diff
func DiffKey(scope, metric string) string {
	return fmt.Sprintf("%s_avg_%s_diff", scope, metric)
}

// ModelInputs builds the model input vector from a stored feature record
func ModelInputs(rec models.FeatureRecord, method Method) (Vector, error) {
	switch method {
	case MethodDiff:
		return diffInputs(rec)
	case MethodRaw:
		return rawInputs(rec)
	}
	return Vector{}, fmt.Errorf("%w: unknown feature method %q", models.ErrInvalidInput, method)
}

func diffInputs(rec models.FeatureRecord) (Vector, error) {
	out := make(map[string]float64, 2*len(stats.MetricNames))
	for _, scope := range []string{ScopeSeason, ScopeRolling} {
		for _, metric := range stats.MetricNames {
			if _, skip := excludedMetrics[metric]; skip {
				continue
			}
			home, err := rec.Value(Key(scope, models.SideHome, metric))
			if err != nil {
				return Vector{}, err
			}
			away, err := rec.Value(Key(scope, models.SideAway, metric))
			if err != nil {
				return Vector{}, err
			}
			out[DiffKey(scope, metric)] = home - away
		}
	}
	return sortedVector(out), nil
}

func rawInputs(rec models.FeatureRecord) (Vector, error) {
	out := make(map[string]float64, len(rec.Features))
	for k, v := range rec.Features {
		if k == models.FeatureLabel || k == models.FeatureHomeTeamID || k == models.FeatureAwayTeamID {
			continue
		}
		if isExcludedColumn(k) {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return Vector{}, fmt.Errorf("%w: feature record %d has no metric columns", models.ErrInvalidInput, rec.GamePK)
	}
	return sortedVector(out), nil
}

func isExcludedColumn(key string) bool {
	for metric := range excludedMetrics {
		if strings.HasSuffix(key, "_avg_"+metric) {
			return true
		}
	}
	return false
}

func sortedVector(m map[string]float64) Vector {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	values := make([]float64, len(names))
	for i, n := range names {
		values[i] = m[n]
	}
	return Vector{Names: names, Values: values}
}
