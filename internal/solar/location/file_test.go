package location

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile_YAMLOverlay(t *testing.T) {
	path := writeFile(t, "locations.yaml", `
national:
  maintenance_cost_percent: 0.75
data_freshness_note: "Data updated: June 2025."
states:
  kerala:
    display_name: Kerala
    avg_unit_cost: 6.8
    discoms: [KSEB]
  maharashtra:
    avg_unit_cost: 9
cities:
  kochi:
    display_name: Kochi
    state: kerala
    cost_per_kw_low: 52000
    cost_per_kw_high: 74000
`)

	base := DefaultTables()
	tables, err := LoadFile(path, base)
	require.NoError(t, err)

	r := NewResolver(tables, nil)

	cfg := r.Resolve("kerala", "kochi")
	assert.Equal(t, 6.8, cfg.AvgUnitCost)
	assert.Equal(t, 52000.0, cfg.CostPerKWLow)
	assert.Equal(t, []string{"KSEB"}, cfg.Discoms)
	assert.Equal(t, 0.75, cfg.MaintenanceCostPercent)
	assert.Equal(t, "Data updated: June 2025.", cfg.DataFreshnessNote)
	assert.Empty(t, cfg.FallbackMessage)

	mh := r.Resolve("maharashtra", "")
	assert.Equal(t, 9.0, mh.AvgUnitCost)
	assert.Equal(t, 50000.0, mh.CostPerKWLow, "built-in fields survive a partial overlay")
	assert.Equal(t, "Location-adjusted estimate for Maharashtra", mh.ResultLabel)

	assert.Equal(t, []Location{{Key: "kochi", DisplayName: "Kochi"}}, r.CitiesForState("kerala"))
	assert.Equal(t, 8.5, NewResolver(base, nil).Resolve("maharashtra", "").AvgUnitCost, "base untouched")
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeFile(t, "locations.json", `{"cities": {"thane": {"display_name": "Thane", "state": "maharashtra", "cost_per_kw_low": 56000}}}`)

	tables, err := LoadFile(path, nil)
	require.NoError(t, err)

	cfg := NewResolver(tables, nil).Resolve("maharashtra", "thane")
	assert.Equal(t, 56000.0, cfg.CostPerKWLow)
	assert.Equal(t, 75000.0, cfg.CostPerKWHigh)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	orphan := writeFile(t, "orphan.yaml", `
cities:
  kochi:
    state: kerala
`)
	_, err = LoadFile(orphan, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown state")
}
