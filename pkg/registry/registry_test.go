package registry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	css "solar-workers/internal/workers/calculator/calculate-solar-savings"
	caf "solar-workers/internal/workers/calculator/check-apartment-feasibility"
	ccc "solar-workers/internal/workers/calculator/check-content-compliance"
	ens "solar-workers/internal/workers/calculator/estimate-national-savings"
	eiq "solar-workers/internal/workers/calculator/evaluate-installer-quote"
	gci "solar-workers/internal/workers/calculator/generate-calculator-insight"
	rlc "solar-workers/internal/workers/calculator/resolve-location-config"
)

func TestDefault_CoversEveryWorker(t *testing.T) {
	reg := Default()
	assert.Empty(t, reg.Validate())

	taskTypes := []string{
		rlc.TaskType, css.TaskType, eiq.TaskType, ccc.TaskType,
		gci.TaskType, ens.TaskType, caf.TaskType,
	}
	require.Len(t, reg.Activities, len(taskTypes))
	for _, tt := range taskTypes {
		a, ok := reg.Find(tt)
		require.True(t, ok, "missing activity %s", tt)
		assert.Equal(t, tt, a.TaskType)
		assert.Equal(t, StatusCompleted, a.ImplementationStatus)
		assert.NotEmpty(t, a.ErrorCodes)
	}
}

func TestValidate(t *testing.T) {
	reg := &ActivityRegistry{Activities: []Activity{
		{ID: "a", TaskType: "a", ImplementationStatus: StatusPlanned, Timeout: "5s"},
		{ID: "a", TaskType: "a", ImplementationStatus: "done"},
		{TaskType: "c", ImplementationStatus: StatusVerified, Timeout: "soon"},
	}}

	assert.Equal(t, []string{
		`a: duplicate id`,
		`a: duplicate taskType a`,
		`a: unknown implementation status "done"`,
		`activities[2]: invalid timeout "soon"`,
		`activities[2]: missing id`,
	}, reg.Validate())
}

func TestUpsert(t *testing.T) {
	reg := Default()
	n := len(reg.Activities)

	a, _ := reg.Find("evaluate-installer-quote")
	updated := *a
	updated.Timeout = "8s"
	reg.Upsert(updated)
	require.Len(t, reg.Activities, n)
	got, _ := reg.Find("evaluate-installer-quote")
	assert.Equal(t, "8s", got.Timeout)

	reg.Upsert(Activity{ID: "rank-installers", TaskType: "rank-installers", ImplementationStatus: StatusPlanned})
	assert.Len(t, reg.Activities, n+1)

	_, ok := reg.Find("missing")
	assert.False(t, ok)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	now := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

	reg := Default()
	require.NoError(t, reg.Save(path, now))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01T10:30:00Z", loaded.LastUpdated)
	assert.Len(t, loaded.Activities, len(reg.Activities))
	assert.Empty(t, loaded.Validate())

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
