package quote

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_Buckets(t *testing.T) {
	tests := []struct {
		name   string
		sizeKW float64
		total  float64
		city   string
		want   Bucket
	}{
		{"gujarat fair", 3, 150000, "gujarat", Fair},
		{"below benchmark floor", 3, 120000, "gujarat", Suspicious},
		{"pune borderline", 4, 260000, "pune", Borderline},
		{"default high", 4, 280000, "", High},
		// Above the suspicious floor but under the fair band: falls through.
		{"mumbai gap is high", 3, 150000, "mumbai", High},
		{"small system uses upTo2kW rate", 2, 115000, "delhi", Fair},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Evaluate(tt.sizeKW, tt.total, tt.city)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Bucket, "userPerKW=%v fairRate=%v", v.UserPerKW, v.FairRate)
			assert.Equal(t, tt.want.Display(), v.Display)
		})
	}
}

func TestEvaluate_GujaratScenario(t *testing.T) {
	v, err := Evaluate(3, 150000, "gujarat")
	require.NoError(t, err)

	assert.Equal(t, 45000.0, v.BaseRate)
	assert.InDelta(t, 49500.0, v.FairRate, 1e-6)
	assert.Equal(t, 50000.0, v.UserPerKW)
	assert.Equal(t, "gujarat", v.Market)
	assert.Equal(t, TotalRange{Min: 133650, Max: 170775}, v.TypicalRange)
	assert.InDelta(t, 51.01, v.Position, 0.01)
	assert.Equal(t, "Fair Market Price", v.Display.Label)
}

func TestEvaluate_UnknownCityUsesDefault(t *testing.T) {
	v, err := Evaluate(5, 250000, "chennai")
	require.NoError(t, err)
	assert.Equal(t, DefaultMarket, v.Market)
	assert.Equal(t, 1.15, v.Multiplier)
	assert.Equal(t, 43000.0, v.BaseRate)
}

func TestEvaluate_InvalidInput(t *testing.T) {
	_, err := Evaluate(0, 100000, "pune")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = Evaluate(3, -1, "pune")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPosition_Clamped(t *testing.T) {
	assert.Equal(t, 5.0, Position(10000, 49500))
	assert.Equal(t, 95.0, Position(200000, 49500))
	assert.Equal(t, 50.0, Position(49500, 49500))
	assert.Equal(t, 5.0, Position(100, 0))
}

func TestNewEvaluator_AddsDefaultMarket(t *testing.T) {
	e := NewEvaluator(Benchmarks{UpTo2KW: 1, UpTo3KW: 1, Above3KW: 1}, map[string]float64{"x": 2})
	m, key := e.Multiplier("y")
	assert.Equal(t, DefaultMarket, key)
	assert.Equal(t, 1.15, m)
}

func TestVerdict_JSON(t *testing.T) {
	v, err := Evaluate(3, 150000, "gujarat")
	require.NoError(t, err)
	assert.InDelta(t, 1.0101, v.Ratio(), 0.0001)

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var back Verdict
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Fair, back.Bucket)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "fair", raw["bucket"])

	var b Bucket
	assert.Error(t, b.UnmarshalText([]byte("cheap")))
}
