package engine

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-workers/internal/solar/location"
)

func TestRoundToValidKW(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{0.3, 1},
		{0.85, 1},
		{1.19, 1},
		{2.15, 2},
		{2.3, 3},
		{3.125, 3},
		{3.2, 4},
		{8.5, 10},
		{9.85, 10},
		{10.1, 10},
		{10.4, 11},
		{14.2, 15},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundToValidKW(tt.raw), "raw=%v", tt.raw)
	}
}

func TestSubsidy_CapBoundary(t *testing.T) {
	cfg := location.NationalDefaults()

	assert.Equal(t, 78000.0, Subsidy(1, cfg))
	assert.Equal(t, 78000.0, Subsidy(2, cfg))
	assert.Equal(t, 117000.0, Subsidy(3, cfg))
	assert.Equal(t, 117000.0, Subsidy(4, cfg), "kw is clamped to the cap for the lookup")
	assert.Equal(t, 117000.0, Subsidy(10, cfg))

	cfg.SubsidyCapKW = 5
	assert.Equal(t, 0.0, Subsidy(4, cfg), "caps above 3 reach the zero branch")

	assert.True(t, IsSubsidyEligible(3, location.NationalDefaults()))
	assert.False(t, IsSubsidyEligible(4, location.NationalDefaults()))
}

func TestCalculate_NationalScenario(t *testing.T) {
	res, err := Calculate(Inputs{MonthlyBill: 3000}, location.NationalDefaults())
	require.NoError(t, err)

	assert.Equal(t, 375.0, res.Inputs.MonthlyUnits)
	assert.Equal(t, "Not specified", res.Inputs.Location)

	// rawKw 3.125 is within 0.2 of 3.
	assert.Equal(t, 3.0, res.System.RecommendedKW)
	assert.Equal(t, 300.0, res.System.RoofAreaSqFt)
	assert.Equal(t, 360.0, res.System.MonthlyGeneration)
	assert.Equal(t, 4320.0, res.System.AnnualGeneration)

	assert.Equal(t, Range{Low: 135000, High: 255000}, res.Cost.GrossRange)
	assert.Equal(t, 117000.0, res.Cost.Subsidy)
	assert.Equal(t, Range{Low: 18000, High: 138000}, res.Cost.NetRange)
	assert.Equal(t, Range{Low: 45000, High: 85000}, res.Cost.CostPerKWRange)

	assert.Equal(t, 2880.0, res.Financial.MonthlySavings)
	assert.Equal(t, 34560.0, res.Financial.AnnualSavings)
	assert.Equal(t, Payback{Available: true, Min: 0.5, Max: 4.0, Average: 2.3}, res.Financial.PaybackYears)
	assert.Equal(t, ROI{Available: true, Percent: 4700}, res.Financial.ROI25Years)

	assert.Equal(t, "30-60", res.Info.ApprovalTime)
	assert.Equal(t, 90.0, res.Info.MaintenanceCost)
	assert.Equal(t, DefaultDiscoms, res.Info.Discoms)
	assert.Equal(t, location.TierNational, res.Metadata.LocationLevel)
	assert.Equal(t, "National averages", res.Metadata.ConfigSource)
}

func TestCalculate_ResolvedCity(t *testing.T) {
	r := location.NewResolver(nil, nil)
	cfg := r.Resolve("maharashtra", "pune")

	res, err := Calculate(Inputs{MonthlyBill: 4250, State: "maharashtra", City: "pune"}, cfg)
	require.NoError(t, err)

	// 4250 / 8.5 = 500 units, 500/120 = 4.17 kW.
	assert.Equal(t, 500.0, res.Inputs.MonthlyUnits)
	assert.Equal(t, 4.0, res.System.RecommendedKW)
	assert.Equal(t, location.TierCity, res.Metadata.LocationLevel)
	assert.Equal(t, "City: Pune", res.Metadata.ConfigSource)
	assert.Equal(t, "pune, maharashtra", res.Inputs.Location)
	assert.Equal(t, cfg.Discoms, res.Info.Discoms)
	assert.Equal(t, res.Cost.GrossRange.Low-res.Cost.Subsidy, res.Cost.NetRange.Low)
}

func TestCalculate_NetRangeMayBeNegative(t *testing.T) {
	cfg := location.NationalDefaults()
	cfg.CostPerKWLow = 20000
	cfg.CostPerKWHigh = 30000

	res, err := Calculate(Inputs{MonthlyBill: 900}, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.System.RecommendedKW)
	assert.Equal(t, Range{Low: -58000, High: -48000}, res.Cost.NetRange)
	assert.True(t, res.Financial.ROI25Years.Available)
}

func TestCalculate_ROINotApplicableOnZeroNetCost(t *testing.T) {
	cfg := location.NationalDefaults()
	cfg.CostPerKWLow = 39000

	res, err := Calculate(Inputs{MonthlyBill: 2880}, cfg)
	require.NoError(t, err)
	require.Equal(t, 3.0, res.System.RecommendedKW)
	assert.Equal(t, 0.0, res.Cost.NetRange.Low)
	assert.False(t, res.Financial.ROI25Years.Available)
}

func TestCalculate_InvalidInput(t *testing.T) {
	for _, bill := range []float64{0, -100, math.NaN(), math.Inf(1)} {
		_, err := Calculate(Inputs{MonthlyBill: bill}, location.NationalDefaults())
		assert.True(t, errors.Is(err, ErrInvalidInput), "bill=%v", bill)
	}

	cfg := location.NationalDefaults()
	cfg.AvgUnitCost = 0
	_, err := Calculate(Inputs{MonthlyBill: 3000}, cfg)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestCalculate_Monotonic(t *testing.T) {
	cfg := location.NationalDefaults()
	var prev *Result
	for bill := 100.0; bill <= 30000; bill += 50 {
		res, err := Calculate(Inputs{MonthlyBill: bill}, cfg)
		require.NoError(t, err)
		if prev != nil {
			assert.GreaterOrEqual(t, res.System.RecommendedKW, prev.System.RecommendedKW, "bill=%v", bill)
			assert.GreaterOrEqual(t, res.Cost.GrossRange.Low, prev.Cost.GrossRange.Low, "bill=%v", bill)
			assert.GreaterOrEqual(t, res.Financial.AnnualSavings, prev.Financial.AnnualSavings, "bill=%v", bill)
		}
		prev = res
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	cfg := location.NationalDefaults()
	a, err := Calculate(Inputs{MonthlyBill: 5123}, cfg)
	require.NoError(t, err)
	b, err := Calculate(Inputs{MonthlyBill: 5123}, cfg)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCalculatePayback(t *testing.T) {
	assert.False(t, CalculatePayback(Range{Low: 1000, High: 2000}, 0).Available)
	assert.False(t, CalculatePayback(Range{Low: 1000, High: 2000}, -5).Available)

	p := CalculatePayback(Range{Low: 100000, High: 150000}, 40000)
	assert.Equal(t, Payback{Available: true, Min: 2.5, Max: 3.8, Average: 3.1}, p)
}

func TestCalculateROI(t *testing.T) {
	assert.Equal(t, ROINotApplicable(), CalculateROI(0, 30000, 25))
	assert.Equal(t, ROI{Available: true, Percent: 650}, CalculateROI(100000, 30000, 25))
}

func TestResultJSON(t *testing.T) {
	res, err := Calculate(Inputs{MonthlyBill: 3000, State: "gujarat"}, location.NationalDefaults())
	require.NoError(t, err)
	res.Financial.PaybackYears = PaybackNotApplicable()

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var raw map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "N/A", raw["financial"]["paybackYears"])
	assert.Equal(t, 4700.0, raw["financial"]["roi25Years"])
	assert.Equal(t, "state", raw["metadata"]["locationLevel"])

	var back Result
	require.NoError(t, json.Unmarshal(data, &back))
	assert.False(t, back.Financial.PaybackYears.Available)
	assert.Equal(t, res.Financial.ROI25Years, back.Financial.ROI25Years)

	withPayback, err := json.Marshal(Payback{Available: true, Min: 1, Max: 2, Average: 1.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"min":1,"max":2,"average":1.5}`, string(withPayback))
}

func TestRecommend(t *testing.T) {
	cfg := location.NationalDefaults()

	rec, err := Recommend(3000, cfg)
	require.NoError(t, err)
	assert.Equal(t, 3.0, rec.SizeKW)
	assert.Equal(t, "Based on your ₹3,000 monthly bill, you use approximately 375 units per month. "+
		"A 3kW system will cover most of your electricity needs and is eligible for the maximum central subsidy.",
		rec.Explanation)

	rec, err = Recommend(6000, cfg)
	require.NoError(t, err)
	assert.Equal(t, 7.0, rec.SizeKW)
	assert.Contains(t, rec.Explanation, "A 7kW system is recommended to cover your consumption.")
	assert.Contains(t, rec.Explanation, "not eligible for central subsidy")

	_, err = Recommend(0, cfg)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBillBounds(t *testing.T) {
	b := BillBounds{Min: 500, Max: 50000}

	assert.NoError(t, b.Check(500))
	assert.NoError(t, b.Check(50000))

	err := b.Check(499)
	assert.ErrorIs(t, err, ErrBillTooLow)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "₹500")

	assert.ErrorIs(t, b.Check(50001), ErrBillTooHigh)
	assert.ErrorIs(t, b.Check(-1), ErrInvalidInput)
	assert.NoError(t, BillBounds{}.Check(1e9))
}
