// internal/workers/calculator/calculate-solar-savings/handler_test.go
package calculatesolarsavings

import (
	"context"
	"testing"

	"solar-workers/internal/common/errors"
	"solar-workers/internal/common/logger"
	"solar-workers/internal/solar/location"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, cfg *Config) *Handler {
	log := logger.NewTestLogger(t)
	return NewHandler(cfg, location.NewResolver(nil, log), nil, log)
}

func newJob(variables string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 1, ProcessInstanceKey: 2, Variables: variables}}
}

func requireCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, errors.Normalize(err).Code)
}

func TestExecute_NationalDefaults(t *testing.T) {
	h := newTestHandler(t, LoadConfig())

	out, err := h.Execute(context.Background(), &Input{MonthlyBill: 3000})
	require.NoError(t, err)

	assert.Equal(t, 3.0, out.RecommendedKW)
	assert.True(t, out.SubsidyEligible)
	assert.Equal(t, "national", out.LocationLevel)
	assert.Equal(t, 117000.0, out.Savings.Cost.Subsidy)
	assert.Equal(t, 18000.0, out.Savings.Cost.NetRange.Low)
	assert.Equal(t, 138000.0, out.Savings.Cost.NetRange.High)
	assert.Equal(t, 34560.0, out.Savings.Financial.AnnualSavings)
	assert.Equal(t, "National averages", out.Savings.Metadata.ConfigSource)
	assert.Equal(t, 3.0, out.Recommendation.SizeKW)
	assert.Contains(t, out.Recommendation.Explanation, "eligible for the maximum central subsidy")
}

func TestExecute_CityResolved(t *testing.T) {
	h := newTestHandler(t, LoadConfig())

	out, err := h.Execute(context.Background(), &Input{MonthlyBill: 4250, State: "maharashtra", City: "pune"})
	require.NoError(t, err)

	assert.Equal(t, 4.0, out.RecommendedKW)
	assert.False(t, out.SubsidyEligible)
	assert.Equal(t, "city", out.LocationLevel)
	assert.Equal(t, "City: Pune", out.Savings.Metadata.ConfigSource)
	assert.Equal(t, "pune, maharashtra", out.Savings.Inputs.Location)
}

func TestExecute_UnknownLocationFallsBack(t *testing.T) {
	h := newTestHandler(t, LoadConfig())

	out, err := h.Execute(context.Background(), &Input{MonthlyBill: 3000, State: "atlantis"})
	require.NoError(t, err)

	assert.Equal(t, 3.0, out.RecommendedKW)
	assert.NotEmpty(t, out.Savings.Info.FallbackMessage)
}

func TestExecute_InvalidBill(t *testing.T) {
	h := newTestHandler(t, LoadConfig())

	for _, bill := range []float64{0, -100} {
		_, err := h.Execute(context.Background(), &Input{MonthlyBill: bill})
		requireCode(t, err, errors.ErrCodeInvalidInput)
	}
}

func TestExecute_BillBounds(t *testing.T) {
	cfg := LoadConfig()
	cfg.EnforceBillBounds = true
	h := newTestHandler(t, cfg)

	_, err := h.Execute(context.Background(), &Input{MonthlyBill: 400})
	requireCode(t, err, errors.ErrCodeInvalidInput)
	assert.Contains(t, errors.Normalize(err).Details, "Solar may not be cost-effective for bills under ₹500")

	_, err = h.Execute(context.Background(), &Input{MonthlyBill: 60000})
	requireCode(t, err, errors.ErrCodeInvalidInput)

	_, err = h.Execute(context.Background(), &Input{MonthlyBill: 3000})
	assert.NoError(t, err)
}

func TestParseInput(t *testing.T) {
	h := newTestHandler(t, LoadConfig())

	input, err := h.parseInput(newJob(`{"monthlyBill": 3000, "state": "gujarat", "leadId": "abc"}`))
	require.NoError(t, err)
	assert.Equal(t, 3000.0, input.MonthlyBill)
	assert.Equal(t, "gujarat", input.State)

	input, err = h.parseInput(newJob(`{"monthlyBill": null}`))
	require.NoError(t, err)
	assert.Zero(t, input.MonthlyBill)

	_, err = h.parseInput(newJob(`{"monthlyBill": "three thousand"}`))
	requireCode(t, err, errors.ErrCodeSchemaValidationFailed)

	_, err = h.parseInput(newJob(`{broken`))
	requireCode(t, err, errors.ErrCodeParseError)
}
