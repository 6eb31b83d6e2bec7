// internal/workers/calculator/estimate-national-savings/handler_test.go
package estimatenationalsavings

import (
	"context"
	"testing"

	"solar-workers/internal/common/errors"
	"solar-workers/internal/common/logger"
	"solar-workers/internal/solar/national"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_Pune(t *testing.T) {
	h := NewHandler(LoadConfig(), nil, nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{
		MonthlyBill:   3000,
		State:         "maharashtra",
		City:          "pune",
		RoofOwnership: national.OwnershipOwn,
		RoofArea:      "300-600",
	})
	require.NoError(t, err)

	assert.Equal(t, 3.0, out.SystemSizeKW)
	assert.True(t, out.SubsidyApplied)
	assert.Equal(t, "Pune, Maharashtra", out.Estimate.Location)
	assert.Equal(t, 78000.0, out.Estimate.NetCost)
	assert.Equal(t, national.Payback{Available: true, Years: 2.3}, out.Estimate.PaybackYears)
}

func TestExecute_RentedApartmentHasNoCentralSubsidy(t *testing.T) {
	h := NewHandler(LoadConfig(), nil, nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{
		MonthlyBill: 3000,
		State:       "maharashtra",
		City:        "pune",
		HomeType:    national.HomeApartment,
	})
	require.NoError(t, err)
	assert.False(t, out.Estimate.CentralSubsidy.Eligible)
	assert.False(t, out.SubsidyApplied)
}

func TestExecute_Errors(t *testing.T) {
	h := NewHandler(LoadConfig(), nil, nil, logger.NewTestLogger(t))

	tests := []struct {
		name  string
		input Input
		code  errors.ErrorCode
		field string
	}{
		{"zero bill", Input{State: "maharashtra", City: "pune"}, errors.ErrCodeInvalidInput, "monthlyBill"},
		{"missing city", Input{MonthlyBill: 3000, State: "maharashtra"}, errors.ErrCodeInvalidInput, "city"},
		{"unknown home type", Input{MonthlyBill: 3000, State: "maharashtra", City: "pune", HomeType: "houseboat"}, errors.ErrCodeInvalidInput, "homeType"},
		{"unknown roof band", Input{MonthlyBill: 3000, State: "maharashtra", City: "pune", RoofArea: "huge"}, errors.ErrCodeInvalidInput, "roofArea"},
		{"unknown state", Input{MonthlyBill: 3000, State: "atlantis", City: "pune"}, errors.ErrCodeUnknownLocation, ""},
		{"unknown city", Input{MonthlyBill: 3000, State: "maharashtra", City: "kolhapur"}, errors.ErrCodeUnknownLocation, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), &tt.input)
			require.Error(t, err)
			stdErr := errors.Normalize(err)
			assert.Equal(t, tt.code, stdErr.Code)
			if tt.field != "" {
				assert.Equal(t, tt.field, stdErr.Metadata["field"])
			}
		})
	}
}

func TestInputSchema(t *testing.T) {
	var input Input
	res, err := inputSchema.Decode(`{"monthlyBill": 4000, "state": "gujarat", "city": "surat", "homeType": "farmhouse"}`, &input)
	require.NoError(t, err)
	require.True(t, res.Valid)
	assert.Equal(t, national.HomeFarmhouse, input.HomeType)

	job := entities.Job{ActivatedJob: &pb.ActivatedJob{Variables: `{"monthlyBill": "lots"}`}}
	res, err = inputSchema.Decode(job.Variables, &input)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.True(t, res.HasErrors("monthlyBill"))
}
