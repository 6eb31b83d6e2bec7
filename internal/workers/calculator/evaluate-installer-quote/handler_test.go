// internal/workers/calculator/evaluate-installer-quote/handler_test.go
package evaluateinstallerquote

import (
	"context"
	"encoding/json"
	"testing"

	"solar-workers/internal/common/errors"
	"solar-workers/internal/common/logger"
	"solar-workers/internal/common/metrics"
	"solar-workers/internal/solar/quote"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_Buckets(t *testing.T) {
	h := NewHandler(LoadConfig(), nil, logger.NewTestLogger(t))

	tests := []struct {
		name  string
		input Input
		want  quote.Bucket
	}{
		{"fair", Input{SystemSizeKW: 3, TotalQuote: 150000, City: "gujarat"}, quote.Fair},
		{"suspicious", Input{SystemSizeKW: 3, TotalQuote: 120000, City: "gujarat"}, quote.Suspicious},
		{"borderline", Input{SystemSizeKW: 4, TotalQuote: 260000, City: "pune"}, quote.Borderline},
		{"high", Input{SystemSizeKW: 4, TotalQuote: 280000}, quote.High},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(metrics.QuoteVerdicts.WithLabelValues(tt.want.String()))

			out, err := h.Execute(context.Background(), &tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Bucket)
			assert.Equal(t, tt.want == quote.Fair, out.IsFair)

			after := testutil.ToFloat64(metrics.QuoteVerdicts.WithLabelValues(tt.want.String()))
			assert.Equal(t, before+1, after)
		})
	}
}

func TestExecute_OutputVariables(t *testing.T) {
	h := NewHandler(LoadConfig(), nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{SystemSizeKW: 3, TotalQuote: 150000, City: "gujarat"})
	require.NoError(t, err)

	raw, err := json.Marshal(out)
	require.NoError(t, err)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &vars))
	assert.Equal(t, "fair", vars["bucket"])
	assert.Equal(t, true, vars["isFair"])
	verdict := vars["quoteVerdict"].(map[string]interface{})
	assert.Equal(t, "Fair Market Price", verdict["display"].(map[string]interface{})["label"])
}

func TestExecute_CustomMultipliers(t *testing.T) {
	cfg := LoadConfig()
	cfg.Multipliers = map[string]float64{"jaipur": 1.0}
	h := NewHandler(cfg, nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{SystemSizeKW: 3, TotalQuote: 135000, City: "jaipur"})
	require.NoError(t, err)
	assert.Equal(t, "jaipur", out.Verdict.Market)
	assert.Equal(t, 45000.0, out.Verdict.FairRate)
}

func TestExecute_InvalidInput(t *testing.T) {
	h := NewHandler(LoadConfig(), nil, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{TotalQuote: 100000})
	require.Error(t, err)
	stdErr := errors.Normalize(err)
	assert.Equal(t, errors.ErrCodeInvalidInput, stdErr.Code)
	assert.Equal(t, "systemSizeKW", stdErr.Metadata["field"])

	_, err = h.Execute(context.Background(), &Input{SystemSizeKW: 3})
	require.Error(t, err)
	assert.Equal(t, "totalQuote", errors.Normalize(err).Metadata["field"])
}
