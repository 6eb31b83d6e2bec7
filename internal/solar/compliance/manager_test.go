package compliance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-workers/internal/common/logger"
)

func calculatorValues() map[string]interface{} {
	return map[string]interface{}{
		"calculatorOutputs": map[string]interface{}{
			"system": map[string]interface{}{"recommendedKW": 4.0},
			"cost": map[string]interface{}{
				"netRange": map[string]interface{}{"low": 63000.0, "high": 223000.0},
			},
		},
		"locationContext": "pune, maharashtra",
		"configSource":    "City: Pune",
	}
}

func TestManager_ExecuteCalculatorEngine(t *testing.T) {
	m := NewManager(nil, logger.NewTestLogger(t))
	s := newTestSession(t)

	exec, err := m.Execute(context.Background(), s, EngineCalculator, calculatorValues())
	require.NoError(t, err)

	assert.Equal(t, "Calculator Insight Engine", exec.Engine)
	assert.Contains(t, exec.Content, "estimates a 4 kW installation")
	assert.Equal(t, StatusPass, exec.QA.Status, exec.QA.Violations)
	assert.Equal(t, EngineCalculator, exec.QA.EngineUsed)

	report := s.Report()
	assert.Equal(t, 1, report.TotalSteps)
	assert.Equal(t, 1, report.PassedSteps)
	assert.Equal(t, 1, report.AuditEntries)

	steps := s.Steps()
	require.NotNil(t, steps[0].Inputs.CalculatorOutputs)
	assert.Equal(t, 63000.0, steps[0].Inputs.CalculatorOutputs.Cost.NetRange.Low)
	assert.Equal(t, "City: Pune", steps[0].Inputs.Context["configSource"])
}

func TestManager_PillarContentFailsQA(t *testing.T) {
	m := NewManager(TemplateGenerator{}, nil)
	s := newTestSession(t)

	exec, err := m.Execute(context.Background(), s, EnginePillarContent, map[string]interface{}{
		"topic": "cost", "targetAudience": "homeowners", "keyPoints": []string{"subsidy"},
	})
	require.NoError(t, err)

	assert.Equal(t, StatusFail, exec.QA.Status)
	assert.Contains(t, exec.QA.Violations, "Presents costs as final")
	assert.Contains(t, exec.QA.Violations, `Number "₹45,000" lacks clear config source`)
	assert.NotContains(t, exec.QA.Violations, ViolationBarePrices)
}

func TestManager_Localization(t *testing.T) {
	m := NewManager(nil, nil)
	exec, err := m.Execute(context.Background(), newTestSession(t), EngineLocalization, map[string]interface{}{
		"nationalContent": "...",
		"locationConfig":  map[string]interface{}{"displayName": "Gujarat", "costPerKwLow": 45000.0},
		"locationType":    "state",
	})
	require.NoError(t, err)
	assert.Contains(t, exec.Content, "Solar Costs in Gujarat")
	assert.Contains(t, exec.Content, "this state shows lower installation costs")
}

func TestManager_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown engine", func(t *testing.T) {
		_, err := NewManager(nil, nil).Execute(ctx, newTestSession(t), "Nope", nil)
		assert.ErrorIs(t, err, ErrEngineNotFound)
	})

	t.Run("missing inputs", func(t *testing.T) {
		_, err := NewManager(nil, nil).Execute(ctx, newTestSession(t), EngineCalculator, map[string]interface{}{"configSource": "x"})
		assert.ErrorIs(t, err, ErrMissingInputs)
		assert.ErrorContains(t, err, "calculatorOutputs")
	})

	t.Run("malformed calculator outputs", func(t *testing.T) {
		s := newTestSession(t)
		called := false
		gen := GeneratorFunc(func(context.Context, Engine, map[string]interface{}) (string, error) {
			called = true
			return "text", nil
		})
		values := calculatorValues()
		values["calculatorOutputs"] = "4 kW"

		_, err := NewManager(gen, nil).Execute(ctx, s, EngineCalculator, values)
		assert.ErrorIs(t, err, ErrMalformedInputs)
		assert.ErrorContains(t, err, "calculatorOutputs")
		assert.False(t, called, "nothing is generated for unreadable inputs")
		assert.Zero(t, s.Report().AuditEntries)
	})

	t.Run("generator error", func(t *testing.T) {
		s := newTestSession(t)
		gen := GeneratorFunc(func(context.Context, Engine, map[string]interface{}) (string, error) {
			return "", errors.New("upstream 503")
		})
		_, err := NewManager(gen, nil).Execute(ctx, s, EngineCalculator, calculatorValues())
		assert.ErrorIs(t, err, ErrGenerationFailed)
		assert.Equal(t, 0, s.Report().TotalSteps)
		assert.Equal(t, 0, s.Report().AuditEntries)
	})

	t.Run("generator timeout", func(t *testing.T) {
		gen := GeneratorFunc(func(ctx context.Context, _ Engine, _ map[string]interface{}) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})
		m := NewManager(gen, nil, WithGenerateTimeout(20*time.Millisecond))
		_, err := m.Execute(ctx, newTestSession(t), EngineCalculator, calculatorValues())
		assert.ErrorIs(t, err, ErrGenerationFailed)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("generator panic", func(t *testing.T) {
		gen := GeneratorFunc(func(context.Context, Engine, map[string]interface{}) (string, error) {
			panic("boom")
		})
		_, err := NewManager(gen, nil).Execute(ctx, newTestSession(t), EngineCalculator, calculatorValues())
		assert.ErrorIs(t, err, ErrGenerationFailed)
	})
}

func TestSelectEngine(t *testing.T) {
	e, err := SelectEngine(RequestCalculator)
	require.NoError(t, err)
	assert.Equal(t, EngineCalculator, e.Code)

	_, err = SelectEngine("pricing")
	assert.ErrorIs(t, err, ErrEngineNotFound)

	assert.Equal(t, []string{EngineCalculator, EngineLocalization, EnginePillarContent, EngineQAGuard}, EngineCodes())
}
