package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"solar-workers/internal/solar/engine"
)

func withNetRange() Inputs {
	return Inputs{CalculatorOutputs: &CalculatorOutputs{
		Cost: &CostSummary{NetRange: &engine.Range{Low: 18000, High: 138000}},
	}}
}

func TestCheck_BarePrice(t *testing.T) {
	report := Check("Installation costs ₹45,000 for your home", withNetRange())

	assert.Equal(t, StatusFail, report.Status)
	assert.Equal(t, []string{ViolationBarePrices}, report.Violations)
	assert.Equal(t, []Citation{{Number: "₹45,000", Source: SourceCalculatorNetRange, Context: "numeric_claim"}}, report.Citations)
	assert.Empty(t, report.VocabularyUsed)
}

func TestCheck_UncitedFigure(t *testing.T) {
	report := Check("Installation costs ₹45,000 for your home", Inputs{})

	assert.Equal(t, StatusFail, report.Status)
	assert.Equal(t, []string{
		ViolationBarePrices,
		`Number "₹45,000" lacks clear config source`,
	}, report.Violations)
	assert.Equal(t, SourceNationalDefaults, report.Citations[0].Source)
}

func TestCheck_RangedFigures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"hyphen", "Costs typically range ₹45,000-85,000 per kW"},
		{"spaced hyphen", "Costs typically range ₹45,000 - ₹85,000 per kW"},
		{"en dash", "Costs typically range ₹50,000–₹70,000 per kW"},
		{"to", "Costs typically range from ₹80,000 to ₹1,10,000"},
		{"to bare grouped amount", "Costs typically range from ₹80,000 to 1,10,000"},
	}

	in := Inputs{LocationConfig: &LocationCosts{CostPerKWLow: 45000, CostPerKWHigh: 85000}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Check(tt.content, in)
			assert.Equal(t, StatusPass, report.Status, report.Violations)
			for _, c := range report.Citations {
				assert.Equal(t, SourceLocationCostPerKW, c.Source)
			}
			assert.Contains(t, report.VocabularyUsed, VocabularyUse{Word: "typically", Type: VocabularySafe, Context: "used"})
		})
	}
}

func TestCheck_JoinedToNonAmountIsStillBare(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"year before hyphen", "Since 2024 - ₹45,000 is the price"},
		{"count after to", "Pay ₹45,000 to 3 installers"},
		{"small number after hyphen", "Panel ₹45,000 - 2 per roof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Check(tt.content, withNetRange())
			assert.Equal(t, StatusFail, report.Status)
			assert.Equal(t, []string{ViolationBarePrices}, report.Violations)
		})
	}
}

func TestCheck_CombinedSources(t *testing.T) {
	in := withNetRange()
	in.LocationConfig = &LocationCosts{CostPerKWLow: 50000}

	report := Check("Net cost ₹18,000-₹1,38,000", in)
	assert.Equal(t, StatusPass, report.Status, report.Violations)
	assert.Len(t, report.Citations, 2)
	assert.Equal(t, "calculator.cost.netRange, locationConfig.cost_per_kw", report.Citations[0].Source)
}

func TestCheck_ForbiddenPhrasesAndBannedWords(t *testing.T) {
	report := Check("You WILL RECEIVE a Guaranteed final cost", Inputs{})

	assert.Equal(t, StatusFail, report.Status)
	assert.Equal(t, []string{
		"Contains guarantee language",
		"Promises specific outcomes",
		"Presents costs as final",
		`Banned vocabulary detected: "guaranteed"`,
		`Banned vocabulary detected: "final"`,
		`Banned vocabulary detected: "will"`,
	}, report.Violations)
	assert.Len(t, report.VocabularyUsed, 3)
	for _, v := range report.VocabularyUsed {
		assert.Equal(t, VocabularyBanned, v.Type)
	}
}

func TestCheck_SafeWordsNeverViolate(t *testing.T) {
	report := Check("Savings may vary and usually depend on usage", Inputs{})

	assert.Equal(t, StatusPass, report.Status)
	assert.Empty(t, report.Violations)
	assert.Equal(t, []VocabularyUse{
		{Word: "usually", Type: VocabularySafe, Context: "used"},
		{Word: "may", Type: VocabularySafe, Context: "used"},
	}, report.VocabularyUsed)
}

func TestCheck_EmptyContent(t *testing.T) {
	report := Check("", Inputs{})
	assert.True(t, report.Passed())
	assert.NotNil(t, report.Violations)
	assert.NotNil(t, report.Citations)
}

func TestFigures(t *testing.T) {
	assert.Equal(t, []string{"₹45,000", "₹1.50"}, Figures("₹45,000 and ₹1.50 and 300"))
}

func TestOutputsFromResult(t *testing.T) {
	assert.Nil(t, OutputsFromResult(nil))

	out := OutputsFromResult(&engine.Result{Cost: engine.Cost{NetRange: engine.Range{Low: 1, High: 2}}})
	assert.Equal(t, &engine.Range{Low: 1, High: 2}, out.Cost.NetRange)
}
