// Package compliance scans generated explanatory text for guarantees, bare
// prices, untraceable figures and absolute wording, and keeps an audit trail
// of every check.
package compliance

import (
	"fmt"
	"regexp"
	"strings"

	"solar-workers/internal/solar/engine"
)

type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

const (
	SourceCalculatorNetRange = "calculator.cost.netRange"
	SourceLocationCostPerKW  = "locationConfig.cost_per_kw"
	SourceNationalDefaults   = "national_defaults"

	citationContext = "numeric_claim"
)

const ViolationBarePrices = "Contains exact prices without ranges"

var (
	currencyFigure = regexp.MustCompile(`₹\d{1,3}(,\d{3})*(\.\d{2})?`)
	rangeAfter     = regexp.MustCompile(`^\s*(?:-|–|to\b)\s*` + rangeAmount)
	rangeBefore    = regexp.MustCompile(rangeAmount + `(?:\.\d{2})?\s*(?:-|–|\bto)\s*$`)
)

// rangeAmount is the other end of a price range: a rupee figure, or a bare
// number with thousands separators. Plain counts and years do not qualify.
const rangeAmount = `(?:₹\d[\d,]*|\d{1,3}(?:,\d{2,3})+)`

// Inputs are what the content claims to explain.
type Inputs struct {
	CalculatorOutputs *CalculatorOutputs     `json:"calculatorOutputs,omitempty"`
	LocationConfig    *LocationCosts         `json:"locationConfig,omitempty"`
	Context           map[string]interface{} `json:"context,omitempty"`
}

// CalculatorOutputs is the part of a calculation result content may cite.
type CalculatorOutputs struct {
	System *engine.System `json:"system,omitempty"`
	Cost   *CostSummary   `json:"cost,omitempty"`
}

type CostSummary struct {
	NetRange *engine.Range `json:"netRange,omitempty"`
}

// LocationCosts carries the cost-per-kW fields of a resolved location config.
type LocationCosts struct {
	DisplayName   string  `json:"displayName,omitempty"`
	CostPerKWLow  float64 `json:"costPerKwLow,omitempty"`
	CostPerKWHigh float64 `json:"costPerKwHigh,omitempty"`
}

// OutputsFromResult extracts the citable parts of r.
func OutputsFromResult(r *engine.Result) *CalculatorOutputs {
	if r == nil {
		return nil
	}
	system := r.System
	net := r.Cost.NetRange
	return &CalculatorOutputs{System: &system, Cost: &CostSummary{NetRange: &net}}
}

func (in Inputs) hasNetRange() bool {
	return in.CalculatorOutputs != nil && in.CalculatorOutputs.Cost != nil && in.CalculatorOutputs.Cost.NetRange != nil
}

func (in Inputs) hasCostPerKW() bool {
	return in.LocationConfig != nil && (in.LocationConfig.CostPerKWLow != 0 || in.LocationConfig.CostPerKWHigh != 0)
}

type Citation struct {
	Number  string `json:"number"`
	Source  string `json:"source"`
	Context string `json:"context"`
}

type VocabularyUse struct {
	Word    string `json:"word"`
	Type    string `json:"type"`
	Context string `json:"context"`
}

// Report is the outcome of one check. AuditID and EngineUsed are set when
// the check ran in a Session.
type Report struct {
	Status         Status          `json:"status"`
	Violations     []string        `json:"violations"`
	Citations      []Citation      `json:"citations"`
	VocabularyUsed []VocabularyUse `json:"vocabularyUsed"`
	AuditID        string          `json:"auditId,omitempty"`
	EngineUsed     string          `json:"engineUsed,omitempty"`
}

func (r Report) Passed() bool { return r.Status == StatusPass }

// Check runs every scan over content. It has no side effects.
func Check(content string, in Inputs) Report {
	violations := checkPhrases(content)
	citations, citationViolations := checkCitations(content, in)
	vocabulary, vocabularyViolations := checkVocabulary(content)

	violations = append(violations, citationViolations...)
	violations = append(violations, vocabularyViolations...)

	status := StatusPass
	if len(violations) > 0 {
		status = StatusFail
	}
	return Report{
		Status:         status,
		Violations:     nonNil(violations),
		Citations:      nonNil(citations),
		VocabularyUsed: nonNil(vocabulary),
	}
}

// Figures returns every currency figure in content, in order.
func Figures(content string) []string {
	return currencyFigure.FindAllString(content, -1)
}

func checkPhrases(content string) []string {
	var violations []string

	locs := currencyFigure.FindAllStringIndex(content, -1)
	if len(locs) > 0 && !anyRanged(content, locs) {
		violations = append(violations, ViolationBarePrices)
	}

	lower := strings.ToLower(content)
	for _, f := range forbiddenPhrases {
		if strings.Contains(lower, f.phrase) {
			violations = append(violations, f.message)
		}
	}
	return violations
}

// anyRanged reports whether a figure is joined to another amount by a hyphen,
// en dash or "to". The other side must itself be an amount.
func anyRanged(content string, locs [][]int) bool {
	for _, loc := range locs {
		if rangeAfter.MatchString(content[loc[1]:]) || rangeBefore.MatchString(content[:loc[0]]) {
			return true
		}
	}
	return false
}

func checkCitations(content string, in Inputs) ([]Citation, []string) {
	var (
		citations  []Citation
		violations []string
	)
	for _, number := range Figures(content) {
		var sources []string
		if in.hasNetRange() {
			sources = append(sources, SourceCalculatorNetRange)
		}
		if in.hasCostPerKW() {
			sources = append(sources, SourceLocationCostPerKW)
		}
		if len(sources) == 0 {
			sources = append(sources, SourceNationalDefaults)
			violations = append(violations, fmt.Sprintf("Number \"%s\" lacks clear config source", number))
		}
		citations = append(citations, Citation{
			Number:  number,
			Source:  strings.Join(sources, ", "),
			Context: citationContext,
		})
	}
	return citations, violations
}

func checkVocabulary(content string) ([]VocabularyUse, []string) {
	var (
		used       []VocabularyUse
		violations []string
	)
	lower := strings.ToLower(content)
	for _, w := range SafeVocabulary {
		if strings.Contains(lower, w) {
			used = append(used, VocabularyUse{Word: w, Type: VocabularySafe, Context: "used"})
		}
	}
	for _, w := range BannedVocabulary {
		if strings.Contains(lower, w) {
			violations = append(violations, fmt.Sprintf("Banned vocabulary detected: \"%s\"", w))
			used = append(used, VocabularyUse{Word: w, Type: VocabularyBanned, Context: "violation"})
		}
	}
	return used, violations
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
