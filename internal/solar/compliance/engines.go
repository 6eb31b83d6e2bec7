package compliance

import (
	"errors"
	"fmt"
	"sort"
)

const (
	EnginePillarContent  = "Solar_Pillar_Content_Engine"
	EngineCalculator     = "Calculator_Insight_Engine"
	EngineLocalization   = "Solar_Localization_Engine"
	EngineQAGuard        = "Solar_QA_Guard"
	RequestPillarContent = "pillar_content"
	RequestCalculator    = "calculator_explain"
	RequestLocalization  = "localization"
)

var (
	ErrEngineNotFound = errors.New("engine not found")
	ErrMissingInputs  = errors.New("missing required inputs")
)

// Engine describes a content generator and what it needs.
type Engine struct {
	Name              string   `json:"name"`
	Code              string   `json:"code"`
	Rules             []string `json:"rules"`
	Scope             []string `json:"scope"`
	InputRequirements []string `json:"inputRequirements"`
	OutputFormat      string   `json:"outputFormat"`
}

// Missing returns the required inputs absent from values, in declared order.
func (e Engine) Missing(values map[string]interface{}) []string {
	var missing []string
	for _, req := range e.InputRequirements {
		if _, ok := values[req]; !ok {
			missing = append(missing, req)
		}
	}
	return missing
}

// Validate fails with ErrMissingInputs when a required input is absent.
func (e Engine) Validate(values map[string]interface{}) error {
	if missing := e.Missing(values); len(missing) > 0 {
		return fmt.Errorf("%w for %s: %v", ErrMissingInputs, e.Name, missing)
	}
	return nil
}

var engines = map[string]Engine{
	EnginePillarContent: {
		Name: "National Content Strategist",
		Code: EnginePillarContent,
		Rules: []string{
			"Explain concepts, not prices",
			"Use ranges and conditional framing",
			"Never invent prices or subsidies",
			"Include at least one limitation or caveat",
		},
		Scope:             []string{"/solar-cost-india", "/solar-installation-guide", "comparison pages"},
		InputRequirements: []string{"topic", "targetAudience", "keyPoints"},
		OutputFormat:      "structured_html",
	},
	EngineCalculator: {
		Name: "Calculator Insight Engine",
		Code: EngineCalculator,
		Rules: []string{
			"Explain what the results mean",
			"Never change calculator numbers",
			"Never promise savings or subsidies",
			"Include one assumption, one limitation and one next action",
		},
		Scope:             []string{"/solar-calculator", "result popups", "lead explanation text"},
		InputRequirements: []string{"calculatorOutputs", "locationContext", "configSource"},
		OutputFormat:      "explanation_text",
	},
	EngineLocalization: {
		Name: "State & City Localizer",
		Code: EngineLocalization,
		Rules: []string{
			"Adjust framing for location",
			"Never add new numbers",
			"Never override subsidy rules",
			"Push users back to the calculator",
		},
		Scope:             []string{"/solar-cost/{state}", "/solar-cost/{state}/{city}", "all state & city pages"},
		InputRequirements: []string{"nationalContent", "locationConfig", "locationType"},
		OutputFormat:      "localized_content",
	},
	EngineQAGuard: {
		Name: "QA & Compliance Guard",
		Code: EngineQAGuard,
		Rules: []string{
			"Flag exact prices without ranges",
			"Flag guarantees or promises",
			"Flag numbers not traceable to config",
			"If unsure, FAIL",
		},
		Scope:             []string{"All generated content"},
		InputRequirements: []string{"content", "engineUsed", "context"},
		OutputFormat:      "qa_report",
	},
}

var requestEngines = map[string]string{
	RequestPillarContent: EnginePillarContent,
	RequestCalculator:    EngineCalculator,
	RequestLocalization:  EngineLocalization,
}

// LookupEngine returns the engine registered under code.
func LookupEngine(code string) (Engine, error) {
	e, ok := engines[code]
	if !ok {
		return Engine{}, fmt.Errorf("%w: %s", ErrEngineNotFound, code)
	}
	return e, nil
}

// SelectEngine maps a request type to its generating engine.
func SelectEngine(requestType string) (Engine, error) {
	code, ok := requestEngines[requestType]
	if !ok {
		return Engine{}, fmt.Errorf("%w for request type: %s", ErrEngineNotFound, requestType)
	}
	return engines[code], nil
}

// EngineCodes lists the registered engines, sorted.
func EngineCodes() []string {
	codes := make([]string, 0, len(engines))
	for c := range engines {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
