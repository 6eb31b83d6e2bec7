// pkg/registry/activities.go
package registry

const (
	CategoryCalculator = "calculator"
	CategoryContent    = "content"
	registryVersion    = "1.0.0"
)

func object(props map[string]string, required ...string) map[string]interface{} {
	properties := make(map[string]interface{}, len(props))
	for name, typ := range props {
		properties[name] = map[string]interface{}{"type": typ}
	}
	schema := map[string]interface{}{"type": "object", "properties": properties}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// Default describes the solar workers shipped with the worker manager.
func Default() *ActivityRegistry {
	reg := &ActivityRegistry{
		Version: registryVersion,
		Activities: []Activity{
			{
				ID:          "resolve-location-config",
				DisplayName: "Resolve Location Config",
				Description: "Merges national, state and city tiers into the effective solar configuration",
				Category:    CategoryCalculator,
				TaskType:    "resolve-location-config",
				InputSchema: object(map[string]string{"state": "string", "city": "string", "includeLocations": "boolean"}),
				OutputSchema: object(map[string]string{
					"locationConfig": "object", "locationLevel": "string", "configSource": "string", "usedFallback": "boolean",
				}),
				ErrorCodes: []string{"SCHEMA_VALIDATION_FAILED"},
				Timeout:    "5s",
				Tags:       []string{"location"},
			},
			{
				ID:          "calculate-solar-savings",
				DisplayName: "Calculate Solar Savings",
				Description: "Recommends a system size and estimates cost, subsidy, savings, payback and ROI",
				Category:    CategoryCalculator,
				TaskType:    "calculate-solar-savings",
				InputSchema: object(map[string]string{"monthlyBill": "number", "state": "string", "city": "string"}),
				OutputSchema: object(map[string]string{
					"recommendedKW": "number", "subsidyEligible": "boolean", "locationLevel": "string",
					"savings": "object", "recommendation": "object",
				}),
				ErrorCodes: []string{"INVALID_INPUT", "SCHEMA_VALIDATION_FAILED"},
				Timeout:    "10s",
				Tags:       []string{"savings", "subsidy"},
			},
			{
				ID:           "evaluate-installer-quote",
				DisplayName:  "Evaluate Installer Quote",
				Description:  "Classifies an installer quote against city-adjusted market benchmarks",
				Category:     CategoryCalculator,
				TaskType:     "evaluate-installer-quote",
				InputSchema:  object(map[string]string{"systemSizeKW": "number", "totalQuote": "number", "city": "string"}),
				OutputSchema: object(map[string]string{"bucket": "string", "isFair": "boolean", "quoteVerdict": "object"}),
				ErrorCodes:   []string{"INVALID_INPUT", "SCHEMA_VALIDATION_FAILED"},
				Timeout:      "5s",
				Tags:         []string{"quote"},
			},
			{
				ID:          "check-content-compliance",
				DisplayName: "Check Content Compliance",
				Description: "Runs the QA guard over generated content and records an audit entry",
				Category:    CategoryContent,
				TaskType:    "check-content-compliance",
				InputSchema: object(map[string]string{
					"content": "string", "engineUsed": "string", "calculatorOutputs": "object",
					"locationConfig": "object", "sessionContext": "object", "closeSession": "boolean",
				}, "content"),
				OutputSchema: object(map[string]string{
					"qaResult": "object", "compliancePassed": "boolean", "complianceSessionId": "string",
				}),
				ErrorCodes: []string{"ENGINE_NOT_FOUND", "SCHEMA_VALIDATION_FAILED"},
				Timeout:    "10s",
				Tags:       []string{"compliance", "audit"},
			},
			{
				ID:          "generate-calculator-insight",
				DisplayName: "Generate Calculator Insight",
				Description: "Generates explanation content with a content engine and checks it",
				Category:    CategoryContent,
				TaskType:    "generate-calculator-insight",
				InputSchema: object(map[string]string{"requestType": "string", "engineCode": "string", "engineInputs": "object"}, "engineInputs"),
				OutputSchema: object(map[string]string{
					"generated": "boolean", "insightContent": "string", "qaResult": "object", "generationError": "string",
				}),
				ErrorCodes: []string{"INVALID_INPUT", "ENGINE_NOT_FOUND", "SCHEMA_VALIDATION_FAILED"},
				Timeout:    "15s",
				Retries:    1,
				Tags:       []string{"compliance", "content"},
			},
			{
				ID:          "estimate-national-savings",
				DisplayName: "Estimate National Savings",
				Description: "Estimates savings from state market data with central and state subsidies",
				Category:    CategoryCalculator,
				TaskType:    "estimate-national-savings",
				InputSchema: object(map[string]string{
					"monthlyBill": "number", "state": "string", "city": "string", "homeType": "string",
					"roofOwnership": "string", "roofArea": "string", "discom": "string",
				}),
				OutputSchema: object(map[string]string{"systemSizeKW": "number", "subsidyApplied": "boolean", "nationalEstimate": "object"}),
				ErrorCodes:   []string{"INVALID_INPUT", "UNKNOWN_LOCATION", "SCHEMA_VALIDATION_FAILED"},
				Timeout:      "5s",
				Tags:         []string{"savings", "subsidy"},
			},
			{
				ID:           "check-apartment-feasibility",
				DisplayName:  "Check Apartment Feasibility",
				Description:  "Reports whether a flat owner can use shared rooftop solar in their state",
				Category:     CategoryCalculator,
				TaskType:     "check-apartment-feasibility",
				InputSchema:  object(map[string]string{"state": "string", "rooftopAccess": "string"}),
				OutputSchema: object(map[string]string{"apartmentFeasible": "boolean", "apartmentVerdict": "object", "localRules": "object"}),
				ErrorCodes:   []string{"INVALID_INPUT", "SCHEMA_VALIDATION_FAILED"},
				Timeout:      "5s",
				Tags:         []string{"apartment"},
			},
		},
	}
	for i := range reg.Activities {
		a := &reg.Activities[i]
		a.Version = registryVersion
		a.ImplementationStatus = StatusCompleted
		a.Workflows = []string{"solar-estimate"}
	}
	return reg
}
