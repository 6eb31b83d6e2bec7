// internal/workers/calculator/generate-calculator-insight/models.go
package generatecalculatorinsight

import "solar-workers/internal/solar/compliance"

type Input struct {
	RequestType  string                 `json:"requestType,omitempty"`
	EngineCode   string                 `json:"engineCode,omitempty"`
	EngineInputs map[string]interface{} `json:"engineInputs"`
	CloseSession bool                   `json:"closeSession,omitempty"`
}

type Output struct {
	Generated       bool                      `json:"generated"`
	Content         string                    `json:"insightContent,omitempty"`
	EngineCode      string                    `json:"engineCode"`
	EngineUsed      string                    `json:"engineUsed,omitempty"`
	QAResult        *compliance.Report        `json:"qaResult,omitempty"`
	SessionID       string                    `json:"complianceSessionId"`
	GenerationError string                    `json:"generationError,omitempty"`
	SessionReport   *compliance.SessionReport `json:"complianceSessionReport,omitempty"`
}
