// internal/workers/calculator/check-content-compliance/models.go
package checkcontentcompliance

import "solar-workers/internal/solar/compliance"

type Input struct {
	Content           string                        `json:"content"`
	EngineUsed        string                        `json:"engineUsed,omitempty"`
	CalculatorOutputs *compliance.CalculatorOutputs `json:"calculatorOutputs,omitempty"`
	LocationConfig    *compliance.LocationCosts     `json:"locationConfig,omitempty"`
	SessionContext    map[string]interface{}        `json:"sessionContext,omitempty"`
	CloseSession      bool                          `json:"closeSession,omitempty"`
}

type Output struct {
	QAResult         compliance.Report         `json:"qaResult"`
	CompliancePassed bool                      `json:"compliancePassed"`
	SessionID        string                    `json:"complianceSessionId"`
	SessionReport    *compliance.SessionReport `json:"complianceSessionReport,omitempty"`
}
