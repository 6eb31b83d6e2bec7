// internal/workers/calculator/estimate-national-savings/models.go
package estimatenationalsavings

import "solar-workers/internal/solar/national"

type Input = national.Input

type Output struct {
	SystemSizeKW   float64            `json:"systemSizeKW"`
	SubsidyApplied bool               `json:"subsidyApplied"`
	Estimate       *national.Estimate `json:"nationalEstimate"`
}
