// internal/workers/calculator/calculate-solar-savings/models.go
package calculatesolarsavings

import "solar-workers/internal/solar/engine"

type Input struct {
	MonthlyBill float64 `json:"monthlyBill"`
	State       string  `json:"state,omitempty"`
	City        string  `json:"city,omitempty"`
}

type Output struct {
	RecommendedKW   float64               `json:"recommendedKW"`
	SubsidyEligible bool                  `json:"subsidyEligible"`
	LocationLevel   string                `json:"locationLevel"`
	Savings         *engine.Result        `json:"savings"`
	Recommendation  engine.Recommendation `json:"recommendation"`
}
