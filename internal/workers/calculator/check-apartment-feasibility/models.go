// internal/workers/calculator/check-apartment-feasibility/models.go
package checkapartmentfeasibility

import "solar-workers/internal/solar/apartment"

type Input struct {
	State         string                  `json:"state"`
	RooftopAccess apartment.RooftopAccess `json:"rooftopAccess,omitempty"`
}

type Output struct {
	Feasible   bool               `json:"apartmentFeasible"`
	Verdict    *apartment.Verdict `json:"apartmentVerdict"`
	LocalRules apartment.Rules    `json:"localRules"`
}
