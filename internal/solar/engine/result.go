package engine

import (
	"bytes"
	"encoding/json"
	"fmt"

	"solar-workers/internal/solar/location"
)

// notApplicable is how undefined payback and ROI values are serialised.
const notApplicable = "N/A"

// Result is a snapshot of one calculation. It is never mutated after Calculate returns.
type Result struct {
	Inputs    InputSummary `json:"inputs"`
	System    System       `json:"system"`
	Cost      Cost         `json:"cost"`
	Financial Financial    `json:"financial"`
	Info      Info         `json:"info"`
	Metadata  Metadata     `json:"metadata"`
}

type InputSummary struct {
	MonthlyBill  float64 `json:"monthlyBill"`
	MonthlyUnits float64 `json:"monthlyUnits"`
	Location     string  `json:"location"`
}

type System struct {
	RecommendedKW     float64 `json:"recommendedKW"`
	RoofAreaSqFt      float64 `json:"roofAreaSqFt"`
	MonthlyGeneration float64 `json:"monthlyGeneration"`
	AnnualGeneration  float64 `json:"annualGeneration"`
}

// Range is a low/high pair. Net ranges are signed.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

type Cost struct {
	GrossRange     Range   `json:"grossRange"`
	Subsidy        float64 `json:"subsidy"`
	NetRange       Range   `json:"netRange"`
	CostPerKWRange Range   `json:"costPerKWRange"`
}

type Financial struct {
	MonthlySavings float64 `json:"monthlySavings"`
	AnnualSavings  float64 `json:"annualSavings"`
	PaybackYears   Payback `json:"paybackYears"`
	ROI25Years     ROI     `json:"roi25Years"`
}

type Info struct {
	ApprovalTime        string   `json:"approvalTime"`
	MaintenanceCost     float64  `json:"maintenanceCost"`
	ResultLabel         string   `json:"resultLabel"`
	AccuracyNote        string   `json:"accuracyNote"`
	DataFreshnessNote   string   `json:"dataFreshnessNote"`
	Discoms             []string `json:"discoms"`
	RoofConstraintsNote string   `json:"roofConstraintsNote,omitempty"`
	FallbackMessage     string   `json:"fallbackMessage,omitempty"`
}

type Metadata struct {
	LocationLevel location.Tier `json:"locationLevel"`
	ConfigSource  string        `json:"configSource"`
}

// Payback is either a range of years or not applicable.
type Payback struct {
	Available bool
	Min       float64
	Max       float64
	Average   float64
}

func PaybackNotApplicable() Payback { return Payback{} }

type paybackJSON struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

func (p Payback) MarshalJSON() ([]byte, error) {
	if !p.Available {
		return json.Marshal(notApplicable)
	}
	return json.Marshal(paybackJSON{Min: p.Min, Max: p.Max, Average: p.Average})
}

func (p *Payback) UnmarshalJSON(data []byte) error {
	if isNotApplicable(data) {
		*p = PaybackNotApplicable()
		return nil
	}
	var v paybackJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("payback: %w", err)
	}
	*p = Payback{Available: true, Min: v.Min, Max: v.Max, Average: v.Average}
	return nil
}

func (p Payback) String() string {
	if !p.Available {
		return notApplicable
	}
	return fmt.Sprintf("%.1f-%.1f years", p.Min, p.Max)
}

// ROI is either a percentage or not applicable.
type ROI struct {
	Available bool
	Percent   float64
}

func ROINotApplicable() ROI { return ROI{} }

func (r ROI) MarshalJSON() ([]byte, error) {
	if !r.Available {
		return json.Marshal(notApplicable)
	}
	return json.Marshal(r.Percent)
}

func (r *ROI) UnmarshalJSON(data []byte) error {
	if isNotApplicable(data) {
		*r = ROINotApplicable()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("roi: %w", err)
	}
	*r = ROI{Available: true, Percent: v}
	return nil
}

func isNotApplicable(data []byte) bool {
	data = bytes.TrimSpace(data)
	return bytes.Equal(data, []byte(`"N/A"`)) || bytes.Equal(data, []byte("null"))
}
