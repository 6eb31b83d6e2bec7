// Package engine derives system size, cost, subsidy, savings, payback and ROI
// from a monthly electricity bill and a resolved location configuration.
package engine

import (
	"errors"
	"fmt"
	"math"

	"solar-workers/internal/solar/location"
	"solar-workers/internal/solar/money"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidConfig = errors.New("invalid location config")
)

// ValidSizes are the installable system sizes in kW, ascending.
var ValidSizes = []float64{1, 2, 3, 4, 5, 6, 7, 8, 10}

// SnapTolerance is how close a raw size must be to a valid size to snap to it.
const SnapTolerance = 0.2

// ROIYears is the horizon of the headline ROI figure.
const ROIYears = 25

// DefaultDiscoms is shown when a location has no distribution company list.
var DefaultDiscoms = []string{"Check with your local provider"}

type Inputs struct {
	MonthlyBill float64 `json:"monthlyBill"`
	State       string  `json:"state,omitempty"`
	City        string  `json:"city,omitempty"`
}

// Calculate runs the savings model. Steps are order-dependent.
func Calculate(in Inputs, cfg location.Config) (*Result, error) {
	if !(in.MonthlyBill > 0) || math.IsInf(in.MonthlyBill, 1) {
		return nil, fmt.Errorf("%w: monthly bill must be a positive amount, got %v", ErrInvalidInput, in.MonthlyBill)
	}
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}

	monthlyUnits := in.MonthlyBill / cfg.AvgUnitCost
	rawKW := monthlyUnits / cfg.UnitsPerKW
	kw := RoundToValidKW(rawKW)

	gross := Range{
		Low:  money.Mul(kw, cfg.CostPerKWLow),
		High: money.Mul(kw, cfg.CostPerKWHigh),
	}
	subsidy := Subsidy(kw, cfg)
	net := Range{Low: gross.Low - subsidy, High: gross.High - subsidy}

	monthlyGeneration := kw * cfg.UnitsPerKW
	monthlySavings := money.Mul(monthlyGeneration, cfg.AvgUnitCost)
	annualSavings := money.Mul(monthlyGeneration*12, cfg.AvgUnitCost)

	discoms := DefaultDiscoms
	if len(cfg.Discoms) > 0 {
		discoms = cfg.Discoms
	}

	return &Result{
		Inputs: InputSummary{
			MonthlyBill:  in.MonthlyBill,
			MonthlyUnits: money.Round(monthlyUnits),
			Location:     locationLabel(in),
		},
		System: System{
			RecommendedKW:     kw,
			RoofAreaSqFt:      kw * cfg.AreaPerKW,
			MonthlyGeneration: monthlyGeneration,
			AnnualGeneration:  monthlyGeneration * 12,
		},
		Cost: Cost{
			GrossRange: gross,
			Subsidy:    subsidy,
			NetRange:   net,
			CostPerKWRange: Range{
				Low:  money.Round(gross.Low / kw),
				High: money.Round(gross.High / kw),
			},
		},
		Financial: Financial{
			MonthlySavings: monthlySavings,
			AnnualSavings:  annualSavings,
			PaybackYears:   CalculatePayback(net, annualSavings),
			ROI25Years:     CalculateROI(net.Low, annualSavings, ROIYears),
		},
		Info: Info{
			ApprovalTime:        cfg.ApprovalTimeDays,
			MaintenanceCost:     money.Round(net.Low * cfg.MaintenanceCostPercent / 100),
			ResultLabel:         cfg.ResultLabel,
			AccuracyNote:        cfg.AccuracyNote,
			DataFreshnessNote:   cfg.DataFreshnessNote,
			Discoms:             append([]string(nil), discoms...),
			RoofConstraintsNote: cfg.RoofConstraintsNote,
			FallbackMessage:     cfg.FallbackMessage,
		},
		Metadata: Metadata{
			LocationLevel: location.Level(in.State, in.City),
			ConfigSource:  location.Source(in.State, in.City),
		},
	}, nil
}

// RoundToValidKW snaps raw to the first valid size within SnapTolerance,
// else the smallest valid size >= raw, else raw rounded up to a whole kW.
func RoundToValidKW(raw float64) float64 {
	for _, size := range ValidSizes {
		if math.Abs(raw-size) < SnapTolerance {
			return size
		}
	}
	for _, size := range ValidSizes {
		if raw <= size {
			return size
		}
	}
	return math.Ceil(raw)
}

// Subsidy is the central subsidy for kw. kw is clamped to the subsidy cap for
// the lookup only.
func Subsidy(kw float64, cfg location.Config) float64 {
	if kw > cfg.SubsidyCapKW {
		kw = cfg.SubsidyCapKW
	}
	switch {
	case kw <= 2:
		return money.Round(cfg.SubsidyUpTo2KW)
	case kw <= 3:
		return money.Round(cfg.Subsidy2To3KW)
	default:
		return 0
	}
}

// IsSubsidyEligible reports whether kw is within the subsidy cap.
func IsSubsidyEligible(kw float64, cfg location.Config) bool {
	return kw <= cfg.SubsidyCapKW
}

// CalculatePayback returns the payback range in years, or NotApplicable when
// there are no savings to pay the system back.
func CalculatePayback(net Range, annualSavings float64) Payback {
	if annualSavings <= 0 {
		return PaybackNotApplicable()
	}
	low := net.Low / annualSavings
	high := net.High / annualSavings
	return Payback{
		Available: true,
		Min:       money.Round1(low),
		Max:       money.Round1(high),
		Average:   money.Round1((low + high) / 2),
	}
}

// CalculateROI is the percentage return over years. Zero net cost has no
// defined ROI.
func CalculateROI(netCost, annualSavings float64, years int) ROI {
	if netCost == 0 {
		return ROINotApplicable()
	}
	profit := annualSavings*float64(years) - netCost
	return ROI{Available: true, Percent: money.Round(profit / netCost * 100)}
}

func checkConfig(cfg location.Config) error {
	if !(cfg.AvgUnitCost > 0) {
		return fmt.Errorf("%w: avgUnitCost must be positive", ErrInvalidConfig)
	}
	if !(cfg.UnitsPerKW > 0) {
		return fmt.Errorf("%w: unitsPerKw must be positive", ErrInvalidConfig)
	}
	return nil
}

func locationLabel(in Inputs) string {
	switch {
	case in.City != "" && in.State != "":
		return in.City + ", " + in.State
	case in.City != "":
		return in.City
	case in.State != "":
		return in.State
	default:
		return "Not specified"
	}
}
