package engine

import (
	"fmt"

	"solar-workers/internal/solar/location"
	"solar-workers/internal/solar/money"
)

// Recommendation is a system size with a plain-language explanation.
type Recommendation struct {
	SizeKW       float64 `json:"sizeKW"`
	MonthlyUnits float64 `json:"monthlyUnits"`
	Explanation  string  `json:"explanation"`
}

// Recommend sizes a system for bill and explains the subsidy position.
func Recommend(bill float64, cfg location.Config) (Recommendation, error) {
	if !(bill > 0) {
		return Recommendation{}, fmt.Errorf("%w: monthly bill must be a positive amount, got %v", ErrInvalidInput, bill)
	}
	if err := checkConfig(cfg); err != nil {
		return Recommendation{}, err
	}

	monthlyUnits := bill / cfg.AvgUnitCost
	size := RoundToValidKW(monthlyUnits / cfg.UnitsPerKW)
	units := money.Round(monthlyUnits)

	explanation := fmt.Sprintf("Based on your ₹%s monthly bill, you use approximately %s units per month. ",
		money.FormatINR(bill), formatNumber(units))
	if size <= 3 {
		explanation += fmt.Sprintf("A %skW system will cover most of your electricity needs and is eligible for the maximum central subsidy.",
			formatNumber(size))
	} else {
		explanation += fmt.Sprintf("A %skW system is recommended to cover your consumption. Note that systems above 3kW are not eligible for central subsidy.",
			formatNumber(size))
	}

	return Recommendation{SizeKW: size, MonthlyUnits: units, Explanation: explanation}, nil
}

// BillBounds are the accepted monthly bill limits of the calculator form.
type BillBounds struct {
	Min float64
	Max float64
}

var (
	ErrBillTooLow  = fmt.Errorf("%w: monthly bill too low", ErrInvalidInput)
	ErrBillTooHigh = fmt.Errorf("%w: monthly bill unusually high", ErrInvalidInput)
)

// Check rejects bills outside the bounds with the form's user-facing messages.
func (b BillBounds) Check(bill float64) error {
	if !(bill > 0) {
		return fmt.Errorf("%w: monthly bill must be a positive amount, got %v", ErrInvalidInput, bill)
	}
	if b.Min > 0 && bill < b.Min {
		return fmt.Errorf("%w. Solar may not be cost-effective for bills under ₹%s", ErrBillTooLow, money.FormatINR(b.Min))
	}
	if b.Max > 0 && bill > b.Max {
		return fmt.Errorf("%w. Please verify the amount or contact us for commercial solutions", ErrBillTooHigh)
	}
	return nil
}

func formatNumber(v float64) string {
	return money.FormatINR(v)
}
