// Package national estimates savings from state market data for the
// India-wide calculator, where state and city are both required.
package national

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"solar-workers/internal/solar/money"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownLocation = errors.New("unknown location")
)

// OwnershipOwn is the only roof ownership eligible for the central subsidy.
const OwnershipOwn = "own"

// SavingsCap is the largest share of the bill savings may claim.
const SavingsCap = 0.95

type Input struct {
	MonthlyBill   float64  `json:"monthlyBill"`
	State         string   `json:"state"`
	City          string   `json:"city"`
	HomeType      HomeType `json:"homeType,omitempty"`
	RoofOwnership string   `json:"roofOwnership,omitempty"`
	RoofArea      string   `json:"roofArea,omitempty"`
	Discom        string   `json:"discom,omitempty"`
}

type Subsidy struct {
	Eligible bool    `json:"eligible"`
	Amount   float64 `json:"amount"`
	Reason   string  `json:"reason"`
}

type Savings struct {
	Monthly    float64 `json:"monthly"`
	Annual     float64 `json:"annual"`
	Percentage float64 `json:"percentage"`
}

type CostRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Estimate struct {
	Location       string    `json:"location"`
	Discom         string    `json:"discom"`
	Discoms        []string  `json:"discoms"`
	ApprovalDays   string    `json:"approvalDays"`
	NetMetering    bool      `json:"netMeteringAvailable"`
	MonthlyBill    float64   `json:"monthlyBill"`
	SystemSizeKW   float64   `json:"systemSizeKW"`
	RoofLimited    bool      `json:"roofLimited"`
	TotalCost      float64   `json:"totalCost"`
	Cost           CostRange `json:"cost"`
	CentralSubsidy Subsidy   `json:"centralSubsidy"`
	StateSubsidy   Subsidy   `json:"stateSubsidy"`
	TotalSubsidy   float64   `json:"totalSubsidy"`
	NetCost        float64   `json:"netCost"`
	Savings        Savings   `json:"savings"`
	PaybackYears   Payback   `json:"paybackYears"`
}

// Payback is a number of years, or "N/A" when there are no savings to repay
// the net cost.
type Payback struct {
	Available bool
	Years     float64
}

func (p Payback) MarshalJSON() ([]byte, error) {
	if !p.Available {
		return json.Marshal("N/A")
	}
	return json.Marshal(p.Years)
}

func (p *Payback) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte(`"N/A"`)) || bytes.Equal(data, []byte("null")) {
		*p = Payback{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("payback: %w", err)
	}
	*p = Payback{Available: true, Years: v}
	return nil
}

type Calculator struct {
	data *Data
}

func NewCalculator(data *Data) *Calculator {
	if data == nil {
		data = DefaultData()
	}
	return &Calculator{data: data}
}

var defaultCalculator = NewCalculator(nil)

// Calculate estimates with the default market table.
func Calculate(in Input) (*Estimate, error) {
	return defaultCalculator.Estimate(in)
}

func (c *Calculator) Estimate(in Input) (*Estimate, error) {
	if !(in.MonthlyBill > 0) || math.IsInf(in.MonthlyBill, 1) {
		return nil, fmt.Errorf("%w: monthly bill must be a positive amount, got %v", ErrInvalidInput, in.MonthlyBill)
	}
	if in.State == "" || in.City == "" {
		return nil, fmt.Errorf("%w: please select your state and city", ErrInvalidInput)
	}
	state, ok := c.data.States[in.State]
	if !ok {
		return nil, fmt.Errorf("%w: state %q", ErrUnknownLocation, in.State)
	}
	cty, ok := state.Cities[in.City]
	if !ok {
		return nil, fmt.Errorf("%w: city %q in %s", ErrUnknownLocation, in.City, state.Name)
	}

	homeType := in.HomeType
	if homeType == "" {
		homeType = HomeIndependent
	}
	homeFactor, ok := c.data.HomeFactors[homeType]
	if !ok {
		return nil, fmt.Errorf("%w: home type %q", ErrInvalidInput, in.HomeType)
	}

	baseCostPerKW := state.AvgCostPerKW * cty.CostFactor * homeFactor

	monthlyUnits := in.MonthlyBill / state.AvgTariff
	size := math.Ceil(monthlyUnits/(state.GenerationPerKW*30)*2) / 2
	size = math.Max(size, 1)

	roofLimited := false
	if in.RoofArea != "" {
		area, ok := c.data.RoofAreas[in.RoofArea]
		if !ok {
			return nil, fmt.Errorf("%w: roof area band %q", ErrInvalidInput, in.RoofArea)
		}
		if maxSize := math.Floor(area / c.data.AreaPerKW); size > maxSize {
			size = maxSize
			roofLimited = true
		}
	}

	totalCost := money.Round(size * baseCostPerKW)
	central := c.centralSubsidy(size, homeType, in.RoofOwnership)
	stateSub := c.stateSubsidy(size, state)
	totalSubsidy := central.Amount + stateSub.Amount

	monthlyGeneration := size * state.GenerationPerKW * 30
	monthlySavings := math.Min(monthlyGeneration*state.AvgTariff, in.MonthlyBill*SavingsCap)

	netCost := totalCost - totalSubsidy
	var payback Payback
	if years, ok := money.Div(netCost, monthlySavings*12, 1); ok {
		payback = Payback{Available: true, Years: years}
	}

	discom := in.Discom
	if discom == "" && len(cty.Discoms) == 1 {
		discom = cty.Discoms[0]
	}

	return &Estimate{
		Location:     cty.Name + ", " + state.Name,
		Discom:       discom,
		Discoms:      append([]string(nil), cty.Discoms...),
		ApprovalDays: state.ApprovalDays,
		NetMetering:  state.NetMeteringAvailable,
		MonthlyBill:  in.MonthlyBill,
		SystemSizeKW: size,
		RoofLimited:  roofLimited,
		TotalCost:    totalCost,
		Cost: CostRange{
			Min: money.Round(size * state.MinCostPerKW * cty.CostFactor),
			Max: money.Round(size * state.MaxCostPerKW * cty.CostFactor),
		},
		CentralSubsidy: central,
		StateSubsidy:   stateSub,
		TotalSubsidy:   totalSubsidy,
		NetCost:        netCost,
		Savings: Savings{
			Monthly:    money.Round(monthlySavings),
			Annual:     money.Round(monthlySavings * 12),
			Percentage: money.Round(monthlySavings / in.MonthlyBill * 100),
		},
		PaybackYears: payback,
	}, nil
}

func (c *Calculator) centralSubsidy(size float64, home HomeType, ownership string) Subsidy {
	if home == HomeApartment || ownership != OwnershipOwn {
		return Subsidy{Reason: "Not eligible for residential subsidy"}
	}
	amount := c.data.Central.TwoTo3KW
	if size <= 2 {
		amount = c.data.Central.UpTo2KW
	}
	return Subsidy{Eligible: true, Amount: amount, Reason: "PM-Surya Ghar Yojana (subject to approval)"}
}

func (c *Calculator) stateSubsidy(size float64, state State) Subsidy {
	switch {
	case state.StateSubsidy <= 0:
		return Subsidy{Reason: "No state subsidy available"}
	case state.StateSubsidy < 1:
		return Subsidy{
			Eligible: true,
			Amount:   money.Round(size * state.AvgCostPerKW * state.StateSubsidy),
			Reason:   fmt.Sprintf("%s%% state subsidy", money.FormatINR(money.Round(state.StateSubsidy*100))),
		}
	default:
		return Subsidy{
			Eligible: true,
			Amount:   money.Round(size * state.StateSubsidy),
			Reason:   fmt.Sprintf("₹%s/kW state incentive", money.FormatINR(state.StateSubsidy)),
		}
	}
}

// Location is a selectable state or city.
type Location struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

func (c *Calculator) States() []Location {
	out := make([]Location, 0, len(c.data.StateOrder))
	for _, k := range c.data.StateOrder {
		out = append(out, Location{Key: k, Name: c.data.States[k].Name})
	}
	return out
}

// Cities lists the cities of state, or nil for an unknown state.
func (c *Calculator) Cities(state string) []Location {
	s, ok := c.data.States[state]
	if !ok {
		return nil
	}
	out := make([]Location, 0, len(s.CityOrder))
	for _, k := range s.CityOrder {
		out = append(out, Location{Key: k, Name: s.Cities[k].Name})
	}
	return out
}
