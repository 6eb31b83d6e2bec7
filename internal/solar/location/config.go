// Package location resolves the effective solar configuration for a state and
// city from three tiers: national defaults, state overrides and city overrides.
package location

// Config is the effective configuration consumed by the calculation engine.
// After resolution every field except Discoms, RoofConstraintsNote and
// FallbackMessage holds a value taken from some tier.
type Config struct {
	AvgUnitCost            float64  `json:"avgUnitCost"`
	UnitsPerKW             float64  `json:"unitsPerKw"`
	AreaPerKW              float64  `json:"areaPerKw"`
	CostPerKWLow           float64  `json:"costPerKwLow"`
	CostPerKWHigh          float64  `json:"costPerKwHigh"`
	SubsidyCapKW           float64  `json:"subsidyCapKw"`
	SubsidyUpTo2KW         float64  `json:"subsidyUpto2kw"`
	Subsidy2To3KW          float64  `json:"subsidy2to3kw"`
	ApprovalTimeDays       string   `json:"approvalTimeDays"`
	MaintenanceCostPercent float64  `json:"maintenanceCostPercent"`
	ResultLabel            string   `json:"resultLabel"`
	AccuracyNote           string   `json:"accuracyNote"`
	DataFreshnessNote      string   `json:"dataFreshnessNote"`
	Discoms                []string `json:"discoms,omitempty"`
	RoofConstraintsNote    string   `json:"roofConstraintsNote,omitempty"`
	FallbackMessage        string   `json:"fallbackMessage,omitempty"`
}

// Override is one tier's partial configuration. A nil field leaves the lower
// tier's value in place. DataFreshnessNote and FallbackMessage are not
// overridable.
type Override struct {
	AvgUnitCost            *float64 `json:"avgUnitCost,omitempty" mapstructure:"avg_unit_cost"`
	UnitsPerKW             *float64 `json:"unitsPerKw,omitempty" mapstructure:"units_per_kw"`
	AreaPerKW              *float64 `json:"areaPerKw,omitempty" mapstructure:"area_per_kw"`
	CostPerKWLow           *float64 `json:"costPerKwLow,omitempty" mapstructure:"cost_per_kw_low"`
	CostPerKWHigh          *float64 `json:"costPerKwHigh,omitempty" mapstructure:"cost_per_kw_high"`
	SubsidyCapKW           *float64 `json:"subsidyCapKw,omitempty" mapstructure:"subsidy_cap_kw"`
	SubsidyUpTo2KW         *float64 `json:"subsidyUpto2kw,omitempty" mapstructure:"subsidy_upto_2kw"`
	Subsidy2To3KW          *float64 `json:"subsidy2to3kw,omitempty" mapstructure:"subsidy_2to_3kw"`
	ApprovalTimeDays       *string  `json:"approvalTimeDays,omitempty" mapstructure:"approval_time_days"`
	MaintenanceCostPercent *float64 `json:"maintenanceCostPercent,omitempty" mapstructure:"maintenance_cost_percent"`
	ResultLabel            *string  `json:"resultLabel,omitempty" mapstructure:"result_label"`
	AccuracyNote           *string  `json:"accuracyNote,omitempty" mapstructure:"accuracy_note"`
	Discoms                []string `json:"discoms,omitempty" mapstructure:"discoms"`
	RoofConstraintsNote    *string  `json:"roofConstraintsNote,omitempty" mapstructure:"roof_constraints_note"`
}

// MergeOverride returns base with every field o specifies replaced.
func MergeOverride(base Config, o Override) Config {
	out := base
	setFloat(&out.AvgUnitCost, o.AvgUnitCost)
	setFloat(&out.UnitsPerKW, o.UnitsPerKW)
	setFloat(&out.AreaPerKW, o.AreaPerKW)
	setFloat(&out.CostPerKWLow, o.CostPerKWLow)
	setFloat(&out.CostPerKWHigh, o.CostPerKWHigh)
	setFloat(&out.SubsidyCapKW, o.SubsidyCapKW)
	setFloat(&out.SubsidyUpTo2KW, o.SubsidyUpTo2KW)
	setFloat(&out.Subsidy2To3KW, o.Subsidy2To3KW)
	setString(&out.ApprovalTimeDays, o.ApprovalTimeDays)
	setFloat(&out.MaintenanceCostPercent, o.MaintenanceCostPercent)
	setString(&out.ResultLabel, o.ResultLabel)
	setString(&out.AccuracyNote, o.AccuracyNote)
	if o.Discoms != nil {
		out.Discoms = append([]string(nil), o.Discoms...)
	} else if base.Discoms != nil {
		out.Discoms = append([]string(nil), base.Discoms...)
	}
	setString(&out.RoofConstraintsNote, o.RoofConstraintsNote)
	return out
}

// Merge layers next over o: fields next specifies win.
func (o Override) Merge(next Override) Override {
	out := o
	if next.AvgUnitCost != nil {
		out.AvgUnitCost = next.AvgUnitCost
	}
	if next.UnitsPerKW != nil {
		out.UnitsPerKW = next.UnitsPerKW
	}
	if next.AreaPerKW != nil {
		out.AreaPerKW = next.AreaPerKW
	}
	if next.CostPerKWLow != nil {
		out.CostPerKWLow = next.CostPerKWLow
	}
	if next.CostPerKWHigh != nil {
		out.CostPerKWHigh = next.CostPerKWHigh
	}
	if next.SubsidyCapKW != nil {
		out.SubsidyCapKW = next.SubsidyCapKW
	}
	if next.SubsidyUpTo2KW != nil {
		out.SubsidyUpTo2KW = next.SubsidyUpTo2KW
	}
	if next.Subsidy2To3KW != nil {
		out.Subsidy2To3KW = next.Subsidy2To3KW
	}
	if next.ApprovalTimeDays != nil {
		out.ApprovalTimeDays = next.ApprovalTimeDays
	}
	if next.MaintenanceCostPercent != nil {
		out.MaintenanceCostPercent = next.MaintenanceCostPercent
	}
	if next.ResultLabel != nil {
		out.ResultLabel = next.ResultLabel
	}
	if next.AccuracyNote != nil {
		out.AccuracyNote = next.AccuracyNote
	}
	if next.Discoms != nil {
		out.Discoms = next.Discoms
	}
	if next.RoofConstraintsNote != nil {
		out.RoofConstraintsNote = next.RoofConstraintsNote
	}
	return out
}

// IsZero reports whether o specifies no field at all.
func (o Override) IsZero() bool {
	return o.AvgUnitCost == nil && o.UnitsPerKW == nil && o.AreaPerKW == nil &&
		o.CostPerKWLow == nil && o.CostPerKWHigh == nil && o.SubsidyCapKW == nil &&
		o.SubsidyUpTo2KW == nil && o.Subsidy2To3KW == nil && o.ApprovalTimeDays == nil &&
		o.MaintenanceCostPercent == nil && o.ResultLabel == nil && o.AccuracyNote == nil &&
		o.Discoms == nil && o.RoofConstraintsNote == nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// F and S build Override literals.
func F(v float64) *float64 { return &v }

func S(v string) *string { return &v }
