package location

const (
	stateAccuracyNote = "Based on state electricity tariffs and local pricing"
	cityAccuracyNote  = "Using local installer data and pricing"
)

// NationalDefaults is the total base record every resolution starts from.
func NationalDefaults() Config {
	return Config{
		AvgUnitCost:            8.0,
		UnitsPerKW:             120,
		AreaPerKW:              100,
		CostPerKWLow:           45000,
		CostPerKWHigh:          85000,
		SubsidyCapKW:           3,
		SubsidyUpTo2KW:         78000,
		Subsidy2To3KW:          117000,
		ApprovalTimeDays:       "30-60",
		MaintenanceCostPercent: 0.5,
		ResultLabel:            "Broad national estimate",
		AccuracyNote:           "Select your state for location-adjusted estimates",
		DataFreshnessNote:      "Data updated: March 2025. Figures are estimates for informational purposes only; final costs depend on site survey.",
	}
}

func stateOverride(display string, unitCost, low, high float64, approval string, discoms ...string) StateEntry {
	return StateEntry{
		DisplayName: display,
		Override: Override{
			AvgUnitCost:      F(unitCost),
			CostPerKWLow:     F(low),
			CostPerKWHigh:    F(high),
			ApprovalTimeDays: S(approval),
			Discoms:          discoms,
			ResultLabel:      S("Location-adjusted estimate for " + display),
			AccuracyNote:     S(stateAccuracyNote),
		},
	}
}

func cityOverride(display string, state StateKey, low, high float64, approval, roofNote string) CityEntry {
	o := Override{
		CostPerKWLow:     F(low),
		CostPerKWHigh:    F(high),
		ApprovalTimeDays: S(approval),
		ResultLabel:      S("Locally refined estimate for " + display),
		AccuracyNote:     S(cityAccuracyNote),
	}
	if roofNote != "" {
		o.RoofConstraintsNote = S(roofNote)
	}
	return CityEntry{DisplayName: display, State: state, Override: o}
}

// DefaultTables returns a fresh copy of the built-in tiers for India.
func DefaultTables() *Tables {
	t := NewTables(NationalDefaults())

	t.PutState(StateMaharashtra, stateOverride("Maharashtra", 8.5, 50000, 75000, "30-45",
		"MSEDCL - Maharashtra State Electricity Distribution Co. Ltd."))
	t.PutState(StateKarnataka, stateOverride("Karnataka", 7.5, 48000, 70000, "25-40",
		"BESCOM", "CESCOM", "GESCOM", "HESCOM"))
	t.PutState(StateGujarat, stateOverride("Gujarat", 6.5, 45000, 68000, "20-35",
		"PGVCL", "DGVCL", "UGVCL", "MGVCL"))
	t.PutState(StateTamilNadu, stateOverride("Tamil Nadu", 8.0, 52000, 78000, "35-50",
		"TANGEDCO"))
	t.PutState(StateDelhi, stateOverride("Delhi", 8.0, 55000, 80000, "25-40",
		"BSES Rajdhani", "BSES Yamuna", "TPDDL"))
	t.PutState(StateRajasthan, stateOverride("Rajasthan", 6.5, 44000, 65000, "30-45",
		"JVVNL", "AVVNL", "JDVVNL"))
	t.PutState(StateMadhyaPradesh, stateOverride("Madhya Pradesh", 7.0, 46000, 68000, "30-50",
		"MPPKVVCL", "MPMKVVCL"))
	t.PutState(StateWestBengal, stateOverride("West Bengal", 7.5, 50000, 72000, "40-60",
		"CESC", "WBSEDCL"))
	t.PutState(StateAndhraPradesh, stateOverride("Andhra Pradesh", 7.5, 48000, 70000, "30-45",
		"APSPDCL", "APEPDCL", "APNPDCL", "APSPDCL (South)"))
	t.PutState(StateTelangana, stateOverride("Telangana", 8.0, 50000, 75000, "30-45",
		"TSSPDCL", "TSNPDCL"))
	t.PutState(StateUttarPradesh, stateOverride("Uttar Pradesh", 7.0, 48000, 70000, "45-60",
		"PVVNL", "MVVNL", "DVVNL", "KEVNL", "JEVNL"))

	t.PutCity(CityPune, cityOverride("Pune", StateMaharashtra, 55000, 75000, "25-40",
		"Society permissions may apply in some areas"))
	t.PutCity(CityMumbai, cityOverride("Mumbai", StateMaharashtra, 60000, 85000, "30-50",
		"High-rise buildings have specific regulations"))
	t.PutCity(CityNagpur, cityOverride("Nagpur", StateMaharashtra, 50000, 70000, "25-35", ""))
	t.PutCity(CityBangalore, cityOverride("Bangalore", StateKarnataka, 50000, 72000, "25-40",
		"BBMP regulations apply for certain zones"))
	t.PutCity(CityAhmedabad, cityOverride("Ahmedabad", StateGujarat, 45000, 65000, "20-30", ""))
	t.PutCity(CitySurat, cityOverride("Surat", StateGujarat, 44000, 64000, "20-30", ""))
	t.PutCity(CityDelhiNCR, cityOverride("Delhi NCR", StateDelhi, 55000, 78000, "25-40", ""))
	t.PutCity(CityGurgaon, cityOverride("Gurgaon", StateDelhi, 54000, 76000, "30-45", ""))
	t.PutCity(CityNoida, cityOverride("Noida", StateDelhi, 54000, 76000, "30-45", ""))

	return t
}
