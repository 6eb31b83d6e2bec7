package national

// CentralSubsidy is the PM Surya Ghar subsidy schedule.
type CentralSubsidy struct {
	UpTo2KW  float64 `json:"upTo2kW"`
	TwoTo3KW float64 `json:"twoTo3kW"`
	MaxCapKW float64 `json:"maxCapKW"`
}

type City struct {
	Name       string   `json:"name"`
	Discoms    []string `json:"discoms"`
	CostFactor float64  `json:"costFactor"`
}

// State is the market data of one state. StateSubsidy below 1 is a fraction
// of the base cost, otherwise an amount per kW.
type State struct {
	Name                 string          `json:"name"`
	AvgCostPerKW         float64         `json:"avgCostPerKW"`
	MinCostPerKW         float64         `json:"minCostPerKW"`
	MaxCostPerKW         float64         `json:"maxCostPerKW"`
	AvgTariff            float64         `json:"avgTariff"`
	GenerationPerKW      float64         `json:"generationPerKW"` // units per day
	Cities               map[string]City `json:"cities"`
	CityOrder            []string        `json:"-"`
	StateSubsidy         float64         `json:"stateSubsidy"`
	NetMeteringAvailable bool            `json:"netMeteringAvailable"`
	ApprovalDays         string          `json:"approvalDays"`
}

type HomeType string

const (
	HomeIndependent HomeType = "independent"
	HomeApartment   HomeType = "apartment"
	HomeFarmhouse   HomeType = "farmhouse"
)

// Data is the full market table of the national calculator.
type Data struct {
	Central     CentralSubsidy
	States      map[string]State
	StateOrder  []string
	HomeFactors map[HomeType]float64
	RoofAreas   map[string]float64 // band key to sq ft
	AreaPerKW   float64
}

func city(name string, factor float64, discoms ...string) City {
	return City{Name: name, Discoms: discoms, CostFactor: factor}
}

// DefaultData returns the 2025 market table.
func DefaultData() *Data {
	return &Data{
		Central: CentralSubsidy{UpTo2KW: 78000, TwoTo3KW: 117000, MaxCapKW: 3},
		States: map[string]State{
			"maharashtra": {
				Name: "Maharashtra", AvgCostPerKW: 65000, MinCostPerKW: 55000, MaxCostPerKW: 75000,
				AvgTariff: 7.5, GenerationPerKW: 4.8,
				Cities: map[string]City{
					"pune":   city("Pune", 1.0, "MSEDCL"),
					"mumbai": city("Mumbai", 1.15, "BEST", "TATA Power", "MSEDCL"),
					"nagpur": city("Nagpur", 0.9, "MSEDCL"),
					"nashik": city("Nashik", 0.95, "MSEDCL"),
				},
				CityOrder:            []string{"pune", "mumbai", "nagpur", "nashik"},
				NetMeteringAvailable: true,
				ApprovalDays:         "30-60",
			},
			"karnataka": {
				Name: "Karnataka", AvgCostPerKW: 60000, MinCostPerKW: 50000, MaxCostPerKW: 70000,
				AvgTariff: 7.0, GenerationPerKW: 4.7,
				Cities: map[string]City{
					"bangalore": city("Bangalore", 1.05, "BESCOM"),
					"mysore":    city("Mysore", 1.0, "CESC"),
					"hubli":     city("Hubli", 0.95, "HESCOM"),
					"mangalore": city("Mangalore", 1.0, "MESCOM"),
				},
				CityOrder:            []string{"bangalore", "mysore", "hubli", "mangalore"},
				NetMeteringAvailable: true,
				ApprovalDays:         "45-60",
			},
			"gujarat": {
				Name: "Gujarat", AvgCostPerKW: 55000, MinCostPerKW: 45000, MaxCostPerKW: 65000,
				AvgTariff: 6.5, GenerationPerKW: 5.2,
				Cities: map[string]City{
					"ahmedabad": city("Ahmedabad", 1.0, "PGVCL", "MGVCL"),
					"surat":     city("Surat", 0.95, "UGVCL", "DGVCL"),
					"vadodara":  city("Vadodara", 1.0, "MGVCL"),
					"rajkot":    city("Rajkot", 0.9, "PGVCL"),
				},
				CityOrder:            []string{"ahmedabad", "surat", "vadodara", "rajkot"},
				StateSubsidy:         0.4,
				NetMeteringAvailable: true,
				ApprovalDays:         "30-45",
			},
			"tamil-nadu": {
				Name: "Tamil Nadu", AvgCostPerKW: 65000, MinCostPerKW: 55000, MaxCostPerKW: 75000,
				AvgTariff: 6.0, GenerationPerKW: 4.5,
				Cities: map[string]City{
					"chennai":    city("Chennai", 1.1, "TANGEDCO"),
					"coimbatore": city("Coimbatore", 1.0, "TANGEDCO"),
					"madurai":    city("Madurai", 0.95, "TANGEDCO"),
					"trichy":     city("Trichy", 0.9, "TANGEDCO"),
				},
				CityOrder:            []string{"chennai", "coimbatore", "madurai", "trichy"},
				NetMeteringAvailable: true,
				ApprovalDays:         "60-90",
			},
			"delhi": {
				Name: "Delhi NCR", AvgCostPerKW: 70000, MinCostPerKW: 60000, MaxCostPerKW: 80000,
				AvgTariff: 8.5, GenerationPerKW: 4.6,
				Cities: map[string]City{
					"delhi":     city("Delhi", 1.1, "BRPL", "BYPL", "TPDDL", "NDPL"),
					"gurgaon":   city("Gurgaon", 1.0, "DHBVN"),
					"noida":     city("Noida", 1.0, "PVVNL"),
					"faridabad": city("Faridabad", 0.95, "DHBVN"),
				},
				CityOrder:            []string{"delhi", "gurgaon", "noida", "faridabad"},
				StateSubsidy:         0.2,
				NetMeteringAvailable: true,
				ApprovalDays:         "30-45",
			},
		},
		StateOrder: []string{"maharashtra", "karnataka", "gujarat", "tamil-nadu", "delhi"},
		HomeFactors: map[HomeType]float64{
			HomeIndependent: 1.0,
			HomeApartment:   1.2,
			HomeFarmhouse:   0.9,
		},
		RoofAreas: map[string]float64{
			"less-300":  250,
			"300-600":   450,
			"600-1000":  800,
			"1000-1500": 1250,
			"more-1500": 2000,
		},
		AreaPerKW: 100,
	}
}
