package location

import "strings"

// StateKey identifies a state tier entry. Keys are case-sensitive.
type StateKey string

// CityKey identifies a city tier entry. Keys are case-sensitive.
type CityKey string

const (
	UnknownState StateKey = ""
	UnknownCity  CityKey  = ""
)

const (
	StateMaharashtra   StateKey = "maharashtra"
	StateKarnataka     StateKey = "karnataka"
	StateGujarat       StateKey = "gujarat"
	StateTamilNadu     StateKey = "tamil_nadu"
	StateDelhi         StateKey = "delhi"
	StateRajasthan     StateKey = "rajasthan"
	StateMadhyaPradesh StateKey = "madhya_pradesh"
	StateWestBengal    StateKey = "west_bengal"
	StateAndhraPradesh StateKey = "andhra_pradesh"
	StateTelangana     StateKey = "telangana"
	StateUttarPradesh  StateKey = "uttar_pradesh"
)

const (
	CityPune      CityKey = "pune"
	CityMumbai    CityKey = "mumbai"
	CityNagpur    CityKey = "nagpur"
	CityBangalore CityKey = "bangalore"
	CityAhmedabad CityKey = "ahmedabad"
	CitySurat     CityKey = "surat"
	CityDelhiNCR  CityKey = "delhi_ncr"
	CityGurgaon   CityKey = "gurgaon"
	CityNoida     CityKey = "noida"
)

// Tier is the precision of a resolved configuration.
type Tier string

const (
	TierNational Tier = "national"
	TierState    Tier = "state"
	TierCity     Tier = "city"
)

// Level reports the requested precision: city if a city was given, else
// state if a state was given, else national. It does not consult the tables.
func Level(state, city string) Tier {
	if city != "" {
		return TierCity
	}
	if state != "" {
		return TierState
	}
	return TierNational
}

// Source is the human-readable label of the tier that was requested.
func Source(state, city string) string {
	if city != "" {
		return "City: " + capitalizeFirst(city)
	}
	if state != "" {
		return "State: " + capitalizeFirst(strings.Replace(state, "_", " ", 1))
	}
	return "National averages"
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
