package location

import (
	"fmt"

	"github.com/spf13/viper"
)

// tableFile is the on-disk layout of a location overlay:
//
//	national:
//	  avg_unit_cost: 8.2
//	states:
//	  kerala:
//	    display_name: Kerala
//	    discoms: [KSEB]
//	cities:
//	  kochi:
//	    display_name: Kochi
//	    state: kerala
//	    cost_per_kw_low: 52000
//
// Keys are lower-cased by viper.
type tableFile struct {
	National          Override              `mapstructure:"national"`
	DataFreshnessNote string                `mapstructure:"data_freshness_note"`
	States            map[string]StateEntry `mapstructure:"states"`
	Cities            map[string]CityEntry  `mapstructure:"cities"`
}

// LoadFile reads a YAML or JSON overlay and merges it over base. base is not modified.
func LoadFile(path string, base *Tables) (*Tables, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read location table %s: %w", path, err)
	}

	var f tableFile
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("decode location table %s: %w", path, err)
	}

	if base == nil {
		base = DefaultTables()
	}
	out := base.Clone()
	out.National = MergeOverride(out.National, f.National)
	if f.DataFreshnessNote != "" {
		out.National.DataFreshnessNote = f.DataFreshnessNote
	}

	for _, key := range sortedKeys(f.States) {
		out.PutState(StateKey(key), f.States[key])
	}
	for _, key := range sortedKeys(f.Cities) {
		out.PutCity(CityKey(key), f.Cities[key])
	}

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("location table %s: %w", path, err)
	}
	return out, nil
}
