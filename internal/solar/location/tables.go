package location

import (
	"fmt"
	"sort"
)

// StateEntry is a state tier record.
type StateEntry struct {
	DisplayName string    `json:"displayName" mapstructure:"display_name"`
	Override    Override  `json:"override" mapstructure:",squash"`
	Cities      []CityKey `json:"cities,omitempty" mapstructure:"-"`
}

// CityEntry is a city tier record. State is informational; city overrides
// apply whatever state was requested.
type CityEntry struct {
	DisplayName string   `json:"displayName" mapstructure:"display_name"`
	State       StateKey `json:"state" mapstructure:"state"`
	Override    Override `json:"override" mapstructure:",squash"`
}

// Tables holds the three configuration tiers.
type Tables struct {
	National   Config
	States     map[StateKey]StateEntry
	Cities     map[CityKey]CityEntry
	stateOrder []StateKey
}

// Location is a key and its display name.
type Location struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
}

func NewTables(national Config) *Tables {
	return &Tables{
		National: national,
		States:   map[StateKey]StateEntry{},
		Cities:   map[CityKey]CityEntry{},
	}
}

// PutState adds or replaces a state. An existing state's override is
// layered under the new one and its city list is kept.
func (t *Tables) PutState(key StateKey, e StateEntry) {
	if prev, ok := t.States[key]; ok {
		e.Override = prev.Override.Merge(e.Override)
		if e.DisplayName == "" {
			e.DisplayName = prev.DisplayName
		}
		e.Cities = mergeCityKeys(prev.Cities, e.Cities)
	} else {
		t.stateOrder = append(t.stateOrder, key)
	}
	if e.DisplayName == "" {
		e.DisplayName = string(key)
	}
	t.States[key] = e
}

// PutCity adds or replaces a city and links it into its state's city list.
func (t *Tables) PutCity(key CityKey, e CityEntry) {
	if prev, ok := t.Cities[key]; ok {
		e.Override = prev.Override.Merge(e.Override)
		if e.DisplayName == "" {
			e.DisplayName = prev.DisplayName
		}
		if e.State == UnknownState {
			e.State = prev.State
		}
	}
	if e.DisplayName == "" {
		e.DisplayName = string(key)
	}
	t.Cities[key] = e

	if st, ok := t.States[e.State]; ok {
		st.Cities = mergeCityKeys(st.Cities, []CityKey{key})
		t.States[e.State] = st
	}
}

// ParseState returns the key for s, or UnknownState when the tables have no such state.
func (t *Tables) ParseState(s string) StateKey {
	if _, ok := t.States[StateKey(s)]; ok && s != "" {
		return StateKey(s)
	}
	return UnknownState
}

// ParseCity returns the key for s, or UnknownCity when the tables have no such city.
func (t *Tables) ParseCity(s string) CityKey {
	if _, ok := t.Cities[CityKey(s)]; ok && s != "" {
		return CityKey(s)
	}
	return UnknownCity
}

// StateList returns states in insertion order.
func (t *Tables) StateList() []Location {
	keys := append([]StateKey(nil), t.stateOrder...)
	if len(keys) != len(t.States) {
		seen := make(map[StateKey]bool, len(keys))
		for _, k := range keys {
			seen[k] = true
		}
		var extra []StateKey
		for k := range t.States {
			if !seen[k] {
				extra = append(extra, k)
			}
		}
		sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
		keys = append(keys, extra...)
	}

	out := make([]Location, 0, len(keys))
	for _, k := range keys {
		out = append(out, Location{Key: string(k), DisplayName: t.States[k].DisplayName})
	}
	return out
}

// CityList returns the cities of a state in insertion order; empty for unknown states.
func (t *Tables) CityList(state string) []Location {
	st, ok := t.States[StateKey(state)]
	if !ok {
		return []Location{}
	}
	out := make([]Location, 0, len(st.Cities))
	for _, k := range st.Cities {
		out = append(out, Location{Key: string(k), DisplayName: t.Cities[k].DisplayName})
	}
	return out
}

func mergeCityKeys(a, b []CityKey) []CityKey {
	out := append([]CityKey(nil), a...)
	for _, k := range b {
		found := false
		for _, existing := range out {
			if existing == k {
				found = true
				break
			}
		}
		if !found {
			out = append(out, k)
		}
	}
	return out
}

// Clone returns a deep copy so that overlays never mutate the source tables.
func (t *Tables) Clone() *Tables {
	out := NewTables(MergeOverride(t.National, Override{}))
	out.stateOrder = append([]StateKey(nil), t.stateOrder...)
	for k, v := range t.States {
		v.Cities = append([]CityKey(nil), v.Cities...)
		v.Override = cloneOverride(v.Override)
		out.States[k] = v
	}
	for k, v := range t.Cities {
		v.Override = cloneOverride(v.Override)
		out.Cities[k] = v
	}
	return out
}

func cloneOverride(o Override) Override {
	if o.Discoms != nil {
		o.Discoms = append([]string(nil), o.Discoms...)
	}
	return o
}

// Validate checks that the national tier is total and that every city
// points at a known state.
func (t *Tables) Validate() error {
	n := t.National
	switch {
	case n.AvgUnitCost <= 0:
		return fmt.Errorf("national avg_unit_cost must be positive")
	case n.UnitsPerKW <= 0:
		return fmt.Errorf("national units_per_kw must be positive")
	case n.AreaPerKW <= 0:
		return fmt.Errorf("national area_per_kw must be positive")
	case n.CostPerKWLow <= 0 || n.CostPerKWHigh < n.CostPerKWLow:
		return fmt.Errorf("national cost per kW range is invalid")
	case n.ApprovalTimeDays == "" || n.ResultLabel == "" || n.AccuracyNote == "" || n.DataFreshnessNote == "":
		return fmt.Errorf("national text fields must be set")
	}
	for key, c := range t.Cities {
		if _, ok := t.States[c.State]; !ok {
			return fmt.Errorf("city %q references unknown state %q", key, c.State)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
