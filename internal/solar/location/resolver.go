package location

import (
	"fmt"
	"sync"

	"solar-workers/internal/common/logger"
)

const limitedDataSuffix = " (Limited data)"

// FallbackHook is notified when a requested tier is missing from the tables.
type FallbackHook func(tier Tier, key string)

type ResolverOption func(*Resolver)

func WithFallbackHook(h FallbackHook) ResolverOption {
	return func(r *Resolver) { r.onFallback = h }
}

// Resolver merges the configuration tiers. Tables can be swapped at runtime
// (file or database reload); each Resolve works on one snapshot.
type Resolver struct {
	mu         sync.RWMutex
	tables     *Tables
	logger     logger.Logger
	onFallback FallbackHook
}

func NewResolver(t *Tables, log logger.Logger, opts ...ResolverOption) *Resolver {
	if t == nil {
		t = DefaultTables()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	r := &Resolver{tables: t, logger: log}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Swap replaces the tables used by subsequent resolutions.
func (r *Resolver) Swap(t *Tables) {
	r.mu.Lock()
	r.tables = t
	r.mu.Unlock()
}

// Tables returns the current snapshot.
func (r *Resolver) Tables() *Tables {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tables
}

// Resolve returns the effective configuration for state and city. Empty
// strings mean "not given". Unknown keys never fail; they set
// FallbackMessage and mark the result label as limited. A city message
// replaces a state message.
func (r *Resolver) Resolve(state, city string) Config {
	t := r.Tables()

	cfg := MergeOverride(t.National, Override{})
	fallback := ""

	if state != "" {
		if key := t.ParseState(state); key != UnknownState {
			cfg = MergeOverride(cfg, t.States[key].Override)
		} else {
			r.logger.Warn("state configuration not found, using national defaults", map[string]interface{}{
				"state": state,
			})
			r.fallback(TierState, state)
			fallback = fmt.Sprintf("Using national estimates as state data is not available for %s", state)
		}
	}

	if city != "" {
		if key := t.ParseCity(city); key != UnknownCity {
			cfg = MergeOverride(cfg, t.Cities[key].Override)
		} else {
			r.logger.Warn("city configuration not found, using state-level data", map[string]interface{}{
				"state": state,
				"city":  city,
			})
			r.fallback(TierCity, city)
			fallback = fmt.Sprintf("Using state-level estimates due to limited city data for %s", city)
		}
	}

	cfg.DataFreshnessNote = t.National.DataFreshnessNote
	cfg.FallbackMessage = ""
	if fallback != "" {
		cfg.FallbackMessage = fallback
		cfg.ResultLabel += limitedDataSuffix
	}

	return cfg
}

func (r *Resolver) fallback(tier Tier, key string) {
	if r.onFallback != nil {
		r.onFallback(tier, key)
	}
}

// States lists the configured states with display names.
func (r *Resolver) States() []Location {
	return r.Tables().StateList()
}

// CitiesForState lists the configured cities of a state.
func (r *Resolver) CitiesForState(state string) []Location {
	return r.Tables().CityList(state)
}
