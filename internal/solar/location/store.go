package location

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"solar-workers/internal/common/errors"
	"solar-workers/internal/common/logger"

	"github.com/lib/pq"
)

const selectOverridesQuery = `
	SELECT tier, key, display_name, state_key,
	       avg_unit_cost, units_per_kw, area_per_kw,
	       cost_per_kw_low, cost_per_kw_high,
	       subsidy_cap_kw, subsidy_upto_2kw, subsidy_2to_3kw,
	       approval_time_days, maintenance_cost_percent,
	       result_label, accuracy_note, discoms, roof_constraints_note
	FROM location_overrides
	WHERE active = true
	ORDER BY tier DESC, key`

// Schema creates the override table Load reads from.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS location_overrides (
		tier                     TEXT NOT NULL CHECK (tier IN ('state', 'city')),
		key                      TEXT NOT NULL,
		display_name             TEXT,
		state_key                TEXT,
		avg_unit_cost            DOUBLE PRECISION,
		units_per_kw             DOUBLE PRECISION,
		area_per_kw              DOUBLE PRECISION,
		cost_per_kw_low          DOUBLE PRECISION,
		cost_per_kw_high         DOUBLE PRECISION,
		subsidy_cap_kw           DOUBLE PRECISION,
		subsidy_upto_2kw         DOUBLE PRECISION,
		subsidy_2to_3kw          DOUBLE PRECISION,
		approval_time_days       TEXT,
		maintenance_cost_percent DOUBLE PRECISION,
		result_label             TEXT,
		accuracy_note            TEXT,
		discoms                  TEXT[],
		roof_constraints_note    TEXT,
		active                   BOOLEAN NOT NULL DEFAULT true,
		updated_at               TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (tier, key)
	)`,
	`CREATE INDEX IF NOT EXISTS location_overrides_active_idx ON location_overrides (active)`,
}

// Store reads state and city overrides maintained in Postgres. NULL columns
// leave the built-in value in place.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{db: db, logger: log}
}

// Load merges the active override rows over base and returns the result.
func (s *Store) Load(ctx context.Context, base *Tables) (*Tables, error) {
	if base == nil {
		base = DefaultTables()
	}

	rows, err := s.db.QueryContext(ctx, selectOverridesQuery)
	if err != nil {
		return nil, fmt.Errorf("query location overrides: %w", err)
	}
	defer rows.Close()

	out := base.Clone()
	var states, cities int
	for rows.Next() {
		var (
			tier, key                             string
			displayName, stateKey                 sql.NullString
			unitCost, unitsPerKW, areaPerKW       sql.NullFloat64
			costLow, costHigh                     sql.NullFloat64
			subsidyCap, subsidyUpTo2, subsidy2To3 sql.NullFloat64
			approval                              sql.NullString
			maintenance                           sql.NullFloat64
			resultLabel, accuracyNote             sql.NullString
			discoms                               pq.StringArray
			roofNote                              sql.NullString
		)
		if err := rows.Scan(
			&tier, &key, &displayName, &stateKey,
			&unitCost, &unitsPerKW, &areaPerKW,
			&costLow, &costHigh,
			&subsidyCap, &subsidyUpTo2, &subsidy2To3,
			&approval, &maintenance,
			&resultLabel, &accuracyNote, &discoms, &roofNote,
		); err != nil {
			return nil, fmt.Errorf("scan location override: %w", err)
		}

		o := Override{
			AvgUnitCost:            nullFloat(unitCost),
			UnitsPerKW:             nullFloat(unitsPerKW),
			AreaPerKW:              nullFloat(areaPerKW),
			CostPerKWLow:           nullFloat(costLow),
			CostPerKWHigh:          nullFloat(costHigh),
			SubsidyCapKW:           nullFloat(subsidyCap),
			SubsidyUpTo2KW:         nullFloat(subsidyUpTo2),
			Subsidy2To3KW:          nullFloat(subsidy2To3),
			ApprovalTimeDays:       nullString(approval),
			MaintenanceCostPercent: nullFloat(maintenance),
			ResultLabel:            nullString(resultLabel),
			AccuracyNote:           nullString(accuracyNote),
			RoofConstraintsNote:    nullString(roofNote),
		}
		if discoms != nil {
			o.Discoms = []string(discoms)
		}

		switch Tier(tier) {
		case TierState:
			out.PutState(StateKey(key), StateEntry{DisplayName: displayName.String, Override: o})
			states++
		case TierCity:
			out.PutCity(CityKey(key), CityEntry{DisplayName: displayName.String, State: StateKey(stateKey.String), Override: o})
			cities++
		default:
			s.logger.Warn("skipping location override with unknown tier", map[string]interface{}{
				"tier": tier,
				"key":  key,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate location overrides: %w", err)
	}

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("location overrides: %w", err)
	}

	s.logger.Info("location overrides loaded", map[string]interface{}{
		"states": states,
		"cities": cities,
	})
	return out, nil
}

// Watch reloads overrides every interval and swaps them into r until ctx is done.
// A failed reload keeps the previous tables.
func (s *Store) Watch(ctx context.Context, r *Resolver, base *Tables, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t, err := s.Load(ctx, base)
			if err != nil {
				storeErr := errors.NewLocationStoreError(err)
				s.logger.Error("location override reload failed", map[string]interface{}{
					"errorCode": string(storeErr.Code),
					"retryable": storeErr.Retryable,
					"error":     storeErr.Details,
				})
				continue
			}
			r.Swap(t)
		}
	}
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return F(v.Float64)
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return S(v.String)
}
