// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// Save writes the registry as indented JSON and stamps LastUpdated.
func (r *ActivityRegistry) Save(path string, now time.Time) error {
	r.LastUpdated = now.UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Find returns the activity with id.
func (r *ActivityRegistry) Find(id string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].ID == id {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// Upsert replaces the activity with the same ID or appends a new one.
func (r *ActivityRegistry) Upsert(a Activity) {
	if existing, ok := r.Find(a.ID); ok {
		*existing = a
		return
	}
	r.Activities = append(r.Activities, a)
}

// Validate reports every problem found, sorted, or nil.
func (r *ActivityRegistry) Validate() []string {
	var problems []string
	seenID := map[string]bool{}
	seenTask := map[string]bool{}

	for i, a := range r.Activities {
		label := a.ID
		if label == "" {
			label = fmt.Sprintf("activities[%d]", i)
			problems = append(problems, label+": missing id")
		}
		if a.TaskType == "" {
			problems = append(problems, label+": missing taskType")
		}
		if seenID[a.ID] && a.ID != "" {
			problems = append(problems, label+": duplicate id")
		}
		if seenTask[a.TaskType] && a.TaskType != "" {
			problems = append(problems, label+": duplicate taskType "+a.TaskType)
		}
		if !validStatuses[a.ImplementationStatus] {
			problems = append(problems, fmt.Sprintf("%s: unknown implementation status %q", label, a.ImplementationStatus))
		}
		if a.Timeout != "" {
			if _, err := time.ParseDuration(a.Timeout); err != nil {
				problems = append(problems, fmt.Sprintf("%s: invalid timeout %q", label, a.Timeout))
			}
		}
		seenID[a.ID] = true
		seenTask[a.TaskType] = true
	}

	sort.Strings(problems)
	return problems
}
