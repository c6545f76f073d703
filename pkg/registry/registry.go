// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// Find returns the activity bound to taskType.
func (r *ActivityRegistry) Find(taskType string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

// Validate checks that ids and task types are unique, timeouts parse and
// every error code is one the workers can raise.
func (r *ActivityRegistry) Validate(knownCodes []string) error {
	known := make(map[string]bool, len(knownCodes))
	for _, c := range knownCodes {
		known[c] = true
	}

	var errs []error
	ids := map[string]bool{}
	taskTypes := map[string]bool{}
	for _, a := range r.Activities {
		if a.ID == "" || a.TaskType == "" {
			errs = append(errs, fmt.Errorf("activity %q: id and taskType are required", a.ID))
			continue
		}
		if ids[a.ID] {
			errs = append(errs, fmt.Errorf("duplicate activity id %q", a.ID))
		}
		if taskTypes[a.TaskType] {
			errs = append(errs, fmt.Errorf("duplicate task type %q", a.TaskType))
		}
		ids[a.ID] = true
		taskTypes[a.TaskType] = true

		if _, err := time.ParseDuration(a.Timeout); err != nil {
			errs = append(errs, fmt.Errorf("activity %q: timeout: %w", a.ID, err))
		}
		for _, code := range a.ErrorCodes {
			if !known[code] {
				errs = append(errs, fmt.Errorf("activity %q: unknown error code %q", a.ID, code))
			}
		}
	}
	return errors.Join(errs...)
}

// Missing returns the task types that have no registry entry.
func (r *ActivityRegistry) Missing(taskTypes []string) []string {
	var missing []string
	for _, t := range taskTypes {
		if _, ok := r.Find(t); !ok {
			missing = append(missing, t)
		}
	}
	return missing
}
