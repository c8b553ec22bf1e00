package importer

import (
	"fmt"

	"github.com/alexanderramin/rueda/internal/domain"
)

// ValidatePreferences reports rows that cannot form a pair. Such rows are
// skipped by ToGraph.
func ValidatePreferences(rows []PreferenceRow) []error {
	var errs []error
	for _, r := range rows {
		switch {
		case r.Cells < 2:
			errs = append(errs, fmt.Errorf("line %d: expected provider,requester", r.Line))
		case r.Provider == "":
			errs = append(errs, fmt.Errorf("line %d: provider is empty", r.Line))
		case r.Requester == "":
			errs = append(errs, fmt.Errorf("line %d: requester is empty", r.Line))
		}
	}
	return errs
}

// ValidateRoster checks roles and identifiers. A roster with errors must not
// be used.
func ValidateRoster(rows []RosterRow) []error {
	var errs []error
	roles := make(map[string]domain.Role)
	for _, r := range rows {
		if r.Cells < 2 {
			errs = append(errs, fmt.Errorf("line %d: expected role,id", r.Line))
			continue
		}
		role, err := domain.ParseRole(r.Role)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", r.Line, err))
			continue
		}
		if r.ID == "" {
			errs = append(errs, fmt.Errorf("line %d: id is empty", r.Line))
			continue
		}
		if prev, ok := roles[r.ID]; ok && prev != role {
			errs = append(errs, fmt.Errorf("line %d: %q is listed as both %s and %s", r.Line, r.ID, prev, role))
			continue
		}
		roles[r.ID] = role
	}
	return errs
}
