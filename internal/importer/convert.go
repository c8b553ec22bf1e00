package importer

import (
	"errors"

	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/alexanderramin/rueda/internal/preference"
)

// ToGraph builds a preference graph from rows, skipping invalid rows.
// Duplicate pairs collapse.
func ToGraph(rows []PreferenceRow) *preference.Graph {
	g := preference.New()
	for _, r := range rows {
		if r.Cells < 2 {
			continue
		}
		g.Add(r.Provider, r.Requester)
	}
	return g
}

// ToRoster converts validated roster rows. Call ValidateRoster first; ToRoster
// fails with the joined validation errors otherwise.
func ToRoster(rows []RosterRow) (*domain.Roster, error) {
	if errs := ValidateRoster(rows); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	roster := domain.NewRoster(nil, nil)
	for _, r := range rows {
		role, _ := domain.ParseRole(r.Role)
		roster.Add(r.ID, role)
	}
	return roster, nil
}
