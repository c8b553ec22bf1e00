package cli

import (
	"time"

	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/alexanderramin/rueda/internal/scheduler"
	"github.com/alexanderramin/rueda/internal/service"
	"github.com/alexanderramin/rueda/internal/validator"
)

// runExport is the --json shape of a scheduling run.
type runExport struct {
	RunID       string                    `json:"run_id"`
	Persisted   bool                      `json:"persisted"`
	Event       string                    `json:"event"`
	Seed        int64                     `json:"seed"`
	Fingerprint string                    `json:"fingerprint"`
	Slots       []slotExport              `json:"slots"`
	Meetings    []meetingExport           `json:"meetings"`
	Shortfalls  []shortfallExport         `json:"shortfalls"`
	Stats       scheduler.Stats           `json:"stats"`
	Conflicts   validator.ConflictReport  `json:"conflicts"`
	Violations  []validator.Violation     `json:"violations"`
	Preferences validator.PreferenceAudit `json:"preferences"`
}

type slotExport struct {
	Index int       `json:"index"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type meetingExport struct {
	ID        int          `json:"id"`
	Slot      int          `json:"slot"`
	Requester string       `json:"requester"`
	Providers []string     `json:"providers"`
	Phase     domain.Phase `json:"phase"`
}

type shortfallExport struct {
	Kind        domain.ShortfallKind `json:"kind"`
	Role        domain.Role          `json:"role,omitempty"`
	Participant string               `json:"participant,omitempty"`
	Requester   string               `json:"requester,omitempty"`
	Provider    string               `json:"provider,omitempty"`
	Slot        int                  `json:"slot"`
	Reason      string               `json:"reason"`
}

func newRunExport(out *service.RunResult) runExport {
	run := out.Run
	e := runExport{
		RunID:       run.ID,
		Persisted:   out.Persisted,
		Event:       run.EventName,
		Seed:        run.Seed,
		Fingerprint: run.Fingerprint,
		Slots:       make([]slotExport, 0, len(run.Slots)),
		Meetings:    make([]meetingExport, 0, run.Schedule.Len()),
		Shortfalls:  make([]shortfallExport, 0, len(run.Shortfalls)),
		Stats:       out.Result.Stats,
		Conflicts:   out.Conflicts,
		Violations:  out.Violations,
		Preferences: out.Preferences,
	}
	if e.Violations == nil {
		e.Violations = []validator.Violation{}
	}
	for _, s := range run.Slots {
		e.Slots = append(e.Slots, slotExport{Index: s.Index, Start: s.Start, End: s.End})
	}
	for _, m := range run.Schedule.All() {
		e.Meetings = append(e.Meetings, meetingExport{
			ID: m.ID, Slot: m.Slot, Requester: m.Requester, Providers: m.Providers, Phase: m.Phase,
		})
	}
	for _, s := range run.Shortfalls {
		e.Shortfalls = append(e.Shortfalls, shortfallExport{
			Kind: s.Kind, Role: s.Role, Participant: s.ParticipantID,
			Requester: s.RequesterID, Provider: s.ProviderID, Slot: s.Slot, Reason: s.Reason,
		})
	}
	return e
}
