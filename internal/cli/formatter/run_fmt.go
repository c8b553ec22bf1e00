package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/alexanderramin/rueda/internal/validator"
)

// FormatRunList renders stored runs, newest first as given.
func FormatRunList(runs []*domain.Run) string {
	if len(runs) == 0 {
		return Dim("No runs yet. Use 'rueda schedule' to create one.") + "\n"
	}

	t := NewTable("ID", "CREATED", "EVENT", "SEED", "MEETINGS", "PREFS").AlignRight(3, 4)
	for _, r := range runs {
		t.Row(
			StyleBlue.Render(r.DisplayID()),
			Timestamp(r.CreatedAt),
			r.EventName,
			fmt.Sprintf("%d", r.Seed),
			fmt.Sprintf("%d", r.Meetings()),
			prefsCell(r),
		)
	}
	return t.Render()
}

func prefsCell(r *domain.Run) string {
	if r.PreferencesTotal == 0 {
		return Dim("-")
	}
	return fmt.Sprintf("%d/%d", r.PreferencesFulfilled, r.PreferencesTotal)
}

// FormatRunHeader renders the identifying lines of a run.
func FormatRunHeader(r *domain.Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Bold(r.EventName), Dim("("+r.DisplayID()+")"))
	fmt.Fprintf(&b, "%s %s   %s %d   %s %s\n",
		Dim("created"), Timestamp(r.CreatedAt),
		Dim("seed"), r.Seed,
		Dim("fingerprint"), r.Fingerprint)
	if len(r.Slots) > 0 {
		first, last := r.Slots[0], r.Slots[len(r.Slots)-1]
		fmt.Fprintf(&b, "%s %s, %s to %s, %d x %.0f min\n",
			Dim("day"), first.Start.Format("2006-01-02"), first.Start.Format("15:04"),
			last.End.Format("15:04"), len(r.Slots), first.Duration().Minutes())
	}
	return b.String()
}

// FormatRevalidation renders the outcome of re-checking a stored run.
func FormatRevalidation(r *domain.Run, report validator.ConflictReport, fingerprintMatches bool) string {
	var b strings.Builder
	b.WriteString(FormatRunHeader(r))
	b.WriteString("\n")
	b.WriteString(FormatConflicts(report))
	if fingerprintMatches {
		b.WriteString(StyleGreen.Render("✔ Fingerprint matches the stored schedule."))
	} else {
		b.WriteString(StyleRed.Render("✘ Fingerprint differs from the stored value."))
	}
	b.WriteString("\n")
	return b.String()
}
