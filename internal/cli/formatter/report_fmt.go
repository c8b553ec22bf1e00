package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/alexanderramin/rueda/internal/scheduler"
	"github.com/alexanderramin/rueda/internal/validator"
)

const progressWidth = 20

// FormatStats renders the run summary box.
func FormatStats(st scheduler.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold("Meetings"), StyleFg.Render(fmt.Sprintf("%d (%d encounters)", st.Meetings, st.Encounters)))
	fmt.Fprintf(&b, "%s  %s\n", Bold("Slots   "), RenderProgress(st.Utilization(), progressWidth))
	fmt.Fprintf(&b, "%s  %s\n", Bold("Prefs   "), RenderProgress(st.FulfillmentRate(), progressWidth))
	fmt.Fprintf(&b, "%s  %d/%d scheduled, load %.1f ± %.1f\n", Bold("Buyers  "),
		st.RequestersScheduled, st.RequesterCount, st.RequesterLoadMean, st.RequesterLoadStdDev)
	fmt.Fprintf(&b, "%s  %d/%d scheduled, load %.1f ± %.1f\n", Bold("Sellers "),
		st.ProvidersScheduled, st.ProviderCount, st.ProviderLoadMean, st.ProviderLoadStdDev)

	phases := make([]string, 0, len(domain.PhaseOrder))
	for _, p := range domain.PhaseOrder {
		if n := st.ByPhase[p]; n > 0 {
			phases = append(phases, fmt.Sprintf("%s %d", PhaseBadge(p), n))
		}
	}
	if len(phases) > 0 {
		fmt.Fprintf(&b, "%s  %s\n", Bold("Phases  "), strings.Join(phases, Dim(" · ")))
	}
	return RenderBox("Summary", b.String())
}

// FormatConflicts renders the double-booking report.
func FormatConflicts(r validator.ConflictReport) string {
	if !r.HasConflicts() {
		return StyleGreen.Render("✔ No conflicts: every participant is in at most one meeting per slot.") + "\n"
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Conflicts (%d)", r.TotalConflicts)))
	b.WriteString("\n")
	t := NewTable("SLOT", "SHARED", "MEETINGS").AlignRight(0)
	for _, c := range r.Conflicts {
		shared := strings.Join(c.Providers, ", ")
		if c.Requester != "" {
			shared = strings.TrimPrefix(shared+", "+c.Requester, ", ")
		}
		t.Row(slotCell(c.Slot), StyleRed.Render(shared),
			fmt.Sprintf("#%d %s / #%d %s", c.First.ID, c.First.Requester, c.Second.ID, c.Second.Requester))
	}
	b.WriteString(t.Render())
	return b.String()
}

// FormatViolations renders constraint violations found by the audit.
func FormatViolations(vs []validator.Violation) string {
	if len(vs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Violations (%d)", len(vs))))
	b.WriteString("\n")
	t := NewTable("RULE", "SLOT", "WHO", "DETAIL").AlignRight(1)
	for _, v := range vs {
		who := v.Requester
		switch {
		case v.Requester != "" && v.Provider != "":
			who = v.Requester + " <-> " + v.Provider
		case v.Provider != "":
			who = v.Provider
		}
		t.Row(StyleRed.Render(v.Rule), slotCell(v.Slot), who, v.Detail)
	}
	b.WriteString(t.Render())
	return b.String()
}

// FormatPreferenceAudit renders per-provider fulfillment, worst first.
func FormatPreferenceAudit(a validator.PreferenceAudit) string {
	var b strings.Builder
	b.WriteString(Header("Preferences"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n\n", RenderProgress(a.Rate(), progressWidth),
		Dim(fmt.Sprintf("%d of %d requested pairs met, %d unrequested encounters",
			a.Requested, a.Requested+len(a.Missing), len(a.Unrequested))))

	if len(a.ByProvider) == 0 {
		return b.String()
	}
	rows := append([]validator.ProviderFulfillment(nil), a.ByProvider...)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Fulfilled*rows[j].Requested < rows[j].Fulfilled*rows[i].Requested
	})

	t := NewTable("PROVIDER", "MET", "WANTED", "").AlignRight(1, 2)
	for _, r := range rows {
		ratio := 1.0
		if r.Requested > 0 {
			ratio = float64(r.Fulfilled) / float64(r.Requested)
		}
		t.Row(r.Provider, fmt.Sprintf("%d", r.Fulfilled), fmt.Sprintf("%d", r.Requested), RenderProgress(ratio, 10))
	}
	b.WriteString(t.Render())
	return b.String()
}

// FormatShortfalls lists the gaps of a run in the order they were found.
func FormatShortfalls(list []domain.Shortfall) string {
	if len(list) == 0 {
		return Dim("No shortfalls.") + "\n"
	}
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Shortfalls (%d)", len(list))))
	b.WriteString("\n")
	t := NewTable("KIND", "WHO", "SLOT", "REASON").AlignRight(2)
	for _, s := range list {
		t.Row(KindBadge(s.Kind), shortfallWho(s), slotCell(s.Slot), s.Reason)
	}
	b.WriteString(t.Render())
	return b.String()
}

func shortfallWho(s domain.Shortfall) string {
	switch s.Kind {
	case domain.ShortfallUnscheduled, domain.ShortfallUnknownParticipant:
		return fmt.Sprintf("%s %s", s.Role, s.ParticipantID)
	case domain.ShortfallRejectedPin:
		return s.RequesterID + " <-> " + s.ProviderID
	default:
		return s.ProviderID + " -> " + s.RequesterID
	}
}
