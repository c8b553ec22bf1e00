package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rueda/internal/domain"
)

// FormatSchedule lists every meeting slot by slot. Empty slots are shown
// dimmed so gaps in the day stay visible.
func FormatSchedule(slots []domain.Slot, s *domain.Schedule) string {
	var b strings.Builder
	b.WriteString(Header("Schedule"))
	b.WriteString("\n")

	if s == nil || s.Len() == 0 {
		b.WriteString(Dim("No meetings scheduled."))
		b.WriteString("\n")
		return b.String()
	}

	t := NewTable("SLOT", "TIME", "REQUESTER", "PROVIDERS", "PHASE").AlignRight(0)
	for slot := 0; slot < s.SlotCount(); slot++ {
		ms := s.Meetings(slot)
		if len(ms) == 0 {
			t.Row(Dim(slotCell(slot)), Dim(slotLabel(slots, slot)), Dim("-"), "", "")
			continue
		}
		for i, m := range ms {
			idx, label := slotCell(slot), slotLabel(slots, slot)
			if i > 0 {
				idx, label = "", ""
			}
			t.Row(idx, label, Bold(m.Requester), strings.Join(m.Providers, ", "), PhaseBadge(m.Phase))
		}
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%s across %d slots", Plural(s.Len(), "meeting"), s.SlotCount())))
	b.WriteString("\n")
	return b.String()
}

// FormatAgenda lists the meetings of one participant in slot order.
func FormatAgenda(id string, role domain.Role, slots []domain.Slot, s *domain.Schedule) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s %s", role, id)))
	b.WriteString("\n")

	ms := s.MeetingsFor(id, role)
	if len(ms) == 0 {
		b.WriteString(Dim("No meetings."))
		b.WriteString("\n")
		return b.String()
	}

	t := NewTable("SLOT", "TIME", "WITH", "PHASE").AlignRight(0)
	for _, m := range ms {
		t.Row(slotCell(m.Slot), slotLabel(slots, m.Slot), counterparts(id, role, m), PhaseBadge(m.Phase))
	}
	b.WriteString(t.Render())
	return b.String()
}

func counterparts(id string, role domain.Role, m *domain.Meeting) string {
	if role == domain.RoleRequester {
		return strings.Join(m.Providers, ", ")
	}
	others := make([]string, 0, len(m.Providers))
	for _, p := range m.Providers {
		if p != id {
			others = append(others, p)
		}
	}
	if len(others) == 0 {
		return m.Requester
	}
	return fmt.Sprintf("%s (with %s)", m.Requester, strings.Join(others, ", "))
}

func slotLabel(slots []domain.Slot, slot int) string {
	if slot < 0 || slot >= len(slots) {
		return ""
	}
	return slots[slot].Label()
}
