package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rueda/internal/cli/formatter"
	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type browseKeyMap struct {
	NextSlot   key.Binding
	PrevSlot   key.Binding
	Down       key.Binding
	Up         key.Binding
	First      key.Binding
	Last       key.Binding
	Shortfalls key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		NextSlot:   key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→/l", "next slot")),
		PrevSlot:   key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/h", "prev slot")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next meeting")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev meeting")),
		First:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first slot")),
		Last:       key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last slot")),
		Shortfalls: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shortfalls")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextSlot, k.PrevSlot, k.Shortfalls, k.Help, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextSlot, k.PrevSlot, k.First, k.Last},
		{k.Down, k.Up, k.Shortfalls},
		{k.Help, k.Quit},
	}
}

// browseModel steps through a stored run one slot at a time.
type browseModel struct {
	run    *domain.Run
	slot   int
	cursor int

	showShortfalls bool

	keys  browseKeyMap
	help  help.Model
	width int
}

func newBrowseModel(run *domain.Run) browseModel {
	return browseModel{
		run:  run,
		keys: newBrowseKeyMap(),
		help: help.New(),
	}
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Shortfalls):
			m.showShortfalls = !m.showShortfalls
		case m.showShortfalls:
			// Navigation is disabled while the shortfall list is open.
		case key.Matches(msg, m.keys.NextSlot):
			m.setSlot(m.slot + 1)
		case key.Matches(msg, m.keys.PrevSlot):
			m.setSlot(m.slot - 1)
		case key.Matches(msg, m.keys.First):
			m.setSlot(0)
		case key.Matches(msg, m.keys.Last):
			m.setSlot(m.slotCount() - 1)
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.meetings())-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return m, nil
}

func (m *browseModel) setSlot(slot int) {
	slot = min(max(slot, 0), max(m.slotCount()-1, 0))
	if slot != m.slot {
		m.slot = slot
		m.cursor = 0
	}
}

func (m browseModel) slotCount() int {
	return m.run.Schedule.SlotCount()
}

func (m browseModel) meetings() []*domain.Meeting {
	return m.run.Schedule.Meetings(m.slot)
}

// Selected returns the highlighted meeting, or nil in an empty slot.
func (m browseModel) Selected() *domain.Meeting {
	ms := m.meetings()
	if m.cursor < len(ms) {
		return ms[m.cursor]
	}
	return nil
}

func (m browseModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", formatter.Bold(m.run.EventName), formatter.Dim("("+m.run.DisplayID()+")"))

	if m.showShortfalls {
		b.WriteString("\n")
		b.WriteString(formatter.FormatShortfalls(m.run.Shortfalls))
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	label := ""
	if m.slot < len(m.run.Slots) {
		label = m.run.Slots[m.slot].Label()
	}
	fmt.Fprintf(&b, "%s  %s\n\n",
		formatter.StyleHeader.Render(fmt.Sprintf("SLOT %d/%d", m.slot+1, m.slotCount())),
		formatter.Dim(label))

	ms := m.meetings()
	if len(ms) == 0 {
		b.WriteString(formatter.Dim("  No meetings in this slot."))
		b.WriteString("\n")
	}
	for i, mt := range ms {
		marker := "  "
		requester := mt.Requester
		if i == m.cursor {
			marker = formatter.StyleHeader.Render("› ")
			requester = formatter.Bold(requester)
		}
		fmt.Fprintf(&b, "%s%s  %s  %s\n", marker, requester,
			strings.Join(mt.Providers, ", "), formatter.PhaseBadge(mt.Phase))
	}

	if sel := m.Selected(); sel != nil {
		b.WriteString("\n")
		b.WriteString(m.detail(sel))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// detail shows how busy each participant of the meeting is across the day.
func (m browseModel) detail(mt *domain.Meeting) string {
	lines := []string{
		fmt.Sprintf("%s %s, meeting #%d, %s",
			formatter.Dim("requester"), mt.Requester, mt.ID, formatter.Plural(len(m.run.Schedule.MeetingsFor(mt.Requester, domain.RoleRequester)), "meeting")),
	}
	for _, p := range mt.Providers {
		lines = append(lines, fmt.Sprintf("%s %s, %s",
			formatter.Dim("provider "), p, formatter.Plural(len(m.run.Schedule.MeetingsFor(p, domain.RoleProvider)), "meeting")))
	}
	style := lipgloss.NewStyle().PaddingLeft(2)
	return style.Render(strings.Join(lines, "\n"))
}
