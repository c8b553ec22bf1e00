package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua   = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PhaseStyle colors a meeting by the pass that created it.
func PhaseStyle(p domain.Phase) lipgloss.Style {
	switch p {
	case domain.PhasePinned:
		return StylePurple
	case domain.PhaseCoverage:
		return StyleBlue
	case domain.PhaseEmergency:
		return StyleYellow
	case domain.PhasePreference:
		return StyleGreen
	case domain.PhaseFill:
		return StyleAqua
	default:
		return StyleDim
	}
}

// PhaseBadge renders the phase name in its color.
func PhaseBadge(p domain.Phase) string {
	return PhaseStyle(p).Render(string(p))
}

// KindLabel is the short human name of a shortfall kind.
func KindLabel(k domain.ShortfallKind) string {
	switch k {
	case domain.ShortfallUnscheduled:
		return "unscheduled"
	case domain.ShortfallUnfulfilled:
		return "unfulfilled"
	case domain.ShortfallRejectedPin:
		return "rejected pin"
	case domain.ShortfallUnknownParticipant:
		return "unknown id"
	default:
		return strings.ToLower(string(k))
	}
}

// KindBadge renders KindLabel with a severity color.
func KindBadge(k domain.ShortfallKind) string {
	switch k {
	case domain.ShortfallUnscheduled, domain.ShortfallRejectedPin:
		return StyleRed.Render(KindLabel(k))
	case domain.ShortfallUnknownParticipant:
		return StylePurple.Render(KindLabel(k))
	default:
		return StyleYellow.Render(KindLabel(k))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
