package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const timestampLayout = "2006-01-02 15:04"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		content = StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + strings.TrimRight(content, "\n")
	}
	return boxStyle.Render(content)
}

// Timestamp formats t in local time.
func Timestamp(t time.Time) string {
	return t.Local().Format(timestampLayout)
}

// Plural returns "1 meeting" or "3 meetings".
func Plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func slotCell(slot int) string {
	if slot < 0 {
		return "-"
	}
	return fmt.Sprintf("%d", slot)
}
