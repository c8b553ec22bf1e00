package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// Table renders aligned columns under a header rule. Widths are measured on
// visible text, so styled cells line up.
type Table struct {
	headers []string
	right   map[int]bool
	rows    [][]string
}

// NewTable starts a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, right: make(map[int]bool)}
}

// AlignRight right-aligns the listed columns, typically counts.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

// Row appends a row. Missing cells render empty.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

func (t *Table) Render() string {
	cols := len(t.headers)
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	headers := make([]string, cols)
	for i, h := range t.headers {
		headers[i] = StyleHeader.Render(h)
	}
	t.writeLine(&b, headers, widths)

	rule := make([]string, cols)
	for i, w := range widths {
		rule[i] = StyleDim.Render(strings.Repeat("─", w))
	}
	t.writeLine(&b, rule, widths)

	for _, row := range t.rows {
		cells := make([]string, cols)
		copy(cells, row)
		t.writeLine(&b, cells, widths)
	}
	return b.String()
}

func (t *Table) writeLine(b *strings.Builder, cells []string, widths []int) {
	last := len(cells) - 1
	for i, cell := range cells {
		pad := max(widths[i]-lipgloss.Width(cell), 0)
		switch {
		case t.right[i]:
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(cell)
		case i == last:
			b.WriteString(cell)
		default:
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", pad))
		}
		if i < last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
}
