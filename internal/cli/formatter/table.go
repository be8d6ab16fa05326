package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// Table is a column-aligned listing. Widths are measured on visible text so
// styled cells line up.
type Table struct {
	Headers []string
	Rows    [][]string
	// RightAlign lists column indexes whose cells are padded on the left.
	RightAlign []int
}

func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

func (t *Table) widths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	return widths
}

func (t *Table) alignRight(col int) bool {
	for _, c := range t.RightAlign {
		if c == col {
			return true
		}
	}
	return false
}

func (t *Table) writeRow(b *strings.Builder, cells []string, widths []int) {
	last := len(widths) - 1
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := max(0, w-lipgloss.Width(cell))
		switch {
		case t.alignRight(i):
			b.WriteString(strings.Repeat(" ", pad) + cell)
		case i < last:
			b.WriteString(cell + strings.Repeat(" ", pad))
		default:
			b.WriteString(cell)
		}
		if i < last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
}

// Render returns the header, a rule and one line per row.
func (t *Table) Render() string {
	if len(t.Headers) == 0 {
		return ""
	}
	widths := t.widths()

	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = StyleHeader.Render(h)
	}
	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = StyleDim.Render(strings.Repeat("─", w))
	}

	var b strings.Builder
	t.writeRow(&b, headers, widths)
	t.writeRow(&b, rules, widths)
	for _, row := range t.Rows {
		t.writeRow(&b, row, widths)
	}
	return b.String()
}

// RenderTable is shorthand for a left-aligned Table.
func RenderTable(headers []string, rows [][]string) string {
	t := Table{Headers: headers, Rows: rows}
	return t.Render()
}
