package formatter

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

var (
	sgrPattern     = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	numericPattern = regexp.MustCompile(`^[0-9][0-9.,/%]*$`)
)

type column struct {
	width int
	right bool
}

// RenderTable renders an aligned table under a styled header and a rule
// line. Widths are measured on visible text, so styled cells line up.
// Columns whose cells are all numbers ("3", "1.5/2", "3.875") are
// right-aligned.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cols := layout(headers, rows)

	var b strings.Builder
	writeRow(&b, cols, headers, StyleHeader.Render)
	rules := make([]string, len(cols))
	for i, c := range cols {
		rules[i] = strings.Repeat("─", c.width)
	}
	writeRow(&b, cols, rules, StyleDim.Render)
	for _, row := range rows {
		writeRow(&b, cols, row, nil)
	}
	return b.String()
}

func layout(headers []string, rows [][]string) []column {
	cols := make([]column, len(headers))
	for i, h := range headers {
		cols[i].width = lipgloss.Width(h)
		numeric, seen := true, false
		for _, row := range rows {
			if i >= len(row) {
				continue
			}
			cols[i].width = max(cols[i].width, lipgloss.Width(row[i]))
			plain := strings.TrimSpace(sgrPattern.ReplaceAllString(row[i], ""))
			if plain == "" {
				continue
			}
			seen = true
			numeric = numeric && numericPattern.MatchString(plain)
		}
		cols[i].right = seen && numeric
	}
	return cols
}

// writeRow pads each cell to its column. The last left-aligned cell is not
// padded, so lines carry no trailing spaces.
func writeRow(b *strings.Builder, cols []column, cells []string, style func(...string) string) {
	last := len(cols) - 1
	for i, c := range cols {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := max(c.width-lipgloss.Width(cell), 0)
		if style != nil {
			cell = style(cell)
		}
		switch {
		case c.right:
			b.WriteString(strings.Repeat(" ", pad) + cell)
		case i == last:
			b.WriteString(cell)
		default:
			b.WriteString(cell + strings.Repeat(" ", pad))
		}
		if i < last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
}
