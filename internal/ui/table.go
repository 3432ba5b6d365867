package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// MaxCellWidth caps a column's display width; longer cells are truncated.
const MaxCellWidth = 40

// Table renders static rows under a header line and a dashed divider.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// NewTable creates a new Table with the given title and headers.
func NewTable(title string, headers []string) *Table {
	return &Table{
		Title:   title,
		Headers: headers,
		Rows:    make([][]string, 0),
	}
}

// AddRow adds a row to the table. Cells past the header count are ignored
// when rendering.
func (t *Table) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table. A table without rows renders as "".
func (t *Table) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	// Column widths by display width, so CJK titles line up.
	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(clip(cell)); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}

	// lipgloss Width includes padding
	for i := range colWidths {
		colWidths[i] += 2
	}

	headerStyle := styles.Bold.Copy().Padding(0, 1)
	rowStyle := styles.Body.Copy().Padding(0, 1)
	sepStyle := styles.Muted

	t.writeLine(&sb, t.Headers, colWidths, headerStyle, sepStyle)

	totalWidth := len(colWidths) - 1
	for _, w := range colWidths {
		totalWidth += w
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("-", totalWidth)))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		t.writeLine(&sb, row, colWidths, rowStyle, sepStyle)
	}

	return sb.String()
}

func (t *Table) writeLine(sb *strings.Builder, cells []string, widths []int, cellStyle, sepStyle lipgloss.Style) {
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = clip(cells[i])
		}
		sb.WriteString(cellStyle.Width(widths[i]).Render(cell))
		if i < len(widths)-1 {
			sb.WriteString(sepStyle.Render("|"))
		}
	}
	sb.WriteString("\n")
}

func clip(cell string) string {
	return runewidth.Truncate(cell, MaxCellWidth, "…")
}
