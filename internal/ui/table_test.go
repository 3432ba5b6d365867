package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	table := NewTable("Movies", []string{"Title", "Year"})
	table.AddRow("Inception", "2010")
	table.AddRow("Up", "2009")

	view := table.View(PlainStyles())
	t.Logf("View:\n%s", view)

	lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.Equal(t, "Movies", lines[0])
	assert.Contains(t, lines[1], "Title")
	assert.Contains(t, lines[1], "|")
	assert.Equal(t, strings.Repeat("-", lipgloss.Width(lines[1])), lines[2])
	assert.Contains(t, lines[3], "Inception")
	assert.Contains(t, lines[4], "Up")

	// Every line has the same display width.
	for _, l := range lines[1:] {
		assert.Equal(t, lipgloss.Width(lines[1]), lipgloss.Width(l), l)
	}
}

func TestTable_EmptyRendersNothing(t *testing.T) {
	table := NewTable("Movies", []string{"Title"})
	assert.Equal(t, "", table.View(DefaultStyles()))
}

func TestTable_WideCharactersAlign(t *testing.T) {
	table := NewTable("", []string{"Title", "Director"})
	table.AddRow("霸王別姬", "陳凱歌")
	table.AddRow("Heat", "Mann")

	lines := strings.Split(strings.TrimRight(table.View(PlainStyles()), "\n"), "\n")
	require.Len(t, lines, 4, "no title line when Title is empty")

	sep := strings.Index(lines[2], "|")
	require.Greater(t, sep, 0)
	assert.Equal(t, lipgloss.Width(lines[2][:sep]), lipgloss.Width(lines[3][:strings.Index(lines[3], "|")]))
}

func TestTable_TruncatesLongCells(t *testing.T) {
	table := NewTable("", []string{"Title"})
	table.AddRow(strings.Repeat("x", MaxCellWidth*2))

	view := table.View(PlainStyles())
	assert.Contains(t, view, "…")
	assert.NotContains(t, view, strings.Repeat("x", MaxCellWidth))
}

func TestTable_MissingCellsPadded(t *testing.T) {
	table := NewTable("", []string{"A", "B", "C"})
	table.AddRow("only")

	lines := strings.Split(strings.TrimRight(table.View(PlainStyles()), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, 2, strings.Count(lines[2], "|"))
}
