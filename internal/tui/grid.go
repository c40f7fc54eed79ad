package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type tile struct {
	title  string
	poster string
	button Button
}

const minTileWidth = 16

// moveCursor applies a navigation key to a grid cursor. It reports false when
// msg is not a navigation key.
func moveCursor(msg tea.KeyMsg, cursor, n, columns int) (int, bool) {
	if columns < 1 {
		columns = 1
	}
	next := cursor
	switch {
	case key.Matches(msg, keys.Up):
		next -= columns
	case key.Matches(msg, keys.Down):
		next += columns
	case key.Matches(msg, keys.Left):
		next--
	case key.Matches(msg, keys.Right):
		next++
	default:
		return cursor, false
	}
	if next < 0 || next >= n {
		return cursor, true
	}
	return next, true
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

// renderGrid lays tiles out columns wide and scrolls so the cursor row is
// visible within height lines.
func renderGrid(tiles []tile, cursor, columns, width, height int) string {
	if len(tiles) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}
	outer := max(minTileWidth, width/columns)
	inner := outer - 4

	rows := make([]string, 0, (len(tiles)+columns-1)/columns)
	for start := 0; start < len(tiles); start += columns {
		end := min(start+columns, len(tiles))
		boxes := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			boxes = append(boxes, renderTile(tiles[i], i == cursor, outer, inner))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}

	rowHeight := max(1, lipgloss.Height(rows[0]))
	visible := max(1, height/rowHeight)
	first := max(0, cursor/columns-visible+1)
	last := min(len(rows), first+visible)
	return lipgloss.JoinVertical(lipgloss.Left, rows[first:last]...)
}

func renderTile(t tile, selected bool, outer, inner int) string {
	style := tileStyle
	if selected {
		style = selectedTileStyle
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		tileTitleStyle.Render(ansi.Truncate(t.title, inner, "…")),
		posterStyle.Render(ansi.Truncate(t.poster, inner, "…")),
		ansi.Truncate(t.button.View(selected), inner, ""),
	)
	return style.Width(outer - 2).Render(body)
}
