package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestButtonPressRunsHandler(t *testing.T) {
	presses := 0
	b := NewButton("Submit", func() tea.Cmd {
		presses++
		return StatusCmd("pressed")
	})

	cmd := b.Press()
	require.Equal(t, 1, presses)
	require.Equal(t, statusMsg{Text: "pressed"}, cmd())
	require.Contains(t, b.View(false), "Submit")
	require.Contains(t, b.View(true), "Submit")
}

func TestButtonWithoutHandler(t *testing.T) {
	b := NewButton("", nil)
	require.Nil(t, b.Press())
	require.Equal(t, "", b.Title())
}

func TestScreenStack(t *testing.T) {
	e := testEnv(t, newFakeClient())
	var s ScreenStack
	require.Nil(t, s.Pop())
	require.Nil(t, s.Top())

	s.Push(nil)
	require.Equal(t, 0, s.Len())

	home := NewHomeScreen(e)
	lookup := NewUserLookupScreen(e)
	s.Push(home)
	s.Push(lookup)
	require.Equal(t, 2, s.Len())
	require.Same(t, lookup, s.Top())
	require.Equal(t, 1, s.Find(lookup.ID()))
	require.Equal(t, -1, s.Find(0))

	s.Replace(1, home)
	require.Same(t, home, s.Top())
	s.Replace(5, lookup)
	require.Same(t, home, s.Pop())
	require.Equal(t, 1, s.Len())
}

func TestMoveCursorStaysInBounds(t *testing.T) {
	next, ok := moveCursor(press("down"), 0, 3, 2)
	require.True(t, ok)
	require.Equal(t, 2, next)

	next, _ = moveCursor(press("down"), 2, 3, 2)
	require.Equal(t, 2, next)

	next, _ = moveCursor(press("k"), 1, 3, 2)
	require.Equal(t, 1, next)

	_, ok = moveCursor(press("enter"), 0, 3, 2)
	require.False(t, ok)
}
