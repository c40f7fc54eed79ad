package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/watchmania/internal/models"
)

type statusMsg struct {
	Text  string
	IsErr bool
}

type errMsg struct{ error }

type pushScreenMsg struct {
	Screen Screen
}

// replaceScreenMsg swaps the top screen for Screen, but only while the screen
// with id From is still on top.
type replaceScreenMsg struct {
	From   uint64
	Screen Screen
}

type popScreenMsg struct{}

// screenResult is implemented by messages that belong to one screen instance.
type screenResult interface {
	screenID() uint64
}

// result identifies the screen and request that produced an async message.
type result struct {
	Screen uint64
	Seq    int
}

func (r result) screenID() uint64 { return r.Screen }

type moviesLoadedMsg struct {
	result
	Movies []models.Movie
	Err    error
}

type watchlistAddedMsg struct {
	result
	Username string
	Movie    models.Movie
	Err      error
}

type watchlistLoadedMsg struct {
	result
	Watchlist models.Watchlist
	Err       error
}

type watchlistDeletedMsg struct {
	result
	Movie models.Movie
	Err   error
}

// WriteResult carries the outcome of a watchlist POST into the next screen.
type WriteResult struct {
	Movie models.Movie
	Err   error
}

func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{Text: text} }
}

func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		if err == nil {
			return statusMsg{}
		}
		return errMsg{err}
	}
}

func pushCmd(s Screen) tea.Cmd {
	return func() tea.Msg { return pushScreenMsg{Screen: s} }
}
