package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/watchmania/internal/models"
)

// AddToWatchlistScreen asks for a username and posts the chosen movie to
// that user's watchlist.
type AddToWatchlistScreen struct {
	lifecycle
	env *env

	movie      models.Movie
	input      textinput.Model
	submit     Button
	submitting bool
	inputErr   error
}

func NewAddToWatchlistScreen(e *env, movie models.Movie) *AddToWatchlistScreen {
	s := &AddToWatchlistScreen{
		lifecycle: newLifecycle(e.ctx),
		env:       e,
		movie:     movie,
		input:     newInput("Enter Your Username", "> "),
	}
	s.input.Focus()
	s.submit = NewButton("Submit", s.post)
	return s
}

func (s *AddToWatchlistScreen) Title() string { return "Add to Watchlist" }
func (s *AddToWatchlistScreen) Scope() string { return "screen:profile" }

// InputFocused stays true while the post is in flight so q is not read as quit.
func (s *AddToWatchlistScreen) InputFocused() bool { return s.submitting || s.input.Focused() }

func (s *AddToWatchlistScreen) Bindings() []key.Binding {
	return []key.Binding{keys.Submit, keys.Back}
}

// Movie is the record that will be posted.
func (s *AddToWatchlistScreen) Movie() models.Movie { return s.movie }

func (s *AddToWatchlistScreen) Init() tea.Cmd { return nil }

func (s *AddToWatchlistScreen) post() tea.Cmd {
	if s.submitting {
		return nil
	}
	username, err := models.NormalizeUsername(s.input.Value())
	if err != nil {
		s.inputErr = err
		return nil
	}
	s.inputErr = nil
	s.submitting = true
	s.input.Blur()

	res, ctx, c, movie := s.result(0), s.ctx, s.env.client, s.movie
	return func() tea.Msg {
		err := c.AddToWatchlist(ctx, username, movie)
		return watchlistAddedMsg{result: res, Username: username, Movie: movie, Err: err}
	}
}

func (s *AddToWatchlistScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case watchlistAddedMsg:
		from, e := s.ID(), s.env
		return s, func() tea.Msg {
			next := NewMyWatchlistScreen(e, msg.Username, &WriteResult{Movie: msg.Movie, Err: msg.Err})
			return replaceScreenMsg{From: from, Screen: next}
		}, false
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back):
			return s, nil, true
		case key.Matches(msg, keys.Submit):
			return s, s.submit.Press(), false
		}
		if s.submitting {
			return s, nil, false
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd, false
	}
	return s, nil, false
}

func (s *AddToWatchlistScreen) View(width, height int) string {
	lines := []string{
		"Adding " + tileTitleStyle.Render(s.movie.Title),
		posterStyle.Render(s.movie.PosterPath),
		"",
		s.input.View(),
	}
	if s.inputErr != nil {
		lines = append(lines, bannerErrStyle.Render(s.inputErr.Error()))
	}
	if s.submitting {
		lines = append(lines, mutedStyle.Render("Submitting..."))
	} else {
		lines = append(lines, s.submit.View(true))
	}
	return strings.Join(lines, "\n")
}
