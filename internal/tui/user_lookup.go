package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/watchmania/internal/models"
)

// UserLookupScreen opens another user's watchlist by name.
type UserLookupScreen struct {
	lifecycle
	env *env

	input    textinput.Model
	submit   Button
	inputErr error
}

func NewUserLookupScreen(e *env) *UserLookupScreen {
	s := &UserLookupScreen{
		lifecycle: newLifecycle(e.ctx),
		env:       e,
		input:     newInput("Enter Your Username", "> "),
	}
	s.input.Focus()
	s.submit = NewButton("Submit", s.open)
	return s
}

func (s *UserLookupScreen) Title() string { return "Search Users" }
func (s *UserLookupScreen) Scope() string { return "screen:users" }

func (s *UserLookupScreen) InputFocused() bool { return s.input.Focused() }

func (s *UserLookupScreen) Bindings() []key.Binding {
	return []key.Binding{keys.Submit, keys.Back}
}

func (s *UserLookupScreen) Init() tea.Cmd { return nil }

func (s *UserLookupScreen) open() tea.Cmd {
	username, err := models.NormalizeUsername(s.input.Value())
	if err != nil {
		s.inputErr = err
		return nil
	}
	from, e := s.ID(), s.env
	return func() tea.Msg {
		return replaceScreenMsg{From: from, Screen: NewMyWatchlistScreen(e, username, nil)}
	}
}

func (s *UserLookupScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil, false
	}
	switch {
	case key.Matches(km, keys.Back):
		return s, nil, true
	case key.Matches(km, keys.Submit):
		return s, s.submit.Press(), false
	}
	s.inputErr = nil
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(km)
	return s, cmd, false
}

func (s *UserLookupScreen) View(width, height int) string {
	lines := []string{"Whose watchlist?", s.input.View()}
	if s.inputErr != nil {
		lines = append(lines, bannerErrStyle.Render(s.inputErr.Error()))
	}
	lines = append(lines, s.submit.View(true))
	return strings.Join(lines, "\n")
}
