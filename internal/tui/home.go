package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/watchmania/internal/models"
	"github.com/jask/watchmania/internal/search"
)

// HomeScreen lists popular movies.
type HomeScreen struct {
	lifecycle
	env *env

	state   loadState
	err     error
	seq     int
	movies  []models.Movie
	visible []models.Movie
	tiles   []tile
	cursor  int

	spinner   spinner.Model
	query     textinput.Model
	searching bool

	searchButton Button
	usersButton  Button
}

func NewHomeScreen(e *env) *HomeScreen {
	s := &HomeScreen{
		lifecycle: newLifecycle(e.ctx),
		env:       e,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		query:     newInput("search movies", "/ "),
	}
	s.searchButton = NewButton("Search Movies", s.openSearch)
	s.usersButton = NewButton("Search Users", func() tea.Cmd {
		return pushCmd(NewUserLookupScreen(s.env))
	})
	return s
}

func newInput(placeholder, prompt string) textinput.Model {
	inp := textinput.New()
	inp.Placeholder = placeholder
	inp.Prompt = prompt
	inp.CharLimit = 128
	_ = inp.Cursor.SetMode(cursor.CursorStatic)
	return inp
}

func (s *HomeScreen) Title() string { return "Welcome to Watch Mania" }
func (s *HomeScreen) Scope() string { return "screen:home" }

func (s *HomeScreen) InputFocused() bool { return s.searching }

func (s *HomeScreen) Bindings() []key.Binding {
	if s.searching {
		return []key.Binding{keys.Submit, keys.Back}
	}
	return []key.Binding{keys.Up, keys.Down, keys.Add, keys.Refresh, keys.Search, keys.Users, keys.Quit}
}

func (s *HomeScreen) Init() tea.Cmd { return s.fetch() }

func (s *HomeScreen) fetch() tea.Cmd {
	s.seq++
	s.state = stateLoading
	s.err = nil
	res, ctx, c := s.result(s.seq), s.ctx, s.env.client
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		movies, err := c.PopularMovies(ctx)
		return moviesLoadedMsg{result: res, Movies: movies, Err: err}
	})
}

// Movies returns the tiles currently shown, after any search filter.
func (s *HomeScreen) Movies() []models.Movie { return s.visible }

func (s *HomeScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case moviesLoadedMsg:
		if msg.Seq != s.seq {
			return s, nil, false
		}
		s.movies, s.err = msg.Movies, msg.Err
		switch {
		case msg.Err != nil:
			s.state = stateFailed
			s.movies = nil
		case len(msg.Movies) == 0:
			s.state = stateEmpty
		default:
			s.state = stateLoaded
		}
		s.refilter()
		if msg.Err != nil {
			return s, ErrorCmd(msg.Err), false
		}
		return s, nil, false
	case spinner.TickMsg:
		if s.state != stateLoading {
			return s, nil, false
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd, false
	case tea.KeyMsg:
		if s.searching {
			return s.updateSearch(msg)
		}
		if next, ok := moveCursor(msg, s.cursor, len(s.tiles), s.env.columns); ok {
			s.cursor = next
			return s, nil, false
		}
		switch {
		case key.Matches(msg, keys.Add):
			if len(s.tiles) == 0 {
				return s, nil, false
			}
			return s, s.tiles[s.cursor].button.Press(), false
		case key.Matches(msg, keys.Refresh):
			return s, s.fetch(), false
		case key.Matches(msg, keys.Search):
			return s, s.searchButton.Press(), false
		case key.Matches(msg, keys.Users):
			return s, s.usersButton.Press(), false
		case key.Matches(msg, keys.Back):
			if s.query.Value() != "" {
				s.query.SetValue("")
				s.refilter()
			}
			return s, nil, false
		}
	}
	return s, nil, false
}

func (s *HomeScreen) openSearch() tea.Cmd {
	s.searching = true
	return s.query.Focus()
}

func (s *HomeScreen) updateSearch(msg tea.KeyMsg) (Screen, tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyEsc:
		s.searching = false
		s.query.Blur()
		s.query.SetValue("")
		s.refilter()
		return s, nil, false
	case tea.KeyEnter:
		s.searching = false
		s.query.Blur()
		return s, nil, false
	}
	var cmd tea.Cmd
	s.query, cmd = s.query.Update(msg)
	s.refilter()
	return s, cmd, false
}

// refilter rebuilds the tiles from the loaded movies and the current query.
func (s *HomeScreen) refilter() {
	s.visible = search.Filter(s.movies, s.query.Value())
	s.tiles = make([]tile, 0, len(s.visible))
	for _, movie := range s.visible {
		s.tiles = append(s.tiles, tile{
			title:  movie.Title,
			poster: movie.PosterPath,
			button: NewButton("Add to Watchlist", func() tea.Cmd {
				return pushCmd(NewAddToWatchlistScreen(s.env, movie))
			}),
		})
	}
	s.cursor = clampCursor(s.cursor, len(s.tiles))
}

func (s *HomeScreen) View(width, height int) string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		s.searchButton.View(s.searching), " ", s.usersButton.View(false))
	lines := []string{header}
	if s.searching || s.query.Value() != "" {
		lines = append(lines, s.query.View())
	}

	switch s.state {
	case stateLoading:
		lines = append(lines, s.spinner.View()+" Loading popular movies...")
	case stateFailed:
		lines = append(lines,
			bannerErrStyle.Render(fmt.Sprintf("Could not load movies: %v", s.err)),
			mutedStyle.Render("[r] Retry"))
	case stateEmpty:
		lines = append(lines, mutedStyle.Render("No movies yet."))
	default:
		if len(s.tiles) == 0 {
			lines = append(lines, mutedStyle.Render(fmt.Sprintf("No movies match %q.", strings.TrimSpace(s.query.Value()))))
			break
		}
		used := lipgloss.Height(strings.Join(lines, "\n"))
		lines = append(lines, renderGrid(s.tiles, s.cursor, s.env.columns, width, height-used))
	}
	return strings.Join(lines, "\n")
}
