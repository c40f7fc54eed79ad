package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/watchmania/internal/models"
)

// MyWatchlistScreen shows one user's watchlist and deletes from it.
type MyWatchlistScreen struct {
	lifecycle
	env *env

	username string
	state    loadState
	err      error
	seq      int
	entries  models.Watchlist
	tiles    []tile
	cursor   int
	deleting bool

	banner    string
	bannerErr bool
	spinner   spinner.Model
}

func NewMyWatchlistScreen(e *env, username string, write *WriteResult) *MyWatchlistScreen {
	s := &MyWatchlistScreen{
		lifecycle: newLifecycle(e.ctx),
		env:       e,
		username:  username,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	if write != nil {
		if write.Err != nil {
			s.setBanner(fmt.Sprintf("could not add %s: %v", write.Movie.Title, write.Err), true)
		} else {
			s.setBanner("added "+write.Movie.Title, false)
		}
	}
	return s
}

func (s *MyWatchlistScreen) Title() string { return s.username + "'s Watchlist" }
func (s *MyWatchlistScreen) Scope() string { return "screen:watchlist" }

func (s *MyWatchlistScreen) InputFocused() bool { return false }

func (s *MyWatchlistScreen) Bindings() []key.Binding {
	return []key.Binding{keys.Up, keys.Down, keys.Delete, keys.Refresh, keys.Back, keys.Quit}
}

func (s *MyWatchlistScreen) Username() string { return s.username }

// Entries returns the watchlist as last fetched.
func (s *MyWatchlistScreen) Entries() models.Watchlist { return s.entries }

func (s *MyWatchlistScreen) setBanner(text string, isErr bool) {
	s.banner, s.bannerErr = text, isErr
}

func (s *MyWatchlistScreen) Init() tea.Cmd { return s.fetch() }

func (s *MyWatchlistScreen) fetch() tea.Cmd {
	s.seq++
	s.state = stateLoading
	s.err = nil
	res, ctx, c, username := s.result(s.seq), s.ctx, s.env.client, s.username
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		list, err := c.Watchlist(ctx, username)
		return watchlistLoadedMsg{result: res, Watchlist: list, Err: err}
	})
}

func (s *MyWatchlistScreen) remove(entry models.WatchlistEntry) tea.Cmd {
	if s.deleting {
		return nil
	}
	id, err := entry.MovieID()
	if err != nil {
		s.setBanner(fmt.Sprintf("could not delete %s: %v", entry.Movie.Title, err), true)
		return nil
	}
	s.deleting = true
	res, ctx, c, username := s.result(s.seq), s.ctx, s.env.client, s.username
	movie := entry.Movie
	return func() tea.Msg {
		err := c.RemoveFromWatchlist(ctx, username, id)
		return watchlistDeletedMsg{result: res, Movie: movie, Err: err}
	}
}

func (s *MyWatchlistScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case watchlistLoadedMsg:
		if msg.Seq != s.seq {
			return s, nil, false
		}
		s.entries, s.err = msg.Watchlist, msg.Err
		switch {
		case msg.Err != nil:
			s.state = stateFailed
			s.entries = nil
		case len(msg.Watchlist) == 0:
			s.state = stateEmpty
		default:
			s.state = stateLoaded
		}
		s.rebuild()
		if msg.Err != nil {
			return s, ErrorCmd(msg.Err), false
		}
		return s, nil, false
	case watchlistDeletedMsg:
		s.deleting = false
		if msg.Err != nil {
			s.setBanner(fmt.Sprintf("could not delete %s: %v", msg.Movie.Title, msg.Err), true)
		} else {
			s.setBanner("removed "+msg.Movie.Title, false)
		}
		return s, tea.Batch(StatusCmd("Refreshing "+s.username+"'s watchlist"), s.fetch()), false
	case spinner.TickMsg:
		if s.state != stateLoading {
			return s, nil, false
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd, false
	case tea.KeyMsg:
		if next, ok := moveCursor(msg, s.cursor, len(s.tiles), s.env.columns); ok {
			s.cursor = next
			return s, nil, false
		}
		switch {
		case key.Matches(msg, keys.Back):
			return s, nil, true
		case key.Matches(msg, keys.Delete):
			if len(s.tiles) == 0 {
				return s, nil, false
			}
			return s, s.tiles[s.cursor].button.Press(), false
		case key.Matches(msg, keys.Refresh):
			return s, s.fetch(), false
		}
	}
	return s, nil, false
}

func (s *MyWatchlistScreen) rebuild() {
	s.tiles = make([]tile, 0, len(s.entries))
	for _, entry := range s.entries {
		s.tiles = append(s.tiles, tile{
			title:  entry.Movie.Title,
			poster: entry.Movie.PosterPath,
			button: NewButton("Delete From Watchlist", func() tea.Cmd {
				return s.remove(entry)
			}),
		})
	}
	s.cursor = clampCursor(s.cursor, len(s.tiles))
}

func (s *MyWatchlistScreen) View(width, height int) string {
	var lines []string
	if s.banner != "" {
		if s.bannerErr {
			lines = append(lines, bannerErrStyle.Render(s.banner))
		} else {
			lines = append(lines, bannerOKStyle.Render(s.banner))
		}
	}

	switch s.state {
	case stateLoading:
		lines = append(lines, s.spinner.View()+" Loading watchlist...")
	case stateFailed:
		lines = append(lines,
			bannerErrStyle.Render(fmt.Sprintf("Could not load watchlist: %v", s.err)),
			mutedStyle.Render("[r] Retry"))
	case stateEmpty:
		lines = append(lines, mutedStyle.Render("Your watchlist is empty."))
	default:
		used := 0
		if len(lines) > 0 {
			used = lipgloss.Height(strings.Join(lines, "\n"))
		}
		lines = append(lines, renderGrid(s.tiles, s.cursor, s.env.columns, width, height-used))
	}
	return strings.Join(lines, "\n")
}
