package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jask/watchmania/internal/client"
	"github.com/jask/watchmania/internal/config"
	"github.com/jask/watchmania/internal/models"
)

// fakeClient records every call as "METHOD path" and serves canned data.
type fakeClient struct {
	mu sync.Mutex

	calls  []string
	posted []models.Movie

	movies       []models.Movie
	moviesErr    error
	watchlists   map[string]models.Watchlist
	watchlistErr error
	addErr       error
	deleteErr    error
}

var _ client.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{watchlists: map[string]models.Watchlist{}}
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) PopularMovies(ctx context.Context) ([]models.Movie, error) {
	f.record("GET /popular-movies")
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.movies, f.moviesErr
}

func (f *fakeClient) AddToWatchlist(ctx context.Context, username string, movie models.Movie) error {
	f.record("POST /watchlist/" + username)
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posted = append(f.posted, movie)
	if f.addErr != nil {
		return f.addErr
	}
	f.watchlists[username] = append(f.watchlists[username], models.WatchlistEntry{
		Key:   fmt.Sprint(movie.ID),
		Movie: movie,
	})
	return nil
}

func (f *fakeClient) Watchlist(ctx context.Context, username string) (models.Watchlist, error) {
	f.record("GET /watchlist/" + username)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.watchlistErr != nil {
		return nil, f.watchlistErr
	}
	return append(models.Watchlist(nil), f.watchlists[username]...), nil
}

func (f *fakeClient) RemoveFromWatchlist(ctx context.Context, username string, movieID int64) error {
	f.record(fmt.Sprintf("DELETE /watchlist/%s/%d", username, movieID))
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	list := f.watchlists[username][:0:0]
	for _, e := range f.watchlists[username] {
		if e.Key != fmt.Sprint(movieID) {
			list = append(list, e)
		}
	}
	f.watchlists[username] = list
	return nil
}

func (f *fakeClient) Close() error { return nil }

func testEnv(t *testing.T, c client.Client) *env {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return &env{ctx: ctx, client: c, logger: zerolog.Nop(), columns: 2}
}

func newTestApp(t *testing.T, c client.Client) *App {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return New(ctx, c, config.UIConfig{GridColumns: 2}, zerolog.Nop())
}

// collect runs cmd and returns the messages it produces, flattening batches.
// Spinner ticks are skipped.
func collect(cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			out = append(out, msg)
		}
	}
	return out
}

// drive feeds everything cmd produces back into the app until it settles.
func drive(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 500 {
			t.Fatal("app did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		for _, msg := range collect(c) {
			if _, ok := msg.(tea.QuitMsg); ok {
				continue
			}
			_, next := a.Update(msg)
			queue = append(queue, next)
		}
	}
}

func send(t *testing.T, a *App, msg tea.Msg) {
	t.Helper()
	_, cmd := a.Update(msg)
	drive(t, a, cmd)
}

func press(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func sampleMovies() []models.Movie {
	return []models.Movie{
		{ID: 41, Title: "The Matrix", PosterPath: "/matrix.jpg"},
		{ID: 42, Title: "X", PosterPath: "/x.jpg"},
		{ID: 43, Title: "Amélie", PosterPath: "/amelie.jpg"},
	}
}

func screenResultOf[T any](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	for _, msg := range collect(cmd) {
		if m, ok := msg.(T); ok {
			return m
		}
	}
	var zero T
	t.Fatalf("no %T produced", zero)
	return zero
}

func countTiles(view, button string) int {
	return strings.Count(view, button)
}
