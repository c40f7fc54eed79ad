package tui

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jask/watchmania/internal/client"
)

// Screen is one entry on the navigation stack. Update returns true when the
// screen wants to be popped.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd, bool)
	View(width, height int) string
	Title() string
	Scope() string
	Bindings() []key.Binding
	InputFocused() bool

	ID() uint64
	Teardown()
}

// env is what every screen needs from the app.
type env struct {
	ctx     context.Context
	client  client.Client
	logger  zerolog.Logger
	columns int
}

var lastScreenID atomic.Uint64

// lifecycle scopes a screen's requests. Teardown cancels everything in flight.
type lifecycle struct {
	id     uint64
	ctx    context.Context
	cancel context.CancelFunc
}

func newLifecycle(parent context.Context) lifecycle {
	ctx, cancel := context.WithCancel(parent)
	return lifecycle{id: lastScreenID.Add(1), ctx: ctx, cancel: cancel}
}

func (l *lifecycle) ID() uint64 { return l.id }

func (l *lifecycle) Teardown() { l.cancel() }

func (l *lifecycle) result(seq int) result {
	return result{Screen: l.id, Seq: seq}
}

type loadState int

const (
	stateLoading loadState = iota
	stateLoaded
	stateEmpty
	stateFailed
)
