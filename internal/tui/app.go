package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/jask/watchmania/internal/client"
	"github.com/jask/watchmania/internal/config"
)

const appName = "Watch Mania"

// App is the root model. It owns the screen stack and routes messages to it.
type App struct {
	env       *env
	screens   ScreenStack
	help      help.Model
	width     int
	height    int
	status    string
	statusErr bool
	quitting  bool
}

func New(ctx context.Context, c client.Client, cfg config.UIConfig, logger zerolog.Logger) *App {
	columns := cfg.GridColumns
	if columns < 1 {
		columns = 1
	}
	e := &env{ctx: ctx, client: c, logger: logger, columns: columns}
	a := &App{
		env:    e,
		help:   help.New(),
		width:  100,
		height: 32,
		status: "Ready",
	}
	a.screens.Push(NewHomeScreen(e))
	return a
}

func (a *App) Init() tea.Cmd {
	return a.screens.Top().Init()
}

// Top returns the screen currently shown.
func (a *App) Top() Screen { return a.screens.Top() }

// Depth is the number of screens on the stack.
func (a *App) Depth() int { return a.screens.Len() }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		return a, a.updateTop(msg)
	case statusMsg:
		a.status, a.statusErr = msg.Text, msg.IsErr
		return a, nil
	case errMsg:
		a.status, a.statusErr = msg.Error(), true
		a.env.logger.Warn().Err(msg.error).Msg("Screen error")
		return a, nil
	case pushScreenMsg:
		if msg.Screen == nil {
			return a, nil
		}
		a.screens.Push(msg.Screen)
		a.env.logger.Debug().Str("screen", msg.Screen.Scope()).Msg("Push screen")
		return a, msg.Screen.Init()
	case replaceScreenMsg:
		top := a.screens.Top()
		if msg.Screen == nil || top == nil || top.ID() != msg.From {
			if msg.Screen != nil {
				msg.Screen.Teardown()
			}
			return a, nil
		}
		a.popTop()
		a.screens.Push(msg.Screen)
		a.env.logger.Debug().Str("screen", msg.Screen.Scope()).Msg("Replace screen")
		return a, msg.Screen.Init()
	case popScreenMsg:
		a.popTop()
		return a, nil
	case screenResult:
		return a, a.route(msg)
	case spinner.TickMsg:
		var cmds []tea.Cmd
		for i, s := range a.screens.All() {
			next, cmd, _ := s.Update(msg)
			a.screens.Replace(i, next)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.quitting = true
			return a, tea.Quit
		}
		if top := a.screens.Top(); top != nil && msg.String() == "q" && !top.InputFocused() {
			a.quitting = true
			return a, tea.Quit
		}
		return a, a.updateTop(msg)
	}
	return a, a.updateTop(msg)
}

func (a *App) updateTop(msg tea.Msg) tea.Cmd {
	top := a.screens.Top()
	if top == nil {
		return nil
	}
	next, cmd, pop := top.Update(msg)
	if pop {
		a.popTop()
		return cmd
	}
	a.screens.Replace(a.screens.Len()-1, next)
	return cmd
}

// route delivers an async result to the screen that asked for it. Results
// for screens that are gone are dropped.
func (a *App) route(msg screenResult) tea.Cmd {
	i := a.screens.Find(msg.screenID())
	if i < 0 {
		a.env.logger.Debug().Uint64("screen_id", msg.screenID()).Msgf("Dropping %T for closed screen", msg)
		return nil
	}
	next, cmd, _ := a.screens.All()[i].Update(msg)
	a.screens.Replace(i, next)
	return cmd
}

// popTop tears down the top screen. The root screen is never popped.
func (a *App) popTop() {
	if a.screens.Len() <= 1 {
		return
	}
	s := a.screens.Pop()
	s.Teardown()
	a.env.logger.Debug().Str("screen", s.Scope()).Msg("Pop screen")
}

// Close tears down every screen on the stack.
func (a *App) Close() {
	for _, s := range a.screens.All() {
		s.Teardown()
	}
}

func (a *App) View() string {
	if a.quitting {
		return "Goodbye\n"
	}
	top := a.screens.Top()
	header := renderHeader(a.width, top.Title())
	status := renderStatusBar(a.width, a.status, a.statusErr)
	footer := renderBar(headerBarStyle, max(1, a.width), a.help.ShortHelpView(top.Bindings()))

	bodyHeight := max(0, a.height-lipgloss.Height(header)-lipgloss.Height(status)-lipgloss.Height(footer))
	body := clipHeight(top.View(max(1, a.width), bodyHeight), bodyHeight)
	body = fitHeight(body, bodyHeight)

	view := strings.Join([]string{header, body, status, footer}, "\n")
	return appStyle.Width(max(1, a.width)).MaxWidth(max(1, a.width)).Render(view)
}

func renderHeader(width int, title string) string {
	left := titleStyle.Render(appName)
	line := left + "  " + title
	return renderBar(headerBarStyle, max(1, width), line)
}

func renderStatusBar(width int, msg string, isErr bool) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		msg = "Ready"
	}
	if isErr {
		return renderBar(statusErrBarStyle, max(1, width), msg)
	}
	return renderBar(statusBarStyle, max(1, width), msg)
}

func renderBar(style lipgloss.Style, width int, text string) string {
	line := strings.ReplaceAll(text, "\n", " ")
	line = ansi.Truncate(line, width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return style.Width(width).MaxWidth(width).Render(line)
}

func clipHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func fitHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
