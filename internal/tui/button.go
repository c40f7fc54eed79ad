package tui

import tea "github.com/charmbracelet/bubbletea"

// Button is a labelled action. It holds no state beyond its title and handler.
type Button struct {
	title   string
	onPress func() tea.Cmd
}

func NewButton(title string, onPress func() tea.Cmd) Button {
	return Button{title: title, onPress: onPress}
}

func (b Button) Title() string { return b.title }

// Press runs the handler. A button without one does nothing.
func (b Button) Press() tea.Cmd {
	if b.onPress == nil {
		return nil
	}
	return b.onPress()
}

func (b Button) View(focused bool) string {
	if focused {
		return buttonFocusStyle.Render(b.title)
	}
	return buttonStyle.Render(b.title)
}
