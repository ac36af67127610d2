package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Settings   key.Binding
	Styles     key.Binding
	Submit     key.Binding
	Enter      key.Binding
	Up         key.Binding
	Down       key.Binding
	Back       key.Binding
	Regenerate key.Binding
	Retry      key.Binding
	Reset      key.Binding
	Mindmap    key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "help"),
	),
	Settings: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("ctrl+p", "settings"),
	),
	Styles: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "style"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "analyze"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "continue"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("up/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("down/j", "down"),
	),
	Back: key.NewBinding(
		key.WithKeys("b", "backspace"),
		key.WithHelp("b", "back"),
	),
	Regenerate: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "regenerate"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry"),
	),
	Reset: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Mindmap: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "save mind map"),
	),
}
