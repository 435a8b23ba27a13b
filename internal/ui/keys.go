package ui

import "github.com/charmbracelet/bubbles/key"

// promptKeys holds the navigation bindings shared by every prompt. Option
// keys are bound per prompt from the options themselves.
type promptKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

func defaultPromptKeys() promptKeys {
	return promptKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "left", "h"),
			key.WithHelp("↑/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "right", "l", "tab"),
			key.WithHelp("↓/j", "next"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "choose"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
