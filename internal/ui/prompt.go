package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user dismisses a prompt
var ErrCancelled = errors.New("prompt cancelled")

// Option is one answer to a prompt, chosen by pressing Key
type Option struct {
	Key   string
	Label string
}

// Prompter asks the user to pick one option and returns its Key
type Prompter interface {
	Ask(question string, options []Option) (string, error)
}

// YesNo are the options used by Confirm
var YesNo = []Option{{Key: "y", Label: "Yes"}, {Key: "n", Label: "No"}}

// Confirm asks a yes/no question
func Confirm(p Prompter, question string) (bool, error) {
	answer, err := p.Ask(question, YesNo)
	if err != nil {
		return false, err
	}
	return answer == "y", nil
}

// PromptModel is a single-choice bubbletea prompt. An option is picked by
// its key, or by moving the cursor and pressing enter.
type PromptModel struct {
	question string
	options  []Option
	bindings []key.Binding
	keys     promptKeys
	theme    *Theme

	cursor    int
	choice    string
	cancelled bool
}

// NewPrompt builds a prompt for options
func NewPrompt(question string, options []Option, theme *Theme) PromptModel {
	if theme == nil {
		theme = ThemeCharm()
	}
	bindings := make([]key.Binding, len(options))
	for i, opt := range options {
		bindings[i] = key.NewBinding(
			key.WithKeys(strings.ToLower(opt.Key), strings.ToUpper(opt.Key)),
			key.WithHelp(opt.Key, opt.Label),
		)
	}
	return PromptModel{
		question: question,
		options:  options,
		bindings: bindings,
		keys:     defaultPromptKeys(),
		theme:    theme,
	}
}

func (m PromptModel) Init() tea.Cmd {
	return nil
}

func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.options) == 0 {
		return m, nil
	}

	for i, b := range m.bindings {
		if key.Matches(keyMsg, b) {
			m.choice = m.options[i].Key
			return m, tea.Quit
		}
	}

	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		m.cursor = (m.cursor - 1 + len(m.options)) % len(m.options)
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(m.options)
	case key.Matches(keyMsg, m.keys.Select):
		m.choice = m.options[m.cursor].Key
		return m, tea.Quit
	}
	return m, nil
}

func (m PromptModel) View() string {
	question := m.theme.Title.Render(m.question)

	if m.cancelled {
		return question + " " + m.theme.Dimmed.Render("cancelled") + "\n"
	}
	if m.choice != "" {
		return question + " " + m.theme.Selected.Render(m.label(m.choice)) + "\n"
	}

	var b strings.Builder
	b.WriteString(question + "\n")
	for i, opt := range m.options {
		line := fmt.Sprintf("[%s] %s", m.theme.Key.Render(opt.Key), opt.Label)
		if i == m.cursor {
			line = m.theme.Selected.Render("› ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(m.theme.Dimmed.Render(fmt.Sprintf("%s • %s • %s",
		m.keys.Down.Help().Key+" "+m.keys.Down.Help().Desc,
		m.keys.Select.Help().Key+" "+m.keys.Select.Help().Desc,
		m.keys.Cancel.Help().Key+" "+m.keys.Cancel.Help().Desc)) + "\n")
	return b.String()
}

// Choice returns the chosen option key, empty until one is chosen
func (m PromptModel) Choice() string {
	return m.choice
}

// Cancelled reports whether the prompt was dismissed
func (m PromptModel) Cancelled() bool {
	return m.cancelled
}

func (m PromptModel) label(k string) string {
	for _, opt := range m.options {
		if opt.Key == k {
			return opt.Label
		}
	}
	return k
}

// TerminalPrompter runs a PromptModel as a bubbletea program. Nil In/Out use
// the process stdin/stdout.
type TerminalPrompter struct {
	In    io.Reader
	Out   io.Writer
	Theme *Theme
}

func (p *TerminalPrompter) Ask(question string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", errors.New("prompt has no options")
	}

	var opts []tea.ProgramOption
	if p.In != nil {
		opts = append(opts, tea.WithInput(p.In))
	}
	if p.Out != nil {
		opts = append(opts, tea.WithOutput(p.Out))
	}

	final, err := tea.NewProgram(NewPrompt(question, options, p.Theme), opts...).Run()
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	m := final.(PromptModel)
	if m.Cancelled() || m.Choice() == "" {
		return "", ErrCancelled
	}
	return m.Choice(), nil
}
