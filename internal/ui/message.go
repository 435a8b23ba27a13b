package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// MessageType selects the symbol and color of a message line
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// Symbols prefixed to message lines
const (
	SymbolSuccess = "✓"
	SymbolWarning = "⚠"
	SymbolError   = "✗"
	SymbolInfo    = "•"
)

// RenderMessage renders a one-line message styled by type
func RenderMessage(text string, msgType MessageType, theme *Theme) string {
	if text == "" {
		return ""
	}

	var color lipgloss.AdaptiveColor
	var symbol string
	switch msgType {
	case MessageSuccess:
		color, symbol = theme.Success, SymbolSuccess
	case MessageWarning:
		color, symbol = theme.Warning, SymbolWarning
	case MessageError:
		color, symbol = theme.Error, SymbolError
	default:
		color, symbol = theme.Primary, SymbolInfo
	}

	return lipgloss.NewStyle().Foreground(color).Render(symbol + " " + text)
}

// Printer writes styled lines to an output
type Printer struct {
	Out   io.Writer
	Theme *Theme
}

// NewPrinter returns a printer using theme, or the default theme when nil
func NewPrinter(out io.Writer, theme *Theme) *Printer {
	if theme == nil {
		theme = ThemeCharm()
	}
	return &Printer{Out: out, Theme: theme}
}

func (p *Printer) Println(text string) {
	fmt.Fprintln(p.Out, text)
}

func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.Out, format, args...)
}

func (p *Printer) Title(text string) {
	fmt.Fprintln(p.Out, p.Theme.Title.Render(text))
}

func (p *Printer) Info(format string, args ...any) {
	p.message(MessageInfo, format, args...)
}

func (p *Printer) Success(format string, args ...any) {
	p.message(MessageSuccess, format, args...)
}

func (p *Printer) Warning(format string, args ...any) {
	p.message(MessageWarning, format, args...)
}

func (p *Printer) Error(format string, args ...any) {
	p.message(MessageError, format, args...)
}

func (p *Printer) message(t MessageType, format string, args ...any) {
	fmt.Fprintln(p.Out, RenderMessage(fmt.Sprintf(format, args...), t, p.Theme))
}
