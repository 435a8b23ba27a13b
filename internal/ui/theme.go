// Package ui renders lmtt's terminal output and interactive prompts.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors and styles used for terminal output
type Theme struct {
	Name string

	// Core colors
	Primary lipgloss.AdaptiveColor
	Accent  lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Border  lipgloss.AdaptiveColor

	// Component styles
	Title    lipgloss.Style // section headings
	Label    lipgloss.Style // module names, keys in key/value output
	Dimmed   lipgloss.Style // paths, durations, hints
	Key      lipgloss.Style // option keys in prompts
	Selected lipgloss.Style // highlighted prompt option
	Box      lipgloss.Style // framed summaries
}

func (t *Theme) buildStyles() *Theme {
	t.Title = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.Label = lipgloss.NewStyle().
		Foreground(t.Accent)

	t.Dimmed = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.Key = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.Selected = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	t.Box = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	return t
}

// ThemeCharm returns the default Charm theme
func ThemeCharm() *Theme {
	t := &Theme{Name: "charm"}
	t.Primary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	t.Accent = lipgloss.AdaptiveColor{Light: "#F780E2", Dark: "#F780E2"}
	t.Muted = lipgloss.AdaptiveColor{Light: "243", Dark: "243"}
	t.Error = lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"}
	t.Success = lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"}
	t.Warning = lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFAA00"}
	t.Border = lipgloss.AdaptiveColor{Light: "240", Dark: "240"}
	return t.buildStyles()
}

// ThemeDracula returns a Dracula-inspired theme
func ThemeDracula() *Theme {
	t := &Theme{Name: "dracula"}
	t.Primary = lipgloss.AdaptiveColor{Light: "#bd93f9", Dark: "#bd93f9"}
	t.Accent = lipgloss.AdaptiveColor{Light: "#ff79c6", Dark: "#ff79c6"}
	t.Muted = lipgloss.AdaptiveColor{Light: "#6272a4", Dark: "#6272a4"}
	t.Error = lipgloss.AdaptiveColor{Light: "#ff5555", Dark: "#ff5555"}
	t.Success = lipgloss.AdaptiveColor{Light: "#50fa7b", Dark: "#50fa7b"}
	t.Warning = lipgloss.AdaptiveColor{Light: "#f1fa8c", Dark: "#f1fa8c"}
	t.Border = lipgloss.AdaptiveColor{Light: "61", Dark: "61"}
	return t.buildStyles()
}

// ThemeNord returns a Nord-inspired theme
func ThemeNord() *Theme {
	t := &Theme{Name: "nord"}
	t.Primary = lipgloss.AdaptiveColor{Light: "#5e81ac", Dark: "#88c0d0"}
	t.Accent = lipgloss.AdaptiveColor{Light: "#b48ead", Dark: "#b48ead"}
	t.Muted = lipgloss.AdaptiveColor{Light: "#4c566a", Dark: "#616e88"}
	t.Error = lipgloss.AdaptiveColor{Light: "#bf616a", Dark: "#bf616a"}
	t.Success = lipgloss.AdaptiveColor{Light: "#a3be8c", Dark: "#a3be8c"}
	t.Warning = lipgloss.AdaptiveColor{Light: "#d08770", Dark: "#ebcb8b"}
	t.Border = lipgloss.AdaptiveColor{Light: "#d8dee9", Dark: "#3b4252"}
	return t.buildStyles()
}

// GetTheme returns a theme by name, defaulting to Charm
func GetTheme(name string) *Theme {
	switch name {
	case "dracula":
		return ThemeDracula()
	case "nord":
		return ThemeNord()
	default:
		return ThemeCharm()
	}
}

// AvailableThemes returns a list of available theme names
func AvailableThemes() []string {
	return []string{"charm", "dracula", "nord"}
}
