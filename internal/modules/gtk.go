package modules

import (
	"context"
	"strconv"

	"github.com/renato0307/lmtt/internal/config"
	"github.com/renato0307/lmtt/internal/logging"
	"github.com/renato0307/lmtt/internal/runner"
	"github.com/renato0307/lmtt/internal/scheme"
)

const gnomeInterface = "org.gnome.desktop.interface"

// GTK sets the GNOME interface settings read by GTK applications
type GTK struct {
	Base
}

func NewGTK() *GTK {
	return &GTK{Base: newBase("gtk", "gsettings", 10)}
}

func (m *GTK) Description() string { return "GTK color-scheme, theme, icons, cursor and accent via gsettings" }

func (m *GTK) Apply(ctx context.Context, s *scheme.ColorScheme, cfg *config.Config) error {
	log := logging.Module(m.Name())
	preference := modeWord(s, "prefer-light", "prefer-dark")

	if err := m.set(ctx, "color-scheme", preference); err != nil {
		return err
	}

	profile := cfg.Profile(s.Mode())
	theme := profile.GTKTheme
	if theme == "" {
		theme = modeWord(s, "Adwaita", "Adwaita-dark")
	}
	m.setBestEffort(ctx, "gtk-theme", theme)

	if profile.IconTheme != "" {
		m.setBestEffort(ctx, "icon-theme", profile.IconTheme)
	}
	if profile.CursorTheme != "" {
		m.setBestEffort(ctx, "cursor-theme", profile.CursorTheme)
	}
	if profile.CursorSize > 0 {
		m.setBestEffort(ctx, "cursor-size", strconv.Itoa(profile.CursorSize))
	}
	if profile.Font != "" {
		m.setBestEffort(ctx, "font-name", profile.Font)
	}

	if primary, ok := s.Get(scheme.RolePrimary); ok {
		if accent, err := scheme.AccentColor(primary); err == nil {
			m.setBestEffort(ctx, "accent-color", accent)
		}
	}

	log.Info("set color-scheme", "preference", preference, "gtk_theme", theme)
	return nil
}

func (m *GTK) set(ctx context.Context, key, value string) error {
	_, err := runner.Run(ctx, m.BinaryName(), []string{"set", gnomeInterface, key, value}, runner.Options{})
	return err
}

// accent-color and the profile keys do not exist on every GNOME version
func (m *GTK) setBestEffort(ctx context.Context, key, value string) {
	runner.BestEffort(ctx, m.BinaryName(), "set", gnomeInterface, key, value)
}
