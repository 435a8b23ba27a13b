package modules

import (
	"context"
	"fmt"

	"github.com/renato0307/lmtt/internal/config"
	"github.com/renato0307/lmtt/internal/logging"
	"github.com/renato0307/lmtt/internal/runner"
	"github.com/renato0307/lmtt/internal/scheme"
)

// XDG notifies portal clients (Firefox, Electron, libadwaita) of the new
// color-scheme through the desktop portal SettingChanged signal
type XDG struct {
	Base
}

func NewXDG() *XDG {
	return &XDG{Base: newBase("xdg", "gdbus", 15)}
}

func (m *XDG) Description() string { return "XDG desktop portal color-scheme signal" }

func (m *XDG) Apply(ctx context.Context, s *scheme.ColorScheme, cfg *config.Config) error {
	// portal values: 1 prefers dark, 2 prefers light
	value := modeWord(s, "2", "1")

	if _, err := runner.Run(ctx, "systemctl", []string{"--user", "is-active", "--quiet", "xdg-desktop-portal"}, runner.Options{}); err != nil {
		logging.Module(m.Name()).Debug("starting xdg-desktop-portal")
		runner.BestEffort(ctx, "systemctl", "--user", "start", "xdg-desktop-portal")
	}
	runner.BestEffort(ctx, "systemctl", "--user", "set-environment", "GTK_USE_PORTAL=1")
	runner.BestEffort(ctx, "dbus-update-activation-environment", "--systemd", "GTK_USE_PORTAL=1")
	if runner.Available("hyprctl") {
		runner.BestEffort(ctx, "hyprctl", "setenv", "GTK_USE_PORTAL", "1")
	}

	args := []string{
		"emit", "--session",
		"--object-path", "/org/freedesktop/portal/desktop",
		"--signal", "org.freedesktop.portal.Settings.SettingChanged",
		"org.freedesktop.appearance", "color-scheme",
		fmt.Sprintf("<uint32 %s>", value),
	}
	if _, err := runner.Run(ctx, m.BinaryName(), args, runner.Options{}); err != nil {
		return err
	}

	logging.Module(m.Name()).Info("emitted portal signal", "mode", s.Mode().String(), "value", value)
	return nil
}
