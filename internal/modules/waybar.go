package modules

import (
	"context"

	"github.com/renato0307/lmtt/internal/config"
	"github.com/renato0307/lmtt/internal/logging"
	"github.com/renato0307/lmtt/internal/runner"
	"github.com/renato0307/lmtt/internal/scheme"
)

// defaultWaybarReload makes waybar re-read its style without restarting
const defaultWaybarReload = "pkill -SIGUSR2 -x waybar"

// Waybar writes the shared colours CSS imported by waybar's style.css
type Waybar struct {
	Base
}

func NewWaybar() *Waybar {
	return &Waybar{Base: newBase("waybar", "waybar", DefaultPriority)}
}

func (m *Waybar) Description() string { return "Waybar status bar CSS colors" }

func (m *Waybar) Apply(ctx context.Context, s *scheme.ColorScheme, cfg *config.Config) error {
	log := logging.Module(m.Name())
	path, err := writeColorsCSS(s)
	if err != nil {
		return err
	}
	log.Info("updated colors", "path", path)

	// waybar with reload_style_on_change picks the file up by itself
	if cfg.ShouldRestart(m.Name()) {
		command := cfg.ModuleCommand(m.Name())
		if command == "" {
			command = defaultWaybarReload
		}
		if _, err := runner.Shell(ctx, command, runner.Options{}); err != nil {
			log.Debug("reload failed", "command", command, "error", err)
		}
	}
	return nil
}

func (m *Waybar) ConfigFiles() ([]ConfigFileInfo, error) {
	return styleConfigFiles("waybar", "Import lmtt colors into Waybar CSS")
}
