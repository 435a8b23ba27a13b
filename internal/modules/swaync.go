package modules

import (
	"context"

	"github.com/renato0307/lmtt/internal/config"
	"github.com/renato0307/lmtt/internal/logging"
	"github.com/renato0307/lmtt/internal/runner"
	"github.com/renato0307/lmtt/internal/scheme"
)

const defaultSwayNCReload = "swaync-client --reload-css"

// SwayNC writes the shared colours CSS and asks the daemon to reload it
type SwayNC struct {
	Base
}

func NewSwayNC() *SwayNC {
	return &SwayNC{Base: newBase("swaync", "swaync", DefaultPriority)}
}

func (m *SwayNC) Description() string { return "SwayNC notification center CSS colors" }

func (m *SwayNC) Apply(ctx context.Context, s *scheme.ColorScheme, cfg *config.Config) error {
	log := logging.Module(m.Name())
	path, err := writeColorsCSS(s)
	if err != nil {
		return err
	}
	log.Info("updated colors", "path", path)

	command := cfg.ModuleCommand(m.Name())
	if command == "" {
		command = defaultSwayNCReload
	}
	// the daemon may not be running
	if _, err := runner.Shell(ctx, command, runner.Options{}); err != nil {
		log.Debug("reload failed", "command", command, "error", err)
	}
	return nil
}

func (m *SwayNC) ConfigFiles() ([]ConfigFileInfo, error) {
	return styleConfigFiles("swaync", "Import lmtt colors into SwayNC CSS")
}
