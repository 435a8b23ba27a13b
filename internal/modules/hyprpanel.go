package modules

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/renato0307/lmtt/internal/config"
	"github.com/renato0307/lmtt/internal/errs"
	"github.com/renato0307/lmtt/internal/logging"
	"github.com/renato0307/lmtt/internal/runner"
	"github.com/renato0307/lmtt/internal/scheme"
)

const hyprpanelModeKey = "theme.matugen_settings.mode"

// HyprPanel switches the matugen mode in hyprpanel's config.json. When
// swaync is installed the two would fight over notifications, so hyprpanel
// is stopped instead.
type HyprPanel struct {
	Base
	// restartDelay separates stopping and starting the panel
	restartDelay time.Duration
}

func NewHyprPanel() *HyprPanel {
	return &HyprPanel{
		Base:         newBase("hyprpanel", "hyprpanel", DefaultPriority),
		restartDelay: 500 * time.Millisecond,
	}
}

func (m *HyprPanel) Description() string { return "HyprPanel matugen mode" }

func (m *HyprPanel) Apply(ctx context.Context, s *scheme.ColorScheme, cfg *config.Config) error {
	log := logging.Module(m.Name())

	if runner.Available("swaync") {
		if m.running(ctx) {
			runner.BestEffort(ctx, "pkill", "-x", m.BinaryName())
			log.Info("stopped to avoid conflicts with swaync")
		}
		return nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return errs.Config("locate config directory", err)
	}
	path := filepath.Join(dir, "hyprpanel", "config.json")

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("no config file", "path", path)
		return nil
	}
	if err != nil {
		return errs.IO("read "+path, err)
	}

	settings := map[string]any{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &settings); err != nil {
			return errs.Module("parse "+path, err)
		}
	}
	settings[hyprpanelModeKey] = s.Mode().String()

	out, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return errs.Module("encode "+path, err)
	}
	if err := writeFileAtomic(path, append(out, '\n')); err != nil {
		return err
	}
	log.Info("updated config", "path", path, "mode", s.Mode().String())

	if m.running(ctx) {
		m.restart(ctx, cfg)
	}
	return nil
}

func (m *HyprPanel) running(ctx context.Context) bool {
	_, err := runner.Run(ctx, "pgrep", []string{"-x", m.BinaryName()}, runner.Options{})
	return err == nil
}

// restart is best-effort: failures are logged only
func (m *HyprPanel) restart(ctx context.Context, cfg *config.Config) {
	log := logging.Module(m.Name())
	runner.BestEffort(ctx, "pkill", "-x", m.BinaryName())

	select {
	case <-ctx.Done():
		return
	case <-time.After(m.restartDelay):
	}

	if command := cfg.ModuleCommand(m.Name()); command != "" {
		if _, err := runner.Shell(ctx, command, runner.Options{}); err != nil {
			log.Warn("restart command failed", "command", command, "error", err)
		}
		return
	}

	// detached: the panel outlives lmtt
	cmd := exec.Command(m.BinaryName())
	if err := cmd.Start(); err != nil {
		log.Warn("failed to restart", "error", err)
		return
	}
	_ = cmd.Process.Release()
	log.Info("restarted")
}
