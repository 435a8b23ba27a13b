package modules

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/renato0307/lmtt/internal/config"
	"github.com/renato0307/lmtt/internal/logging"
	"github.com/renato0307/lmtt/internal/runner"
	"github.com/renato0307/lmtt/internal/scheme"
)

// Nvim calls the user-defined global Lua function set_nvim_theme in every
// running Neovim server
type Nvim struct {
	Base
	// socketDirs overrides the directories searched for server sockets
	socketDirs []string
}

func NewNvim() *Nvim {
	return &Nvim{Base: newBase("nvim", "nvim", DefaultPriority)}
}

func (m *Nvim) Description() string { return "Running Neovim instances via set_nvim_theme()" }

func (m *Nvim) Apply(ctx context.Context, s *scheme.ColorScheme, cfg *config.Config) error {
	log := logging.Module(m.Name())

	binary := cfg.ModuleCommand(m.Name())
	if binary == "" {
		binary = m.BinaryName()
	}

	expr := nvimThemeExpr(s.Mode(), cfg.Profile(s.Mode()).NvimColorscheme)
	updated := 0
	for _, socket := range m.sockets() {
		if _, err := runner.Run(ctx, binary, []string{"--server", socket, "--remote-expr", expr}, runner.Options{}); err != nil {
			// stale sockets from crashed instances are common
			log.Debug("instance not updated", "socket", socket, "error", err)
			continue
		}
		updated++
	}

	if updated > 0 {
		log.Info("updated instances", "count", updated)
	} else {
		log.Debug("no running instances found")
	}
	return nil
}

func nvimThemeExpr(mode scheme.Mode, colorscheme string) string {
	if colorscheme == "" {
		return fmt.Sprintf("v:lua.set_nvim_theme(%s)", quoteLua(mode.String()))
	}
	return fmt.Sprintf("v:lua.set_nvim_theme(%s, %s)", quoteLua(mode.String()), quoteLua(colorscheme))
}

// sockets lists server sockets: <dir>/nvim*/0 (older releases) and
// <dir>/nvim.<pid>.0 (current releases)
func (m *Nvim) sockets() []string {
	dirs := m.socketDirs
	if dirs == nil {
		if runtime := os.Getenv("XDG_RUNTIME_DIR"); runtime != "" {
			dirs = append(dirs, runtime)
		}
		dirs = append(dirs, os.TempDir())
	}

	seen := map[string]bool{}
	var sockets []string
	for _, dir := range dirs {
		for _, pattern := range []string{"nvim*/0", "nvim.*.0"} {
			matches, _ := filepath.Glob(filepath.Join(dir, pattern))
			for _, match := range matches {
				if !seen[match] {
					seen[match] = true
					sockets = append(sockets, match)
				}
			}
		}
	}
	return sockets
}
