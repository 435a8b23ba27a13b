// Package modules implements the per-application theme adapters, the
// registry that applies a colour scheme to all of them concurrently, and the
// marker-based protocol used to include lmtt output in third-party config
// files.
package modules

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/renato0307/lmtt/internal/config"
	"github.com/renato0307/lmtt/internal/scheme"
)

// DefaultPriority is the priority of application-level modules. Platform
// modules use values below 50 so they are scheduled first.
const DefaultPriority = 100

// Module themes one target application
type Module interface {
	// Name is the stable identifier used for config keys and logs
	Name() string
	// BinaryName is the executable whose presence implies installation
	BinaryName() string
	IsInstalled() bool
	Priority() int
	// Apply pushes the scheme to the application. It must be idempotent and
	// must bound any subprocess it starts by ctx.
	Apply(ctx context.Context, s *scheme.ColorScheme, cfg *config.Config) error
	// ConfigFiles lists third-party files that should include lmtt output
	ConfigFiles() ([]ConfigFileInfo, error)
	InjectConfig(info ConfigFileInfo) error
	RemoveConfig(info ConfigFileInfo) error
	// IsEnabled is true when the module is not disabled in cfg and is
	// installed. Evaluated on every call.
	IsEnabled(cfg *config.Config) bool
}

// Timeouter is implemented by modules that bound their own Apply
type Timeouter interface {
	Timeout() time.Duration
}

// Describer is implemented by modules with a human-readable description
type Describer interface {
	Description() string
}

// ConfigFileInfo describes one include line a module wants in a file
type ConfigFileInfo struct {
	Path            string
	IncludeLine     string
	Description     string
	AlreadyIncluded bool
}

// NewConfigFileInfo builds the info for path, reading the file to compute
// AlreadyIncluded
func NewConfigFileInfo(path, includeLine, description string) ConfigFileInfo {
	return ConfigFileInfo{
		Path:            path,
		IncludeLine:     includeLine,
		Description:     description,
		AlreadyIncluded: IsIncluded(path, includeLine),
	}
}

// Refresh recomputes AlreadyIncluded from the current file content
func (i ConfigFileInfo) Refresh() ConfigFileInfo {
	i.AlreadyIncluded = IsIncluded(i.Path, i.IncludeLine)
	return i
}

// Base supplies the default parts of the Module contract. Adapters embed it
// and implement Apply, plus ConfigFiles when they need injection.
type Base struct {
	name     string
	binary   string
	priority int
	// installed overrides the PATH lookup when set
	installed func() bool
}

func newBase(name, binary string, priority int) Base {
	return Base{name: name, binary: binary, priority: priority}
}

func (b Base) Name() string       { return b.name }
func (b Base) BinaryName() string { return b.binary }
func (b Base) Priority() int      { return b.priority }

func (b Base) IsInstalled() bool {
	if b.installed != nil {
		return b.installed()
	}
	if b.binary == "" {
		return false
	}
	_, err := exec.LookPath(b.binary)
	return err == nil
}

func (b Base) IsEnabled(cfg *config.Config) bool {
	return cfg.IsModuleEnabled(b.name) && b.IsInstalled()
}

func (b Base) ConfigFiles() ([]ConfigFileInfo, error) {
	return nil, nil
}

func (b Base) InjectConfig(info ConfigFileInfo) error {
	return InjectInclude(info.Path, info.IncludeLine)
}

func (b Base) RemoveConfig(info ConfigFileInfo) error {
	return RemoveInclude(info.Path, info.IncludeLine)
}

// existingFiles filters paths to regular files that exist
func existingFiles(paths ...string) []string {
	var found []string
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			found = append(found, p)
		}
	}
	return found
}

func modeWord(s *scheme.ColorScheme, light, dark string) string {
	if s.Mode() == scheme.Light {
		return light
	}
	return dark
}

func quoteLua(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
