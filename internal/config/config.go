// Package config loads and saves the lmtt configuration file.
//
// The file lives at $XDG_CONFIG_HOME/lmtt/config.toml. Every field has a
// default, so a missing file or a partial file is valid; values present in
// the file are decoded on top of Default(). Path settings support "~",
// "$VAR" and "${VAR}" which are expanded after an optional lmtt.env file has
// been loaded into the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/renato0307/lmtt/internal/errs"
	"github.com/renato0307/lmtt/internal/logging"
	"github.com/renato0307/lmtt/internal/scheme"
)

const (
	appDir       = "lmtt"
	fileName     = "config.toml"
	envFileName  = "lmtt.env"
	modulesDir   = "modules"
	fileHeader   = "# lmtt configuration\n# This file is generated by `lmtt init` but safe to edit.\n\n"
	defaultLevel = "info"
)

// Config is the full lmtt configuration
type Config struct {
	General       General                  `toml:"general"`
	Notifications Notifications            `toml:"notifications"`
	Performance   Performance              `toml:"performance"`
	Modules       map[string]ModuleSetting `toml:"modules,omitempty"`
	Colors        map[string]string        `toml:"colors,omitempty"`
	Cache         Cache                    `toml:"cache"`
	Logging       Logging                  `toml:"logging"`
	UI            UI                       `toml:"ui"`
	Profiles      Profiles                 `toml:"theme_profiles"`
}

// General holds colour source settings
type General struct {
	Wallpaper   string      `toml:"wallpaper"`
	DefaultMode scheme.Mode `toml:"default_mode"`
	SchemeType  string      `toml:"scheme_type"`
	UseMatugen  bool        `toml:"use_matugen"`
	LightColors string      `toml:"light_colors"`
	DarkColors  string      `toml:"dark_colors"`
}

// Notifications controls the desktop notification sent after a switch
type Notifications struct {
	Enabled bool `toml:"enabled"`
	Timeout int  `toml:"timeout"` // milliseconds
}

// Performance bounds module execution
type Performance struct {
	Timeout             int  `toml:"timeout"`               // seconds per module
	SlowModuleThreshold int  `toml:"slow_module_threshold"` // milliseconds
	PriorityTiers       bool `toml:"priority_tiers"`
}

// ModuleSetting is the per-module section [modules.<name>]
type ModuleSetting struct {
	Enabled *bool  `toml:"enabled,omitempty"`
	Restart bool   `toml:"restart,omitempty"`
	Command string `toml:"command,omitempty"`
}

// Cache configures persisted state
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Logging configures the log file
type Logging struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"` // text or json
	LogFile    string `toml:"log_file"`
	MaxLogSize int    `toml:"max_log_size"` // megabytes
}

// UI selects the terminal output theme (charm, dracula, nord)
type UI struct {
	Theme string `toml:"theme"`
}

// Profiles holds per-mode application theme names
type Profiles struct {
	Light Profile `toml:"light"`
	Dark  Profile `toml:"dark"`
}

// Profile names the themes applied alongside the colour scheme
type Profile struct {
	GTKTheme        string `toml:"gtk_theme,omitempty"`
	IconTheme       string `toml:"icon_theme,omitempty"`
	CursorTheme     string `toml:"cursor_theme,omitempty"`
	CursorSize      int    `toml:"cursor_size,omitempty"`
	Font            string `toml:"font,omitempty"`
	VSCodeTheme     string `toml:"vscode_theme,omitempty"`
	NvimColorscheme string `toml:"nvim_colorscheme,omitempty"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		General: General{
			Wallpaper:   "~/Pictures/wallpaper.png",
			DefaultMode: scheme.Dark,
			SchemeType:  "scheme-expressive",
			UseMatugen:  true,
			LightColors: "~/.config/lmtt/colors-light.json",
			DarkColors:  "~/.config/lmtt/colors-dark.json",
		},
		Notifications: Notifications{Enabled: true, Timeout: 5000},
		Performance:   Performance{Timeout: 10, SlowModuleThreshold: 250},
		Cache:         Cache{Enabled: true, Dir: "~/.cache/lmtt"},
		Logging: Logging{
			Level:      defaultLevel,
			Format:     "text",
			LogFile:    "~/.cache/lmtt/lmtt.log",
			MaxLogSize: 10,
		},
		UI: UI{Theme: "charm"},
		Profiles: Profiles{
			Light: Profile{CursorSize: 24},
			Dark:  Profile{CursorSize: 24},
		},
	}
}

// Dir returns $XDG_CONFIG_HOME/lmtt
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errs.Config("locate config directory", err)
	}
	return filepath.Join(base, appDir), nil
}

// DefaultPath returns the default config file path
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// ModulesDir returns the directory holding user module definitions
func ModulesDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, modulesDir), nil
}

// Load reads the config at path (DefaultPath when empty). A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	LoadEnvFile(filepath.Join(filepath.Dir(path), envFileName))

	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logging.Debug("config file not found, using defaults", "path", path)
	case err != nil:
		return nil, errs.Config("parse "+path, err)
	default:
		for _, key := range meta.Undecoded() {
			logging.Warn("unknown config key ignored", "key", key.String(), "path", path)
		}
	}

	cfg.expandPaths()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFile loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is ignored.
func LoadEnvFile(path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}
	if err := godotenv.Load(path); err != nil {
		logging.Warn("failed to load env file", "path", path, "error", err)
	}
}

func (c *Config) expandPaths() {
	c.General.Wallpaper = ExpandPath(c.General.Wallpaper)
	c.General.LightColors = ExpandPath(c.General.LightColors)
	c.General.DarkColors = ExpandPath(c.General.DarkColors)
	c.Cache.Dir = ExpandPath(c.Cache.Dir)
	c.Logging.LogFile = ExpandPath(c.Logging.LogFile)
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if c.Performance.Timeout <= 0 {
		return errs.Newf(errs.KindConfig, "validate", "performance.timeout must be positive, got %d", c.Performance.Timeout)
	}
	if c.Performance.SlowModuleThreshold < 0 {
		return errs.Newf(errs.KindConfig, "validate", "performance.slow_module_threshold must not be negative")
	}
	for role, value := range c.Colors {
		if _, err := scheme.ParseHex(value); err != nil {
			return errs.Config("validate colors."+role, err)
		}
	}
	return nil
}

// Save writes the config to path via a temporary file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errs.IO("create config directory", err)
	}

	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return errs.Config("encode config", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return errs.IO("write "+tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errs.IO("rename "+tmp, err)
	}
	return nil
}

// IsModuleEnabled reports whether a module is enabled; modules are enabled
// unless explicitly disabled
func (c *Config) IsModuleEnabled(name string) bool {
	s, ok := c.Modules[name]
	if !ok || s.Enabled == nil {
		return true
	}
	return *s.Enabled
}

// ShouldRestart reports whether a module should restart its application
func (c *Config) ShouldRestart(name string) bool {
	return c.Modules[name].Restart
}

// ModuleCommand returns the command override for a module, if any
func (c *Config) ModuleCommand(name string) string {
	return c.Modules[name].Command
}

// SetModuleEnabled records an explicit enabled flag for a module
func (c *Config) SetModuleEnabled(name string, enabled bool) {
	if c.Modules == nil {
		c.Modules = map[string]ModuleSetting{}
	}
	s := c.Modules[name]
	s.Enabled = &enabled
	c.Modules[name] = s
}

// ModuleTimeout is the default upper bound for one module's apply
func (c *Config) ModuleTimeout() time.Duration {
	return time.Duration(c.Performance.Timeout) * time.Second
}

// SlowThreshold is the duration above which a module is reported as slow
func (c *Config) SlowThreshold() time.Duration {
	return time.Duration(c.Performance.SlowModuleThreshold) * time.Millisecond
}

// StaticColorsPath returns the static colour file configured for mode
func (c *Config) StaticColorsPath(mode scheme.Mode) string {
	if mode == scheme.Light {
		return c.General.LightColors
	}
	return c.General.DarkColors
}

// Profile returns the theme profile for mode
func (c *Config) Profile(mode scheme.Mode) Profile {
	if mode == scheme.Light {
		return c.Profiles.Light
	}
	return c.Profiles.Dark
}

// ExpandPath expands a leading "~/" and $VAR / ${VAR} references.
// Unknown variables are left in place.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}
	return os.Expand(path, func(name string) string {
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return fmt.Sprintf("${%s}", name)
	})
}
