package modules

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/BurntSushi/toml"
	"sigs.k8s.io/yaml"

	"github.com/renato0307/lmtt/internal/config"
	"github.com/renato0307/lmtt/internal/errs"
	"github.com/renato0307/lmtt/internal/logging"
	"github.com/renato0307/lmtt/internal/runner"
	"github.com/renato0307/lmtt/internal/scheme"
)

// defaultDefinitionTimeout applies to reload commands and scripts, in ms
const defaultDefinitionTimeout = 10000

// Definition is a user-declared module read from a .toml or .yaml file.
// Exactly one strategy is set: Output+Template, or Script.
type Definition struct {
	Name        string        `json:"name" toml:"name"`
	Description string        `json:"description,omitempty" toml:"description"`
	Binary      string        `json:"binary" toml:"binary"`
	Priority    *int          `json:"priority,omitempty" toml:"priority"`
	Output      *OutputSpec   `json:"output,omitempty" toml:"output"`
	Template    *TemplateSpec `json:"template,omitempty" toml:"template"`
	Reload      *ReloadSpec   `json:"reload,omitempty" toml:"reload"`
	Setup       *SetupSpec    `json:"setup,omitempty" toml:"setup"`
	Script      *ScriptSpec   `json:"script,omitempty" toml:"script"`
}

type OutputSpec struct {
	Path string `json:"path" toml:"path"`
}

type TemplateSpec struct {
	Content string `json:"content" toml:"content"`
}

type ReloadSpec struct {
	Command string `json:"command" toml:"command"`
	Timeout int    `json:"timeout,omitempty" toml:"timeout"`
}

type SetupSpec struct {
	ConfigFile  string `json:"config_file" toml:"config_file"`
	IncludeLine string `json:"include_line" toml:"include_line"`
	Description string `json:"description,omitempty" toml:"description"`
}

type ScriptSpec struct {
	Path      string `json:"path" toml:"path"`
	Timeout   int    `json:"timeout,omitempty" toml:"timeout"`
	PassAsEnv bool   `json:"pass_as_env,omitempty" toml:"pass_as_env"`
}

// ParseDefinition decodes a definition; ext selects the format
func ParseDefinition(data []byte, ext string) (Definition, error) {
	var def Definition
	switch strings.ToLower(ext) {
	case ".toml":
		meta, err := toml.Decode(string(data), &def)
		if err != nil {
			return def, err
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			logging.Debug("unknown keys in module definition", "name", def.Name, "keys", fmt.Sprint(undecoded))
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &def); err != nil {
			return def, err
		}
	default:
		return def, fmt.Errorf("unsupported definition format %q", ext)
	}
	return def, def.Validate()
}

// Validate checks required fields and that exactly one strategy is set
func (d Definition) Validate() error {
	switch {
	case d.Name == "":
		return errors.New("name is required")
	case d.Binary == "":
		return errors.New("binary is required")
	}

	templated := d.Output != nil || d.Template != nil
	switch {
	case templated && d.Script != nil:
		return errors.New("output/template and script are mutually exclusive")
	case d.Script != nil:
		if d.Script.Path == "" {
			return errors.New("script.path is required")
		}
	case templated:
		if d.Output == nil || d.Output.Path == "" {
			return errors.New("output.path is required")
		}
		if d.Template == nil || d.Template.Content == "" {
			return errors.New("template.content is required")
		}
	default:
		return errors.New("either output+template or script is required")
	}

	if d.Setup != nil && (d.Setup.ConfigFile == "" || d.Setup.IncludeLine == "") {
		return errors.New("setup needs config_file and include_line")
	}
	return nil
}

// Custom is a module built from a Definition
type Custom struct {
	Base
	def  Definition
	tmpl *template.Template
}

// NewCustom builds a module from def, compiling its template
func NewCustom(def Definition) (*Custom, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	priority := DefaultPriority
	if def.Priority != nil {
		priority = *def.Priority
	}

	m := &Custom{Base: newBase(def.Name, def.Binary, priority), def: def}
	if def.Template != nil {
		tmpl, err := template.New(def.Name).
			Funcs(templateFuncs).
			Option("missingkey=zero").
			Parse(def.Template.Content)
		if err != nil {
			return nil, fmt.Errorf("template: %w", err)
		}
		m.tmpl = tmpl
	}
	return m, nil
}

var templateFuncs = template.FuncMap{
	"rgb":   scheme.RGBString,
	"strip": func(hex string) string { return strings.TrimPrefix(hex, "#") },
}

func (m *Custom) Description() string {
	if m.def.Description != "" {
		return m.def.Description
	}
	return "user module"
}

// Timeout bounds script modules by their declared timeout
func (m *Custom) Timeout() time.Duration {
	if m.def.Script != nil {
		return millis(m.def.Script.Timeout)
	}
	return 0
}

func (m *Custom) Apply(ctx context.Context, s *scheme.ColorScheme, cfg *config.Config) error {
	if m.def.Script != nil {
		return m.runScript(ctx, s)
	}
	return m.render(ctx, s)
}

func (m *Custom) render(ctx context.Context, s *scheme.ColorScheme) error {
	log := logging.Module(m.Name())

	data := s.Colors()
	data["mode"] = s.Mode().String()

	var buf bytes.Buffer
	if err := m.tmpl.Execute(&buf, data); err != nil {
		return errs.Module("render template", err)
	}

	path := config.ExpandPath(m.def.Output.Path)
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return err
	}
	log.Info("updated colors", "path", path)

	if r := m.def.Reload; r != nil && r.Command != "" {
		// reload is best-effort; the file is already written
		if _, err := runner.Shell(ctx, r.Command, runner.Options{Timeout: millis(r.Timeout)}); err != nil {
			log.Warn("reload command failed", "command", r.Command, "error", err)
		}
	}
	return nil
}

func (m *Custom) runScript(ctx context.Context, s *scheme.ColorScheme) error {
	path := config.ExpandPath(m.def.Script.Path)
	if _, err := os.Stat(path); err != nil {
		return errs.Module("script "+m.Name(), fmt.Errorf("script not found: %s", path))
	}

	mode := s.Mode().String()
	args := []string{mode}
	opts := runner.Options{Timeout: millis(m.def.Script.Timeout)}

	if m.def.Script.PassAsEnv {
		opts.Env = append(opts.Env, "LMTT_MODE="+mode)
		for role, value := range s.Colors() {
			opts.Env = append(opts.Env, fmt.Sprintf("LMTT_%s=%s", strings.ToUpper(role), value))
		}
	} else {
		file, err := writePaletteFile(m.Name(), s)
		if err != nil {
			return err
		}
		defer os.Remove(file)
		args = append(args, file)
	}

	if _, err := runner.Run(ctx, path, args, opts); err != nil {
		return err
	}
	logging.Module(m.Name()).Info("script executed", "path", path)
	return nil
}

func writePaletteFile(name string, s *scheme.ColorScheme) (string, error) {
	data, err := json.Marshal(s.Colors())
	if err != nil {
		return "", errs.Module("encode palette", err)
	}
	f, err := os.CreateTemp("", "lmtt-"+name+"-*.json")
	if err != nil {
		return "", errs.IO("create palette file", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", errs.IO("write palette file", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", errs.IO("write palette file", err)
	}
	return f.Name(), nil
}

func (m *Custom) ConfigFiles() ([]ConfigFileInfo, error) {
	setup := m.def.Setup
	if setup == nil {
		return nil, nil
	}
	description := setup.Description
	if description == "" {
		description = "Include lmtt colors for " + m.Name()
	}

	var infos []ConfigFileInfo
	for _, path := range existingFiles(config.ExpandPath(setup.ConfigFile)) {
		infos = append(infos, NewConfigFileInfo(path, setup.IncludeLine, description))
	}
	return infos, nil
}

func millis(ms int) time.Duration {
	if ms <= 0 {
		ms = defaultDefinitionTimeout
	}
	return time.Duration(ms) * time.Millisecond
}

// LoadUserModules reads every definition in dir. Files that fail to parse
// or validate, and names that clash with existing modules, are skipped with
// a warning.
func LoadUserModules(dir string, existing []Module) []Module {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.Warn("cannot read modules directory", "dir", dir, "error", err)
		}
		return nil
	}

	taken := map[string]bool{}
	for _, m := range existing {
		taken[m.Name()] = true
	}

	var loaded []Module
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".toml" && ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		m, err := loadDefinition(path, ext)
		if err != nil {
			logging.Warn("skipping module definition", "path", path, "error", err)
			continue
		}
		if taken[m.Name()] {
			logging.Warn("skipping duplicate module", "path", path, "module", m.Name())
			continue
		}
		taken[m.Name()] = true
		loaded = append(loaded, m)
		logging.Debug("loaded user module", "module", m.Name(), "path", path)
	}
	return loaded
}

func loadDefinition(path, ext string) (*Custom, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def, err := ParseDefinition(data, ext)
	if err != nil {
		return nil, err
	}
	return NewCustom(def)
}
