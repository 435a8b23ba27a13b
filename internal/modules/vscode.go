package modules

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/renato0307/lmtt/internal/config"
	"github.com/renato0307/lmtt/internal/errs"
	"github.com/renato0307/lmtt/internal/logging"
	"github.com/renato0307/lmtt/internal/scheme"
)

const (
	vscodeThemeKey     = "workbench.colorTheme"
	vscodeThemePointer = "/" + vscodeThemeKey
)

// editions sharing the VS Code settings layout, keyed by config directory
var vscodeEditions = []struct {
	dir    string
	binary string
}{
	{dir: "Code", binary: "code"},
	{dir: "Cursor", binary: "cursor"},
	{dir: "Code - OSS", binary: "code-oss"},
	{dir: "VSCodium", binary: "codium"},
}

// VSCode sets workbench.colorTheme in every installed edition's settings
type VSCode struct {
	Base
}

func NewVSCode() *VSCode {
	m := &VSCode{Base: newBase("vscode", "code", DefaultPriority)}
	m.installed = func() bool {
		for _, e := range vscodeEditions {
			if _, err := exec.LookPath(e.binary); err == nil {
				return true
			}
		}
		return false
	}
	return m
}

func (m *VSCode) Description() string { return "VS Code, Cursor, Code - OSS and VSCodium color theme" }

func (m *VSCode) Apply(ctx context.Context, s *scheme.ColorScheme, cfg *config.Config) error {
	log := logging.Module(m.Name())

	theme := cfg.Profile(s.Mode()).VSCodeTheme
	if theme == "" {
		theme = modeWord(s, "Default Light+", "Default Dark+")
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return errs.Config("locate config directory", err)
	}
	var paths []string
	for _, e := range vscodeEditions {
		paths = append(paths, filepath.Join(dir, e.dir, "User", "settings.json"))
	}

	var failures []error
	updated := 0
	for _, path := range existingFiles(paths...) {
		if err := setVSCodeTheme(path, theme); err != nil {
			failures = append(failures, err)
			continue
		}
		updated++
		log.Info("updated settings", "path", path, "theme", theme)
	}
	if updated == 0 && len(failures) == 0 {
		log.Debug("no settings files found")
	}
	return errors.Join(failures...)
}

// setVSCodeTheme sets the theme key in settings.json. The file is JSONC, so
// it is patched in place and comments and trailing commas survive.
func setVSCodeTheme(path, theme string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errs.IO("read "+path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("{}")
	}

	settings, err := hujson.Parse(data)
	if err != nil {
		return errs.Module("parse "+path, err)
	}

	op := "add"
	if settings.Find(vscodeThemePointer) != nil {
		op = "replace"
	}
	patch, err := json.Marshal([]map[string]string{
		{"op": op, "path": vscodeThemePointer, "value": theme},
	})
	if err != nil {
		return errs.Module("encode patch", err)
	}
	if err := settings.Patch(patch); err != nil {
		return errs.Module("update "+path, err)
	}
	settings.Format()

	out := settings.Pack()
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	if bytes.Equal(out, data) {
		return nil
	}
	return writeFileAtomic(path, out)
}
