// Package detect discovers the themes, fonts and editor colour schemes
// installed on the host, for filling in theme profiles.
package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/renato0307/lmtt/internal/errs"
	"github.com/renato0307/lmtt/internal/logging"
	"github.com/renato0307/lmtt/internal/runner"
)

// Kind names a category of detectable themes
type Kind string

const (
	KindGTK     Kind = "gtk"
	KindIcons   Kind = "icons"
	KindCursors Kind = "cursors"
	KindFonts   Kind = "fonts"
	KindVSCode  Kind = "vscode"
	KindNvim    Kind = "nvim"
)

// Kinds returns every supported kind
func Kinds() []Kind {
	return []Kind{KindGTK, KindIcons, KindCursors, KindFonts, KindVSCode, KindNvim}
}

var (
	builtinVSCodeThemes = []string{
		"Default Dark+",
		"Default Light+",
		"Default Dark Modern",
		"Default Light Modern",
		"Default High Contrast",
	}
	builtinNvimColorschemes = []string{"default", "habamax"}
)

// Detector scans the user's home and the system data directories
type Detector struct {
	Home     string
	DataDirs []string
}

// New returns a detector for the current user
func New() *Detector {
	home, _ := os.UserHomeDir()
	return &Detector{
		Home:     home,
		DataDirs: []string{"/usr/share", "/usr/local/share"},
	}
}

// Detect lists the installed items of kind, sorted and deduplicated
func (d *Detector) Detect(ctx context.Context, kind Kind) ([]string, error) {
	timing := logging.Start("detect " + string(kind))
	defer logging.End(timing)

	switch kind {
	case KindGTK:
		return d.GTKThemes(), nil
	case KindIcons:
		return d.IconThemes(), nil
	case KindCursors:
		return d.CursorThemes(), nil
	case KindFonts:
		return Fonts(ctx)
	case KindVSCode:
		return d.VSCodeThemes(), nil
	case KindNvim:
		return d.NvimColorschemes(), nil
	default:
		return nil, errs.Newf(errs.KindNotFound, "detect", "unknown theme kind %q", kind)
	}
}

// GTKThemes lists theme directories holding a gtk-3.0 or gtk-4.0 folder
func (d *Detector) GTKThemes() []string {
	dirs := append(d.homeDirs(".themes", ".local/share/themes"), d.dataDirs("themes")...)
	return scanDirs(dirs, func(theme string) bool {
		return isDir(filepath.Join(theme, "gtk-3.0")) || isDir(filepath.Join(theme, "gtk-4.0"))
	})
}

// IconThemes lists icon theme directories with an index.theme
func (d *Detector) IconThemes() []string {
	return scanDirs(d.iconDirs(), func(theme string) bool {
		_, err := os.Stat(filepath.Join(theme, "index.theme"))
		return err == nil
	})
}

// CursorThemes lists icon theme directories with a cursors folder
func (d *Detector) CursorThemes() []string {
	return scanDirs(d.iconDirs(), func(theme string) bool {
		return isDir(filepath.Join(theme, "cursors"))
	})
}

// extensionManifest is the part of a VS Code extension package.json we read
type extensionManifest struct {
	Contributes struct {
		Themes []struct {
			Label string `json:"label"`
			ID    string `json:"id"`
		} `json:"themes"`
	} `json:"contributes"`
}

// VSCodeThemes lists the built-in themes plus those contributed by
// installed extensions of VS Code and its forks
func (d *Detector) VSCodeThemes() []string {
	themes := slices.Clone(builtinVSCodeThemes)
	for _, dir := range d.homeDirs(".vscode/extensions", ".vscode-oss/extensions", ".cursor/extensions") {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, e.Name(), "package.json"))
			if err != nil {
				continue
			}
			var manifest extensionManifest
			if err := json.Unmarshal(data, &manifest); err != nil {
				logging.Debug("skipping unreadable extension manifest", "extension", e.Name(), "error", err)
				continue
			}
			for _, t := range manifest.Contributes.Themes {
				switch {
				case t.ID != "":
					themes = append(themes, t.ID)
				case t.Label != "":
					themes = append(themes, t.Label)
				}
			}
		}
	}
	return sortUnique(themes)
}

// NvimColorschemes lists the built-in schemes plus colors/*.vim|lua files in
// the user's config, site directory and lazy.nvim plugins
func (d *Detector) NvimColorschemes() []string {
	schemes := slices.Clone(builtinNvimColorschemes)

	dirs := d.homeDirs(".config/nvim/colors", ".local/share/nvim/site/colors")
	if plugins, err := filepath.Glob(filepath.Join(d.Home, ".local/share/nvim/lazy/*/colors")); err == nil {
		dirs = append(dirs, plugins...)
	}

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if ext := filepath.Ext(name); ext == ".vim" || ext == ".lua" {
				schemes = append(schemes, strings.TrimSuffix(name, ext))
			}
		}
	}
	return sortUnique(schemes)
}

// Fonts lists font families reported by fc-list
func Fonts(ctx context.Context) ([]string, error) {
	out, err := runner.Run(ctx, "fc-list", []string{":", "family"}, runner.Options{})
	if err != nil {
		return nil, fmt.Errorf("list fonts: %w", err)
	}
	return ParseFamilies(out), nil
}

// ParseFamilies splits fc-list output, where a line may carry several
// comma-separated family names
func ParseFamilies(out string) []string {
	var families []string
	for _, line := range strings.Split(out, "\n") {
		for _, family := range strings.Split(line, ",") {
			if family = strings.TrimSpace(family); family != "" {
				families = append(families, family)
			}
		}
	}
	return sortUnique(families)
}

// Filter returns the items fuzzy-matching query, best matches first. An
// empty query returns items unchanged.
func Filter(items []string, query string) []string {
	if query == "" {
		return items
	}
	matches := fuzzy.Find(query, items)
	filtered := make([]string, len(matches))
	for i, m := range matches {
		filtered[i] = m.Str
	}
	return filtered
}

func (d *Detector) homeDirs(rel ...string) []string {
	if d.Home == "" {
		return nil
	}
	dirs := make([]string, len(rel))
	for i, r := range rel {
		dirs[i] = filepath.Join(d.Home, r)
	}
	return dirs
}

func (d *Detector) dataDirs(sub string) []string {
	dirs := make([]string, len(d.DataDirs))
	for i, base := range d.DataDirs {
		dirs[i] = filepath.Join(base, sub)
	}
	return dirs
}

func (d *Detector) iconDirs() []string {
	return append(d.homeDirs(".icons", ".local/share/icons"), d.dataDirs("icons")...)
}

// scanDirs collects the names of subdirectories accepted by keep
func scanDirs(dirs []string, keep func(path string) bool) []string {
	var names []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			path := filepath.Join(dir, e.Name())
			if isDir(path) && keep(path) {
				names = append(names, e.Name())
			}
		}
	}
	return sortUnique(names)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func sortUnique(items []string) []string {
	slices.Sort(items)
	return slices.Compact(items)
}
