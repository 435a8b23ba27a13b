package detect

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/lmtt/internal/errs"
)

func mkdirs(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, os.MkdirAll(filepath.Join(root, p), 0o755))
	}
}

func touch(t *testing.T, root, path, content string) {
	t.Helper()
	full := filepath.Join(root, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func newDetector(t *testing.T) (*Detector, string, string) {
	home := t.TempDir()
	data := t.TempDir()
	return &Detector{Home: home, DataDirs: []string{data}}, home, data
}

func TestGTKThemes(t *testing.T) {
	d, home, data := newDetector(t)
	mkdirs(t, home, ".themes/Catppuccin/gtk-3.0", ".local/share/themes/Gruvbox/gtk-4.0", ".themes/NoGtk/metacity-1")
	mkdirs(t, data, "themes/Adwaita-dark/gtk-3.0", "themes/Catppuccin/gtk-4.0")

	assert.Equal(t, []string{"Adwaita-dark", "Catppuccin", "Gruvbox"}, d.GTKThemes())
}

func TestIconAndCursorThemes(t *testing.T) {
	d, home, data := newDetector(t)
	touch(t, home, ".icons/Papirus/index.theme", "[Icon Theme]\n")
	mkdirs(t, home, ".icons/Bibata/cursors")
	touch(t, data, "icons/hicolor/index.theme", "[Icon Theme]\n")
	mkdirs(t, data, "icons/Adwaita/cursors")
	touch(t, data, "icons/Adwaita/index.theme", "[Icon Theme]\n")

	assert.Equal(t, []string{"Adwaita", "Papirus", "hicolor"}, d.IconThemes())
	assert.Equal(t, []string{"Adwaita", "Bibata"}, d.CursorThemes())
}

func TestVSCodeThemes(t *testing.T) {
	d, home, _ := newDetector(t)
	touch(t, home, ".vscode/extensions/catppuccin.theme-1.0/package.json",
		`{"contributes":{"themes":[{"label":"Catppuccin Mocha","id":"Catppuccin Mocha"},{"label":"Catppuccin Latte"}]}}`)
	touch(t, home, ".vscode/extensions/broken/package.json", `{not json`)
	touch(t, home, ".cursor/extensions/nord/package.json", `{"contributes":{"themes":[{"label":"Nord"}]}}`)

	themes := d.VSCodeThemes()
	assert.Subset(t, themes, []string{"Catppuccin Mocha", "Catppuccin Latte", "Nord", "Default Dark Modern"})
	assert.IsIncreasing(t, themes)
}

func TestNvimColorschemes(t *testing.T) {
	d, home, _ := newDetector(t)
	touch(t, home, ".config/nvim/colors/mine.lua", "")
	touch(t, home, ".config/nvim/colors/README.md", "")
	touch(t, home, ".local/share/nvim/lazy/tokyonight.nvim/colors/tokyonight-night.lua", "")
	touch(t, home, ".local/share/nvim/lazy/gruvbox/colors/gruvbox.vim", "")

	assert.Equal(t, []string{"default", "gruvbox", "habamax", "mine", "tokyonight-night"}, d.NvimColorschemes())
}

func TestParseFamilies(t *testing.T) {
	out := "DejaVu Sans,DejaVu Sans Condensed\nJetBrains Mono\n\nDejaVu Sans\n  Noto Sans , Noto Sans UI \n"
	assert.Equal(t,
		[]string{"DejaVu Sans", "DejaVu Sans Condensed", "JetBrains Mono", "Noto Sans", "Noto Sans UI"},
		ParseFamilies(out))
}

func TestDetect_Fonts(t *testing.T) {
	dir := t.TempDir()
	script := "#!/bin/sh\nprintf 'Inter\\nFira Code,Fira Code Retina\\n'\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fc-list"), []byte(script), 0o755))
	t.Setenv("PATH", dir)

	d, _, _ := newDetector(t)
	fonts, err := d.Detect(context.Background(), KindFonts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fira Code", "Fira Code Retina", "Inter"}, fonts)
}

func TestDetect_FontsWithoutFcList(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := Fonts(context.Background())
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
}

func TestDetect_UnknownKind(t *testing.T) {
	d, _, _ := newDetector(t)
	_, err := d.Detect(context.Background(), Kind("wallpapers"))
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
}

func TestFilter(t *testing.T) {
	items := []string{"Adwaita", "Adwaita-dark", "Catppuccin-Mocha", "Gruvbox"}

	assert.Equal(t, items, Filter(items, ""))
	assert.Equal(t, []string{"Gruvbox"}, Filter(items, "grv"))
	assert.ElementsMatch(t, []string{"Adwaita", "Adwaita-dark"}, Filter(items, "adw"))
	assert.Empty(t, Filter(items, "zzz"))
}
