package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/lmtt/internal/scheme"
)

func TestMode(t *testing.T) {
	tests := []struct {
		name     string
		content  *string
		expected scheme.Mode
	}{
		{name: "missing file reads as dark", content: nil, expected: scheme.Dark},
		{name: "light", content: strPtr("light"), expected: scheme.Light},
		{name: "dark with newline", content: strPtr("dark\n"), expected: scheme.Dark},
		{name: "corrupt reads as dark", content: strPtr("sepia"), expected: scheme.Dark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.content != nil {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "theme_state"), []byte(*tt.content), 0o644))
			}
			assert.Equal(t, tt.expected, New(dir).Mode())
		})
	}
}

func TestSetMode(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "nested", "cache"))

	require.NoError(t, store.SetMode(scheme.Light))
	assert.Equal(t, scheme.Light, store.Mode())

	data, err := os.ReadFile(filepath.Join(store.Dir, "theme_state"))
	require.NoError(t, err)
	assert.Equal(t, "light", string(data))

	require.NoError(t, store.SetMode(scheme.Dark))
	assert.Equal(t, scheme.Dark, store.Mode())
}

func TestPaletteKey(t *testing.T) {
	dir := t.TempDir()
	wall := filepath.Join(dir, "wall.png")
	require.NoError(t, os.WriteFile(wall, []byte("pixels"), 0o644))

	k1, err := PaletteKey(wall, "scheme-expressive", scheme.Dark)
	require.NoError(t, err)
	k2, err := PaletteKey(wall, "scheme-expressive", scheme.Light)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
	assert.Contains(t, k1, "-scheme-expressive-dark")

	require.NoError(t, os.WriteFile(wall, []byte("other pixels"), 0o644))
	k3, err := PaletteKey(wall, "scheme-expressive", scheme.Dark)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3, "key must change with wallpaper content")

	_, err = PaletteKey(filepath.Join(dir, "missing.png"), "x", scheme.Dark)
	assert.Error(t, err)
}

func TestPaletteCache(t *testing.T) {
	store := New(t.TempDir())

	_, ok := store.Palette("nope")
	assert.False(t, ok)

	colors := map[string]string{"primary": "#aabbcc", "surface": "#101010"}
	require.NoError(t, store.SavePalette("k", colors))

	got, ok := store.Palette("k")
	require.True(t, ok)
	assert.Equal(t, colors, got)

	require.NoError(t, os.WriteFile(filepath.Join(store.Dir, "palettes", "bad.json"), []byte("{"), 0o644))
	_, ok = store.Palette("bad")
	assert.False(t, ok)
}

func strPtr(s string) *string { return &s }
