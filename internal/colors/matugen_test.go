package colors

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/lmtt/internal/errs"
	"github.com/renato0307/lmtt/internal/scheme"
)

const matugenJSON = `{
  "colors": {
    "primary": {"dark": "#9fd491", "light": "#3a6a33"},
    "surface": {"dark": "#12131a", "light": "#fbf8ff"},
    "only_dark": {"dark": "#000000"}
  },
  "image": "/tmp/wall.png"
}`

func TestParseMatugen(t *testing.T) {
	dark, err := ParseMatugen([]byte(matugenJSON), scheme.Dark)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"primary":   "#9fd491",
		"surface":   "#12131a",
		"only_dark": "#000000",
	}, dark)

	light, err := ParseMatugen([]byte(matugenJSON), scheme.Light)
	require.NoError(t, err)
	assert.Equal(t, "#3a6a33", light["primary"])
	assert.NotContains(t, light, "only_dark")
}

func TestParseMatugen_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "matugen: error"},
		{name: "no colors", input: `{"colors": {}}`},
		{name: "no light variants", input: `{"colors": {"primary": {"dark": "#111111"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMatugen([]byte(tt.input), scheme.Light)
			require.Error(t, err)
			assert.True(t, errs.IsKind(err, errs.KindGeneration))
		})
	}
}

// fakeMatugen installs a shell script named matugen that prints body
func fakeMatugen(t *testing.T, body string) *Matugen {
	t.Helper()
	dir := t.TempDir()
	script := filepath.Join(dir, "matugen")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return &Matugen{Binary: script, Timeout: 2 * time.Second}
}

func TestMatugen_Generate(t *testing.T) {
	m := fakeMatugen(t, "cat <<'EOF'\n"+matugenJSON+"\nEOF")
	assert.True(t, m.Available())

	colors, err := m.Generate(context.Background(), "/tmp/wall.png", scheme.Dark, "scheme-tonal-spot")
	require.NoError(t, err)
	assert.Equal(t, "#9fd491", colors["primary"])
}

func TestMatugen_GenerateFailure(t *testing.T) {
	m := fakeMatugen(t, "echo 'unsupported image' >&2; exit 2")

	_, err := m.Generate(context.Background(), "/tmp/wall.png", scheme.Dark, "scheme-expressive")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindGeneration))
	assert.Contains(t, err.Error(), "unsupported image")
}

func TestMatugen_Unavailable(t *testing.T) {
	m := &Matugen{Binary: "lmtt-no-such-matugen"}
	assert.False(t, m.Available())
}
