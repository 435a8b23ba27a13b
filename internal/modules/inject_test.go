package modules

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/lmtt/internal/errs"
)

const includeLine = "@import url('../matugen/lmtt-colors.css');"

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "style.css")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestInjectInclude(t *testing.T) {
	path := writeFile(t, "window { color: red; }\n")

	require.NoError(t, InjectInclude(path, includeLine))

	expected := MarkerStart + "\n" + includeLine + "\n" + MarkerEnd + "\n\nwindow { color: red; }\n"
	assert.Equal(t, expected, readFile(t, path))
	assert.True(t, IsIncluded(path, includeLine))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "permissions preserved")
}

func TestInjectInclude_Idempotent(t *testing.T) {
	path := writeFile(t, "* { font-size: 12px; }\n")

	require.NoError(t, InjectInclude(path, includeLine))
	once := readFile(t, path)
	require.NoError(t, InjectInclude(path, includeLine))
	assert.Equal(t, once, readFile(t, path))
}

func TestInjectInclude_LinePresentWithoutMarkers(t *testing.T) {
	original := "/* mine */\n" + includeLine + "\n"
	path := writeFile(t, original)

	require.NoError(t, InjectInclude(path, includeLine))
	assert.Equal(t, original, readFile(t, path))
}

func TestInjectInclude_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.css")

	err := InjectInclude(path, includeLine)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "inject must never create files")
}

func TestInjectThenRemove_RestoresOriginal(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "plain", content: "window { color: red; }\n"},
		{name: "empty file", content: ""},
		{name: "no trailing newline", content: "a {}"},
		{name: "leading blank lines", content: "\n\n\nb {}\n"},
		{name: "crlf", content: "c {}\r\nd {}\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.content)

			require.NoError(t, InjectInclude(path, includeLine))
			require.NoError(t, RemoveInclude(path, includeLine))
			assert.Equal(t, tt.content, readFile(t, path))
		})
	}
}

func TestRemoveInclude(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "block moved below user content",
			content:  "a {}\n" + MarkerStart + "\n" + includeLine + "\n" + MarkerEnd + "\n\nb {}\n",
			expected: "a {}\nb {}\n",
		},
		{
			name:     "fallback removes bare line",
			content:  "a {}\n" + includeLine + "\nb {}\n",
			expected: "a {}\nb {}\n",
		},
		{
			name:     "fallback removes trailing line without newline",
			content:  "a {}\n" + includeLine,
			expected: "a {}\n",
		},
		{
			name:     "nothing to remove",
			content:  "a {}\n",
			expected: "a {}\n",
		},
		{
			name:     "start marker without end is left alone",
			content:  MarkerStart + "\nx\n",
			expected: MarkerStart + "\nx\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.content)
			require.NoError(t, RemoveInclude(path, includeLine))
			assert.Equal(t, tt.expected, readFile(t, path))
		})
	}
}

func TestRemoveInclude_MissingFileIsNoop(t *testing.T) {
	assert.NoError(t, RemoveInclude(filepath.Join(t.TempDir(), "gone.css"), includeLine))
}

func TestConfigFileInfo_AlreadyIncludedIsFresh(t *testing.T) {
	path := writeFile(t, "a {}\n")

	info := NewConfigFileInfo(path, includeLine, "test")
	assert.False(t, info.AlreadyIncluded)

	require.NoError(t, InjectInclude(path, includeLine))
	assert.False(t, info.AlreadyIncluded, "value objects are not updated in place")
	assert.True(t, info.Refresh().AlreadyIncluded)
	assert.True(t, NewConfigFileInfo(path, includeLine, "test").AlreadyIncluded)
}
