package setup

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/lmtt/internal/errs"
	"github.com/renato0307/lmtt/internal/modules"
)

func TestCleanup_All(t *testing.T) {
	dir := t.TempDir()
	original := "window { color: red; }\n"
	a := writeStyle(t, dir, "a.css", original)
	b := writeStyle(t, dir, "b.css", "b {}\n")
	require.NoError(t, modules.InjectInclude(a, importLine))

	// not installed modules are cleaned too
	mod := &fileModule{name: "waybar", installed: false, files: []string{a, b}, line: importLine}
	prompter := &scriptedPrompter{answers: []string{"y"}}
	m, out := newManager(prompter, mod)

	sum, err := m.Cleanup(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, CleanupSummary{Removed: 1}, sum)
	assert.Len(t, prompter.questions, 1)
	assert.Equal(t, original, read(t, a))
	assert.Contains(t, out.String(), "nothing to remove")
}

func TestCleanup_Declined(t *testing.T) {
	a := writeStyle(t, t.TempDir(), "a.css", "a {}\n")
	require.NoError(t, modules.InjectInclude(a, importLine))

	for _, answers := range [][]string{{"n"}, nil} {
		m, _ := newManager(&scriptedPrompter{answers: answers}, &fileModule{name: "waybar", files: []string{a}, line: importLine})

		sum, err := m.Cleanup(context.Background(), "")
		require.NoError(t, err)
		assert.True(t, sum.Cancelled)
		assert.True(t, modules.IsIncluded(a, importLine))
	}
}

func TestCleanup_SingleModuleSkipsConfirmation(t *testing.T) {
	dir := t.TempDir()
	a := writeStyle(t, dir, "a.css", "a {}\n")
	b := writeStyle(t, dir, "b.css", "b {}\n")
	require.NoError(t, modules.InjectInclude(a, importLine))
	require.NoError(t, modules.InjectInclude(b, importLine))

	waybar := &fileModule{name: "waybar", files: []string{a}, line: importLine}
	wofi := &fileModule{name: "wofi", files: []string{b}, line: importLine}
	prompter := &scriptedPrompter{}
	m, _ := newManager(prompter, waybar, wofi)

	sum, err := m.Cleanup(context.Background(), "WayBar")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Removed)
	assert.Empty(t, prompter.questions)
	assert.Equal(t, "a {}\n", read(t, a))
	assert.True(t, modules.IsIncluded(b, importLine))
}

func TestCleanup_UnknownModule(t *testing.T) {
	m, _ := newManager(&scriptedPrompter{}, &fileModule{name: "waybar"})

	_, err := m.Cleanup(context.Background(), "waybr")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))

	var unknown *modules.UnknownModuleError
	require.True(t, errors.As(err, &unknown))
	assert.Contains(t, unknown.Suggestions, "waybar")
}

func TestCleanup_ErrorsContinue(t *testing.T) {
	dir := t.TempDir()
	a := writeStyle(t, dir, "a.css", "a {}\n")
	b := writeStyle(t, dir, "b.css", "b {}\n")
	require.NoError(t, modules.InjectInclude(a, importLine))
	require.NoError(t, modules.InjectInclude(b, importLine))
	require.NoError(t, os.Chmod(a, 0o444))
	require.NoError(t, os.Chmod(b, 0o444))

	if f, err := os.OpenFile(a, os.O_WRONLY, 0); err == nil {
		f.Close()
		t.Skip("file permissions are not enforced for this user")
	}

	broken := &fileModule{name: "broken", listErr: errors.New("boom")}
	mod := &fileModule{name: "waybar", files: []string{a, b}, line: importLine}
	m, _ := newManager(&scriptedPrompter{answers: []string{"y"}}, broken, mod)

	sum, err := m.Cleanup(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Errors)
	assert.Zero(t, sum.Removed)
}

func TestCleanupDryRun(t *testing.T) {
	dir := t.TempDir()
	a := writeStyle(t, dir, "a.css", "a {}\n")
	b := writeStyle(t, dir, "b.css", "b {}\n")
	require.NoError(t, modules.InjectInclude(a, importLine))

	prompter := &scriptedPrompter{}
	m, out := newManager(prompter, &fileModule{name: "waybar", files: []string{a, b}, line: importLine})

	sum, err := m.CleanupDryRun(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Removed)
	assert.Empty(t, prompter.questions)
	assert.True(t, modules.IsIncluded(a, importLine))
	assert.Contains(t, out.String(), "would remove")
}
