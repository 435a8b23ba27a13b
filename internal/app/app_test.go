package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/lmtt/internal/colors"
	"github.com/renato0307/lmtt/internal/config"
	"github.com/renato0307/lmtt/internal/errs"
	"github.com/renato0307/lmtt/internal/modules"
	"github.com/renato0307/lmtt/internal/scheme"
	"github.com/renato0307/lmtt/internal/state"
	"github.com/renato0307/lmtt/internal/ui"
)

type recordingModule struct {
	name      string
	installed bool
	err       error

	mu      sync.Mutex
	applied *scheme.ColorScheme
}

func (m *recordingModule) Name() string       { return m.name }
func (m *recordingModule) BinaryName() string { return m.name }
func (m *recordingModule) IsInstalled() bool  { return m.installed }
func (m *recordingModule) Priority() int      { return modules.DefaultPriority }
func (m *recordingModule) Description() string {
	return m.name + " test module"
}

func (m *recordingModule) Apply(_ context.Context, s *scheme.ColorScheme, _ *config.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applied = s
	return m.err
}

func (m *recordingModule) ConfigFiles() ([]modules.ConfigFileInfo, error) { return nil, nil }
func (m *recordingModule) InjectConfig(modules.ConfigFileInfo) error      { return nil }
func (m *recordingModule) RemoveConfig(modules.ConfigFileInfo) error      { return nil }

func (m *recordingModule) IsEnabled(cfg *config.Config) bool {
	return cfg.IsModuleEnabled(m.name) && m.installed
}

type notification struct {
	title, body string
	timeout     int
}

func newTestApp(t *testing.T, mods ...modules.Module) (*App, *bytes.Buffer, *[]notification) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.General.UseMatugen = false
	cfg.General.LightColors = filepath.Join(dir, "colors-light.json")
	cfg.General.DarkColors = filepath.Join(dir, "colors-dark.json")
	cfg.Cache.Dir = filepath.Join(dir, "cache")

	var out bytes.Buffer
	var sent []notification
	a := &App{
		Config:   cfg,
		Printer:  ui.NewPrinter(&out, nil),
		Registry: modules.NewRegistryWith(mods...),
		State:    state.New(cfg.Cache.Dir),
		Resolver: &colors.Resolver{Config: cfg},
		Notify: func(_ context.Context, title, body string, timeoutMs int) error {
			sent = append(sent, notification{title, body, timeoutMs})
			return nil
		},
	}
	return a, &out, &sent
}

func TestTargetMode(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.Config.General.DefaultMode = scheme.Light

	mode, err := a.TargetMode("")
	require.NoError(t, err)
	assert.Equal(t, scheme.Light, mode, "missing state reads as dark and toggles to light")

	require.NoError(t, a.State.SetMode(scheme.Light))
	mode, err = a.TargetMode("")
	require.NoError(t, err)
	assert.Equal(t, scheme.Dark, mode)

	mode, err = a.TargetMode("LIGHT")
	require.NoError(t, err)
	assert.Equal(t, scheme.Light, mode)

	mode, err = a.TargetMode("default")
	require.NoError(t, err)
	assert.Equal(t, scheme.Light, mode)

	_, err = a.TargetMode("sepia")
	assert.True(t, errs.IsKind(err, errs.KindConfig))
}

func TestSwitch_Success(t *testing.T) {
	gtk := &recordingModule{name: "gtk", installed: true}
	waybar := &recordingModule{name: "waybar", installed: true}
	missing := &recordingModule{name: "wofi"}
	a, out, sent := newTestApp(t, gtk, waybar, missing)
	a.Config.Colors = map[string]string{"primary": "#ff0000"}

	report, err := a.Switch(context.Background(), scheme.Dark, true)
	require.NoError(t, err)

	assert.False(t, report.Failed())
	assert.Equal(t, modules.Summary{Succeeded: 2}, report.Summary)
	assert.Equal(t, colors.SourceFallback, report.Resolution.Source)

	require.NotNil(t, gtk.applied)
	assert.Equal(t, scheme.Dark, gtk.applied.Mode())
	assert.Equal(t, "#ff0000", gtk.applied.Lookup("primary", ""))
	assert.Equal(t, "#12131a", gtk.applied.Lookup("surface", ""))
	assert.Nil(t, missing.applied)

	assert.Equal(t, scheme.Dark, a.State.Mode())
	_, err = os.Stat(filepath.Join(a.Config.Cache.Dir, "theme_state"))
	assert.NoError(t, err)

	require.Len(t, *sent, 1)
	assert.Equal(t, "Theme switched", (*sent)[0].title)
	assert.Equal(t, 5000, (*sent)[0].timeout)
	assert.Contains(t, out.String(), "2 succeeded, 0 failed")
}

func TestSwitch_FailureKeepsState(t *testing.T) {
	ok := &recordingModule{name: "gtk", installed: true}
	broken := &recordingModule{name: "waybar", installed: true, err: errors.New("style.css not found")}
	a, out, sent := newTestApp(t, ok, broken)
	require.NoError(t, a.State.SetMode(scheme.Dark))

	report, err := a.Switch(context.Background(), scheme.Light, true)
	require.NoError(t, err)

	assert.True(t, report.Failed())
	assert.Equal(t, modules.Summary{Succeeded: 1, Failed: 1}, report.Summary)
	assert.NotNil(t, ok.applied, "successful modules stay applied")
	assert.Equal(t, scheme.Dark, a.State.Mode())
	assert.Empty(t, *sent)
	assert.Contains(t, out.String(), "style.css not found")
}

func TestSwitch_NotificationsDisabled(t *testing.T) {
	a, _, sent := newTestApp(t, &recordingModule{name: "gtk", installed: true})

	_, err := a.Switch(context.Background(), scheme.Dark, false)
	require.NoError(t, err)
	assert.Empty(t, *sent)

	a.Config.Notifications.Enabled = false
	_, err = a.Switch(context.Background(), scheme.Dark, true)
	require.NoError(t, err)
	assert.Empty(t, *sent)
}

func TestSwitch_MalformedStaticColorsAborts(t *testing.T) {
	gtk := &recordingModule{name: "gtk", installed: true}
	a, _, _ := newTestApp(t, gtk)
	require.NoError(t, os.WriteFile(a.Config.General.DarkColors, []byte("{broken"), 0o644))

	_, err := a.Switch(context.Background(), scheme.Dark, false)
	require.Error(t, err)
	assert.Nil(t, gtk.applied)
}

func TestStatus(t *testing.T) {
	a, out, _ := newTestApp(t)
	require.NoError(t, a.State.SetMode(scheme.Light))
	require.NoError(t, os.WriteFile(a.Config.General.DarkColors, []byte(`{"primary":"#112233"}`), 0o644))

	st := a.PrintStatus()
	assert.Equal(t, scheme.Light, st.Mode)
	assert.Equal(t, scheme.Dark, st.Next)
	assert.Equal(t, colors.SourceStatic, st.Source)
	assert.Contains(t, out.String(), "scheme-expressive")
}

func TestModuleStatuses(t *testing.T) {
	gtk := &recordingModule{name: "gtk", installed: true}
	qt := &recordingModule{name: "qt", installed: true}
	wofi := &recordingModule{name: "wofi"}
	a, out, _ := newTestApp(t, gtk, qt, wofi)
	a.Config.SetModuleEnabled("qt", false)

	rows := a.ModuleStatuses(true)
	require.Len(t, rows, 3)
	assert.Equal(t, StateEnabled, rows[0].State)
	assert.Equal(t, StateDisabled, rows[1].State)
	assert.Equal(t, StateNotInstalled, rows[2].State)
	assert.Equal(t, "gtk test module", rows[0].Description)

	rows = a.PrintModules(false)
	require.Len(t, rows, 1)
	assert.Equal(t, "gtk", rows[0].Name)
	assert.Contains(t, out.String(), "enabled")
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("HOME", dir)

	path := filepath.Join(dir, "config", "lmtt", "config.toml")
	cfg := config.Default()
	cfg.Logging.LogFile = filepath.Join(dir, "logs", "lmtt.log")
	cfg.Cache.Dir = filepath.Join(dir, "cache")
	cfg.Logging.Level = "debug"
	cfg.UI.Theme = "nord"
	require.NoError(t, cfg.Save(path))

	var out bytes.Buffer
	a, err := New(Options{ConfigPath: path, Out: &out})
	require.NoError(t, err)

	assert.Equal(t, "nord", a.Printer.Theme.Name)
	assert.Equal(t, filepath.Join(dir, "cache"), a.State.Dir)
	assert.Len(t, a.Registry.Modules(), len(modules.Builtins()))
	assert.NotNil(t, a.Resolver.Cache)
	assert.NotNil(t, a.Notify)

	a.Close()
	content, err := os.ReadFile(cfg.Logging.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "load modules")
}

func TestNew_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[colors]\nprimary = \"red\"\n"), 0o644))

	_, err := New(Options{ConfigPath: path})
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindConfig))
}
