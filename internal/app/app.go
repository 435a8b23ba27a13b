// Package app wires configuration, logging, the module registry and the
// colour resolver into the operations exposed by the lmtt command.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/renato0307/lmtt/internal/colors"
	"github.com/renato0307/lmtt/internal/config"
	"github.com/renato0307/lmtt/internal/errs"
	"github.com/renato0307/lmtt/internal/logging"
	"github.com/renato0307/lmtt/internal/modules"
	"github.com/renato0307/lmtt/internal/notify"
	"github.com/renato0307/lmtt/internal/scheme"
	"github.com/renato0307/lmtt/internal/state"
	"github.com/renato0307/lmtt/internal/ui"
)

const logBackups = 3

// Options controls how New builds an App
type Options struct {
	ConfigPath string
	Verbose    bool
	Out        io.Writer
}

// App holds the dependencies of one lmtt invocation
type App struct {
	Config   *config.Config
	Printer  *ui.Printer
	Registry *modules.Registry
	State    *state.Store
	Resolver *colors.Resolver
	// Notify sends the desktop notification after a switch
	Notify func(ctx context.Context, title, body string, timeoutMs int) error
}

// New loads the configuration, initializes logging and builds the registry
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	level := logging.ParseLevel(cfg.Logging.Level)
	if opts.Verbose {
		level = logging.ParseLevel("debug")
	}
	if err := logging.Init(logging.Config{
		FilePath:   cfg.Logging.LogFile,
		Level:      level,
		Format:     logging.ParseFormat(cfg.Logging.Format),
		MaxSizeMB:  cfg.Logging.MaxLogSize,
		MaxBackups: logBackups,
		Stderr:     opts.Verbose,
	}); err != nil {
		return nil, errs.IO("initialize logging", err)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	store := state.New(cfg.Cache.Dir)
	registry := logging.TimeWithResult("load modules", func() *modules.Registry {
		return modules.NewRegistry(cfg)
	})
	return &App{
		Config:   cfg,
		Printer:  ui.NewPrinter(out, ui.GetTheme(cfg.UI.Theme)),
		Registry: registry,
		State:    store,
		Resolver: colors.NewResolver(cfg, store),
		Notify:   notify.Send,
	}, nil
}

// Close flushes the log file
func (a *App) Close() {
	if err := logging.Shutdown(); err != nil {
		fmt.Fprintf(a.Printer.Out, "failed to close log: %v\n", err)
	}
}

// TargetMode parses a mode argument. An empty argument toggles the persisted
// mode; "default" selects general.default_mode.
func (a *App) TargetMode(arg string) (scheme.Mode, error) {
	switch strings.ToLower(arg) {
	case "":
		return a.State.Mode().Opposite(), nil
	case "default":
		return a.Config.General.DefaultMode, nil
	}
	mode, err := scheme.ParseMode(arg)
	if err != nil {
		return mode, errs.Config("parse mode", err)
	}
	return mode, nil
}

// SwitchReport describes one theme switch
type SwitchReport struct {
	Mode       scheme.Mode
	Resolution *colors.Resolution
	Results    []modules.ModuleResult
	Summary    modules.Summary
}

// Failed reports whether any enabled module failed
func (r *SwitchReport) Failed() bool {
	return r.Summary.Failed > 0
}

// Switch resolves the colour scheme for mode and applies it to every
// enabled module. The mode is persisted, and a notification sent, only when
// no module failed. Module failures are reported, not returned.
func (a *App) Switch(ctx context.Context, mode scheme.Mode, sendNotification bool) (*SwitchReport, error) {
	p := a.Printer
	timing := logging.Start("switch " + mode.String())

	res, err := a.Resolver.Resolve(ctx, mode)
	if err != nil {
		return nil, err
	}
	p.Title(fmt.Sprintf("Switching to %s mode", mode))
	p.Println(p.Theme.Dimmed.Render(describeSource(res)))

	results := a.Registry.ApplyAll(ctx, res.Scheme, a.Config)
	report := &SwitchReport{Mode: mode, Resolution: res, Results: results}
	report.Summary = p.Results(results, a.Config.SlowThreshold())
	logging.EndWithCount(timing, len(results))

	if report.Failed() {
		logging.Warn("switch incomplete, theme state not saved", "mode", mode.String(), "failed", report.Summary.Failed)
		return report, nil
	}

	if err := a.State.SetMode(mode); err != nil {
		return report, err
	}
	p.Success("theme switched to %s mode", mode)

	if sendNotification && a.Config.Notifications.Enabled && a.Notify != nil {
		body := fmt.Sprintf("%s mode applied to %d module(s)", mode, report.Summary.Succeeded)
		if err := a.Notify(ctx, "Theme switched", body, a.Config.Notifications.Timeout); err != nil {
			logging.Warn("notification failed", "error", err)
		}
	}
	return report, nil
}

func describeSource(res *colors.Resolution) string {
	switch res.Source {
	case colors.SourceFallback:
		return "colors: built-in palette"
	case colors.SourceStatic:
		return "colors: " + res.Path
	default:
		return fmt.Sprintf("colors: %s from %s", res.Source, res.Path)
	}
}
