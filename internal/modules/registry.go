package modules

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"
	"go.uber.org/atomic"

	"github.com/renato0307/lmtt/internal/config"
	"github.com/renato0307/lmtt/internal/errs"
	"github.com/renato0307/lmtt/internal/logging"
	"github.com/renato0307/lmtt/internal/scheme"
)

// Registry holds the modules of one run, sorted by priority
type Registry struct {
	modules []Module

	inFlight atomic.Int32
	peak     atomic.Int32
}

// NewRegistry builds the built-in modules plus user definitions found in
// the lmtt modules directory
func NewRegistry(cfg *config.Config) *Registry {
	mods := Builtins()

	if dir, err := config.ModulesDir(); err == nil {
		mods = append(mods, LoadUserModules(dir, mods)...)
	} else {
		logging.Warn("cannot locate user modules directory", "error", err)
	}

	for name := range cfg.Modules {
		if !slices.ContainsFunc(mods, func(m Module) bool { return m.Name() == name }) {
			logging.Warn("config references unknown module", "module", name)
		}
	}

	return NewRegistryWith(mods...)
}

// NewRegistryWith builds a registry from mods, stable-sorted by priority
func NewRegistryWith(mods ...Module) *Registry {
	sorted := slices.Clone(mods)
	slices.SortStableFunc(sorted, func(a, b Module) int {
		return cmp.Compare(a.Priority(), b.Priority())
	})
	return &Registry{modules: sorted}
}

// Builtins returns the compiled-in modules in declaration order
func Builtins() []Module {
	return []Module{
		NewGTK(),
		NewXDG(),
		NewQt(),
		NewWaybar(),
		NewWofi(),
		NewSwayNC(),
		NewHyprPanel(),
		NewVSCode(),
		NewNvim(),
	}
}

// Modules returns all modules in priority order
func (r *Registry) Modules() []Module {
	return slices.Clone(r.modules)
}

// EnabledModules returns modules enabled in cfg and installed
func (r *Registry) EnabledModules(cfg *config.Config) []Module {
	var enabled []Module
	for _, m := range r.modules {
		if m.IsEnabled(cfg) {
			enabled = append(enabled, m)
		}
	}
	return enabled
}

// InstalledModules returns modules whose binary is present
func (r *Registry) InstalledModules() []Module {
	var installed []Module
	for _, m := range r.modules {
		if m.IsInstalled() {
			installed = append(installed, m)
		}
	}
	return installed
}

// UnknownModuleError is returned by Find for names no module matches
type UnknownModuleError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownModuleError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown module %q", e.Name)
	}
	return fmt.Sprintf("unknown module %q (did you mean: %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}

// Find returns the module named name, case-insensitively
func (r *Registry) Find(name string) (Module, error) {
	names := make([]string, len(r.modules))
	for i, m := range r.modules {
		if strings.EqualFold(m.Name(), name) {
			return m, nil
		}
		names[i] = m.Name()
	}

	unknown := &UnknownModuleError{Name: name}
	for _, match := range fuzzy.Find(strings.ToLower(name), names) {
		unknown.Suggestions = append(unknown.Suggestions, match.Str)
		if len(unknown.Suggestions) == 3 {
			break
		}
	}
	return nil, errs.NotFound("find module", unknown)
}

// ModuleResult is the outcome of applying one module
type ModuleResult struct {
	Name     string
	Duration time.Duration
	Err      error
}

// Success reports whether Apply returned without error
func (r ModuleResult) Success() bool {
	return r.Err == nil
}

// Slow reports whether the module took longer than threshold
func (r ModuleResult) Slow(threshold time.Duration) bool {
	return threshold > 0 && r.Duration > threshold
}

// ApplyAll applies s to every enabled module concurrently and returns the
// results in completion order. Failures, panics and timeouts are isolated
// per module. With performance.priority_tiers set, each distinct priority
// runs as its own fan-out and completes before the next one starts.
func (r *Registry) ApplyAll(ctx context.Context, s *scheme.ColorScheme, cfg *config.Config) []ModuleResult {
	enabled := r.EnabledModules(cfg)
	timer := logging.Start("apply modules")
	r.peak.Store(0)

	var results []ModuleResult
	if cfg.Performance.PriorityTiers {
		for _, tier := range tiers(enabled) {
			results = append(results, r.fanOut(ctx, tier, s, cfg)...)
		}
	} else {
		results = r.fanOut(ctx, enabled, s, cfg)
	}

	logging.EndWithCount(timer, len(results))
	logging.Debug("apply concurrency", "modules", len(enabled), "peak", r.PeakConcurrency())
	return results
}

// PeakConcurrency is the highest number of modules that were applying at
// the same time during the last ApplyAll
func (r *Registry) PeakConcurrency() int {
	return int(r.peak.Load())
}

func (r *Registry) fanOut(ctx context.Context, mods []Module, s *scheme.ColorScheme, cfg *config.Config) []ModuleResult {
	ch := make(chan ModuleResult, len(mods))
	var wg sync.WaitGroup
	for _, m := range mods {
		wg.Go(func() {
			ch <- r.run(ctx, m, s, cfg)
		})
	}
	wg.Wait()
	close(ch)

	results := make([]ModuleResult, 0, len(mods))
	for res := range ch {
		results = append(results, res)
	}
	return results
}

func (r *Registry) run(ctx context.Context, m Module, s *scheme.ColorScheme, cfg *config.Config) ModuleResult {
	name := m.Name()
	log := logging.Module(name)

	n := r.inFlight.Inc()
	defer r.inFlight.Dec()
	for {
		p := r.peak.Load()
		if n <= p || r.peak.CompareAndSwap(p, n) {
			break
		}
	}

	timeout := cfg.ModuleTimeout()
	if t, ok := m.(Timeouter); ok && t.Timeout() > 0 {
		timeout = t.Timeout()
	}
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	start := time.Now()
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- errs.Module("apply "+name, fmt.Errorf("panic: %v", p))
			}
		}()
		done <- m.Apply(tctx, s, cfg)
	}()

	var err error
	select {
	case err = <-done:
	case <-tctx.Done():
		err = errs.Timeout("apply "+name, fmt.Errorf("no result after %v", timeout))
	}
	res := ModuleResult{Name: name, Duration: time.Since(start), Err: wrapModuleErr(name, err)}

	switch {
	case res.Err != nil:
		log.Error("module failed", "duration", res.Duration.String(), "error", res.Err)
	case res.Slow(cfg.SlowThreshold()):
		log.Warn("module slow", "duration", res.Duration.String())
	default:
		log.Debug("module applied", "duration", res.Duration.String())
	}
	return res
}

func wrapModuleErr(name string, err error) error {
	if err == nil {
		return nil
	}
	var e *errs.Error
	if errors.As(err, &e) {
		return err
	}
	return errs.Module("apply "+name, err)
}

// tiers groups priority-sorted modules by equal priority
func tiers(mods []Module) [][]Module {
	var groups [][]Module
	for i, m := range mods {
		if i == 0 || m.Priority() != mods[i-1].Priority() {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], m)
	}
	return groups
}

// Summary tallies a set of results
type Summary struct {
	Succeeded int
	Failed    int
}

// Summarize counts successes and failures
func Summarize(results []ModuleResult) Summary {
	var s Summary
	for _, r := range results {
		if r.Success() {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}
