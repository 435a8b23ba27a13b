package setup

import (
	"context"
	"errors"

	"github.com/renato0307/lmtt/internal/logging"
	"github.com/renato0307/lmtt/internal/modules"
	"github.com/renato0307/lmtt/internal/ui"
)

// CleanupSummary counts what Cleanup did
type CleanupSummary struct {
	Removed   int
	Errors    int
	Cancelled bool
}

// Cleanup removes lmtt-managed include lines. With an empty module name it
// asks for confirmation and cleans every module; otherwise it cleans only
// the named module. Removal errors are reported per file.
func (m *Manager) Cleanup(ctx context.Context, module string) (CleanupSummary, error) {
	var sum CleanupSummary
	p := m.Printer

	targets := m.Registry.Modules()
	if module != "" {
		mod, err := m.Registry.Find(module)
		if err != nil {
			return sum, err
		}
		targets = []modules.Module{mod}
		p.Title("lmtt cleanup: " + mod.Name())
	} else {
		p.Title("lmtt cleanup")
		p.Println("This removes every lmtt include line from your application configs.")
		ok, err := ui.Confirm(m.Prompter, "Continue?")
		if err != nil && !errors.Is(err, ui.ErrCancelled) {
			return sum, err
		}
		if !ok {
			sum.Cancelled = true
			p.Info("cancelled")
			return sum, nil
		}
	}

	for _, mod := range targets {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		files, err := mod.ConfigFiles()
		if err != nil {
			p.Error("%s: cannot list config files: %v", mod.Name(), err)
			sum.Errors++
			continue
		}
		if len(files) == 0 {
			continue
		}

		p.Println(p.Theme.Label.Render(mod.Name()))
		for _, info := range files {
			if !info.AlreadyIncluded {
				p.Println("  " + p.Theme.Dimmed.Render(info.Path+" - nothing to remove"))
				continue
			}
			if err := mod.RemoveConfig(info); err != nil {
				logging.Error("removal failed", "module", mod.Name(), "path", info.Path, "error", err)
				p.Error("  %s: %v", info.Path, err)
				sum.Errors++
				continue
			}
			logging.Info("include line removed", "module", mod.Name(), "path", info.Path)
			p.Success("  removed from %s", info.Path)
			sum.Removed++
		}
	}

	p.Println("")
	if sum.Errors > 0 {
		p.Error("removed %d include line(s), %d error(s)", sum.Removed, sum.Errors)
	} else {
		p.Success("removed %d include line(s)", sum.Removed)
	}
	return sum, nil
}

// CleanupDryRun lists what Cleanup would remove. Removed counts the
// blocks that would go.
func (m *Manager) CleanupDryRun(ctx context.Context) (CleanupSummary, error) {
	var sum CleanupSummary
	p := m.Printer
	p.Title("lmtt cleanup (dry run)")

	for _, mod := range m.Registry.Modules() {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		files, err := mod.ConfigFiles()
		if err != nil {
			p.Error("%s: cannot list config files: %v", mod.Name(), err)
			sum.Errors++
			continue
		}
		if len(files) == 0 {
			continue
		}

		p.Println(p.Theme.Label.Render(mod.Name()))
		for _, info := range files {
			if info.AlreadyIncluded {
				p.Warning("  %s: would remove %s", info.Path, info.IncludeLine)
				sum.Removed++
			} else {
				p.Println("  " + p.Theme.Dimmed.Render(info.Path+" - nothing to remove"))
			}
		}
	}
	return sum, nil
}
