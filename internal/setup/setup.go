// Package setup drives the config injection protocol over every module:
// interactive injection of include lines and removal of managed blocks.
package setup

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/renato0307/lmtt/internal/logging"
	"github.com/renato0307/lmtt/internal/modules"
	"github.com/renato0307/lmtt/internal/ui"
)

// Prompt answers
const (
	choiceInject = "y"
	choiceSkip   = "n"
	choiceCopy   = "c"
	choiceQuit   = "q"
)

var injectOptions = []ui.Option{
	{Key: choiceInject, Label: "Inject"},
	{Key: choiceSkip, Label: "Skip"},
	{Key: choiceCopy, Label: "Copy line to clipboard"},
	{Key: choiceQuit, Label: "Quit"},
}

// Manager runs setup and cleanup against a registry
type Manager struct {
	Registry *modules.Registry
	Prompter ui.Prompter
	Printer  *ui.Printer
	// Copy puts an include line on the clipboard
	Copy func(text string) error
}

// NewManager returns a manager that copies with the system clipboard
func NewManager(reg *modules.Registry, prompter ui.Prompter, printer *ui.Printer) *Manager {
	return &Manager{
		Registry: reg,
		Prompter: prompter,
		Printer:  printer,
		Copy:     CopyToClipboard,
	}
}

// CopyToClipboard writes text to the system clipboard
func CopyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// SetupSummary counts what Setup did
type SetupSummary struct {
	Modules  int
	Files    int
	Included int // already present before the run
	Injected int
	Skipped  int
	Failed   int
	Quit     bool
}

// Setup offers to inject every missing include line of every installed
// module. Injection failures are reported per file and the run continues.
func (m *Manager) Setup(ctx context.Context) (SetupSummary, error) {
	var sum SetupSummary
	p := m.Printer

	p.Title("lmtt setup")
	p.Println(p.Theme.Dimmed.Render("Checking installed applications and their config files"))
	p.Println("")

	for _, mod := range m.Registry.InstalledModules() {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		sum.Modules++
		p.Success("%s detected", mod.Name())

		files, err := mod.ConfigFiles()
		if err != nil {
			p.Error("  cannot list config files: %v", err)
			sum.Failed++
			continue
		}
		if len(files) == 0 {
			p.Println(p.Theme.Dimmed.Render("  no config injection needed"))
			continue
		}

		for _, info := range files {
			sum.Files++
			m.describe(info)

			if info.AlreadyIncluded {
				p.Success("  already configured")
				sum.Included++
				continue
			}
			p.Warning("  include line missing: %s", info.IncludeLine)

			answer, err := m.Prompter.Ask(fmt.Sprintf("Inject into %s?", info.Path), injectOptions)
			if errors.Is(err, ui.ErrCancelled) {
				answer = choiceQuit
			} else if err != nil {
				return sum, err
			}

			switch answer {
			case choiceQuit:
				sum.Quit = true
				p.Info("setup cancelled")
				m.printSetupSummary(sum)
				return sum, nil
			case choiceInject:
				if err := mod.InjectConfig(info); err != nil {
					logging.Error("injection failed", "module", mod.Name(), "path", info.Path, "error", err)
					p.Error("  failed to inject: %v", err)
					sum.Failed++
					continue
				}
				logging.Info("include line injected", "module", mod.Name(), "path", info.Path)
				p.Success("  injected")
				sum.Injected++
			case choiceCopy:
				if err := m.Copy(info.IncludeLine); err != nil {
					p.Error("  %v", err)
				} else {
					p.Info("  include line copied to clipboard")
				}
				sum.Skipped++
			default:
				p.Info("  skipped, add the line manually")
				sum.Skipped++
			}
		}
		p.Println("")
	}

	m.printSetupSummary(sum)
	return sum, nil
}

// SetupDryRun lists every config file of installed modules and whether it
// still needs its include line, without changing anything.
func (m *Manager) SetupDryRun(ctx context.Context) (SetupSummary, error) {
	var sum SetupSummary
	p := m.Printer
	p.Title("lmtt setup (dry run)")

	for _, mod := range m.Registry.InstalledModules() {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.Modules++

		files, err := mod.ConfigFiles()
		if err != nil {
			p.Error("%s: cannot list config files: %v", mod.Name(), err)
			sum.Failed++
			continue
		}
		if len(files) == 0 {
			continue
		}

		p.Println(p.Theme.Label.Render(mod.Name()))
		for _, info := range files {
			sum.Files++
			m.describe(info)
			if info.AlreadyIncluded {
				p.Success("  already configured")
				sum.Included++
			} else {
				p.Warning("  needs injection: %s", info.IncludeLine)
				sum.Skipped++
			}
		}
		p.Println("")
	}
	return sum, nil
}

func (m *Manager) describe(info modules.ConfigFileInfo) {
	p := m.Printer
	p.Println("  " + p.Theme.Dimmed.Render(info.Path))
	if info.Description != "" {
		p.Println("  " + info.Description)
	}
}

func (m *Manager) printSetupSummary(sum SetupSummary) {
	p := m.Printer
	p.Println(p.Theme.Box.Render(fmt.Sprintf(
		"Modules detected:   %d\nConfig files found: %d\nInjected:           %d\nSkipped:            %d\nFailed:             %d",
		sum.Modules, sum.Files, sum.Injected, sum.Skipped, sum.Failed)))

	switch {
	case sum.Skipped > 0 || sum.Failed > 0:
		p.Warning("%d config file(s) still need the include line; run 'lmtt setup --dry-run' to list them", sum.Skipped+sum.Failed)
	case sum.Injected > 0:
		p.Success("all config files updated, run 'lmtt switch' to apply a theme")
	case !sum.Quit:
		p.Success("everything is already configured")
	}
}
