package app

import (
	"fmt"

	"github.com/renato0307/lmtt/internal/colors"
	"github.com/renato0307/lmtt/internal/modules"
	"github.com/renato0307/lmtt/internal/scheme"
)

// Status is what `lmtt status` shows
type Status struct {
	Mode       scheme.Mode
	Wallpaper  string
	SchemeType string
	UseMatugen bool
	// Source is the colour source the next switch to Next would use
	Next   scheme.Mode
	Source colors.Source
}

// Status reads the persisted state and plans the next colour source
func (a *App) Status() Status {
	mode := a.State.Mode()
	next := mode.Opposite()
	return Status{
		Mode:       mode,
		Wallpaper:  a.Config.General.Wallpaper,
		SchemeType: a.Config.General.SchemeType,
		UseMatugen: a.Config.General.UseMatugen,
		Next:       next,
		Source:     a.Resolver.Plan(next),
	}
}

// PrintStatus writes Status as key/value lines
func (a *App) PrintStatus() Status {
	st := a.Status()
	p := a.Printer
	row := func(k, v string) {
		p.Println(p.Theme.Label.Render(fmt.Sprintf("%-14s", k)) + v)
	}

	p.Title("lmtt status")
	row("Current theme", st.Mode.String())
	row("Wallpaper", st.Wallpaper)
	row("Scheme type", st.SchemeType)
	row("Matugen", fmt.Sprintf("%t", st.UseMatugen))
	row("Next switch", fmt.Sprintf("%s (%s colors)", st.Next, st.Source))
	return st
}

// ModuleState is the status column of `lmtt list`
type ModuleState string

const (
	StateEnabled      ModuleState = "enabled"
	StateDisabled     ModuleState = "disabled"
	StateNotInstalled ModuleState = "not installed"
)

// ModuleStatus is one row of `lmtt list`
type ModuleStatus struct {
	Name        string
	Priority    int
	Description string
	State       ModuleState
}

// ModuleStatuses lists every module in priority order. Unless all is set,
// only enabled modules are returned.
func (a *App) ModuleStatuses(all bool) []ModuleStatus {
	var rows []ModuleStatus
	for _, m := range a.Registry.Modules() {
		row := ModuleStatus{Name: m.Name(), Priority: m.Priority()}
		if d, ok := m.(modules.Describer); ok {
			row.Description = d.Description()
		}

		switch {
		case !m.IsInstalled():
			row.State = StateNotInstalled
		case !a.Config.IsModuleEnabled(m.Name()):
			row.State = StateDisabled
		default:
			row.State = StateEnabled
		}

		if all || row.State == StateEnabled {
			rows = append(rows, row)
		}
	}
	return rows
}

// PrintModules writes the module table
func (a *App) PrintModules(all bool) []ModuleStatus {
	rows := a.ModuleStatuses(all)
	p := a.Printer

	width := 0
	for _, r := range rows {
		width = max(width, len(r.Name))
	}

	p.Title("Modules")
	for _, r := range rows {
		name := p.Theme.Label.Render(fmt.Sprintf("%-*s", width, r.Name))
		prio := p.Theme.Dimmed.Render(fmt.Sprintf("%3d", r.Priority))
		line := fmt.Sprintf("%s %s %s", name, prio, r.State)
		if r.Description != "" {
			line += " " + p.Theme.Dimmed.Render(r.Description)
		}
		switch r.State {
		case StateEnabled:
			p.Println(p.Theme.Title.Render("✓ ") + line)
		case StateDisabled:
			p.Println(p.Theme.Dimmed.Render("○ ") + line)
		default:
			p.Println(p.Theme.Dimmed.Render("✗ ") + line)
		}
	}
	if len(rows) == 0 {
		p.Info("no enabled modules, run 'lmtt list --all'")
	}
	return rows
}
