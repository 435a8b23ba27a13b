package ui

import (
	"fmt"
	"time"

	"github.com/renato0307/lmtt/internal/modules"
)

// Results prints one line per module result and the success/failure tally
func (p *Printer) Results(results []modules.ModuleResult, slowThreshold time.Duration) modules.Summary {
	width := 0
	for _, r := range results {
		width = max(width, len(r.Name))
	}

	for _, r := range results {
		name := p.Theme.Label.Render(fmt.Sprintf("%-*s", width, r.Name))
		took := p.Theme.Dimmed.Render(formatDuration(r.Duration))
		switch {
		case !r.Success():
			p.Println(RenderMessage(fmt.Sprintf("%s %s", r.Name, took), MessageError, p.Theme) + " " + r.Err.Error())
		case r.Slow(slowThreshold):
			p.Println(RenderMessage(fmt.Sprintf("%s %s (slow)", name, took), MessageWarning, p.Theme))
		default:
			p.Println(RenderMessage(fmt.Sprintf("%s %s", name, took), MessageSuccess, p.Theme))
		}
	}

	summary := modules.Summarize(results)
	tally := fmt.Sprintf("%d succeeded, %d failed", summary.Succeeded, summary.Failed)
	if summary.Failed > 0 {
		p.Error("%s", tally)
	} else {
		p.Success("%s", tally)
	}
	return summary
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
