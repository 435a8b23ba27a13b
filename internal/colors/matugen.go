package colors

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/renato0307/lmtt/internal/errs"
	"github.com/renato0307/lmtt/internal/runner"
	"github.com/renato0307/lmtt/internal/scheme"
)

// Generator derives a palette from a wallpaper image
type Generator interface {
	Name() string
	Available() bool
	Generate(ctx context.Context, wallpaper string, mode scheme.Mode, schemeType string) (map[string]string, error)
}

// Matugen generates Material You palettes with the matugen CLI
type Matugen struct {
	Binary  string
	Timeout time.Duration
}

// NewMatugen returns a generator using the matugen binary on PATH
func NewMatugen(timeout time.Duration) *Matugen {
	return &Matugen{Binary: "matugen", Timeout: timeout}
}

func (m *Matugen) Name() string { return m.Binary }

func (m *Matugen) Available() bool {
	return runner.Available(m.Binary)
}

func (m *Matugen) Generate(ctx context.Context, wallpaper string, mode scheme.Mode, schemeType string) (map[string]string, error) {
	args := []string{
		"--json", "hex",
		"--dry-run",
		"image", wallpaper,
		"--mode", mode.String(),
		"--type", schemeType,
	}
	out, err := runner.Run(ctx, m.Binary, args, runner.Options{Timeout: m.Timeout})
	if err != nil {
		return nil, errs.Generation("run matugen", err)
	}
	return ParseMatugen([]byte(out), mode)
}

type matugenOutput struct {
	Colors map[string]map[string]string `json:"colors"`
}

// ParseMatugen extracts the colours for mode from matugen's JSON output:
// {"colors": {"primary": {"dark": "#...", "light": "#..."}, ...}}
func ParseMatugen(data []byte, mode scheme.Mode) (map[string]string, error) {
	var out matugenOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errs.Generation("parse matugen output", err)
	}

	colors := make(map[string]string, len(out.Colors))
	for role, variants := range out.Colors {
		if value, ok := variants[mode.String()]; ok {
			colors[role] = value
		}
	}
	if len(colors) == 0 {
		return nil, errs.Generation("parse matugen output", fmt.Errorf("no %s colors in output", mode))
	}
	return colors, nil
}
