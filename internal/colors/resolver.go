// Package colors resolves the colour scheme for a theme switch.
//
// Sources are tried in order and the first that succeeds wins:
//
//  1. the mode-specific static JSON file, when it exists
//  2. the wallpaper generator, when enabled and installed
//  3. the built-in fallback palette
//
// Configured overrides are applied on top of whichever source won. A
// malformed static file is fatal; every generator failure falls through.
package colors

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/renato0307/lmtt/internal/config"
	"github.com/renato0307/lmtt/internal/errs"
	"github.com/renato0307/lmtt/internal/logging"
	"github.com/renato0307/lmtt/internal/scheme"
	"github.com/renato0307/lmtt/internal/state"
)

// Source names the colour source that produced a scheme
type Source string

const (
	SourceStatic    Source = "static"
	SourceGenerated Source = "generated"
	SourceCached    Source = "cached"
	SourceFallback  Source = "fallback"
)

// Resolution is the outcome of Resolve
type Resolution struct {
	Scheme *scheme.ColorScheme
	Source Source
	// Path is the static file or wallpaper the colours came from
	Path string
}

// Resolver runs the resolution chain. Generator and Cache may be nil.
type Resolver struct {
	Config    *config.Config
	Generator Generator
	Cache     *state.Store
}

// NewResolver wires matugen and, when enabled, the palette cache
func NewResolver(cfg *config.Config, store *state.Store) *Resolver {
	r := &Resolver{
		Config:    cfg,
		Generator: NewMatugen(cfg.ModuleTimeout()),
	}
	if cfg.Cache.Enabled {
		r.Cache = store
	}
	return r
}

// Resolve produces the colour scheme for mode
func (r *Resolver) Resolve(ctx context.Context, mode scheme.Mode) (*Resolution, error) {
	res, err := r.resolveBase(ctx, mode)
	if err != nil {
		return nil, err
	}

	if len(r.Config.Colors) > 0 {
		overrides, err := parseOverrides(r.Config.Colors)
		if err != nil {
			return nil, err
		}
		res.Scheme = res.Scheme.WithOverrides(overrides)
		logging.Debug("applied color overrides", "count", len(overrides))
	}

	logging.Info("resolved color scheme", "mode", mode.String(), "source", string(res.Source), "roles", res.Scheme.Len())
	return res, nil
}

func (r *Resolver) resolveBase(ctx context.Context, mode scheme.Mode) (*Resolution, error) {
	if path := r.Config.StaticColorsPath(mode); path != "" {
		colors, err := readStatic(path)
		switch {
		case err == nil:
			s, err := scheme.Parse(mode, colors)
			if err != nil {
				return nil, errs.Config("static colors "+path, err)
			}
			return &Resolution{Scheme: s, Source: SourceStatic, Path: path}, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}
	}

	if res := r.generate(ctx, mode); res != nil {
		return res, nil
	}

	return &Resolution{Scheme: scheme.Fallback(mode), Source: SourceFallback}, nil
}

// generate returns nil whenever generation is disabled or fails
func (r *Resolver) generate(ctx context.Context, mode scheme.Mode) *Resolution {
	gen := r.Config.General
	if !gen.UseMatugen || r.Generator == nil {
		return nil
	}
	if !r.Generator.Available() {
		logging.Debug("color generator not installed", "generator", r.Generator.Name())
		return nil
	}
	if _, err := os.Stat(gen.Wallpaper); err != nil {
		logging.Warn("wallpaper not found, using fallback colors", "wallpaper", gen.Wallpaper)
		return nil
	}

	key := ""
	if r.Cache != nil {
		k, err := state.PaletteKey(gen.Wallpaper, gen.SchemeType, mode)
		if err == nil {
			key = k
			if colors, ok := r.Cache.Palette(key); ok {
				if s, err := scheme.Parse(mode, colors); err == nil {
					return &Resolution{Scheme: s, Source: SourceCached, Path: gen.Wallpaper}
				}
			}
		}
	}

	timer := logging.Start("generate colors")
	colors, err := r.Generator.Generate(ctx, gen.Wallpaper, mode, gen.SchemeType)
	logging.End(timer)
	if err != nil {
		logging.Warn("color generation failed, using fallback colors", "error", err)
		return nil
	}
	s, err := scheme.Parse(mode, colors)
	if err != nil {
		logging.Warn("generator returned invalid colors, using fallback colors", "error", err)
		return nil
	}

	if key != "" {
		if err := r.Cache.SavePalette(key, s.Colors()); err != nil {
			logging.Warn("failed to cache generated palette", "error", err)
		}
	}
	return &Resolution{Scheme: s, Source: SourceGenerated, Path: gen.Wallpaper}
}

// Plan reports the source Resolve would most likely use for mode without
// running the generator
func (r *Resolver) Plan(mode scheme.Mode) Source {
	if path := r.Config.StaticColorsPath(mode); path != "" {
		if _, err := os.Stat(path); err == nil {
			return SourceStatic
		}
	}
	gen := r.Config.General
	if gen.UseMatugen && r.Generator != nil && r.Generator.Available() {
		if _, err := os.Stat(gen.Wallpaper); err == nil {
			if r.Cache != nil {
				if key, err := state.PaletteKey(gen.Wallpaper, gen.SchemeType, mode); err == nil {
					if _, ok := r.Cache.Palette(key); ok {
						return SourceCached
					}
				}
			}
			return SourceGenerated
		}
	}
	return SourceFallback
}

func readStatic(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, errs.Config("read "+path, err)
	}
	var colors map[string]string
	if err := json.Unmarshal(data, &colors); err != nil {
		return nil, errs.Config("parse "+path, err)
	}
	return colors, nil
}

func parseOverrides(raw map[string]string) (map[string]string, error) {
	overrides := make(map[string]string, len(raw))
	for role, value := range raw {
		hex, err := scheme.ParseHex(value)
		if err != nil {
			return nil, errs.Config("color override "+role, err)
		}
		overrides[role] = hex
	}
	return overrides, nil
}
