// Package scheme holds the colour scheme passed to every theme module.
//
// A ColorScheme maps semantic colour roles (primary, surface, on_surface...)
// to "#rrggbb" values and carries the Mode it was built for. It is never
// mutated after construction, so a single value can be shared by all modules
// applying concurrently. Consumers must treat a missing role as "use the
// adapter default" rather than as an error; Lookup exists for that.
package scheme

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Documented colour roles
const (
	RoleSurface                 = "surface"
	RoleOnSurface               = "on_surface"
	RoleSurfaceVariant          = "surface_variant"
	RoleOnSurfaceVariant        = "on_surface_variant"
	RoleSurfaceContainer        = "surface_container"
	RoleSurfaceContainerHigh    = "surface_container_high"
	RoleSurfaceContainerHighest = "surface_container_highest"
	RolePrimary                 = "primary"
	RoleOnPrimary               = "on_primary"
	RolePrimaryContainer        = "primary_container"
	RoleOnPrimaryContainer      = "on_primary_container"
	RoleSecondary               = "secondary"
	RoleOnSecondary             = "on_secondary"
	RoleSecondaryContainer      = "secondary_container"
	RoleOnSecondaryContainer    = "on_secondary_container"
	RoleTertiary                = "tertiary"
	RoleOnTertiary              = "on_tertiary"
	RoleTertiaryContainer       = "tertiary_container"
	RoleOnTertiaryContainer     = "on_tertiary_container"
	RoleError                   = "error"
	RoleOnError                 = "on_error"
	RoleErrorContainer          = "error_container"
	RoleOnErrorContainer        = "on_error_container"
	RoleOutline                 = "outline"
	RoleOutlineVariant          = "outline_variant"
	RoleBackground              = "background"
	RoleOnBackground            = "on_background"
)

// ColorScheme is an immutable role -> hex mapping for one mode
type ColorScheme struct {
	mode   Mode
	colors map[string]string
}

// New builds a scheme from a copy of colors
func New(mode Mode, colors map[string]string) *ColorScheme {
	return &ColorScheme{mode: mode, colors: maps.Clone(nonNil(colors))}
}

// Parse builds a scheme after validating every value with ParseHex
func Parse(mode Mode, colors map[string]string) (*ColorScheme, error) {
	parsed := make(map[string]string, len(colors))
	for role, value := range colors {
		hex, err := ParseHex(value)
		if err != nil {
			return nil, fmt.Errorf("role %s: %w", role, err)
		}
		parsed[role] = hex
	}
	return &ColorScheme{mode: mode, colors: parsed}, nil
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

// Mode returns the mode the scheme was built for
func (s *ColorScheme) Mode() Mode {
	return s.mode
}

// Get returns the colour for role
func (s *ColorScheme) Get(role string) (string, bool) {
	v, ok := s.colors[role]
	return v, ok
}

// Lookup returns the colour for role, or fallback when the role is missing
func (s *ColorScheme) Lookup(role, fallback string) string {
	if v, ok := s.colors[role]; ok {
		return v
	}
	return fallback
}

// Colors returns a copy of the role map
func (s *ColorScheme) Colors() map[string]string {
	return maps.Clone(s.colors)
}

// Roles returns the role names in sorted order
func (s *ColorScheme) Roles() []string {
	return slices.Sorted(maps.Keys(s.colors))
}

// Len returns the number of roles
func (s *ColorScheme) Len() int {
	return len(s.colors)
}

// WithOverrides returns a new scheme where every override replaces the
// existing value for its role
func (s *ColorScheme) WithOverrides(overrides map[string]string) *ColorScheme {
	colors := maps.Clone(s.colors)
	maps.Copy(colors, overrides)
	return &ColorScheme{mode: s.mode, colors: colors}
}

// ToGTKCSS renders the scheme as GTK @define-color declarations
func (s *ColorScheme) ToGTKCSS() string {
	var b strings.Builder
	fmt.Fprintf(&b, "/* Generated by lmtt (%s mode). Do not edit. */\n\n", s.mode)
	for _, role := range s.Roles() {
		fmt.Fprintf(&b, "@define-color %s %s;\n", role, s.colors[role])
	}
	return b.String()
}
