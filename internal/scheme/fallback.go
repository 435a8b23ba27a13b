package scheme

import "maps"

var fallbackDark = map[string]string{
	RoleSurface:                 "#12131a",
	RoleOnSurface:               "#e3e1ec",
	RoleSurfaceVariant:          "#44464f",
	RoleOnSurfaceVariant:        "#c5c5d6",
	RoleSurfaceContainer:        "#1e1f27",
	RoleSurfaceContainerHigh:    "#292931",
	RoleSurfaceContainerHighest: "#33343c",

	RolePrimary:            "#9fd491",
	RoleOnPrimary:          "#003a03",
	RolePrimaryContainer:   "#22511c",
	RoleOnPrimaryContainer: "#bbf0aa",

	RoleSecondary:            "#edb8cd",
	RoleOnSecondary:          "#4a2532",
	RoleSecondaryContainer:   "#633b48",
	RoleOnSecondaryContainer: "#ffd9e3",

	RoleTertiary:            "#bbc3fa",
	RoleOnTertiary:          "#1e2a5a",
	RoleTertiaryContainer:   "#3b4472",
	RoleOnTertiaryContainer: "#dee0ff",

	RoleError:            "#ffb4ab",
	RoleOnError:          "#690005",
	RoleErrorContainer:   "#93000a",
	RoleOnErrorContainer: "#ffdad6",

	RoleOutline:        "#8f909f",
	RoleOutlineVariant: "#44464f",

	RoleBackground:   "#12131a",
	RoleOnBackground: "#e3e1ec",
}

var fallbackLight = map[string]string{
	RoleSurface:                 "#fbf8ff",
	RoleOnSurface:               "#1a1b23",
	RoleSurfaceVariant:          "#e0e2ec",
	RoleOnSurfaceVariant:        "#44464f",
	RoleSurfaceContainer:        "#efedf4",
	RoleSurfaceContainerHigh:    "#e9e7ef",
	RoleSurfaceContainerHighest: "#e3e1ec",

	RolePrimary:            "#3a6a33",
	RoleOnPrimary:          "#ffffff",
	RolePrimaryContainer:   "#bbf0aa",
	RoleOnPrimaryContainer: "#003a03",

	RoleSecondary:            "#7d525f",
	RoleOnSecondary:          "#ffffff",
	RoleSecondaryContainer:   "#ffd9e3",
	RoleOnSecondaryContainer: "#31101d",

	RoleTertiary:            "#555d8f",
	RoleOnTertiary:          "#ffffff",
	RoleTertiaryContainer:   "#dee0ff",
	RoleOnTertiaryContainer: "#0e1848",

	RoleError:            "#ba1a1a",
	RoleOnError:          "#ffffff",
	RoleErrorContainer:   "#ffdad6",
	RoleOnErrorContainer: "#410002",

	RoleOutline:        "#74767f",
	RoleOutlineVariant: "#c4c6d0",

	RoleBackground:   "#fbf8ff",
	RoleOnBackground: "#1a1b23",
}

// FallbackColors returns a copy of the built-in palette for mode
func FallbackColors(mode Mode) map[string]string {
	if mode == Light {
		return maps.Clone(fallbackLight)
	}
	return maps.Clone(fallbackDark)
}

// Fallback returns the built-in scheme for mode
func Fallback(mode Mode) *ColorScheme {
	return &ColorScheme{mode: mode, colors: FallbackColors(mode)}
}
