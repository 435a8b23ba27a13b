package modules

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/renato0307/lmtt/internal/config"
	"github.com/renato0307/lmtt/internal/errs"
	"github.com/renato0307/lmtt/internal/logging"
	"github.com/renato0307/lmtt/internal/runner"
	"github.com/renato0307/lmtt/internal/scheme"
)

// Qt writes a KDE color scheme picked up by qt6ct
type Qt struct {
	Base
}

func NewQt() *Qt {
	return &Qt{Base: newBase("qt", "qt6ct", 20)}
}

func (m *Qt) Description() string { return "KDE color scheme for Qt applications (qt6ct)" }

func (m *Qt) Apply(ctx context.Context, s *scheme.ColorScheme, cfg *config.Config) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return errs.Config("locate home directory", err)
	}

	dir := filepath.Join(home, ".local", "share", "color-schemes")
	path := filepath.Join(dir, fmt.Sprintf("lmtt-%s.colors", s.Mode()))
	if err := writeFileAtomic(path, []byte(kdeColorScheme(s))); err != nil {
		return err
	}

	runner.BestEffort(ctx, "systemctl", "--user", "set-environment", "QT_QPA_PLATFORMTHEME=qt6ct")
	runner.BestEffort(ctx, "dbus-update-activation-environment", "--systemd", "QT_QPA_PLATFORMTHEME=qt6ct")
	if runner.Available("hyprctl") {
		runner.BestEffort(ctx, "hyprctl", "setenv", "QT_QPA_PLATFORMTHEME", "qt6ct")
	}

	logging.Module(m.Name()).Info("updated color scheme", "path", path)
	return nil
}

// kdeColorScheme renders the KDE .colors format; values are "r,g,b"
func kdeColorScheme(s *scheme.ColorScheme) string {
	fallback := scheme.Fallback(s.Mode())
	rgb := func(role string) string {
		v, err := scheme.RGBString(s.Lookup(role, fallback.Lookup(role, "")))
		if err != nil {
			return "0,0,0"
		}
		return v
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[General]\nName=lmtt-%s\nColorScheme=lmtt-%s\n\n", s.Mode(), s.Mode())
	for _, section := range []string{"Window", "View", "Button"} {
		bg := scheme.RoleSurface
		if section == "Button" {
			bg = scheme.RoleSurfaceContainer
		}
		fmt.Fprintf(&b, "[Colors:%s]\nBackgroundNormal=%s\nForegroundNormal=%s\nDecorationFocus=%s\n\n",
			section, rgb(bg), rgb(scheme.RoleOnSurface), rgb(scheme.RolePrimary))
	}
	fmt.Fprintf(&b, "[Colors:Selection]\nBackgroundNormal=%s\nForegroundNormal=%s\n",
		rgb(scheme.RolePrimary), rgb(scheme.RoleOnPrimary))
	return b.String()
}
