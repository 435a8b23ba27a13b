package modules

import (
	"context"

	"github.com/renato0307/lmtt/internal/config"
	"github.com/renato0307/lmtt/internal/logging"
	"github.com/renato0307/lmtt/internal/scheme"
)

// Wofi reads the shared colours CSS on every launch, so no reload is needed
type Wofi struct {
	Base
}

func NewWofi() *Wofi {
	return &Wofi{Base: newBase("wofi", "wofi", DefaultPriority)}
}

func (m *Wofi) Description() string { return "Wofi launcher CSS colors" }

func (m *Wofi) Apply(ctx context.Context, s *scheme.ColorScheme, cfg *config.Config) error {
	path, err := writeColorsCSS(s)
	if err != nil {
		return err
	}
	logging.Module(m.Name()).Info("updated colors", "path", path)
	return nil
}

func (m *Wofi) ConfigFiles() ([]ConfigFileInfo, error) {
	return styleConfigFiles("wofi", "Import lmtt colors into Wofi CSS")
}
