package modules

import (
	"os"
	"path/filepath"

	"github.com/renato0307/lmtt/internal/errs"
	"github.com/renato0307/lmtt/internal/scheme"
)

// cssImportLine is injected into style.css of the CSS-driven applications.
// The path is relative to $XDG_CONFIG_HOME/<app>/.
const cssImportLine = "@import url('../matugen/lmtt-colors.css');"

// colorsCSSPath is the shared GTK CSS colours file
func colorsCSSPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errs.Config("locate config directory", err)
	}
	return filepath.Join(dir, "matugen", "lmtt-colors.css"), nil
}

// writeColorsCSS renders s to the shared colours file and returns its path.
// Several modules write it concurrently with identical content.
func writeColorsCSS(s *scheme.ColorScheme) (string, error) {
	path, err := colorsCSSPath()
	if err != nil {
		return "", err
	}
	return path, writeFileAtomic(path, []byte(s.ToGTKCSS()))
}

// styleConfigFiles returns the info for $XDG_CONFIG_HOME/<app>/style.css,
// or nothing when the file does not exist
func styleConfigFiles(app, description string) ([]ConfigFileInfo, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, errs.Config("locate config directory", err)
	}
	var infos []ConfigFileInfo
	for _, path := range existingFiles(filepath.Join(dir, app, "style.css")) {
		infos = append(infos, NewConfigFileInfo(path, cssImportLine, description))
	}
	return infos, nil
}

// writeFileAtomic writes through a unique temporary file in the target
// directory and renames it into place
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.IO("create "+dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errs.IO("write "+path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errs.IO("write "+path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return errs.IO("write "+path, err)
	}
	if err := tmp.Close(); err != nil {
		return errs.IO("write "+path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errs.IO("write "+path, err)
	}
	return nil
}
