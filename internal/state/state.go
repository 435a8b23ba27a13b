// Package state persists the current theme mode and caches generated
// palettes between runs.
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/renato0307/lmtt/internal/errs"
	"github.com/renato0307/lmtt/internal/logging"
	"github.com/renato0307/lmtt/internal/scheme"
)

const (
	stateFile   = "theme_state"
	palettesDir = "palettes"
)

// Store reads and writes files under a cache directory
type Store struct {
	Dir string
}

// New returns a Store rooted at dir
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// Mode returns the persisted mode. A missing or unreadable state file reads
// as dark.
func (s *Store) Mode() scheme.Mode {
	data, err := os.ReadFile(filepath.Join(s.Dir, stateFile))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.Warn("failed to read theme state", "error", err)
		}
		return scheme.Dark
	}
	mode, err := scheme.ParseMode(string(data))
	if err != nil {
		logging.Warn("ignoring corrupt theme state", "content", strings.TrimSpace(string(data)))
		return scheme.Dark
	}
	return mode
}

// SetMode persists mode
func (s *Store) SetMode(mode scheme.Mode) error {
	return s.write(filepath.Join(s.Dir, stateFile), []byte(mode.String()))
}

// PaletteKey identifies a generated palette by wallpaper content, scheme
// type and mode. Returns an error when the wallpaper cannot be read.
func PaletteKey(wallpaper, schemeType string, mode scheme.Mode) (string, error) {
	f, err := os.Open(wallpaper)
	if err != nil {
		return "", errs.IO("open wallpaper", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errs.IO("hash wallpaper", err)
	}
	return fmt.Sprintf("%s-%s-%s", hex.EncodeToString(h.Sum(nil)), sanitize(schemeType), mode), nil
}

// Palette returns a cached palette for key
func (s *Store) Palette(key string) (map[string]string, bool) {
	data, err := os.ReadFile(s.palettePath(key))
	if err != nil {
		return nil, false
	}
	var colors map[string]string
	if err := json.Unmarshal(data, &colors); err != nil || len(colors) == 0 {
		logging.Debug("discarding unreadable palette cache entry", "key", key)
		return nil, false
	}
	return colors, true
}

// SavePalette stores colors under key
func (s *Store) SavePalette(key string, colors map[string]string) error {
	data, err := json.MarshalIndent(colors, "", "  ")
	if err != nil {
		return errs.IO("encode palette", err)
	}
	return s.write(s.palettePath(key), data)
}

func (s *Store) palettePath(key string) string {
	return filepath.Join(s.Dir, palettesDir, key+".json")
}

func (s *Store) write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errs.IO("create cache directory", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errs.IO("write "+path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errs.IO("write "+path, err)
	}
	return nil
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == os.PathSeparator || r == ' ' {
			return '_'
		}
		return r
	}, s)
}
