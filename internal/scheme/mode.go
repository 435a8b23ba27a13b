package scheme

import (
	"fmt"
	"strings"
)

// Mode is the top-level theme variant
type Mode int

const (
	Dark Mode = iota
	Light
)

func (m Mode) String() string {
	if m == Light {
		return "light"
	}
	return "dark"
}

// Opposite returns the other mode
func (m Mode) Opposite() Mode {
	if m == Light {
		return Dark
	}
	return Light
}

// ParseMode parses "light" or "dark", case-insensitive
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return Dark, fmt.Errorf("invalid mode %q (want light or dark)", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
