package scheme

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatError reports a colour value that is not 6 hex digits
type FormatError struct {
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid hex color %q: want 6 hex digits", e.Value)
}

// ParseHex validates a colour and returns it with a leading '#'.
// Input is case-insensitive; the digits keep their original case.
func ParseHex(value string) (string, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(digits) != 6 {
		return "", &FormatError{Value: value}
	}
	for _, c := range digits {
		if !isHexDigit(c) {
			return "", &FormatError{Value: value}
		}
	}
	return "#" + digits, nil
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// HexToRGB converts "#rrggbb" to its channel values
func HexToRGB(value string) (r, g, b uint8, err error) {
	hex, err := ParseHex(value)
	if err != nil {
		return 0, 0, 0, err
	}
	n, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, &FormatError{Value: value}
	}
	return uint8(n >> 16), uint8(n >> 8), uint8(n), nil
}

// RGBString renders a colour as "r,g,b"
func RGBString(value string) (string, error) {
	r, g, b, err := HexToRGB(value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d,%d,%d", r, g, b), nil
}

// AccentColor maps a colour to the closest GNOME accent-color name
func AccentColor(value string) (string, error) {
	r, g, b, err := HexToRGB(value)
	if err != nil {
		return "", err
	}
	ri, gi, bi := int(r), int(g), int(b)

	hi := max(ri, gi, bi)
	lo := min(ri, gi, bi)
	if hi-lo < 30 {
		return "slate", nil
	}

	switch {
	case ri >= gi && ri >= bi:
		if gi > bi+30 {
			return "orange", nil
		}
		if bi > gi+30 {
			return "pink", nil
		}
		return "red", nil
	case gi >= ri && gi >= bi:
		if bi > ri+20 {
			return "teal", nil
		}
		if ri > bi+20 {
			return "yellow", nil
		}
		return "green", nil
	default:
		if ri > gi+20 {
			return "purple", nil
		}
		if gi > ri+20 {
			return "teal", nil
		}
		return "blue", nil
	}
}
