package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/midgard-sr/pkg/color"
)

// ParseColor parses "#RRGGBB" or "#AARRGGBB" into a packed color. Six-digit
// colors are opaque.
func ParseColor(s string) (color.ARGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v |= 0xFF000000
	}
	return color.ARGB(v), nil
}
