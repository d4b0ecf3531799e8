package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseColor parses a tag type color given as "#RRGGBB", "0xRRGGBB" or a
// plain decimal integer.
// Example: "#FF8800" -> 16746496
func ParseColor(colorStr string) (int, error) {
	s := strings.TrimSpace(colorStr)

	base := 10
	switch {
	case strings.HasPrefix(s, "#"):
		s = s[1:]
		base = 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s = s[2:]
		base = 16
	}

	color, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse color %q: %w", colorStr, err)
	}
	if color < 0 || color > 0xFFFFFF {
		return 0, fmt.Errorf("color %q out of RGB range", colorStr)
	}
	return int(color), nil
}

// ColorToHexRGB formats a color integer as "#RRGGBB".
// Example: 16746496 -> "#FF8800"
func ColorToHexRGB(color int) string {
	return fmt.Sprintf("#%06X", color&0xFFFFFF)
}
