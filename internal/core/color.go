package core

import "strings"

// Color is a foreground color for a screen cell. The platform layer maps each
// value to an ANSI 256-color code.
type Color uint8

// Palette used by the maze renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorPink
	ColorCyan
	ColorOrange
	ColorYellow
	ColorBlue
	ColorBrightBlue
	ColorWhite
	ColorGreen
	ColorPeach
	ColorGray
)

var colorNames = map[string]Color{
	"default": ColorDefault,
	"red":     ColorRed,
	"pink":    ColorPink,
	"cyan":    ColorCyan,
	"orange":  ColorOrange,
	"yellow":  ColorYellow,
	"blue":    ColorBlue,
	"navy":    ColorBlue,
	"bright":  ColorBrightBlue,
	"white":   ColorWhite,
	"green":   ColorGreen,
	"peach":   ColorPeach,
	"gray":    ColorGray,
	"grey":    ColorGray,
}

// ParseColor maps a color name from a map file to a palette entry.
// Unknown names resolve to ColorDefault with ok == false.
func ParseColor(name string) (c Color, ok bool) {
	c, ok = colorNames[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}
