package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

// colorStyles holds the terminal colors of the palette.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorRed:        lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	core.ColorPink:       lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
	core.ColorCyan:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
	core.ColorOrange:     lipgloss.NewStyle().Foreground(lipgloss.Color("215")),
	core.ColorYellow:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	core.ColorBlue:       lipgloss.NewStyle().Foreground(lipgloss.Color("21")),
	core.ColorBrightBlue: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	core.ColorWhite:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGreen:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorPeach:      lipgloss.NewStyle().Foreground(lipgloss.Color("223")),
	core.ColorGray:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

func styleFor(c core.Color) lipgloss.Style {
	if st, ok := colorStyles[c]; ok {
		return st
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen turns the screen buffer into styled terminal text. Runs of
// cells sharing a color are rendered with one style call.
func RenderScreen(s *core.Screen) string {
	w, h := s.Width(), s.Height()
	var out strings.Builder
	out.Grow(w*h*2 + h)

	run := make([]rune, 0, w)
	for y := range h {
		if y > 0 {
			out.WriteByte('\n')
		}
		run = run[:0]
		color := s.GetCell(0, y).Color
		for x := range w {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				out.WriteString(styleFor(color).Render(string(run)))
				run, color = run[:0], cell.Color
			}
			run = append(run, cell.Rune)
		}
		if len(run) > 0 {
			out.WriteString(styleFor(color).Render(string(run)))
		}
	}
	return out.String()
}
