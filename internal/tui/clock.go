package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// glyphs holds 5x5 block digits for the big clock.
var glyphs = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	'-': {"     ", "     ", "█████", "     ", "     "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// renderBigClock renders text such as "44:59" in block digits.
func renderBigClock(text string, fill string) string {
	var lines [5]strings.Builder
	first := true
	for _, char := range text {
		glyph, ok := glyphs[char]
		if !ok {
			continue
		}
		for i := range lines {
			if !first {
				lines[i].WriteString(" ")
			}
			lines[i].WriteString(glyph[i])
		}
		first = false
	}

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(fill)).
		Bold(true)

	rendered := make([]string, len(lines))
	for i := range lines {
		rendered[i] = style.Render(lines[i].String())
	}
	return strings.Join(rendered, "\n")
}
