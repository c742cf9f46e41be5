package formatter

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Wrap greedily wraps text to width display columns. Runs of whitespace
// collapse to one space and newlines start a new paragraph. A word wider
// than width gets a line of its own and is never split. Width <= 0
// disables wrapping. Empty text yields no lines.
func Wrap(s string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			continue
		}
		if width <= 0 {
			lines = append(lines, strings.Join(words, " "))
			continue
		}

		line := words[0]
		lineWidth := text.RuneWidthWithoutEscSequences(line)
		for _, w := range words[1:] {
			ww := text.RuneWidthWithoutEscSequences(w)
			if lineWidth+1+ww <= width {
				line += " " + w
				lineWidth += 1 + ww
				continue
			}
			lines = append(lines, line)
			line, lineWidth = w, ww
		}
		lines = append(lines, line)
	}
	// Trailing blank paragraphs carry no content.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
