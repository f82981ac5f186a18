package meme

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// upper folds captions to upper case for wrapped (classic meme) rendering.
var upper = cases.Upper(language.English)

// WrapLines splits text into lines that each fit within maxWidth pixels when
// rendered with face, using greedy word filling. The text is upper-cased
// first. A single word wider than maxWidth still gets its own line; the
// result is never empty.
//
// This is only used when Options.Wrap is set; the default draw path renders
// captions on a single baseline.
func WrapLines(face font.Face, text string, maxWidth int) []string {
	words := strings.Fields(upper.String(text))
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		probe := line + " " + word
		if font.MeasureString(face, probe).Round() > maxWidth {
			lines = append(lines, line)
			line = word
			continue
		}
		line = probe
	}
	return append(lines, line)
}
