package textflow

import (
	"iter"
	"slices"
	"strings"
)

// Lines returns the wrapped lines of text for the given width. The sequence
// is lazy and can be ranged over any number of times.
//
// Breaks happen at spaces; "\n" forces a break and an empty input line
// yields an empty output line. A word wider than width is emitted alone on
// its own line rather than split.
func Lines(text string, width float64, font Font, m Measurer) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, para := range strings.Split(text, "\n") {
			if !wrapParagraph(para, width, font, m, yield) {
				return
			}
		}
	}
}

// Wrap collects Lines into a slice.
func Wrap(text string, width float64, font Font, m Measurer) []string {
	return slices.Collect(Lines(text, width, font, m))
}

func wrapParagraph(para string, width float64, font Font, m Measurer, yield func(string) bool) bool {
	words := strings.Fields(para)
	if len(words) == 0 {
		return yield("")
	}
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if m.Measure(candidate, font) <= width {
			line = candidate
			continue
		}
		if !yield(line) {
			return false
		}
		line = w
	}
	return yield(line)
}
