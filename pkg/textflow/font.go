// Package textflow wraps text into lines that fit a content width.
//
// Widths are in millimetres and come from a Measurer, so the wrapping logic
// does not depend on any particular metrics source or rendering backend.
package textflow

// Style is a font weight/slant combination.
type Style string

const (
	Regular Style = ""
	Bold    Style = "B"
	Italic  Style = "I"
)

// Font identifies a face and size in points.
type Font struct {
	Family string
	Style  Style
	Size   float64
}

// Measurer estimates the rendered width of text in millimetres.
type Measurer interface {
	Measure(text string, font Font) float64
}

// MeasureFunc adapts a function to the Measurer interface.
type MeasureFunc func(text string, font Font) float64

func (f MeasureFunc) Measure(text string, font Font) float64 { return f(text, font) }

// PointsToMM converts a size in points to millimetres.
const PointsToMM = 25.4 / 72

// CharWidths is a per-character width table in thousandths of an em,
// covering printable ASCII (32..126). Other runes use Fallback.
type CharWidths struct {
	Widths   [95]int
	Fallback int
}

// Metrics is a Measurer backed by one width table per style.
type Metrics map[Style]*CharWidths

// Measure implements Measurer. Unknown styles fall back to Regular.
func (m Metrics) Measure(text string, font Font) float64 {
	table, ok := m[font.Style]
	if !ok {
		table = m[Regular]
	}
	units := 0
	for _, r := range text {
		if r >= 32 && r <= 126 {
			units += table.Widths[r-32]
		} else {
			units += table.Fallback
		}
	}
	return float64(units) * font.Size / 1000 * PointsToMM
}

// Helvetica carries the Adobe core-font metrics for Helvetica and
// Helvetica-Bold; the oblique face shares the regular widths.
var Helvetica = Metrics{
	Regular: &helveticaRegular,
	Bold:    &helveticaBold,
	Italic:  &helveticaRegular,
}

var helveticaRegular = CharWidths{
	Fallback: 556,
	Widths: [95]int{
		// space ! " # $ % & ' ( ) * + , - . /
		278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278,
		// 0-9
		556, 556, 556, 556, 556, 556, 556, 556, 556, 556,
		// : ; < = > ? @
		278, 278, 584, 584, 584, 556, 1015,
		// A-Z
		667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833,
		722, 778, 667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611,
		// [ \ ] ^ _ `
		278, 278, 278, 469, 556, 333,
		// a-z
		556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833,
		556, 556, 556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500,
		// { | } ~
		334, 260, 334, 584,
	},
}

var helveticaBold = CharWidths{
	Fallback: 611,
	Widths: [95]int{
		278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333, 278, 278,
		556, 556, 556, 556, 556, 556, 556, 556, 556, 556,
		333, 333, 584, 584, 584, 611, 975,
		722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833,
		722, 778, 667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611,
		333, 278, 333, 584, 556, 333,
		556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889,
		611, 611, 611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500,
		389, 280, 389, 584,
	},
}
