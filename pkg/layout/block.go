// Package layout places content blocks onto fixed-size pages of a
// canvas.Canvas, breaking pages where needed.
package layout

import (
	"fmt"

	"github.com/agriance/contractgen/pkg/canvas"
	"github.com/agriance/contractgen/pkg/textflow"
)

// Family is the font family every block draws with.
const Family = "Helvetica"

// textPad is the horizontal space a cell loses to the backend's cell margin
// on both sides.
const textPad = 2

var (
	Accent = canvas.Color{R: 26, G: 71, B: 42}
	Shade  = canvas.Color{R: 240, G: 246, B: 240}
	Rule   = canvas.Color{R: 180, G: 180, B: 180}
	Muted  = canvas.Color{R: 100, G: 100, B: 100}
)

// Font is a shorthand for a Helvetica face.
func Font(style textflow.Style, size float64) textflow.Font {
	return textflow.Font{Family: Family, Style: style, Size: size}
}

// Env describes the content column a block is laid out into.
type Env struct {
	Left     float64
	Width    float64
	Measurer textflow.Measurer
}

// Unit is the smallest piece of a block the engine places. Units are never
// split across pages.
type Unit struct {
	Height float64
	// After is vertical space added below the unit. It is not required to
	// fit on the page.
	After float64
	// KeepWithNext places the unit on the same page as the one after it.
	KeepWithNext bool
	// BreakBefore starts a new page unless the current one is empty.
	BreakBefore bool
	Draw        func(c *canvas.Canvas, y float64)

	block string
}

// Block is a piece of document content. An atomic block is always placed
// on a single page.
type Block interface {
	Units(env Env) []Unit
	Atomic() bool
}

// TitleBlock is a filled section heading bar.
type TitleBlock struct {
	Text        string
	BreakBefore bool
}

const (
	titleBar = 9
	titleGap = 4
)

func (TitleBlock) Atomic() bool { return true }

func (t TitleBlock) Units(env Env) []Unit {
	return []Unit{{
		Height:       titleBar,
		After:        titleGap,
		KeepWithNext: true,
		BreakBefore:  t.BreakBefore,
		Draw: func(c *canvas.Canvas, y float64) {
			c.SetFillColor(Accent)
			c.FillRect(env.Left, y, env.Width, titleBar)
			c.SetFont(Font(textflow.Bold, 11))
			c.SetTextColor(canvas.White)
			c.SetXY(env.Left+2, y)
			c.Cell(env.Width-4, titleBar, t.Text, canvas.CellOptions{})
			c.SetTextColor(canvas.Black)
		},
	}}
}

// Paragraph is wrapped text that may break between any two lines.
type Paragraph struct {
	Text       string
	Font       textflow.Font
	LineHeight float64
	Align      canvas.Align
	Color      canvas.Color
	Indent     float64
	SpaceAfter float64
}

func (Paragraph) Atomic() bool { return false }

func (p Paragraph) Units(env Env) []Unit {
	font := p.Font
	if font.Family == "" {
		font = Font(textflow.Regular, 10)
	}
	lh := p.LineHeight
	if lh == 0 {
		lh = 5.5
	}
	w := env.Width - p.Indent
	lines := textflow.Wrap(p.Text, w-textPad, font, env.Measurer)
	units := make([]Unit, len(lines))
	for i, line := range lines {
		units[i] = Unit{
			Height: lh,
			Draw: func(c *canvas.Canvas, y float64) {
				c.SetFont(font)
				c.SetTextColor(p.Color)
				c.SetXY(env.Left+p.Indent, y)
				c.TextBlock(w, lh, []string{line}, p.Align)
				c.SetTextColor(canvas.Black)
			},
		}
	}
	if n := len(units); n > 0 {
		units[n-1].After = p.SpaceAfter
	}
	return units
}

// Clause is one numbered heading with its body text.
type Clause struct {
	Heading string
	Body    string
}

// ClauseList renders numbered clauses. A heading always shares a page with
// the first line of its body.
type ClauseList struct {
	Items []Clause
}

const (
	clauseHeadingHeight = 6
	clauseLineHeight    = 4.5
	clauseIndent        = 5
	clauseGap           = 2
)

func (ClauseList) Atomic() bool { return false }

func (l ClauseList) Units(env Env) []Unit {
	var units []Unit
	for i, item := range l.Items {
		heading := fmt.Sprintf("%d. %s", i+1, item.Heading)
		units = append(units, Unit{
			Height:       clauseHeadingHeight,
			KeepWithNext: item.Body != "",
			Draw: func(c *canvas.Canvas, y float64) {
				c.SetFont(Font(textflow.Bold, 10))
				c.SetTextColor(Accent)
				c.SetXY(env.Left, y)
				c.Cell(env.Width, clauseHeadingHeight, heading, canvas.CellOptions{})
				c.SetTextColor(canvas.Black)
			},
		})
		if item.Body == "" {
			units[len(units)-1].After = clauseGap
			continue
		}
		body := Paragraph{
			Text:       item.Body,
			Font:       Font(textflow.Regular, 9),
			LineHeight: clauseLineHeight,
			Indent:     clauseIndent,
			SpaceAfter: clauseGap,
		}
		units = append(units, body.Units(env)...)
	}
	return units
}

// Spacer is empty vertical space. It is dropped at a page break.
type Spacer struct {
	Height float64
}

func (Spacer) Atomic() bool { return false }

func (s Spacer) Units(Env) []Unit {
	return []Unit{{After: s.Height, Draw: func(*canvas.Canvas, float64) {}}}
}
