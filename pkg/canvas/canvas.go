package canvas

import (
	"errors"
	"fmt"

	"github.com/agriance/contractgen/pkg/textflow"
)

var (
	// ErrNoPage is returned when drawing before the first AddPage.
	ErrNoPage = errors.New("canvas: no current page")
	// ErrFinalized is returned when a finalized canvas is used again.
	ErrFinalized = errors.New("canvas: document already finalized")
)

// RenderError wraps a backend serialization failure.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return "render failed: " + e.Err.Error() }

func (e *RenderError) Unwrap() error { return e.Err }

// Backend serializes a finished document.
type Backend interface {
	Render(doc *Document) ([]byte, error)
}

// Context is the drawing state applied to every primitive.
type Context struct {
	Font      textflow.Font
	TextColor Color
	FillColor Color
	DrawColor Color
	LineWidth float64
	X, Y      float64
}

// Ln says where the cursor goes after a Cell.
type Ln int

const (
	// LnRight leaves the cursor to the right of the cell.
	LnRight Ln = iota
	// LnNext moves to the left margin of the next line.
	LnNext
	// LnBelow moves below the cell, keeping x.
	LnBelow
)

// CellOptions controls Cell rendering.
type CellOptions struct {
	Border string // "" for none, "1" for a frame, or any of "LTRB"
	Fill   bool
	Align  Align
	Ln     Ln
}

// Canvas is a stateful drawing surface. It is not safe for concurrent use;
// each generation owns its own Canvas.
type Canvas struct {
	ctx      Context
	doc      *Document
	cur      *Page
	backend  Backend
	measurer textflow.Measurer
	err      error
}

// New returns an empty canvas with Helvetica 10pt black text.
func New(g Geometry, meta Metadata, backend Backend, m textflow.Measurer) *Canvas {
	return &Canvas{
		ctx: Context{
			Font:      textflow.Font{Family: "Helvetica", Size: 10},
			TextColor: Black,
			DrawColor: Black,
			FillColor: White,
			LineWidth: 0.2,
			X:         g.Left,
			Y:         g.Top,
		},
		doc:      &Document{Geometry: g, Meta: meta},
		backend:  backend,
		measurer: m,
	}
}

// Context returns a copy of the current drawing state.
func (c *Canvas) Context() Context { return c.ctx }

// Document returns the recorded document.
func (c *Canvas) Document() *Document { return c.doc }

// Geometry returns the page geometry.
func (c *Canvas) Geometry() Geometry { return c.doc.Geometry }

// Err returns the first error recorded by a drawing call.
func (c *Canvas) Err() error { return c.err }

// Page returns the current page, or nil before the first AddPage.
func (c *Canvas) Page() *Page { return c.cur }

// PageCount returns the number of pages added so far.
func (c *Canvas) PageCount() int { return len(c.doc.Pages) }

// AddPage appends a page, makes it current and moves the cursor to the top
// left margin.
func (c *Canvas) AddPage() *Page {
	if c.fail() {
		return nil
	}
	p := &Page{Index: len(c.doc.Pages)}
	c.doc.Pages = append(c.doc.Pages, p)
	c.cur = p
	c.ctx.X, c.ctx.Y = c.doc.Geometry.Left, c.doc.Geometry.Top
	return p
}

// SelectPage makes an existing page current, e.g. to stamp a footer after
// the content is laid out.
func (c *Canvas) SelectPage(index int) error {
	if c.fail() {
		return c.err
	}
	if index < 0 || index >= len(c.doc.Pages) {
		return fmt.Errorf("canvas: page %d out of range (have %d)", index, len(c.doc.Pages))
	}
	c.cur = c.doc.Pages[index]
	return nil
}

func (c *Canvas) SetFont(f textflow.Font) { c.ctx.Font = f }

func (c *Canvas) SetTextColor(col Color) { c.ctx.TextColor = col }

func (c *Canvas) SetFillColor(col Color) { c.ctx.FillColor = col }

func (c *Canvas) SetDrawColor(col Color) { c.ctx.DrawColor = col }

func (c *Canvas) SetLineWidth(w float64) { c.ctx.LineWidth = w }

// SetXY moves the cursor.
func (c *Canvas) SetXY(x, y float64) {
	c.ctx.X, c.ctx.Y = x, y
	if c.cur != nil {
		c.cur.Cursor = y
	}
}

// SetY moves the cursor to the left margin at y.
func (c *Canvas) SetY(y float64) { c.SetXY(c.doc.Geometry.Left, y) }

func (c *Canvas) X() float64 { return c.ctx.X }

func (c *Canvas) Y() float64 { return c.ctx.Y }

// Measure returns the width of text in the current font.
func (c *Canvas) Measure(text string) float64 {
	return c.measurer.Measure(text, c.ctx.Font)
}

// Measurer returns the width source used by the canvas.
func (c *Canvas) Measurer() textflow.Measurer { return c.measurer }

// Cell draws a fixed-size cell at the cursor. A zero width extends the cell
// to the right margin.
func (c *Canvas) Cell(w, h float64, text string, opts CellOptions) {
	if !c.ready() {
		return
	}
	if w == 0 {
		w = c.doc.Geometry.Width - c.doc.Geometry.Right - c.ctx.X
	}
	if opts.Align == "" {
		opts.Align = AlignLeft
	}
	p := c.snapshot(KindCell)
	p.X, p.Y, p.W, p.H = c.ctx.X, c.ctx.Y, w, h
	p.Text, p.Align, p.Border, p.Fill = text, opts.Align, opts.Border, opts.Fill
	c.append(p)

	switch opts.Ln {
	case LnRight:
		c.ctx.X += w
	case LnNext:
		c.SetXY(c.doc.Geometry.Left, c.ctx.Y+h)
	case LnBelow:
		c.SetXY(c.ctx.X, c.ctx.Y+h)
	}
}

// TextBlock draws pre-wrapped lines starting at the cursor and moves the
// cursor to the left margin below the last line.
func (c *Canvas) TextBlock(w, lineHeight float64, lines []string, align Align) {
	if !c.ready() {
		return
	}
	if w == 0 {
		w = c.doc.Geometry.Width - c.doc.Geometry.Right - c.ctx.X
	}
	if align == "" {
		align = AlignLeft
	}
	p := c.snapshot(KindTextBlock)
	p.X, p.Y, p.W = c.ctx.X, c.ctx.Y, w
	p.Lines = append([]string(nil), lines...)
	p.LineHeight, p.Align = lineHeight, align
	c.append(p)
	c.SetXY(c.doc.Geometry.Left, c.ctx.Y+float64(len(lines))*lineHeight)
}

// HLine draws a horizontal rule from x1 to x2 at y.
func (c *Canvas) HLine(x1, x2, y float64) {
	if !c.ready() {
		return
	}
	p := c.snapshot(KindLine)
	p.X, p.Y, p.X2, p.Y2 = x1, y, x2, y
	c.append(p)
}

// FillRect paints a rectangle with the fill color.
func (c *Canvas) FillRect(x, y, w, h float64) {
	if !c.ready() {
		return
	}
	p := c.snapshot(KindRect)
	p.X, p.Y, p.W, p.H, p.Fill = x, y, w, h, true
	c.append(p)
}

// Finalize serializes all pages through the backend. A canvas can be
// finalized once.
func (c *Canvas) Finalize() ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.doc.finalized {
		return nil, ErrFinalized
	}
	if len(c.doc.Pages) == 0 {
		return nil, ErrNoPage
	}
	c.doc.finalized = true
	out, err := c.backend.Render(c.doc)
	if err != nil {
		return nil, &RenderError{Err: err}
	}
	return out, nil
}

func (c *Canvas) snapshot(k Kind) Primitive {
	return Primitive{
		Kind:      k,
		Font:      c.ctx.Font,
		TextColor: c.ctx.TextColor,
		FillColor: c.ctx.FillColor,
		DrawColor: c.ctx.DrawColor,
		LineWidth: c.ctx.LineWidth,
	}
}

func (c *Canvas) append(p Primitive) {
	c.cur.Primitives = append(c.cur.Primitives, p)
}

func (c *Canvas) fail() bool {
	if c.err == nil && c.doc.finalized {
		c.err = ErrFinalized
	}
	return c.err != nil
}

func (c *Canvas) ready() bool {
	if c.fail() {
		return false
	}
	if c.cur == nil {
		c.err = ErrNoPage
		return false
	}
	return true
}
