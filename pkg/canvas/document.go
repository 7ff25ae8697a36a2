// Package canvas records drawing primitives page by page and serializes them
// through a Backend.
//
// All drawing state (font, colors, line width, cursor) lives in an explicit
// Context owned by one Canvas. Nothing is global, so independent canvases can
// be used from different goroutines.
package canvas

import "time"

// Geometry is the fixed page size and margins in millimetres.
type Geometry struct {
	Width, Height            float64
	Left, Top, Right, Bottom float64
}

// A4 is the only document size the generator produces.
var A4 = Geometry{Width: 210, Height: 297, Left: 10, Top: 10, Right: 10, Bottom: 10}

// ContentWidth is the printable width between the side margins.
func (g Geometry) ContentWidth() float64 { return g.Width - g.Left - g.Right }

// Metadata is written into the serialized document.
type Metadata struct {
	Title     string
	Subject   string
	Author    string
	Creator   string
	CreatedAt time.Time
}

// Page is one page of recorded primitives.
type Page struct {
	Index      int
	Primitives []Primitive
	Cursor     float64
}

// Document is the ordered page list owned by a Canvas.
type Document struct {
	Geometry  Geometry
	Meta      Metadata
	Pages     []*Page
	finalized bool
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return len(d.Pages) }

// Finalized reports whether the document has been serialized.
func (d *Document) Finalized() bool { return d.finalized }
