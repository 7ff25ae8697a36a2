package document

import (
	"fmt"

	"github.com/agriance/contractgen/pkg/canvas"
	"github.com/agriance/contractgen/pkg/layout"
	"github.com/agriance/contractgen/pkg/textflow"
)

const (
	// DocumentTitle is printed in the header band of every page.
	DocumentTitle = "AGRIANCE CONTRACT AGREEMENT"
	// DefaultPlatform is the footer label.
	DefaultPlatform = "Agriance - Agricultural Contract Platform"

	headerBand    = 30
	contentTop    = 38
	contentBottom = 278
	footerRule    = 280
	footerLine1   = 281.5
	footerLine2   = 286.5
	footerLine    = 5
)

// pageTemplate draws the header band and footer of the contract pages.
type pageTemplate struct {
	geometry    canvas.Geometry
	subtitle    string
	platform    string
	generatedAt string
}

func (pageTemplate) ContentTop() float64    { return contentTop }
func (pageTemplate) ContentBottom() float64 { return contentBottom }

func (t pageTemplate) Header(c *canvas.Canvas, _ int) {
	g := t.geometry
	c.SetFillColor(layout.Accent)
	c.FillRect(0, 0, g.Width, headerBand)

	c.SetTextColor(canvas.White)
	c.SetFont(layout.Font(textflow.Bold, 16))
	c.SetXY(g.Left, 8)
	c.Cell(g.ContentWidth(), 10, DocumentTitle, canvas.CellOptions{Align: canvas.AlignCenter})
	c.SetFont(layout.Font(textflow.Italic, 9))
	c.SetXY(g.Left, 18)
	c.Cell(g.ContentWidth(), 6, t.subtitle, canvas.CellOptions{Align: canvas.AlignCenter})
	c.SetTextColor(canvas.Black)
}

func (t pageTemplate) Footer(c *canvas.Canvas, page, total int) {
	g := t.geometry
	c.SetDrawColor(layout.Rule)
	c.SetLineWidth(0.2)
	c.HLine(g.Left, g.Width-g.Right, footerRule)

	c.SetFont(layout.Font(textflow.Italic, 8))
	c.SetTextColor(layout.Muted)
	c.SetXY(g.Left, footerLine1)
	c.Cell(g.ContentWidth(), footerLine, "Generated on "+t.generatedAt, canvas.CellOptions{Align: canvas.AlignCenter})
	c.SetXY(g.Left, footerLine2)
	c.Cell(g.ContentWidth()/2, footerLine, t.platform, canvas.CellOptions{})
	c.Cell(g.ContentWidth()/2, footerLine, fmt.Sprintf("Page %d of %d", page, total), canvas.CellOptions{Align: canvas.AlignRight})
	c.SetTextColor(canvas.Black)
	c.SetDrawColor(canvas.Black)
}
