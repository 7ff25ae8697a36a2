package canvas

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// FPDFBackend serializes a Document as PDF using go-pdf/fpdf. Output is
// byte-for-byte reproducible for identical documents: the creation and
// modification dates come from Metadata.CreatedAt and catalog entries are
// sorted.
type FPDFBackend struct {
	// Compress enables stream compression. Defaults to true via NewFPDFBackend.
	Compress bool
	// CellMargin is the horizontal text padding inside cells, in mm.
	CellMargin float64
}

// NewFPDFBackend returns a backend with compression on and a 1mm cell margin.
func NewFPDFBackend() *FPDFBackend {
	return &FPDFBackend{Compress: true, CellMargin: 1}
}

// Render implements Backend.
func (b *FPDFBackend) Render(doc *Document) ([]byte, error) {
	g := doc.Geometry
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: g.Width, Ht: g.Height},
	})
	pdf.SetMargins(g.Left, g.Top, g.Right)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(b.CellMargin)
	pdf.SetCompression(b.Compress)
	pdf.SetCatalogSort(true)

	created := doc.Meta.CreatedAt
	if created.IsZero() {
		created = time.Unix(0, 0).UTC()
	}
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.SetTitle(doc.Meta.Title, true)
	pdf.SetSubject(doc.Meta.Subject, true)
	pdf.SetAuthor(doc.Meta.Author, true)
	pdf.SetCreator(doc.Meta.Creator, true)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, p := range page.Primitives {
			replay(pdf, tr, p)
		}
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("failed to draw page %d: %w", page.Index+1, err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func replay(pdf *fpdf.Fpdf, tr func(string) string, p Primitive) {
	pdf.SetDrawColor(p.DrawColor.R, p.DrawColor.G, p.DrawColor.B)
	pdf.SetFillColor(p.FillColor.R, p.FillColor.G, p.FillColor.B)
	pdf.SetTextColor(p.TextColor.R, p.TextColor.G, p.TextColor.B)
	pdf.SetLineWidth(p.LineWidth)

	switch p.Kind {
	case KindCell:
		pdf.SetFont(p.Font.Family, string(p.Font.Style), p.Font.Size)
		pdf.SetXY(p.X, p.Y)
		pdf.CellFormat(p.W, p.H, tr(p.Text), p.Border, 0, string(p.Align), p.Fill, 0, "")
	case KindTextBlock:
		pdf.SetFont(p.Font.Family, string(p.Font.Style), p.Font.Size)
		for i, line := range p.Lines {
			pdf.SetXY(p.X, p.Y+float64(i)*p.LineHeight)
			pdf.CellFormat(p.W, p.LineHeight, tr(line), "", 0, string(p.Align), false, 0, "")
		}
	case KindLine:
		pdf.Line(p.X, p.Y, p.X2, p.Y2)
	case KindRect:
		pdf.Rect(p.X, p.Y, p.W, p.H, "F")
	}
}
