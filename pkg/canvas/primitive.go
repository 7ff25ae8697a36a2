package canvas

import "github.com/agriance/contractgen/pkg/textflow"

// Color is an RGB triple, 0-255 per channel.
type Color struct{ R, G, B int }

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// Align is the horizontal alignment of text inside a cell.
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Kind tags a Primitive.
type Kind int

const (
	KindCell Kind = iota
	KindTextBlock
	KindLine
	KindRect
)

func (k Kind) String() string {
	switch k {
	case KindCell:
		return "cell"
	case KindTextBlock:
		return "text"
	case KindLine:
		return "line"
	case KindRect:
		return "rect"
	}
	return "unknown"
}

// Primitive is one recorded drawing call together with the context it was
// drawn with.
type Primitive struct {
	Kind Kind

	X, Y, W, H float64
	// X2/Y2 is the end point of a line.
	X2, Y2 float64

	Text       string
	Lines      []string
	LineHeight float64
	Align      Align
	Border     string
	Fill       bool

	Font      textflow.Font
	TextColor Color
	FillColor Color
	DrawColor Color
	LineWidth float64
}

// Bottom is the lowest y coordinate the primitive touches.
func (p Primitive) Bottom() float64 {
	switch p.Kind {
	case KindLine:
		return max(p.Y, p.Y2)
	case KindTextBlock:
		return p.Y + float64(len(p.Lines))*p.LineHeight
	}
	return p.Y + p.H
}
