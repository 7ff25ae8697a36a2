package layout

import (
	"github.com/agriance/contractgen/pkg/canvas"
	"github.com/agriance/contractgen/pkg/textflow"
)

// Column describes one table column. Widths are relative weights; a zero
// weight counts as 1.
type Column struct {
	Title  string
	Weight float64
	Align  canvas.Align
	Bold   bool
}

// Table is a bordered grid that is never split across pages. Cell text
// that does not fit its column wraps, and the row grows to its tallest
// cell.
type Table struct {
	Columns []Column
	Rows    [][]string
	// Header draws the column titles as a filled first row.
	Header      bool
	RowHeight   float64
	Striped     bool
	BoldLastRow bool
	SpaceAfter  float64
}

const (
	defaultRowHeight = 6.5
	headerRowHeight  = 7
	tableFontSize    = 9
	tableLineHeight  = 4.5
	tableCellPad     = 2
)

func (t Table) rowHeight() float64 {
	if t.RowHeight > 0 {
		return t.RowHeight
	}
	return defaultRowHeight
}

// Height is the total drawn height in env, excluding SpaceAfter.
func (t Table) Height(env Env) float64 {
	_, heights := t.layout(env, t.widths(env.Width))
	return t.total(heights)
}

func (t Table) total(rowHeights []float64) float64 {
	h := 0.0
	for _, rh := range rowHeights {
		h += rh
	}
	if t.Header {
		h += headerRowHeight
	}
	return h
}

func (t Table) cellFont(col Column, last bool) textflow.Font {
	if col.Bold || (last && t.BoldLastRow) {
		return Font(textflow.Bold, tableFontSize)
	}
	return Font(textflow.Regular, tableFontSize)
}

// layout wraps every cell to its column and returns the lines per cell
// together with each row's height.
func (t Table) layout(env Env, widths []float64) ([][][]string, []float64) {
	cells := make([][][]string, len(t.Rows))
	heights := make([]float64, len(t.Rows))
	for r, row := range t.Rows {
		last := r == len(t.Rows)-1
		cells[r] = make([][]string, len(t.Columns))
		heights[r] = t.rowHeight()
		for i, col := range t.Columns {
			if i >= len(row) || row[i] == "" {
				continue
			}
			lines := textflow.Wrap(row[i], widths[i]-textPad, t.cellFont(col, last), env.Measurer)
			cells[r][i] = lines
			if h := float64(len(lines))*tableLineHeight + tableCellPad; h > heights[r] {
				heights[r] = h
			}
		}
	}
	return cells, heights
}

func (t Table) widths(total float64) []float64 {
	sum := 0.0
	weights := make([]float64, len(t.Columns))
	for i, col := range t.Columns {
		weights[i] = col.Weight
		if weights[i] <= 0 {
			weights[i] = 1
		}
		sum += weights[i]
	}
	for i := range weights {
		weights[i] = weights[i] / sum * total
	}
	return weights
}

func (Table) Atomic() bool { return true }

func (t Table) Units(env Env) []Unit {
	if len(t.Columns) == 0 {
		return nil
	}
	widths := t.widths(env.Width)
	cells, heights := t.layout(env, widths)
	return []Unit{{
		Height: t.total(heights),
		After:  t.SpaceAfter,
		Draw: func(c *canvas.Canvas, y float64) {
			t.draw(c, env, widths, cells, heights, y)
		},
	}}
}

func (t Table) draw(c *canvas.Canvas, env Env, widths []float64, cells [][][]string, heights []float64, y float64) {
	c.SetLineWidth(0.2)
	if t.Header {
		c.SetFont(Font(textflow.Bold, tableFontSize))
		c.SetFillColor(Accent)
		c.SetDrawColor(Accent)
		c.SetTextColor(canvas.White)
		x := env.Left
		for i, col := range t.Columns {
			c.SetXY(x, y)
			c.Cell(widths[i], headerRowHeight, col.Title, canvas.CellOptions{Border: "1", Fill: true, Align: col.Align})
			x += widths[i]
		}
		y += headerRowHeight
	}

	c.SetDrawColor(Rule)
	c.SetFillColor(Shade)
	c.SetTextColor(canvas.Black)
	for r := range t.Rows {
		last := r == len(t.Rows)-1
		rh := heights[r]
		x := env.Left
		for i, col := range t.Columns {
			c.SetFont(t.cellFont(col, last))
			c.SetXY(x, y)
			opts := canvas.CellOptions{Border: "1", Fill: t.Striped && r%2 == 1, Align: col.Align}
			switch lines := cells[r][i]; len(lines) {
			case 0:
				c.Cell(widths[i], rh, "", opts)
			case 1:
				c.Cell(widths[i], rh, lines[0], opts)
			default:
				c.Cell(widths[i], rh, "", opts)
				c.SetXY(x, y+(rh-float64(len(lines))*tableLineHeight)/2)
				c.TextBlock(widths[i], tableLineHeight, lines, col.Align)
			}
			x += widths[i]
		}
		y += rh
	}
	c.SetDrawColor(canvas.Black)
}
