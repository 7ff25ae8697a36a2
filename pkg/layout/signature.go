package layout

import (
	"strconv"
	"strings"

	"github.com/agriance/contractgen/pkg/canvas"
	"github.com/agriance/contractgen/pkg/textflow"
)

// Party is one signatory.
type Party struct {
	Role    string
	Details []string
}

// SignatureBlock is the execution area: one signing panel per party and
// an optional witness line. It is never split across pages.
type SignatureBlock struct {
	Parties   []Party
	Witnesses int
}

const (
	sigRoleHeight   = 8
	sigDetailHeight = 6
	sigLineSpace    = 18
	sigCaption      = 6
	sigPartyGap     = 8
	sigWitnessRow   = 8
	sigLineWidth    = 75
)

var sigDetailFont = Font(textflow.Regular, 10)

// details wraps each party's detail lines to the content width.
func (s SignatureBlock) details(env Env) [][]string {
	out := make([][]string, len(s.Parties))
	for i, p := range s.Parties {
		for _, d := range p.Details {
			out[i] = append(out[i], textflow.Wrap(d, env.Width-textPad, sigDetailFont, env.Measurer)...)
		}
	}
	return out
}

func (s SignatureBlock) height(details [][]string) float64 {
	h := 0.0
	for _, lines := range details {
		h += sigRoleHeight + float64(len(lines))*sigDetailHeight + sigLineSpace + sigCaption + sigPartyGap
	}
	if s.Witnesses > 0 {
		h += sigWitnessRow
	}
	return h
}

// Height is the total drawn height of the block in env.
func (s SignatureBlock) Height(env Env) float64 {
	return s.height(s.details(env))
}

func (SignatureBlock) Atomic() bool { return true }

func (s SignatureBlock) Units(env Env) []Unit {
	details := s.details(env)
	return []Unit{{
		Height: s.height(details),
		Draw: func(c *canvas.Canvas, y float64) {
			s.draw(c, env, details, y)
		},
	}}
}

func (s SignatureBlock) draw(c *canvas.Canvas, env Env, details [][]string, y float64) {
	for i, p := range s.Parties {
		c.SetFont(Font(textflow.Bold, 11))
		c.SetTextColor(Accent)
		c.SetXY(env.Left, y)
		c.Cell(env.Width, sigRoleHeight, p.Role, canvas.CellOptions{})
		y += sigRoleHeight

		c.SetFont(sigDetailFont)
		c.SetTextColor(canvas.Black)
		for _, line := range details[i] {
			c.SetXY(env.Left, y)
			c.Cell(env.Width, sigDetailHeight, line, canvas.CellOptions{})
			y += sigDetailHeight
		}

		y += sigLineSpace
		c.SetDrawColor(canvas.Black)
		c.SetLineWidth(0.3)
		c.HLine(env.Left, env.Left+sigLineWidth, y)
		c.SetXY(env.Left, y)
		c.Cell(sigLineWidth, sigCaption, "Signature", canvas.CellOptions{})
		c.Cell(env.Width-sigLineWidth, sigCaption, "Date: ____________", canvas.CellOptions{Align: canvas.AlignRight})
		y += sigCaption + sigPartyGap
	}

	if s.Witnesses > 0 {
		parts := make([]string, s.Witnesses)
		for i := range parts {
			parts[i] = "WITNESS " + strconv.Itoa(i+1) + ": _________________________"
		}
		c.SetFont(Font(textflow.Italic, 9))
		c.SetTextColor(Muted)
		c.SetXY(env.Left, y)
		c.Cell(env.Width, sigWitnessRow, strings.Join(parts, "     "), canvas.CellOptions{Align: canvas.AlignCenter})
		c.SetTextColor(canvas.Black)
	}
}
