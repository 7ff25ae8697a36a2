package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agriance/contractgen/pkg/canvas"
)

// ErrFinalized is returned by an Engine that has already produced its
// document.
var ErrFinalized = errors.New("layout: engine already finalized")

// OverflowError reports a unit that cannot fit even an empty page.
type OverflowError struct {
	Block     string
	Height    float64
	Available float64
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("layout: %s needs %.1fmm but a page holds %.1fmm", e.Block, e.Height, e.Available)
}

// Template draws the fixed parts of every page.
type Template interface {
	// ContentTop and ContentBottom bound the area blocks are placed in.
	ContentTop() float64
	ContentBottom() float64
	Header(c *canvas.Canvas, page int)
	Footer(c *canvas.Canvas, page, total int)
}

// State is the engine lifecycle.
type State int

const (
	AwaitingContent State = iota
	Placing
	PageBreak
	Finalized
)

func (s State) String() string {
	switch s {
	case AwaitingContent:
		return "awaiting_content"
	case Placing:
		return "placing"
	case PageBreak:
		return "page_break"
	case Finalized:
		return "finalized"
	}
	return "unknown"
}

const epsilon = 1e-6

// Engine flows blocks down the content area of successive pages.
type Engine struct {
	c     *canvas.Canvas
	tpl   Template
	env   Env
	state State
	err   error

	y      float64
	placed int
	// held is a trailing run of keep-with-next units waiting for the next
	// block.
	held []Unit
}

// NewEngine returns an engine drawing onto c. The content column spans the
// canvas side margins.
func NewEngine(c *canvas.Canvas, tpl Template) *Engine {
	g := c.Geometry()
	return &Engine{
		c:   c,
		tpl: tpl,
		env: Env{Left: g.Left, Width: g.ContentWidth(), Measurer: c.Measurer()},
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Env returns the content column blocks are laid out into.
func (e *Engine) Env() Env { return e.env }

// Pages returns the number of pages started so far.
func (e *Engine) Pages() int { return e.c.PageCount() }

// Add places blocks in order. The first error stops the engine; later calls
// return the same error.
func (e *Engine) Add(blocks ...Block) error {
	if err := e.usable(); err != nil {
		return err
	}
	for _, b := range blocks {
		units := b.Units(e.env)
		if b.Atomic() && len(units) > 1 {
			units = []Unit{merge(units)}
		}
		name := blockName(b)
		for i := range units {
			units[i].block = name
		}
		e.held = append(e.held, units...)
		if err := e.flush(false); err != nil {
			e.err = err
			return err
		}
	}
	return nil
}

// Finish places any held units, stamps the footer on every page and
// serializes the canvas.
func (e *Engine) Finish() ([]byte, error) {
	if err := e.usable(); err != nil {
		return nil, err
	}
	if err := e.flush(true); err != nil {
		e.err = err
		return nil, err
	}
	if e.state == AwaitingContent {
		e.newPage()
	}
	total := e.c.PageCount()
	for i := range total {
		if err := e.c.SelectPage(i); err != nil {
			e.err = err
			return nil, err
		}
		e.tpl.Footer(e.c, i+1, total)
	}
	e.state = Finalized
	return e.c.Finalize()
}

func (e *Engine) usable() error {
	if e.state == Finalized {
		return ErrFinalized
	}
	return e.err
}

// flush places complete keep-with-next chains. A chain that still ends in a
// keep-with-next unit is held back unless final is set.
func (e *Engine) flush(final bool) error {
	units := e.held
	e.held = nil
	for i := 0; i < len(units); {
		j := i
		for j < len(units)-1 && units[j].KeepWithNext {
			j++
		}
		if units[j].KeepWithNext && !final {
			e.held = append(e.held, units[i:]...)
			return nil
		}
		if err := e.placeChain(units[i : j+1]); err != nil {
			return err
		}
		i = j + 1
	}
	return e.c.Err()
}

func (e *Engine) placeChain(chain []Unit) error {
	if e.state == AwaitingContent {
		e.newPage()
	}
	if chain[0].BreakBefore && e.placed > 0 {
		e.breakPage()
	}

	need := 0.0
	for i, u := range chain {
		need += u.Height
		if i < len(chain)-1 {
			need += u.After
		}
	}
	if !e.fits(need) && e.placed > 0 {
		e.breakPage()
	}
	if e.fits(need) {
		for _, u := range chain {
			e.place(u)
		}
		return nil
	}

	// The chain is taller than an empty page: place unit by unit.
	for _, u := range chain {
		if !e.fits(u.Height) {
			if e.placed > 0 {
				e.breakPage()
			}
			if !e.fits(u.Height) {
				return &OverflowError{
					Block:     u.block,
					Height:    u.Height,
					Available: e.tpl.ContentBottom() - e.tpl.ContentTop(),
				}
			}
		}
		e.place(u)
	}
	return nil
}

func (e *Engine) fits(h float64) bool {
	return e.y+h <= e.tpl.ContentBottom()+epsilon
}

func (e *Engine) place(u Unit) {
	// empty space never opens a page
	if u.Height == 0 && e.placed == 0 {
		return
	}
	u.Draw(e.c, e.y)
	e.y += u.Height + u.After
	e.placed++
}

func (e *Engine) newPage() {
	e.c.AddPage()
	e.tpl.Header(e.c, e.c.PageCount())
	e.y = e.tpl.ContentTop()
	e.placed = 0
	e.state = Placing
}

func (e *Engine) breakPage() {
	e.state = PageBreak
	e.newPage()
}

// merge joins units into one that draws them back to back.
func merge(units []Unit) Unit {
	m := Unit{
		BreakBefore:  units[0].BreakBefore,
		KeepWithNext: units[len(units)-1].KeepWithNext,
		After:        units[len(units)-1].After,
	}
	offsets := make([]float64, len(units))
	for i, u := range units {
		offsets[i] = m.Height
		m.Height += u.Height
		if i < len(units)-1 {
			m.Height += u.After
		}
	}
	m.Draw = func(c *canvas.Canvas, y float64) {
		for i, u := range units {
			u.Draw(c, y+offsets[i])
		}
	}
	return m
}

func blockName(b Block) string {
	name := fmt.Sprintf("%T", b)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
