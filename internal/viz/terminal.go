package viz

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"

	"github.com/san-kum/mandel/internal/palette"
)

var ErrFrameFull = errors.New("viz: more pixels than the header declared")

const halfBlock = "▀"

// Terminal is a render sink that draws two pixel rows per text line using
// the upper half block, top pixel as foreground and bottom as background.
type Terminal struct {
	width, height int
	pix           []palette.RGB
}

func NewTerminal() *Terminal {
	return &Terminal{}
}

func (t *Terminal) WriteHeader(width, height int) error {
	t.width, t.height = width, height
	n := width * height
	if cap(t.pix) < n {
		t.pix = make([]palette.RGB, 0, n)
	}
	t.pix = t.pix[:0]
	return nil
}

func (t *Terminal) WritePixel(c palette.RGB) error {
	if len(t.pix) >= t.width*t.height {
		return ErrFrameFull
	}
	t.pix = append(t.pix, c)
	return nil
}

// Lines is the number of text lines String produces.
func (t *Terminal) Lines() int {
	return (t.height + 1) / 2
}

func (t *Terminal) at(x, y int) (palette.RGB, bool) {
	i := y*t.width + x
	if y >= t.height || i >= len(t.pix) {
		return palette.RGB{}, false
	}
	return t.pix[i], true
}

func (t *Terminal) String() string {
	var b strings.Builder
	for y := 0; y < t.height; y += 2 {
		for x := 0; x < t.width; x++ {
			top, ok := t.at(x, y)
			if !ok {
				b.WriteByte(' ')
				continue
			}
			style := lipgloss.NewStyle().Foreground(hexOf(top))
			if bottom, ok := t.at(x, y+1); ok {
				style = style.Background(hexOf(bottom))
			}
			b.WriteString(style.Render(halfBlock))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func hexOf(c palette.RGB) lipgloss.Color {
	cf := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	return lipgloss.Color(cf.Hex())
}

// Dots is a render sink that marks interior (black) pixels on a braille
// canvas. Each text cell covers two by four pixels.
type Dots struct {
	canvas *Canvas
	width  int
	height int
	n      int
}

func NewDots() *Dots {
	return &Dots{}
}

func (d *Dots) WriteHeader(width, height int) error {
	d.width, d.height, d.n = width, height, 0
	d.canvas = NewCanvas((width+1)/2, (height+3)/4)
	return nil
}

func (d *Dots) WritePixel(c palette.RGB) error {
	if d.n >= d.width*d.height {
		return ErrFrameFull
	}
	if c == palette.Black {
		d.canvas.Set(d.n%d.width, d.n/d.width)
	}
	d.n++
	return nil
}

// Canvas is nil until a header has been written.
func (d *Dots) Canvas() *Canvas { return d.canvas }

func (d *Dots) String() string {
	if d.canvas == nil {
		return ""
	}
	return d.canvas.String()
}

// TerminalSize reports the size of stdout, or 80x24 when it is not a
// terminal.
func TerminalSize() (width, height int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80, 24
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
