package viz

import "strings"

const brailleBlank = 0x2800

// brailleBits maps a dot inside a cell, indexed [y%4][x%2], to its bit in
// the U+2800 block.
var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells addressed by dot. Each cell holds two
// columns and four rows of dots.
type Canvas struct {
	Cols, Rows int
	cells      []uint8
}

func NewCanvas(cols, rows int) *Canvas {
	return &Canvas{Cols: cols, Rows: rows, cells: make([]uint8, cols*rows)}
}

// DotWidth and DotHeight give the canvas size in dots.
func (c *Canvas) DotWidth() int  { return c.Cols * 2 }
func (c *Canvas) DotHeight() int { return c.Rows * 4 }

func (c *Canvas) cell(x, y int) (int, uint8, bool) {
	if x < 0 || y < 0 || x >= c.DotWidth() || y >= c.DotHeight() {
		return 0, 0, false
	}
	return (y/4)*c.Cols + x/2, brailleBits[y%4][x%2], true
}

// Set marks the dot at (x, y); dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if i, bit, ok := c.cell(x, y); ok {
		c.cells[i] |= bit
	}
}

func (c *Canvas) Dot(x, y int) bool {
	i, bit, ok := c.cell(x, y)
	return ok && c.cells[i]&bit != 0
}

func (c *Canvas) Clear() {
	clear(c.cells)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Rows; row++ {
		for _, bits := range c.cells[row*c.Cols : (row+1)*c.Cols] {
			b.WriteRune(rune(brailleBlank + int(bits)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
