package viz

import "strings"

const brailleBlank = 0x2800

// brailleDots maps a sub-cell (row, col) of a 2×4 Braille character onto
// its dot bit.
var brailleDots = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a dot matrix drawn with Braille characters. Each character holds
// two dots across and four down, so a Width×Height canvas addresses
// 2*Width × 4*Height dots.
type Canvas struct {
	Width, Height int
	cells         []rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([]rune, w*h)}
	for k := range c.cells {
		c.cells[k] = brailleBlank
	}
	return c
}

// Set lights the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return
	}
	c.cells[(y/4)*c.Width+x/2] |= brailleDots[y%4][x%2]
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		b.WriteString(string(c.cells[row*c.Width : (row+1)*c.Width]))
		b.WriteByte('\n')
	}
	return b.String()
}
