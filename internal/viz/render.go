package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/export"
)

// RenderMode selects how the field is drawn in the terminal.
type RenderMode int

const (
	// ShadeMode uses upper half blocks with a foreground and background
	// colour, two cells per character.
	ShadeMode RenderMode = iota
	// RampMode prints an ASCII density ramp and needs no colour support.
	RampMode
	// ContourMode marks cells where U falls below ContourLevel on a Braille
	// canvas, eight cells per character.
	ContourMode
)

// ContourLevel is the U threshold that outlines spots and stripes.
const ContourLevel = 0.5

var modeNames = []string{"shade", "ramp", "contour"}

func (r RenderMode) String() string {
	if int(r) < len(modeNames) {
		return modeNames[r]
	}
	return "unknown"
}

func (r RenderMode) Next() RenderMode {
	return RenderMode((int(r) + 1) % len(modeNames))
}

const ramp = " .:-=+*#%@"

// blockSize is the number of cells averaged into one sample so that a field
// of n cells fits in cols×rows samples.
func blockSize(n, cols, rows int) int {
	s := 1
	for (n+s-1)/s > cols || (n+s-1)/s > rows {
		s++
	}
	return s
}

// sample averages U over s×s blocks. The result is indexed [y][x] with x
// running along i, matching the exported images.
func sample(f *dynamo.Field, s int) [][]float64 {
	m := (f.N + s - 1) / s
	out := make([][]float64, m)
	for y := 0; y < m; y++ {
		out[y] = make([]float64, m)
		for x := 0; x < m; x++ {
			sum, count := 0.0, 0
			for i := x * s; i < min((x+1)*s, f.N); i++ {
				for j := y * s; j < min((y+1)*s, f.N); j++ {
					sum += f.U[f.Index(i, j)]
					count++
				}
			}
			out[y][x] = sum / float64(count)
		}
	}
	return out
}

// Shader draws fields in ShadeMode and caches one style per colour pair.
type Shader struct {
	theme  Theme
	levels int
	styles map[[2]uint8]lipgloss.Style
}

// NewShader quantises the gray range to levels steps to bound the cache.
func NewShader(theme Theme, levels int) *Shader {
	if levels < 2 || levels > 256 {
		levels = 32
	}
	return &Shader{theme: theme, levels: levels, styles: make(map[[2]uint8]lipgloss.Style)}
}

func (s *Shader) quantise(u float64) uint8 {
	g := int(export.Shade(u))
	step := 256 / s.levels
	return uint8(min(g/step*step+step/2, 255))
}

func (s *Shader) style(top, bottom uint8) lipgloss.Style {
	key := [2]uint8{top, bottom}
	st, ok := s.styles[key]
	if !ok {
		st = lipgloss.NewStyle().
			Foreground(s.theme.Color(top)).
			Background(s.theme.Color(bottom))
		s.styles[key] = st
	}
	return st
}

// Render fits the field into cols×rows characters.
func (s *Shader) Render(f *dynamo.Field, cols, rows int) string {
	grid := sample(f, blockSize(f.N, cols, rows*2))
	var b strings.Builder
	for y := 0; y < len(grid); y += 2 {
		for x := range grid[y] {
			top := s.quantise(grid[y][x])
			bottom := top
			if y+1 < len(grid) {
				bottom = s.quantise(grid[y+1][x])
			}
			b.WriteString(s.style(top, bottom).Render("▀"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderRamp fits the field into cols×rows characters of the ASCII ramp.
// Terminal cells are about twice as tall as wide, so only every second
// sample row is printed.
func RenderRamp(f *dynamo.Field, cols, rows int) string {
	grid := sample(f, blockSize(f.N, cols, rows*2))
	var b strings.Builder
	for y := 0; y < len(grid); y += 2 {
		for _, u := range grid[y] {
			g := int(export.Shade(u))
			b.WriteByte(ramp[g*(len(ramp)-1)/255])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderContour plots every sample below ContourLevel on a Braille canvas of
// at most cols×rows characters.
func RenderContour(f *dynamo.Field, cols, rows int) string {
	grid := sample(f, blockSize(f.N, cols*2, rows*4))
	m := len(grid)
	c := NewCanvas((m+1)/2, (m+3)/4)
	for y := range grid {
		for x, u := range grid[y] {
			if u < ContourLevel {
				c.Set(x, y)
			}
		}
	}
	return c.String()
}
