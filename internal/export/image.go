package export

import (
	"image"
	"image/color"
	"math"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
)

// Shade maps a U concentration onto a gray level: 0 is black, 1 and above is
// white.
func Shade(u float64) uint8 {
	if math.IsNaN(u) || u <= 0 {
		return 0
	}
	if u >= 1 {
		return 255
	}
	return uint8(math.Round(u * 255))
}

// GrayPalette is the 256-level palette used for animated output.
func GrayPalette() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return p
}

// Image draws U with each cell as a scale×scale block. Cell (i, j) lands at
// x = i, y = j.
func Image(f *dynamo.Field, scale int) *image.Gray {
	if scale < 1 {
		scale = 1
	}
	img := image.NewGray(image.Rect(0, 0, f.N*scale, f.N*scale))
	fillBlocks(f, scale, func(x, y int, g uint8) {
		img.Pix[img.PixOffset(x, y)] = g
	})
	return img
}

// Paletted is Image on GrayPalette, ready to be appended to a GIF.
func Paletted(f *dynamo.Field, scale int) *image.Paletted {
	if scale < 1 {
		scale = 1
	}
	img := image.NewPaletted(image.Rect(0, 0, f.N*scale, f.N*scale), GrayPalette())
	fillBlocks(f, scale, func(x, y int, g uint8) {
		img.Pix[img.PixOffset(x, y)] = g
	})
	return img
}

func fillBlocks(f *dynamo.Field, scale int, put func(x, y int, g uint8)) {
	for i := 0; i < f.N; i++ {
		for j := 0; j < f.N; j++ {
			g := Shade(f.U[f.Index(i, j)])
			for dx := 0; dx < scale; dx++ {
				for dy := 0; dy < scale; dy++ {
					put(i*scale+dx, j*scale+dy, g)
				}
			}
		}
	}
}
