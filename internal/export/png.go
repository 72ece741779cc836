package export

import (
	"image/png"
	"io"
	"os"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
)

func WritePNG(w io.Writer, f *dynamo.Field, scale int) error {
	return png.Encode(w, Image(f, scale))
}

func SavePNG(path string, f *dynamo.Field, scale int) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePNG(out, f, scale); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
