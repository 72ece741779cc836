package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
)

var fieldHeader = []string{"i", "j", "u", "v"}

// WriteFieldCSV writes one row per cell: i, j, u, v.
func WriteFieldCSV(w io.Writer, f *dynamo.Field) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(fieldHeader); err != nil {
		return err
	}
	row := make([]string, 4)
	for i := 0; i < f.N; i++ {
		for j := 0; j < f.N; j++ {
			u, v := f.At(i, j)
			row[0] = strconv.Itoa(i)
			row[1] = strconv.Itoa(j)
			row[2] = strconv.FormatFloat(u, 'g', -1, 64)
			row[3] = strconv.FormatFloat(v, 'g', -1, 64)
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadFieldCSV parses the output of WriteFieldCSV. The grid size is inferred
// from the number of rows.
func ReadFieldCSV(r io.Reader) (*dynamo.Field, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("field csv: no cells")
	}
	cells := len(records) - 1
	n := int(math.Round(math.Sqrt(float64(cells))))
	if n*n != cells {
		return nil, fmt.Errorf("field csv: %d cells is not a square grid", cells)
	}
	f, err := dynamo.NewField(n)
	if err != nil {
		return nil, err
	}
	for line, rec := range records[1:] {
		if len(rec) != 4 {
			return nil, fmt.Errorf("field csv line %d: expected 4 columns, got %d", line+2, len(rec))
		}
		vals := make([]float64, 4)
		for c, s := range rec {
			vals[c], err = strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("field csv line %d: %w", line+2, err)
			}
		}
		i, j := int(vals[0]), int(vals[1])
		if i < 0 || i >= n || j < 0 || j >= n {
			return nil, fmt.Errorf("field csv line %d: cell (%d,%d) out of range", line+2, i, j)
		}
		f.Set(i, j, vals[2], vals[3])
	}
	return f, nil
}
