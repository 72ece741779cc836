package dynamo

import (
	"fmt"
	"math"
)

// Field holds the activator (U) and inhibitor (V) concentrations of an N×N
// grid. Both slices are row-major: cell (i, j) lives at i*N + j.
type Field struct {
	N int
	U []float64
	V []float64
}

// NewField allocates a zeroed n×n field.
func NewField(n int) (*Field, error) {
	if n <= 0 {
		return nil, &ParamError{Name: "size", Value: float64(n), Reason: "must be positive"}
	}
	return &Field{
		N: n,
		U: make([]float64, n*n),
		V: make([]float64, n*n),
	}, nil
}

// Index returns the linear slice index for cell (i, j).
func (f *Field) Index(i, j int) int { return i*f.N + j }

// Len is the number of cells.
func (f *Field) Len() int { return f.N * f.N }

func (f *Field) At(i, j int) (u, v float64) {
	k := f.Index(i, j)
	return f.U[k], f.V[k]
}

func (f *Field) Set(i, j int, u, v float64) {
	k := f.Index(i, j)
	f.U[k], f.V[k] = u, v
}

// Fill sets every cell to the same pair of concentrations.
func (f *Field) Fill(u, v float64) {
	for k := range f.U {
		f.U[k] = u
		f.V[k] = v
	}
}

func (f *Field) Clone() *Field {
	c := &Field{N: f.N, U: make([]float64, len(f.U)), V: make([]float64, len(f.V))}
	copy(c.U, f.U)
	copy(c.V, f.V)
	return c
}

// CopyFrom overwrites f with the contents of src.
func (f *Field) CopyFrom(src *Field) error {
	if err := f.SameShape(src); err != nil {
		return err
	}
	copy(f.U, src.U)
	copy(f.V, src.V)
	return nil
}

// SameShape reports ErrDimensionMismatch unless other has the same grid size.
func (f *Field) SameShape(other *Field) error {
	if other == nil || f.N != other.N || len(f.U) != len(other.U) || len(f.V) != len(other.V) {
		return fmt.Errorf("%w: %s vs %s", ErrDimensionMismatch, f.shape(), other.shape())
	}
	return nil
}

func (f *Field) shape() string {
	if f == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%dx%d", f.N, f.N)
}

// IsFinite reports whether every concentration is a finite number.
func (f *Field) IsFinite() bool {
	for k := range f.U {
		if math.IsNaN(f.U[k]) || math.IsInf(f.U[k], 0) {
			return false
		}
		if math.IsNaN(f.V[k]) || math.IsInf(f.V[k], 0) {
			return false
		}
	}
	return true
}

// Rows copies U and V out as [i][j] arrays for collaborators that want the
// two-dimensional view.
func (f *Field) Rows() (u, v [][]float64) {
	u = make([][]float64, f.N)
	v = make([][]float64, f.N)
	for i := 0; i < f.N; i++ {
		u[i] = make([]float64, f.N)
		v[i] = make([]float64, f.N)
		copy(u[i], f.U[i*f.N:(i+1)*f.N])
		copy(v[i], f.V[i*f.N:(i+1)*f.N])
	}
	return u, v
}

// State is the double buffer the integrator works on: the committed field,
// a scratch field of the same size, and the number of committed steps.
type State struct {
	cur  *Field
	next *Field
	T    int
}

// NewState wraps an initial field and allocates its scratch twin.
func NewState(initial *Field) (*State, error) {
	if initial == nil {
		return nil, &ParamError{Name: "field", Reason: "must not be nil"}
	}
	next, err := NewField(initial.N)
	if err != nil {
		return nil, err
	}
	return &State{cur: initial, next: next}, nil
}

// Field returns the committed buffer. Callers must not hold it across steps;
// use Clone for a stable copy.
func (s *State) Field() *Field { return s.cur }

// Scratch returns the buffer the next step writes into.
func (s *State) Scratch() *Field { return s.next }

// Commit publishes the scratch buffer as the new committed field and counts
// the step.
func (s *State) Commit() {
	s.cur, s.next = s.next, s.cur
	s.T++
}
