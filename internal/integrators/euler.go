package integrators

import (
	"fmt"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/physics"
)

// minRowsPerWorker keeps small grids on a single goroutine.
const minRowsPerWorker = 16

// Euler advances the Gray-Scott field with explicit forward Euler steps.
type Euler struct {
	workers int
	strict  bool
}

type Option func(*Euler)

// WithWorkers bounds the number of goroutines used per step. Values below 1
// mean runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(e *Euler) { e.workers = n }
}

// WithStrict makes Step fail with ErrDiverged instead of committing a field
// that contains NaN or Inf.
func WithStrict(strict bool) Option {
	return func(e *Euler) { e.strict = strict }
}

func NewEuler(opts ...Option) *Euler {
	e := &Euler{workers: dynamo.DefaultWorkers()}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = dynamo.DefaultWorkers()
	}
	return e
}

func (e *Euler) Workers() int { return e.workers }
func (e *Euler) Strict() bool { return e.strict }

// Step validates p, computes the next field into the scratch buffer of s and
// commits it. On error nothing is committed and s.T is unchanged.
func (e *Euler) Step(s *dynamo.State, p dynamo.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := e.Advance(s.Field(), s.Scratch(), p); err != nil {
		return err
	}
	if e.strict && !s.Scratch().IsFinite() {
		return &dynamo.SimulationError{Step: s.T + 1, Wrapped: dynamo.ErrDiverged}
	}
	s.Commit()
	return nil
}

// Advance writes one explicit Euler step of src into dst. Every cell reads
// only src, so dst must not alias src.
func (e *Euler) Advance(src, dst *dynamo.Field, p dynamo.Params) error {
	if err := src.SameShape(dst); err != nil {
		return err
	}
	if src == dst {
		return fmt.Errorf("%w: source and destination are the same buffer", dynamo.ErrDimensionMismatch)
	}

	n := src.N
	dynamo.ParallelFor(n, minRowsPerWorker, e.workers, func(start, end int) {
		for i := start; i < end; i++ {
			advanceRow(src, dst, p, i)
		}
	})
	return nil
}

func advanceRow(src, dst *dynamo.Field, p dynamo.Params, i int) {
	n := src.N
	for j := 0; j < n; j++ {
		k := i*n + j
		u, v := src.U[k], src.V[k]
		lu := physics.Laplacian(src.U, n, i, j, p.Dx)
		lv := physics.Laplacian(src.V, n, i, j, p.Dx)
		ru, rv := physics.React(u, v, p)

		dst.U[k] = clampNonNegative(u + p.Dt*(p.Du*lu+ru))
		dst.V[k] = clampNonNegative(v + p.Dt*(p.Dv*lv+rv))
	}
}

// clampNonNegative floors at zero and lets NaN through untouched.
func clampNonNegative(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

// Diverged reports whether f holds non-finite values, as a SimulationError
// at step t, or nil.
func Diverged(f *dynamo.Field, t int) error {
	if f.IsFinite() {
		return nil
	}
	return &dynamo.SimulationError{Step: t, Wrapped: dynamo.ErrDiverged}
}
