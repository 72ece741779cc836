package integrators

import (
	"fmt"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/physics"
)

// RK4 advances the field with the classical fourth order Runge-Kutta scheme.
// Intermediate stages are not clamped; only the committed field is floored
// at zero. It costs four stencil passes per step.
type RK4 struct {
	Euler
	k1, k2, k3, k4 *dynamo.Field
	scratch        *dynamo.Field
}

func NewRK4(opts ...Option) *RK4 {
	return &RK4{Euler: *NewEuler(opts...)}
}

func (r *RK4) ensureScratch(n int) {
	if r.k1 != nil && r.k1.N == n {
		return
	}
	alloc := func() *dynamo.Field {
		return &dynamo.Field{N: n, U: make([]float64, n*n), V: make([]float64, n*n)}
	}
	r.k1, r.k2, r.k3, r.k4 = alloc(), alloc(), alloc(), alloc()
	r.scratch = alloc()
}

// Step mirrors Euler.Step: nothing is committed on error.
func (r *RK4) Step(s *dynamo.State, p dynamo.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := r.Advance(s.Field(), s.Scratch(), p); err != nil {
		return err
	}
	if r.strict && !s.Scratch().IsFinite() {
		return &dynamo.SimulationError{Step: s.T + 1, Wrapped: dynamo.ErrDiverged}
	}
	s.Commit()
	return nil
}

func (r *RK4) Advance(src, dst *dynamo.Field, p dynamo.Params) error {
	if err := src.SameShape(dst); err != nil {
		return err
	}
	if src == dst {
		return fmt.Errorf("%w: source and destination are the same buffer", dynamo.ErrDimensionMismatch)
	}
	r.ensureScratch(src.N)

	dt := p.Dt
	r.derive(src, r.k1, p)

	r.stage(src, r.k1, 0.5*dt)
	r.derive(r.scratch, r.k2, p)

	r.stage(src, r.k2, 0.5*dt)
	r.derive(r.scratch, r.k3, p)

	r.stage(src, r.k3, dt)
	r.derive(r.scratch, r.k4, p)

	dt6 := dt / 6.0
	r.rows(src.N, func(i int) {
		for k := i * src.N; k < (i+1)*src.N; k++ {
			dst.U[k] = clampNonNegative(src.U[k] + dt6*(r.k1.U[k]+2*r.k2.U[k]+2*r.k3.U[k]+r.k4.U[k]))
			dst.V[k] = clampNonNegative(src.V[k] + dt6*(r.k1.V[k]+2*r.k2.V[k]+2*r.k3.V[k]+r.k4.V[k]))
		}
	})
	return nil
}

// derive writes the time derivative of src into out.
func (r *RK4) derive(src, out *dynamo.Field, p dynamo.Params) {
	gs := physics.NewGrayScott(p)
	n := src.N
	r.rows(n, func(i int) {
		for j := 0; j < n; j++ {
			k := i*n + j
			out.U[k], out.V[k] = gs.Rates(src, i, j)
		}
	})
}

// stage sets scratch = src + h*k.
func (r *RK4) stage(src, k *dynamo.Field, h float64) {
	r.rows(src.N, func(i int) {
		for c := i * src.N; c < (i+1)*src.N; c++ {
			r.scratch.U[c] = src.U[c] + h*k.U[c]
			r.scratch.V[c] = src.V[c] + h*k.V[c]
		}
	})
}

func (r *RK4) rows(n int, fn func(i int)) {
	dynamo.ParallelFor(n, minRowsPerWorker, r.workers, func(start, end int) {
		for i := start; i < end; i++ {
			fn(i)
		}
	})
}
