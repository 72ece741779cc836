package integrators

import (
	"errors"
	"testing"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
)

func newState(t *testing.T, n int, seed int64) *dynamo.State {
	t.Helper()
	f, err := dynamo.Initialize(n, dynamo.NewRand(seed))
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	st, err := dynamo.NewState(f)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	return st
}

func TestEulerSteadyScenario(t *testing.T) {
	f, _ := dynamo.NewField(3)
	f.Fill(1, 0)
	st, _ := dynamo.NewState(f)

	p := dynamo.Params{Du: 0.65, Dv: 0.25, F: 0.01, K: 0.045, Dt: 1, Dx: 1, ReactionScale: 1, TMax: 10}
	if err := NewEuler().Step(st, p); err != nil {
		t.Fatalf("step: %v", err)
	}

	if st.T != 1 {
		t.Errorf("expected T=1, got %d", st.T)
	}
	next := st.Field()
	for k := range next.U {
		if next.U[k] != 1 || next.V[k] != 0 {
			t.Errorf("cell %d: got (%v,%v), want (1,0)", k, next.U[k], next.V[k])
		}
	}
}

func TestEulerShapeAndNonNegativity(t *testing.T) {
	st := newState(t, 32, 1)
	euler := NewEuler()
	p := dynamo.DefaultParams()

	for step := 0; step < 200; step++ {
		if err := euler.Step(st, p); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		f := st.Field()
		if f.N != 32 || len(f.U) != 32*32 || len(f.V) != 32*32 {
			t.Fatalf("step %d: shape changed to %d (%d/%d)", step, f.N, len(f.U), len(f.V))
		}
		for k := range f.U {
			if f.U[k] < 0 || f.V[k] < 0 {
				t.Fatalf("step %d: negative concentration at %d: (%v,%v)", step, k, f.U[k], f.V[k])
			}
		}
	}
	if st.T != 200 {
		t.Errorf("expected T=200, got %d", st.T)
	}
}

func TestEulerDeterministic(t *testing.T) {
	src := newState(t, 24, 3).Field()
	p := dynamo.DefaultParams()
	euler := NewEuler()

	a, _ := dynamo.NewField(24)
	b, _ := dynamo.NewField(24)
	if err := euler.Advance(src, a, p); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := euler.Advance(src, b, p); err != nil {
		t.Fatalf("advance: %v", err)
	}
	for k := range a.U {
		if a.U[k] != b.U[k] || a.V[k] != b.V[k] {
			t.Fatalf("cell %d differs between identical steps", k)
		}
	}
}

func TestEulerParallelMatchesSerial(t *testing.T) {
	serial := newState(t, 64, 9)
	parallel := newState(t, 64, 9)
	p := dynamo.DefaultParams()

	one := NewEuler(WithWorkers(1))
	many := NewEuler(WithWorkers(8))
	for step := 0; step < 25; step++ {
		if err := one.Step(serial, p); err != nil {
			t.Fatal(err)
		}
		if err := many.Step(parallel, p); err != nil {
			t.Fatal(err)
		}
	}

	a, b := serial.Field(), parallel.Field()
	for k := range a.U {
		if a.U[k] != b.U[k] || a.V[k] != b.V[k] {
			t.Fatalf("cell %d: serial (%v,%v) parallel (%v,%v)", k, a.U[k], a.V[k], b.U[k], b.V[k])
		}
	}
}

func TestEulerReadsOnlyPreStepField(t *testing.T) {
	// A single spike diffuses symmetrically only if no cell sees a
	// neighbour's already-updated value.
	f, _ := dynamo.NewField(5)
	f.Fill(1, 0)
	f.Set(2, 2, 1, 0.5)
	st, _ := dynamo.NewState(f)

	if err := NewEuler(WithWorkers(1)).Step(st, dynamo.DefaultParams()); err != nil {
		t.Fatal(err)
	}
	next := st.Field()
	_, up := next.At(1, 2)
	_, down := next.At(3, 2)
	_, left := next.At(2, 1)
	_, right := next.At(2, 3)
	if up != down || left != right || up != left {
		t.Errorf("asymmetric update: up=%v down=%v left=%v right=%v", up, down, left, right)
	}
}

func TestEulerRejectsInvalidParams(t *testing.T) {
	st := newState(t, 8, 1)
	before := st.Field().Clone()

	p := dynamo.DefaultParams()
	p.Dt = -1
	err := NewEuler().Step(st, p)
	if !errors.Is(err, dynamo.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if st.T != 0 {
		t.Errorf("step counter moved on rejected params: %d", st.T)
	}
	for k := range before.U {
		if before.U[k] != st.Field().U[k] {
			t.Fatal("field changed on rejected params")
		}
	}
}

func TestEulerDimensionMismatch(t *testing.T) {
	a, _ := dynamo.NewField(4)
	b, _ := dynamo.NewField(5)
	euler := NewEuler()

	if err := euler.Advance(a, b, dynamo.DefaultParams()); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if err := euler.Advance(a, a, dynamo.DefaultParams()); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected error for aliased buffers, got %v", err)
	}
}

func divergentState(t *testing.T) *dynamo.State {
	t.Helper()
	f, _ := dynamo.NewField(3)
	f.Fill(1, 0)
	f.Set(1, 1, 1, 1e200)
	st, _ := dynamo.NewState(f)
	return st
}

func TestEulerDivergence(t *testing.T) {
	t.Run("silent by default", func(t *testing.T) {
		st := divergentState(t)
		if err := NewEuler().Step(st, dynamo.DefaultParams()); err != nil {
			t.Fatalf("default mode should not fail: %v", err)
		}
		if st.T != 1 {
			t.Errorf("expected the step to be committed, T=%d", st.T)
		}
		err := Diverged(st.Field(), st.T)
		if !errors.Is(err, dynamo.ErrDiverged) {
			t.Errorf("expected divergence to be detectable, got %v", err)
		}
	})

	t.Run("strict", func(t *testing.T) {
		st := divergentState(t)
		err := NewEuler(WithStrict(true)).Step(st, dynamo.DefaultParams())
		if !errors.Is(err, dynamo.ErrDiverged) {
			t.Fatalf("expected ErrDiverged, got %v", err)
		}
		var se *dynamo.SimulationError
		if !errors.As(err, &se) || se.Step != 1 {
			t.Errorf("expected SimulationError at step 1, got %v", err)
		}
		if st.T != 0 {
			t.Errorf("strict mode committed a divergent step, T=%d", st.T)
		}
		if !st.Field().IsFinite() {
			t.Error("committed field should still be the finite one")
		}
	})
}

func TestNewEulerWorkers(t *testing.T) {
	if NewEuler(WithWorkers(0)).Workers() < 1 {
		t.Error("workers should default to at least 1")
	}
	if got := NewEuler(WithWorkers(3)).Workers(); got != 3 {
		t.Errorf("expected 3 workers, got %d", got)
	}
}
