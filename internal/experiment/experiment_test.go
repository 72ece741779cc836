package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/sim"
)

func testConfig(tmax int) Config {
	cfg := sim.DefaultConfig()
	cfg.Size = 16
	cfg.Seed = 5
	cfg.Params.TMax = tmax
	return Config{Sim: cfg, SampleEvery: 10}
}

func TestExperimentRun(t *testing.T) {
	exp, err := New(testConfig(35))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if res.Steps != 35 {
		t.Errorf("expected 35 steps, got %d", res.Steps)
	}
	if res.Status != sim.Finished {
		t.Errorf("expected finished, got %s", res.Status)
	}

	want := []int{0, 10, 20, 30, 35}
	if len(res.Samples) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(res.Samples))
	}
	for k, s := range res.Samples {
		if s.T != want[k] {
			t.Errorf("sample %d: expected t=%d, got %d", k, want[k], s.T)
		}
		if s.T == 0 {
			// Initial field: near-homogeneous noise plus the central seed cell.
			if s.MinU != dynamo.SeedU || s.MaxU > 1.025 || s.MinV < -0.025 || s.MaxV != dynamo.SeedV {
				t.Errorf("sample 0: unexpected initial ranges %+v", s.Stats)
			}
			continue
		}
		if s.MinU < 0 || s.MinV < 0 {
			t.Errorf("sample %d: negative concentration %+v", k, s.Stats)
		}
	}

	for _, name := range []string{"mean_u", "mean_v", "stability", "activity"} {
		if _, ok := res.Metrics[name]; !ok {
			t.Errorf("missing metric %s", name)
		}
	}
	if res.Metrics["stability"] != 1.0 {
		t.Errorf("expected a stable run, got %v", res.Metrics["stability"])
	}
	if res.Final == nil || res.Final.N != 16 {
		t.Fatal("expected a 16x16 final field")
	}
}

func TestExperimentDeterministic(t *testing.T) {
	run := func() *Result {
		exp, err := New(testConfig(20))
		if err != nil {
			t.Fatal(err)
		}
		res, err := exp.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		return res
	}
	a, b := run(), run()
	for k := range a.Final.U {
		if a.Final.U[k] != b.Final.U[k] || a.Final.V[k] != b.Final.V[k] {
			t.Fatalf("runs diverged at cell %d", k)
		}
	}
}

func TestExperimentHookChangesParams(t *testing.T) {
	exp, err := New(testConfig(10))
	if err != nil {
		t.Fatal(err)
	}
	exp.BeforeStep(func(step int, s *sim.Simulator) error {
		if step == 5 {
			return s.SetParam("f", 0.03)
		}
		return nil
	})

	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Steps != 10 {
		t.Errorf("expected 10 steps, got %d", res.Steps)
	}
	if exp.GetSimulator().Params().F != 0.03 {
		t.Error("hook did not apply the new feed rate")
	}
}

func TestExperimentHookError(t *testing.T) {
	exp, err := New(testConfig(10))
	if err != nil {
		t.Fatal(err)
	}
	exp.BeforeStep(func(step int, s *sim.Simulator) error {
		if step == 3 {
			return s.SetParam("dt", -1)
		}
		return nil
	})

	res, err := exp.Run(context.Background())
	if !errors.Is(err, dynamo.ErrInvalidParameter) {
		t.Fatalf("expected invalid parameter, got %v", err)
	}
	if res == nil || res.Steps != 3 || res.Status != sim.Stopped {
		t.Errorf("expected partial result stopped at 3, got %+v", res)
	}
}

func TestExperimentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exp, err := New(testConfig(100))
	if err != nil {
		t.Fatal(err)
	}
	res, err := exp.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if res.Steps != 0 {
		t.Errorf("expected no steps, got %d", res.Steps)
	}
}

func TestResultSeries(t *testing.T) {
	res := &Result{Samples: []Sample{{T: 0}, {T: 10}}}
	res.Samples[1].MeanU = 0.7

	s, err := res.Series("mean_u")
	if err != nil {
		t.Fatal(err)
	}
	if s[1] != 0.7 {
		t.Errorf("expected 0.7, got %v", s[1])
	}
	if steps := res.SampleSteps(); steps[1] != 10 {
		t.Errorf("expected step 10, got %v", steps[1])
	}
	if _, err := res.Series("bogus"); err == nil {
		t.Error("expected error for unknown series")
	}
}

func TestNewRejectsUnknownNames(t *testing.T) {
	cfg := testConfig(10)
	cfg.Integrator = "verlet"
	if _, err := New(cfg); err == nil {
		t.Error("expected unknown integrator error")
	}

	cfg = testConfig(10)
	cfg.Metrics = []string{"energy"}
	if _, err := New(cfg); err == nil {
		t.Error("expected unknown metric error")
	}
}

func TestExperimentRK4(t *testing.T) {
	cfg := testConfig(15)
	cfg.Integrator = "rk4"
	exp, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Status != sim.Finished || res.Steps != 15 {
		t.Errorf("expected finished after 15 steps, got %s after %d", res.Status, res.Steps)
	}
	if !res.Final.IsFinite() {
		t.Error("expected a finite final field")
	}
}

func TestRegistryLists(t *testing.T) {
	r := NewRegistry()
	if got := r.ListIntegrators(); len(got) != 3 || got[0] != "euler" || got[2] != "rk4" {
		t.Errorf("unexpected integrators %v", got)
	}
	if got := r.ListMetrics(); len(got) != 4 {
		t.Errorf("unexpected metrics %v", got)
	}
}
