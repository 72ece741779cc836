package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/experiment"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/sim"
)

func builder(t *testing.T) Builder {
	return func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := sim.DefaultConfig()
		cfg.Size = 8
		cfg.Seed = 3
		cfg.Params.TMax = 5
		for name, v := range params {
			p, err := cfg.Params.With(name, v)
			if err != nil {
				return nil, err
			}
			cfg.Params = p
		}
		return experiment.New(experiment.Config{Sim: cfg, SampleEvery: 5})
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Linspace[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if got := Linspace(2, 3, 1); len(got) != 1 || got[0] != 2 {
		t.Errorf("single point: %v", got)
	}
}

func TestPointsOrder(t *testing.T) {
	g := NewGridSearch([]string{"f", "k"}, [][]float64{{0.01, 0.02}, {0.04, 0.05, 0.06}})
	pts := g.Points()
	if len(pts) != 6 {
		t.Fatalf("expected 6 points, got %d", len(pts))
	}
	if pts[0]["f"] != 0.01 || pts[0]["k"] != 0.04 || pts[1]["k"] != 0.05 || pts[3]["f"] != 0.02 {
		t.Errorf("unexpected grid order: %v", pts)
	}
}

func TestSearchMinimizeAndMaximize(t *testing.T) {
	g := NewGridSearch([]string{"f"}, [][]float64{{0.01, 0.05, 0.09}})
	g.Workers = 2

	// Higher feed refills U faster, so mean U is monotone in f over a short run.
	best, points, err := g.Search(context.Background(), builder(t), MetricObjective("mean_u"))
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if best.Params["f"] != 0.01 {
		t.Errorf("expected minimum at f=0.01, got %v", best.Params)
	}

	g.Maximize = true
	best, _, err = g.Search(context.Background(), builder(t), MetricObjective("mean_u"))
	if err != nil {
		t.Fatal(err)
	}
	if best.Params["f"] != 0.09 {
		t.Errorf("expected maximum at f=0.09, got %v", best.Params)
	}

	ranked := g.Rank(points)
	if ranked[0].Params["f"] != 0.09 || ranked[2].Params["f"] != 0.01 {
		t.Errorf("unexpected ranking: %v %v", ranked[0].Params, ranked[2].Params)
	}
}

func TestSearchSkipsFailedPoints(t *testing.T) {
	g := NewGridSearch([]string{"dt"}, [][]float64{{-1, 1}})
	best, points, err := g.Search(context.Background(), builder(t), MetricObjective("mean_u"))
	if err != nil {
		t.Fatal(err)
	}
	if points[0].Err == nil {
		t.Error("negative dt should fail to build")
	}
	if best.Params["dt"] != 1 {
		t.Errorf("expected dt=1 to win, got %v", best.Params)
	}
}

func TestSearchNoCandidates(t *testing.T) {
	g := NewGridSearch([]string{"f"}, [][]float64{{0.01}})
	_, _, err := g.Search(context.Background(), builder(t), MetricObjective("energy"))
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("expected ErrNoCandidates, got %v", err)
	}
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGridSearch([]string{"f"}, [][]float64{{0.01, 0.02}})
	if _, _, err := g.Search(ctx, builder(t), MetricObjective("mean_u")); !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation, got %v", err)
	}
}

func TestSearchLengthMismatch(t *testing.T) {
	g := NewGridSearch([]string{"f", "k"}, [][]float64{{0.01}})
	if _, _, err := g.Search(context.Background(), builder(t), MetricObjective("mean_u")); err == nil {
		t.Error("expected error for mismatched ranges")
	}
}
