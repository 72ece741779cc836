package optim

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/experiment"
)

// ErrNoCandidates is returned when every grid point failed to run.
var ErrNoCandidates = errors.New("optim: no grid point produced a result")

// Builder turns one grid point into a ready experiment.
type Builder func(params map[string]float64) (*experiment.Experiment, error)

// Objective scores a finished run. Higher is better when the search
// maximises.
type Objective func(res *experiment.Result) (float64, error)

// MetricObjective scores a run by one of its registered metrics.
func MetricObjective(name string) Objective {
	return func(res *experiment.Result) (float64, error) {
		v, ok := res.Metrics[name]
		if !ok {
			return 0, errors.New("optim: run has no metric " + name)
		}
		return v, nil
	}
}

// Point is one evaluated grid point. Err is set when the point could not be
// built, run or scored.
type Point struct {
	Params map[string]float64
	Value  float64
	Result *experiment.Result
	Err    error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64

	Workers  int
	Maximize bool
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// Points enumerates the grid with the last parameter varying fastest.
func (g *GridSearch) Points() []map[string]float64 {
	var out []map[string]float64
	g.enumerate(0, make(map[string]float64), &out)
	return out
}

func (g *GridSearch) enumerate(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		*out = append(*out, current)
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.enumerate(depth+1, newParams, out)
	}
}

// Search evaluates every grid point on a bounded pool of workers and returns
// the best point along with all points in grid order.
func (g *GridSearch) Search(ctx context.Context, build Builder, score Objective) (*Point, []Point, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, nil, errors.New("optim: parameter names and ranges differ in length")
	}

	grid := g.Points()
	points := make([]Point, len(grid))

	workers := g.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				points[idx] = evaluate(ctx, grid[idx], build, score)
			}
		}()
	}

feed:
	for idx := range grid {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, points, err
	}

	best := -1
	for idx := range points {
		if points[idx].Err != nil || math.IsNaN(points[idx].Value) {
			continue
		}
		if best < 0 || g.better(points[idx].Value, points[best].Value) {
			best = idx
		}
	}
	if best < 0 {
		return nil, points, ErrNoCandidates
	}
	return &points[best], points, nil
}

func (g *GridSearch) better(a, b float64) bool {
	if g.Maximize {
		return a > b
	}
	return a < b
}

func evaluate(ctx context.Context, params map[string]float64, build Builder, score Objective) Point {
	p := Point{Params: params}
	exp, err := build(params)
	if err != nil {
		p.Err = err
		return p
	}
	res, err := exp.Run(ctx)
	p.Result = res
	if err != nil {
		p.Err = err
		return p
	}
	p.Value, p.Err = score(res)
	return p
}

// Rank returns the successful points ordered best first.
func (g *GridSearch) Rank(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if p.Err == nil && !math.IsNaN(p.Value) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return g.better(out[a].Value, out[b].Value)
	})
	return out
}
