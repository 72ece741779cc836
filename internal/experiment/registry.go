package experiment

import (
	"fmt"
	"sort"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/integrators"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/metrics"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/sim"
)

type Registry struct {
	metrics     map[string]func() dynamo.Metric
	integrators map[string]func(workers int, strict bool) sim.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics:     make(map[string]func() dynamo.Metric),
		integrators: make(map[string]func(int, bool) sim.Integrator),
	}

	r.metrics["mean_u"] = func() dynamo.Metric { return metrics.NewMeanU() }
	r.metrics["mean_v"] = func() dynamo.Metric { return metrics.NewMeanV() }
	r.metrics["stability"] = func() dynamo.Metric { return metrics.NewStability(metrics.BlowUpThreshold) }
	r.metrics["activity"] = func() dynamo.Metric { return metrics.NewActivity() }

	r.integrators["euler"] = func(workers int, strict bool) sim.Integrator {
		return integrators.NewEuler(integrators.WithWorkers(workers), integrators.WithStrict(strict))
	}
	r.integrators["rk4"] = func(workers int, strict bool) sim.Integrator {
		return integrators.NewRK4(integrators.WithWorkers(workers), integrators.WithStrict(strict))
	}
	r.integrators["euler-serial"] = func(_ int, strict bool) sim.Integrator {
		return integrators.NewEuler(integrators.WithWorkers(1), integrators.WithStrict(strict))
	}

	return r
}

func (r *Registry) GetMetric(name string) (dynamo.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetIntegrator(name string, workers int, strict bool) (sim.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(workers, strict), nil
}

func (r *Registry) ListMetrics() []string {
	return sortedKeys(r.metrics)
}

func (r *Registry) ListIntegrators() []string {
	return sortedKeys(r.integrators)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
