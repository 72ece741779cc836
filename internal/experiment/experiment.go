package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/metrics"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/sim"
)

type Config struct {
	Sim         sim.Config
	Integrator  string   // registry name; empty means "euler"
	Metrics     []string // registry names; empty means metrics.Defaults
	SampleEvery int
}

// Sample is the field summary at step T.
type Sample struct {
	T int `json:"t"`
	metrics.Stats
}

type Result struct {
	Samples []Sample
	Metrics map[string]float64
	Final   *dynamo.Field
	Steps   int
	Status  sim.Status
	Elapsed time.Duration
}

// Hook runs between steps with the simulator unlocked, so it may change
// parameters. t is the number of committed steps.
type Hook func(t int, s *sim.Simulator) error

type Experiment struct {
	cfg       Config
	simulator *sim.Simulator
	samples   []Sample
	before    []Hook
}

func New(cfg Config) (*Experiment, error) {
	if cfg.SampleEvery <= 0 {
		cfg.SampleEvery = 1
	}
	s, err := sim.New(cfg.Sim)
	if err != nil {
		return nil, err
	}

	reg := NewRegistry()
	name := cfg.Integrator
	if name == "" {
		name = "euler"
	}
	integ, err := reg.GetIntegrator(name, cfg.Sim.Workers, cfg.Sim.Strict)
	if err != nil {
		return nil, err
	}
	s.SetIntegrator(integ)

	if len(cfg.Metrics) == 0 {
		for _, m := range metrics.Defaults() {
			s.AddMetric(m)
		}
	} else {
		for _, mname := range cfg.Metrics {
			m, err := reg.GetMetric(mname)
			if err != nil {
				return nil, err
			}
			s.AddMetric(m)
		}
	}

	e := &Experiment{cfg: cfg, simulator: s}
	s.AddObserver(dynamo.ObserverFunc(e.observe))
	return e, nil
}

func (e *Experiment) observe(f *dynamo.Field, t int) {
	if t%e.cfg.SampleEvery == 0 {
		e.samples = append(e.samples, Sample{T: t, Stats: metrics.ComputeStats(f)})
	}
}

// BeforeStep registers a hook run before every step.
func (e *Experiment) BeforeStep(h Hook) {
	e.before = append(e.before, h)
}

// Run drives the simulator until it finishes. On error or cancellation the
// partial result is returned alongside the error.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	e.samples = e.samples[:0]
	e.simulator.View(e.observe)
	e.simulator.Start()

	runErr := e.loop(ctx)

	res := &Result{
		Samples: append([]Sample(nil), e.samples...),
		Metrics: e.simulator.Metrics(),
		Final:   e.simulator.Field(),
		Steps:   e.simulator.T(),
		Status:  e.simulator.Status(),
		Elapsed: time.Since(start),
	}
	if last := len(res.Samples) - 1; last < 0 || res.Samples[last].T != res.Steps {
		res.Samples = append(res.Samples, Sample{T: res.Steps, Stats: metrics.ComputeStats(res.Final)})
	}
	return res, runErr
}

func (e *Experiment) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			e.simulator.Stop()
			return ctx.Err()
		default:
		}

		t := e.simulator.T()
		for _, h := range e.before {
			if err := h(t, e.simulator); err != nil {
				e.simulator.Stop()
				return fmt.Errorf("hook at step %d: %w", t, err)
			}
		}

		ok, err := e.simulator.Step()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

// Series extracts one column of the samples by name: mean_u, mean_v, min_u,
// max_u, min_v or max_v.
func (r *Result) Series(name string) ([]float64, error) {
	out := make([]float64, len(r.Samples))
	for k, s := range r.Samples {
		switch name {
		case "mean_u":
			out[k] = s.MeanU
		case "mean_v":
			out[k] = s.MeanV
		case "min_u":
			out[k] = s.MinU
		case "max_u":
			out[k] = s.MaxU
		case "min_v":
			out[k] = s.MinV
		case "max_v":
			out[k] = s.MaxV
		default:
			return nil, fmt.Errorf("unknown series: %s", name)
		}
	}
	return out, nil
}

// SampleSteps lists the step of every sample.
func (r *Result) SampleSteps() []float64 {
	out := make([]float64, len(r.Samples))
	for k, s := range r.Samples {
		out[k] = float64(s.T)
	}
	return out
}
