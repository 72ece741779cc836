package automation

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/analysis"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/config"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/experiment"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/sim"
)

// Scenario defines a scripted run: a starting preset plus parameter changes
// applied at fixed steps, the way a user would move sliders mid-run.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Preset      string  `yaml:"preset"`
	Size        int     `yaml:"size"`
	Seed        int64   `yaml:"seed"`
	TMax        int     `yaml:"tmax"`
	SampleEvery int     `yaml:"sample_every"`
	Events      []Event `yaml:"events"`
}

// Event sets parameters once At steps have been committed.
type Event struct {
	At  int                `yaml:"at"`
	Set map[string]float64 `yaml:"set"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// SimConfig resolves the preset and overrides into a controller config.
func (sc *Scenario) SimConfig() (sim.Config, error) {
	cfg := sim.DefaultConfig()
	preset := sc.Preset
	if preset == "" {
		preset = config.DefaultPreset
	}
	p := config.GetPreset(preset)
	if p == nil {
		return cfg, fmt.Errorf("unknown preset %q", preset)
	}
	cfg.Params = p.Params
	if sc.Size > 0 {
		cfg.Size = sc.Size
	}
	if sc.TMax > 0 {
		cfg.Params.TMax = sc.TMax
	}
	cfg.Seed = sc.Seed
	return cfg, cfg.Params.Validate()
}

// RunScenario executes the scenario to completion. Events are applied in step
// order; an event that names an unknown parameter or an invalid value stops
// the run.
func RunScenario(ctx context.Context, scenario *Scenario) (*experiment.Result, error) {
	cfg, err := scenario.SimConfig()
	if err != nil {
		return nil, err
	}

	events := append([]Event(nil), scenario.Events...)
	sort.SliceStable(events, func(a, b int) bool { return events[a].At < events[b].At })
	for _, ev := range events {
		if ev.At >= cfg.Params.TMax {
			log.Printf("scenario %s: event at step %d is past tmax %d and will not fire", scenario.Name, ev.At, cfg.Params.TMax)
		}
	}

	sample := scenario.SampleEvery
	if sample <= 0 {
		sample = max(cfg.Params.TMax/100, 1)
	}
	exp, err := experiment.New(experiment.Config{Sim: cfg, SampleEvery: sample})
	if err != nil {
		return nil, err
	}

	next := 0
	exp.BeforeStep(func(t int, s *sim.Simulator) error {
		for next < len(events) && events[next].At <= t {
			ev := events[next]
			next++
			if err := applyEvent(s, ev); err != nil {
				return err
			}
			log.Printf("scenario %s: step %d applied %v", scenario.Name, t, ev.Set)
		}
		return nil
	})

	return exp.Run(ctx)
}

func applyEvent(s *sim.Simulator, ev Event) error {
	names := make([]string, 0, len(ev.Set))
	for name := range ev.Set {
		names = append(names, name)
	}
	sort.Strings(names)

	p := s.Params()
	for _, name := range names {
		next, err := p.With(name, ev.Set[name])
		if err != nil {
			return err
		}
		p = next
	}
	return s.SetParams(p)
}

// EnsembleConfig runs one preset under many random seeds.
type EnsembleConfig struct {
	Preset   string
	Size     int
	TMax     int
	Trials   int
	BaseSeed int64 // 0 picks a random base
}

// EnsembleResult holds one trial's outcome.
type EnsembleResult struct {
	Trial      int
	Seed       int64
	Stable     bool
	Wavelength float64 // 0 if no pattern formed
	MeanU      float64
}

// RunEnsemble checks how robust a preset's pattern is to the initial noise.
func RunEnsemble(ctx context.Context, cfg *EnsembleConfig) ([]EnsembleResult, error) {
	base := cfg.BaseSeed
	if base == 0 {
		base = rand.Int64N(math.MaxInt32) + 1
	}

	results := make([]EnsembleResult, 0, cfg.Trials)
	for trial := 0; trial < cfg.Trials; trial++ {
		sc := &Scenario{
			Name:   fmt.Sprintf("ensemble-%d", trial),
			Preset: cfg.Preset,
			Size:   cfg.Size,
			TMax:   cfg.TMax,
			Seed:   base + int64(trial),
		}

		res, err := RunScenario(ctx, sc)
		if err != nil {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}

		r := EnsembleResult{
			Trial:  trial,
			Seed:   sc.Seed,
			Stable: res.Metrics["stability"] == 1.0,
			MeanU:  res.Metrics["mean_u"],
		}
		if lambda, err := analysis.DominantWavelength(res.Final); err == nil {
			r.Wavelength = lambda
		}
		results = append(results, r)

		if (trial+1)%10 == 0 {
			log.Printf("ensemble: %d/%d trials complete", trial+1, cfg.Trials)
		}
	}

	return results, nil
}
