package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/integrators"
)

// Simulator owns one field, its parameters and the run state machine. It is
// advanced by an external driver calling Step (a frame tick, a headless loop
// or a test). All methods are safe for concurrent use; observers and metrics
// run inside Step and must not call back into the Simulator.
type Simulator struct {
	mu         sync.Mutex
	state      *dynamo.State
	params     dynamo.Params
	status     Status
	integrator Integrator
	seed       int64
	rng        *rand.Rand
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
}

// New seeds a field of cfg.Size and returns an Idle simulator.
func New(cfg Config) (*Simulator, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = dynamo.NewRand(cfg.Seed)
	}
	f, err := dynamo.Initialize(cfg.Size, rng)
	if err != nil {
		return nil, err
	}
	st, err := dynamo.NewState(f)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		state:  st,
		params: cfg.Params,
		status: Idle,
		integrator: integrators.NewEuler(
			integrators.WithWorkers(cfg.Workers),
			integrators.WithStrict(cfg.Strict),
		),
		seed:      cfg.Seed,
		rng:       rng,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}, nil
}

// SetIntegrator swaps the stepping scheme; mostly useful in tests.
func (s *Simulator) SetIntegrator(integ Integrator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.integrator = integ
}

func (s *Simulator) AddMetric(m dynamo.Metric) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = append(s.metrics, m)
}

func (s *Simulator) AddObserver(o dynamo.Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Start moves Idle or Stopped to Running. A Finished run stays finished until
// Reset.
func (s *Simulator) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == Idle || s.status == Stopped {
		s.status = Running
	}
}

// Stop moves Running to Stopped. The step counter is kept.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == Running {
		s.status = Stopped
	}
}

// Reset reseeds the field, zeroes the step counter and returns to Idle. With a
// nonzero seed the generator restarts, so the field matches the one New built.
func (s *Simulator) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seed != 0 {
		s.rng = dynamo.NewRand(s.seed)
	}
	s.state.Field().Seed(s.rng)
	s.state.T = 0
	s.status = Idle
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Step performs at most one integration step. It reports whether a step was
// committed; false means the run is not Running or has just reached tmax.
// An integrator error stops the run and is returned with the field unchanged.
func (s *Simulator) Step() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != Running {
		return false, nil
	}
	if s.state.T >= s.params.TMax {
		s.status = Finished
		return false, nil
	}

	p := s.params
	if err := s.integrator.Step(s.state, p); err != nil {
		s.status = Stopped
		var simErr *dynamo.SimulationError
		if errors.As(err, &simErr) {
			return false, err
		}
		return false, fmt.Errorf("step %d: %w", s.state.T+1, err)
	}

	f, t := s.state.Field(), s.state.T
	for _, m := range s.metrics {
		m.Observe(f, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(f, t)
	}
	return true, nil
}

// Run starts the simulator and steps until it stops, finishes, fails or ctx
// is cancelled. Cancellation is checked once per step.
func (s *Simulator) Run(ctx context.Context) error {
	s.Start()
	for {
		select {
		case <-ctx.Done():
			s.Stop()
			return ctx.Err()
		default:
		}

		ok, err := s.Step()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

func (s *Simulator) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// T is the number of committed steps since the last reset.
func (s *Simulator) T() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.T
}

func (s *Simulator) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Field().N
}

func (s *Simulator) Params() dynamo.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// SetParams replaces the whole parameter record. Invalid records are rejected
// and the current parameters stay in effect.
func (s *Simulator) SetParams(p dynamo.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = p
	return nil
}

// UpdateParams applies fn to a copy of the parameters and installs the result
// if it validates.
func (s *Simulator) UpdateParams(fn func(p *dynamo.Params)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.params
	fn(&p)
	if err := p.Validate(); err != nil {
		return err
	}
	s.params = p
	return nil
}

func (s *Simulator) GetParams() map[string]float64 {
	return s.Params().Map()
}

func (s *Simulator) SetParam(name string, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.params.With(name, value)
	if err != nil {
		return err
	}
	s.params = p
	return nil
}

// Snapshot copies the committed field.
func (s *Simulator) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, v := s.state.Field().Rows()
	return Snapshot{U: u, V: v, T: s.state.T, TMax: s.params.TMax, Status: s.status}
}

// Field returns a copy of the committed field.
func (s *Simulator) Field() *dynamo.Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Field().Clone()
}

// View calls fn with the committed field without copying it. fn must not
// retain the field or call back into the Simulator.
func (s *Simulator) View(fn func(f *dynamo.Field, t int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state.Field(), s.state.T)
}

// Metrics returns the current value of every registered metric.
func (s *Simulator) Metrics() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

var _ dynamo.Configurable = (*Simulator)(nil)
