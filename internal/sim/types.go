package sim

import "github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"

// Integrator advances a double-buffered state by one committed step.
type Integrator interface {
	Step(s *dynamo.State, p dynamo.Params) error
}

// Status is the lifecycle state of a run.
type Status int

const (
	Idle Status = iota
	Running
	Stopped
	Finished
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Config fixes everything that cannot change during a run.
type Config struct {
	Size    int
	Params  dynamo.Params
	Seed    int64 // 0 draws from the unseeded global source
	Workers int
	Strict  bool
}

func DefaultConfig() Config {
	return Config{
		Size:   dynamo.DefaultSize,
		Params: dynamo.DefaultParams(),
	}
}

// Snapshot is a copy of the committed field taken at a step boundary.
type Snapshot struct {
	U, V   [][]float64
	T      int
	TMax   int
	Status Status
}
