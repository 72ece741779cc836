package dynamo

import "math"

// Reference values from the interactive lab.
const (
	DefaultSize          = 150
	DefaultDu            = 0.65
	DefaultDv            = 0.25
	DefaultF             = 0.01
	DefaultK             = 0.045
	DefaultReactionScale = 1.0
	DefaultDt            = 1.0
	DefaultDx            = 1.0
	DefaultTMax          = 10000
)

// DtChoices are the time steps offered by the live view. Any positive dt is
// accepted by the integrator.
var DtChoices = []float64{0.5, 1.0, 2.0}

// Params is the kinetic and numerical configuration read at the start of
// every step.
type Params struct {
	Du            float64 `json:"du" yaml:"du"`
	Dv            float64 `json:"dv" yaml:"dv"`
	F             float64 `json:"f" yaml:"f"`
	K             float64 `json:"k" yaml:"k"`
	ReactionScale float64 `json:"reaction_scale" yaml:"reaction_scale"`
	Dt            float64 `json:"dt" yaml:"dt"`
	Dx            float64 `json:"dx" yaml:"dx"`
	TMax          int     `json:"tmax" yaml:"tmax"`
}

func DefaultParams() Params {
	return Params{
		Du:            DefaultDu,
		Dv:            DefaultDv,
		F:             DefaultF,
		K:             DefaultK,
		ReactionScale: DefaultReactionScale,
		Dt:            DefaultDt,
		Dx:            DefaultDx,
		TMax:          DefaultTMax,
	}
}

// Validate rejects values that would feed NaNs or nonsense into the stepping
// loop. The returned error is a *ParamError wrapping ErrInvalidParameter.
func (p Params) Validate() error {
	checks := []struct {
		name     string
		value    float64
		positive bool
	}{
		{"du", p.Du, true},
		{"dv", p.Dv, true},
		{"f", p.F, false},
		{"k", p.K, false},
		{"reaction_scale", p.ReactionScale, true},
		{"dt", p.Dt, true},
		{"dx", p.Dx, true},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return &ParamError{Name: c.name, Value: c.value, Reason: "must be finite"}
		}
		if c.positive && c.value <= 0 {
			return &ParamError{Name: c.name, Value: c.value, Reason: "must be positive"}
		}
		if !c.positive && c.value < 0 {
			return &ParamError{Name: c.name, Value: c.value, Reason: "must be non-negative"}
		}
	}
	if p.TMax <= 0 {
		return &ParamError{Name: "tmax", Value: float64(p.TMax), Reason: "must be positive"}
	}
	return nil
}

// Map exposes the tunable parameters by name.
func (p Params) Map() map[string]float64 {
	return map[string]float64{
		"du":             p.Du,
		"dv":             p.Dv,
		"f":              p.F,
		"k":              p.K,
		"reaction_scale": p.ReactionScale,
		"dt":             p.Dt,
		"tmax":           float64(p.TMax),
	}
}

// With returns a copy of p with the named parameter replaced. The copy is
// validated before it is returned.
func (p Params) With(name string, value float64) (Params, error) {
	orig := p
	switch name {
	case "du":
		p.Du = value
	case "dv":
		p.Dv = value
	case "f":
		p.F = value
	case "k":
		p.K = value
	case "reaction_scale":
		p.ReactionScale = value
	case "dt":
		p.Dt = value
	case "dx":
		p.Dx = value
	case "tmax":
		if value != math.Trunc(value) {
			return orig, &ParamError{Name: name, Value: value, Reason: "must be an integer"}
		}
		p.TMax = int(value)
	default:
		return orig, &ParamError{Name: name, Value: value, Reason: "unknown parameter"}
	}
	if err := p.Validate(); err != nil {
		return orig, err
	}
	return p, nil
}

// ParamNames lists the tunable parameter names in display order.
func ParamNames() []string {
	return []string{"du", "dv", "f", "k", "reaction_scale", "dt", "tmax"}
}
