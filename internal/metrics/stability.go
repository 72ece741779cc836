package metrics

import (
	"math"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
)

// Stability is the fraction of observed steps whose field stayed finite and
// below threshold. It also remembers the first step that broke either rule.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
	firstBad   int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
		firstBad:  -1,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(f *dynamo.Field, t int) {
	s.samples++
	if s.ok(f.U) && s.ok(f.V) {
		return
	}
	s.violations++
	if s.firstBad < 0 {
		s.firstBad = t
	}
}

func (s *Stability) ok(c []float64) bool {
	for _, x := range c {
		if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) > s.threshold {
			return false
		}
	}
	return true
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

// FirstViolation is the step of the first unstable field, or -1.
func (s *Stability) FirstViolation() int { return s.firstBad }

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
	s.firstBad = -1
}
