package metrics

import (
	"math"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
)

// Stats summarises one committed field.
type Stats struct {
	MinU, MaxU, MeanU float64
	MinV, MaxV, MeanV float64
}

// ComputeStats scans f once. NaNs propagate into the means and are skipped by
// min/max.
func ComputeStats(f *dynamo.Field) Stats {
	s := Stats{
		MinU: math.Inf(1), MaxU: math.Inf(-1),
		MinV: math.Inf(1), MaxV: math.Inf(-1),
	}
	if f == nil || f.Len() == 0 {
		return Stats{}
	}
	sumU, sumV := 0.0, 0.0
	for k := range f.U {
		u, v := f.U[k], f.V[k]
		sumU += u
		sumV += v
		s.MinU = math.Min(s.MinU, u)
		s.MaxU = math.Max(s.MaxU, u)
		s.MinV = math.Min(s.MinV, v)
		s.MaxV = math.Max(s.MaxV, v)
	}
	n := float64(f.Len())
	s.MeanU = sumU / n
	s.MeanV = sumV / n
	return s
}

// MeanConcentration reports the spatial mean of one species in the most
// recently observed field.
type MeanConcentration struct {
	name    string
	species byte
	value   float64
}

// NewMeanU tracks the activator.
func NewMeanU() *MeanConcentration { return &MeanConcentration{name: "mean_u", species: 'u'} }

// NewMeanV tracks the inhibitor.
func NewMeanV() *MeanConcentration { return &MeanConcentration{name: "mean_v", species: 'v'} }

func (m *MeanConcentration) Name() string { return m.name }

func (m *MeanConcentration) Observe(f *dynamo.Field, t int) {
	c := f.U
	if m.species == 'v' {
		c = f.V
	}
	sum := 0.0
	for _, x := range c {
		sum += x
	}
	m.value = sum / float64(len(c))
}

func (m *MeanConcentration) Value() float64 { return m.value }
func (m *MeanConcentration) Reset()         { m.value = 0 }
