package dynamo

import "math/rand/v2"

// Perturbation amplitudes and the pattern seed placed in the centre cell.
const (
	noiseAmplitude = 0.05
	SeedU          = 0.3
	SeedV          = 0.6
)

// NewRand returns a reproducible source for Initialize.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Initialize allocates an n×n field near the homogeneous steady state
// (U≈1, V≈0) with a single seeded cell in the centre. A nil rng draws from the
// unseeded global source, so each call differs.
func Initialize(n int, rng *rand.Rand) (*Field, error) {
	f, err := NewField(n)
	if err != nil {
		return nil, err
	}
	f.Seed(rng)
	return f, nil
}

// Seed overwrites f in place with a fresh initial condition.
func (f *Field) Seed(rng *rand.Rand) {
	uniform := rand.Float64
	if rng != nil {
		uniform = rng.Float64
	}
	for k := range f.U {
		f.U[k] = 1 + noiseAmplitude*(uniform()-0.5)
		f.V[k] = noiseAmplitude * (uniform() - 0.5)
	}
	c := f.N / 2
	f.Set(c, c, SeedU, SeedV)
}
