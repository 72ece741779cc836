package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
)

// ErrNoPattern is returned when the field or series carries no variation to
// measure.
var ErrNoPattern = errors.New("analysis: no pattern (signal is flat)")

// RadialSpectrum returns the power of the mean-removed U field averaged over
// rings of equal wavenumber. Index r holds wavenumber r in cycles per grid,
// for r = 0..N/2.
func RadialSpectrum(f *dynamo.Field) []float64 {
	n := f.N
	mean := 0.0
	for _, u := range f.U {
		mean += u
	}
	mean /= float64(len(f.U))

	grid := make([][]float64, n)
	for i := 0; i < n; i++ {
		grid[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			grid[i][j] = f.U[f.Index(i, j)] - mean
		}
	}
	spec := fft.FFT2Real(grid)

	bins := n/2 + 1
	power := make([]float64, bins)
	counts := make([]int, bins)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			r := int(math.Round(math.Hypot(float64(fold(a, n)), float64(fold(b, n)))))
			if r >= bins {
				continue
			}
			m := cmplx.Abs(spec[a][b])
			power[r] += m * m
			counts[r]++
		}
	}
	for r := range power {
		if counts[r] > 0 {
			power[r] /= float64(counts[r])
		}
	}
	return power
}

// fold maps an FFT index onto a signed frequency.
func fold(k, n int) int {
	if k > n/2 {
		return k - n
	}
	return k
}

// DominantWavelength is the spacing, in cells, of the strongest spatial
// frequency in U.
func DominantWavelength(f *dynamo.Field) (float64, error) {
	r, err := peak(RadialSpectrum(f))
	if err != nil {
		return 0, err
	}
	return float64(f.N) / float64(r), nil
}

// DominantPeriod finds the strongest oscillation in a sampled series, such as
// mean U over time. The result is in samples.
func DominantPeriod(series []float64) (float64, error) {
	if len(series) < 4 {
		return 0, ErrNoPattern
	}
	mean := 0.0
	for _, x := range series {
		mean += x
	}
	mean /= float64(len(series))
	centred := make([]float64, len(series))
	for i, x := range series {
		centred[i] = x - mean
	}

	spec := fft.FFTReal(centred)
	ps := make([]float64, len(spec)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	k, err := peak(ps)
	if err != nil {
		return 0, err
	}
	return float64(len(series)) / float64(k), nil
}

// peak returns the index of the largest non-DC bin.
func peak(ps []float64) (int, error) {
	best, bestPower := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > bestPower {
			best, bestPower = k, ps[k]
		}
	}
	if best == 0 || bestPower < 1e-18 {
		return 0, ErrNoPattern
	}
	return best, nil
}
