// Package analysis measures the patterns a run produces.
//
//   - [RadialSpectrum]: ring-averaged 2D power spectrum of U
//   - [DominantWavelength]: spacing in cells of the strongest spatial mode
//   - [DominantPeriod]: strongest oscillation in a sampled time series
//
// # Pattern Scale
//
// A settled spot or stripe pattern has a characteristic spacing:
//
//	lambda, err := analysis.DominantWavelength(sim.Field())
//	if errors.Is(err, analysis.ErrNoPattern) {
//	    // field is still uniform
//	}
package analysis
