package metrics

import "github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"

// BlowUpThreshold is the concentration considered numerically unstable.
const BlowUpThreshold = 1e6

// Defaults returns the metric set attached to every run.
func Defaults() []dynamo.Metric {
	return []dynamo.Metric{
		NewMeanU(),
		NewMeanV(),
		NewStability(BlowUpThreshold),
		NewActivity(),
	}
}
