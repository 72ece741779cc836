// Package physics provides the Gray-Scott reaction-diffusion model.
//
// The model is split into its two local operators:
//
//   - [Laplacian]: 9-point edge-clamped diffusion stencil
//   - [React]: Gray-Scott reaction kinetics for a single cell
//
// [GrayScott] combines both into per-cell rates and implements
// [dynamo.Configurable] for runtime parameter adjustment:
//
//	gs := physics.NewGrayScott(dynamo.DefaultParams())
//	_ = gs.SetParam("f", 0.035)
//	du, dv := gs.Rates(field, i, j)
package physics
