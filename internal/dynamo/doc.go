// Package dynamo provides the core data types of the reaction-diffusion lab.
//
// The package defines the grid state and configuration shared by every other
// package:
//
//   - [Field]: the activator (U) and inhibitor (V) concentration grids
//   - [State]: the double buffer the integrator advances, plus the step counter
//   - [Params]: diffusion, kinetic and numerical parameters
//   - [Initialize]: near-homogeneous initial condition with a central seed
//   - [Metric], [Observer]: hooks notified after every committed step
//
// # Example
//
//	f, _ := dynamo.Initialize(150, dynamo.NewRand(42))
//	st, _ := dynamo.NewState(f)
//	euler := integrators.NewEuler()
//	_ = euler.Step(st, dynamo.DefaultParams())
//
// # Thread Safety
//
// Field and State are NOT thread-safe. The integrator only writes the scratch
// buffer while a step is in flight; readers must use the committed field
// between steps.
package dynamo
