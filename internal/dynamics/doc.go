// Package dynamics provides the forcing terms of the state equations that
// the transcription layer discretizes.
//
// A [Model] supplies, for one collocation sample, the forcing vector f of
// the continuous dynamics s' = f(s) together with its closed-form partial
// derivatives. The transcription machinery never differentiates anything
// numerically; every Jacobian entry comes from [Model.Partials].
//
//   - [PointMass]: point mass sliding under gravity with linear drag,
//     the brachistochrone-with-friction dynamics
//
// Swapping the model swaps the dynamics family while the discretization and
// Jacobian assembly stay fixed.
package dynamics
