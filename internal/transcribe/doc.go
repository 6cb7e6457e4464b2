// Package transcribe turns a continuous trajectory problem into the
// algebraic residuals and sparse Jacobian an NLP solver consumes.
//
// A [Transcriber] is built once per solve from a [dynamics.Model], the
// discretization parameters, the first-difference operator and the solver's
// sparsity [Pattern]. It is immutable afterwards; [Transcriber.Evaluate] is
// a pure function of the trial decision vector and may be called from
// several goroutines at once.
//
// The decision vector of length 4n+4 packs, in order: the x trajectory
// (n+1 samples), the y trajectory (n+1), the speed trajectory (n+1), the
// heading trajectory (n) and the free final time. The residual vector of
// length 3n+6 packs the objective proxy tf, the three dynamics blocks (n
// rows each) and the five boundary conditions. [Layout] maps between block
// coordinates and flat indices.
//
// The difference operators are applied unscaled; the step dt = (tf-t0)/n
// multiplies only the forcing terms. The operator part of every residual is
// therefore exactly linear in the decision vector, which keeps the split
// between linear and nonlinear Jacobian contributions available to callers
// that want it.
package transcribe
