// Package metrics aggregates statistics over trial-point evaluations, e.g.
// across a sweep or a multi-start batch.
package metrics

import "github.com/san-kum/trajopt/internal/transcribe"

type Metric interface {
	Name() string
	Observe(e *transcribe.Evaluation)
	Value() float64
	Reset()
}
