package core

import "math/rand"

// RandSource yields independent uniform draws in the half-open range [0,1).
// The Human resolution policy consumes one draw per selection pass
// (Competitive) or one per brain (Cooperative).
type RandSource interface {
	Float64() float64
}

// RandFunc adapts a plain function to the RandSource interface.
type RandFunc func() float64

// Float64 implements RandSource.
func (f RandFunc) Float64() float64 { return f() }

// DefaultRand returns the process-wide math/rand source.
func DefaultRand() RandSource {
	return RandFunc(rand.Float64)
}
