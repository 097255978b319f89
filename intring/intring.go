// Package intring provides a plain machine-integer ring element, used to
// demonstrate (and test) that the evaluator in package circuit is generic
// over any element type with Add/Mul, not just GF(2) bits.
package intring

// Int64 is ordinary wrapping int64 arithmetic lifted to satisfy
// circuit.Elem.
type Int64 int64

// Add returns a + b with normal int64 wraparound.
func (a Int64) Add(b Int64) Int64 { return a + b }

// Mul returns a * b with normal int64 wraparound.
func (a Int64) Mul(b Int64) Int64 { return a * b }
