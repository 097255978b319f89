// Package gf2 is the canonical ring element for circuits compiled from
// SCDL source: a single bit of GF(2), where addition is XOR and
// multiplication is AND.
package gf2

import "fmt"

// Bit is an element of GF(2). Only 0 and 1 are valid values.
type Bit uint8

// Zero and One are the two elements of GF(2).
const (
	Zero Bit = 0
	One  Bit = 1
)

// Add returns b XOR o.
func (b Bit) Add(o Bit) Bit { return b ^ o }

// Mul returns b AND o.
func (b Bit) Mul(o Bit) Bit { return b & o }

func (b Bit) String() string {
	if b != 0 {
		return "1"
	}
	return "0"
}

// FromInt maps any nonzero int to One and zero to Zero.
func FromInt(v int) Bit {
	if v != 0 {
		return One
	}
	return Zero
}

// FromBool maps true to One and false to Zero.
func FromBool(v bool) Bit {
	if v {
		return One
	}
	return Zero
}

// Bits converts a slice of ints (each expected to be 0 or 1) to Bit,
// returning an error naming the first offending value.
func Bits(vs []int) ([]Bit, error) {
	out := make([]Bit, len(vs))
	for i, v := range vs {
		if v != 0 && v != 1 {
			return nil, fmt.Errorf("gf2: value %d at index %d is not a bit", v, i)
		}
		out[i] = Bit(v)
	}
	return out, nil
}
