package circuit

import (
	"fmt"

	"github.com/ciphron/scdl/gate"
)

// Elem is satisfied by any ring-like element type: it can add and
// multiply with another value of the same type and return the result by
// value. GF(2) bits, machine integers, and modular integers all satisfy
// it, which is what lets Evaluate run the same gate DAG over any of them.
type Elem[T any] interface {
	Add(T) T
	Mul(T) T
}

// Evaluate reduces c against inputs with a memoized postorder pass: every
// gate is computed at most once and its value cached by index. This is
// the default and the only mode that should be used outside of
// benchmarking — see EvaluateNoStore.
func Evaluate[T Elem[T]](c *Circuit, inputs []T) (T, error) {
	var zero T
	if len(inputs) < c.nInputs {
		return zero, fmt.Errorf("circuit: got %d inputs, need %d", len(inputs), c.nInputs)
	}

	stored := make([]T, c.root+1)
	done := make([]bool, c.root+1)

	var eval func(i int) T
	eval = func(i int) T {
		if done[i] {
			return stored[i]
		}
		g := c.gates[i]
		var v T
		switch g.Kind {
		case gate.Input:
			v = inputs[g.In]
		case gate.Add:
			v = eval(g.L).Add(eval(g.R))
		case gate.Multiply:
			v = eval(g.L).Mul(eval(g.R))
		}
		stored[i] = v
		done[i] = true
		return v
	}

	return eval(c.root), nil
}

// EvaluateNoStore reduces c against inputs without memoizing intermediate
// results: every reference to a shared gate re-walks its whole subtree.
// On a circuit with no shared subexpressions it costs the same as
// Evaluate; on one relying on structural sharing — which is exactly the
// kind the gate builder's common-subexpression elimination produces — its
// cost is exponential in depth. It exists to make that cost visible in
// benchmarks, not as an alternative for production use; callers should
// use Evaluate.
func EvaluateNoStore[T Elem[T]](c *Circuit, inputs []T) (T, error) {
	var zero T
	if len(inputs) < c.nInputs {
		return zero, fmt.Errorf("circuit: got %d inputs, need %d", len(inputs), c.nInputs)
	}

	var eval func(i int) T
	eval = func(i int) T {
		g := c.gates[i]
		switch g.Kind {
		case gate.Input:
			return inputs[g.In]
		case gate.Add:
			return eval(g.L).Add(eval(g.R))
		case gate.Multiply:
			return eval(g.L).Mul(eval(g.R))
		}
		var zero T
		return zero
	}

	return eval(c.root), nil
}
