// Package circuit freezes a validated gate DAG into an immutable Circuit
// and evaluates it against a concrete input vector over any ring-like
// element type.
package circuit

import (
	"fmt"

	"github.com/ciphron/scdl/errs"
	"github.com/ciphron/scdl/gate"
)

// Circuit is a gate DAG rooted at a single gate, frozen at build time with
// its multiplicative depth and gate counts precomputed. Multiple Circuits
// built from the same gate.Builder arena share one backing gate slice and
// differ only in Root — this is what lets common subexpressions be shared
// not just within a circuit but across every circuit in a program.
type Circuit struct {
	gates   []gate.Gate
	root    int
	nInputs int

	depth     int
	nAdd      int
	nMult     int
	reachable []bool
}

// New validates the subgraph of gates reachable from root and freezes it
// into a Circuit. gates is typically a full program's shared arena
// (gate.Builder.Gates()); only the part of it that root actually depends
// on is inspected. nInputs bounds every Input gate's In field.
func New(gates []gate.Gate, root, nInputs int) (*Circuit, error) {
	if root < 0 || root >= len(gates) {
		return nil, fmt.Errorf("%w: root index %d out of range [0,%d)", errs.ErrNotWellFormed, root, len(gates))
	}

	c := &Circuit{gates: gates, root: root, nInputs: nInputs}
	reachable, depth, nAdd, nMult, err := c.analyze()
	if err != nil {
		return nil, err
	}
	c.reachable, c.depth, c.nAdd, c.nMult = reachable, depth, nAdd, nMult
	return c, nil
}

// analyze walks the subgraph reachable from root exactly once, in two
// linear passes over the shared gate slice's [0, root] prefix: a backward
// pass marks which gates are actually reachable (and validates structural
// invariants along the way), then a forward pass computes each reachable
// gate's multiplicative depth. Because gates are always appended in
// postorder, a child's index is always less than its parent's, so neither
// pass needs recursion or a separate topological sort.
func (c *Circuit) analyze() (reachable []bool, depth, nAdd, nMult int, err error) {
	n := c.root + 1
	reachable = make([]bool, n)
	reachable[c.root] = true

	for i := n - 1; i >= 0; i-- {
		if !reachable[i] {
			continue
		}
		g := c.gates[i]
		switch g.Kind {
		case gate.Input:
			if g.In < 0 || g.In >= c.nInputs {
				return nil, 0, 0, 0, fmt.Errorf("%w: gate %d reads input %d, have %d inputs", errs.ErrNotWellFormed, i, g.In, c.nInputs)
			}
		case gate.Add, gate.Multiply:
			if g.L < 0 || g.R < 0 || g.L >= i || g.R >= i {
				return nil, 0, 0, 0, fmt.Errorf("%w: gate %d has an invalid child reference", errs.ErrNotWellFormed, i)
			}
			if g.Kind == gate.Add {
				nAdd++
			} else {
				nMult++
			}
			reachable[g.L] = true
			reachable[g.R] = true
		default:
			return nil, 0, 0, 0, fmt.Errorf("%w: gate %d has unknown kind %v", errs.ErrNotWellFormed, i, g.Kind)
		}
	}

	depths := make([]int, n)
	for i := 0; i < n; i++ {
		if !reachable[i] {
			continue
		}
		g := c.gates[i]
		switch g.Kind {
		case gate.Input:
			depths[i] = 0
		case gate.Add:
			depths[i] = max(depths[g.L], depths[g.R])
		case gate.Multiply:
			depths[i] = 1 + max(depths[g.L], depths[g.R])
		}
	}

	return reachable, depths[c.root], nAdd, nMult, nil
}

// NumInputs is the size of the input vector Evaluate expects.
func (c *Circuit) NumInputs() int { return c.nInputs }

// Depth is the circuit's multiplicative depth: the longest chain of
// Multiply gates from an input to the root, counting only multiplies.
func (c *Circuit) Depth() int { return c.depth }

// NumAdd is the number of distinct Add gates reachable from the root.
func (c *Circuit) NumAdd() int { return c.nAdd }

// NumMultiply is the number of distinct Multiply gates reachable from
// the root.
func (c *Circuit) NumMultiply() int { return c.nMult }

// NumGates is the number of distinct gates (inputs included) reachable
// from the root.
func (c *Circuit) NumGates() int {
	n := 0
	for _, r := range c.reachable {
		if r {
			n++
		}
	}
	return n
}

// Root returns the index of the circuit's output gate within its shared
// gate slice.
func (c *Circuit) Root() int { return c.root }
