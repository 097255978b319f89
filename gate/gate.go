// Package gate defines the gate DAG: the immutable, indexed representation
// of an arithmetic circuit over GF(2) (or any ring with Add/Mul) that the
// rest of the module builds, validates, and evaluates.
//
// A circuit is a flat slice of Gate values. Every gate's children are
// referenced by index into that slice, and by construction a child's
// index is always less than its parent's — the slice is already in
// postorder, so no separate topological sort is ever needed.
package gate

// Kind identifies what a Gate computes.
type Kind uint8

const (
	// Input reads one bit (or ring element) from the circuit's input
	// vector; it has no children.
	Input Kind = iota
	// Add computes L + R.
	Add
	// Multiply computes L * R.
	Multiply
)

func (k Kind) String() string {
	switch k {
	case Input:
		return "input"
	case Add:
		return "add"
	case Multiply:
		return "multiply"
	default:
		return "unknown"
	}
}

// Gate is one node of the DAG. For Kind == Input, In is the index into the
// circuit's input vector. For Kind == Add or Multiply, L and R index two
// earlier gates in the same slice (L, R < the gate's own index).
type Gate struct {
	Kind Kind
	In   int
	L, R int
}

// NewInput returns an Input gate reading input index i.
func NewInput(i int) Gate { return Gate{Kind: Input, In: i} }

// NewAdd returns an Add gate over children l and r.
func NewAdd(l, r int) Gate { return Gate{Kind: Add, L: l, R: r} }

// NewMultiply returns a Multiply gate over children l and r.
func NewMultiply(l, r int) Gate { return Gate{Kind: Multiply, L: l, R: r} }
