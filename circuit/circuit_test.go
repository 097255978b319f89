package circuit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ciphron/scdl/gate"
	"github.com/ciphron/scdl/gf2"
	"github.com/ciphron/scdl/intring"
)

// buildSharedAdd builds (a+b)*(a+b) via a gate.Builder and returns its root.
func buildSharedAdd(b *gate.Builder) (root, nInputs int) {
	a := b.NewInput(0)
	c := b.NewInput(1)
	add := b.NewOp(gate.Add, a, c)
	mul := b.NewOp(gate.Multiply, add, add)
	return mul, 2
}

func TestCircuit_SharedSubexpressionIsOneGate(t *testing.T) {
	b := gate.NewBuilder()
	root, nInputs := buildSharedAdd(b)

	circ, err := New(b.Gates(), root, nInputs)
	require.NoError(t, err)

	require.Equal(t, 4, circ.NumGates(), "want 2 inputs + 1 add + 1 mul deduped to 4 gates")
	require.Equal(t, 1, circ.NumAdd())
	require.Equal(t, 1, circ.NumMultiply())
}

func TestCircuit_Depth(t *testing.T) {
	// a * b * c * d, left-associative: ((a*b)*c)*d -> three multiplies deep.
	b := gate.NewBuilder()
	a := b.NewInput(0)
	bb := b.NewInput(1)
	c := b.NewInput(2)
	d := b.NewInput(3)
	ab := b.NewOp(gate.Multiply, a, bb)
	abc := b.NewOp(gate.Multiply, ab, c)
	abcd := b.NewOp(gate.Multiply, abc, d)

	circ, err := New(b.Gates(), abcd, 4)
	require.NoError(t, err)
	require.Equal(t, 3, circ.Depth())
	require.Equal(t, 3, circ.NumMultiply())
	require.Equal(t, 0, circ.NumAdd())
}

func TestCircuit_NotWellFormedBadInputIndex(t *testing.T) {
	b := gate.NewBuilder()
	root := b.NewInput(5) // nInputs will be 1, so index 5 is out of range
	_, err := New(b.Gates(), root, 1)
	require.Error(t, err)
}

func TestCircuit_NotWellFormedRootOutOfRange(t *testing.T) {
	b := gate.NewBuilder()
	b.NewInput(0)
	_, err := New(b.Gates(), 99, 1)
	require.Error(t, err)
}

func TestEvaluate_GF2(t *testing.T) {
	// out = a*b + a
	b := gate.NewBuilder()
	a := b.NewInput(0)
	bb := b.NewInput(1)
	mul := b.NewOp(gate.Multiply, a, bb)
	root := b.NewOp(gate.Add, mul, a)

	circ, err := New(b.Gates(), root, 2)
	require.NoError(t, err)

	cases := []struct {
		a, bv, want gf2.Bit
	}{
		{1, 0, 1},
		{1, 1, 0},
		{0, 0, 0},
		{0, 1, 0},
	}
	for _, tc := range cases {
		got, err := Evaluate(circ, []gf2.Bit{tc.a, tc.bv})
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "a=%v b=%v", tc.a, tc.bv)

		got2, err := EvaluateNoStore(circ, []gf2.Bit{tc.a, tc.bv})
		require.NoError(t, err)
		require.Equal(t, tc.want, got2)
	}
}

func TestEvaluate_GenericOverIntRing(t *testing.T) {
	b := gate.NewBuilder()
	a := b.NewInput(0)
	bb := b.NewInput(1)
	root := b.NewOp(gate.Add, a, bb)

	circ, err := New(b.Gates(), root, 2)
	require.NoError(t, err)

	got, err := Evaluate(circ, []intring.Int64{3, 4})
	require.NoError(t, err)
	require.Equal(t, intring.Int64(7), got)
}

func TestEvaluate_TooFewInputs(t *testing.T) {
	b := gate.NewBuilder()
	root := b.NewInput(0)
	circ, err := New(b.Gates(), root, 1)
	require.NoError(t, err)

	_, err = Evaluate(circ, []gf2.Bit{})
	require.Error(t, err)
}

func TestEvaluate_MemoizedMatchesNoStoreOnDeeplySharedCircuit(t *testing.T) {
	// Chain of repeated squaring shares every subexpression maximally:
	// x1 = a*a, x2 = x1*x1, x3 = x2*x2, ... EvaluateNoStore on this is
	// exponential in depth, so keep it small.
	b := gate.NewBuilder()
	cur := b.NewInput(0)
	for i := 0; i < 6; i++ {
		cur = b.NewOp(gate.Multiply, cur, cur)
	}
	circ, err := New(b.Gates(), cur, 1)
	require.NoError(t, err)

	got, err := Evaluate(circ, []gf2.Bit{1})
	require.NoError(t, err)
	gotNoStore, err := EvaluateNoStore(circ, []gf2.Bit{1})
	require.NoError(t, err)
	require.Equal(t, got, gotNoStore)
}
