package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ciphron/scdl"
	"github.com/ciphron/scdl/gf2"
)

func TestRunBatch(t *testing.T) {
	p, err := scdl.Compile(strings.NewReader("input a\ninput b\nfunc out = a*b+a\n"))
	require.NoError(t, err)

	c, ok := p.GetCircuit("out")
	require.True(t, ok)

	inputs := make([][]gf2.Bit, 0, 4)
	for _, a := range []gf2.Bit{0, 1} {
		for _, b := range []gf2.Bit{0, 1} {
			inputs = append(inputs, []gf2.Bit{a, b})
		}
	}

	r := New(Options{Workers: 2})
	results := RunBatch(r, c, inputs)
	require.Len(t, results, 4)

	for _, res := range results {
		require.NoError(t, res.Err)
		a, b := inputs[res.Index][0], inputs[res.Index][1]
		want := a.Mul(b).Add(a)
		require.Equal(t, want, res.Value, "input %d", res.Index)
	}
}

func TestRunBatch_Empty(t *testing.T) {
	p, err := scdl.Compile(strings.NewReader("input a\nfunc out = a+a\n"))
	require.NoError(t, err)
	c, _ := p.GetCircuit("out")

	r := New(Options{})
	results := RunBatch[gf2.Bit](r, c, nil)
	require.Empty(t, results)
}
