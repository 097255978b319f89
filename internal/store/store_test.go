package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciphron/scdl"
)

func mustCompile(t *testing.T, src string) *scdl.Program {
	t.Helper()
	p, err := scdl.Compile(strings.NewReader(src))
	require.NoError(t, err)
	return p
}

func TestProgramStore_SaveAndGet(t *testing.T) {
	s := New()

	p1 := mustCompile(t, "input a\ninput b\nfunc out = a*b\n")
	p2 := mustCompile(t, "input x\nfunc out = x+x\n")

	id1 := s.Save(p1)
	id2 := s.Save(p2)
	assert.NotEqual(t, id1, id2)

	got1, err := s.Get(id1)
	require.NoError(t, err)
	assert.Same(t, p1, got1)

	got2, err := s.Get(id2)
	require.NoError(t, err)
	assert.Same(t, p2, got2)
}

func TestProgramStore_GetMissing(t *testing.T) {
	s := New()
	p, err := s.Get("nonexistent")
	assert.Error(t, err)
	assert.Nil(t, p)
}
