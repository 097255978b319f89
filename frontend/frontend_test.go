package frontend

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/ciphron/scdl/errs"
)

func compileString(t *testing.T, src string) *Result {
	t.Helper()
	c := NewCompilation(fstest.MapFS{})
	if err := c.Compile(strings.NewReader(src)); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	res, err := c.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	return res
}

func TestInputStatement_DefaultAndExplicitLength(t *testing.T) {
	res := compileString(t, `
input a
input v:3
func out = a
`)
	if res.Variables["a"].Len != 1 {
		t.Errorf("a.Len = %d, want 1", res.Variables["a"].Len)
	}
	if res.Variables["v"].Len != 3 {
		t.Errorf("v.Len = %d, want 3", res.Variables["v"].Len)
	}
	if res.NVarInputs != 4 {
		t.Errorf("NVarInputs = %d, want 4", res.NVarInputs)
	}
}

func TestConstantStatement_RelocatedPastVariables(t *testing.T) {
	res := compileString(t, `
input a
input b
constant k = 1
func out = a+k
`)
	if res.NVarInputs != 2 {
		t.Fatalf("NVarInputs = %d, want 2", res.NVarInputs)
	}
	ci, ok := res.Constants["k"]
	if !ok {
		t.Fatal("constant k missing")
	}
	if ci.Index != 2 {
		t.Errorf("k.Index = %d, want 2 (placed right after the 2 variable bits)", ci.Index)
	}
	if ci.Value != 1 {
		t.Errorf("k.Value = %d, want 1", ci.Value)
	}
}

func TestMultipleConstants_SequentialFinalIndices(t *testing.T) {
	res := compileString(t, `
input a
constant k0 = 5
constant k1 = 7
func out = a
`)
	if res.Constants["k0"].Index != 1 || res.Constants["k1"].Index != 2 {
		t.Errorf("k0.Index=%d k1.Index=%d, want 1,2", res.Constants["k0"].Index, res.Constants["k1"].Index)
	}
}

func TestFuncStatement_SharedSubexpressionDedups(t *testing.T) {
	res := compileString(t, `
input a
input b
func out = (a+b)*(a+b)
`)
	// 2 inputs + 1 add + 1 mul = 4 gates total in the arena.
	if len(res.Gates) != 4 {
		t.Errorf("len(Gates) = %d, want 4 (CSE should dedup the repeated a+b)", len(res.Gates))
	}
}

func TestFuncStatement_ParameterizedFunctionIsNotACircuit(t *testing.T) {
	res := compileString(t, `
input a
input b
func add2(x, y) = x+y
func out = add2(a,b)
`)
	if len(res.CircuitOrder) != 1 || res.CircuitOrder[0] != "out" {
		t.Errorf("CircuitOrder = %v, want only [out]", res.CircuitOrder)
	}
}

func TestFuncStatement_ThreeFunctionComposition(t *testing.T) {
	// maj(a,b,c) = a*b + b*c + a*c, built from two-input helpers.
	res := compileString(t, `
input a
input b
input c
func and2(x, y) = x*y
func maj = and2(a,b) + and2(b,c) + and2(a,c)
`)
	if len(res.CircuitOrder) != 1 || res.CircuitOrder[0] != "maj" {
		t.Fatalf("CircuitOrder = %v", res.CircuitOrder)
	}
	if _, ok := res.CircuitRoots["maj"]; !ok {
		t.Fatal("maj was not lowered to a circuit")
	}
}

func TestFuncStatement_ArrayParameterCalledWithVectorVariable(t *testing.T) {
	res := compileString(t, `
input a:3
func sum3(v:3) = v[0]+v[1]+v[2]
func out = sum3(a)
`)
	if _, ok := res.CircuitRoots["out"]; !ok {
		t.Fatal("out was not lowered to a circuit")
	}
	if res.Variables["a"].Len != 3 {
		t.Errorf("a.Len = %d, want 3", res.Variables["a"].Len)
	}
}

func TestIncludeStatement_SharesCompilationState(t *testing.T) {
	fsys := fstest.MapFS{
		"lib.scdl": &fstest.MapFile{Data: []byte("input shared\n")},
	}
	c := NewCompilation(fsys)
	err := c.Compile(strings.NewReader(`
include "lib.scdl"
func out = shared
`))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	res, err := c.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if _, ok := res.Variables["shared"]; !ok {
		t.Fatal("variable declared in the included file should be visible after include")
	}
}

func TestIncludeStatement_MissingFileIsUnknownError(t *testing.T) {
	c := NewCompilation(fstest.MapFS{})
	err := c.Compile(strings.NewReader(`include "nope.scdl"`))
	if !errors.Is(err, errs.ErrUnknown) {
		t.Fatalf("got %v, want ErrUnknown", err)
	}
}

func TestCommentsAndBlankLinesAreSkipped(t *testing.T) {
	res := compileString(t, `
# a leading comment

input a

# another comment
func out = a
`)
	if res.NVarInputs != 1 {
		t.Errorf("NVarInputs = %d, want 1", res.NVarInputs)
	}
}

func TestLineContinuation(t *testing.T) {
	res := compileString(t, "input a\ninput b\nfunc out = a+\\\nb\n")
	if _, ok := res.CircuitRoots["out"]; !ok {
		t.Fatal("continued line was not parsed as a single statement")
	}
}

func TestUnknownStatementIsSyntaxError(t *testing.T) {
	c := NewCompilation(fstest.MapFS{})
	err := c.Compile(strings.NewReader("bogus statement here\n"))
	if !errors.Is(err, errs.ErrSyntax) {
		t.Fatalf("got %v, want ErrSyntax", err)
	}
}

func TestDuplicateDeclarationIsAlreadyDeclaredError(t *testing.T) {
	c := NewCompilation(fstest.MapFS{})
	err := c.Compile(strings.NewReader("input a\ninput a\n"))
	if !errors.Is(err, errs.ErrAlreadyDeclared) {
		t.Fatalf("got %v, want ErrAlreadyDeclared", err)
	}
}

func TestCompilationImplementsParserEnv(t *testing.T) {
	c := NewCompilation(fstest.MapFS{})
	if c.Symbols() == nil || c.Gates() == nil {
		t.Fatal("Symbols()/Gates() must not be nil")
	}
	first := c.NextInput()
	second := c.NextInput()
	if second != first+1 {
		t.Errorf("NextInput should hand out sequential slots, got %d then %d", first, second)
	}
}
