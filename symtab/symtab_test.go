package symtab

import (
	"errors"
	"testing"

	"github.com/ciphron/scdl/errs"
)

func TestDeclareAndLookup(t *testing.T) {
	tbl := New()
	sym, err := tbl.Declare("a", Symbol{Kind: KindVariable, Variable: Variable{Len: 1, Base: 0, VarIndex: 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sym.Name != "a" {
		t.Errorf("Declare did not set Name, got %q", sym.Name)
	}

	got, ok := tbl.Lookup("a")
	if !ok || got.Variable.Len != 1 {
		t.Fatalf("Lookup(a) = %+v, %v", got, ok)
	}

	if _, ok := tbl.Lookup("nope"); ok {
		t.Error("Lookup of undeclared name succeeded")
	}
}

func TestDeclareDuplicate(t *testing.T) {
	tbl := New()
	if _, err := tbl.Declare("a", Symbol{Kind: KindVariable}); err != nil {
		t.Fatalf("first Declare failed: %v", err)
	}
	_, err := tbl.Declare("a", Symbol{Kind: KindConstant})
	if !errors.Is(err, errs.ErrAlreadyDeclared) {
		t.Fatalf("expected ErrAlreadyDeclared, got %v", err)
	}
}

func TestNamesOrderAndKind(t *testing.T) {
	tbl := New()
	tbl.Declare("a", Symbol{Kind: KindVariable})
	tbl.Declare("k", Symbol{Kind: KindConstant})
	tbl.Declare("f", Symbol{Kind: KindFunction})
	tbl.Declare("b", Symbol{Kind: KindVariable})

	names := tbl.Names()
	want := []string{"a", "k", "f", "b"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	vars := tbl.NamesOfKind(KindVariable)
	if len(vars) != 2 || vars[0] != "a" || vars[1] != "b" {
		t.Fatalf("NamesOfKind(Variable) = %v", vars)
	}
}
