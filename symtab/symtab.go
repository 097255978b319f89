// Package symtab holds the single namespace shared by variables,
// constants, and functions declared while compiling an SCDL program.
// Every name is declared at most once; lookups resolve a bare identifier
// to whichever kind of symbol claimed it.
package symtab

import (
	"fmt"

	"github.com/ciphron/scdl/errs"
	"github.com/ciphron/scdl/token"
)

// Kind identifies what a Symbol represents.
type Kind uint8

const (
	KindVariable Kind = iota
	KindConstant
	KindFunction
)

// Variable records an input variable's bit width, the gate index of its
// first bit (Base, used internally to resolve expression references),
// and the index of its first bit within the circuit's flat input vector
// (VarIndex, used by external callers assembling that vector). Bit i of
// the variable lives at gate Base+i and input-vector slot VarIndex+i.
type Variable struct {
	Len      int
	Base     int
	VarIndex int
}

// Constant records an integer constant's value and the index of the
// Input gate holding it. That gate's input slot starts out tentative
// (offset from 0) during compilation and is shifted by the final
// variable-input count during the end-of-compile relocation pass; see
// package frontend.
type Constant struct {
	Value int
	Gate  int
}

// Function records a function declaration. Params is empty for a closed
// (zero-argument) function. A closed function is lowered to gates as
// soon as it is declared, and Root/Lowered record where; a parameterized
// function instead keeps its body as a token stream, to be inlined at
// each call site.
type Function struct {
	Params  []string
	Body    []token.Token
	Root    int
	Lowered bool
}

// Symbol is one declared name, tagged by Kind; only the field matching
// Kind is meaningful.
type Symbol struct {
	Kind     Kind
	Name     string
	Variable Variable
	Constant Constant
	Function Function
}

// Table is the flat, single-namespace symbol table for one compilation.
// It is not safe for concurrent use; compilation is single-threaded.
type Table struct {
	order []string
	syms  map[string]*Symbol
}

// New returns an empty table.
func New() *Table {
	return &Table{syms: make(map[string]*Symbol)}
}

// Declare adds sym under name. It fails with errs.ErrAlreadyDeclared if
// name is already taken.
func (t *Table) Declare(name string, sym Symbol) (*Symbol, error) {
	if _, ok := t.syms[name]; ok {
		return nil, fmt.Errorf("%s: %w", name, errs.ErrAlreadyDeclared)
	}
	sym.Name = name
	t.syms[name] = &sym
	t.order = append(t.order, name)
	return t.syms[name], nil
}

// Lookup returns the symbol declared under name, if any.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	s, ok := t.syms[name]
	return s, ok
}

// Names returns every declared name in declaration order.
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// NamesOfKind returns every declared name of the given kind, in
// declaration order.
func (t *Table) NamesOfKind(k Kind) []string {
	var out []string
	for _, name := range t.order {
		if t.syms[name].Kind == k {
			out = append(out, name)
		}
	}
	return out
}
