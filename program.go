// Package scdl compiles and runs Simple Circuit Description Language
// source: a small DSL that describes arithmetic circuits — typed bit
// inputs, integer constants, and functions built from + and * — and
// lowers them into a shared gate DAG with structural common-subexpression
// elimination, ready to be evaluated over any ring-like element type.
package scdl

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ciphron/scdl/circuit"
	"github.com/ciphron/scdl/errs"
	"github.com/ciphron/scdl/frontend"
)

// Variable describes one declared input variable: its bit width and the
// index of its first bit within every circuit's flat input vector.
type Variable struct {
	Len   int
	Index int
}

// Constant describes one declared constant: its value and its fixed slot
// in every circuit's input vector, placed after all variable bits.
type Constant struct {
	Value int
	Index int
}

// Program is a compiled SCDL source file: every closed (zero-argument)
// function becomes a named Circuit, and every circuit in the program
// shares one physical gate DAG, so subexpressions common to two
// functions — not just within one — are stored once.
type Program struct {
	circuits  map[string]*circuit.Circuit
	circOrder []string

	variables map[string]Variable
	varOrder  []string

	constants map[string]Constant
	constOrder []string

	nVarInputs int
	nInputs    int
}

// Compile compiles SCDL source read from r. Any "include" statement is
// resolved relative to the current working directory.
func Compile(r io.Reader) (*Program, error) {
	return CompileFS(osFS{}, r)
}

// CompileFile compiles the named SCDL source file; its includes are
// resolved relative to its own directory.
func CompileFile(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, errs.ErrUnknown)
	}
	defer f.Close()
	return CompileFS(osFS{dir: filepath.Dir(path)}, f)
}

// CompileFS compiles SCDL source read from r, resolving include
// statements against fsys. Use this to compile from an in-memory
// filesystem (e.g. fstest.MapFS) in tests, or from an embed.FS.
func CompileFS(fsys fs.FS, r io.Reader) (*Program, error) {
	comp := frontend.NewCompilation(fsys)
	if err := comp.Compile(r); err != nil {
		return nil, err
	}
	res, err := comp.Finish()
	if err != nil {
		return nil, err
	}
	return fromResult(res)
}

func fromResult(res *frontend.Result) (*Program, error) {
	p := &Program{
		circuits:   make(map[string]*circuit.Circuit, len(res.CircuitOrder)),
		circOrder:  res.CircuitOrder,
		variables:  make(map[string]Variable, len(res.Variables)),
		varOrder:   res.VarOrder,
		constants:  make(map[string]Constant, len(res.Constants)),
		constOrder: res.ConstOrder,
		nVarInputs: res.NVarInputs,
		nInputs:    res.NVarInputs + res.NConstants,
	}

	for name, root := range res.CircuitRoots {
		c, err := circuit.New(res.Gates, root, p.nInputs)
		if err != nil {
			return nil, fmt.Errorf("circuit %q: %w", name, err)
		}
		p.circuits[name] = c
	}
	for name, v := range res.Variables {
		p.variables[name] = Variable{Len: v.Len, Index: v.Index}
	}
	for name, ci := range res.Constants {
		p.constants[name] = Constant{Value: ci.Value, Index: ci.Index}
	}
	return p, nil
}

// CircuitNames returns the name of every compiled circuit, in the order
// its defining "func" statement was compiled.
func (p *Program) CircuitNames() []string { return append([]string(nil), p.circOrder...) }

// GetCircuit returns the named circuit.
func (p *Program) GetCircuit(name string) (*circuit.Circuit, bool) {
	c, ok := p.circuits[name]
	return c, ok
}

// VariableNames returns the name of every declared variable, in
// declaration order.
func (p *Program) VariableNames() []string { return append([]string(nil), p.varOrder...) }

// GetVariable returns the named variable's bit width and base index.
func (p *Program) GetVariable(name string) (Variable, bool) {
	v, ok := p.variables[name]
	return v, ok
}

// ConstantNames returns the name of every declared constant, in
// declaration order — also the order GetConstantAt indexes into.
func (p *Program) ConstantNames() []string { return append([]string(nil), p.constOrder...) }

// GetConstant returns the named constant's value and input slot.
func (p *Program) GetConstant(name string) (Constant, bool) {
	c, ok := p.constants[name]
	return c, ok
}

// GetConstantAt returns the i-th declared constant.
func (p *Program) GetConstantAt(i int) (Constant, bool) {
	if i < 0 || i >= len(p.constOrder) {
		return Constant{}, false
	}
	return p.GetConstant(p.constOrder[i])
}

// NumVarInputs is the number of variable-controlled input bits, i.e. the
// length of the varInputs slice Run expects.
func (p *Program) NumVarInputs() int { return p.nVarInputs }

// NumInputs is the total circuit input width: variable bits followed by
// constants.
func (p *Program) NumInputs() int { return p.nInputs }

// Run evaluates the named circuit against varInputs followed by every
// declared constant (in declaration order, converted to T via toElem),
// which together form the circuit's full input vector.
func Run[T circuit.Elem[T]](p *Program, name string, varInputs []T, toElem func(int) T) (T, error) {
	var zero T
	c, ok := p.GetCircuit(name)
	if !ok {
		return zero, fmt.Errorf("%s: %w", name, errs.ErrUnknown)
	}

	inputs := make([]T, 0, p.nInputs)
	inputs = append(inputs, varInputs...)
	for _, name := range p.constOrder {
		inputs = append(inputs, toElem(p.constants[name].Value))
	}
	return circuit.Evaluate(c, inputs)
}

// osFS resolves include paths relative to dir (the working directory, if
// dir is empty) using the real filesystem.
type osFS struct{ dir string }

func (f osFS) Open(name string) (fs.File, error) {
	if f.dir != "" {
		name = filepath.Join(f.dir, name)
	}
	return os.Open(name)
}
