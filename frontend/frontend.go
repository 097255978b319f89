// Package frontend is the statement driver: it reads SCDL source
// statement by statement, dispatching each to the symbol table, gate
// arena, and expression parser, and performs the end-of-compilation
// relocation pass that gives constants their final input slots.
package frontend

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/ciphron/scdl/errs"
	"github.com/ciphron/scdl/gate"
	"github.com/ciphron/scdl/parser"
	"github.com/ciphron/scdl/symtab"
)

// VarInfo is a compiled variable's bit width and the index of its first
// bit within a circuit's flat input vector.
type VarInfo struct {
	Len   int
	Index int
}

// ConstInfo is a compiled constant's value and final slot in the
// circuit's input vector.
type ConstInfo struct {
	Value int
	Index int
}

// Result is everything a finished compilation produced: the shared gate
// arena and the metadata needed to turn it into named circuits.
type Result struct {
	Gates        []gate.Gate
	CircuitRoots map[string]int
	CircuitOrder []string
	Variables    map[string]VarInfo
	VarOrder     []string
	Constants    map[string]ConstInfo
	ConstOrder   []string
	NVarInputs   int
	NConstants   int
}

// Compilation is one compiler run: a symbol table, a shared gate arena,
// and the running variable-input counter, threaded through every
// statement (including included files, which share this exact state).
// It is not safe for concurrent use.
type Compilation struct {
	syms  *symtab.Table
	arena *gate.Builder
	fsys  fs.FS

	nVarInputs   int
	circuitOrder []string
}

// NewCompilation starts an empty compilation. fsys resolves the paths
// named by include statements; pass os.DirFS(dir) to include files
// relative to a directory, or an fstest.MapFS for hermetic tests.
func NewCompilation(fsys fs.FS) *Compilation {
	return &Compilation{
		syms:  symtab.New(),
		arena: gate.NewBuilder(),
		fsys:  fsys,
	}
}

// Symbols implements parser.Env.
func (c *Compilation) Symbols() *symtab.Table { return c.syms }

// Gates implements parser.Env.
func (c *Compilation) Gates() *gate.Builder { return c.arena }

// NextInput implements parser.Env: it allocates and returns the next
// variable-input slot.
func (c *Compilation) NextInput() int {
	v := c.nVarInputs
	c.nVarInputs++
	return v
}

// Compile reads statements from r until EOF, dispatching each in turn.
// It may be called more than once on the same Compilation (that is how
// include statements work): every call shares the same symbol table,
// gate arena, and input counters.
func (c *Compilation) Compile(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var pending strings.Builder
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if strings.HasSuffix(line, `\`) {
			pending.WriteString(strings.TrimSuffix(line, `\`))
			pending.WriteString(" ")
			continue
		}
		pending.WriteString(line)
		stmt := strings.TrimSpace(pending.String())
		pending.Reset()
		if err := c.statement(stmt); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrSyntax, err)
	}
	if strings.TrimSpace(pending.String()) != "" {
		return fmt.Errorf("%w: line continuation at end of input", errs.ErrSyntax)
	}
	return nil
}

func (c *Compilation) statement(stmt string) error {
	if stmt == "" || strings.HasPrefix(stmt, "#") {
		return nil
	}

	kw, rest := stmt, ""
	if i := strings.IndexAny(stmt, " \t"); i >= 0 {
		kw, rest = stmt[:i], strings.TrimSpace(stmt[i:])
	}

	switch kw {
	case "input":
		return c.inputStmt(rest)
	case "constant":
		return c.constantStmt(rest)
	case "include":
		return c.includeStmt(rest)
	case "func":
		return c.funcStmt(rest)
	default:
		return fmt.Errorf("%w: unknown statement %q", errs.ErrSyntax, kw)
	}
}

func (c *Compilation) inputStmt(rest string) error {
	name, lenStr, hasLen := strings.Cut(rest, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: input: missing name", errs.ErrSyntax)
	}

	length := 1
	if hasLen {
		n, err := strconv.Atoi(strings.TrimSpace(lenStr))
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: input %s: length must be a positive integer", errs.ErrSyntax, name)
		}
		length = n
	}

	base, varIndex := -1, -1
	for i := 0; i < length; i++ {
		vi := c.NextInput()
		g := c.arena.NewInput(vi)
		if i == 0 {
			base, varIndex = g, vi
		}
	}

	_, err := c.syms.Declare(name, symtab.Symbol{
		Kind:     symtab.KindVariable,
		Variable: symtab.Variable{Len: length, Base: base, VarIndex: varIndex},
	})
	return err
}

func (c *Compilation) constantStmt(rest string) error {
	name, valStr, ok := strings.Cut(rest, "=")
	if !ok {
		return fmt.Errorf("%w: constant: expected NAME = INT", errs.ErrSyntax)
	}
	name = strings.TrimSpace(name)
	val, err := strconv.Atoi(strings.TrimSpace(valStr))
	if err != nil {
		return fmt.Errorf("%w: constant %s: %v", errs.ErrSyntax, name, err)
	}

	// Constants are numbered 0, 1, 2, ... in declaration order for now;
	// Finish shifts every one of these tentative slots past the final
	// variable-input count, once that count is known.
	tentative := len(c.syms.NamesOfKind(symtab.KindConstant))
	g := c.arena.NewInput(tentative)

	_, err = c.syms.Declare(name, symtab.Symbol{
		Kind:     symtab.KindConstant,
		Constant: symtab.Constant{Value: val, Gate: g},
	})
	return err
}

func (c *Compilation) includeStmt(rest string) error {
	path, err := unquote(rest)
	if err != nil {
		return err
	}
	f, err := c.fsys.Open(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, errs.ErrUnknown)
	}
	defer f.Close()
	return c.Compile(f)
}

func (c *Compilation) funcStmt(rest string) error {
	eq := strings.Index(rest, "=")
	if eq < 0 {
		return fmt.Errorf("%w: func: expected '='", errs.ErrSyntax)
	}
	header := strings.TrimSpace(rest[:eq])
	expr := strings.TrimSpace(rest[eq+1:])

	name, params, err := parseFuncHeader(header)
	if err != nil {
		return err
	}

	body, err := parser.Parse(c, expr, params)
	if err != nil {
		return fmt.Errorf("func %s: %w", name, err)
	}

	fn := symtab.Function{Params: params, Body: body}
	if len(params) == 0 {
		root, err := parser.Reduce(c.arena, body)
		if err != nil {
			return fmt.Errorf("func %s: %w", name, err)
		}
		fn.Root = root
		fn.Lowered = true
		c.circuitOrder = append(c.circuitOrder, name)
	}

	_, err = c.syms.Declare(name, symtab.Symbol{Kind: symtab.KindFunction, Function: fn})
	return err
}

func parseFuncHeader(header string) (name string, params []string, err error) {
	lp := strings.Index(header, "(")
	if lp < 0 {
		name = strings.TrimSpace(header)
		if name == "" {
			return "", nil, fmt.Errorf("%w: func: missing name", errs.ErrSyntax)
		}
		return name, nil, nil
	}
	if !strings.HasSuffix(header, ")") {
		return "", nil, fmt.Errorf("%w: func: unterminated parameter list", errs.ErrSyntax)
	}
	name = strings.TrimSpace(header[:lp])
	if name == "" {
		return "", nil, fmt.Errorf("%w: func: missing name", errs.ErrSyntax)
	}
	for _, raw := range strings.Split(header[lp+1:len(header)-1], ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		pname, lenStr, hasLen := strings.Cut(raw, ":")
		pname = strings.TrimSpace(pname)
		if !hasLen {
			params = append(params, pname)
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(lenStr))
		if err != nil || n <= 0 {
			return "", nil, fmt.Errorf("%w: func %s: parameter %s: length must be a positive integer", errs.ErrSyntax, name, pname)
		}
		for j := 0; j < n; j++ {
			params = append(params, parser.ArrayParamName(pname, j))
		}
	}
	return name, params, nil
}

func unquote(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("%w: include: expected a quoted path", errs.ErrSyntax)
	}
	return s[1 : len(s)-1], nil
}

// Finish performs the end-of-compilation relocation pass — every
// constant's tentative input slot is shifted past the final count of
// variable-input bits, so the final input layout is
// [variable bits | constants] — and gathers the metadata needed to
// build the program's named circuits.
func (c *Compilation) Finish() (*Result, error) {
	constNames := c.syms.NamesOfKind(symtab.KindConstant)
	constants := make(map[string]ConstInfo, len(constNames))
	for i, name := range constNames {
		sym, _ := c.syms.Lookup(name)
		finalIndex := c.nVarInputs + i
		c.arena.RelocateInput(sym.Constant.Gate, finalIndex)
		constants[name] = ConstInfo{Value: sym.Constant.Value, Index: finalIndex}
	}

	varNames := c.syms.NamesOfKind(symtab.KindVariable)
	variables := make(map[string]VarInfo, len(varNames))
	for _, name := range varNames {
		sym, _ := c.syms.Lookup(name)
		variables[name] = VarInfo{Len: sym.Variable.Len, Index: sym.Variable.VarIndex}
	}

	circuits := make(map[string]int, len(c.circuitOrder))
	for _, name := range c.circuitOrder {
		sym, _ := c.syms.Lookup(name)
		circuits[name] = sym.Function.Root
	}

	return &Result{
		Gates:        c.arena.Gates(),
		CircuitRoots: circuits,
		CircuitOrder: append([]string(nil), c.circuitOrder...),
		Variables:    variables,
		VarOrder:     varNames,
		Constants:    constants,
		ConstOrder:   constNames,
		NVarInputs:   c.nVarInputs,
		NConstants:   len(constNames),
	}, nil
}
