package gate

// operation is the structural-identity key used for common-subexpression
// elimination: two binary gates with the same (kind, l, r) triple are the
// same gate and must share one index.
type operation struct {
	kind Kind
	l, r int
}

// Builder grows a single shared gate arena across an entire compiled
// program. Every closed circuit in a program is just a different root
// index into the same Builder's slice, so subexpressions shared across
// functions — not just within one — are deduplicated for free.
//
// A Builder is not safe for concurrent use; compilation is single-threaded.
type Builder struct {
	gates []Gate
	ops   map[operation]int
}

// NewBuilder returns an empty arena.
func NewBuilder() *Builder {
	return &Builder{ops: make(map[operation]int)}
}

// NewInput appends a fresh Input gate for input index i and returns its
// index. Input gates are never deduplicated against each other: every
// call appends a new gate, even for an input index already in use. The
// compiler calls it once per declared variable bit and per constant, and
// every later reference to that bit reuses the gate recorded in the
// symbol table.
func (b *Builder) NewInput(i int) int {
	b.gates = append(b.gates, NewInput(i))
	return len(b.gates) - 1
}

// NewOp returns the index of a gate computing kind(l, r), reusing an
// existing gate if one with the identical (kind, l, r) triple already
// exists.
func (b *Builder) NewOp(kind Kind, l, r int) int {
	key := operation{kind, l, r}
	if idx, ok := b.ops[key]; ok {
		return idx
	}
	var g Gate
	switch kind {
	case Add:
		g = NewAdd(l, r)
	case Multiply:
		g = NewMultiply(l, r)
	default:
		panic("gate: NewOp called with non-binary kind")
	}
	b.gates = append(b.gates, g)
	idx := len(b.gates) - 1
	b.ops[key] = idx
	return idx
}

// Len returns the number of gates allocated so far.
func (b *Builder) Len() int { return len(b.gates) }

// Gates returns the accumulated gate slice. The slice is only safe to
// retain once the caller is done mutating the Builder, since later
// NewInput/NewOp calls may grow the backing array.
func (b *Builder) Gates() []Gate { return b.gates }

// RelocateInput rewrites the input index of an existing Input gate. It
// exists solely for the end-of-compilation relocation pass that shifts
// constants' tentative input slots past the final count of variable
// input bits; it must never be used once a Circuit has been built from
// the arena.
func (b *Builder) RelocateInput(idx, newInput int) {
	if b.gates[idx].Kind != Input {
		panic("gate: RelocateInput on a non-input gate")
	}
	b.gates[idx].In = newInput
}
