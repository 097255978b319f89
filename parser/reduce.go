package parser

import (
	"fmt"

	"github.com/ciphron/scdl/errs"
	"github.com/ciphron/scdl/gate"
	"github.com/ciphron/scdl/token"
)

// Reduce consumes a fully-resolved postfix token stream (no Argument
// tokens left — i.e. the body of a closed, zero-parameter function) and
// lowers it into gates via b, returning the index of the resulting root
// gate.
//
// Operands push their gate index; each operator pops its right operand
// first, then its left, and pushes the combined gate — the usual
// stack-machine evaluation of a postfix stream, which happens to pop in
// right-before-left order while still combining them in left-then-right
// order.
func Reduce(b *gate.Builder, tokens []token.Token) (int, error) {
	var stack []int
	pop := func() (int, error) {
		if len(stack) == 0 {
			return 0, fmt.Errorf("%w: malformed expression (operator with no operand)", errs.ErrSyntax)
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v, nil
	}

	for _, t := range tokens {
		switch t.Kind {
		case token.Operand, token.Circuit:
			stack = append(stack, t.Gate)
		case token.Add, token.Mul:
			r, err := pop()
			if err != nil {
				return 0, err
			}
			l, err := pop()
			if err != nil {
				return 0, err
			}
			kind := gate.Add
			if t.Kind == token.Mul {
				kind = gate.Multiply
			}
			stack = append(stack, b.NewOp(kind, l, r))
		case token.Argument:
			return 0, fmt.Errorf("%w: unresolved parameter %q in a closed expression", errs.ErrInternal, t.Name)
		default:
			return 0, fmt.Errorf("%w: unexpected token in postfix stream", errs.ErrInternal)
		}
	}

	if len(stack) != 1 {
		return 0, fmt.Errorf("%w: malformed expression", errs.ErrSyntax)
	}
	return stack[0], nil
}
