// Package errs holds the sentinel errors shared across the compiler and
// evaluator packages. Callers use errors.Is against these to classify a
// failure without parsing message text.
package errs

import "errors"

var (
	// ErrSyntax marks a malformed statement or expression.
	ErrSyntax = errors.New("scdl: syntax error")

	// ErrAlreadyDeclared marks a redeclaration of an existing symbol.
	ErrAlreadyDeclared = errors.New("scdl: symbol already declared")

	// ErrUnknown marks a reference to a symbol, circuit, or file that
	// does not exist.
	ErrUnknown = errors.New("scdl: unknown reference")

	// ErrArity marks a function call with the wrong number of arguments.
	ErrArity = errors.New("scdl: wrong number of arguments")

	// ErrBounds marks an array index outside its declared length.
	ErrBounds = errors.New("scdl: index out of bounds")

	// ErrNotWellFormed marks a gate graph that violates a structural
	// invariant (dangling fan-in, forward reference, out-of-range input).
	ErrNotWellFormed = errors.New("scdl: circuit not well formed")

	// ErrInternal marks a condition the compiler believes cannot happen;
	// seeing it means an invariant elsewhere has a bug.
	ErrInternal = errors.New("scdl: internal compiler error")
)
