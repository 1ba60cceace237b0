package interpreter

import (
	"errors"
	"fmt"

	"delta/interpreter-go/pkg/ast"
	"delta/interpreter-go/pkg/runtime"
)

// RuntimeError attaches the span of the failing node to an evaluation error.
// The cause stays reachable through errors.Is and errors.As.
type RuntimeError struct {
	Span ast.Span
	Node ast.NodeType
	Err  error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at %d:%d: %v", e.Span.Start.Line, e.Span.Start.Column, e.Err)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// wrapError annotates err with node's span unless an inner node already did.
func wrapError(node ast.Node, err error) error {
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		return err
	}
	return &RuntimeError{Span: node.Span(), Node: node.NodeType(), Err: err}
}

// returnSignal carries a return value up to the scope the return statement
// was written in.
type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string {
	return "return"
}
