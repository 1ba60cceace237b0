package interpreter

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"delta/interpreter-go/pkg/ast"
	"delta/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.VariableAssign:
		return i.evaluateVariableAssign(n)
	case *ast.PrintStatement:
		return i.evaluatePrintStatement(n)
	case *ast.ReturnStatement:
		return i.evaluateReturnStatement(n)
	case ast.Expression:
		return i.evaluateExpression(n)
	default:
		return nil, fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

// evaluateScope runs body statements in a fresh child frame. A return written
// directly in this scope stops it and supplies the result; the frame is popped
// on every exit path.
func (i *Interpreter) evaluateScope(scope *ast.Scope) (runtime.Value, error) {
	depth := i.scopes.Push()
	i.log.WithField("depth", depth).Trace("push scope")
	defer func() {
		bindings := i.scopes.Current().Len()
		i.scopes.Pop()
		i.log.WithFields(logrus.Fields{"depth": depth, "bindings": bindings}).Trace("pop scope")
	}()

	for _, stmt := range scope.Body {
		if _, err := i.evaluateStatement(stmt); err != nil {
			if sig, ok := err.(returnSignal); ok {
				return sig.value, nil
			}
			return nil, err
		}
	}
	return runtime.None, nil
}

func (i *Interpreter) evaluateVariableAssign(assign *ast.VariableAssign) (runtime.Value, error) {
	val, err := i.evaluateExpression(assign.Value)
	if err != nil {
		return nil, err
	}
	i.scopes.Assign(assign.Name, val)
	return runtime.None, nil
}

func (i *Interpreter) evaluatePrintStatement(stmt *ast.PrintStatement) (runtime.Value, error) {
	val, err := i.evaluateExpression(stmt.Expression)
	if err != nil {
		return nil, err
	}
	text := val.String()
	i.log.WithField("kind", val.Kind()).Trace("print")
	if _, err := fmt.Fprintln(i.out, text); err != nil {
		return nil, wrapError(stmt, fmt.Errorf("write output: %w", err))
	}
	return runtime.None, nil
}

func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStatement) (runtime.Value, error) {
	val, err := i.evaluateExpression(stmt.Expression)
	if err != nil {
		return nil, err
	}
	return nil, returnSignal{value: val}
}
