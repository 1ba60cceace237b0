package ast

// SetSpan annotates the node with the provided span.
func SetSpan(node Node, span Span) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setSpan(Span) }); ok {
		setter.setSpan(span)
	}
}

// Children returns the direct child nodes of node in source order.
func Children(node Node) []Node {
	switch n := node.(type) {
	case *ArrayLiteral:
		out := make([]Node, 0, len(n.Elements)+1)
		for _, el := range n.Elements {
			out = append(out, el)
		}
		if n.Length != nil {
			out = append(out, n.Length)
		}
		return out
	case *VariableAssign:
		return []Node{n.Value}
	case *Scope:
		out := make([]Node, 0, len(n.Body))
		for _, stmt := range n.Body {
			out = append(out, stmt)
		}
		return out
	case *IfExpression:
		return []Node{n.Condition, n.Action}
	case *PrintStatement:
		return []Node{n.Expression}
	case *ReturnStatement:
		return []Node{n.Expression}
	case *BinaryExpression:
		return []Node{n.Left, n.Right}
	case *UnaryExpression:
		return []Node{n.Operand}
	default:
		return nil
	}
}

// Walk visits node and its descendants depth first. Returning false from fn
// skips the children of the current node.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, child := range Children(node) {
		Walk(child, fn)
	}
}
