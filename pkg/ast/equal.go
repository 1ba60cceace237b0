package ast

// Equal reports whether a and b are structurally identical, ignoring spans.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.NodeType() != b.NodeType() {
		return false
	}
	switch x := a.(type) {
	case *NumberLiteral:
		y := b.(*NumberLiteral)
		if x.IsFloat() != y.IsFloat() {
			return false
		}
		if x.IsFloat() {
			return x.Float == y.Float
		}
		return x.Int.Cmp(y.Int) == 0
	case *BooleanLiteral:
		return x.Value == b.(*BooleanLiteral).Value
	case *StringLiteral:
		return x.Value == b.(*StringLiteral).Value
	case *VariableAccess:
		return x.Name == b.(*VariableAccess).Name
	case *VariableAssign:
		if x.Name != b.(*VariableAssign).Name {
			return false
		}
	case *BinaryExpression:
		if x.Operator != b.(*BinaryExpression).Operator {
			return false
		}
	case *UnaryExpression:
		if x.Operator != b.(*UnaryExpression).Operator {
			return false
		}
	case *ArrayLiteral:
		y := b.(*ArrayLiteral)
		if len(x.Elements) != len(y.Elements) || (x.Length == nil) != (y.Length == nil) {
			return false
		}
	}
	left, right := Children(a), Children(b)
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if !Equal(left[i], right[i]) {
			return false
		}
	}
	return true
}
