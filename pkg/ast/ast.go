package ast

import "math/big"

type NodeType string

const (
	NodeNumberLiteral  NodeType = "NumberLiteral"
	NodeBooleanLiteral NodeType = "BooleanLiteral"
	NodeStringLiteral  NodeType = "StringLiteral"
	NodeArrayLiteral   NodeType = "ArrayLiteral"
	NodeVariableAccess NodeType = "VariableAccess"
	NodeVariableAssign NodeType = "VariableAssign"
	NodeScope          NodeType = "Scope"
	NodeIf             NodeType = "If"
	NodePrint          NodeType = "Print"
	NodeReturn         NodeType = "Return"
	NodeBinaryOp       NodeType = "BinaryOp"
	NodeUnaryOp        NodeType = "UnaryOp"
)

// NodeTypes lists every node variant.
var NodeTypes = []NodeType{
	NodeNumberLiteral,
	NodeBooleanLiteral,
	NodeStringLiteral,
	NodeArrayLiteral,
	NodeVariableAccess,
	NodeVariableAssign,
	NodeScope,
	NodeIf,
	NodePrint,
	NodeReturn,
	NodeBinaryOp,
	NodeUnaryOp,
}

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	span Span
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.span }
func (nodeImpl) isNode()              {}
func (n *nodeImpl) setSpan(span Span) { n.span = span }

// Marker interfaces.

// Expression nodes may also appear as bare statements.
type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Literals

// NumberLiteral holds either an integer (Int != nil) or a float.
type NumberLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Int   *big.Int `json:"int,omitempty"`
	Float float64  `json:"float,omitempty"`
}

func NewIntegerLiteral(value *big.Int) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Int: value}
}

func NewFloatLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Float: value}
}

func (n *NumberLiteral) IsFloat() bool { return n.Int == nil }

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

// ArrayLiteral is `[e1, e2]` with an optional `: [N]` length annotation.
// Length is nil when the annotation is absent.
type ArrayLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Length   Expression   `json:"length,omitempty"`
	Elements []Expression `json:"elements"`
}

func NewArrayLiteral(length Expression, elements []Expression) *ArrayLiteral {
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Length: length, Elements: elements}
}

// Variables

type VariableAccess struct {
	nodeImpl
	expressionMarker
	statementMarker

	Name string `json:"name"`
}

func NewVariableAccess(name string) *VariableAccess {
	return &VariableAccess{nodeImpl: newNodeImpl(NodeVariableAccess), Name: name}
}

type VariableAssign struct {
	nodeImpl
	statementMarker

	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

func NewVariableAssign(name string, value Expression) *VariableAssign {
	return &VariableAssign{nodeImpl: newNodeImpl(NodeVariableAssign), Name: name, Value: value}
}

// Control flow

// Scope is a braced statement list. A program is the implicit top-level Scope.
type Scope struct {
	nodeImpl
	expressionMarker
	statementMarker

	Body []Statement `json:"body"`
}

func NewScope(body []Statement) *Scope {
	return &Scope{nodeImpl: newNodeImpl(NodeScope), Body: body}
}

// IfExpression runs Action when Condition is true. Condition is either a
// *Scope or any other expression.
type IfExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Condition Expression `json:"condition"`
	Action    *Scope     `json:"action"`
}

func NewIfExpression(condition Expression, action *Scope) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIf), Condition: condition, Action: action}
}

type PrintStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewPrintStatement(expr Expression) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrint), Expression: expr}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewReturnStatement(expr Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturn), Expression: expr}
}

// Operators

type BinaryOperator string

const (
	BinaryAdd          BinaryOperator = "+"
	BinarySubtract     BinaryOperator = "-"
	BinaryMultiply     BinaryOperator = "*"
	BinaryDivide       BinaryOperator = "/"
	BinaryPower        BinaryOperator = "^"
	BinaryEqual        BinaryOperator = "=="
	BinaryNotEqual     BinaryOperator = "!="
	BinaryLess         BinaryOperator = "<"
	BinaryGreater      BinaryOperator = ">"
	BinaryLessEqual    BinaryOperator = "<="
	BinaryGreaterEqual BinaryOperator = ">="
)

type UnaryOperator string

const (
	UnaryNegate UnaryOperator = "-"
	UnaryAbs    UnaryOperator = "+"
)

type BinaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator BinaryOperator `json:"operator"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func NewBinaryExpression(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryOp), Operator: operator, Left: left, Right: right}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryExpression(operator UnaryOperator, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryOp), Operator: operator, Operand: operand}
}
