package ast

import (
	"math/big"
	"testing"
)

func sampleProgram() *Scope {
	return Block(
		Let("x", Bin(BinaryAdd, Int(2), Bin(BinaryMultiply, Int(3), Int(4)))),
		Print(Un(UnaryNegate, Bin(BinaryPower, ID("x"), Flt(2)))),
		Iff(Block(Ret(Bin(BinaryEqual, ID("x"), Int(14)))), Print(Str("yes"))),
		ArrLen(Int(3), Bool(true), Str("a\"b")),
		Block(Ret(Un(UnaryAbs, Int(5)))),
	)
}

func TestWalkVisitsEveryNodeType(t *testing.T) {
	seen := make(map[NodeType]int)
	Walk(sampleProgram(), func(n Node) bool {
		seen[n.NodeType()]++
		return true
	})
	for _, kind := range NodeTypes {
		if seen[kind] == 0 {
			t.Fatalf("expected walk to visit %s, saw %v", kind, seen)
		}
	}
}

func TestWalkCanSkipChildren(t *testing.T) {
	count := 0
	Walk(sampleProgram(), func(n Node) bool {
		count++
		return n.NodeType() != NodeScope
	})
	if count != 1 {
		t.Fatalf("expected only the root to be visited, got %d", count)
	}
}

func TestSetSpan(t *testing.T) {
	lit := Int(1)
	span := Span{Start: Position{Line: 2, Column: 3}, End: Position{Line: 2, Column: 4}}
	SetSpan(lit, span)
	if lit.Span() != span {
		t.Fatalf("span mismatch: got %+v, want %+v", lit.Span(), span)
	}
	SetSpan(nil, span)
}

func TestEqualIgnoresSpans(t *testing.T) {
	a := sampleProgram()
	b := sampleProgram()
	SetSpan(b.Body[0], Span{Start: Position{Line: 9, Column: 9}})
	if !Equal(a, b) {
		t.Fatalf("expected trees to be equal")
	}
}

func TestEqualDetectsDifferences(t *testing.T) {
	cases := []struct {
		name string
		a, b Node
	}{
		{"int vs float", Int(1), Flt(1)},
		{"int value", Int(1), Int(2)},
		{"big int", NewIntegerLiteral(new(big.Int).Lsh(big.NewInt(1), 80)), Int(0)},
		{"operator", Bin(BinaryAdd, Int(1), Int(2)), Bin(BinarySubtract, Int(1), Int(2))},
		{"unary operator", Un(UnaryAbs, Int(1)), Un(UnaryNegate, Int(1))},
		{"length", Arr(Int(1)), ArrLen(Int(1), Int(1))},
		{"names", Let("a", Int(1)), Let("b", Int(1))},
		{"body size", Block(Print(Int(1))), Block()},
		{"node type", Print(Int(1)), Ret(Int(1))},
	}
	for _, tc := range cases {
		if Equal(tc.a, tc.b) {
			t.Fatalf("%s: expected nodes to differ", tc.name)
		}
	}
}

func TestFormatExpressions(t *testing.T) {
	cases := []struct {
		expr Expression
		want string
	}{
		{Bin(BinaryAdd, Int(2), Bin(BinaryMultiply, Int(3), Int(4))), "2 + 3 * 4"},
		{Bin(BinaryMultiply, Bin(BinaryAdd, Int(2), Int(3)), Int(4)), "(2 + 3) * 4"},
		{Bin(BinarySubtract, Int(1), Bin(BinarySubtract, Int(2), Int(3))), "1 - (2 - 3)"},
		{Bin(BinaryPower, Int(2), Bin(BinaryPower, Int(3), Int(2))), "2 ^ 3 ^ 2"},
		{Bin(BinaryPower, Bin(BinaryPower, Int(2), Int(3)), Int(2)), "(2 ^ 3) ^ 2"},
		{Un(UnaryNegate, Bin(BinaryPower, Int(2), Int(2))), "-2 ^ 2"},
		{Bin(BinaryPower, Un(UnaryNegate, Int(2)), Int(2)), "(-2) ^ 2"},
		{Bin(BinaryPower, Int(2), Un(UnaryNegate, Int(1))), "2 ^ -1"},
		{Un(UnaryNegate, Bin(BinaryAdd, Int(1), Int(2))), "-(1 + 2)"},
		{Bin(BinaryEqual, Bin(BinaryLess, Int(1), Int(2)), Bool(true)), "1 < 2 == true"},
		{Flt(2), "2.0"},
		{Flt(0.5), "0.5"},
		{Str("a\n\"b\""), `"a\n\"b\""`},
		{ArrLen(Int(3), Int(1), ID("x")), "[1, x]: [3]"},
		{Arr(), "[]"},
	}
	for _, tc := range cases {
		if got := Format(tc.expr); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestFormatProgram(t *testing.T) {
	program := Block(
		Let("x", Int(1)),
		Iff(Bin(BinaryEqual, ID("x"), Int(1)), Print(ID("x"))),
		Block(),
	)
	want := "let x = 1;\nif x == 1 then {\n  print x;\n};\n{};\n"
	if got := FormatProgram(program); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
