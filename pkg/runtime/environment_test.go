package runtime

import "testing"

func TestScopeChainStartsWithRoot(t *testing.T) {
	chain := NewScopeChain()
	if chain.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", chain.Depth())
	}
	if chain.Current() != chain.Root() || chain.Root().Parent() != -1 {
		t.Fatalf("expected the root frame to be current")
	}
	chain.Pop()
	if chain.Depth() != 1 {
		t.Fatalf("expected root frame to survive Pop, got depth %d", chain.Depth())
	}
}

func TestScopeChainGetUnboundIsNone(t *testing.T) {
	chain := NewScopeChain()
	if got := chain.Get("missing"); got != None {
		t.Fatalf("expected None, got %#v", got)
	}
	if _, ok := chain.Resolve("missing"); ok {
		t.Fatalf("expected Resolve to miss")
	}
}

func TestScopeChainAssignMutatesOwner(t *testing.T) {
	chain := NewScopeChain()
	chain.Assign("x", NewInt(1))
	chain.Push()
	chain.Assign("x", NewInt(2))
	chain.Assign("y", NewInt(3))

	if chain.Current().Len() != 1 {
		t.Fatalf("expected only y in the child frame, got %v", chain.Current().Keys())
	}
	owner, ok := chain.Resolve("x")
	if !ok || owner != chain.Root() {
		t.Fatalf("expected root to own x")
	}
	chain.Pop()
	if got := chain.Get("x").String(); got != "2" {
		t.Fatalf("expected ancestor binding to be updated, got %s", got)
	}
	if got := chain.Get("y"); got != None {
		t.Fatalf("expected y to disappear with its frame, got %#v", got)
	}
}

func TestScopeChainNearestOwnerWins(t *testing.T) {
	chain := NewScopeChain()
	chain.Assign("x", NewInt(1))
	chain.Push()
	chain.Current().Define("x", NewInt(10))
	chain.Push()
	chain.Assign("x", NewInt(20))
	owner, ok := chain.Resolve("x")
	if !ok || owner == chain.Root() || owner == chain.Current() {
		t.Fatalf("expected the middle frame to own x")
	}
	if got, _ := owner.Lookup("x"); got.String() != "20" {
		t.Fatalf("expected nearest frame to be updated, got %s", got)
	}
	if got, _ := chain.Root().Lookup("x"); got.String() != "1" {
		t.Fatalf("expected root binding untouched, got %s", got)
	}
}

func TestScopeChainPushReturnsDepth(t *testing.T) {
	chain := NewScopeChain()
	if depth := chain.Push(); depth != 2 {
		t.Fatalf("expected depth 2, got %d", depth)
	}
	if chain.Current().Parent() != 0 {
		t.Fatalf("expected parent index 0, got %d", chain.Current().Parent())
	}
}

func TestEnvironmentKeysKeepInsertionOrder(t *testing.T) {
	env := NewEnvironment(-1)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		env.Define(name, None)
	}
	env.Define("alpha", NewInt(1))
	keys := env.Keys()
	want := []string{"zeta", "alpha", "mid"}
	if len(keys) != len(want) {
		t.Fatalf("expected %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, keys)
		}
	}
	if v, ok := env.Lookup("alpha"); !ok || v.String() != "1" {
		t.Fatalf("expected redefinition to update the value, got %#v", v)
	}
}
