package typesystem

import "testing"

func TestEqualPrimitive(t *testing.T) {
	a := PrimitiveType{Kind: Int}
	b := PrimitiveType{Kind: Int}
	c := PrimitiveType{Kind: Boolean}
	if !Equal(a, b) {
		t.Fatalf("expected Int == Int")
	}
	if Equal(a, c) {
		t.Fatalf("expected Int != Boolean")
	}
}

func TestEqualCompound(t *testing.T) {
	pair := func(args ...Type) CompoundType {
		return CompoundType{RecordID: "pkg.Pair", Args: args}
	}
	a := pair(PrimitiveType{Kind: Int}, PrimitiveType{Kind: Boolean})
	b := pair(PrimitiveType{Kind: Int}, PrimitiveType{Kind: Boolean})
	c := pair(PrimitiveType{Kind: Int}, PrimitiveType{Kind: Int})
	if !Equal(a, b) {
		t.Fatalf("expected structurally identical compounds to be equal")
	}
	if Equal(a, c) {
		t.Fatalf("expected compounds with different args to be unequal")
	}
	if Equal(a, PrimitiveType{Kind: Int}) {
		t.Fatalf("expected compound != primitive")
	}
}

func TestEqualTypeVar(t *testing.T) {
	if !Equal(TypeVarType{ID: 0}, TypeVarType{ID: 0}) {
		t.Fatalf("expected #0 == #0")
	}
	if Equal(TypeVarType{ID: 0}, TypeVarType{ID: 1}) {
		t.Fatalf("expected #0 != #1")
	}
}

func TestSubstituteTypeVar(t *testing.T) {
	s := Subst{0: PrimitiveType{Kind: Int}}
	got := Substitute(TypeVarType{ID: 0}, s)
	if !Equal(got, PrimitiveType{Kind: Int}) {
		t.Fatalf("got %v, want Int", got)
	}
	// A type variable with no entry in the substitution is left unchanged.
	unchanged := Substitute(TypeVarType{ID: 1}, s)
	if !Equal(unchanged, (TypeVarType{ID: 1})) {
		t.Fatalf("got %v, want unchanged #1", unchanged)
	}
}

func TestSubstituteRecursesIntoCompoundArgs(t *testing.T) {
	s := Subst{0: PrimitiveType{Kind: Int}}
	box := CompoundType{RecordID: "pkg.Box", Args: []Type{TypeVarType{ID: 0}}}
	got := Substitute(box, s)
	want := CompoundType{RecordID: "pkg.Box", Args: []Type{PrimitiveType{Kind: Int}}}
	if !Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPositionalSubst(t *testing.T) {
	args := []Type{PrimitiveType{Kind: Int}, PrimitiveType{Kind: Boolean}}
	s := PositionalSubst(0, args)
	if len(s) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(s))
	}
	if !Equal(s[0], PrimitiveType{Kind: Int}) || !Equal(s[1], PrimitiveType{Kind: Boolean}) {
		t.Fatalf("unexpected substitution: %v", s)
	}
}

func TestPositionalSubstWithBase(t *testing.T) {
	s := PositionalSubst(3, []Type{PrimitiveType{Kind: Int}})
	if _, ok := s[3]; !ok {
		t.Fatalf("expected entry at base offset 3, got %v", s)
	}
}

func TestStringFormsAreDistinguishable(t *testing.T) {
	cases := []Type{
		PrimitiveType{Kind: Int},
		CompoundType{RecordID: "pkg.Pair", Args: []Type{PrimitiveType{Kind: Int}, PrimitiveType{Kind: Boolean}}},
		TypeVarType{ID: 2},
	}
	seen := map[string]bool{}
	for _, c := range cases {
		if seen[c.String()] {
			t.Fatalf("duplicate String() form: %s", c.String())
		}
		seen[c.String()] = true
	}
}
