package confschema

import "testing"

func TestTypedValueEqualFloatTolerance(t *testing.T) {
	a := Float(1.0000000001)
	b := Float(1.0000000002)
	if !a.Equal(b) {
		t.Fatalf("expected near-equal floats to compare equal")
	}
	if Float(1.0).Equal(Float(2.0)) {
		t.Fatalf("expected distinct floats to compare unequal")
	}
}

func TestTypedValueEqualKindMismatch(t *testing.T) {
	if Atom("x").Equal(String("x")) {
		t.Fatalf("values of different kind must never be equal")
	}
}

func TestTypedValueEqualList(t *testing.T) {
	a := List([]TypedValue{Int(1), Int(2)})
	b := List([]TypedValue{Int(1), Int(2)})
	c := List([]TypedValue{Int(2), Int(1)})
	if !a.Equal(b) {
		t.Fatalf("expected identical lists to be equal")
	}
	if a.Equal(c) {
		t.Fatalf("expected differently-ordered lists to be unequal")
	}
}

func TestTypedValueEqualPairList(t *testing.T) {
	a := PairList([]AtomValue{{Atom: "k", Value: Int(1)}})
	b := PairList([]AtomValue{{Atom: "k", Value: Int(1)}})
	if !a.Equal(b) {
		t.Fatalf("expected identical pair lists to be equal")
	}
}
