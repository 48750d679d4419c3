package lattice

import (
	"testing"

	"jstyper/internal/names"
)

func TestUnionIsCommutativeAssociativeIdempotent(t *testing.T) {
	a, b, c := Integer, String, Boolean
	if !Union(a, b).Equal(Union(b, a)) {
		t.Fatalf("union not commutative")
	}
	if !Union(Union(a, b), c).Equal(Union(a, Union(b, c))) {
		t.Fatalf("union not associative")
	}
	if !Union(a, a).Equal(a) {
		t.Fatalf("union not idempotent")
	}
}

func TestUnionWithNothingIsIdentity(t *testing.T) {
	if !Union(Nothing, Integer).Equal(Integer) {
		t.Fatalf("nothing ∪ x != x")
	}
}

func TestIsReflexiveAndWiderThanUnion(t *testing.T) {
	a, b := Integer, String
	if !Is(a, Union(a, b)) {
		t.Fatalf("a must be ⊆ a ∪ b")
	}
	if !Is(a, a) {
		t.Fatalf("Is must be reflexive")
	}
}

func TestUnknownIsWildcard(t *testing.T) {
	if !Is(Unknown, String) {
		t.Fatalf("unknown.Is(string) should hold (consumer may assume anything)")
	}
	if !Is(String, Unknown) {
		t.Fatalf("string.Is(unknown) should hold")
	}
	if !Union(Unknown, String).Equal(Unknown) {
		t.Fatalf("unknown absorbs in union")
	}
}

func TestUnknownDistinctFromAnything(t *testing.T) {
	if Unknown.Equal(Anything) {
		t.Fatalf("unknown must be distinct from anything")
	}
}

func TestObjectUnionIntersectsProperties(t *testing.T) {
	in := names.New()
	a, b := in.Intern("a"), in.Intern("b")
	x := Object([]names.ID{a, b}, nil, nil)
	y := Object([]names.ID{a}, nil, nil)
	u := Union(x, y)
	shape, ok := u.Shape()
	if !ok {
		t.Fatalf("expected union to retain a shape")
	}
	if len(shape.Properties) != 1 || shape.Properties[0] != a {
		t.Fatalf("expected union properties {a}, got %v", shape.Properties)
	}
}

func TestObjectIntersectUnionsProperties(t *testing.T) {
	in := names.New()
	a, b := in.Intern("a"), in.Intern("b")
	x := Object([]names.ID{a}, nil, nil)
	y := Object([]names.ID{b}, nil, nil)
	i := Intersect(x, y)
	shape, ok := i.Shape()
	if !ok {
		t.Fatalf("expected intersect to retain a shape")
	}
	if !containsID(shape.Properties, a) || !containsID(shape.Properties, b) {
		t.Fatalf("expected intersect properties {a,b}, got %v", shape.Properties)
	}
}

func TestSubtractRemovesWiderObjectShape(t *testing.T) {
	in := names.New()
	a := in.Intern("a")
	specific := Object([]names.ID{a}, nil, nil)
	wide := Object(nil, nil, nil)
	result := Subtract(specific, wide)
	if _, ok := result.Shape(); ok {
		t.Fatalf("expected shape removed when subtracting a wider shape")
	}
}

func TestMayBeOverlap(t *testing.T) {
	if !MayBe(Union(Integer, String), Integer) {
		t.Fatalf("expected overlap")
	}
	if MayBe(Integer, String) {
		t.Fatalf("expected no overlap between disjoint primitives")
	}
}

func TestClassValueCombinesStaticShapeAndConstructSignature(t *testing.T) {
	in := names.New()
	a, g := in.Intern("a"), in.Intern("g")
	staticType := Object(nil, nil, nil).WithProperty(a).WithMethod(g)
	instanceType := Object(nil, nil, nil)
	classType := staticType.WithConstruct(NoArgs(instanceType))

	shape, ok := classType.Shape()
	if !ok {
		t.Fatalf("expected class value to carry a shape")
	}
	if !containsID(shape.Properties, a) {
		t.Fatalf("expected static property preserved, got %v", shape.Properties)
	}
	if !containsID(shape.Methods, g) {
		t.Fatalf("expected static method preserved, got %v", shape.Methods)
	}
	if shape.Construct == nil {
		t.Fatalf("expected construct signature attached")
	}
}
