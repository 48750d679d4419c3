package lattice

// Union returns a ∪ b: associative, commutative, idempotent.
//
// .unknown behaves as top for union: unioning with .unknown always yields
// .unknown, since "we have no information" about either side is the most
// we can honestly report about both.
func Union(a, b Type) Type {
	if a.unknown || b.unknown {
		return Unknown
	}
	return Type{
		bits:  a.bits | b.bits,
		shape: unionShape(a.shape, b.shape),
	}
}

// unionShape combines two object shapes the way a JS value could satisfy
// either: it behaves like whichever shape only through what they share.
// When only one side carries a shape, that shape survives untouched (the
// union type may still be that object, even though the other arm never
// is one).
func unionShape(a, b *Shape) *Shape {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		cp := *b
		return &cp
	case b == nil:
		cp := *a
		return &cp
	}
	out := &Shape{
		Properties: intersectSet(a.Properties, b.Properties),
		Methods:    intersectSet(a.Methods, b.Methods),
	}
	if a.HasGroup && b.HasGroup && a.Group == b.Group {
		out.HasGroup = true
		out.Group = a.Group
	}
	if signatureEqual(a.Call, b.Call) {
		out.Call = a.Call
	}
	if signatureEqual(a.Construct, b.Construct) {
		out.Construct = a.Construct
	}
	return out
}

// Intersect returns a ∩ b.
//
// .unknown carries no information, so intersecting with it returns the
// other operand unchanged.
func Intersect(a, b Type) Type {
	if a.unknown {
		return b
	}
	if b.unknown {
		return a
	}
	return Type{
		bits:  a.bits & b.bits,
		shape: intersectShape(a.shape, b.shape),
	}
}

// intersectShape requires both sides to carry a shape; a value is required
// to satisfy both descriptions, so properties/methods union (the superset
// of requirements) and group/signatures survive only when both sides agree.
func intersectShape(a, b *Shape) *Shape {
	if a == nil || b == nil {
		return nil
	}
	out := &Shape{
		Properties: unionSet(a.Properties, b.Properties),
		Methods:    unionSet(a.Methods, b.Methods),
	}
	if a.HasGroup && b.HasGroup && a.Group == b.Group {
		out.HasGroup = true
		out.Group = a.Group
	}
	if signatureEqual(a.Call, b.Call) {
		out.Call = a.Call
	}
	if signatureEqual(a.Construct, b.Construct) {
		out.Construct = a.Construct
	}
	return out
}

// Subtract returns a - b: the values of a known not to be values of b.
//
// Subtracting .unknown from anything yields a unchanged — we don't know
// enough about .unknown to safely narrow a. Subtracting anything from
// .unknown yields .unknown, for the same reason.
func Subtract(a, b Type) Type {
	if a.unknown {
		return Unknown
	}
	if b.unknown {
		return a
	}
	out := Type{bits: a.bits &^ b.bits, shape: a.shape}
	if a.shape != nil && b.shape != nil && shapeIsSubtype(a.shape, b.shape) {
		out.shape = nil
	}
	return out
}

// Is reports whether a ⊆ b: every value describable by a is describable
// by b.
//
// .unknown is a wildcard in both positions: a consumer holding an
// .unknown-typed value "may assume anything" about it, and conversely any
// concrete type is treated as compatible with an .unknown expectation.
// This keeps the Typer's non-goal of never blocking code generation on a
// missing fact.
func Is(a, b Type) bool {
	if a.unknown || b.unknown {
		return true
	}
	if a.bits&^b.bits != 0 {
		return false
	}
	if a.shape != nil {
		if b.shape == nil {
			return false
		}
		if !shapeIsSubtype(a.shape, b.shape) {
			return false
		}
	}
	return true
}

// MayBe reports whether a and b can describe overlapping values.
func MayBe(a, b Type) bool {
	if a.unknown || b.unknown {
		return true
	}
	inter := Intersect(a, b)
	return !inter.Equal(Nothing)
}
