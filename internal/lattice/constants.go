package lattice

import "jstyper/internal/names"

// Canonical constants. Each is the singleton value of its atom or shape.
var (
	Undefined = Type{bits: BitUndefined}
	Null      = Type{bits: BitNull}
	Boolean   = Type{bits: BitBoolean}
	Integer   = Type{bits: BitInteger}
	Float     = Type{bits: BitFloat}
	Number    = Type{bits: NumberBits}
	String    = Type{bits: BitString}
	BigInt    = Type{bits: BitBigInt}
	RegExp    = Type{bits: BitRegExp}
	Iterable  = Type{bits: BitIterable}
	Primitive = Type{bits: PrimitiveBits}

	// Unknown is the bottom-or-top sentinel: "we have no information."
	// See Is/Union/Subtract for how it behaves in comparisons.
	Unknown = Type{unknown: true}

	// Anything is the true top of the lattice: every primitive atom plus
	// an unconstrained object shape.
	Anything = Type{bits: AllBits, shape: &Shape{}}

	// Nothing is the bottom of the lattice proper (distinct from
	// Unknown): no atom, no shape.
	Nothing = Type{}
)

// NewPrimitive returns the pure-bitset Type for an arbitrary combination
// of primitive atoms, with no object shape.
func NewPrimitive(bits Bits) Type {
	return Type{bits: bits}
}

// Object returns the shape .object(withProperties:, withMethods:,
// ofGroup:). A nil group means the shape is ungrouped.
func Object(properties, methods []names.ID, group *names.ID) Type {
	shape := &Shape{
		Properties: sortedSet(properties),
		Methods:    sortedSet(methods),
	}
	if group != nil {
		shape.HasGroup = true
		shape.Group = *group
	}
	return Type{shape: shape}
}

// Function returns .function(sig): callable, not constructible.
func Function(sig Signature) Type {
	return Type{shape: &Shape{Call: &sig}}
}

// Constructor returns .constructor(sig): constructible, not plain-callable.
func Constructor(sig Signature) Type {
	return Type{shape: &Shape{Construct: &sig}}
}

// FunctionAndConstructor returns a shape callable both ways with the same
// signature, as produced by a plain `function` declaration.
func FunctionAndConstructor(sig Signature) Type {
	return Type{shape: &Shape{Call: &sig, Construct: &sig}}
}

// WithProperty returns a copy of t with name added to its object shape's
// properties. If t carries no shape yet, an unconstrained one is created
// first (mirrors how object-literal and class-body accumulation works:
// one property/method is added at a time as the builder emits operations).
func (t Type) WithProperty(name names.ID) Type {
	return t.withShape(func(s *Shape) { s.Properties = sortedSet(append(s.Properties, name)) })
}

// WithoutProperty returns a copy of t with name removed from its object
// shape's properties, if present.
func (t Type) WithoutProperty(name names.ID) Type {
	return t.withShape(func(s *Shape) { s.Properties = removeID(s.Properties, name) })
}

// WithMethod returns a copy of t with name added to its object shape's
// methods.
func (t Type) WithMethod(name names.ID) Type {
	return t.withShape(func(s *Shape) { s.Methods = sortedSet(append(s.Methods, name)) })
}

// WithGroup returns a copy of t with its object shape tagged to group.
func (t Type) WithGroup(group names.ID) Type {
	return t.withShape(func(s *Shape) { s.HasGroup = true; s.Group = group })
}

// WithCall returns a copy of t with sig set as its call signature —
// "callable as a function".
func (t Type) WithCall(sig Signature) Type {
	return t.withShape(func(s *Shape) { s.Call = &sig })
}

// WithConstruct returns a copy of t with sig set as its construct
// signature — "callable with new". This is how a class value is built:
// the accumulated static shape gets a construct signature attached once
// the constructor (explicit or implicit) is known.
func (t Type) WithConstruct(sig Signature) Type {
	return t.withShape(func(s *Shape) { s.Construct = &sig })
}

func (t Type) withShape(mutate func(*Shape)) Type {
	var next Shape
	if t.shape != nil {
		next = *t.shape
		next.Properties = append([]names.ID(nil), t.shape.Properties...)
		next.Methods = append([]names.ID(nil), t.shape.Methods...)
	}
	mutate(&next)
	out := t
	out.shape = &next
	return out
}

// HasProperty reports whether t's object shape (if any) lists name among
// its properties.
func (t Type) HasProperty(name names.ID) bool {
	if t.shape == nil {
		return false
	}
	return containsID(t.shape.Properties, name)
}

// Group returns t's object shape group, if any.
func (t Type) Group() (names.ID, bool) {
	if t.shape == nil || !t.shape.HasGroup {
		return names.NoID, false
	}
	return t.shape.Group, true
}

// CallSignature returns t's call signature, if any.
func (t Type) CallSignature() (Signature, bool) {
	if t.shape == nil || t.shape.Call == nil {
		return Signature{}, false
	}
	return *t.shape.Call, true
}

// ConstructSignature returns t's construct signature, if any.
func (t Type) ConstructSignature() (Signature, bool) {
	if t.shape == nil || t.shape.Construct == nil {
		return Signature{}, false
	}
	return *t.shape.Construct, true
}
