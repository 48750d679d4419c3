// Package lattice implements the JavaScript type lattice the Typer reasons
// over: a primitive bitset joined with an optional structural object shape.
//
// Every Type is immutable. Operations (Union, Intersect, Subtract, the
// With* shape builders) always return a new value; nothing here ever
// mutates a Type or Shape in place, so a Type can be freely shared across
// frames, scopes, or even independent Typer instances.
package lattice

import "jstyper/internal/names"

// Bits is a bitmask over the disjoint primitive atoms.
type Bits uint16

const (
	BitUndefined Bits = 1 << iota
	BitNull
	BitBoolean
	BitInteger
	BitFloat
	BitString
	BitBigInt
	BitRegExp
	BitIterable
)

// NumberBits is the alias bitset for "number" (integer ∪ float).
const NumberBits = BitInteger | BitFloat

// PrimitiveBits is the alias bitset for "primitive": every atom except
// bigint, regexp, and iterable.
const PrimitiveBits = BitUndefined | BitNull | BitBoolean | BitInteger | BitFloat | BitString

// AllBits is every primitive atom, the bitset portion of .anything.
const AllBits = PrimitiveBits | BitBigInt | BitRegExp | BitIterable

// Type is an immutable JavaScript type-lattice value: a primitive bitset
// plus at most one object shape, or the distinguished .unknown value.
//
// .unknown is not representable as any (bits, shape) pair: it is kept as a
// separate flag so it can be told apart from .anything (see Is/MayBe below
// for how it behaves during comparisons).
type Type struct {
	bits    Bits
	unknown bool
	shape   *Shape
}

// Bits returns the primitive bitset portion of t. Meaningless (zero) when
// t is .unknown.
func (t Type) Bits() Bits { return t.bits }

// IsUnknown reports whether t is the distinguished .unknown value.
func (t Type) IsUnknown() bool { return t.unknown }

// Shape returns the object shape carried by t, if any.
func (t Type) Shape() (Shape, bool) {
	if t.shape == nil {
		return Shape{}, false
	}
	return *t.shape, true
}

// HasBits reports whether every bit in mask is set in t's bitset.
func (t Type) HasBits(mask Bits) bool {
	return t.bits&mask == mask
}

// Equal reports deep, structural value-equality between two Types.
func (t Type) Equal(other Type) bool {
	if t.unknown != other.unknown {
		return false
	}
	if t.unknown {
		return true
	}
	if t.bits != other.bits {
		return false
	}
	return shapesEqual(t.shape, other.shape)
}

// String renders t for debugging and diagnostic output.
func (t Type) String() string {
	return render(t, nil)
}

// Render renders t using in to resolve interned property/method/group
// names to readable strings. Pass nil to fall back to numeric name IDs.
func (t Type) Render(in *names.Interner) string {
	return render(t, in)
}
