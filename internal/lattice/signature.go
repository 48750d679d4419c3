package lattice

// ParamKind distinguishes how a parameter binds arguments.
type ParamKind uint8

const (
	// ParamPlain requires exactly one argument of Type.
	ParamPlain ParamKind = iota
	// ParamOpt binds to Type ∪ undefined; the argument may be omitted.
	ParamOpt
	// ParamRest matches zero or more trailing arguments. Inside the
	// callee the rest-index binding is always .object() (array-like),
	// never Type itself.
	ParamRest
)

// Param describes one formal parameter.
type Param struct {
	Kind ParamKind
	Type Type
}

// BoundType returns the type a parameter binds to inside the callee body.
func (p Param) BoundType() Type {
	switch p.Kind {
	case ParamOpt:
		return Union(p.Type, Undefined)
	case ParamRest:
		return Object(nil, nil, nil)
	default:
		return p.Type
	}
}

// Equal reports whether p and other describe the same parameter.
func (p Param) Equal(other Param) bool {
	return p.Kind == other.Kind && p.Type.Equal(other.Type)
}

// Signature describes a callable's parameter list and return type.
type Signature struct {
	Params []Param
	Return Type
}

// Equal reports deep value-equality between two signatures.
func (s Signature) Equal(other Signature) bool {
	if len(s.Params) != len(other.Params) {
		return false
	}
	for i := range s.Params {
		if !s.Params[i].Equal(other.Params[i]) {
			return false
		}
	}
	return s.Return.Equal(other.Return)
}

// NoArgs is the signature of a callable that takes nothing and returns ret.
func NoArgs(ret Type) Signature {
	return Signature{Return: ret}
}
