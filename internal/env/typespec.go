package env

import (
	"fmt"

	"jstyper/internal/lattice"
	"jstyper/internal/names"
)

// typeSpec is the TOML-decodable description of a lattice.Type, used by
// static.toml configuration files to describe builtins, group properties,
// and method signatures without requiring Go code.
type typeSpec struct {
	Bits       []string       `toml:"bits"`
	Object     bool           `toml:"object"`
	Properties []string       `toml:"properties"`
	Methods    []string       `toml:"methods"`
	Group      string         `toml:"group"`
	Call       *signatureSpec `toml:"call"`
	Construct  *signatureSpec `toml:"construct"`
}

type paramSpec struct {
	Kind string   `toml:"kind"` // "plain" (default), "opt", "rest"
	Type typeSpec `toml:"type"`
}

type signatureSpec struct {
	Params  []paramSpec `toml:"params"`
	Returns *typeSpec   `toml:"returns"`
}

var namedBits = map[string]lattice.Bits{
	"undefined": lattice.BitUndefined,
	"null":      lattice.BitNull,
	"boolean":   lattice.BitBoolean,
	"integer":   lattice.BitInteger,
	"float":     lattice.BitFloat,
	"number":    lattice.NumberBits,
	"string":    lattice.BitString,
	"bigint":    lattice.BitBigInt,
	"regexp":    lattice.BitRegExp,
	"iterable":  lattice.BitIterable,
	"primitive": lattice.PrimitiveBits,
}

// resolve converts a typeSpec into a lattice.Type, interning any names it
// mentions with in.
func (s typeSpec) resolve(in *names.Interner) (lattice.Type, error) {
	var bits lattice.Bits
	for _, name := range s.Bits {
		b, ok := namedBits[name]
		if !ok {
			return lattice.Type{}, fmt.Errorf("env: unknown bit name %q", name)
		}
		bits |= b
	}
	t := bitsToType(bits)
	if !s.Object && s.Group == "" && len(s.Properties) == 0 && len(s.Methods) == 0 && s.Call == nil && s.Construct == nil {
		return t, nil
	}
	shapeType := lattice.Object(internAll(in, s.Properties), internAll(in, s.Methods), nil)
	if s.Group != "" {
		shapeType = shapeType.WithGroup(in.Intern(s.Group))
	}
	if s.Call != nil {
		sig, err := s.Call.resolve(in)
		if err != nil {
			return lattice.Type{}, err
		}
		shapeType = shapeType.WithCall(sig)
	}
	if s.Construct != nil {
		sig, err := s.Construct.resolve(in)
		if err != nil {
			return lattice.Type{}, err
		}
		shapeType = shapeType.WithConstruct(sig)
	}
	return lattice.Union(t, shapeType), nil
}

func (s signatureSpec) resolve(in *names.Interner) (lattice.Signature, error) {
	sig := lattice.Signature{}
	for _, p := range s.Params {
		pt, err := p.Type.resolve(in)
		if err != nil {
			return lattice.Signature{}, err
		}
		kind := lattice.ParamPlain
		switch p.Kind {
		case "opt":
			kind = lattice.ParamOpt
		case "rest":
			kind = lattice.ParamRest
		case "", "plain":
		default:
			return lattice.Signature{}, fmt.Errorf("env: unknown param kind %q", p.Kind)
		}
		sig.Params = append(sig.Params, lattice.Param{Kind: kind, Type: pt})
	}
	if s.Returns != nil {
		ret, err := s.Returns.resolve(in)
		if err != nil {
			return lattice.Signature{}, err
		}
		sig.Return = ret
	} else {
		sig.Return = lattice.Unknown
	}
	return sig, nil
}

func internAll(in *names.Interner, values []string) []names.ID {
	if len(values) == 0 {
		return nil
	}
	ids := make([]names.ID, len(values))
	for i, v := range values {
		ids[i] = in.Intern(v)
	}
	return ids
}

// bitsToType builds the primitive-only Type for an arbitrary bit
// combination (callers may combine named bits freely, e.g.
// integer|string for a loosely-typed builtin).
func bitsToType(bits lattice.Bits) lattice.Type {
	return lattice.NewPrimitive(bits)
}
