package env

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"jstyper/internal/diag"
	"jstyper/internal/lattice"
	"jstyper/internal/names"
)

// config is the on-disk TOML shape for a StaticEnvironment, mirroring how
// the lineage's project manifests are decoded with BurntSushi/toml.
type config struct {
	Primitives struct {
		Int     *typeSpec `toml:"int"`
		Float   *typeSpec `toml:"float"`
		Boolean *typeSpec `toml:"boolean"`
		String  *typeSpec `toml:"string"`
		BigInt  *typeSpec `toml:"bigint"`
		RegExp  *typeSpec `toml:"regexp"`
		Array   *typeSpec `toml:"array"`
	} `toml:"primitives"`
	Builtins map[string]typeSpec `toml:"builtins"`
	Groups   map[string]struct {
		Properties map[string]typeSpec      `toml:"properties"`
		Methods    map[string]signatureSpec `toml:"methods"`
	} `toml:"groups"`
}

var _ Environment = (*StaticEnvironment)(nil)

// StaticEnvironment is a reference Environment implementation driven by a
// TOML configuration file: fixed builtin types, per-group property and
// method tables, and primitive overrides, plus the program-wide
// declaration tables the core spec describes.
type StaticEnvironment struct {
	names *names.Interner

	intType, floatType, booleanType, stringType, bigintType, regexpType, arrayType lattice.Type

	builtins map[names.ID]lattice.Type

	groupProperties map[names.ID]map[names.ID]lattice.Type
	groupMethods    map[names.ID]map[names.ID]lattice.Signature

	declaredProperties map[names.ID]lattice.Type
	declaredMethods    map[names.ID]lattice.Signature
}

// NewStaticEnvironment returns an empty StaticEnvironment with every
// primitive defaulted to its canonical lattice constant. in must be the
// same name interner the Typer uses, so name IDs line up across queries.
func NewStaticEnvironment(in *names.Interner) *StaticEnvironment {
	return &StaticEnvironment{
		names:              in,
		intType:            lattice.Integer,
		floatType:          lattice.Float,
		booleanType:        lattice.Boolean,
		stringType:         lattice.String,
		bigintType:         lattice.BigInt,
		regexpType:         lattice.RegExp,
		arrayType:          lattice.Object(nil, nil, nil),
		builtins:           make(map[names.ID]lattice.Type),
		groupProperties:    make(map[names.ID]map[names.ID]lattice.Type),
		groupMethods:       make(map[names.ID]map[names.ID]lattice.Signature),
		declaredProperties: make(map[names.ID]lattice.Type),
		declaredMethods:    make(map[names.ID]lattice.Signature),
	}
}

// LoadStaticEnvironment parses a TOML file and returns a ready
// StaticEnvironment sharing the given name interner. rep may be nil; when
// given, it receives a warning for every builtin or group entry whose name
// collides with another after Unicode NFC normalization. Only one of the
// colliding entries is kept; entries are read from Go maps, so which one
// survives does not follow file order and is not defined.
func LoadStaticEnvironment(path string, in *names.Interner, rep diag.Reporter) (*StaticEnvironment, error) {
	var cfg config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if rep != nil {
			rep.Report(diag.EnvConfigParseError, diag.SevError, diag.Location{Source: path, Op: -1}, err.Error(), nil)
		}
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	se := NewStaticEnvironment(in)

	resolveOverride := func(spec *typeSpec, fallback lattice.Type) (lattice.Type, error) {
		if spec == nil {
			return fallback, nil
		}
		return spec.resolve(in)
	}
	var err error
	if se.intType, err = resolveOverride(cfg.Primitives.Int, se.intType); err != nil {
		return nil, err
	}
	if se.floatType, err = resolveOverride(cfg.Primitives.Float, se.floatType); err != nil {
		return nil, err
	}
	if se.booleanType, err = resolveOverride(cfg.Primitives.Boolean, se.booleanType); err != nil {
		return nil, err
	}
	if se.stringType, err = resolveOverride(cfg.Primitives.String, se.stringType); err != nil {
		return nil, err
	}
	if se.bigintType, err = resolveOverride(cfg.Primitives.BigInt, se.bigintType); err != nil {
		return nil, err
	}
	if se.regexpType, err = resolveOverride(cfg.Primitives.RegExp, se.regexpType); err != nil {
		return nil, err
	}
	if se.arrayType, err = resolveOverride(cfg.Primitives.Array, se.arrayType); err != nil {
		return nil, err
	}

	for name, spec := range cfg.Builtins {
		t, rerr := spec.resolve(in)
		if rerr != nil {
			return nil, fmt.Errorf("builtin %q: %w", name, rerr)
		}
		id := in.Intern(name)
		if _, exists := se.builtins[id]; exists && rep != nil {
			rep.Report(diag.EnvDuplicateBuiltin, diag.SevWarning, diag.Location{Source: path, Op: -1},
				fmt.Sprintf("builtin %q normalizes to a name already declared; only one entry is kept", name), nil)
		}
		se.builtins[id] = t
	}

	for groupName, group := range cfg.Groups {
		gid := in.Intern(groupName)
		props := make(map[names.ID]lattice.Type, len(group.Properties))
		for pname, spec := range group.Properties {
			t, rerr := spec.resolve(in)
			if rerr != nil {
				return nil, fmt.Errorf("group %q property %q: %w", groupName, pname, rerr)
			}
			pid := in.Intern(pname)
			if _, exists := props[pid]; exists && rep != nil {
				rep.Report(diag.EnvConflictingGroupProperty, diag.SevWarning, diag.Location{Source: path, Op: -1},
					fmt.Sprintf("group %q property %q normalizes to a name already declared; only one entry is kept", groupName, pname), nil)
			}
			props[pid] = t
		}
		se.groupProperties[gid] = props

		methods := make(map[names.ID]lattice.Signature, len(group.Methods))
		for mname, spec := range group.Methods {
			sig, rerr := spec.resolve(in)
			if rerr != nil {
				return nil, fmt.Errorf("group %q method %q: %w", groupName, mname, rerr)
			}
			mid := in.Intern(mname)
			if _, exists := methods[mid]; exists && rep != nil {
				rep.Report(diag.EnvConflictingGroupMethod, diag.SevWarning, diag.Location{Source: path, Op: -1},
					fmt.Sprintf("group %q method %q normalizes to a name already declared; only one entry is kept", groupName, mname), nil)
			}
			methods[in.Intern(mname)] = sig
		}
		se.groupMethods[gid] = methods
	}

	return se, nil
}

func (s *StaticEnvironment) TypeOfBuiltin(name names.ID) lattice.Type {
	if t, ok := s.builtins[name]; ok {
		return t
	}
	return lattice.Unknown
}

func (s *StaticEnvironment) TypeOfProperty(name names.ID, group names.ID, hasGroup bool) lattice.Type {
	if hasGroup {
		if props, ok := s.groupProperties[group]; ok {
			if t, ok := props[name]; ok {
				return t
			}
		}
	}
	if t, ok := s.declaredProperties[name]; ok {
		return t
	}
	return lattice.Unknown
}

func (s *StaticEnvironment) SignatureOfMethod(name names.ID, group names.ID, hasGroup bool) (lattice.Signature, bool) {
	if hasGroup {
		if methods, ok := s.groupMethods[group]; ok {
			if sig, ok := methods[name]; ok {
				return sig, true
			}
		}
	}
	if sig, ok := s.declaredMethods[name]; ok {
		return sig, true
	}
	return lattice.Signature{}, false
}

func (s *StaticEnvironment) DeclareProperty(name names.ID, t lattice.Type) {
	s.declaredProperties[name] = t
}

func (s *StaticEnvironment) DeclareMethod(name names.ID, sig lattice.Signature) {
	s.declaredMethods[name] = sig
}

func (s *StaticEnvironment) IntType() lattice.Type     { return s.intType }
func (s *StaticEnvironment) FloatType() lattice.Type   { return s.floatType }
func (s *StaticEnvironment) BooleanType() lattice.Type { return s.booleanType }
func (s *StaticEnvironment) StringType() lattice.Type  { return s.stringType }
func (s *StaticEnvironment) BigIntType() lattice.Type  { return s.bigintType }
func (s *StaticEnvironment) RegExpType() lattice.Type  { return s.regexpType }
func (s *StaticEnvironment) ArrayType() lattice.Type   { return s.arrayType }

// RegisterBuiltin directly installs a builtin type, bypassing TOML — used
// by tests and by callers assembling an environment programmatically.
func (s *StaticEnvironment) RegisterBuiltin(name string, t lattice.Type) {
	s.builtins[s.names.Intern(name)] = t
}

// RegisterGroupProperty directly installs a per-group property type.
func (s *StaticEnvironment) RegisterGroupProperty(group, property string, t lattice.Type) {
	gid := s.names.Intern(group)
	if s.groupProperties[gid] == nil {
		s.groupProperties[gid] = make(map[names.ID]lattice.Type)
	}
	s.groupProperties[gid][s.names.Intern(property)] = t
}

// RegisterGroupMethod directly installs a per-group method signature.
func (s *StaticEnvironment) RegisterGroupMethod(group, method string, sig lattice.Signature) {
	gid := s.names.Intern(group)
	if s.groupMethods[gid] == nil {
		s.groupMethods[gid] = make(map[names.ID]lattice.Signature)
	}
	s.groupMethods[gid][s.names.Intern(method)] = sig
}
