package script

import (
	"encoding/json"
	"fmt"
	"io"

	"jstyper/internal/diag"
	"jstyper/internal/ir"
	"jstyper/internal/lattice"
	"jstyper/internal/names"
)

// Step is one decoded instruction: exactly one of the three fields is set.
type Step struct {
	EnterBlock *EnterBlock
	LeaveBlock bool
	Op         *Op
}

// EnterBlock is a decoded block-entry call.
type EnterBlock struct {
	Kind ir.BlockKind
	Meta ir.BlockMeta
}

// Op is a decoded operation call.
type Op struct {
	Op      ir.Op
	Inputs  []ir.VarID
	Outputs []ir.VarID
}

// Program is a fully decoded script, ready to drive a Typer.
type Program struct {
	Steps []Step
}

var blockKinds = map[string]ir.BlockKind{
	"root":                     ir.BlockRoot,
	"conditional":              ir.BlockConditional,
	"loop":                     ir.BlockLoop,
	"switchCase":               ir.BlockSwitchCase,
	"function":                 ir.BlockFunction,
	"classBody":                ir.BlockClassBody,
	"classMethod":              ir.BlockClassMethod,
	"classStatic":              ir.BlockClassStatic,
	"classStaticInitializer":   ir.BlockClassStaticInitializer,
	"objectLiteral":            ir.BlockObjectLiteral,
	"try":                      ir.BlockTry,
	"catch":                    ir.BlockCatch,
	"finally":                  ir.BlockFinally,
}

var opKinds = map[string]ir.OpKind{
	"loadInt":              ir.OpLoadInt,
	"loadFloat":            ir.OpLoadFloat,
	"loadString":           ir.OpLoadString,
	"loadBool":             ir.OpLoadBool,
	"loadBigInt":           ir.OpLoadBigInt,
	"loadRegExp":           ir.OpLoadRegExp,
	"loadNull":             ir.OpLoadNull,
	"loadUndefined":        ir.OpLoadUndefined,
	"loadThis":             ir.OpLoadThis,
	"loadBuiltin":          ir.OpLoadBuiltin,
	"unary":                ir.OpUnary,
	"binary":               ir.OpBinary,
	"reassign":             ir.OpReassign,
	"reassignWithOp":       ir.OpReassignWithOp,
	"createObject":         ir.OpCreateObject,
	"setProperty":          ir.OpSetProperty,
	"deleteProperty":       ir.OpDeleteProperty,
	"getProperty":          ir.OpGetProperty,
	"callMethod":           ir.OpCallMethod,
	"callFunction":         ir.OpCallFunction,
	"construct":            ir.OpConstruct,
	"destruct":             ir.OpDestruct,
	"addInstanceProperty":  ir.OpAddInstanceProperty,
	"addStaticProperty":    ir.OpAddStaticProperty,
	"addProperty":          ir.OpAddProperty,
	"addElement":           ir.OpAddElement,
}

var unaryOps = map[string]ir.UnaryOp{
	"logicalNot": ir.UnaryLogicalNot,
	"arithmetic": ir.UnaryArithmetic,
}

var binaryOps = map[string]ir.BinaryOp{
	"add":        ir.BinaryAdd,
	"arithmetic": ir.BinaryArithmetic,
	"logicOr":    ir.BinaryLogicOr,
	"logicAnd":   ir.BinaryLogicAnd,
	"compare":    ir.BinaryCompare,
	"instanceOf": ir.BinaryInstanceOf,
	"in":         ir.BinaryIn,
}

var functionKinds = map[string]ir.FunctionKind{
	"plain":          ir.FunctionPlain,
	"arrow":          ir.FunctionArrow,
	"generator":      ir.FunctionGenerator,
	"async":          ir.FunctionAsync,
	"asyncArrow":     ir.FunctionAsyncArrow,
	"asyncGenerator": ir.FunctionAsyncGenerator,
}

var accessorKinds = map[string]ir.AccessorKind{
	"":       ir.AccessorNone,
	"none":   ir.AccessorNone,
	"getter": ir.AccessorGetter,
	"setter": ir.AccessorSetter,
}

var loopKinds = map[string]ir.LoopKind{
	"plain":   ir.LoopPlain,
	"numeric": ir.LoopNumeric,
	"forIn":   ir.LoopForIn,
	"forOf":   ir.LoopForOf,
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

// Decode reads a JSON script from r, interning every name it mentions with
// in. rep may be nil; when given, it receives a diagnostic for every
// malformed line instead of the decode simply failing outright — matching
// how the CLI's batch command wants to keep going across many scripts and
// report every problem at once.
func Decode(r io.Reader, in *names.Interner, rep diag.Reporter) (*Program, error) {
	var raw []jsonStep
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		report(rep, diag.ScriptMalformed, fmt.Sprintf("invalid script JSON: %v", err))
		return nil, fmt.Errorf("script: decode: %w", err)
	}

	prog := &Program{Steps: make([]Step, 0, len(raw))}
	var firstErr error
	for i, s := range raw {
		step, err := decodeStep(s, in, rep, i)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		prog.Steps = append(prog.Steps, step)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return prog, nil
}

func decodeStep(s jsonStep, in *names.Interner, rep diag.Reporter, idx int) (Step, error) {
	switch {
	case s.EnterBlock != nil:
		kind, ok := blockKinds[s.EnterBlock.Kind]
		if !ok {
			report(rep, diag.ScriptUnknownBlock, fmt.Sprintf("step %d: unknown block kind %q", idx, s.EnterBlock.Kind))
			return Step{}, fmt.Errorf("script: step %d: unknown block kind %q", idx, s.EnterBlock.Kind)
		}
		meta, err := decodeMeta(kind, s.EnterBlock.Meta, in)
		if err != nil {
			report(rep, diag.ScriptMalformed, fmt.Sprintf("step %d: %v", idx, err))
			return Step{}, fmt.Errorf("script: step %d: %w", idx, err)
		}
		return Step{EnterBlock: &EnterBlock{Kind: kind, Meta: meta}}, nil

	case s.LeaveBlock:
		return Step{LeaveBlock: true}, nil

	case s.Op != nil:
		op, err := decodeOp(s.Op, in)
		if err != nil {
			report(rep, diag.ScriptUnknownOp, fmt.Sprintf("step %d: %v", idx, err))
			return Step{}, fmt.Errorf("script: step %d: %w", idx, err)
		}
		inputs := toVarIDs(s.Op.Inputs)
		outputs := toVarIDs(s.Op.Outputs)
		return Step{Op: &Op{Op: op, Inputs: inputs, Outputs: outputs}}, nil

	default:
		report(rep, diag.ScriptMalformed, fmt.Sprintf("step %d: empty step (none of enterBlock, leaveBlock, op set)", idx))
		return Step{}, fmt.Errorf("script: step %d: empty step", idx)
	}
}

func decodeOp(j *jsonOp, in *names.Interner) (ir.Op, error) {
	kind, ok := opKinds[j.Kind]
	if !ok {
		return ir.Op{}, fmt.Errorf("unknown op kind %q", j.Kind)
	}
	op := ir.Op{Kind: kind, HasRestElement: j.HasRestElement}
	if j.UnaryOp != "" {
		u, ok := unaryOps[j.UnaryOp]
		if !ok {
			return ir.Op{}, fmt.Errorf("unknown unary op %q", j.UnaryOp)
		}
		op.UnaryOp = u
	}
	if j.BinaryOp != "" {
		b, ok := binaryOps[j.BinaryOp]
		if !ok {
			return ir.Op{}, fmt.Errorf("unknown binary op %q", j.BinaryOp)
		}
		op.BinaryOp = b
	}
	if j.Name != "" {
		op.Name = in.Intern(j.Name)
	}
	if len(j.Names) > 0 {
		op.Names = make([]names.ID, len(j.Names))
		for i, n := range j.Names {
			op.Names[i] = in.Intern(n)
		}
	}
	return op, nil
}

func decodeMeta(kind ir.BlockKind, m *jsonBlockMeta, in *names.Interner) (ir.BlockMeta, error) {
	if m == nil {
		m = &jsonBlockMeta{}
	}
	switch kind {
	case ir.BlockFunction:
		fk, ok := functionKinds[m.FunctionKind]
		if m.FunctionKind != "" && !ok {
			return nil, fmt.Errorf("unknown function kind %q", m.FunctionKind)
		}
		sig, err := decodeSignature(m.Signature, in)
		if err != nil {
			return nil, err
		}
		return ir.FunctionMeta{
			Output:    ir.VarID(m.Output),
			Kind:      fk,
			Signature: sig,
			ParamVars: toVarIDs(m.ParamVars),
		}, nil

	case ir.BlockClassBody:
		return ir.ClassBodyMeta{Output: ir.VarID(m.Output), Superclass: ir.VarID(m.Superclass)}, nil

	case ir.BlockClassMethod, ir.BlockClassStatic, ir.BlockClassStaticInitializer:
		acc, ok := accessorKinds[m.Accessor]
		if !ok {
			return nil, fmt.Errorf("unknown accessor kind %q", m.Accessor)
		}
		sig, err := decodeSignature(m.Signature, in)
		if err != nil {
			return nil, err
		}
		var name names.ID
		if m.Name != "" {
			name = in.Intern(m.Name)
		}
		return ir.ClassMemberMeta{
			Name:                name,
			Signature:           sig,
			ParamVars:           toVarIDs(m.ParamVars),
			Accessor:            acc,
			Private:             m.Private,
			IsConstructor:       m.IsConstructor,
			IsStaticInitializer: m.IsStaticInit,
		}, nil

	case ir.BlockObjectLiteral:
		return ir.ObjectLiteralMeta{Output: ir.VarID(m.Output)}, nil

	case ir.BlockLoop:
		lk, ok := loopKinds[m.LoopKind]
		if m.LoopKind != "" && !ok {
			return nil, fmt.Errorf("unknown loop kind %q", m.LoopKind)
		}
		return ir.LoopMeta{Kind: lk, LoopVar: ir.VarID(m.LoopVar)}, nil

	case ir.BlockCatch:
		return ir.CatchMeta{ExceptionVar: ir.VarID(m.ExceptionVar)}, nil

	case ir.BlockConditional:
		return ir.ConditionalMeta{HasElse: m.HasElse, IsElse: m.IsElse}, nil

	case ir.BlockSwitchCase:
		return ir.SwitchCaseMeta{IsFirst: m.IsFirst, IsLast: m.IsLast, HasDefault: m.HasDefault}, nil

	default:
		// BlockRoot, BlockTry, BlockFinally carry no metadata.
		return nil, nil
	}
}

func decodeSignature(j *jsonSignature, in *names.Interner) (lattice.Signature, error) {
	if j == nil {
		return lattice.Signature{Return: lattice.Unknown}, nil
	}
	sig := lattice.Signature{Return: lattice.Unknown}
	for _, p := range j.Params {
		pt, err := decodeType(&p.Type)
		if err != nil {
			return lattice.Signature{}, err
		}
		kind := lattice.ParamPlain
		switch p.Kind {
		case "", "plain":
		case "opt":
			kind = lattice.ParamOpt
		case "rest":
			kind = lattice.ParamRest
		default:
			return lattice.Signature{}, fmt.Errorf("unknown param kind %q", p.Kind)
		}
		sig.Params = append(sig.Params, lattice.Param{Kind: kind, Type: pt})
	}
	if j.Return != nil {
		ret, err := decodeType(j.Return)
		if err != nil {
			return lattice.Signature{}, err
		}
		sig.Return = ret
	}
	return sig, nil
}

func decodeType(j *jsonType) (lattice.Type, error) {
	var bits lattice.Bits
	for _, name := range j.Bits {
		b, ok := namedBits[name]
		if !ok {
			return lattice.Type{}, fmt.Errorf("unknown bit name %q", name)
		}
		bits |= b
	}
	return lattice.NewPrimitive(bits), nil
}

func toVarIDs(raw []uint32) []ir.VarID {
	if len(raw) == 0 {
		return nil
	}
	out := make([]ir.VarID, len(raw))
	for i, v := range raw {
		out[i] = ir.VarID(v)
	}
	return out
}

func report(rep diag.Reporter, code diag.Code, msg string) {
	if rep == nil {
		return
	}
	rep.Report(code, diag.SevError, diag.NoLocation, msg, nil)
}
