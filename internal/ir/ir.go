// Package ir defines the minimal operation and block-kind vocabulary the
// Typer consumes from its external builder collaborator (out of scope per
// the core spec: the real builder and its source-level lifter live
// elsewhere). This is the smallest surface that exercises every transfer
// function family the spec names.
package ir

// VarID identifies a variable produced by some operation. VarID zero
// (NoVar) never names a real variable.
type VarID uint32

// NoVar marks the absence of a variable.
const NoVar VarID = 0

// BlockKind enumerates the lexical block kinds the Block Protocol
// recognizes, matching the core spec's Scope state model (§3.3) one for
// one.
type BlockKind uint8

const (
	BlockRoot BlockKind = iota
	BlockConditional
	BlockLoop
	BlockSwitchCase
	BlockFunction
	BlockClassBody
	BlockClassMethod
	BlockClassStatic
	BlockClassStaticInitializer
	BlockObjectLiteral
	BlockTry
	BlockCatch
	BlockFinally
)

func (k BlockKind) String() string {
	switch k {
	case BlockRoot:
		return "root"
	case BlockConditional:
		return "conditional"
	case BlockLoop:
		return "loop"
	case BlockSwitchCase:
		return "switch-case"
	case BlockFunction:
		return "function"
	case BlockClassBody:
		return "class-body"
	case BlockClassMethod:
		return "class-method"
	case BlockClassStatic:
		return "class-static"
	case BlockClassStaticInitializer:
		return "class-static-initializer"
	case BlockObjectLiteral:
		return "object-literal"
	case BlockTry:
		return "try"
	case BlockCatch:
		return "catch"
	case BlockFinally:
		return "finally"
	default:
		return "invalid"
	}
}
