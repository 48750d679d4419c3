// Package state implements the State Stack: the stack of lexical-block
// frames the Typer pushes and pops as it walks an operation stream,
// together with the three merge strategies used to fold a closed frame's
// writes back into its parent.
package state

import (
	"jstyper/internal/ir"
	"jstyper/internal/lattice"
)

// Frame holds the variable bindings introduced or reassigned within one
// lexical block, plus enough metadata for its owning Stack to merge it
// into its parent on close.
type Frame struct {
	Kind ir.BlockKind
	Meta ir.BlockMeta

	vars       map[ir.VarID]lattice.Type
	reassigned map[ir.VarID]struct{}
}

func newFrame(kind ir.BlockKind, meta ir.BlockMeta) *Frame {
	return &Frame{
		Kind: kind,
		Meta: meta,
		vars: make(map[ir.VarID]lattice.Type),
	}
}

// EmptySibling returns a frame with no writes, used by callers of
// MergeAllExecuted to represent a path that is known not to mutate any
// variable (e.g. a switch with no default, where "no case matched" is
// itself a possible outcome).
func EmptySibling() *Frame {
	return newFrame(0, nil)
}

// Get returns v's type as currently known in this frame only (not
// consulting parents); ok is false if this frame never bound v.
func (f *Frame) Get(v ir.VarID) (lattice.Type, bool) {
	t, ok := f.vars[v]
	return t, ok
}

// Set binds v to t in this frame, marking v reassigned if it was already
// bound here.
func (f *Frame) Set(v ir.VarID, t lattice.Type) {
	if _, ok := f.vars[v]; ok {
		if f.reassigned == nil {
			f.reassigned = make(map[ir.VarID]struct{})
		}
		f.reassigned[v] = struct{}{}
	}
	f.vars[v] = t
}

// Reassigned reports whether v was bound more than once in this frame's
// lifetime, independent of how many ancestor frames also bound it.
func (f *Frame) Reassigned(v ir.VarID) bool {
	_, ok := f.reassigned[v]
	return ok
}

// Written reports the set of variables this frame bound at least once,
// in no particular order.
func (f *Frame) Written() []ir.VarID {
	vars := make([]ir.VarID, 0, len(f.vars))
	for v := range f.vars {
		vars = append(vars, v)
	}
	return vars
}
