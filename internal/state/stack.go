package state

import (
	"jstyper/internal/ir"
	"jstyper/internal/lattice"
)

// Stack is the State Stack: a LIFO of Frames representing the lexical
// blocks currently open while walking an operation stream. The root
// frame (pushed once, never popped) holds every top-level and
// function-free-variable binding.
type Stack struct {
	frames []*Frame
}

// New returns a Stack with its root frame already pushed.
func New() *Stack {
	s := &Stack{}
	s.Push(ir.BlockRoot, nil)
	return s
}

// Push opens a new frame of the given kind on top of the stack.
func (s *Stack) Push(kind ir.BlockKind, meta ir.BlockMeta) {
	s.frames = append(s.frames, newFrame(kind, meta))
}

// Pop closes the innermost frame and returns it so the caller can fold
// its writes back into the stack via one of the Merge methods. Pop does
// not protect the root frame: it pops it like any other. Pop panics if
// called on an empty stack, since that signals malformed block nesting
// from the builder.
func (s *Stack) Pop() *Frame {
	n := len(s.frames)
	if n == 0 {
		panic("state: pop on empty stack")
	}
	f := s.frames[n-1]
	s.frames = s.frames[:n-1]
	return f
}

// Top returns the innermost open frame.
func (s *Stack) Top() *Frame {
	if len(s.frames) == 0 {
		panic("state: top on empty stack")
	}
	return s.frames[len(s.frames)-1]
}

// Depth reports how many frames are currently open, including the root.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Get searches from the innermost frame outward and returns the first
// binding found for v.
func (s *Stack) Get(v ir.VarID) (lattice.Type, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if t, ok := s.frames[i].Get(v); ok {
			return t, ok
		}
	}
	return lattice.Type{}, false
}

// Set writes v's type into the innermost frame, shadowing any outer
// binding until the frame closes and its writes are merged upward.
func (s *Stack) Set(v ir.VarID, t lattice.Type) {
	s.Top().Set(v, t)
}

// MergeMayExecute folds a single closed frame's writes into the now-top
// frame under may-execute semantics: a variable the frame wrote is
// unioned with whatever value it already had outside the frame. A
// variable with no binding outside the closed frame was local to it and
// is dropped.
func (s *Stack) MergeMayExecute(popped *Frame) {
	for v, t := range popped.vars {
		if base, ok := s.Get(v); ok {
			s.Set(v, lattice.Union(base, t))
		}
	}
}

// MergeMustExecute folds a single closed frame's writes into the now-top
// frame under must-execute semantics: a variable the frame wrote simply
// takes the frame's final value, since the frame is known to have run.
// A variable with no binding outside the closed frame was local to it
// and is dropped.
func (s *Stack) MergeMustExecute(popped *Frame) {
	for v, t := range popped.vars {
		if _, ok := s.Get(v); ok {
			s.Set(v, t)
		}
	}
}

// MergeAllExecuted folds several closed sibling frames (e.g. an if and
// its else, or every arm of a switch) into the now-top frame under
// union-all-executed semantics: every frame in popped is known to run on
// some path, so a variable's merged type is the union, across all of
// popped, of either that frame's write or (if that frame didn't write it)
// the value the variable had before any of the siblings ran. A variable
// bound in no remaining ancestor frame was local to the siblings and is
// dropped.
func (s *Stack) MergeAllExecuted(popped []*Frame) {
	touched := make(map[ir.VarID]struct{})
	for _, f := range popped {
		for v := range f.vars {
			touched[v] = struct{}{}
		}
	}
	for v := range touched {
		base, ok := s.Get(v)
		if !ok {
			continue
		}
		merged := base
		first := true
		for _, f := range popped {
			branchType := base
			if t, ok := f.Get(v); ok {
				branchType = t
			}
			if first {
				merged = branchType
				first = false
				continue
			}
			merged = lattice.Union(merged, branchType)
		}
		s.Set(v, merged)
	}
}
