package state

import (
	"testing"

	"jstyper/internal/ir"
	"jstyper/internal/lattice"
)

func TestSetAndGetRoundtrip(t *testing.T) {
	s := New()
	s.Set(1, lattice.Integer)
	got, ok := s.Get(1)
	if !ok || !got.Equal(lattice.Integer) {
		t.Fatalf("expected integer, got %v ok=%v", got, ok)
	}
}

func TestMayExecuteUnionsWithPreBlockType(t *testing.T) {
	s := New()
	s.Set(1, lattice.Integer)

	s.Push(ir.BlockLoop, nil)
	s.Set(1, lattice.String)
	popped := s.Pop()
	s.MergeMayExecute(popped)

	got, _ := s.Get(1)
	want := lattice.Union(lattice.Integer, lattice.String)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMustExecuteOverwrites(t *testing.T) {
	s := New()
	s.Set(1, lattice.Integer)

	s.Push(ir.BlockSwitchCase, nil)
	s.Set(1, lattice.String)
	popped := s.Pop()
	s.MergeMustExecute(popped)

	got, _ := s.Get(1)
	if !got.Equal(lattice.String) {
		t.Fatalf("expected string, got %v", got)
	}
}

func TestLocalVariableDoesNotEscapeBlock(t *testing.T) {
	s := New()
	s.Push(ir.BlockConditional, nil)
	s.Set(99, lattice.Boolean)
	popped := s.Pop()
	s.MergeMayExecute(popped)

	if _, ok := s.Get(99); ok {
		t.Fatalf("expected local variable to be dropped on merge")
	}
}

func TestAllExecutedUnionsBothBranches(t *testing.T) {
	s := New()
	s.Set(1, lattice.Integer)

	s.Push(ir.BlockConditional, nil)
	s.Set(1, lattice.String)
	thenFrame := s.Pop()

	s.Push(ir.BlockConditional, nil)
	s.Set(1, lattice.Boolean)
	elseFrame := s.Pop()

	s.MergeAllExecuted([]*Frame{thenFrame, elseFrame})

	got, _ := s.Get(1)
	want := lattice.Union(lattice.String, lattice.Boolean)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAllExecutedFallsBackToPreBlockTypeForUntouchedBranch(t *testing.T) {
	s := New()
	s.Set(1, lattice.Integer)
	s.Set(2, lattice.Boolean)

	s.Push(ir.BlockConditional, nil)
	s.Set(1, lattice.String)
	thenFrame := s.Pop()

	s.Push(ir.BlockConditional, nil)
	// else branch never touches variable 1.
	elseFrame := s.Pop()

	s.MergeAllExecuted([]*Frame{thenFrame, elseFrame})

	got, _ := s.Get(1)
	want := lattice.Union(lattice.String, lattice.Integer)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestPopOnEmptyStackPanics(t *testing.T) {
	s := New()
	s.Pop() // pop the root frame

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic popping an already-empty stack")
		}
	}()
	s.Pop()
}
