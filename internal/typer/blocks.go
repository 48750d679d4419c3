package typer

import (
	"fmt"

	"jstyper/internal/ir"
	"jstyper/internal/lattice"
	"jstyper/internal/state"
)

type conditionalGroup struct {
	ifFrame *state.Frame // set once the if-arm closes, when an else-arm is expected
}

type switchGroup struct {
	hasDefault bool
	frames     []*state.Frame
}

// EnterBlock opens a new lexical block, matching the core spec's
// enterBlock(kind, …metadata) hook. Metadata must be the concrete
// ir.*Meta type documented for kind. A BlockFunction entered with any
// other metadata panics; for the other kinds, metadata of another type
// is read as that kind's zero metadata.
func (t *Typer) EnterBlock(kind ir.BlockKind, meta ir.BlockMeta) {
	defer t.span(fmt.Sprintf("enter:%s", kind))()

	// Pushed first: kind-specific setup below (parameter binding, `this`
	// binding) writes into this new frame, not its parent.
	t.stack.Push(kind, meta)

	switch kind {
	case ir.BlockConditional:
		cm, _ := meta.(ir.ConditionalMeta)
		if !cm.IsElse {
			t.conditionalGroups = append(t.conditionalGroups, &conditionalGroup{})
		}
	case ir.BlockSwitchCase:
		sm, _ := meta.(ir.SwitchCaseMeta)
		if sm.IsFirst {
			t.switchGroups = append(t.switchGroups, &switchGroup{hasDefault: sm.HasDefault})
		}
	case ir.BlockFunction:
		t.enterFunction(meta)
	case ir.BlockClassBody:
		t.enterClassBody(meta)
	case ir.BlockClassMethod, ir.BlockClassStatic, ir.BlockClassStaticInitializer:
		t.enterClassMember(kind, meta)
	case ir.BlockObjectLiteral:
		t.enterObjectLiteral(meta)
	case ir.BlockLoop:
		t.bindLoopVar(meta)
	case ir.BlockRoot, ir.BlockTry, ir.BlockCatch, ir.BlockFinally:
		// No extra bookkeeping beyond the pushed frame itself.
	default:
		panic(fmt.Sprintf("typer: unrecognized block kind %d", kind))
	}
}

// LeaveBlock closes the innermost open block and folds its writes back
// per the merge mode its kind calls for.
func (t *Typer) LeaveBlock() {
	defer t.span("leave")()

	kind := t.stack.Top().Kind
	popped := t.stack.Pop()

	switch kind {
	case ir.BlockConditional:
		t.leaveConditional(popped)
	case ir.BlockSwitchCase:
		t.leaveSwitchCase(popped)
	case ir.BlockLoop, ir.BlockTry, ir.BlockCatch, ir.BlockFinally:
		t.stack.MergeMayExecute(popped)
	case ir.BlockFunction:
		t.leaveFunction(popped)
	case ir.BlockClassBody:
		t.leaveClassBody(popped)
	case ir.BlockClassMethod, ir.BlockClassStatic, ir.BlockClassStaticInitializer:
		t.leaveClassMember(popped)
	case ir.BlockObjectLiteral:
		t.leaveObjectLiteral(popped)
	case ir.BlockRoot:
		panic("typer: leaveBlock called with no matching enterBlock (root frame)")
	default:
		panic(fmt.Sprintf("typer: unrecognized block kind %d", kind))
	}
}

func (t *Typer) leaveConditional(popped *state.Frame) {
	cm, _ := popped.Meta.(ir.ConditionalMeta)
	if len(t.conditionalGroups) == 0 {
		panic("typer: leaveBlock for conditional with no matching enterBlock")
	}
	top := t.conditionalGroups[len(t.conditionalGroups)-1]

	if cm.IsElse {
		t.conditionalGroups = t.conditionalGroups[:len(t.conditionalGroups)-1]
		if top.ifFrame == nil {
			panic("typer: else-arm left without a matching if-arm")
		}
		t.stack.MergeAllExecuted([]*state.Frame{top.ifFrame, popped})
		return
	}

	if cm.HasElse {
		top.ifFrame = popped
		return
	}
	t.conditionalGroups = t.conditionalGroups[:len(t.conditionalGroups)-1]
	t.stack.MergeMayExecute(popped)
}

func (t *Typer) bindLoopVar(meta ir.BlockMeta) {
	lm, _ := meta.(ir.LoopMeta)
	if lm.LoopVar == ir.NoVar {
		return
	}
	switch lm.Kind {
	case ir.LoopNumeric:
		t.set(lm.LoopVar, lattice.Primitive)
	case ir.LoopForIn:
		t.set(lm.LoopVar, lattice.String)
	case ir.LoopForOf:
		t.set(lm.LoopVar, lattice.Unknown)
	}
}

func (t *Typer) leaveSwitchCase(popped *state.Frame) {
	sm, _ := popped.Meta.(ir.SwitchCaseMeta)
	if len(t.switchGroups) == 0 {
		panic("typer: leaveBlock for switch-case with no matching enterBlock")
	}
	top := t.switchGroups[len(t.switchGroups)-1]
	top.frames = append(top.frames, popped)

	if !sm.IsLast {
		return
	}
	t.switchGroups = t.switchGroups[:len(t.switchGroups)-1]
	if !top.hasDefault {
		// No default: control may fall through every case untouched,
		// so the pre-switch type must remain a possible outcome. An
		// empty synthetic sibling achieves that: MergeAllExecuted
		// falls back to the pre-block type for any variable a given
		// sibling didn't write.
		top.frames = append(top.frames, state.EmptySibling())
	}
	t.stack.MergeAllExecuted(top.frames)
}
