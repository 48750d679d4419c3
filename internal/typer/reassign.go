package typer

import "jstyper/internal/ir"

// analyzeReassign implements reassign(V, from: W) -> set(V, get(W)).
// inputs is [V, W].
func (t *Typer) analyzeReassign(op ir.Op, inputs []ir.VarID) {
	if len(inputs) < 2 {
		return
	}
	target, source := inputs[0], inputs[1]
	t.set(target, t.get(source))
}

// analyzeReassignWithOp implements reassign(V, from: W, with: op) -> V's
// type is computed as if `V op W` and stored back into V. inputs is
// [V, W].
func (t *Typer) analyzeReassignWithOp(op ir.Op, inputs []ir.VarID) {
	if len(inputs) < 2 {
		return
	}
	target, source := inputs[0], inputs[1]
	result := t.analyzeBinary(op, []ir.VarID{target, source})
	t.set(target, result)
}
