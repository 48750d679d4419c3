package script

import "jstyper/internal/typer"

// Run drives t through every step of p in order.
func (p *Program) Run(t *typer.Typer) {
	for _, step := range p.Steps {
		switch {
		case step.EnterBlock != nil:
			t.EnterBlock(step.EnterBlock.Kind, step.EnterBlock.Meta)
		case step.LeaveBlock:
			t.LeaveBlock()
		case step.Op != nil:
			t.Analyze(step.Op.Op, step.Op.Inputs, step.Op.Outputs)
		}
	}
}

// Vars returns every distinct variable ID mentioned as an output across the
// whole program, in first-seen order — the natural "what did this script
// produce" set a CLI or snapshot capture wants to report on.
func (p *Program) Vars() []uint32 {
	seen := make(map[uint32]bool)
	var out []uint32
	for _, step := range p.Steps {
		if step.Op == nil {
			continue
		}
		for _, v := range step.Op.Outputs {
			id := uint32(v)
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}
