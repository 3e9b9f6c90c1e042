package optimizer

import "github.com/hassan/anvil/internal/ir"

// DSEPass rewrites redundant STORE instructions to NOP. It does not
// remove them — DCEPass handles that.
type DSEPass struct{}

// Name returns this pass's name.
func (DSEPass) Name() string { return "DeadStoreElimination" }

// Run rewrites redundant stores in fn to NOP. It always returns nil
// and does not report whether any store was rewritten; call RunDSE
// for that.
func (DSEPass) Run(fn *ir.Function) error {
	RunDSE(fn)
	return nil
}

// RunDSE runs dead store elimination over fn, returning true iff at
// least one store was rewritten to NOP.
//
// A nil Function, or one with no blocks, returns false with no
// effect.
func RunDSE(fn *ir.Function) bool {
	if fn == nil || fn.Entry == nil {
		return false
	}

	changed := false
	for b := fn.Entry; b != nil; b = b.Next {
		for i := b.First; i != nil; i = i.Next {
			if i.Op != ir.STORE || i.NumOperands < 2 {
				continue
			}
			if storeIsDead(i) {
				i.Op = ir.NOP
				changed = true
			}
		}
	}
	return changed
}

// storeIsDead implements the per-store intra-block forward scan: walk
// forward from s.Next within the same block, and classify the first
// matching successor instruction.
func storeIsDead(s *ir.Instruction) bool {
	dest := s.Operands[1]

	for i := s.Next; i != nil; i = i.Next {
		switch {
		case i.Op == ir.LOAD && ir.SamePointer(i.Operands[0], dest):
			// Read of the same pointer: the store is live.
			return false

		case i.Op == ir.CALL:
			// A call may read arbitrary memory.
			return false

		case i.Op == ir.STORE && i.NumOperands >= 2 && ir.SamePointer(i.Operands[1], dest):
			// An overwriting store to the same pointer: s is dead.
			return true

		case i.Op.IsTerminator():
			// Cross-block reasoning is out of scope; a later block
			// may read this pointer.
			return false
		}
	}

	// Reached the end of the block's list without a terminator. A
	// well-formed block never produces this; treat as live.
	return false
}
