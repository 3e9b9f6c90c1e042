package optimizer

import "github.com/hassan/anvil/internal/ir"

// DCEPass removes NOP instructions and pure instructions whose result
// is unused, iterating to a fixpoint.
//
// The outer "for modified" sweep loop is the same shape as a classic
// slice-rebuilding dead-code pass, replumbed onto the linked-list IR
// with an added NOP-aware branch for instructions already marked dead
// by an earlier pass.
type DCEPass struct{}

// Name returns this pass's name.
func (DCEPass) Name() string { return "DeadCodeElimination" }

// Run removes dead instructions from fn.
func (DCEPass) Run(fn *ir.Function) error {
	RunDCE(fn)
	return nil
}

// RunDCE runs dead code elimination over fn to a fixpoint, returning
// true iff at least one instruction was removed across all iterations.
//
// A nil Function returns false with no effect.
func RunDCE(fn *ir.Function) bool {
	if fn == nil {
		return false
	}

	anyRemoved := false
	for {
		removedThisSweep := false

		for b := fn.Entry; b != nil; b = b.Next {
			for i := b.First; i != nil; {
				next := i.Next // capture before any surgery: i's links must not be followed after Remove

				switch {
				case i.Op == ir.NOP:
					ir.Remove(i)
					removedThisSweep = true

				case i.Op.IsSideEffectful():
					// skip: never removed regardless of usage

				case i.Result == nil:
					// skip: nothing downstream could use this

				case !IsUsed(fn, i.Result):
					ir.Remove(i)
					removedThisSweep = true

				default:
					// skip: result is used elsewhere
				}

				i = next
			}
		}

		if !removedThisSweep {
			break
		}
		anyRemoved = true
	}

	return anyRemoved
}
