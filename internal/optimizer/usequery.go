// Package optimizer implements dead store and dead code elimination
// over the ir package's SSA control-flow graph.
package optimizer

import "github.com/hassan/anvil/internal/ir"

// IsUsed reports whether v appears as an operand of any live
// instruction in fn.
//
// It scans every block in Function order and every instruction within
// each block, skipping NOPs (already logically deleted, awaiting
// DCE). For PHI instructions, Operands[0:NumPhiIncoming] are the
// incoming-value slots; the scan covers the union of that range and
// Operands[0:NumOperands], i.e. Operands[0:max(NumOperands,
// NumPhiIncoming)]. For a PHI built by NewPhi the two ranges coincide.
//
// Returns false if v is nil, and false if fn is nil.
func IsUsed(fn *ir.Function, v *ir.Value) bool {
	if fn == nil || v == nil {
		return false
	}
	for b := fn.Entry; b != nil; b = b.Next {
		for i := b.First; i != nil; i = i.Next {
			if i.Op == ir.NOP {
				continue
			}
			n := i.NumOperands
			if i.Op == ir.PHI && i.NumPhiIncoming > n {
				n = i.NumPhiIncoming
			}
			for _, operand := range i.Operands[:n] {
				if operand == v {
					return true
				}
			}
		}
	}
	return false
}
