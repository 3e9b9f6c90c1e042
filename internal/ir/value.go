// Package ir implements ANVIL's intermediate representation: a
// function-level, SSA control-flow graph of basic blocks that the
// optimizer package mutates in place.
//
// DESIGN CHOICE: instructions are owned by an intrusive doubly-linked
// list (Instruction.Prev/Next) with a weak Parent back-reference,
// rather than Go slices. A slice-backed block can't give the
// optimizer an O(1) unlink-by-reference primitive without an index
// map; an intrusive list can (see instruction.go, block.go).
package ir

import (
	"fmt"

	"github.com/hassan/anvil/internal/semantic/types"
)

// Value is a node in the SSA use-def lattice: a variable, constant,
// parameter, or the result of an instruction.
//
// Identity is by pointer equality. Two Values are the same value iff
// their references are equal; there is no value-to-user list, so
// answering "is V used?" requires a whole-function scan (see
// optimizer.IsUsed).
type Value struct {
	// ID is a unique identifier for this value within its Function.
	ID int

	// Name is the original variable name, if any. Empty for
	// temporaries and constants.
	Name string

	// Type is the value's type.
	Type types.Type

	// Kind indicates what kind of value this is.
	Kind ValueKind

	// Constant holds the compile-time constant payload when
	// Kind == ValueConstant.
	Constant interface{}
}

// ValueKind enumerates the possible origins of a Value.
type ValueKind int

const (
	ValueInstr     ValueKind = iota // produced by an instruction's Result
	ValueTemporary                  // compiler-generated SSA temporary
	ValueConstant                   // compile-time constant
	ValueGlobal                     // module-level global
	ValueParameter                  // function parameter
)

func (v *Value) String() string {
	switch v.Kind {
	case ValueConstant:
		return fmt.Sprintf("const(%v)", v.Constant)
	case ValueParameter:
		if v.Name != "" {
			return fmt.Sprintf("param(%s.%d)", v.Name, v.ID)
		}
		return fmt.Sprintf("param(%d)", v.ID)
	case ValueGlobal:
		return fmt.Sprintf("@%s", v.Name)
	case ValueTemporary:
		return fmt.Sprintf("%%t%d", v.ID)
	default:
		if v.Name != "" {
			return fmt.Sprintf("%%%s.%d", v.Name, v.ID)
		}
		return fmt.Sprintf("%%v%d", v.ID)
	}
}

// IsConstant reports whether this is a constant value.
func (v *Value) IsConstant() bool {
	return v != nil && v.Kind == ValueConstant
}

// SamePointer reports whether p1 and p2 are "definitely the same
// pointer": same reference. An instruction's Result is a single
// *Value reused at every use site, so two operand slots naming the
// same defining instruction already compare equal by reference —
// there is no separate "same underlying instruction" case to check.
// No other equivalence (offsets, aliasing, phi-merging) is inferred;
// when uncertain this reports false, which keeps DSE sound.
func SamePointer(p1, p2 *Value) bool {
	if p1 == nil || p2 == nil {
		return false
	}
	return p1 == p2
}
