package ir

import "github.com/hassan/anvil/internal/semantic/types"

// Instruction is a single IR operation, intrusively linked into its
// owning Block's instruction list.
//
// DESIGN CHOICE: one tagged struct for every opcode, rather than the
// interface-per-instruction-kind design a tree-walking AST favors.
// The optimizer needs to unlink any instruction in O(1) given only its
// reference; that requires Prev/Next/Parent fields to live somewhere
// concrete, and a closed opcode tag (opcode.go) to dispatch on rather
// than a type switch over N concrete types.
type Instruction struct {
	// Op is this instruction's opcode.
	Op Opcode

	// Operands are the values this instruction reads, in opcode-
	// defined order. Operands[0:NumOperands] are the meaningful
	// entries.
	Operands []*Value

	// NumOperands is the count of meaningful entries in Operands.
	NumOperands int

	// NumPhiIncoming is, for PHI only, the count of incoming (value,
	// predecessor-block) pairs; Operands[0:NumPhiIncoming] are the
	// incoming values and PhiBlocks[0:NumPhiIncoming] are their
	// matching predecessor blocks.
	NumPhiIncoming int

	// PhiBlocks holds, for PHI only, the predecessor block paired
	// with each entry of Operands[0:NumPhiIncoming].
	PhiBlocks []*Block

	// Result is the value this instruction produces, or nil for
	// terminators, STORE, and void CALL.
	Result *Value

	// Targets holds block operands for terminators (BR: one target;
	// BRCOND: [trueTarget, falseTarget]; SWITCH: default + per-case
	// targets, index-aligned with Cases).
	Targets []*Block

	// Cases holds, for SWITCH only, the constant Value compared
	// against the scrutinee for each entry of Targets[1:] (Targets[0]
	// is the default target and has no matching Cases entry).
	Cases []*Value

	// FieldIndex is, for GETFIELDPTR only, the index of the accessed
	// field.
	FieldIndex int

	// AllocType is, for ALLOCA only, the type of the allocated slot.
	AllocType types.Type

	// Callee names the called function for CALL (a *Value of kind
	// ValueGlobal, or a first-class function value).
	Callee *Value

	// Parent is a weak back-reference to the owning Block. It is a
	// relation, not ownership: used only to locate the block during
	// surgery (ir.Remove).
	Parent *Block

	// Prev and Next are this instruction's siblings within Parent's
	// list. After removal they remain readable but must not be
	// followed.
	Prev, Next *Instruction
}

// NewNop creates a standalone NOP instruction.
func NewNop() *Instruction {
	return &Instruction{Op: NOP}
}

// NewBinary creates a binary arithmetic/compare/logical/bitwise
// instruction: Dest = Left Op Right.
func NewBinary(op Opcode, dest, left, right *Value) *Instruction {
	return &Instruction{
		Op:          op,
		Operands:    []*Value{left, right},
		NumOperands: 2,
		Result:      dest,
	}
}

// NewUnary creates a unary instruction: Dest = Op Operand.
func NewUnary(op Opcode, dest, operand *Value) *Instruction {
	return &Instruction{
		Op:          op,
		Operands:    []*Value{operand},
		NumOperands: 1,
		Result:      dest,
	}
}

// NewCopy creates a Dest = Value copy instruction.
func NewCopy(dest, value *Value) *Instruction {
	return &Instruction{Op: COPY, Operands: []*Value{value}, NumOperands: 1, Result: dest}
}

// NewCast creates a Dest = cast(Value) instruction.
func NewCast(dest, value *Value) *Instruction {
	return &Instruction{Op: CAST, Operands: []*Value{value}, NumOperands: 1, Result: dest}
}

// NewLoad creates a Dest = load Address instruction.
func NewLoad(dest, address *Value) *Instruction {
	return &Instruction{Op: LOAD, Operands: []*Value{address}, NumOperands: 1, Result: dest}
}

// NewStore creates a store Value, Address instruction. Operands[0] is
// the stored value and Operands[1] is the destination pointer.
func NewStore(value, address *Value) *Instruction {
	return &Instruction{Op: STORE, Operands: []*Value{value, address}, NumOperands: 2}
}

// NewAlloca creates a Dest = alloca Type instruction.
func NewAlloca(dest *Value, typ types.Type) *Instruction {
	return &Instruction{Op: ALLOCA, Result: dest, AllocType: typ}
}

// NewGEP creates a Dest = &Base[Index] instruction.
func NewGEP(dest, base, index *Value) *Instruction {
	return &Instruction{Op: GEP, Operands: []*Value{base, index}, NumOperands: 2, Result: dest}
}

// NewGetFieldPtr creates a Dest = &Base.field[fieldIndex] instruction.
func NewGetFieldPtr(dest, base *Value, fieldIndex int) *Instruction {
	return &Instruction{Op: GETFIELDPTR, Operands: []*Value{base}, NumOperands: 1, Result: dest, FieldIndex: fieldIndex}
}

// NewCall creates a call instruction. dest may be nil for void calls.
func NewCall(dest *Value, callee *Value, args []*Value) *Instruction {
	ops := make([]*Value, 0, len(args)+1)
	ops = append(ops, callee)
	ops = append(ops, args...)
	return &Instruction{
		Op:          CALL,
		Operands:    ops,
		NumOperands: len(ops),
		Result:      dest,
		Callee:      callee,
	}
}

// NewBr creates an unconditional jump to target.
func NewBr(target *Block) *Instruction {
	return &Instruction{Op: BR, Targets: []*Block{target}}
}

// NewBrCond creates a conditional branch: if cond, trueBlock else
// falseBlock.
func NewBrCond(cond *Value, trueBlock, falseBlock *Block) *Instruction {
	return &Instruction{
		Op:          BRCOND,
		Operands:    []*Value{cond},
		NumOperands: 1,
		Targets:     []*Block{trueBlock, falseBlock},
	}
}

// NewSwitch creates a switch over scrutinee with a default target and
// case/target pairs.
func NewSwitch(scrutinee *Value, def *Block, cases []*Value, targets []*Block) *Instruction {
	allTargets := make([]*Block, 0, len(targets)+1)
	allTargets = append(allTargets, def)
	allTargets = append(allTargets, targets...)
	return &Instruction{
		Op:          SWITCH,
		Operands:    []*Value{scrutinee},
		NumOperands: 1,
		Targets:     allTargets,
		Cases:       cases,
	}
}

// NewRet creates a return instruction. value may be nil for void
// returns.
func NewRet(value *Value) *Instruction {
	if value == nil {
		return &Instruction{Op: RET}
	}
	return &Instruction{Op: RET, Operands: []*Value{value}, NumOperands: 1}
}

// PhiIncoming is one (value, predecessor-block) pair for a PHI.
type PhiIncoming struct {
	Value *Value
	Block *Block
}

// NewPhi creates a PHI instruction selecting dest from incoming pairs.
func NewPhi(dest *Value, incoming []PhiIncoming) *Instruction {
	vals := make([]*Value, len(incoming))
	blocks := make([]*Block, len(incoming))
	for i, in := range incoming {
		vals[i] = in.Value
		blocks[i] = in.Block
	}
	return &Instruction{
		Op:             PHI,
		Operands:       vals,
		NumOperands:    len(vals),
		NumPhiIncoming: len(vals),
		PhiBlocks:      blocks,
		Result:         dest,
	}
}
