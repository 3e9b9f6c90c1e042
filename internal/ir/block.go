package ir

import "strings"

// Block is a basic block: a straight-line instruction sequence with
// one entry and one terminating exit, owned by exactly one Function.
//
// Instructions are held in a doubly-linked list (First/Last, each
// Instruction's Prev/Next) rather than a slice, so the optimizer can
// unlink any instruction in O(1) given only its reference. Successor/
// predecessor links are maintained for callers that want CFG
// traversal (e.g. reachability); the optimizer itself never crosses
// them — store elimination stays intra-block, with no control-
// dependence reasoning.
type Block struct {
	// Label is this block's unique name within its Function.
	Label string

	// First and Last are the head and tail of this block's
	// instruction list. Invariant: First == nil iff Last == nil.
	First, Last *Instruction

	// Next links to the next Block in Function order. nil for the
	// last block.
	Next *Block

	// Parent is a weak back-reference to the owning Function.
	Parent *Function

	// Successors and Predecessors mirror the control flow encoded by
	// this block's terminator. Maintained by AddSuccessor; the
	// optimizer core does not consult them.
	Successors   []*Block
	Predecessors []*Block

	// Index is this block's position in the function's block order,
	// set when Function.AddBlock appends the block.
	Index int
}

// NewBlock creates a detached, empty basic block.
func NewBlock(label string) *Block {
	return &Block{Label: label}
}

// PushBack appends instr to the end of this block's instruction list,
// setting instr.Parent.
func (b *Block) PushBack(instr *Instruction) {
	instr.Parent = b
	instr.Prev = b.Last
	instr.Next = nil
	if b.Last != nil {
		b.Last.Next = instr
	} else {
		b.First = instr
	}
	b.Last = instr
}

// InsertBefore inserts instr immediately before mark in this block's
// instruction list, setting instr.Parent. mark must belong to b.
func (b *Block) InsertBefore(instr, mark *Instruction) {
	instr.Parent = b
	instr.Prev = mark.Prev
	instr.Next = mark
	if mark.Prev != nil {
		mark.Prev.Next = instr
	} else {
		b.First = instr
	}
	mark.Prev = instr
}

// Remove detaches instr from its Block.
//
// instr must be non-nil with a non-nil Parent and must not have
// already been removed — callers (optimizer passes) are expected to
// capture Next before calling Remove and never touch instr again
// afterward. This is a programmer contract, not a recoverable error:
// a nil instr or a nil Parent panics rather than returning an error.
// A second Remove of the same instruction is not detected, since
// removal leaves Parent set.
func Remove(instr *Instruction) {
	if instr == nil || instr.Parent == nil {
		panic("ir: Remove called on a nil or already-detached instruction")
	}
	b := instr.Parent

	if instr.Prev != nil {
		instr.Prev.Next = instr.Next
	} else {
		b.First = instr.Next
	}

	if instr.Next != nil {
		instr.Next.Prev = instr.Prev
	} else {
		b.Last = instr.Prev
	}

	// instr.Prev/Next/Parent are deliberately left readable but must
	// not be followed by the caller — no zeroing here.
}

// AddSuccessor adds succ as a successor of b and updates succ's
// predecessor list, skipping duplicates.
func (b *Block) AddSuccessor(succ *Block) {
	for _, s := range b.Successors {
		if s == succ {
			return
		}
	}
	b.Successors = append(b.Successors, succ)
	succ.Predecessors = append(succ.Predecessors, b)
}

// Terminator returns this block's last instruction if it is a
// terminator opcode, or nil if the block is empty or not yet closed.
func (b *Block) Terminator() *Instruction {
	if b.Last == nil || !b.Last.Op.IsTerminator() {
		return nil
	}
	return b.Last
}

// IsTerminated reports whether this block ends in a terminator.
func (b *Block) IsTerminated() bool {
	return b.Terminator() != nil
}

// Instructions returns this block's instructions as a slice, walking
// First..Last via Next. Convenience for callers (printing, testing);
// optimizer passes walk the linked list directly so they can capture
// Next before mutating.
func (b *Block) Instructions() []*Instruction {
	var out []*Instruction
	for i := b.First; i != nil; i = i.Next {
		out = append(out, i)
	}
	return out
}

func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString(b.Label)
	sb.WriteString(":\n")
	for i := b.First; i != nil; i = i.Next {
		sb.WriteString("  ")
		sb.WriteString(instructionString(i))
		sb.WriteString("\n")
	}
	return sb.String()
}
