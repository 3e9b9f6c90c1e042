package ir

import (
	"strings"

	"github.com/hassan/anvil/internal/semantic/types"
)

// Function is an ordered, singly-linked sequence of Blocks with a
// distinguished entry (the first). A Function owns all its Blocks for
// the lifetime of the optimization pass; the optimizer never creates
// or destroys Functions.
type Function struct {
	// Name is the function's name.
	Name string

	// Parameters are the function's parameters, as Values.
	Parameters []*Value

	// ReturnType is the function's return type.
	ReturnType types.Type

	// Entry is the first block. Blocks beyond it are reached via
	// Block.Next.
	Entry *Block

	// last tracks the tail block so AddBlock is O(1).
	last *Block

	// Locals holds local variable (alloca) values, for printing and
	// debugging only — the optimizer discovers all uses by scanning
	// instructions, not this list.
	Locals []*Value

	nextValueID int
}

// NewFunction creates a new, blockless function. Call AddBlock to give
// it an entry block.
func NewFunction(name string, params []*Value, returnType types.Type) *Function {
	return &Function{
		Name:        name,
		Parameters:  params,
		ReturnType:  returnType,
		nextValueID: len(params),
	}
}

// AddBlock appends b to the function's block list, linking it after
// the current tail (or making it the Entry if this is the first
// block) and setting b.Parent/b.Index.
func (f *Function) AddBlock(b *Block) {
	b.Parent = f
	b.Next = nil
	if f.last != nil {
		b.Index = f.last.Index + 1
		f.last.Next = b
	} else {
		b.Index = 0
		f.Entry = b
	}
	f.last = b
}

// Blocks returns this function's blocks as a slice, walking Entry via
// Next. Convenience for callers that want random access or a stable
// count; optimizer passes walk the linked list directly.
func (f *Function) Blocks() []*Block {
	var out []*Block
	for b := f.Entry; b != nil; b = b.Next {
		out = append(out, b)
	}
	return out
}

// NewValue creates a new value with a unique ID scoped to this
// function.
func (f *Function) NewValue(name string, typ types.Type, kind ValueKind) *Value {
	v := &Value{ID: f.nextValueID, Name: name, Type: typ, Kind: kind}
	f.nextValueID++
	return v
}

// NewTemp creates a new SSA temporary value.
func (f *Function) NewTemp(typ types.Type) *Value {
	return f.NewValue("", typ, ValueTemporary)
}

func (f *Function) String() string {
	var sb strings.Builder
	sb.WriteString("func ")
	sb.WriteString(f.Name)
	sb.WriteString("(")
	for i, p := range f.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
		sb.WriteString(": ")
		sb.WriteString(p.Type.String())
	}
	sb.WriteString(") ")
	if f.ReturnType != nil {
		sb.WriteString(f.ReturnType.String())
	}
	sb.WriteString(" {\n")
	for b := f.Entry; b != nil; b = b.Next {
		sb.WriteString(b.String())
	}
	sb.WriteString("}\n")
	return sb.String()
}
