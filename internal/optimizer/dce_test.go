package optimizer

import (
	"testing"

	"github.com/hassan/anvil/internal/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Dead pure arithmetic, chained — requires a fixpoint (three sweeps)
// to fully collapse.
func TestDCE_ChainedDeadArithmetic(t *testing.T) {
	fn := newTestFunc("f")
	entry := ir.NewBlock("entry")
	fn.AddBlock(entry)

	a := fn.NewTemp(nil)
	b := fn.NewTemp(nil)
	c := fn.NewTemp(nil)
	entry.PushBack(ir.NewBinary(ir.ADD, a, constInt(1), constInt(2)))
	entry.PushBack(ir.NewBinary(ir.MUL, b, a, constInt(3)))
	entry.PushBack(ir.NewBinary(ir.SUB, c, b, constInt(1)))
	entry.PushBack(ir.NewRet(constInt(0)))

	require.True(t, RunDCE(fn))
	got := entry.Instructions()
	require.Len(t, got, 1)
	assert.Equal(t, ir.RET, got[0].Op)

	// Idempotent: running again finds nothing left to remove.
	assert.False(t, RunDCE(fn))
}

// A value used only via a PHI in a successor block must survive DCE
// (PHI incoming values count as uses).
func TestDCE_UsedViaPhiAcrossBlocks(t *testing.T) {
	fn := newTestFunc("f")
	b1 := ir.NewBlock("b1")
	b2 := ir.NewBlock("b2")
	b3 := ir.NewBlock("b3")
	fn.AddBlock(b1)
	fn.AddBlock(b2)
	fn.AddBlock(b3)
	b1.AddSuccessor(b3)
	b2.AddSuccessor(b3)

	a := fn.NewTemp(nil)
	bb := fn.NewTemp(nil)
	x := fn.NewTemp(nil)

	b1.PushBack(ir.NewBinary(ir.ADD, a, constInt(1), constInt(2)))
	b1.PushBack(ir.NewBr(b3))

	b2.PushBack(ir.NewBinary(ir.ADD, bb, constInt(3), constInt(4)))
	b2.PushBack(ir.NewBr(b3))

	b3.PushBack(ir.NewPhi(x, []ir.PhiIncoming{{Value: a, Block: b1}, {Value: bb, Block: b2}}))
	b3.PushBack(ir.NewRet(x))

	assert.False(t, RunDCE(fn))
	assert.Len(t, b1.Instructions(), 2)
	assert.Len(t, b2.Instructions(), 2)
}

func TestDCE_RemovesNop(t *testing.T) {
	fn := newTestFunc("f")
	entry := ir.NewBlock("entry")
	fn.AddBlock(entry)
	entry.PushBack(ir.NewNop())
	entry.PushBack(ir.NewRet(nil))

	require.True(t, RunDCE(fn))
	got := entry.Instructions()
	require.Len(t, got, 1)
	assert.Equal(t, ir.RET, got[0].Op)
}

func TestDCE_NeverRemovesSideEffectfulOrTerminator(t *testing.T) {
	fn := newTestFunc("f")
	entry := ir.NewBlock("entry")
	fn.AddBlock(entry)

	p := ptrParam(fn, "p")
	store := ir.NewStore(constInt(1), p)
	callee := fn.NewValue("g", nil, ir.ValueGlobal)
	call := ir.NewCall(nil, callee, nil)
	ret := ir.NewRet(nil)
	entry.PushBack(store)
	entry.PushBack(call)
	entry.PushBack(ret)

	assert.False(t, RunDCE(fn))
	assert.Equal(t, []*ir.Instruction{store, call, ret}, entry.Instructions())
}

func TestDCE_NilFunction(t *testing.T) {
	assert.False(t, RunDCE(nil))
}

// A terminator remains the last instruction of its block even when
// everything above it collapses.
func TestDCE_TerminatorRemainsLast(t *testing.T) {
	fn := newTestFunc("f")
	entry := ir.NewBlock("entry")
	fn.AddBlock(entry)

	a := fn.NewTemp(nil)
	entry.PushBack(ir.NewBinary(ir.ADD, a, constInt(1), constInt(2)))
	entry.PushBack(ir.NewRet(constInt(0)))

	RunDCE(fn)
	assert.NotNil(t, entry.Last)
	assert.True(t, entry.Last.Op.IsTerminator())
}

// DSE then DCE leaves no new dead store for a subsequent DSE to find.
func TestDSEThenDCEFixpoint(t *testing.T) {
	fn := newTestFunc("f")
	entry := ir.NewBlock("entry")
	fn.AddBlock(entry)

	p := ptrParam(fn, "p")
	entry.PushBack(ir.NewStore(constInt(1), p))
	entry.PushBack(ir.NewStore(constInt(2), p))
	entry.PushBack(ir.NewRet(nil))

	RunDSE(fn)
	RunDCE(fn)

	assert.False(t, RunDSE(fn))
}
