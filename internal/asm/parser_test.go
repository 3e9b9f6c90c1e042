package asm

import (
	"testing"

	"github.com/hassan/anvil/internal/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModule_RedundantStoreExample(t *testing.T) {
	src := `
func @f(i: int) -> int {
entry:
  %p = alloca int
  store 1, %p
  store 2, %p
  ret
}
`
	mod, errs := ParseModule(src, "test.air")
	require.Empty(t, errs)
	require.Len(t, mod.Functions, 1)

	fn := mod.Functions[0]
	assert.Equal(t, "f", fn.Name)
	require.NotNil(t, fn.Entry)

	got := fn.Entry.Instructions()
	require.Len(t, got, 4)
	assert.Equal(t, ir.ALLOCA, got[0].Op)
	assert.Equal(t, ir.STORE, got[1].Op)
	assert.Equal(t, ir.STORE, got[2].Op)
	assert.Equal(t, ir.RET, got[3].Op)

	// Both stores target the same alloca'd pointer by reference.
	assert.True(t, ir.SamePointer(got[1].Operands[1], got[2].Operands[1]))
}

func TestParseModule_BinaryArithmeticAndBranch(t *testing.T) {
	src := `
func @g(a: int, b: int) -> int {
entry:
  %t = add %a, %b
  br_cond true, then, done
then:
  %u = mul %t, 2
  br done
done:
  ret %t
}
`
	mod, errs := ParseModule(src, "test.air")
	require.Empty(t, errs)
	fn := mod.Functions[0]
	require.Len(t, fn.Blocks(), 3)

	entry := fn.Entry
	instrs := entry.Instructions()
	require.Len(t, instrs, 2)
	assert.Equal(t, ir.ADD, instrs[0].Op)
	assert.Equal(t, ir.BRCOND, instrs[1].Op)
	require.Len(t, instrs[1].Targets, 2)
	assert.Equal(t, "then", instrs[1].Targets[0].Label)
	assert.Equal(t, "done", instrs[1].Targets[1].Label)
}

func TestParseModule_PhiAcrossBlocks(t *testing.T) {
	src := `
func @h() -> int {
b1:
  %x = add 1, 2
  br b3
b2:
  %y = add 3, 4
  br b3
b3:
  %z = phi (%x, b1), (%y, b2)
  ret %z
}
`
	mod, errs := ParseModule(src, "test.air")
	require.Empty(t, errs)
	fn := mod.Functions[0]
	blocks := fn.Blocks()
	require.Len(t, blocks, 3)

	b3 := blocks[2]
	instrs := b3.Instructions()
	require.Len(t, instrs, 2)
	assert.Equal(t, ir.PHI, instrs[0].Op)
	assert.Equal(t, 2, instrs[0].NumPhiIncoming)
}

func TestParseModule_CallWithAndWithoutResult(t *testing.T) {
	src := `
func @caller() -> void {
entry:
  call @log(1, 2)
  %r = call @compute(3)
  ret
}
`
	mod, errs := ParseModule(src, "test.air")
	require.Empty(t, errs)
	fn := mod.Functions[0]
	instrs := fn.Entry.Instructions()
	require.Len(t, instrs, 3)
	assert.Equal(t, ir.CALL, instrs[0].Op)
	assert.Nil(t, instrs[0].Result)
	assert.Equal(t, ir.CALL, instrs[1].Op)
	assert.NotNil(t, instrs[1].Result)
}

func TestParseModule_UnknownOpcodeReportsError(t *testing.T) {
	src := `
func @f() -> void {
entry:
  %x = frobnicate 1
  ret
}
`
	_, errs := ParseModule(src, "test.air")
	assert.NotEmpty(t, errs)
}

func TestParseModule_UndefinedValueReportsError(t *testing.T) {
	src := `
func @f() -> void {
entry:
  ret %nope
}
`
	_, errs := ParseModule(src, "test.air")
	assert.NotEmpty(t, errs)
}

func TestParseModule_PointerParamType(t *testing.T) {
	src := `
func @store_through(p: *int) -> void {
entry:
  store 5, %p
  ret
}
`
	mod, errs := ParseModule(src, "test.air")
	require.Empty(t, errs)
	fn := mod.Functions[0]
	require.Len(t, fn.Parameters, 1)
	assert.Equal(t, "*int", fn.Parameters[0].Type.String())
}
