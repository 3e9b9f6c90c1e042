package ir

import (
	"testing"

	"github.com/hassan/anvil/internal/semantic/types"
	"github.com/stretchr/testify/assert"
)

func TestVerifyCatchesMissingTerminator(t *testing.T) {
	m := NewModule("m")
	fn := NewFunction("f", nil, types.Void)
	b := NewBlock("entry")
	fn.AddBlock(b)
	b.PushBack(NewRet(nil))
	m.AddFunction(fn)
	assert.Empty(t, m.Verify())

	bad := NewFunction("g", nil, types.Void)
	badBlock := NewBlock("entry")
	bad.AddBlock(badBlock)
	badBlock.PushBack(NewUnary(NEG, &Value{ID: 1, Type: types.Int}, &Value{ID: 2, Type: types.Int}))
	m.AddFunction(bad)

	errs := m.Verify()
	assert.Len(t, errs, 1)
}

func TestVerifyCatchesEntryWithPredecessors(t *testing.T) {
	m := NewModule("m")
	fn := NewFunction("f", nil, types.Void)
	entry := NewBlock("entry")
	other := NewBlock("other")
	fn.AddBlock(entry)
	fn.AddBlock(other)
	entry.PushBack(NewRet(nil))
	other.PushBack(NewRet(nil))
	other.AddSuccessor(entry) // malformed: entry now has a predecessor
	m.AddFunction(fn)

	errs := m.Verify()
	assert.NotEmpty(t, errs)
}
