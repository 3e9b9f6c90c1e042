package optimizer

import (
	"github.com/hassan/anvil/internal/ir"
	"github.com/hassan/anvil/internal/semantic/types"
)

// newTestFunc creates a function with no blocks yet. Tests call
// fn.AddBlock to build out the CFG, mirroring how a real front end
// would incrementally lower statements into IR.
func newTestFunc(name string) *ir.Function {
	return ir.NewFunction(name, nil, types.Int)
}

func constInt(n int64) *ir.Value {
	return &ir.Value{Kind: ir.ValueConstant, Type: types.Int, Constant: n}
}

func ptrParam(fn *ir.Function, name string) *ir.Value {
	return fn.NewValue(name, types.NewPointer(types.Int), ir.ValueParameter)
}
