package interpreter

import "github.com/evm-assure/evmcore/core"

// frame is the per-call execution state described in spec §3. It is
// created fresh for every top-level call and every CALL/CALLCODE/
// DELEGATECALL/STATICCALL/CREATE/CREATE2 sub-call.
type frame struct {
	stack      *stack
	memory     *memory
	pc         int
	gas        core.Gas
	code       []byte
	codeHash   core.Hash
	returnData []byte
	// lastCallReturnData is the output of the most recent sub-call made by
	// this frame, the buffer RETURNDATASIZE/RETURNDATACOPY read from. It is
	// distinct from returnData, which is what this frame itself returns to
	// its own caller.
	lastCallReturnData []byte
	ctx                 core.CallContext

	rev       core.Revision
	rules     ruleFlags
	table     *opTable
	jumpdests *jumpdestSet

	world core.WorldState
	env   *core.Environment
	tx    *txState
	vm    *Interpreter
}

func (f *frame) gasLeft() core.Gas { return f.gas }

// chargeGas debits amount from the frame's remaining gas, failing with
// errOutOfGas if that would make gas negative.
func (f *frame) chargeGas(amount core.Gas) error {
	if f.gas < amount {
		f.gas = 0
		return errOutOfGas
	}
	f.gas -= amount
	return nil
}

// chargeMemoryExpansion grows memory to cover [offset, offset+length) after
// charging the incremental quadratic cost, per spec §4.3.
func (f *frame) chargeMemoryExpansion(offset, length uint64) error {
	if length == 0 {
		return nil
	}
	newSize := f.memory.sizeAfter(offset, length)
	if delta := memoryExpansionDelta(f.memory.size(), newSize); delta > 0 {
		if err := f.chargeGas(delta); err != nil {
			return err
		}
	}
	f.memory.grow(newSize)
	return nil
}
