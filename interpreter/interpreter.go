// Package interpreter implements the byte-exact EVM execution engine
// described in spec §4.3-§4.6: the execution frame, the gas schedule, the
// per-fork dispatch table, and the instruction semantics themselves,
// including sub-call orchestration and contract creation.
package interpreter

import "github.com/evm-assure/evmcore/core"

// Interpreter is the single dispatch engine parameterized per call by a
// fork revision, per the re-architecture recommended in spec §9: one
// interpreter, not one per fork.
type Interpreter struct {
	jumpdests *jumpdestCache
}

// New creates an Interpreter with a fresh jumpdest analysis cache.
func New() *Interpreter {
	return &Interpreter{jumpdests: newJumpdestCache()}
}

// Params bundles everything needed to execute one frame, mirroring the
// teacher's vm.Parameters shape, generalized to a single fork-agnostic
// interpreter instead of one struct per VM backend.
type Params struct {
	World    core.WorldState
	Env      *core.Environment
	Revision core.Revision
	Context  core.CallContext
	Code     []byte
	Gas      core.Gas
}

// RunStandalone executes one frame as if it were a top-level call, with a
// fresh transaction-scoped state (refund counter, log sequence). It is the
// black-box entry point the security tools (bytecode generator,
// differential executor, EIP test-case generator) consume, per spec §2's
// data-flow description: "(fork, code, env) -> trace".
func (vm *Interpreter) RunStandalone(p Params) core.ExecutionResult {
	tx := newTxState()
	result := vm.Run(p, tx)
	result.Refund = tx.refund
	return result
}

// Run executes one frame within an ongoing transaction's txState, so that
// refunds and logs accumulate correctly across sub-calls.
func (vm *Interpreter) Run(p Params, tx *txState) core.ExecutionResult {
	snapshot := p.World.Snapshot()
	txSnap := tx.snapshot()

	f := &frame{
		stack:     newStack(),
		memory:    newMemory(),
		code:      p.Code,
		codeHash:  core.Keccak256(p.Code),
		ctx:       p.Context,
		rev:       p.Revision,
		rules:     rulesFor(p.Revision),
		table:     tableFor(p.Revision),
		jumpdests: vm.jumpdests.get(p.Code),
		world:     p.World,
		env:       p.Env,
		tx:        tx,
		vm:        vm,
		gas:       p.Gas,
	}

	status, err := runLoop(f)

	switch status {
	case core.Stopped, core.Returned:
		p.World.Commit(snapshot)
		return core.ExecutionResult{
			Success:      true,
			GasUsed:      p.Gas - f.gas,
			GasRemaining: f.gas,
			ReturnData:   f.returnData,
			Logs:         tx.logs[txSnap.logLen:],
		}
	case core.Reverted:
		p.World.RevertToSnapshot(snapshot)
		tx.revertTo(txSnap)
		return core.ExecutionResult{
			Success:      false,
			GasUsed:      p.Gas - f.gas,
			GasRemaining: f.gas,
			ReturnData:   f.returnData,
		}
	default: // exceptional halt: all remaining gas consumed, state rolled back
		p.World.RevertToSnapshot(snapshot)
		tx.revertTo(txSnap)
		return core.ExecutionResult{
			Success:      false,
			GasUsed:      p.Gas,
			GasRemaining: 0,
			Fault:        faultFor(err),
		}
	}
}

// runLoop is the per-step dispatch described in spec §4.5. It returns the
// terminal status and, for exceptional halts, the triggering error.
func runLoop(f *frame) (core.StatusCode, error) {
	for {
		if f.pc >= len(f.code) {
			return core.Stopped, nil
		}

		op := OpCode(f.code[f.pc])
		info := f.table.lookup(op)
		if !info.defined {
			return core.Failed, errInvalidOpcode
		}

		if err := f.chargeGas(info.static); err != nil {
			return core.Failed, err
		}

		if f.stack.len() < info.pops {
			return core.Failed, errStackUnderflow
		}
		if f.stack.len()-info.pops+info.pushes > core.MaxStackDepth {
			return core.Failed, errStackOverflow
		}

		if err := chargeDynamicGas(f, op); err != nil {
			return core.Failed, err
		}

		advance, status, err := execute(f, op)
		if err != nil {
			return core.Failed, err
		}
		if status != core.Running {
			return status, nil
		}
		if advance {
			f.pc++
		}
	}
}
