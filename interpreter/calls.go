package interpreter

import "github.com/evm-assure/evmcore/core"

// opCall implements CALL, CALLCODE, DELEGATECALL and STATICCALL, per spec
// §4.5's sub-call orchestration: gas forwarding, optional value transfer,
// a nested snapshot, a recursive Interpreter.Run, and writing the result
// into the return-data region and the stack.
func opCall(f *frame, op OpCode) error {
	hasValue := op == CALL || op == CALLCODE

	gasV, err := f.stack.pop()
	if err != nil {
		return err
	}
	toV, err := f.stack.pop()
	if err != nil {
		return err
	}
	value := core.Zero
	if hasValue {
		value, err = f.stack.pop()
		if err != nil {
			return err
		}
	}
	argsOffsetV, err := f.stack.pop()
	if err != nil {
		return err
	}
	argsSizeV, err := f.stack.pop()
	if err != nil {
		return err
	}
	retOffsetV, err := f.stack.pop()
	if err != nil {
		return err
	}
	retSizeV, err := f.stack.pop()
	if err != nil {
		return err
	}

	argsOffset, argsSize, err := requireUint64Pair(argsOffsetV, argsSizeV)
	if err != nil {
		return err
	}
	retOffset, retSize, err := requireUint64Pair(retOffsetV, retSizeV)
	if err != nil {
		return err
	}

	target := core.AddressFromU256(toV)
	args := f.memory.loadRange(argsOffset, argsSize)

	if f.ctx.Depth+1 > core.MaxCallDepth {
		f.lastCallReturnData = nil
		return f.stack.push(core.Zero)
	}

	requested := gasOperand(gasV, f.gas)
	forwarded := callForwardedGas(requested, f.gas, f.rev)
	if err := f.chargeGas(forwarded); err != nil {
		return err
	}
	childGas := forwarded
	if hasValue && !value.IsZero() {
		childGas += GasCallStipend
	}

	childStatic := f.ctx.IsStatic || op == STATICCALL
	code := f.world.GetCode(target)
	newCtx := core.CallContext{
		Caller:   f.ctx.Callee,
		Callee:   target,
		Value:    value,
		CallData: args,
		Origin:   f.ctx.Origin,
		GasPrice: f.ctx.GasPrice,
		IsStatic: childStatic,
		Depth:    f.ctx.Depth + 1,
	}
	switch op {
	case CALLCODE:
		newCtx.Callee = f.ctx.Callee
	case DELEGATECALL:
		newCtx.Caller = f.ctx.Caller
		newCtx.Callee = f.ctx.Callee
		newCtx.Value = f.ctx.Value
	}

	result := runSubCall(f, newCtx, code, childGas, hasValue && !value.IsZero(), value, newCtx.Callee)

	f.gas += result.GasRemaining
	f.lastCallReturnData = result.ReturnData

	if retSize > 0 {
		n := uint64(len(result.ReturnData))
		if n > retSize {
			n = retSize
		}
		f.memory.set(retOffset, result.ReturnData[:n])
	}

	if result.Success {
		return f.stack.push(core.One)
	}
	return f.stack.push(core.Zero)
}

// runSubCall transfers value (if any) and runs the callee's code, wrapping
// both in one snapshot so a failed sub-call undoes the transfer along with
// everything the callee's code did. It never returns an error: every
// failure mode (insufficient balance, reverted/failed execution) is
// reported through ExecutionResult.Success, exactly like the rest of the
// CALL family's push-0-on-failure contract.
func runSubCall(f *frame, ctx core.CallContext, code core.Code, gas core.Gas, transfer bool, value core.U256, to core.Address) core.ExecutionResult {
	if transfer {
		if f.world.GetBalance(f.ctx.Callee).Cmp(value) < 0 {
			return core.ExecutionResult{Success: false, GasRemaining: gas}
		}
		snap := f.world.Snapshot()
		_ = f.world.SubBalance(f.ctx.Callee, value)
		f.world.AddBalance(to, value)
		result := f.vm.Run(Params{World: f.world, Env: f.env, Revision: f.rev, Context: ctx, Code: code, Gas: gas}, f.tx)
		if !result.Success {
			f.world.RevertToSnapshot(snap)
		}
		return result
	}
	return f.vm.Run(Params{World: f.world, Env: f.env, Revision: f.rev, Context: ctx, Code: code, Gas: gas}, f.tx)
}

// gasOperand converts CALL's "gas" operand to a core.Gas request, treating
// a value too large to fit a uint64 as "forward everything available" —
// callForwardedGas's cap makes the exact magnitude irrelevant past that
// point anyway.
func gasOperand(v core.U256, remaining core.Gas) core.Gas {
	if !v.FitsUint64() {
		return remaining
	}
	return core.Gas(v.Uint64())
}

// opSelfdestruct implements SELFDESTRUCT: transfer the account's entire
// balance to the beneficiary and schedule the account for removal at the
// end of the transaction (spec §4.4/§4.7). The static check and gas charge
// already happened in chargeDynamicGas.
func opSelfdestruct(f *frame) error {
	beneficiaryV, err := f.stack.pop()
	if err != nil {
		return err
	}
	beneficiary := core.AddressFromU256(beneficiaryV)
	if f.world.SelfDestruct(f.ctx.Callee, beneficiary) {
		f.tx.addRefund(GasSelfdestructRefund)
	}
	return nil
}
