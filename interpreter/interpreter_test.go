package interpreter

import (
	"testing"

	"github.com/evm-assure/evmcore/core"
	"github.com/evm-assure/evmcore/state"
)

func runCode(t *testing.T, code []byte, gas core.Gas, rev core.Revision) core.ExecutionResult {
	t.Helper()
	world := state.New()
	addr := core.Address{0x01}
	world.SetCode(addr, core.Code(code))

	return New().RunStandalone(Params{
		World:    world,
		Env:      &core.Environment{BlockHashes: map[uint64]core.Hash{}},
		Revision: rev,
		Context:  core.CallContext{Callee: addr},
		Code:     code,
		Gas:      gas,
	})
}

// PUSH1 3 PUSH1 4 ADD PUSH1 0 SWAP1 MSTORE PUSH1 32 PUSH1 0 RETURN -> returns 7.
func TestRunStandalone_AddAndReturn(t *testing.T) {
	code := []byte{
		byte(PUSH1), 3,
		byte(PUSH1), 4,
		byte(ADD),
		byte(PUSH1), 0,
		byte(SWAP1), // MSTORE pops (value, offset); bring the sum back on top
		byte(MSTORE),
		byte(PUSH1), 32,
		byte(PUSH1), 0,
		byte(RETURN),
	}
	result := runCode(t, code, 100000, core.Shanghai)

	if !result.Success {
		t.Fatalf("execution failed with fault %v", result.Fault)
	}
	got := core.U256FromBytes(result.ReturnData)
	if !got.Eq(core.NewU256(7)) {
		t.Errorf("returned %s, want 7", got)
	}
}

func TestRunStandalone_OutOfGasFailsAndConsumesAllGas(t *testing.T) {
	code := []byte{byte(PUSH1), 1, byte(PUSH1), 1, byte(ADD)}
	result := runCode(t, code, 1, core.Shanghai)

	if result.Success {
		t.Fatal("expected out-of-gas failure")
	}
	if result.GasRemaining != 0 {
		t.Errorf("GasRemaining = %d, want 0 on exceptional halt", result.GasRemaining)
	}
}

func TestRunStandalone_RevertPreservesReturnDataButRollsBackState(t *testing.T) {
	code := []byte{
		byte(PUSH1), 0x2A,
		byte(PUSH1), 0,
		byte(SWAP1),
		byte(MSTORE),
		byte(PUSH1), 32,
		byte(PUSH1), 0,
		byte(REVERT),
	}
	result := runCode(t, code, 100000, core.Shanghai)

	if result.Success {
		t.Fatal("REVERT should not report success")
	}
	got := core.U256FromBytes(result.ReturnData)
	if !got.Eq(core.NewU256(0x2A)) {
		t.Errorf("REVERT should still carry its return data, got %s", got)
	}
}

func TestRunStandalone_InvalidOpcodeFaults(t *testing.T) {
	code := []byte{0x0C} // undefined on every fork this module models
	result := runCode(t, code, 100000, core.Shanghai)

	if result.Success {
		t.Fatal("expected a fault on an undefined opcode")
	}
}

func TestRunStandalone_Push0OnlyDefinedFromShanghai(t *testing.T) {
	code := []byte{byte(PUSH0), byte(PUSH1), 0, byte(SWAP1), byte(MSTORE), byte(PUSH1), 32, byte(PUSH1), 0, byte(RETURN)}

	shanghai := runCode(t, code, 100000, core.Shanghai)
	if !shanghai.Success {
		t.Errorf("PUSH0 should succeed on Shanghai, got fault %v", shanghai.Fault)
	}

	homestead := runCode(t, code, 100000, core.Homestead)
	if homestead.Success {
		t.Error("PUSH0 should fault before Shanghai")
	}
}

// STATICCALL into a callee that attempts SSTORE: the inner frame faults
// with StaticModification (all its forwarded gas consumed, per the
// exceptional-halt rule), and the outer CALL-family contract around it
// pushes 0 rather than propagating the fault.
func TestRunStandalone_StaticCallIntoSstoreFailsAndConsumesForwardedGas(t *testing.T) {
	calleeAddr := core.Address{0x02}
	calleeCode := core.Code{byte(PUSH1), 1, byte(PUSH1), 0, byte(SSTORE), byte(STOP)}

	toOperand := make([]byte, 20)
	copy(toOperand, calleeAddr[:])

	const forwardedGas = 5000
	callerCode := []byte{
		byte(PUSH1), 0, // retSize
		byte(PUSH1), 0, // retOffset
		byte(PUSH1), 0, // argsSize
		byte(PUSH1), 0, // argsOffset
	}
	callerCode = append(callerCode, byte(PUSH20))
	callerCode = append(callerCode, toOperand...)
	callerCode = append(callerCode,
		byte(PUSH2), forwardedGas>>8, forwardedGas&0xFF,
		byte(STATICCALL),
		byte(PUSH1), 0,
		byte(SWAP1),
		byte(MSTORE),
		byte(PUSH1), 32,
		byte(PUSH1), 0,
		byte(RETURN),
	)

	callerAddr := core.Address{0x01}
	world := state.New()
	world.SetCode(callerAddr, core.Code(callerCode))
	world.SetCode(calleeAddr, calleeCode)

	const gasLimit core.Gas = 100000
	result := New().RunStandalone(Params{
		World:    world,
		Env:      &core.Environment{BlockHashes: map[uint64]core.Hash{}},
		Revision: core.Shanghai,
		Context:  core.CallContext{Callee: callerAddr},
		Code:     callerCode,
		Gas:      gasLimit,
	})

	if !result.Success {
		t.Fatalf("the outer call itself should still succeed, got fault %v", result.Fault)
	}
	pushed := core.U256FromBytes(result.ReturnData)
	if !pushed.IsZero() {
		t.Errorf("STATICCALL result = %s, want 0 (the inner SSTORE should have faulted)", pushed)
	}
	if result.GasUsed < forwardedGas {
		t.Errorf("GasUsed = %d, want at least the %d gas forwarded to the failed sub-call to be fully consumed", result.GasUsed, forwardedGas)
	}
}

func TestRunStandalone_SstoreRefundOnClear(t *testing.T) {
	setup := []byte{
		byte(PUSH1), 1,
		byte(PUSH1), 0,
		byte(SSTORE),
		byte(STOP),
	}
	setupResult := runCode(t, setup, 100000, core.Shanghai)
	if !setupResult.Success {
		t.Fatalf("setup failed: %v", setupResult.Fault)
	}

	world := state.New()
	addr := core.Address{0x01}
	world.SetStorage(addr, core.Zero, core.One)
	world.SetCode(addr, core.Code{byte(PUSH1), 0, byte(PUSH1), 0, byte(SSTORE), byte(STOP)})

	result := New().RunStandalone(Params{
		World:    world,
		Env:      &core.Environment{BlockHashes: map[uint64]core.Hash{}},
		Revision: core.Shanghai,
		Context:  core.CallContext{Callee: addr},
		Code:     world.GetCode(addr),
		Gas:      100000,
	})
	if !result.Success {
		t.Fatalf("clearing SSTORE failed: %v", result.Fault)
	}
	if result.Refund != GasSstoreClearRefund {
		t.Errorf("refund = %d, want %d for clearing a non-zero slot to zero", result.Refund, GasSstoreClearRefund)
	}
}
