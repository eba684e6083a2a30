package eip

import "github.com/evm-assure/evmcore/interpreter"

// callKind identifies which of CALL/DELEGATECALL/STATICCALL wraps the
// probed opcode for the CALL_CONTEXT strategy.
type callKind int

const (
	direct callKind = iota
	viaCall
	viaDelegateCall
	viaStaticCall
)

func (k callKind) String() string {
	switch k {
	case viaCall:
		return "call"
	case viaDelegateCall:
		return "delegatecall"
	case viaStaticCall:
		return "staticcall"
	default:
		return "direct"
	}
}

// genCallContext implements CALL_CONTEXT: the probed opcode is exercised
// directly, then again through CALL, DELEGATECALL, and STATICCALL, each
// as a self-call so the wrapping contract and the wrapped contract are
// the same deployed code — the only way to test "wrapped in a sub-call"
// without a second pre-seeded account, which the native fixture format
// has no field for.
//
// The wrapper distinguishes a top-level invocation from a re-entrant one
// purely by CALLDATASIZE: called with no calldata, it performs the wrap;
// called with one byte of calldata (which only the wrapper's own
// self-call ever supplies), it executes the probed opcode directly and
// returns its result. That result is what the top-level caller reads back
// via RETURNDATACOPY.
func genCallContext(e Entry) []TestCase {
	var cases []TestCase
	for _, op := range e.OpcodesAdded {
		inner := innerProbe(op)
		for _, kind := range []callKind{direct, viaCall, viaDelegateCall, viaStaticCall} {
			var body []byte
			expectSuccess := true
			if kind == direct {
				body = storeAndReturn(inner)
			} else {
				body = wrapInCall(inner, kind)
				// Per spec §4.10, STATICCALL is expected to succeed iff the
				// wrapped opcode is non-state-modifying; every opcode this
				// catalog adds (PUSH0, SHL, SHR, SAR) is read-only, so this
				// module's entries are always expected to succeed even under
				// STATICCALL.
			}
			cases = append(cases, TestCase{
				Name:            name(e, CallContext, int(kind)) + "_" + kind.String(),
				Strategy:        CallContext,
				Bytecode:        body,
				GasLimit:        200000,
				ExpectedSuccess: &expectSuccess,
				Description:     "exercises the added opcode " + kind.String(),
			})
		}
	}
	return cases
}

// innerProbe is the bare "push operands, invoke op" sequence shared by the
// direct-execution case and the re-entrant branch of every wrapped case.
func innerProbe(op byte) []byte {
	arity := opcodeArityFor(op)
	var body []byte
	for j := 0; j < arity; j++ {
		body = append(body, pushWord(be(uint64(j+1)))...)
	}
	return append(body, op)
}

// wrapInCall assembles the CALLDATASIZE-dispatched self-call wrapper
// described in genCallContext's doc comment.
func wrapInCall(inner []byte, kind callKind) []byte {
	innerTail := storeAndReturn(inner)

	// Header: CALLDATASIZE ISZERO PUSH2 <outerOffset> JUMPI, 6 bytes.
	const headerLen = 6
	outerOffset := headerLen + len(innerTail)

	header := []byte{
		byte(interpreter.CALLDATASIZE),
		byte(interpreter.ISZERO),
		byte(interpreter.PUSH2), byte(outerOffset >> 8), byte(outerOffset),
		byte(interpreter.JUMPI),
	}

	outer := []byte{byte(interpreter.JUMPDEST)}
	outer = append(outer,
		byte(interpreter.PUSH1), 0x00, // offset
		byte(interpreter.PUSH1), 0x01, // value; MSTORE8 pops (value, offset), so value goes on top last
		byte(interpreter.MSTORE8), // mem[0] = 1, so the re-entrant call carries calldatasize 1
	)
	outer = append(outer, byte(interpreter.PUSH1), 0x20) // retSize
	outer = append(outer, byte(interpreter.PUSH1), 0x00) // retOffset
	outer = append(outer, byte(interpreter.PUSH1), 0x01) // argsSize
	outer = append(outer, byte(interpreter.PUSH1), 0x00) // argsOffset
	if kind == viaCall {
		outer = append(outer, byte(interpreter.PUSH1), 0x00) // value
	}
	outer = append(outer, byte(interpreter.ADDRESS)) // to = self
	outer = append(outer, byte(interpreter.GAS))     // gas = forward all available

	switch kind {
	case viaCall:
		outer = append(outer, byte(interpreter.CALL))
	case viaDelegateCall:
		outer = append(outer, byte(interpreter.DELEGATECALL))
	case viaStaticCall:
		outer = append(outer, byte(interpreter.STATICCALL))
	}

	outer = append(outer, byte(interpreter.POP)) // drop the success flag
	outer = append(outer,
		byte(interpreter.PUSH1), 0x20, // size
		byte(interpreter.PUSH1), 0x00, // offset into returndata
		byte(interpreter.PUSH1), 0x00, // dest offset in memory
		byte(interpreter.RETURNDATACOPY),
		byte(interpreter.PUSH1), 0x20,
		byte(interpreter.PUSH1), 0x00,
		byte(interpreter.RETURN),
	)

	code := append(append([]byte{}, header...), innerTail...)
	return append(code, outer...)
}
