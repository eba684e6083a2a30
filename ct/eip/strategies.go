package eip

import "github.com/evm-assure/evmcore/interpreter"

// Strategy names one of the six test-case generation strategies from
// spec §4.10.
type Strategy string

const (
	Boundary          Strategy = "BOUNDARY"
	OpcodeInteraction  Strategy = "OPCODE_INTERACTION"
	CallContext        Strategy = "CALL_CONTEXT"
	GasExhaustion      Strategy = "GAS_EXHAUSTION"
	ForkBoundary       Strategy = "FORK_BOUNDARY"
	StackDepth         Strategy = "STACK_DEPTH"
)

// AllStrategies lists every strategy, in the order spec §4.10 presents
// them.
func AllStrategies() []Strategy {
	return []Strategy{Boundary, OpcodeInteraction, CallContext, GasExhaustion, ForkBoundary, StackDepth}
}

// boundaryValues is the fixed substitution set spec §4.10 names for the
// BOUNDARY strategy: {0, 1, 2, 255, 256, 2³²−1, 2⁶⁴−1, 2²⁵⁵−1, 2²⁵⁵, 2²⁵⁶−1}.
var boundaryValues = []([32]byte){
	be(0),
	be(1),
	be(2),
	be(255),
	be(256),
	beMax(4, false),   // 2^32 - 1
	beMax(8, false),   // 2^64 - 1
	beBit(255, true),  // 2^255 - 1
	beBit(255, false), // 2^255
	beMax(32, false),  // 2^256 - 1
}

func be(v uint64) [32]byte {
	var out [32]byte
	for i := 0; i < 8; i++ {
		out[31-i] = byte(v >> (8 * i))
	}
	return out
}

// beMax returns 2^(8*width) - 1 as a 32-byte big-endian value: width
// bytes of 0xFF at the low end.
func beMax(width int, _ bool) [32]byte {
	var out [32]byte
	for i := 0; i < width; i++ {
		out[31-i] = 0xFF
	}
	return out
}

// beBit returns 2^bit, or 2^bit-1 if minusOne, as a 32-byte big-endian
// value.
func beBit(bit int, minusOne bool) [32]byte {
	var out [32]byte
	byteIndex := 31 - bit/8
	out[byteIndex] = 1 << (bit % 8)
	if minusOne {
		// subtract 1 by borrowing from the single set bit: every lower
		// byte becomes 0xFF, and the set bit's byte drops to the bit
		// immediately below it (or 0 if bit%8==0, carried into the next
		// byte down, which doesn't apply here since bit is always the
		// top bit of its byte for the values this table uses).
		out[byteIndex]--
		for i := byteIndex + 1; i < 32; i++ {
			out[i] = 0xFF
		}
	}
	return out
}

// pushWord emits PUSH32 imm, the simplest way to place an arbitrary
// 256-bit boundary value on the stack regardless of its magnitude.
func pushWord(imm [32]byte) []byte {
	return append([]byte{byte(interpreter.PUSH32)}, imm[:]...)
}

func storeAndReturn(body []byte) []byte {
	code := append([]byte{}, body...)
	code = append(code, byte(interpreter.PUSH1), 0x00) // offset
	code = append(code, byte(interpreter.SWAP1))        // MSTORE pops (value, offset); bring value back on top
	code = append(code, byte(interpreter.MSTORE))
	code = append(code, byte(interpreter.PUSH1), 0x20)
	code = append(code, byte(interpreter.PUSH1), 0x00)
	code = append(code, byte(interpreter.RETURN))
	return code
}

// genBoundary implements the BOUNDARY strategy: for an EIP's added
// opcode, substitute each boundary value as its (sole, or first) operand
// and invoke it.
func genBoundary(e Entry) []TestCase {
	var cases []TestCase
	for _, op := range e.OpcodesAdded {
		arity := opcodeArityFor(op)
		for i, v := range boundaryValues {
			var body []byte
			for j := 0; j < arity; j++ {
				if j == 0 {
					body = append(body, pushWord(v)...)
				} else {
					body = append(body, pushWord(be(1))...)
				}
			}
			body = append(body, op)
			cases = append(cases, TestCase{
				Name:        name(e, Boundary, i),
				Strategy:    Boundary,
				Bytecode:    storeAndReturn(body),
				GasLimit:    100000,
				Description: "substitutes a boundary operand into the opcode added by this EIP",
			})
		}
	}
	return cases
}

// genOpcodeInteraction implements OPCODE_INTERACTION: op followed by one
// of DUP1/SWAP1/MSTORE/JUMPI consuming its result.
func genOpcodeInteraction(e Entry) []TestCase {
	followUps := []struct {
		name string
		code []byte
	}{
		{"dup", []byte{byte(interpreter.DUP1), byte(interpreter.POP)}},
		{"swap", []byte{byte(interpreter.PUSH1), 0x00, byte(interpreter.SWAP1), byte(interpreter.POP)}},
		{"mstore", []byte{byte(interpreter.PUSH1), 0x00, byte(interpreter.MSTORE)}},
		{"jumpi", []byte{byte(interpreter.ISZERO), byte(interpreter.PUSH1), 0x00, byte(interpreter.JUMPI)}},
	}

	var cases []TestCase
	for _, op := range e.OpcodesAdded {
		arity := opcodeArityFor(op)
		var prefix []byte
		for j := 0; j < arity; j++ {
			prefix = append(prefix, pushWord(be(uint64(j+1)))...)
		}
		for _, fu := range followUps {
			body := append(append([]byte{}, prefix...), op)
			body = append(body, fu.code...)
			body = append(body, byte(interpreter.STOP))
			cases = append(cases, TestCase{
				Name:        name(e, OpcodeInteraction, 0) + "_" + fu.name,
				Strategy:    OpcodeInteraction,
				Bytecode:    body,
				GasLimit:    100000,
				Description: "invokes the added opcode then consumes its result with " + fu.name,
			})
		}
	}
	return cases
}

// opcodeArityFor returns an approximate stack arity for an opcode added
// by an EIP in this catalog. It is intentionally tiny: this module's
// catalog only ever adds opcodes with 0-2 operands (PUSH0: 0, SHL/SHR/SAR: 2).
func opcodeArityFor(op byte) int {
	switch op {
	case 0x5F: // PUSH0
		return 0
	case 0x1B, 0x1C, 0x1D: // SHL, SHR, SAR
		return 2
	default:
		return 1
	}
}

func name(e Entry, s Strategy, i int) string {
	return string(s) + "_eip" + itoa(e.Number) + "_" + itoa(i)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
