package gen

import "github.com/evm-assure/evmcore/interpreter"

// opcodeArity is a generator-local, approximate stack-arity table — it
// only needs to know how many operands to stage before invoking an opcode,
// not its gas cost or fork availability, so it does not reach into the
// interpreter's private dispatch tables. Opcodes absent from this map are
// treated as zero-operand.
var opcodeArity = map[interpreter.OpCode]int{
	interpreter.ADD: 2, interpreter.MUL: 2, interpreter.SUB: 2, interpreter.DIV: 2,
	interpreter.SDIV: 2, interpreter.MOD: 2, interpreter.SMOD: 2, interpreter.EXP: 2,
	interpreter.LT: 2, interpreter.GT: 2, interpreter.SLT: 2, interpreter.SGT: 2,
	interpreter.EQ: 2, interpreter.AND: 2, interpreter.OR: 2, interpreter.XOR: 2,
	interpreter.BYTE: 2, interpreter.SHL: 2, interpreter.SHR: 2, interpreter.SAR: 2,
	interpreter.ISZERO: 1, interpreter.NOT: 1,
	interpreter.MLOAD: 1, interpreter.SLOAD: 1,
	interpreter.MSTORE: 2, interpreter.MSTORE8: 2, interpreter.SSTORE: 2,
	interpreter.SHA3: 2,
	interpreter.ADDMOD: 3, interpreter.MULMOD: 3,
	interpreter.JUMP: 1, interpreter.JUMPI: 2,
	interpreter.CALLDATALOAD: 1,
	interpreter.CALLDATACOPY: 3, interpreter.CODECOPY: 3, interpreter.RETURNDATACOPY: 3,
	interpreter.EXTCODECOPY: 4,
	interpreter.BALANCE: 1, interpreter.EXTCODESIZE: 1, interpreter.EXTCODEHASH: 1,
	interpreter.BLOCKHASH: 1,
	interpreter.RETURN: 2, interpreter.REVERT: 2,
	interpreter.LOG0: 2, interpreter.LOG1: 3, interpreter.LOG2: 4, interpreter.LOG3: 5, interpreter.LOG4: 6,
	interpreter.CREATE: 3, interpreter.CREATE2: 4,
	interpreter.CALL: 7, interpreter.CALLCODE: 7, interpreter.DELEGATECALL: 6, interpreter.STATICCALL: 6,
	interpreter.SELFDESTRUCT: 1,
}

// opcodeFocused implements spec §4.8's "opcode_focused" strategy: a program
// that pushes exactly the operands op needs, each a pseudo-random 32-byte
// value, invokes op, then stores whatever op left on the stack to memory
// and returns it. Opcodes that consume their entire stack effect without
// leaving a result (e.g. MSTORE, LOG0) still get the stock
// "store-and-return" tail; its SWAP1 then finds only one stack item and the
// program halts with a stack underflow, and JUMP/JUMPI jump to a random
// target, which almost always faults. The point of this strategy is to
// exercise op's stack and gas accounting, not to assert a result.
func (g *Generator) opcodeFocused(op interpreter.OpCode) []byte {
	arity := opcodeArity[op]

	var code []byte
	for i := 0; i < arity; i++ {
		imm := make([]byte, 32)
		g.rnd.Read(imm)
		code = append(code, byte(interpreter.PUSH32))
		code = append(code, imm...)
	}
	code = append(code, byte(op))

	code = append(code, byte(interpreter.PUSH1), 0x00) // offset
	code = append(code, byte(interpreter.SWAP1))        // MSTORE pops (value, offset); bring value back on top
	code = append(code, byte(interpreter.MSTORE))
	code = append(code, byte(interpreter.PUSH1), 0x20) // size
	code = append(code, byte(interpreter.PUSH1), 0x00) // offset
	code = append(code, byte(interpreter.RETURN))
	return code
}
