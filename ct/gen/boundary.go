package gen

import "github.com/evm-assure/evmcore/interpreter"

// boundaryPrograms is the fixed catalog spec §4.8 calls for: programs that
// push or compute the boundary values most likely to expose off-by-one
// errors in arithmetic, comparison, and shift opcodes. Every entry leaves
// exactly the boundary value on the stack, then returns it via memory so a
// differential run can compare it directly against an oracle.
var boundaryPrograms [][]byte

func init() {
	// Built programmatically rather than as byte literals: each boundary
	// value is PUSHed with the narrowest opcode that fits it, then copied
	// to memory offset 0 and returned, so the program's only observable
	// effect is "what is this 256-bit value".
	values := []struct {
		width int
		bytes []byte
	}{
		{1, []byte{0x00}},                       // 0
		{1, []byte{0x01}},                       // 1
		{1, []byte{0xFF}},                       // 2^8 - 1
		{2, []byte{0x01, 0x00}},                 // 2^8
		{8, repeat(0xFF, 8)},                    // 2^64 - 1
		{9, append([]byte{0x01}, repeat(0x00, 8)...)}, // 2^64
		{32, leadingOne(255)},                   // 2^255
		{32, repeat(0xFF, 32)},                  // 2^256 - 1
	}

	boundaryPrograms = make([][]byte, len(values))
	for i, v := range values {
		boundaryPrograms[i] = pushAndReturn(push(v.width, v.bytes...))
	}
}

// push builds a PUSHn instruction (n == width) with imm as its immediate,
// zero-padded on the left up to width if imm is shorter.
func push(width int, imm ...byte) []byte {
	if len(imm) < width {
		imm = append(repeat(0x00, width-len(imm)), imm...)
	}
	op := byte(interpreter.PUSH1) + byte(width-1)
	return append([]byte{op}, imm...)
}

// pushAndReturn wraps a push sequence with MSTORE-to-offset-0 followed by
// RETURN of the full 32-byte word, so the pushed value becomes the
// program's return data.
func pushAndReturn(pushed []byte) []byte {
	code := append([]byte{}, pushed...)
	code = append(code, byte(interpreter.PUSH1), 0x00) // offset
	code = append(code, byte(interpreter.SWAP1))        // MSTORE pops (value, offset); bring value back on top
	code = append(code, byte(interpreter.MSTORE))
	code = append(code, byte(interpreter.PUSH1), 0x20) // size
	code = append(code, byte(interpreter.PUSH1), 0x00) // offset
	code = append(code, byte(interpreter.RETURN))
	return code
}

func repeat(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

// leadingOne returns a 32-byte big-endian encoding of 2^bit.
func leadingOne(bit int) []byte {
	out := make([]byte, 32)
	byteIndex := 31 - bit/8
	out[byteIndex] = 1 << (bit % 8)
	return out
}

// boundaryProgram returns the idx'th catalog entry.
func (g *Generator) boundaryProgram(idx int) []byte {
	return boundaryPrograms[idx]
}
