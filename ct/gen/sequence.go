package gen

import "github.com/evm-assure/evmcore/interpreter"

// canonicalSequences is the pre-canned catalog spec §4.8 calls for: short
// programs stressing arithmetic identities and opcode interactions that
// random generation rarely stumbles into on its own (e.g. operand order
// for non-commutative ops, division by the divisor itself, shift amounts
// that exactly clear a word). Each entry is a template with a fixed
// literal already filled in; the wildcard bytes are redrawn per call by
// sequence() so the same template still yields fresh concrete values.
var canonicalSequences = []func(g *Generator) []byte{
	// (a + b) * c
	func(g *Generator) []byte {
		a, b, c := g.rnd.Intn(256), g.rnd.Intn(256), g.rnd.Intn(256)
		return pushAndReturn(concat(
			push(1, byte(a)), push(1, byte(b)), []byte{byte(interpreter.ADD)},
			push(1, byte(c)), []byte{byte(interpreter.MUL)},
		))
	},
	// a - a == 0
	func(g *Generator) []byte {
		a := g.rnd.Intn(256)
		return pushAndReturn(concat(
			push(1, byte(a)), push(1, byte(a)), []byte{byte(interpreter.SWAP1), byte(interpreter.SUB)},
		))
	},
	// a / a == 1, for a != 0
	func(g *Generator) []byte {
		a := 1 + g.rnd.Intn(255)
		return pushAndReturn(concat(
			push(1, byte(a)), push(1, byte(a)), []byte{byte(interpreter.SWAP1), byte(interpreter.DIV)},
		))
	},
	// a << n >> n == a while n <= 248 (larger n shifts a's bits out)
	func(g *Generator) []byte {
		a := g.rnd.Intn(256)
		n := g.rnd.Intn(256)
		return pushAndReturn(concat(
			push(1, byte(a)), push(1, byte(n)), []byte{byte(interpreter.SHL)},
			push(1, byte(n)), []byte{byte(interpreter.SHR)},
		))
	},
	// NOT(NOT(a)) == a
	func(g *Generator) []byte {
		a := g.rnd.Intn(256)
		return pushAndReturn(concat(
			push(1, byte(a)), []byte{byte(interpreter.NOT), byte(interpreter.NOT)},
		))
	},
	// a == a via EQ, exercises the comparison-then-branch idiom used by
	// compiled Solidity dispatch tables.
	func(g *Generator) []byte {
		a := g.rnd.Intn(256)
		return pushAndReturn(concat(
			push(1, byte(a)), push(1, byte(a)), []byte{byte(interpreter.EQ)},
		))
	},
	// DUP1 followed immediately by POP — a no-op pair real compilers emit
	// constantly, useful as a baseline for the differential harness.
	func(g *Generator) []byte {
		a := g.rnd.Intn(256)
		return pushAndReturn(concat(
			push(1, byte(a)), []byte{byte(interpreter.DUP1), byte(interpreter.POP)},
		))
	},
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// sequence returns the idx'th canonical sequence, with its wildcard
// operands freshly drawn from g's PRNG stream.
func (g *Generator) sequence(idx int) []byte {
	return canonicalSequences[idx](g)
}
