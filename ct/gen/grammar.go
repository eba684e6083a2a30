package gen

import "github.com/evm-assure/evmcore/interpreter"

var arithmeticOps = []interpreter.OpCode{
	interpreter.ADD, interpreter.SUB, interpreter.MUL, interpreter.DIV,
	interpreter.MOD, interpreter.LT, interpreter.GT, interpreter.EQ,
	interpreter.AND, interpreter.OR, interpreter.XOR,
}

var unaryOps = []interpreter.OpCode{interpreter.ISZERO, interpreter.NOT}

var terminators = []interpreter.OpCode{
	interpreter.STOP, interpreter.RETURN, interpreter.REVERT, interpreter.INVALID,
}

// grammar implements spec §4.8's "grammar" strategy: a push-weighted
// random walk over instruction categories that keeps the simulated stack
// depth non-negative and bounded, terminated by one of STOP/RETURN/
// REVERT/INVALID.
func (g *Generator) grammar() []byte {
	var code []byte
	depth := 0
	length := 8 + g.rnd.Intn(120)

	for i := 0; i < length; i++ {
		switch pick := g.rnd.Intn(10); {
		case pick < 5: // push-heavy: half of all steps push a literal
			width := 1 + g.rnd.Intn(32)
			op := interpreter.PUSH1 + interpreter.OpCode(width-1)
			code = append(code, byte(op))
			imm := make([]byte, width)
			g.rnd.Read(imm)
			code = append(code, imm...)
			depth++
		case pick < 8 && depth >= 2: // binary arithmetic/comparison
			op := arithmeticOps[g.rnd.Intn(len(arithmeticOps))]
			code = append(code, byte(op))
			depth--
		case pick < 9 && depth >= 1: // unary
			op := unaryOps[g.rnd.Intn(len(unaryOps))]
			code = append(code, byte(op))
		case depth >= 1: // POP, to keep depth bounded
			code = append(code, byte(interpreter.POP))
			depth--
		default:
			code = append(code, byte(interpreter.PUSH1), byte(g.rnd.Intn(256)))
			depth++
		}

		if depth > 32 {
			code = append(code, byte(interpreter.POP))
			depth--
		}
	}

	code = append(code, byte(terminators[g.rnd.Intn(len(terminators))]))
	return code
}
