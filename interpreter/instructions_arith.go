package interpreter

import "github.com/evm-assure/evmcore/core"

// opArith implements the arithmetic, comparison, and bitwise opcode group
// of spec §4.4 — every binary or unary operator whose entire effect is
// "pop operands, push core.U256 result", already captured by the U256
// methods in core/u256.go.
func opArith(f *frame, op OpCode) error {
	switch op {
	case ADD, MUL, SUB, DIV, SDIV, MOD, SMOD, SIGNEXTEND, LT, GT, SLT, SGT, EQ,
		AND, OR, XOR, BYTE, SHL, SHR, SAR:
		a, err := f.stack.pop()
		if err != nil {
			return err
		}
		b, err := f.stack.pop()
		if err != nil {
			return err
		}
		return f.stack.push(binaryOp(op, a, b))

	case ADDMOD, MULMOD:
		m, err := f.stack.pop()
		if err != nil {
			return err
		}
		b, err := f.stack.pop()
		if err != nil {
			return err
		}
		a, err := f.stack.pop()
		if err != nil {
			return err
		}
		if op == ADDMOD {
			return f.stack.push(a.AddMod(b, m))
		}
		return f.stack.push(a.MulMod(b, m))

	case EXP:
		b, err := f.stack.pop()
		if err != nil {
			return err
		}
		e, err := f.stack.pop()
		if err != nil {
			return err
		}
		return f.stack.push(b.Exp(e))

	case ISZERO, NOT:
		a, err := f.stack.pop()
		if err != nil {
			return err
		}
		if op == ISZERO {
			return f.stack.push(boolU256(a.IsZero()))
		}
		return f.stack.push(a.Not())
	}
	return errInvalidOpcode
}

// binaryOp dispatches the two-operand opcodes that share the pop-pop-push
// shape. a is the operand popped first (the former top of stack), b the
// operand popped second — the order the Yellow Paper's μs[0], μs[1]
// convention assigns to each operator.
func binaryOp(op OpCode, a, b core.U256) core.U256 {
	switch op {
	case ADD:
		return a.Add(b)
	case MUL:
		return a.Mul(b)
	case SUB:
		return a.Sub(b)
	case DIV:
		return a.Div(b)
	case SDIV:
		return a.SDiv(b)
	case MOD:
		return a.Mod(b)
	case SMOD:
		return a.SMod(b)
	case SIGNEXTEND:
		return b.SignExtend(a)
	case LT:
		return boolU256(a.Lt(b))
	case GT:
		return boolU256(a.Gt(b))
	case SLT:
		return boolU256(a.Slt(b))
	case SGT:
		return boolU256(a.Sgt(b))
	case EQ:
		return boolU256(a.Eq(b))
	case AND:
		return a.And(b)
	case OR:
		return a.Or(b)
	case XOR:
		return a.Xor(b)
	case BYTE:
		return b.Byte(a)
	case SHL:
		return shl(a, b)
	case SHR:
		return shr(a, b)
	case SAR:
		return sar(a, b)
	}
	return core.Zero
}

// shl, shr, sar implement SHL/SHR/SAR's "shift amount first, value second"
// stack order, clamping shifts of 256 or more to the result U256's
// uint-width shift methods would otherwise wrap around on: all-zero for
// SHL/SHR, and for SAR either all-zero (non-negative value) or all-one
// (negative value).
func shl(shiftBy, value core.U256) core.U256 {
	if !shiftBy.FitsUint64() || shiftBy.Uint64() >= 256 {
		return core.Zero
	}
	return value.Shl(uint(shiftBy.Uint64()))
}

func shr(shiftBy, value core.U256) core.U256 {
	if !shiftBy.FitsUint64() || shiftBy.Uint64() >= 256 {
		return core.Zero
	}
	return value.Shr(uint(shiftBy.Uint64()))
}

func sar(shiftBy, value core.U256) core.U256 {
	if !shiftBy.FitsUint64() || shiftBy.Uint64() >= 256 {
		if value.IsNegative() {
			return core.MaxU256()
		}
		return core.Zero
	}
	return value.Sar(uint(shiftBy.Uint64()))
}

func boolU256(b bool) core.U256 {
	if b {
		return core.One
	}
	return core.Zero
}
