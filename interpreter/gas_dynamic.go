package interpreter

import "github.com/evm-assure/evmcore/core"

// chargeDynamicGas computes and charges the dynamic portion of an opcode's
// cost from its operands, peeked but not yet popped off the stack, per spec
// §4.5 step 6. Static-context checks for the handful of state-mutating
// opcodes (SSTORE, LOGn, CREATE family, SELFDESTRUCT, value-bearing CALL)
// live here too, since computing their cost already requires inspecting the
// same operands.
func chargeDynamicGas(f *frame, op OpCode) error {
	switch op {
	case EXP:
		exponent, err := f.stack.peek(1)
		if err != nil {
			return err
		}
		return f.chargeGas(expGas(exponent, f.rev))

	case SHA3:
		offset, size, err := peekOffsetSize(f, 0, 1)
		if err != nil {
			return err
		}
		if err := f.chargeMemoryExpansion(offset, size); err != nil {
			return err
		}
		return f.chargeGas(sha3Gas(size))

	case CALLDATACOPY, CODECOPY, RETURNDATACOPY:
		dst, _, size, err := peekCopyOperands(f)
		if err != nil {
			return err
		}
		if err := f.chargeMemoryExpansion(dst, size); err != nil {
			return err
		}
		return f.chargeGas(copyGas(size))

	case EXTCODECOPY:
		_, dst, _, size, err := peekExtCopyOperands(f)
		if err != nil {
			return err
		}
		if err := f.chargeMemoryExpansion(dst, size); err != nil {
			return err
		}
		return f.chargeGas(extCodeCopyGas(size))

	case LOG0, LOG1, LOG2, LOG3, LOG4:
		if f.ctx.IsStatic {
			return errStaticModification
		}
		offset, size, err := peekOffsetSize(f, 0, 1)
		if err != nil {
			return err
		}
		if err := f.chargeMemoryExpansion(offset, size); err != nil {
			return err
		}
		return f.chargeGas(logGas(int(op-LOG0), size))

	case SSTORE:
		if f.ctx.IsStatic {
			return errStaticModification
		}
		key, value, err := peekTwo(f, 0, 1)
		if err != nil {
			return err
		}
		old := f.world.GetStorage(f.ctx.Callee, key)
		cost, refund := sstoreGas(old, value)
		if err := f.chargeGas(cost); err != nil {
			return err
		}
		if refund > 0 {
			f.tx.addRefund(refund)
		}
		return nil

	case SELFDESTRUCT:
		if f.ctx.IsStatic {
			return errStaticModification
		}
		return f.chargeGas(selfdestructGas(f.rev))

	case CREATE, CREATE2:
		if f.ctx.IsStatic {
			return errStaticModification
		}
		_, offset, size, err := peekCreateOperands(f, op)
		if err != nil {
			return err
		}
		if err := f.chargeMemoryExpansion(offset, size); err != nil {
			return err
		}
		if f.rules.initcodeLimited && size > MaxInitcodeSize {
			return errInitCodeTooLarge
		}
		return f.chargeGas(createGas(int(size), f.rev))

	case CALL, CALLCODE, DELEGATECALL, STATICCALL:
		return chargeCallGas(f, op)
	}
	return nil
}

// peekOffsetSize reads a (offset, size) operand pair at the given stack
// depths without popping, guarding against operands too large to fit a
// uint64 (which would always exceed available gas or memory anyway).
func peekOffsetSize(f *frame, offsetIdx, sizeIdx int) (offset, size uint64, err error) {
	o, err := f.stack.peek(offsetIdx)
	if err != nil {
		return 0, 0, err
	}
	s, err := f.stack.peek(sizeIdx)
	if err != nil {
		return 0, 0, err
	}
	if s.IsZero() {
		return 0, 0, nil
	}
	if !o.FitsUint64() || !s.FitsUint64() {
		return 0, 0, errOutOfGas
	}
	return o.Uint64(), s.Uint64(), nil
}

func peekTwo(f *frame, i, j int) (a, b core.U256, err error) {
	a, err = f.stack.peek(i)
	if err != nil {
		return
	}
	b, err = f.stack.peek(j)
	return
}

// peekCopyOperands reads the (destOffset, offset, size) shape shared by
// CALLDATACOPY, CODECOPY and RETURNDATACOPY.
func peekCopyOperands(f *frame) (dst, src, size uint64, err error) {
	dstV, err := f.stack.peek(0)
	if err != nil {
		return
	}
	srcV, err := f.stack.peek(1)
	if err != nil {
		return
	}
	sizeV, err := f.stack.peek(2)
	if err != nil {
		return
	}
	if sizeV.IsZero() {
		return 0, 0, 0, nil
	}
	if !dstV.FitsUint64() || !srcV.FitsUint64() || !sizeV.FitsUint64() {
		return 0, 0, 0, errOutOfGas
	}
	return dstV.Uint64(), srcV.Uint64(), sizeV.Uint64(), nil
}

// peekExtCopyOperands reads EXTCODECOPY's (address, destOffset, offset, size).
func peekExtCopyOperands(f *frame) (addr core.Address, dst, src, size uint64, err error) {
	addrV, err := f.stack.peek(0)
	if err != nil {
		return
	}
	dstV, err := f.stack.peek(1)
	if err != nil {
		return
	}
	srcV, err := f.stack.peek(2)
	if err != nil {
		return
	}
	sizeV, err := f.stack.peek(3)
	if err != nil {
		return
	}
	addr = core.AddressFromU256(addrV)
	if sizeV.IsZero() {
		return addr, 0, 0, 0, nil
	}
	if !dstV.FitsUint64() || !srcV.FitsUint64() || !sizeV.FitsUint64() {
		return addr, 0, 0, 0, errOutOfGas
	}
	return addr, dstV.Uint64(), srcV.Uint64(), sizeV.Uint64(), nil
}

// peekCreateOperands reads CREATE's (value, offset, size) or CREATE2's
// (value, offset, size, salt), returning the common three.
func peekCreateOperands(f *frame, op OpCode) (value core.U256, offset, size uint64, err error) {
	value, err = f.stack.peek(0)
	if err != nil {
		return
	}
	offsetV, err := f.stack.peek(1)
	if err != nil {
		return
	}
	sizeV, err := f.stack.peek(2)
	if err != nil {
		return
	}
	if sizeV.IsZero() {
		return value, 0, 0, nil
	}
	if !offsetV.FitsUint64() || !sizeV.FitsUint64() {
		return value, 0, 0, errOutOfGas
	}
	_ = op
	return value, offsetV.Uint64(), sizeV.Uint64(), nil
}

// chargeCallGas prices the CALL family per spec §4.4: a base cost (already
// folded entirely into the dynamic path, since the static table prices
// every CALL-family opcode at 0), plus a value-transfer surcharge and a
// new-account surcharge for CALL specifically, plus memory expansion for
// both the argument and return-data regions. The gas-forwarding
// computation itself happens later in calls.go, once the base cost here has
// been debited and the true remaining balance is known.
func chargeCallGas(f *frame, op OpCode) error {
	hasValue := op == CALL || op == CALLCODE
	n := 0
	_, err := f.stack.peek(n) // gas
	if err != nil {
		return err
	}
	n++
	toV, err := f.stack.peek(n)
	if err != nil {
		return err
	}
	n++

	var value core.U256
	if hasValue {
		value, err = f.stack.peek(n)
		if err != nil {
			return err
		}
		n++
	}

	if op == CALL && f.ctx.IsStatic && !value.IsZero() {
		return errStaticModification
	}

	argsOffsetV, err := f.stack.peek(n)
	if err != nil {
		return err
	}
	n++
	argsSizeV, err := f.stack.peek(n)
	if err != nil {
		return err
	}
	n++
	retOffsetV, err := f.stack.peek(n)
	if err != nil {
		return err
	}
	n++
	retSizeV, err := f.stack.peek(n)
	if err != nil {
		return err
	}

	argsOffset, argsSize, err := boundedPair(argsOffsetV, argsSizeV)
	if err != nil {
		return err
	}
	retOffset, retSize, err := boundedPair(retOffsetV, retSizeV)
	if err != nil {
		return err
	}

	if err := f.chargeMemoryExpansion(argsOffset, argsSize); err != nil {
		return err
	}
	if err := f.chargeMemoryExpansion(retOffset, retSize); err != nil {
		return err
	}

	cost := callBaseGas(f.rev)
	if hasValue && !value.IsZero() {
		cost += GasCallValueTransfer
		if op == CALL {
			target := core.AddressFromU256(toV)
			if f.world.IsEmpty(target) {
				cost += GasCallNewAccount
			}
		}
	}
	return f.chargeGas(cost)
}

func boundedPair(offsetV, sizeV core.U256) (offset, size uint64, err error) {
	if sizeV.IsZero() {
		return 0, 0, nil
	}
	if !offsetV.FitsUint64() || !sizeV.FitsUint64() {
		return 0, 0, errOutOfGas
	}
	return offsetV.Uint64(), sizeV.Uint64(), nil
}
