package interpreter

import "github.com/evm-assure/evmcore/core"

// opEnv implements the account- and call-context-dependent opcodes of spec
// §4.4: ADDRESS through EXTCODEHASH.
func opEnv(f *frame, op OpCode) error {
	switch op {
	case ADDRESS:
		return f.stack.push(addressToU256(f.ctx.Callee))
	case BALANCE:
		addrV, err := f.stack.pop()
		if err != nil {
			return err
		}
		return f.stack.push(f.world.GetBalance(core.AddressFromU256(addrV)))
	case ORIGIN:
		return f.stack.push(addressToU256(f.ctx.Origin))
	case CALLER:
		return f.stack.push(addressToU256(f.ctx.Caller))
	case CALLVALUE:
		return f.stack.push(f.ctx.Value)
	case CALLDATALOAD:
		offsetV, err := f.stack.pop()
		if err != nil {
			return err
		}
		return f.stack.push(loadPadded32(f.ctx.CallData, offsetV))
	case CALLDATASIZE:
		return f.stack.push(core.NewU256(uint64(len(f.ctx.CallData))))
	case CALLDATACOPY:
		return opCopyInto(f, f.ctx.CallData)
	case CODESIZE:
		return f.stack.push(core.NewU256(uint64(len(f.code))))
	case CODECOPY:
		return opCopyInto(f, f.code)
	case GASPRICE:
		return f.stack.push(f.ctx.GasPrice)
	case EXTCODESIZE:
		addrV, err := f.stack.pop()
		if err != nil {
			return err
		}
		return f.stack.push(core.NewU256(uint64(f.world.GetCodeSize(core.AddressFromU256(addrV)))))
	case EXTCODECOPY:
		return opExtCodeCopy(f)
	case RETURNDATASIZE:
		return f.stack.push(core.NewU256(uint64(len(f.lastCallReturnData))))
	case RETURNDATACOPY:
		return opReturnDataCopy(f)
	case EXTCODEHASH:
		addrV, err := f.stack.pop()
		if err != nil {
			return err
		}
		addr := core.AddressFromU256(addrV)
		if !f.world.HasAccount(addr) || f.world.IsEmpty(addr) {
			return f.stack.push(core.Zero)
		}
		h := f.world.GetCodeHash(addr)
		return f.stack.push(core.U256FromBytes(h[:]))
	}
	return errInvalidOpcode
}

// opBlock implements the block-context opcodes: BLOCKHASH through BASEFEE.
func opBlock(f *frame, op OpCode) error {
	switch op {
	case BLOCKHASH:
		numV, err := f.stack.pop()
		if err != nil {
			return err
		}
		num, err := requireUint64(numV)
		if err != nil {
			return err
		}
		h := f.env.GetBlockHash(num)
		return f.stack.push(core.U256FromBytes(h[:]))
	case COINBASE:
		return f.stack.push(addressToU256(f.env.Coinbase))
	case TIMESTAMP:
		return f.stack.push(core.NewU256(f.env.Timestamp))
	case NUMBER:
		return f.stack.push(core.NewU256(f.env.BlockNumber))
	case DIFFICULTY:
		return f.stack.push(f.env.Difficulty)
	case GASLIMIT:
		return f.stack.push(core.NewU256(uint64(f.env.GasLimit)))
	case CHAINID:
		return f.stack.push(f.env.ChainID)
	case SELFBALANCE:
		return f.stack.push(f.world.GetBalance(f.ctx.Callee))
	case BASEFEE:
		return f.stack.push(f.env.BaseFee)
	}
	return errInvalidOpcode
}

func addressToU256(a core.Address) core.U256 {
	var buf [32]byte
	copy(buf[12:], a[:])
	return core.U256FromBytes(buf[:])
}

// loadPadded32 reads 32 bytes from src starting at offset, zero-padding
// past the end, matching CALLDATALOAD's out-of-range semantics.
func loadPadded32(src []byte, offsetV core.U256) core.U256 {
	if !offsetV.FitsUint64() {
		return core.Zero
	}
	offset := offsetV.Uint64()
	var buf [32]byte
	if offset < uint64(len(src)) {
		end := offset + 32
		if end > uint64(len(src)) {
			end = uint64(len(src))
		}
		copy(buf[:end-offset], src[offset:end])
	}
	return core.U256FromBytes(buf[:])
}

// opCopyInto implements the shared shape of CALLDATACOPY/CODECOPY: pop
// (destOffset, offset, size), copy size bytes from src starting at offset
// (zero-padded past src's end) into memory at destOffset.
func opCopyInto(f *frame, src []byte) error {
	dstV, err := f.stack.pop()
	if err != nil {
		return err
	}
	offV, err := f.stack.pop()
	if err != nil {
		return err
	}
	sizeV, err := f.stack.pop()
	if err != nil {
		return err
	}
	if sizeV.IsZero() {
		return nil
	}
	dst, off, size, err := threeUint64(dstV, offV, sizeV)
	if err != nil {
		return err
	}
	f.memory.set(dst, copyWithinOrFromZero(src, off, size))
	return nil
}

func opExtCodeCopy(f *frame) error {
	addrV, err := f.stack.pop()
	if err != nil {
		return err
	}
	dstV, err := f.stack.pop()
	if err != nil {
		return err
	}
	offV, err := f.stack.pop()
	if err != nil {
		return err
	}
	sizeV, err := f.stack.pop()
	if err != nil {
		return err
	}
	if sizeV.IsZero() {
		return nil
	}
	dst, off, size, err := threeUint64(dstV, offV, sizeV)
	if err != nil {
		return err
	}
	code := f.world.GetCode(core.AddressFromU256(addrV))
	f.memory.set(dst, copyWithinOrFromZero(code, off, size))
	return nil
}

// opReturnDataCopy implements RETURNDATACOPY. Unlike the other copy
// opcodes, reading past the end of the source buffer is an exceptional
// halt rather than a zero-padded read, per spec §4.4's note that
// RETURNDATACOPY must not silently fabricate data.
func opReturnDataCopy(f *frame) error {
	dstV, err := f.stack.pop()
	if err != nil {
		return err
	}
	offV, err := f.stack.pop()
	if err != nil {
		return err
	}
	sizeV, err := f.stack.pop()
	if err != nil {
		return err
	}
	if sizeV.IsZero() {
		return nil
	}
	dst, off, size, err := threeUint64(dstV, offV, sizeV)
	if err != nil {
		return err
	}
	if off+size > uint64(len(f.lastCallReturnData)) {
		return errReturnDataOutOfBounds
	}
	f.memory.set(dst, f.lastCallReturnData[off:off+size])
	return nil
}

func threeUint64(a, b, c core.U256) (x, y, z uint64, err error) {
	if !a.FitsUint64() || !b.FitsUint64() || !c.FitsUint64() {
		return 0, 0, 0, errOutOfGas
	}
	return a.Uint64(), b.Uint64(), c.Uint64(), nil
}
