package interpreter

import "github.com/evm-assure/evmcore/core"

func opMload(f *frame) error {
	offsetV, err := f.stack.pop()
	if err != nil {
		return err
	}
	offset, err := requireUint64(offsetV)
	if err != nil {
		return err
	}
	if err := f.chargeMemoryExpansion(offset, 32); err != nil {
		return err
	}
	return f.stack.push(f.memory.load32(offset))
}

func opMstore(f *frame) error {
	value, err := f.stack.pop()
	if err != nil {
		return err
	}
	offsetV, err := f.stack.pop()
	if err != nil {
		return err
	}
	offset, err := requireUint64(offsetV)
	if err != nil {
		return err
	}
	if err := f.chargeMemoryExpansion(offset, 32); err != nil {
		return err
	}
	f.memory.store32(offset, value)
	return nil
}

func opMstore8(f *frame) error {
	value, err := f.stack.pop()
	if err != nil {
		return err
	}
	offsetV, err := f.stack.pop()
	if err != nil {
		return err
	}
	offset, err := requireUint64(offsetV)
	if err != nil {
		return err
	}
	if err := f.chargeMemoryExpansion(offset, 1); err != nil {
		return err
	}
	f.memory.store8(offset, byte(value.Uint64()))
	return nil
}

func opSha3(f *frame) error {
	offsetV, err := f.stack.pop()
	if err != nil {
		return err
	}
	sizeV, err := f.stack.pop()
	if err != nil {
		return err
	}
	offset, size, err := requireUint64Pair(offsetV, sizeV)
	if err != nil {
		return err
	}
	data := f.memory.loadRange(offset, size)
	digest := core.Keccak256(data)
	return f.stack.push(core.U256FromBytes(digest[:]))
}

// requireUint64 converts a stack operand known (from chargeDynamicGas's
// earlier pass, for opcodes that have one) or not yet validated to a
// uint64 offset, failing with out-of-gas if it overflows — no real
// execution can ever afford to address memory beyond uint64 range.
func requireUint64(v core.U256) (uint64, error) {
	if !v.FitsUint64() {
		return 0, errOutOfGas
	}
	return v.Uint64(), nil
}

func requireUint64Pair(a, b core.U256) (uint64, uint64, error) {
	x, err := requireUint64(a)
	if err != nil {
		return 0, 0, err
	}
	y, err := requireUint64(b)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
