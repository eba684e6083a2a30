package interpreter

import "github.com/evm-assure/evmcore/core"

// opJump implements JUMP: pop a destination, validate it, and set pc there.
// execute()'s caller does not advance pc afterward (advance=false), so the
// new pc value sticks.
func opJump(f *frame) error {
	dest, err := f.stack.pop()
	if err != nil {
		return err
	}
	pc, err := validJumpDest(f, dest)
	if err != nil {
		return err
	}
	f.pc = pc
	return nil
}

// opJumpi implements JUMPI: pop (destination, condition); jump only if
// condition is nonzero. Returns whether the jump was taken so dispatch.go
// can decide whether to let the normal pc++ happen instead.
func opJumpi(f *frame) (bool, error) {
	dest, err := f.stack.pop()
	if err != nil {
		return false, err
	}
	cond, err := f.stack.pop()
	if err != nil {
		return false, err
	}
	if cond.IsZero() {
		return false, nil
	}
	pc, err := validJumpDest(f, dest)
	if err != nil {
		return false, err
	}
	f.pc = pc
	return true, nil
}

func validJumpDest(f *frame, dest core.U256) (int, error) {
	if !dest.FitsUint64() {
		return 0, errInvalidJump
	}
	pc := int(dest.Uint64())
	if !f.jumpdests.isValid(pc) {
		return 0, errInvalidJump
	}
	return pc, nil
}

// opPush implements PUSH1..PUSH32: read op.PushWidth()-1 immediate bytes
// following the opcode (zero-padded if code ends early, matching the
// Yellow Paper's treatment of truncated push data), push them as a
// big-endian U256, and advance pc past the whole instruction.
func opPush(f *frame, op OpCode) error {
	width := op.PushWidth()
	start := f.pc + 1
	end := start + width - 1
	var buf [32]byte
	n := width - 1
	if start < len(f.code) {
		copyEnd := end
		if copyEnd > len(f.code) {
			copyEnd = len(f.code)
		}
		copy(buf[32-n:], f.code[start:copyEnd])
	}
	if err := f.stack.push(core.U256FromBytes(buf[:])); err != nil {
		return err
	}
	f.pc += width
	return nil
}

func opReturn(f *frame) error {
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
	if err := f.chargeMemoryExpansion(offset, size); err != nil {
		return err
	}
	f.returnData = f.memory.loadRange(offset, size)
	return nil
}

func opRevert(f *frame) error {
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
	if err := f.chargeMemoryExpansion(offset, size); err != nil {
		return err
	}
	f.returnData = f.memory.loadRange(offset, size)
	return nil
}
