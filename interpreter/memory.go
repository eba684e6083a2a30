package interpreter

import "github.com/evm-assure/evmcore/core"

// memory is the byte-addressable, expandable buffer described in spec
// §3/§4.3. Its size for costing purposes is always a multiple of 32 bytes.
type memory struct {
	data []byte
}

func newMemory() *memory {
	return &memory{}
}

func (m *memory) size() uint64 { return uint64(len(m.data)) }

// sizeAfter returns the memory size (rounded up to a multiple of 32) that
// would be required to cover [offset, offset+length), or the current size
// if length is 0 (a zero-length access never expands memory, per spec
// §4.3).
func (m *memory) sizeAfter(offset, length uint64) uint64 {
	if length == 0 {
		return m.size()
	}
	end := offset + length
	need := words(end) * 32
	if need <= m.size() {
		return m.size()
	}
	return need
}

// grow expands memory to size bytes, zero-filling the new region. Callers
// must charge memoryExpansionDelta before calling grow.
func (m *memory) grow(size uint64) {
	if size <= m.size() {
		return
	}
	grown := make([]byte, size)
	copy(grown, m.data)
	m.data = grown
}

func (m *memory) load32(offset uint64) core.U256 {
	m.grow(m.sizeAfter(offset, 32))
	return core.U256FromBytes(m.data[offset : offset+32])
}

func (m *memory) store32(offset uint64, v core.U256) {
	m.grow(m.sizeAfter(offset, 32))
	b := v.Bytes32()
	copy(m.data[offset:offset+32], b[:])
}

func (m *memory) store8(offset uint64, b byte) {
	m.grow(m.sizeAfter(offset, 1))
	m.data[offset] = b
}

// loadRange returns a copy of length bytes starting at offset, expanding
// memory (zero-filling) as needed.
func (m *memory) loadRange(offset, length uint64) []byte {
	if length == 0 {
		return nil
	}
	m.grow(m.sizeAfter(offset, length))
	out := make([]byte, length)
	copy(out, m.data[offset:offset+length])
	return out
}

// set writes data into memory at offset, expanding as needed. Used by
// MSTORE-adjacent copy opcodes (CALLDATACOPY, CODECOPY, RETURNDATACOPY,
// EXTCODECOPY) whose source may run past the end of the source buffer —
// callers are responsible for zero-padding src before calling set.
func (m *memory) set(offset uint64, src []byte) {
	if len(src) == 0 {
		return
	}
	m.grow(m.sizeAfter(offset, uint64(len(src))))
	copy(m.data[offset:offset+uint64(len(src))], src)
}

// copyWithinOrFromZero returns length bytes of src starting at srcOffset
// (src may be shorter than srcOffset+length, in which case the tail is
// zero-filled); callers write the result into memory with set. This
// implements the "source may be code/calldata/
// returndata" clause of spec §4.3's copy operation.
func copyWithinOrFromZero(src []byte, srcOffset, length uint64) []byte {
	out := make([]byte, length)
	if srcOffset >= uint64(len(src)) {
		return out
	}
	end := srcOffset + length
	if end > uint64(len(src)) {
		end = uint64(len(src))
	}
	copy(out, src[srcOffset:end])
	return out
}
