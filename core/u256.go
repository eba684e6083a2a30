package core

import (
	"math/big"

	"github.com/holiman/uint256"
)

// U256 is the EVM's native 256-bit unsigned integer. All arithmetic wraps
// modulo 2^256. It is a thin value-type wrapper around uint256.Int so that
// EVM operations never allocate on the hot path, matching the teacher's
// preference for holiman/uint256 over math/big throughout the interpreter.
type U256 struct {
	v uint256.Int
}

// Zero and One are the most frequently constructed constants.
var (
	Zero = U256{}
	One  = newFromUint64(1)
)

// MaxU256 is 2^256 - 1.
func MaxU256() U256 {
	var z U256
	z.v.SetAllOne()
	return z
}

func newFromUint64(v uint64) U256 {
	var z U256
	z.v.SetUint64(v)
	return z
}

// NewU256 builds a U256 out of up to four uint64 arguments, most significant
// first, matching tosca.NewValue's convention.
func NewU256(args ...uint64) U256 {
	if len(args) == 0 {
		return Zero
	}
	if len(args) == 1 {
		return newFromUint64(args[0])
	}
	var buf [32]byte
	offset := 4 - len(args)
	for i, a := range args {
		start := (offset+i)*8
		putUint64BE(buf[start:start+8], a)
	}
	return U256FromBytes(buf[:])
}

func putUint64BE(dst []byte, v uint64) {
	dst[0] = byte(v >> 56)
	dst[1] = byte(v >> 48)
	dst[2] = byte(v >> 40)
	dst[3] = byte(v >> 32)
	dst[4] = byte(v >> 24)
	dst[5] = byte(v >> 16)
	dst[6] = byte(v >> 8)
	dst[7] = byte(v)
}

// U256FromBytes interprets data as a big-endian integer, left-padding with
// zeros (or truncating from the left) to 32 bytes.
func U256FromBytes(data []byte) U256 {
	var z U256
	z.v.SetBytes(data)
	return z
}

// U256FromBig converts a big.Int, reducing modulo 2^256.
func U256FromBig(b *big.Int) U256 {
	var z U256
	z.v.SetFromBig(b)
	return z
}

func (z U256) ToBig() *big.Int { return z.v.ToBig() }

func (z U256) Bytes32() [32]byte { return z.v.Bytes32() }

func (z U256) Bytes() []byte { return z.v.Bytes() }

func (z U256) Uint64() uint64 { return z.v.Uint64() }

// FitsUint64 reports whether z's value is representable in a uint64,
// used to guard offset/size/gas operands before they drive memory growth
// or gas arithmetic.
func (z U256) FitsUint64() bool { return z.v.IsUint64() }

func (z U256) IsZero() bool { return z.v.IsZero() }

func (z U256) String() string { return z.v.String() }

func (z U256) Eq(o U256) bool { return z.v.Eq(&o.v) }

func (z U256) Cmp(o U256) int { return z.v.Cmp(&o.v) }

// Add returns z + o mod 2^256.
func (z U256) Add(o U256) U256 {
	var r U256
	r.v.Add(&z.v, &o.v)
	return r
}

func (z U256) Sub(o U256) U256 {
	var r U256
	r.v.Sub(&z.v, &o.v)
	return r
}

func (z U256) Mul(o U256) U256 {
	var r U256
	r.v.Mul(&z.v, &o.v)
	return r
}

// Div is EVM DIV: unsigned integer division, truncating toward zero,
// returning 0 when the divisor is 0.
func (z U256) Div(o U256) U256 {
	var r U256
	r.v.Div(&z.v, &o.v)
	return r
}

// Mod is EVM MOD: returns 0 when the divisor is 0.
func (z U256) Mod(o U256) U256 {
	var r U256
	r.v.Mod(&z.v, &o.v)
	return r
}

// SDiv is EVM SDIV: signed division under two's-complement reinterpretation.
// SDiv(MIN_INT256, -1) == MIN_INT256 (no overflow trap).
func (z U256) SDiv(o U256) U256 {
	var r U256
	r.v.SDiv(&z.v, &o.v)
	return r
}

// SMod is EVM SMOD: the sign of the result follows the dividend.
func (z U256) SMod(o U256) U256 {
	var r U256
	r.v.SMod(&z.v, &o.v)
	return r
}

func (z U256) AddMod(y, m U256) U256 {
	var r U256
	r.v.AddMod(&z.v, &y.v, &m.v)
	return r
}

func (z U256) MulMod(y, m U256) U256 {
	var r U256
	r.v.MulMod(&z.v, &y.v, &m.v)
	return r
}

// Exp computes z**e mod 2^256 by square-and-multiply.
func (z U256) Exp(e U256) U256 {
	var r U256
	r.v.Exp(&z.v, &e.v)
	return r
}

// ByteLen returns the number of significant bytes of the exponent, used
// to price EXP.
func (z U256) ByteLen() int {
	return (z.v.BitLen() + 7) / 8
}

func (z U256) Lt(o U256) bool { return z.v.Lt(&o.v) }
func (z U256) Gt(o U256) bool { return z.v.Gt(&o.v) }
func (z U256) Slt(o U256) bool { return z.v.Slt(&o.v) }
func (z U256) Sgt(o U256) bool { return z.v.Sgt(&o.v) }

func (z U256) And(o U256) U256 {
	var r U256
	r.v.And(&z.v, &o.v)
	return r
}

func (z U256) Or(o U256) U256 {
	var r U256
	r.v.Or(&z.v, &o.v)
	return r
}

func (z U256) Xor(o U256) U256 {
	var r U256
	r.v.Xor(&z.v, &o.v)
	return r
}

func (z U256) Not() U256 {
	var r U256
	r.v.Not(&z.v)
	return r
}

// Byte returns the i-th big-endian byte of z (0 if i >= 32), matching EVM's
// BYTE opcode semantics.
func (z U256) Byte(i U256) U256 {
	r := z
	r.v.Byte(&i.v)
	return r
}

// SignExtend sign-extends z treating it as a (b+1)-byte signed integer. If
// b >= 31, z is returned unchanged.
func (z U256) SignExtend(b U256) U256 {
	var r U256
	r.v.ExtendSign(&z.v, &b.v)
	return r
}

// Shl, Shr are logical shifts; a shift amount >= 256 yields 0.
func (z U256) Shl(n uint) U256 {
	var r U256
	r.v.Lsh(&z.v, n)
	return r
}

func (z U256) Shr(n uint) U256 {
	var r U256
	r.v.Rsh(&z.v, n)
	return r
}

// Sar is the arithmetic (sign-preserving) shift right. A shift amount >= 256
// yields 0 for non-negative z, or MaxU256 for negative z.
func (z U256) Sar(n uint) U256 {
	var r U256
	r.v.SRsh(&z.v, n)
	return r
}

// IsNegative reports whether the most significant bit is set, i.e. whether
// z would be negative under two's-complement reinterpretation.
func (z U256) IsNegative() bool {
	return z.v[3]>>63 == 1
}

func (z U256) Clone() U256 {
	var r U256
	r.v.Set(&z.v)
	return r
}
