package core

import "testing"

func TestU256_AddWraps(t *testing.T) {
	got := MaxU256().Add(One)
	if !got.Eq(Zero) {
		t.Errorf("MaxU256 + 1 = %s, want 0", got)
	}
}

func TestU256_SubUnderflowWraps(t *testing.T) {
	got := Zero.Sub(One)
	if !got.Eq(MaxU256()) {
		t.Errorf("0 - 1 = %s, want MaxU256", got)
	}
}

func TestU256_DivByZeroIsZero(t *testing.T) {
	got := NewU256(42).Div(Zero)
	if !got.Eq(Zero) {
		t.Errorf("42 / 0 = %s, want 0", got)
	}
}

func TestU256_ModByZeroIsZero(t *testing.T) {
	got := NewU256(42).Mod(Zero)
	if !got.Eq(Zero) {
		t.Errorf("42 mod 0 = %s, want 0", got)
	}
}

func TestU256_FitsUint64(t *testing.T) {
	if !NewU256(1234).FitsUint64() {
		t.Error("1234 should fit in a uint64")
	}
	if MaxU256().FitsUint64() {
		t.Error("MaxU256 should not fit in a uint64")
	}
}

func TestU256_Cmp(t *testing.T) {
	if NewU256(1).Cmp(NewU256(2)) >= 0 {
		t.Error("1 should compare less than 2")
	}
	if NewU256(2).Cmp(NewU256(1)) <= 0 {
		t.Error("2 should compare greater than 1")
	}
}

func TestU256_ShlOverflowIsZero(t *testing.T) {
	got := One.Shl(256)
	if !got.Eq(Zero) {
		t.Errorf("1 << 256 = %s, want 0", got)
	}
}

func TestU256_IsNegative(t *testing.T) {
	if NewU256(1).IsNegative() {
		t.Error("1 should not be negative")
	}
	if !MaxU256().IsNegative() {
		t.Error("MaxU256 (all bits set) should be negative under two's complement")
	}
}

func TestU256_NewU256MultiWordBigEndian(t *testing.T) {
	got := NewU256(0, 0, 0, 1)
	if !got.Eq(One) {
		t.Errorf("NewU256(0,0,0,1) = %s, want 1", got)
	}

	got = NewU256(1, 0)
	want := One.Shl(64)
	if !got.Eq(want) {
		t.Errorf("NewU256(1,0) = %s, want 2^64", got)
	}
}

func TestU256_ByteLen(t *testing.T) {
	if NewU256(0).ByteLen() != 0 {
		t.Error("0 should have byte length 0")
	}
	if NewU256(255).ByteLen() != 1 {
		t.Error("255 should have byte length 1")
	}
	if NewU256(256).ByteLen() != 2 {
		t.Error("256 should have byte length 2")
	}
}
