package interpreter

import (
	"testing"

	"github.com/evm-assure/evmcore/core"
)

func TestShl_LargeShiftIsZero(t *testing.T) {
	got := shl(core.NewU256(256), core.One)
	if !got.Eq(core.Zero) {
		t.Errorf("1 << 256 = %s, want 0", got)
	}
}

func TestShr_LargeShiftIsZero(t *testing.T) {
	got := shr(core.NewU256(300), core.MaxU256())
	if !got.Eq(core.Zero) {
		t.Errorf("MaxU256 >> 300 = %s, want 0", got)
	}
}

func TestSar_LargeShiftOfNegativeIsAllOnes(t *testing.T) {
	got := sar(core.NewU256(300), core.MaxU256())
	if !got.Eq(core.MaxU256()) {
		t.Errorf("SAR of negative by >=256 = %s, want MaxU256", got)
	}
}

func TestSar_LargeShiftOfPositiveIsZero(t *testing.T) {
	got := sar(core.NewU256(300), core.NewU256(5))
	if !got.Eq(core.Zero) {
		t.Errorf("SAR of positive by >=256 = %s, want 0", got)
	}
}

func TestShl_NormalShift(t *testing.T) {
	got := shl(core.NewU256(1), core.NewU256(1))
	if !got.Eq(core.NewU256(2)) {
		t.Errorf("1 << 1 = %s, want 2", got)
	}
}
