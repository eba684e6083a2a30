package eip

import (
	"testing"

	"github.com/evm-assure/evmcore/interpreter"
)

func TestGenCallContext_ProducesFourVariantsPerOpcode(t *testing.T) {
	e, ok := Lookup(3855) // PUSH0: 1 opcode
	if !ok {
		t.Fatal("EIP-3855 should be in the catalog")
	}

	cases := genCallContext(e)
	const variants = 4 // direct, call, delegatecall, staticcall
	if len(cases) != variants {
		t.Fatalf("got %d CALL_CONTEXT cases, want %d", len(cases), variants)
	}

	for _, c := range cases {
		if len(c.Bytecode) == 0 {
			t.Errorf("%s produced empty bytecode", c.Name)
		}
		if c.ExpectedSuccess == nil || !*c.ExpectedSuccess {
			t.Errorf("%s: PUSH0 is read-only, every variant including staticcall should expect success", c.Name)
		}
	}
}

func TestCallKind_String(t *testing.T) {
	cases := map[callKind]string{
		direct:          "direct",
		viaCall:         "call",
		viaDelegateCall: "delegatecall",
		viaStaticCall:   "staticcall",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", kind, got, want)
		}
	}
}

func TestWrapInCall_JumpTargetLandsOnJUMPDEST(t *testing.T) {
	inner := innerProbe(0x5F) // PUSH0
	for _, kind := range []callKind{viaCall, viaDelegateCall, viaStaticCall} {
		code := wrapInCall(inner, kind)
		// header is CALLDATASIZE ISZERO PUSH2 hi lo JUMPI == 6 bytes
		outerOffset := int(code[3])<<8 | int(code[4])
		if outerOffset >= len(code) {
			t.Fatalf("%v: jump target %d out of range (len %d)", kind, outerOffset, len(code))
		}
		if code[outerOffset] != byte(interpreter.JUMPDEST) {
			t.Fatalf("%v: byte at computed jump target is not JUMPDEST, got 0x%02X", kind, code[outerOffset])
		}
	}
}
