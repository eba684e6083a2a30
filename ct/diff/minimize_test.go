package diff

import (
	"testing"

	"github.com/evm-assure/evmcore/core"
	"github.com/evm-assure/evmcore/interpreter"
)

func TestMinimize_StripsPaddingAroundTheDivergingSequence(t *testing.T) {
	// PUSH0's success/gas divergence between Homestead and Shanghai is
	// excused by the expected table, but the *return data* it produces
	// on Shanghai (a faulted Homestead run returns nothing; Shanghai
	// stores and returns a real word) is not excused by any table entry,
	// so it surfaces as a real ReturnDataMismatch. Pad it with inert
	// JUMPDESTs and confirm Minimize finds something no larger.
	probe := []byte{
		byte(interpreter.PUSH0),
		byte(interpreter.PUSH1), 0,
		byte(interpreter.SWAP1),
		byte(interpreter.MSTORE),
		byte(interpreter.PUSH1), 32,
		byte(interpreter.PUSH1), 0,
		byte(interpreter.RETURN),
	}
	padding := make([]byte, 20)
	for i := range padding {
		padding[i] = byte(interpreter.JUMPDEST)
	}
	code := append(append([]byte{}, padding...), probe...)
	candidate := Candidate{Code: code, GasLimit: 100000}

	d := Execute(candidate, core.Homestead, core.Shanghai)
	if d == nil || d.Category != ReturnDataMismatch {
		t.Fatalf("expected a ReturnDataMismatch divergence before minimizing, got %+v", d)
	}

	minimized := Minimize(candidate, core.Homestead, core.Shanghai, d.Category)
	if len(minimized.Code) > len(code) {
		t.Fatalf("minimized code grew from %d to %d bytes", len(code), len(minimized.Code))
	}
	if !reproduces(minimized, core.Homestead, core.Shanghai, d.Category) {
		t.Fatal("minimized candidate must still reproduce the same divergence category")
	}
}

func TestMinimize_NonDivergingCandidateIsReturnedAsIs(t *testing.T) {
	code := []byte{byte(interpreter.PUSH1), 1, byte(interpreter.POP), byte(interpreter.STOP)}
	candidate := Candidate{Code: code, GasLimit: 100000}

	minimized := Minimize(candidate, core.Homestead, core.Shanghai, SuccessMismatch)
	if len(minimized.Code) != len(code) {
		t.Fatalf("a candidate that never reproduces the target category should not be reduced, got %d bytes from %d", len(minimized.Code), len(code))
	}
}

func TestReproduces_WrongCategoryDoesNotCount(t *testing.T) {
	code := []byte{
		byte(interpreter.PUSH0),
		byte(interpreter.PUSH1), 0,
		byte(interpreter.SWAP1),
		byte(interpreter.MSTORE),
		byte(interpreter.PUSH1), 32,
		byte(interpreter.PUSH1), 0,
		byte(interpreter.RETURN),
	}
	candidate := Candidate{Code: code, GasLimit: 100000}

	if reproduces(candidate, core.Homestead, core.Shanghai, StateMismatch) {
		t.Fatal("a ReturnDataMismatch-only candidate must not be reported as reproducing StateMismatch")
	}
	if !reproduces(candidate, core.Homestead, core.Shanghai, ReturnDataMismatch) {
		t.Fatal("the same candidate must reproduce its actual category, ReturnDataMismatch")
	}
}
