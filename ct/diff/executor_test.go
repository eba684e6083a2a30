package diff

import (
	"testing"

	"github.com/evm-assure/evmcore/core"
	"github.com/evm-assure/evmcore/interpreter"
)

func TestExecute_AgreeingForksReportNoDivergence(t *testing.T) {
	code := []byte{
		byte(interpreter.PUSH1), 3,
		byte(interpreter.PUSH1), 4,
		byte(interpreter.ADD),
		byte(interpreter.PUSH1), 0,
		byte(interpreter.SWAP1),
		byte(interpreter.MSTORE),
		byte(interpreter.PUSH1), 32,
		byte(interpreter.PUSH1), 0,
		byte(interpreter.RETURN),
	}
	candidate := Candidate{Code: code, GasLimit: 100000}

	if d := Execute(candidate, core.Homestead, core.Shanghai); d != nil {
		t.Fatalf("expected no divergence for fork-agnostic arithmetic, got %+v", d)
	}
}

func TestExecute_PUSH0AcrossHomesteadAndShanghaiIsExcused(t *testing.T) {
	code := []byte{byte(interpreter.PUSH0), byte(interpreter.STOP)}
	candidate := Candidate{Code: code, GasLimit: 100000}

	if d := Execute(candidate, core.Homestead, core.Shanghai); d != nil {
		t.Fatalf("PUSH0 success-mismatch across Homestead/Shanghai should be excused by the expected table, got %+v", d)
	}
}

func TestExecute_UnexcusedReturnDataMismatchIsNotSwallowed(t *testing.T) {
	// The expected table only excuses SuccessMismatch/GasMismatch for
	// PUSH0, never ReturnDataMismatch — Execute must still surface that
	// category if it ever occurred, rather than blanket-excusing every
	// mismatch category just because the code contains PUSH0.
	if expected(core.Homestead, core.Shanghai, ReturnDataMismatch, []byte{byte(interpreter.PUSH0)}) {
		t.Fatal("expected table should only excuse SuccessMismatch and GasMismatch for PUSH0, not ReturnDataMismatch")
	}
}

func TestExpected_NormalizesForkOrder(t *testing.T) {
	code := []byte{byte(interpreter.PUSH0)}
	if !expected(core.Shanghai, core.Homestead, SuccessMismatch, code) {
		t.Fatal("expected() should normalize (forkA, forkB) order before matching the table")
	}
}

func TestExpected_OpcodeScopedEntryDoesNotExcuseUnrelatedCode(t *testing.T) {
	code := []byte{byte(interpreter.ADD)}
	if expected(core.Homestead, core.Shanghai, SuccessMismatch, code) {
		t.Fatal("PUSH0's expected entry should not excuse a success mismatch in code that never uses PUSH0")
	}
}

func TestContainsOpcode_SkipsPushImmediateBytes(t *testing.T) {
	// PUSH1 0x5F: the immediate byte 0x5F must not be mistaken for a
	// PUSH0 opcode occurrence.
	code := []byte{byte(interpreter.PUSH1), 0x5F, byte(interpreter.STOP)}
	if containsOpcode(code, 0x5F) {
		t.Fatal("containsOpcode should skip over PUSH immediates, not just scan raw bytes")
	}
}
