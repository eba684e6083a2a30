package processor

import (
	"testing"

	"github.com/evm-assure/evmcore/core"
	"github.com/evm-assure/evmcore/interpreter"
	"github.com/evm-assure/evmcore/state"
)

func testEnv() *core.Environment {
	return &core.Environment{
		BlockNumber: 1,
		GasLimit:    30_000_000,
		Coinbase:    core.Address{0xC0},
		BlockHashes: map[uint64]core.Hash{},
	}
}

func TestApply_SimpleCallCreditsCoinbaseAndSender(t *testing.T) {
	world := state.New()
	sender := core.Address{0x01}
	target := core.Address{0x02}

	world.AddBalance(sender, core.NewU256(10_000_000))
	world.SetCode(target, core.Code{byte(interpreter.STOP)})

	p := New(nil)
	tx := &core.Transaction{
		Sender:   sender,
		To:       &target,
		GasLimit: 100000,
		GasPrice: core.NewU256(1),
		Nonce:    0,
	}

	result, err := p.Apply(tx, testEnv(), world, core.Shanghai)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got fault %v", result.Fault)
	}
	if world.GetNonce(sender) != 1 {
		t.Errorf("sender nonce = %d, want 1", world.GetNonce(sender))
	}

	coinbaseBalance := world.GetBalance(core.Address{0xC0})
	if coinbaseBalance.IsZero() {
		t.Error("coinbase should have been credited gas_used * gas_price")
	}
}

func TestApply_RejectsNonceMismatch(t *testing.T) {
	world := state.New()
	sender := core.Address{0x01}
	world.AddBalance(sender, core.NewU256(10_000_000))
	world.SetNonce(sender, 5)

	p := New(nil)
	tx := &core.Transaction{
		Sender:   sender,
		GasLimit: 100000,
		GasPrice: core.NewU256(1),
		Nonce:    0, // stale
	}

	if _, err := p.Apply(tx, testEnv(), world, core.Shanghai); err == nil {
		t.Fatal("expected a nonce-mismatch validation error")
	}
}

func TestApply_RejectsInsufficientBalance(t *testing.T) {
	world := state.New()
	sender := core.Address{0x01}
	// no balance at all

	p := New(nil)
	tx := &core.Transaction{
		Sender:   sender,
		GasLimit: 100000,
		GasPrice: core.NewU256(1),
		Nonce:    0,
	}

	if _, err := p.Apply(tx, testEnv(), world, core.Shanghai); err == nil {
		t.Fatal("expected an insufficient-balance validation error")
	}
}

func TestApply_ContractCreationSetsCreatedAddress(t *testing.T) {
	world := state.New()
	sender := core.Address{0x01}
	world.AddBalance(sender, core.NewU256(10_000_000))

	p := New(nil)
	initcode := []byte{
		byte(interpreter.PUSH1), 0x00,
		byte(interpreter.PUSH1), 0x00,
		byte(interpreter.RETURN),
	}
	tx := &core.Transaction{
		Sender:   sender,
		To:       nil,
		Data:     initcode,
		GasLimit: 200000,
		GasPrice: core.NewU256(1),
		Nonce:    0,
	}

	result, err := p.Apply(tx, testEnv(), world, core.Shanghai)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected creation to succeed, got fault %v", result.Fault)
	}
	if result.CreatedAddress == nil {
		t.Fatal("expected a created address on a successful creation")
	}
}

func TestIntrinsicGas_ChargesPerByteAndCreation(t *testing.T) {
	tx := &core.Transaction{Data: []byte{0x00, 0x01, 0x02}, To: nil}
	got := intrinsicGas(tx, core.Frontier)
	want := core.Gas(21000 + 4 + 16 + 16 + 32000) // one zero byte (0x00), two non-zero (0x01, 0x02)
	if got != want {
		t.Errorf("intrinsicGas = %d, want %d", got, want)
	}
}

func TestApplyRefundCap_CapsAtHalfGasUsed(t *testing.T) {
	if got := applyRefundCap(100, 60); got != 50 {
		t.Errorf("applyRefundCap(100, 60) = %d, want 50", got)
	}
	if got := applyRefundCap(100, 30); got != 30 {
		t.Errorf("applyRefundCap(100, 30) = %d, want 30", got)
	}
}
