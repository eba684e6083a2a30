package state

import (
	"testing"

	"github.com/evm-assure/evmcore/core"
)

func TestSetStorage_ClassifiesTransitions(t *testing.T) {
	s := New()
	addr := core.Address{0x01}
	key := core.NewU256(1)

	if status := s.SetStorage(addr, key, core.Zero); status != core.StorageUnchanged {
		t.Errorf("zero->zero = %v, want StorageUnchanged", status)
	}
	if status := s.SetStorage(addr, key, core.NewU256(5)); status != core.StorageAdded {
		t.Errorf("zero->5 = %v, want StorageAdded", status)
	}
	if status := s.SetStorage(addr, key, core.NewU256(9)); status != core.StorageModified {
		t.Errorf("5->9 = %v, want StorageModified", status)
	}
	if status := s.SetStorage(addr, key, core.NewU256(9)); status != core.StorageUnchanged {
		t.Errorf("9->9 = %v, want StorageUnchanged", status)
	}
	if status := s.SetStorage(addr, key, core.Zero); status != core.StorageDeleted {
		t.Errorf("9->zero = %v, want StorageDeleted", status)
	}
	if got := s.GetStorage(addr, key); !got.IsZero() {
		t.Errorf("cleared slot should read back as zero, got %s", got)
	}
}

func TestRevertToSnapshot_UndoesBalanceNonceStorageAndCode(t *testing.T) {
	s := New()
	addr := core.Address{0x01}
	s.AddBalance(addr, core.NewU256(100))
	s.SetNonce(addr, 1)
	s.SetStorage(addr, core.NewU256(1), core.NewU256(42))
	s.SetCode(addr, core.Code{0x01, 0x02})

	snap := s.Snapshot()

	s.AddBalance(addr, core.NewU256(50))
	s.SetNonce(addr, 2)
	s.SetStorage(addr, core.NewU256(1), core.NewU256(99))
	s.SetCode(addr, core.Code{0x03})

	s.RevertToSnapshot(snap)

	if got := s.GetBalance(addr); !got.Eq(core.NewU256(100)) {
		t.Errorf("balance after revert = %s, want 100", got)
	}
	if got := s.GetNonce(addr); got != 1 {
		t.Errorf("nonce after revert = %d, want 1", got)
	}
	if got := s.GetStorage(addr, core.NewU256(1)); !got.Eq(core.NewU256(42)) {
		t.Errorf("storage after revert = %s, want 42", got)
	}
	if got := s.GetCode(addr); len(got) != 2 || got[0] != 0x01 {
		t.Errorf("code after revert = %v, want [0x01, 0x02]", got)
	}
}

func TestRevertToSnapshot_UndoesAccountCreation(t *testing.T) {
	s := New()
	addr := core.Address{0x02}
	snap := s.Snapshot()

	s.AddBalance(addr, core.NewU256(1)) // implicitly creates the account

	if !s.HasAccount(addr) {
		t.Fatal("account should exist before revert")
	}

	s.RevertToSnapshot(snap)

	if s.HasAccount(addr) {
		t.Error("account created after the snapshot should not survive a revert to before it")
	}
}

func TestCommit_IsANoOpAndAncestorCanStillRevertThroughIt(t *testing.T) {
	s := New()
	addr := core.Address{0x03}
	outer := s.Snapshot()

	s.AddBalance(addr, core.NewU256(10))
	inner := s.Snapshot()
	s.AddBalance(addr, core.NewU256(20))

	s.Commit(inner) // "child" commits; must not block the ancestor's later revert

	s.RevertToSnapshot(outer)

	if got := s.GetBalance(addr); !got.IsZero() {
		t.Errorf("balance after ancestor revert = %s, want 0 despite the intervening Commit", got)
	}
}

func TestSelfDestruct_CreditsBeneficiaryAndReturnsFirstTimeOnly(t *testing.T) {
	s := New()
	addr := core.Address{0x04}
	beneficiary := core.Address{0x05}
	s.AddBalance(addr, core.NewU256(30))

	firstTime := s.SelfDestruct(addr, beneficiary)
	if !firstTime {
		t.Error("first SelfDestruct call should report firstTime = true")
	}
	if got := s.GetBalance(addr); !got.IsZero() {
		t.Errorf("self-destructed account balance = %s, want 0", got)
	}
	if got := s.GetBalance(beneficiary); !got.Eq(core.NewU256(30)) {
		t.Errorf("beneficiary balance = %s, want 30", got)
	}
	if !s.HasSelfDestructed(addr) {
		t.Error("HasSelfDestructed should report true after SelfDestruct")
	}

	secondTime := s.SelfDestruct(addr, beneficiary)
	if secondTime {
		t.Error("second SelfDestruct call in the same transaction should report firstTime = false")
	}
}

func TestSelfDestruct_ToSelfKeepsBalance(t *testing.T) {
	s := New()
	addr := core.Address{0x06}
	s.AddBalance(addr, core.NewU256(7))

	s.SelfDestruct(addr, addr)

	if got := s.GetBalance(addr); !got.Eq(core.NewU256(7)) {
		t.Errorf("self-beneficiary balance = %s, want 7 (no burn)", got)
	}
}

func TestApplySelfDestructs_RemovesOnlyDestructedAccounts(t *testing.T) {
	s := New()
	gone := core.Address{0x07}
	stays := core.Address{0x08}
	s.AddBalance(gone, core.NewU256(1))
	s.AddBalance(stays, core.NewU256(1))

	s.SelfDestruct(gone, stays)
	s.ApplySelfDestructs()

	if s.HasAccount(gone) {
		t.Error("self-destructed account should be removed after ApplySelfDestructs")
	}
	if !s.HasAccount(stays) {
		t.Error("non-destructed account should survive ApplySelfDestructs")
	}
}

func TestIsEmpty_TrueForAbsentAndZeroedAccounts(t *testing.T) {
	s := New()
	addr := core.Address{0x09}

	if !s.IsEmpty(addr) {
		t.Error("an account that was never touched should be empty")
	}

	s.AddBalance(addr, core.NewU256(1))
	if s.IsEmpty(addr) {
		t.Error("an account with nonzero balance should not be empty")
	}
}
