// Package state implements core.WorldState as an in-memory account map with
// a journaling snapshot/revert discipline, per the design note in spec §9:
// an append-only log of reversible mutations, where a checkpoint is simply
// a log position. No Merkle Patricia trie commitment is modeled — accounts
// live in a plain Go map, matching the reference-EVM Non-goal in spec §1.
package state

import (
	"github.com/evm-assure/evmcore/core"
)

// undo reverses a single previously applied mutation.
type undo func(*State)

// State is the concrete in-memory core.WorldState.
type State struct {
	accounts    map[core.Address]*core.Account
	destructed  map[core.Address]bool
	journal     []undo
}

// New creates an empty world state.
func New() *State {
	return &State{
		accounts:   map[core.Address]*core.Account{},
		destructed: map[core.Address]bool{},
	}
}

func (s *State) record(u undo) {
	s.journal = append(s.journal, u)
}

func (s *State) getOrCreate(addr core.Address) *core.Account {
	a, ok := s.accounts[addr]
	if !ok {
		a = &core.Account{Storage: map[core.U256]core.U256{}}
		s.accounts[addr] = a
		s.record(func(st *State) { delete(st.accounts, addr) })
	}
	return a
}

func (s *State) HasAccount(addr core.Address) bool {
	_, ok := s.accounts[addr]
	return ok
}

func (s *State) IsEmpty(addr core.Address) bool {
	a, ok := s.accounts[addr]
	if !ok {
		return true
	}
	return a.IsEmpty()
}

func (s *State) GetNonce(addr core.Address) uint64 {
	a, ok := s.accounts[addr]
	if !ok {
		return 0
	}
	return a.Nonce
}

func (s *State) SetNonce(addr core.Address, nonce uint64) {
	a := s.getOrCreate(addr)
	old := a.Nonce
	a.Nonce = nonce
	s.record(func(st *State) { st.accounts[addr].Nonce = old })
}

func (s *State) GetBalance(addr core.Address) core.U256 {
	a, ok := s.accounts[addr]
	if !ok {
		return core.Zero
	}
	return a.Balance
}

func (s *State) AddBalance(addr core.Address, amount core.U256) {
	a := s.getOrCreate(addr)
	old := a.Balance
	a.Balance = a.Balance.Add(amount)
	s.record(func(st *State) { st.accounts[addr].Balance = old })
}

func (s *State) SubBalance(addr core.Address, amount core.U256) error {
	a := s.getOrCreate(addr)
	if a.Balance.Cmp(amount) < 0 {
		return core.ErrInsufficientBalance
	}
	old := a.Balance
	a.Balance = a.Balance.Sub(amount)
	s.record(func(st *State) { st.accounts[addr].Balance = old })
	return nil
}

func (s *State) GetCode(addr core.Address) core.Code {
	a, ok := s.accounts[addr]
	if !ok {
		return nil
	}
	return a.Code
}

func (s *State) SetCode(addr core.Address, code core.Code) {
	a := s.getOrCreate(addr)
	old := a.Code
	a.Code = code
	s.record(func(st *State) { st.accounts[addr].Code = old })
}

func (s *State) GetCodeHash(addr core.Address) core.Hash {
	a, ok := s.accounts[addr]
	if !ok || len(a.Code) == 0 {
		return core.Hash{}
	}
	return a.Code.Hash()
}

func (s *State) GetCodeSize(addr core.Address) int {
	a, ok := s.accounts[addr]
	if !ok {
		return 0
	}
	return len(a.Code)
}

func (s *State) GetStorage(addr core.Address, key core.U256) core.U256 {
	a, ok := s.accounts[addr]
	if !ok {
		return core.Zero
	}
	return a.Storage[key]
}

func (s *State) SetStorage(addr core.Address, key, value core.U256) core.StorageStatus {
	a := s.getOrCreate(addr)
	old := a.Storage[key]
	status := classifyStorageChange(old, value)

	if value.IsZero() {
		delete(a.Storage, key)
	} else {
		a.Storage[key] = value
	}

	s.record(func(st *State) {
		tgt := st.accounts[addr]
		if old.IsZero() {
			delete(tgt.Storage, key)
		} else {
			tgt.Storage[key] = old
		}
	})
	return status
}

func classifyStorageChange(old, updated core.U256) core.StorageStatus {
	switch {
	case old.IsZero() && updated.IsZero():
		return core.StorageUnchanged
	case old.IsZero():
		return core.StorageAdded
	case updated.IsZero():
		return core.StorageDeleted
	case old.Eq(updated):
		return core.StorageUnchanged
	default:
		return core.StorageModified
	}
}

func (s *State) SelfDestruct(addr, beneficiary core.Address) bool {
	firstTime := !s.destructed[addr]
	balance := s.GetBalance(addr)
	if !balance.IsZero() {
		_ = s.SubBalance(addr, balance)
		if beneficiary != addr {
			s.AddBalance(beneficiary, balance)
		} else {
			s.AddBalance(addr, balance)
		}
	}

	wasDestructed := s.destructed[addr]
	s.destructed[addr] = true
	s.record(func(st *State) { st.destructed[addr] = wasDestructed })

	return firstTime
}

func (s *State) HasSelfDestructed(addr core.Address) bool {
	return s.destructed[addr]
}

// Snapshot returns the current journal length as an opaque checkpoint.
func (s *State) Snapshot() core.SnapshotID {
	return core.SnapshotID(len(s.journal))
}

// RevertToSnapshot undoes every mutation recorded since id, in reverse
// order, and truncates the journal. This is the revert side of spec §3's
// snapshot/restore discipline.
func (s *State) RevertToSnapshot(id core.SnapshotID) {
	for i := len(s.journal) - 1; i >= int(id); i-- {
		s.journal[i](s)
	}
	s.journal = s.journal[:id]
}

// Commit marks id as no longer needed for a revert from the caller's own
// perspective. It intentionally leaves the journal untouched: entries
// since id must stay available in case an ancestor still further up the
// call stack later reverts to a snapshot taken before id, which must undo
// this frame's mutations too. A successful frame's effects are already
// visible to its parent simply because the underlying account map was
// mutated in place; Commit exists only to satisfy the symmetrical
// snapshot/revert/commit contract of spec §4.2.
func (s *State) Commit(core.SnapshotID) {}

// ApplySelfDestructs zeroes out every account scheduled for destruction in
// the current transaction, per spec §4.7 step 6. It is not journaled: it is
// only ever invoked once, at the very end of a top-level transaction, after
// which no further revert is possible.
func (s *State) ApplySelfDestructs() {
	for addr, destructed := range s.destructed {
		if !destructed {
			continue
		}
		delete(s.accounts, addr)
	}
	s.destructed = map[core.Address]bool{}
}
