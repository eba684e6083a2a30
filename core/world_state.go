package core

import "math/big"

// Account is the tuple described in spec §3: nonce, balance, code, and
// persistent storage. Storage values of zero are indistinguishable from
// absent, so Storage only ever holds non-zero entries.
type Account struct {
	Nonce   uint64
	Balance U256
	Code    Code
	Storage map[U256]U256
}

// IsEmpty reports whether the account is indistinguishable from a
// never-existing account: zero nonce, zero balance, no code.
func (a *Account) IsEmpty() bool {
	return a.Nonce == 0 && a.Balance.IsZero() && len(a.Code) == 0
}

func (a *Account) clone() *Account {
	c := &Account{
		Nonce:   a.Nonce,
		Balance: a.Balance,
		Code:    append(Code(nil), a.Code...),
	}
	if a.Storage != nil {
		c.Storage = make(map[U256]U256, len(a.Storage))
		for k, v := range a.Storage {
			c.Storage[k] = v
		}
	}
	return c
}

// StorageStatus classifies the effect of an SSTORE on a slot, needed to
// price the operation and to schedule refunds (spec §4.4).
type StorageStatus int

const (
	StorageUnchanged StorageStatus = iota
	StorageAdded                   // 0 -> Z
	StorageDeleted                 // X -> 0
	StorageModified                // X -> Z
)

// SnapshotID identifies a point in a WorldState's journal that RevertTo or
// Commit can later refer back to.
type SnapshotID int

// WorldState is the mapping Address -> Account described in spec §3, with
// the snapshot/revert discipline required by sub-calls and CREATE.
type WorldState interface {
	HasAccount(Address) bool
	IsEmpty(Address) bool

	GetNonce(Address) uint64
	SetNonce(Address, uint64)

	GetBalance(Address) U256
	AddBalance(Address, U256)
	// SubBalance fails with ErrInsufficientBalance if it would underflow.
	SubBalance(Address, U256) error

	GetCode(Address) Code
	SetCode(Address, Code)
	GetCodeHash(Address) Hash
	GetCodeSize(Address) int

	GetStorage(Address, U256) U256
	SetStorage(Address, U256, U256) StorageStatus

	// SelfDestruct schedules addr for destruction at the end of the current
	// transaction, transferring its balance to beneficiary immediately.
	// Returns true the first time addr is scheduled in this transaction.
	SelfDestruct(addr, beneficiary Address) bool
	HasSelfDestructed(Address) bool

	Snapshot() SnapshotID
	RevertToSnapshot(SnapshotID)
	// Commit accepts the mutations since id without undoing them. The
	// journal is left intact, so a revert to any snapshot taken before id
	// still undoes them.
	Commit(SnapshotID)

	// ApplySelfDestructs zeroes out every account scheduled for destruction
	// in the current transaction (spec §4.7 step 6).
	ApplySelfDestructs()
}

const ErrInsufficientBalance = ConstError("insufficient balance")

// Environment is the block-level immutable context described in spec §3.
type Environment struct {
	BlockNumber uint64
	Timestamp   uint64
	Coinbase    Address
	Difficulty  U256
	GasLimit    Gas
	BaseFee     U256
	ChainID     U256
	BlockHashes map[uint64]Hash
}

func (e Environment) GetBlockHash(number uint64) Hash {
	return e.BlockHashes[number]
}

// Transaction is described in spec §3. To == nil signals contract creation,
// with Data interpreted as initcode.
//
// Sender is normally derived from the signature (SigR/SigS/SigV) by the
// processor's SignatureVerifier collaborator; test harnesses that construct
// transactions directly (the bytecode fuzzer, the EIP test generator) may
// instead leave the signature fields nil and set Sender explicitly, since
// they have no need to forge a valid ECDSA signature just to pick a caller
// address.
type Transaction struct {
	Sender   Address
	To       *Address
	Value    U256
	Data     []byte
	GasLimit Gas
	GasPrice U256
	Nonce    uint64

	Hash Hash
	SigV byte
	SigR *big.Int
	SigS *big.Int
}

// Log is an append-only record emitted by LOGn, described in spec §3.
type Log struct {
	Address Address
	Topics  []U256
	Data    []byte
}

// ExecutionResult is described in spec §3.
type ExecutionResult struct {
	Success        bool
	GasUsed        Gas
	GasRemaining   Gas
	ReturnData     []byte
	Logs           []Log
	Fault          FaultKind
	CreatedAddress *Address

	// Refund is the accumulated, not-yet-capped gas refund counter for the
	// whole transaction this frame belongs to. Only meaningful on the
	// result of a top-level call (RunStandalone); sub-call results leave it
	// zero, since refunds are transaction-scoped, not frame-scoped, and the
	// state-transition preamble only ever reads it off the outermost result.
	Refund Gas
}
