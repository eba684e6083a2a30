// Package diff implements the differential execution harness described in
// spec §4.9: run the same candidate bytecode under two fork revisions
// against identical initial state, and classify any observed difference
// that isn't already accounted for by a known, intentional semantic change
// between those forks.
package diff

import (
	"github.com/evm-assure/evmcore/core"
	"github.com/evm-assure/evmcore/interpreter"
	"github.com/evm-assure/evmcore/state"
)

// deployer and contract are the two fixed addresses the harness uses for
// every run: a disposable caller with enough balance to cover value
// transfers, and the account the candidate bytecode executes as. Fixing
// both addresses across every run, rather than deriving them from a real
// transaction's nonce, keeps the comparison free of address-allocation
// noise that has nothing to do with the candidate itself.
var (
	deployer = core.Address{0xDE, 0x70, 0x01}
	contract = core.Address{0xC0, 0xDE, 0x01}
)

// Candidate is one program to run through the harness, per spec §4.9.
type Candidate struct {
	Code     []byte
	CallData []byte
	Value    core.U256
	GasLimit core.Gas
}

// Trace is the observable outcome of running a Candidate on one fork: the
// execution result itself plus a minimal post-state projection limited to
// the one account the harness controls, since that is the only account a
// divergence between forks could plausibly be attributed to.
type Trace struct {
	Success    bool
	GasUsed    core.Gas
	ReturnData []byte
	Logs       []core.Log
	Fault      core.FaultKind
	Balance    core.U256
	Nonce      uint64
	Storage    map[core.U256]core.U256
}

// Category classifies the dimension along which two Traces disagree, per
// spec §4.9.
type Category string

const (
	SuccessMismatch    Category = "success_mismatch"
	ReturnDataMismatch Category = "return_data_mismatch"
	GasMismatch        Category = "gas_mismatch"
	LogsMismatch       Category = "logs_mismatch"
	StateMismatch      Category = "state_mismatch"
)

// Divergence reports one observed disagreement between ForkA and ForkB's
// execution of the same Candidate.
type Divergence struct {
	Category Category
	ForkA    core.Revision
	ForkB    core.Revision
	TraceA   Trace
	TraceB   Trace
	Detail   string
}

// env is the minimal, fixed block environment every run uses. Block
// number and timestamp are non-zero so BLOCKHASH/TIMESTAMP opcodes have
// something other than the zero value to return, which would otherwise
// mask a divergence in how a fork handles those opcodes.
func env() *core.Environment {
	return &core.Environment{
		BlockNumber: 1_000_000,
		Timestamp:   1_700_000_000,
		Coinbase:    core.Address{0xC0, 0x13, 0xBA, 0x5E},
		GasLimit:    30_000_000,
		ChainID:     core.NewU256(1),
		BlockHashes: map[uint64]core.Hash{},
	}
}

// run executes candidate under rev against a fresh world state seeded
// only with the deployer's balance and the contract's code, then projects
// the resulting Trace.
func run(candidate Candidate, rev core.Revision) Trace {
	world := state.New()
	world.AddBalance(deployer, core.NewU256(1<<62))
	world.SetCode(contract, core.Code(candidate.Code))

	vm := interpreter.New()
	result := vm.RunStandalone(interpreter.Params{
		World:    world,
		Env:      env(),
		Revision: rev,
		Context: core.CallContext{
			Caller:   deployer,
			Callee:   contract,
			Value:    candidate.Value,
			CallData: candidate.CallData,
			Origin:   deployer,
			GasPrice: core.NewU256(1),
		},
		Code: candidate.Code,
		Gas:  candidate.GasLimit,
	})

	return Trace{
		Success:    result.Success,
		GasUsed:    result.GasUsed,
		ReturnData: result.ReturnData,
		Logs:       result.Logs,
		Fault:      result.Fault,
		Balance:    world.GetBalance(contract),
		Nonce:      world.GetNonce(contract),
		Storage:    snapshotStorage(world, contract),
	}
}

// snapshotStorage reads back every slot the candidate's known boundary
// values might occupy. The state package keeps no iterable storage index,
// so the harness probes the slots a differential candidate could
// plausibly have written: small integer keys, which covers both the
// generator's canonical sequences and hand-written EIP test cases.
func snapshotStorage(world *state.State, addr core.Address) map[core.U256]core.U256 {
	const probedSlots = 16
	storage := make(map[core.U256]core.U256, probedSlots)
	for i := uint64(0); i < probedSlots; i++ {
		key := core.NewU256(i)
		if v := world.GetStorage(addr, key); !v.IsZero() {
			storage[key] = v
		}
	}
	return storage
}

// Execute runs candidate under forkA and forkB and returns the first
// divergence found that the expected-divergence table doesn't already
// excuse, or nil if the two forks agree (up to excused differences).
func Execute(candidate Candidate, forkA, forkB core.Revision) *Divergence {
	traceA := run(candidate, forkA)
	traceB := run(candidate, forkB)
	return compare(candidate, forkA, forkB, traceA, traceB)
}

func compare(candidate Candidate, forkA, forkB core.Revision, a, b Trace) *Divergence {
	if a.Success != b.Success {
		if !expected(forkA, forkB, SuccessMismatch, candidate.Code) {
			return &Divergence{Category: SuccessMismatch, ForkA: forkA, ForkB: forkB, TraceA: a, TraceB: b,
				Detail: "success differs between forks"}
		}
	}

	if string(a.ReturnData) != string(b.ReturnData) {
		if !expected(forkA, forkB, ReturnDataMismatch, candidate.Code) {
			return &Divergence{Category: ReturnDataMismatch, ForkA: forkA, ForkB: forkB, TraceA: a, TraceB: b,
				Detail: "return data differs between forks"}
		}
	}

	if a.GasUsed != b.GasUsed {
		if !expected(forkA, forkB, GasMismatch, candidate.Code) {
			return &Divergence{Category: GasMismatch, ForkA: forkA, ForkB: forkB, TraceA: a, TraceB: b,
				Detail: "gas used differs between forks"}
		}
	}

	if !logsEqual(a.Logs, b.Logs) {
		if !expected(forkA, forkB, LogsMismatch, candidate.Code) {
			return &Divergence{Category: LogsMismatch, ForkA: forkA, ForkB: forkB, TraceA: a, TraceB: b,
				Detail: "logs differ between forks"}
		}
	}

	if !stateEqual(a, b) {
		if !expected(forkA, forkB, StateMismatch, candidate.Code) {
			return &Divergence{Category: StateMismatch, ForkA: forkA, ForkB: forkB, TraceA: a, TraceB: b,
				Detail: "post-state differs between forks"}
		}
	}

	return nil
}

func logsEqual(a, b []core.Log) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Address != b[i].Address || string(a[i].Data) != string(b[i].Data) || len(a[i].Topics) != len(b[i].Topics) {
			return false
		}
		for j := range a[i].Topics {
			if !a[i].Topics[j].Eq(b[i].Topics[j]) {
				return false
			}
		}
	}
	return true
}

func stateEqual(a, b Trace) bool {
	if !a.Balance.Eq(b.Balance) || a.Nonce != b.Nonce {
		return false
	}
	if len(a.Storage) != len(b.Storage) {
		return false
	}
	for k, v := range a.Storage {
		if bv, ok := b.Storage[k]; !ok || !v.Eq(bv) {
			return false
		}
	}
	return true
}
