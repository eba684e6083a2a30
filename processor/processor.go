// Package processor implements the top-level state-transition function
// described in spec §4.7: validating a transaction, debiting intrinsic and
// gas-limit costs, running it through the interpreter, and settling
// refunds and gas payments at the end. It is the outermost layer — the
// one piece of the core that owns a core.WorldState for the duration of a
// call, per spec §5's concurrency note.
package processor

import (
	"fmt"

	"github.com/evm-assure/evmcore/core"
	"github.com/evm-assure/evmcore/crypto"
	"github.com/evm-assure/evmcore/interpreter"
)

// Processor applies transactions to a core.WorldState. It is safe for
// concurrent use across independent (tx, world) pairs, since it carries no
// mutable state of its own beyond the stateless Interpreter and
// SignatureVerifier collaborators.
type Processor struct {
	vm       *interpreter.Interpreter
	verifier crypto.SignatureVerifier
}

// New builds a Processor. verifier may be nil for transactions that set
// Sender directly instead of carrying a signature (the fuzzing and
// EIP-test-generation harnesses' usual mode).
func New(verifier crypto.SignatureVerifier) *Processor {
	return &Processor{vm: interpreter.New(), verifier: verifier}
}

// Apply executes tx against world under rev, per spec §4.7's six steps.
// A non-nil error means the transaction was rejected outright (step 1) and
// had no effect on world; a returned core.ExecutionResult with Success
// false still means the transaction was *included* (gas was spent, nonce
// incremented) but the call or creation itself failed.
func (p *Processor) Apply(tx *core.Transaction, env *core.Environment, world core.WorldState, rev core.Revision) (core.ExecutionResult, error) {
	intrinsic := intrinsicGas(tx, rev)

	if err := p.validate(tx, world, rev, intrinsic); err != nil {
		return core.ExecutionResult{}, err
	}

	gasLimitCost := tx.GasPrice.Mul(core.NewU256(uint64(tx.GasLimit)))
	if err := world.SubBalance(tx.Sender, gasLimitCost); err != nil {
		return core.ExecutionResult{}, &core.TxValidationError{Reason: "insufficient balance for gas_limit * gas_price"}
	}
	world.SetNonce(tx.Sender, tx.Nonce+1)

	ctx := core.CallContext{
		Caller:   tx.Sender,
		Value:    tx.Value,
		CallData: tx.Data,
		Origin:   tx.Sender,
		GasPrice: tx.GasPrice,
	}

	var result core.ExecutionResult
	if tx.To == nil {
		result = p.applyCreate(tx, env, world, rev, ctx, tx.GasLimit-intrinsic)
	} else {
		ctx.Callee = *tx.To
		result = p.vm.RunStandalone(interpreter.Params{
			World:    world,
			Env:      env,
			Revision: rev,
			Context:  ctx,
			Code:     world.GetCode(*tx.To),
			Gas:      tx.GasLimit - intrinsic,
		})
	}

	gasUsed := tx.GasLimit - result.GasRemaining
	refund := applyRefundCap(gasUsed, result.Refund)
	gasUsed -= refund
	result.GasUsed = gasUsed
	result.GasRemaining = tx.GasLimit - gasUsed

	unused := tx.GasLimit - gasUsed
	world.AddBalance(tx.Sender, tx.GasPrice.Mul(core.NewU256(uint64(unused))))
	world.AddBalance(env.Coinbase, tx.GasPrice.Mul(core.NewU256(uint64(gasUsed))))

	world.ApplySelfDestructs()

	return result, nil
}

// applyCreate runs a top-level contract-creation transaction. It follows
// interpreter/create.go's opCreate at the transaction boundary: the new
// account has no existing caller frame to charge, and the returned code is
// deposited at 200 gas per byte. An unaffordable deposit is waived on
// Frontier (the account keeps empty code) and, from Homestead on, fails the
// creation with an out-of-gas result (a rejected top-level creation has no
// sub-call to push 0 onto). No address-collision check is made here.
func (p *Processor) applyCreate(tx *core.Transaction, env *core.Environment, world core.WorldState, rev core.Revision, ctx core.CallContext, gas core.Gas) core.ExecutionResult {
	addr := deriveCreateAddress(tx.Sender, tx.Nonce)
	ctx.Callee = addr
	ctx.IsCreate = true

	snapshot := world.Snapshot()
	if !tx.Value.IsZero() && world.GetBalance(tx.Sender).Cmp(tx.Value) >= 0 {
		_ = world.SubBalance(tx.Sender, tx.Value)
		world.AddBalance(addr, tx.Value)
	}

	result := p.vm.RunStandalone(interpreter.Params{
		World:    world,
		Env:      env,
		Revision: rev,
		Context:  ctx,
		Code:     tx.Data,
		Gas:      gas,
	})
	if result.Success {
		deposit := interpreter.GasCreateDataByte * core.Gas(len(result.ReturnData))
		if result.GasRemaining >= deposit {
			result.GasRemaining -= deposit
			world.SetCode(addr, core.Code(result.ReturnData))
		} else if rev >= core.Homestead {
			world.RevertToSnapshot(snapshot)
			return core.ExecutionResult{Fault: core.OutOfGas}
		}
		result.CreatedAddress = &addr
	}
	return result
}

func (p *Processor) validate(tx *core.Transaction, world core.WorldState, rev core.Revision, intrinsic core.Gas) error {
	if tx.SigR != nil {
		if p.verifier == nil {
			return &core.TxValidationError{Reason: "no signature verifier configured"}
		}
		if rev >= core.Homestead && !crypto.IsLowS(tx.SigS) {
			return &core.TxValidationError{Reason: "high-s signature rejected post-Homestead"}
		}
		sender, err := p.verifier.Ecrecover(tx.Hash, tx.SigV, tx.SigR, tx.SigS)
		if err != nil {
			return &core.TxValidationError{Reason: fmt.Sprintf("signature recovery failed: %v", err)}
		}
		tx.Sender = sender
	}

	if tx.Nonce != world.GetNonce(tx.Sender) {
		return &core.TxValidationError{Reason: "nonce mismatch"}
	}

	required := tx.GasPrice.Mul(core.NewU256(uint64(tx.GasLimit))).Add(tx.Value)
	if world.GetBalance(tx.Sender).Cmp(required) < 0 {
		return &core.TxValidationError{Reason: "insufficient balance for gas_limit*gas_price + value"}
	}

	if intrinsic > tx.GasLimit {
		return &core.TxValidationError{Reason: "intrinsic gas exceeds gas_limit"}
	}
	return nil
}

// intrinsicGas implements spec §4.7 step 3.
func intrinsicGas(tx *core.Transaction, rev core.Revision) core.Gas {
	const (
		txBaseGas        core.Gas = 21000
		txDataZeroGas    core.Gas = 4
		txDataNonZeroGas core.Gas = 16
		txCreateGas      core.Gas = 32000
		txInitcodeWord   core.Gas = 2
	)

	gas := txBaseGas
	var zero, nonzero uint64
	for _, b := range tx.Data {
		if b == 0 {
			zero++
		} else {
			nonzero++
		}
	}
	gas += txDataZeroGas * core.Gas(zero)
	gas += txDataNonZeroGas * core.Gas(nonzero)

	if tx.To == nil {
		gas += txCreateGas
		if rev == core.Shanghai {
			gas += txInitcodeWord * core.Gas((uint64(len(tx.Data))+31)/32)
		}
	}
	return gas
}

// applyRefundCap implements spec §4.7 step 5's cap: at most half of gas
// used may be refunded.
func applyRefundCap(gasUsed, refund core.Gas) core.Gas {
	max := gasUsed / 2
	if refund > max {
		return max
	}
	return refund
}

// deriveCreateAddress is the transaction-level counterpart of
// interpreter/create.go's createAddress, duplicated here rather than
// exported from interpreter to keep that package's address derivation
// private to its own CREATE/CREATE2 handling — the two are grounded in the
// same rule (spec §4.5) but belong to different layers.
func deriveCreateAddress(sender core.Address, nonce uint64) core.Address {
	encoded := rlpEncodeList(rlpEncodeBytes(sender[:]), rlpEncodeUint(nonce))
	h := core.Keccak256(encoded)
	var a core.Address
	copy(a[:], h[12:])
	return a
}

func rlpEncodeBytes(data []byte) []byte {
	if len(data) == 1 && data[0] < 0x80 {
		return data
	}
	return append([]byte{0x80 + byte(len(data))}, data...)
}

func rlpEncodeUint(v uint64) []byte {
	var buf [8]byte
	n := 8
	for n > 0 && v > 0 {
		n--
		buf[n] = byte(v)
		v >>= 8
	}
	return rlpEncodeBytes(buf[n:])
}

func rlpEncodeList(items ...[]byte) []byte {
	var payload []byte
	for _, item := range items {
		payload = append(payload, item...)
	}
	return append([]byte{0xC0 + byte(len(payload))}, payload...)
}
