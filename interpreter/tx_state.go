package interpreter

import "github.com/evm-assure/evmcore/core"

// txState tracks the two pieces of per-transaction state that live outside
// core.WorldState but still need frame-scoped revert semantics: the
// accumulated gas refund counter, and the append-only log sequence (spec
// §3's "logs ... discarded on revert of the emitting frame or any
// ancestor"). It journals itself the same way state.State does, so a
// frame's snapshot/revert always covers both world state and this.
type txState struct {
	refund core.Gas
	logs   []core.Log
}

type txSnapshot struct {
	refund  core.Gas
	logLen  int
}

func newTxState() *txState {
	return &txState{}
}

func (t *txState) snapshot() txSnapshot {
	return txSnapshot{refund: t.refund, logLen: len(t.logs)}
}

func (t *txState) revertTo(s txSnapshot) {
	t.refund = s.refund
	t.logs = t.logs[:s.logLen]
}

func (t *txState) addRefund(g core.Gas) {
	t.refund += g
}

func (t *txState) emitLog(l core.Log) {
	t.logs = append(t.logs, l)
}
