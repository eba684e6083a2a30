package interpreter

import "github.com/evm-assure/evmcore/core"

// opLog implements LOG0..LOG4. The static-context check and gas charge
// already happened in chargeDynamicGas; this only pops the operands, reads
// the data region, and appends to the transaction's log sequence.
func opLog(f *frame, numTopics int) error {
	offsetV, err := f.stack.pop()
	if err != nil {
		return err
	}
	sizeV, err := f.stack.pop()
	if err != nil {
		return err
	}
	topics := make([]core.U256, numTopics)
	for i := 0; i < numTopics; i++ {
		topics[i], err = f.stack.pop()
		if err != nil {
			return err
		}
	}
	offset, size, err := requireUint64Pair(offsetV, sizeV)
	if err != nil {
		return err
	}
	data := f.memory.loadRange(offset, size)
	f.tx.emitLog(core.Log{
		Address: f.ctx.Callee,
		Topics:  topics,
		Data:    data,
	})
	return nil
}
