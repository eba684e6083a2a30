package interpreter

import "github.com/evm-assure/evmcore/core"

// opCreate implements CREATE and CREATE2, per spec §4.5's contract-creation
// orchestration. The static check and the initcode-size/gas charge already
// happened in chargeDynamicGas; this derives the new address, transfers
// value, runs the initcode as a nested frame, and deposits the returned
// code.
func opCreate(f *frame, op OpCode) error {
	value, err := f.stack.pop()
	if err != nil {
		return err
	}
	offsetV, err := f.stack.pop()
	if err != nil {
		return err
	}
	sizeV, err := f.stack.pop()
	if err != nil {
		return err
	}
	var salt core.U256
	if op == CREATE2 {
		salt, err = f.stack.pop()
		if err != nil {
			return err
		}
	}
	offset, size, err := requireUint64Pair(offsetV, sizeV)
	if err != nil {
		return err
	}
	initcode := f.memory.loadRange(offset, size)

	if f.ctx.Depth+1 > core.MaxCallDepth {
		return f.stack.push(core.Zero)
	}

	sender := f.ctx.Callee
	nonce := f.world.GetNonce(sender)
	f.world.SetNonce(sender, nonce+1)

	var addr core.Address
	if op == CREATE2 {
		addr = create2Address(sender, salt, initcode)
	} else {
		addr = createAddress(sender, nonce)
	}

	if f.world.HasAccount(addr) && (f.world.GetCodeSize(addr) > 0 || f.world.GetNonce(addr) > 0) {
		return f.stack.push(core.Zero)
	}

	if !value.IsZero() && f.world.GetBalance(sender).Cmp(value) < 0 {
		return f.stack.push(core.Zero)
	}

	snapshot := f.world.Snapshot()
	txSnap := f.tx.snapshot()

	if !value.IsZero() {
		_ = f.world.SubBalance(sender, value)
		f.world.AddBalance(addr, value)
	}

	childGas := callForwardedGas(f.gas, f.gas, f.rev)
	if err := f.chargeGas(childGas); err != nil {
		return err
	}

	ctx := core.CallContext{
		Caller:   sender,
		Callee:   addr,
		Value:    value,
		Origin:   f.ctx.Origin,
		GasPrice: f.ctx.GasPrice,
		IsCreate: true,
		Depth:    f.ctx.Depth + 1,
	}
	result := f.vm.Run(Params{World: f.world, Env: f.env, Revision: f.rev, Context: ctx, Code: initcode, Gas: childGas}, f.tx)

	if f.rev == core.Frontier && !result.Success && result.Fault == core.OutOfGas {
		// Frontier's well-known CREATE-OOG quirk, fixed by Homestead: gas
		// exhausted while running initcode was not actually deducted.
		f.gas += childGas
	} else {
		f.gas += result.GasRemaining
	}

	if !result.Success {
		f.world.RevertToSnapshot(snapshot)
		f.tx.revertTo(txSnap)
		return f.stack.push(core.Zero)
	}

	depositCost := codeDepositGas(len(result.ReturnData))
	if f.gas >= depositCost {
		f.gas -= depositCost
		f.world.SetCode(addr, core.Code(result.ReturnData))
	} else if f.rules.createConsumesAllGasOnOOG {
		f.gas = 0
		f.world.RevertToSnapshot(snapshot)
		f.tx.revertTo(txSnap)
		return f.stack.push(core.Zero)
	}
	// Pre-Homestead: deposit cost that can't be afforded is simply waived;
	// no code is stored, so the new account keeps empty code and the
	// creation still succeeds with the remaining gas.

	return f.stack.push(addressToU256(addr))
}

// createAddress derives CREATE's new contract address as the low 20 bytes
// of keccak256(rlp([sender, nonce])), matching Ethereum's original address
// derivation rule.
func createAddress(sender core.Address, nonce uint64) core.Address {
	encoded := rlpEncodeList(rlpEncodeBytes(sender[:]), rlpEncodeUint(nonce))
	h := core.Keccak256(encoded)
	var a core.Address
	copy(a[:], h[12:])
	return a
}

// create2Address derives CREATE2's new contract address per EIP-1014:
// keccak256(0xff ++ sender ++ salt ++ keccak256(initcode))[12:].
func create2Address(sender core.Address, salt core.U256, initcode []byte) core.Address {
	initcodeHash := core.Keccak256(initcode)
	saltBytes := salt.Bytes32()
	buf := make([]byte, 0, 1+20+32+32)
	buf = append(buf, 0xff)
	buf = append(buf, sender[:]...)
	buf = append(buf, saltBytes[:]...)
	buf = append(buf, initcodeHash[:]...)
	h := core.Keccak256(buf)
	var a core.Address
	copy(a[:], h[12:])
	return a
}

// rlpEncodeBytes and rlpEncodeUint implement just enough of RLP to encode
// the (address, nonce) pair CREATE's address derivation needs — both items
// are always short enough for RLP's single-byte-length-prefix form.
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
