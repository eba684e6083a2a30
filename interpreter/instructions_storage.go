package interpreter

// opSload implements SLOAD: pop a key, push world.GetStorage(callee, key).
func opSload(f *frame) error {
	key, err := f.stack.pop()
	if err != nil {
		return err
	}
	return f.stack.push(f.world.GetStorage(f.ctx.Callee, key))
}

// opSstore implements SSTORE. The static-context check and the cost/refund
// computation already happened in chargeDynamicGas against the
// pre-mutation value; here we only need to apply the write.
func opSstore(f *frame) error {
	key, err := f.stack.pop()
	if err != nil {
		return err
	}
	value, err := f.stack.pop()
	if err != nil {
		return err
	}
	f.world.SetStorage(f.ctx.Callee, key, value)
	return nil
}
