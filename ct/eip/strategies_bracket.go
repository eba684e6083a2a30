package eip

import (
	"github.com/evm-assure/evmcore/core"
	"github.com/evm-assure/evmcore/interpreter"
	"github.com/evm-assure/evmcore/state"
)

// deployer and target are fixed addresses used only to measure a probe's
// real gas cost in genGasExhaustion, the same disposable-account pattern
// ct/diff uses.
var (
	deployer = core.Address{0xDE, 0x70, 0x02}
	target   = core.Address{0xC0, 0xDE, 0x02}
)

// measure runs code under rev with gas and reports whether it succeeded
// and how much gas it actually consumed.
func measure(code []byte, rev core.Revision, gas core.Gas) (success bool, gasUsed core.Gas) {
	world := state.New()
	world.AddBalance(deployer, core.NewU256(1<<40))
	world.SetCode(target, core.Code(code))

	result := interpreter.New().RunStandalone(interpreter.Params{
		World:    world,
		Env:      &core.Environment{GasLimit: 30_000_000, BlockHashes: map[uint64]core.Hash{}},
		Revision: rev,
		Context: core.CallContext{
			Caller: deployer,
			Callee: target,
			Origin: deployer,
		},
		Code: code,
		Gas:  gas,
	})
	return result.Success, result.GasUsed
}

// genGasExhaustion implements GAS_EXHAUSTION: bracket the probe's real
// gas cost by measuring it once with ample gas, then re-running with
// exactly that amount, one gas short, and inside a tight backward-jump
// loop with a small fixed budget. Measuring rather than hand-deriving the
// cost from the gas schedule avoids the bracket silently drifting out of
// sync with gas.go's actual pricing (memory expansion in particular isn't
// a simple per-opcode constant).
func genGasExhaustion(e Entry) []TestCase {
	var cases []TestCase
	for _, op := range e.OpcodesAdded {
		probe := storeAndReturn(innerProbe(op))

		_, exact := measure(probe, e.IntroducedIn, 10_000_000)

		cases = append(cases, TestCase{
			Name:            name(e, GasExhaustion, 0) + "_exact",
			Strategy:        GasExhaustion,
			Bytecode:        probe,
			GasLimit:        exact,
			ExpectedSuccess: boolPtr(true),
			ExpectedGasUsed: gasPtr(exact),
			Description:     "runs the probe with exactly its measured gas cost",
		})

		oneShort := exact - 1
		cases = append(cases, TestCase{
			Name:            name(e, GasExhaustion, 1) + "_one_short",
			Strategy:        GasExhaustion,
			Bytecode:        probe,
			GasLimit:        oneShort,
			ExpectedSuccess: boolPtr(false),
			ExpectedGasUsed: gasPtr(oneShort), // an exceptional halt consumes the entire gas limit
			Description:     "runs the probe one gas short of its measured cost, expecting an out-of-gas fault",
		})

		// The loop body POPs the probe's result so the stack does not grow
		// across iterations and the loop ends by running out of gas.
		loop := loopForever(append(innerProbe(op), byte(interpreter.POP)))
		const loopBudget core.Gas = 50000
		cases = append(cases, TestCase{
			Name:            name(e, GasExhaustion, 2) + "_loop_until_oog",
			Strategy:        GasExhaustion,
			Bytecode:        loop,
			GasLimit:        loopBudget,
			ExpectedSuccess: boolPtr(false),
			ExpectedGasUsed: gasPtr(loopBudget),
			Description:     "repeats the probe in a backward-jump loop until it runs out of gas",
		})
	}
	return cases
}

// loopForever wraps body in JUMPDEST body JUMP(0), an infinite loop that
// only terminates via gas exhaustion — there is no other way to stop it,
// which is exactly the point of this strategy's third bracket case.
func loopForever(body []byte) []byte {
	code := []byte{byte(interpreter.JUMPDEST)}
	code = append(code, body...)
	code = append(code, byte(interpreter.PUSH1), 0x00, byte(interpreter.JUMP))
	return code
}

// genForkBoundary implements FORK_BOUNDARY: the same probe executed under
// introduced_in_fork-1 (expected fault: the opcode is undefined there)
// and introduced_in_fork (expected success). Since the two cases in this
// pair only differ in which fork runs them, TestCase carries an explicit
// Revision so a consumer knows which fork each half of the pair targets —
// spec §4.10's record omits this, but the strategy is meaningless without
// it, so this module adds the field rather than leaving it implicit in
// the test name.
func genForkBoundary(e Entry) []TestCase {
	if e.IntroducedIn == core.Frontier {
		return nil // no earlier fork to contrast against
	}
	before := e.IntroducedIn - 1

	var cases []TestCase
	for _, op := range e.OpcodesAdded {
		probe := storeAndReturn(innerProbe(op))

		cases = append(cases, TestCase{
			Name:            name(e, ForkBoundary, 0) + "_before",
			Strategy:        ForkBoundary,
			Bytecode:        probe,
			GasLimit:        100000,
			Revision:        revPtr(before),
			ExpectedSuccess: boolPtr(false),
			Description:     "the opcode this EIP adds is undefined on the prior fork",
		})
		cases = append(cases, TestCase{
			Name:            name(e, ForkBoundary, 1) + "_after",
			Strategy:        ForkBoundary,
			Bytecode:        probe,
			GasLimit:        100000,
			Revision:        revPtr(e.IntroducedIn),
			ExpectedSuccess: boolPtr(true),
			Description:     "the opcode this EIP adds is defined from its introducing fork on",
		})
	}
	return cases
}

func revPtr(r core.Revision) *core.Revision { return &r }

// genStackDepth implements STACK_DEPTH: pre-fill the stack to 1023 and
// 1024 entries with cheap dummy pushes, then invoke the probed opcode
// directly against those entries (rather than pushing fresh operands, the
// way innerProbe does), so the opcode's own pop/push arithmetic is what
// determines whether MaxStackDepth is crossed.
func genStackDepth(e Entry) []TestCase {
	var cases []TestCase
	for _, op := range e.OpcodesAdded {
		pops := opcodeArityFor(op)
		const pushes = 1 // every opcode this catalog adds pushes exactly one word

		for _, depth := range []int{1023, 1024} {
			body := make([]byte, 0, depth*2+8)
			for i := 0; i < depth; i++ {
				body = append(body, byte(interpreter.PUSH1), 0x01)
			}
			body = append(body, op, byte(interpreter.STOP))

			expectSuccess := depth-pops+pushes <= core.MaxStackDepth
			cases = append(cases, TestCase{
				Name:            name(e, StackDepth, depth),
				Strategy:        StackDepth,
				Bytecode:        body,
				GasLimit:        core.Gas(depth)*10 + 10000,
				ExpectedSuccess: boolPtr(expectSuccess),
				Description:     "pre-fills the stack before invoking the added opcode",
			})
		}
	}
	return cases
}
