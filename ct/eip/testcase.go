package eip

import "github.com/evm-assure/evmcore/core"

// TestCase is the record spec §4.10 specifies: (name, strategy, bytecode,
// gas_limit, expected_success, expected_gas_used, description).
// ExpectedSuccess and ExpectedGasUsed are pointers because both are
// optional per spec §6's fixture format ("expected_gas_used: integer or
// null") — a strategy that cannot predict an exact outcome (BOUNDARY,
// OPCODE_INTERACTION) leaves them nil rather than guessing.
type TestCase struct {
	Name            string
	Strategy        Strategy
	Bytecode        []byte
	GasLimit        core.Gas
	ExpectedSuccess *bool
	ExpectedGasUsed *core.Gas
	Description     string

	// Revision pins which fork a case must run under. Only FORK_BOUNDARY
	// sets it; every other strategy leaves it nil, meaning "the EIP's own
	// introduced_in_fork, or any fork if the caller doesn't care" — see
	// DESIGN.md.
	Revision *core.Revision
}

// Generate produces every TestCase the requested strategies yield for
// entry, per spec §4.10. Strategies absent from strategies are skipped
// entirely rather than erroring, since not every EIP is interesting under
// every strategy (an EIP that adds no opcodes has nothing for
// OPCODE_INTERACTION or CALL_CONTEXT to wrap).
func Generate(e Entry, strategies []Strategy) []TestCase {
	var cases []TestCase
	for _, s := range strategies {
		switch s {
		case Boundary:
			cases = append(cases, genBoundary(e)...)
		case OpcodeInteraction:
			cases = append(cases, genOpcodeInteraction(e)...)
		case CallContext:
			cases = append(cases, genCallContext(e)...)
		case GasExhaustion:
			cases = append(cases, genGasExhaustion(e)...)
		case ForkBoundary:
			cases = append(cases, genForkBoundary(e)...)
		case StackDepth:
			cases = append(cases, genStackDepth(e)...)
		}
	}
	return cases
}

func boolPtr(b bool) *bool { return &b }
func gasPtr(g core.Gas) *core.Gas { return &g }
