// Package gen implements the bytecode generator described in spec §4.8:
// five strategies that lazily produce candidate EVM programs for the
// differential execution harness and the fuzzing-style exploration it
// drives. Every strategy is deterministic given a seed, using
// pgregory.net/rand the way the teacher's ct/gen package does throughout
// its own state generators, rather than math/rand.
package gen

import (
	"pgregory.net/rand"

	"github.com/evm-assure/evmcore/interpreter"
)

// Strategy names a bytecode generation strategy from spec §4.8.
type Strategy string

const (
	Random        Strategy = "random"
	Grammar       Strategy = "grammar"
	Boundary      Strategy = "boundary"
	OpcodeFocused Strategy = "opcode_focused"
	Sequence      Strategy = "sequence"
)

// Generator produces a deterministic, seeded stream of candidate programs.
// It wraps *rand.Rand rather than exposing it directly, so every
// generation strategy in this package shares one PRNG stream — the same
// discipline the teacher's gen.CodeGenerator applies.
type Generator struct {
	rnd *rand.Rand
}

// New creates a Generator seeded deterministically: the same seed and the
// same sequence of Next calls (same strategies, in the same order) always
// produce the same programs, satisfying spec §8's generator
// reproducibility property. Since all strategies draw from one stream, a
// different mix of strategies yields different programs.
func New(seed uint64) *Generator {
	return &Generator{rnd: rand.New(seed)}
}

// Next produces one candidate program using strategy.
func (g *Generator) Next(strategy Strategy) []byte {
	switch strategy {
	case Random:
		return g.random()
	case Grammar:
		return g.grammar()
	case Boundary:
		return g.boundaryProgram(g.rnd.Intn(len(boundaryPrograms)))
	case OpcodeFocused:
		return g.opcodeFocused(interpreter.OpCode(g.rnd.Intn(256)))
	case Sequence:
		return g.sequence(g.rnd.Intn(len(canonicalSequences)))
	default:
		return g.random()
	}
}

// random implements spec §4.8's "random" strategy: uniformly random bytes
// of length L in [1, 256].
func (g *Generator) random() []byte {
	length := 1 + g.rnd.Intn(256)
	code := make([]byte, length)
	g.rnd.Read(code)
	return code
}
