package interpreter

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/evm-assure/evmcore/core"
)

// jumpdestSet is a bitset of valid JUMPDEST positions within a code blob,
// computed by a single linear scan that skips the immediate-data region of
// every PUSHn, per spec §4.5. Validity depends only on the code bytes, not
// on execution (spec §8's stability invariant).
type jumpdestSet struct {
	bits []uint64
}

func analyzeJumpdests(code []byte) *jumpdestSet {
	js := &jumpdestSet{bits: make([]uint64, (len(code)+63)/64)}
	for pc := 0; pc < len(code); {
		op := OpCode(code[pc])
		if op == JUMPDEST {
			js.bits[pc/64] |= 1 << uint(pc%64)
			pc++
			continue
		}
		pc += op.PushWidth()
	}
	return js
}

func (js *jumpdestSet) isValid(pc int) bool {
	if pc < 0 || pc/64 >= len(js.bits) {
		return false
	}
	return js.bits[pc/64]&(1<<uint(pc%64)) != 0
}

// jumpdestCacheSize bounds the number of distinct code blobs whose
// JUMPDEST analysis is memoized. Fixed at a modest entry count rather
// than a byte budget (the teacher's lfvm.Converter sizes its own cache in
// bytes, since it caches full instruction streams) because a jumpdestSet
// is a small bitset, not a converted program.
const jumpdestCacheSize = 4096

// jumpdestCache memoizes jumpdestSet by code hash: deployed contracts are
// immutable for the lifetime of a transaction, so the analysis only needs
// to run once per distinct code blob (spec §9 design note). Bounded by an
// LRU rather than an unbounded map, the same discipline
// lfvm.Converter.cache applies to its own code-conversion cache, so a
// long-running differential or fuzzing run can't grow this cache without
// limit across an unbounded number of distinct generated programs.
type jumpdestCache struct {
	cache *lru.Cache[core.Hash, *jumpdestSet]
}

func newJumpdestCache() *jumpdestCache {
	cache, err := lru.New[core.Hash, *jumpdestSet](jumpdestCacheSize)
	if err != nil {
		// Only a non-positive size makes lru.New fail, and
		// jumpdestCacheSize is a positive compile-time constant.
		panic(err)
	}
	return &jumpdestCache{cache: cache}
}

func (c *jumpdestCache) get(code []byte) *jumpdestSet {
	hash := core.Keccak256(code)
	if js, ok := c.cache.Get(hash); ok {
		return js
	}
	js := analyzeJumpdests(code)
	c.cache.Add(hash, js)
	return js
}
