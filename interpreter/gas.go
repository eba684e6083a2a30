package interpreter

import "github.com/evm-assure/evmcore/core"

// Gas cost categories from spec §6.
const (
	GasZero       core.Gas = 0
	GasBase       core.Gas = 2
	GasVeryLow    core.Gas = 3
	GasLow        core.Gas = 5
	GasMid        core.Gas = 8
	GasHigh       core.Gas = 10
	GasJumpdest   core.Gas = 1
	GasExtAccess  core.Gas = 50 // BALANCE, EXTCODESIZE, EXTCODEHASH, SLOAD
	GasSha3Base   core.Gas = 30
	GasSha3Word   core.Gas = 6
	GasCopyBase   core.Gas = 3
	GasCopyWord   core.Gas = 3
	GasExtCopyBase       core.Gas = 20
	GasLogBase           core.Gas = 375
	GasLogTopic           core.Gas = 375
	GasLogDataByte        core.Gas = 8
	GasSstoreSet          core.Gas = 20000
	GasSstoreReset        core.Gas = 5000
	GasSstoreClearRefund  core.Gas = 15000
	GasSelfdestructFrontier  core.Gas = 0
	GasSelfdestructHomestead core.Gas = 5000
	GasSelfdestructRefund    core.Gas = 24000
	GasCallValueTransfer     core.Gas = 9000
	GasCallNewAccount        core.Gas = 25000
	GasCallStipend           core.Gas = 2300
	GasCallBaseFrontier      core.Gas = 40
	GasCallBaseHomestead     core.Gas = 700
	GasCreateBase            core.Gas = 32000
	GasCreateDataByte        core.Gas = 200
	GasExpBaseFrontier       core.Gas = 10
	GasExpBaseHomestead      core.Gas = 50
	GasInitcodeWord          core.Gas = 2

	// MaxInitcodeSize is the Shanghai initcode length limit (EIP-3860).
	MaxInitcodeSize = 49152
)

// words returns ceil(size/32).
func words(size uint64) uint64 {
	return (size + 31) / 32
}

// memoryExpansionCost is the cost(s) function of spec §4.3: for a memory
// size of s bytes, cost(s) = 3*words + words^2/512 (integer division).
func memoryExpansionCost(size uint64) core.Gas {
	w := words(size)
	return core.Gas(3*w + (w*w)/512)
}

// memoryExpansionDelta is the charge for growing memory from oldSize to
// newSize bytes. A zero-length access never expands memory, so callers
// must only invoke this when newSize > oldSize.
func memoryExpansionDelta(oldSize, newSize uint64) core.Gas {
	if newSize <= oldSize {
		return 0
	}
	return memoryExpansionCost(newSize) - memoryExpansionCost(oldSize)
}

// expGas prices EXP per spec §4.4: 10 + rate*byteLen(exponent), where the
// per-byte rate is 10 on Frontier (its historical rate) and 50 from
// Homestead onward (see DESIGN.md Open Question #2).
func expGas(exponent core.U256, rev core.Revision) core.Gas {
	rate := GasExpBaseHomestead
	if rev == core.Frontier {
		rate = GasExpBaseFrontier
	}
	return 10 + rate*core.Gas(exponent.ByteLen())
}

func sha3Gas(size uint64) core.Gas {
	return GasSha3Base + GasSha3Word*core.Gas(words(size))
}

func copyGas(size uint64) core.Gas {
	return GasCopyBase + GasCopyWord*core.Gas(words(size))
}

func extCodeCopyGas(size uint64) core.Gas {
	return GasExtCopyBase + GasCopyWord*core.Gas(words(size))
}

func logGas(numTopics int, size uint64) core.Gas {
	return GasLogBase*core.Gas(numTopics+1) + GasLogDataByte*core.Gas(size)
}

// sstoreGas prices SSTORE and reports any refund it schedules, per the
// Frontier/Homestead rule described in spec §4.4 (this module's Shanghai
// inherits the Homestead rule unchanged — see SPEC_FULL.md).
func sstoreGas(old, updated core.U256) (cost core.Gas, refund core.Gas) {
	switch {
	case old.IsZero() && !updated.IsZero():
		return GasSstoreSet, 0
	case !old.IsZero() && updated.IsZero():
		return GasSstoreReset, GasSstoreClearRefund
	default:
		return GasSstoreReset, 0
	}
}

func selfdestructGas(rev core.Revision) core.Gas {
	if rev == core.Frontier {
		return GasSelfdestructFrontier
	}
	return GasSelfdestructHomestead
}

func callBaseGas(rev core.Revision) core.Gas {
	if rev == core.Frontier {
		return GasCallBaseFrontier
	}
	return GasCallBaseHomestead
}

// callForwardedGas implements the gas-forwarding rule of spec §4.4: on
// Frontier, at most the remaining balance is forwarded; from Homestead
// onward the all-but-one-64th rule additionally reserves remaining/64 for
// the caller.
func callForwardedGas(requested, remaining core.Gas, rev core.Revision) core.Gas {
	if rev == core.Frontier {
		if requested > remaining {
			return remaining
		}
		return requested
	}
	limit := remaining - remaining/64
	if requested > limit {
		return limit
	}
	return requested
}

func createGas(initcodeLen int, rev core.Revision) core.Gas {
	cost := GasCreateBase
	if rev == core.Shanghai {
		cost += GasInitcodeWord * core.Gas(words(uint64(initcodeLen)))
	}
	return cost
}

func codeDepositGas(codeLen int) core.Gas {
	return GasCreateDataByte * core.Gas(codeLen)
}

// refundCap applies the transaction-end cap of spec §4.4/glossary: at most
// half of the gas used may be refunded.
func refundCap(gasUsed, refund core.Gas) core.Gas {
	max := gasUsed / 2
	if refund > max {
		return max
	}
	return refund
}
