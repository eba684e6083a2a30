package interpreter

import "github.com/evm-assure/evmcore/core"

// Sentinel errors for conditions that terminate a frame exceptionally
// (spec §7). They are declared as ConstError so callers can compare with
// == the way the teacher's lfvm package does.
const (
	errOutOfGas              = core.ConstError("out of gas")
	errStackOverflow         = core.ConstError("stack overflow")
	errStackUnderflow        = core.ConstError("stack underflow")
	errInvalidOpcode         = core.ConstError("invalid opcode")
	errInvalidJump           = core.ConstError("invalid jump destination")
	errStaticModification    = core.ConstError("static context modification")
	errDepthOverflow         = core.ConstError("max call depth exceeded")
	errInitCodeTooLarge      = core.ConstError("init code larger than allowed")
	errContractCollision     = core.ConstError("contract address collision")
	errReturnDataOutOfBounds = core.ConstError("return data out of bounds")
)

// faultFor maps a sentinel error raised during execution to the
// core.FaultKind surfaced in the result, per the table in spec §7.
func faultFor(err error) core.FaultKind {
	switch err {
	case errOutOfGas:
		return core.OutOfGas
	case errStackOverflow:
		return core.StackOverflow
	case errStackUnderflow:
		return core.StackUnderflow
	case errInvalidOpcode:
		return core.InvalidOpcode
	case errInvalidJump:
		return core.InvalidJump
	case errStaticModification:
		return core.StaticModification
	case errDepthOverflow:
		return core.DepthOverflow
	case errInitCodeTooLarge:
		return core.InitCodeTooLarge
	case errContractCollision:
		return core.ContractAddressCollision
	case errReturnDataOutOfBounds:
		return core.InvalidMemoryAccess
	case core.ErrInsufficientBalance:
		return core.InsufficientBalance
	default:
		return core.OutOfGas
	}
}
