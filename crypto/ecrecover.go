// Package crypto provides the signature-recovery collaborator named, but
// left unspecified, in spec §1: "ecrecover(hash, v, r, s) -> address". The
// core state-transition logic depends only on the SignatureVerifier
// interface; this package supplies the concrete implementation so the
// module is runnable end-to-end without an external process.
package crypto

import (
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/evm-assure/evmcore/core"
)

// SignatureVerifier recovers the sender address from an ECDSA signature
// over a transaction hash. processor.Processor depends on this interface,
// not on any specific curve library, so the collaborator can be swapped
// out (e.g. for a mock in tests) without touching state-transition logic.
type SignatureVerifier interface {
	Ecrecover(hash core.Hash, v byte, r, s *big.Int) (core.Address, error)
	// The interface carries no low-s check: Homestead's EIP-2 malleability
	// rule is applied by callers through the package function IsLowS.
}

// Secp256k1Verifier is the default SignatureVerifier, backed by
// decred/dcrd's constant-time secp256k1 implementation.
type Secp256k1Verifier struct{}

// secp256k1HalfOrder is half of the curve order N, used to reject
// malleable high-s signatures on revisions at or after Homestead.
var secp256k1HalfOrder = new(big.Int).Rsh(secp256k1.S256().N, 1)

func (Secp256k1Verifier) Ecrecover(hash core.Hash, v byte, r, s *big.Int) (core.Address, error) {
	if v != 0 && v != 1 {
		return core.Address{}, fmt.Errorf("invalid recovery id: %d", v)
	}
	sig := make([]byte, 65)
	r.FillBytes(sig[0:32])
	s.FillBytes(sig[32:64])
	sig[64] = v

	// decred's RecoverCompact expects the recovery byte first, encoded as
	// 27 + recovery id.
	compact := make([]byte, 65)
	compact[0] = v + 27
	copy(compact[1:], sig[:64])

	pub, _, err := ecdsa.RecoverCompact(compact, hash[:])
	if err != nil {
		return core.Address{}, fmt.Errorf("ecrecover failed: %w", err)
	}

	pubBytes := pub.SerializeUncompressed()[1:] // drop the 0x04 prefix
	digest := core.Keccak256(pubBytes)
	var addr core.Address
	copy(addr[:], digest[12:])
	return addr, nil
}

// IsLowS reports whether s lies in the lower half of the curve order, the
// constraint Homestead (per spec §4.6) imposes on signature s-values.
func IsLowS(s *big.Int) bool {
	return s.Cmp(secp256k1HalfOrder) <= 0
}
