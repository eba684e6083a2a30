package core

import (
	"sync"

	"golang.org/x/crypto/sha3"
)

// keccakPool recycles hash.Hash instances across calls, avoiding an
// allocation per SHA3 opcode invocation and per CREATE/CREATE2 address
// derivation — the two call sites that dominate keccak usage in the
// interpreter's hot path.
var keccakPool = sync.Pool{
	New: func() any { return sha3.NewLegacyKeccak256() },
}

// Keccak256 computes the Keccak-256 digest of data. Signature recovery
// itself remains an external collaborator (see crypto.SignatureVerifier);
// keccak is needed internally for SHA3 and contract-address derivation, so
// it is not abstracted behind an interface.
func Keccak256(data ...[]byte) Hash {
	h := keccakPool.Get().(keccakHasher)
	h.Reset()
	for _, d := range data {
		h.Write(d)
	}
	var out Hash
	h.Read(out[:])
	keccakPool.Put(h)
	return out
}

type keccakHasher interface {
	Write(p []byte) (n int, err error)
	Read(p []byte) (n int, err error)
	Reset()
}
