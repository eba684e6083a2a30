// Package core defines the primitive types and interfaces shared by every
// other package in this module: addresses, hashes, the 256-bit word type,
// fork revisions, and the world-state contract.
package core

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Address represents the 160-bit (20 byte) address of an account.
type Address [20]byte

func (a Address) String() string {
	return fmt.Sprintf("0x%x", a[:])
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) MarshalText() ([]byte, error) {
	return bytesToText(a[:])
}

func (a *Address) UnmarshalText(data []byte) error {
	return textToBytes(a[:], data)
}

// AddressFromU256 narrows a U256 to an Address by taking its low 20 bytes.
func AddressFromU256(v U256) Address {
	var a Address
	b := v.Bytes32()
	copy(a[:], b[12:])
	return a
}

// Hash represents the 256-bit (32 byte) hash of code, a block, a topic, or
// any other cryptographic digest.
type Hash [32]byte

func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return bytesToText(h[:])
}

func (h *Hash) UnmarshalText(data []byte) error {
	return textToBytes(h[:], data)
}

// Key represents the 256-bit key of a storage slot.
type Key = U256

// Code is the immutable byte-code of an account.
type Code []byte

func (c Code) Hash() Hash {
	return Keccak256(c)
}

func bytesToText(data []byte) ([]byte, error) {
	return []byte(fmt.Sprintf("0x%x", data)), nil
}

func textToBytes(dst []byte, data []byte) error {
	s := string(data)
	if !strings.HasPrefix(s, "0x") {
		return fmt.Errorf("invalid format, does not start with 0x: %v", s)
	}
	decoded, err := hex.DecodeString(s[2:])
	if err != nil {
		return err
	}
	if want, got := len(dst), len(decoded); want != got {
		return fmt.Errorf("invalid format, wanted %d bytes, got %d", want, got)
	}
	copy(dst, decoded)
	return nil
}

// CallKind identifies the flavor of a sub-call or contract-creation
// operation performed by CALL, CALLCODE, DELEGATECALL, STATICCALL, CREATE,
// and CREATE2.
type CallKind int

const (
	Call CallKind = iota
	CallCode
	DelegateCall
	StaticCall
	Create
	Create2
)

func (k CallKind) String() string {
	switch k {
	case Call:
		return "call"
	case CallCode:
		return "call_code"
	case DelegateCall:
		return "delegate_call"
	case StaticCall:
		return "static_call"
	case Create:
		return "create"
	case Create2:
		return "create2"
	default:
		return fmt.Sprintf("CallKind(%d)", int(k))
	}
}

// ConstError is a sentinel error type that can be declared as a package
// level constant and compared with ==, matching the teacher's error style.
type ConstError string

func (e ConstError) Error() string { return string(e) }
