// Copyright 2025 Certen Protocol
//
// Package address implements the polymorphic Address type shared by every
// leaf hasher: 20-byte EVM addresses, 32-byte Solana/Aptos/Sui addresses,
// and the arbitrary-length (bounded) addresses of families like TON.
package address

import (
	"encoding/hex"
	"fmt"

	"github.com/certen/ccip-core/pkg/primitives"
)

// ChainFamily identifies the destination or source chain's address/hashing
// family. Mirrors the teacher's ChainPlatform enum (pkg/chain/strategy),
// renamed to the families spec.md names.
type ChainFamily string

const (
	FamilyEVM    ChainFamily = "evm"
	FamilySolana ChainFamily = "solana"
	FamilyAptos  ChainFamily = "aptos"
	FamilySui    ChainFamily = "sui"
	FamilyTON    ChainFamily = "ton"
)

// IsValid reports whether f is one of the known families.
func (f ChainFamily) IsValid() bool {
	switch f {
	case FamilyEVM, FamilySolana, FamilyAptos, FamilySui, FamilyTON:
		return true
	default:
		return false
	}
}

// MaxLen returns the maximum address length, in bytes, this family permits.
// EVM is fixed at 20; the 32-byte families are fixed at 32; TON (and any
// other "long" family) is bounded at 36 per spec.md §3.
func (f ChainFamily) MaxLen() int {
	switch f {
	case FamilyEVM:
		return 20
	case FamilySolana, FamilyAptos, FamilySui:
		return 32
	case FamilyTON:
		return 36
	default:
		return 36
	}
}

// Address is a family-polymorphic chain address. The raw bytes are kept
// exactly as supplied; canonical (padded or raw) encoding happens on demand
// via CanonicalBytes32, PadOrRaw or PadOrKeccak, since different leaf hashers need different
// canonicalizations of the same address.
type Address struct {
	raw []byte
}

// ErrAddressInvalid is returned by New for an address longer than 36 bytes
// and by CanonicalBytes32 for one longer than 32 bytes. The per-family bound
// reported by MaxLen is not checked by New or by the leaf hashers.
var ErrAddressInvalid = fmt.Errorf("address: exceeds maximum supported length")

// New constructs an Address from raw bytes. It fails if b is longer than 36
// bytes, the largest length any family in this module canonicalizes.
func New(b []byte) (Address, error) {
	if len(b) > 36 {
		return Address{}, fmt.Errorf("%w: got %d bytes", ErrAddressInvalid, len(b))
	}
	out := make([]byte, len(b))
	copy(out, b)
	return Address{raw: out}, nil
}

// MustNew is New, panicking on error; intended for tests and constant
// addresses known to be valid at compile time.
func MustNew(b []byte) Address {
	a, err := New(b)
	if err != nil {
		panic(err)
	}
	return a
}

// Bytes returns the raw address bytes, unpadded.
func (a Address) Bytes() []byte {
	out := make([]byte, len(a.raw))
	copy(out, a.raw)
	return out
}

// Len returns the number of raw address bytes.
func (a Address) Len() int {
	return len(a.raw)
}

// CanonicalBytes32 returns the canonical encoding used by the V1_6 EVM/Aptos/
// Sui leaf hashers: left-padded to 32 bytes when the address is 32 bytes or
// shorter, or hashed-as-raw-bytes signalling required by the caller when
// longer. Per spec.md §4.3.2/§4.3.3, addresses longer than 32 bytes are
// never padded; callers must keccak256 the raw bytes instead. CanonicalBytes32
// therefore only succeeds for addresses of 32 bytes or fewer; callers must
// check Len() first for the raw-hash branch.
func (a Address) CanonicalBytes32() ([32]byte, error) {
	if len(a.raw) > 32 {
		return [32]byte{}, fmt.Errorf("%w: %d bytes, use raw keccak256 branch", ErrAddressInvalid, len(a.raw))
	}
	return primitives.PadLeft32(a.raw)
}

// PadOrRaw returns pad32(addr) when addr fits in 32 bytes, else addr's raw
// bytes unchanged. This is the "onRampForHash"/"sender32" pre-image used by
// the V1_6 EVM hasher, which the caller then keccak256s itself.
func (a Address) PadOrRaw() []byte {
	if len(a.raw) <= 32 {
		padded, _ := primitives.PadLeft32(a.raw) // length already checked <= 32
		return padded[:]
	}
	return a.Bytes()
}

// PadOrKeccak implements the "sender32"/"onRampForHash" rule used throughout
// V1_6 EVM leaf hashing: keccak256(pad32(addr)) when addr fits in 32 bytes,
// else keccak256(raw addr bytes). Both branches are hashed; only the
// pre-image differs (see PadOrRaw).
func (a Address) PadOrKeccak() [32]byte {
	return primitives.Keccak256(a.PadOrRaw())
}

// String returns a lowercase 0x-prefixed hex string.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a.raw)
}

// Equal reports whether two addresses have identical raw bytes.
func (a Address) Equal(b Address) bool {
	if len(a.raw) != len(b.raw) {
		return false
	}
	for i := range a.raw {
		if a.raw[i] != b.raw[i] {
			return false
		}
	}
	return true
}
