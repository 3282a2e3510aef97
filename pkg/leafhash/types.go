// Copyright 2025 Certen Protocol
//
// Package leafhash implements the per-(destination-family x version) leaf
// hashing functions: the pure transform from a decoded cross-chain message
// to the 32-byte leaf hash the merkle tree is built over. Grounded on the
// teacher's pkg/execution/commitment_builder.go (the closure-over-precomputed-
// hash factory pattern) and pkg/ethereum/abi_helpers.go (tuple hashing
// idioms), generalized across the four destination families spec.md names.
package leafhash

import (
	"math/big"

	"github.com/certen/ccip-core/pkg/address"
	"github.com/certen/ccip-core/pkg/primitives"
)

// Bytes32 is a leaf hash, a metadata hash, or any other 32-byte digest this
// package produces or consumes.
type Bytes32 = primitives.Bytes32

// Version identifies the CCIP protocol version a lane speaks.
type Version string

const (
	VersionV1_2 Version = "v1_2"
	VersionV1_5 Version = "v1_5"
	VersionV1_6 Version = "v1_6"
)

// Lane identifies a source -> destination directed channel. Immutable value
// type; callers typically resolve DestFamily via pkg/selector before
// constructing one.
type Lane struct {
	SourceChainSelector uint64
	DestChainSelector   uint64
	OnRamp              address.Address
	DestFamily          address.ChainFamily
	Version             Version
}

// Header carries the fields common to every message, regardless of family
// or version.
type Header struct {
	MessageID           Bytes32
	SourceChainSelector uint64
	DestChainSelector   uint64
	SequenceNumber      uint64
	Nonce               uint64
}

// TokenAmount is one entry of a message's token transfer list.
type TokenAmount struct {
	SourcePoolAddress address.Address
	DestTokenAddress  address.Address
	DestGasAmount     uint32
	ExtraData         []byte
	Amount            *big.Int
}

// LegacyFields carries the additional fields the V1_2/V1_5 EVM hasher reads
// that V1_6 messages don't carry at all. Nil on a V1_6 Message.
type LegacyFields struct {
	Strict          bool
	FeeToken        address.Address
	FeeTokenAmount  *big.Int
	SourceTokenData [][]byte
}

// Message is a decoded cross-chain message, version-general: V1_6 fields
// are always populated; Legacy is populated only for V1_2/V1_5 messages.
//
// GasLimit, TokenReceiver, ComputeUnits, AccountIsWritableBitmap,
// AllowOutOfOrderExecution and Accounts are the fields some source families
// pre-decode off-message rather than carrying only inside ExtraArgs (spec.md
// §9, "Duck-typed Message variants"). The hashers read GasLimit (and the Sui
// hasher TokenReceiver) when set and fall back to decoding ExtraArgs
// otherwise; no hasher in this package reads ComputeUnits,
// AccountIsWritableBitmap, AllowOutOfOrderExecution or Accounts.
type Message struct {
	Header       Header
	Sender       address.Address
	Receiver     address.Address
	Data         []byte
	TokenAmounts []TokenAmount
	ExtraArgs    []byte

	GasLimit                 *big.Int
	TokenReceiver            *[32]byte
	ComputeUnits             *uint32
	AccountIsWritableBitmap  *uint64
	AllowOutOfOrderExecution *bool
	Accounts                 [][32]byte

	Legacy *LegacyFields
}
