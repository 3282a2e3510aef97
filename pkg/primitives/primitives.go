// Copyright 2025 Certen Protocol
//
// Package primitives implements the fixed-width integer, variable-bytes and
// ABI-tuple encoders shared by every leaf hasher and ExtraArgs codec in this
// module. Every encoder here is deterministic and total on valid input.
package primitives

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
)

// Bytes32 is a 32-byte digest: a leaf hash, a metadata hash, or a merkle node.
type Bytes32 = [32]byte

// Keccak256 is Ethereum's keccak-256, not SHA3-256.
func Keccak256(data ...[]byte) Bytes32 {
	return Bytes32(crypto.Keccak256Hash(data...))
}

// EncodeU256BE encodes n as a 32-byte big-endian unsigned integer.
func EncodeU256BE(n *big.Int) [32]byte {
	var out [32]byte
	if n == nil {
		return out
	}
	n.FillBytes(out[:])
	return out
}

// EncodeU64BE encodes n as a 32-byte big-endian unsigned integer, for callers
// that carry a chain selector or sequence number as a plain uint64.
func EncodeU64BE(n uint64) [32]byte {
	return EncodeU256BE(new(big.Int).SetUint64(n))
}

// PadLeft32 left-pads b with zero bytes to 32 bytes. It fails if b is longer
// than 32 bytes.
func PadLeft32(b []byte) ([32]byte, error) {
	var out [32]byte
	if len(b) > 32 {
		return out, fmt.Errorf("primitives: cannot pad %d-byte value to 32 bytes", len(b))
	}
	copy(out[32-len(b):], b)
	return out, nil
}

// EncodeRawBytes produces the ABI "tail" encoding of b without its offset
// head: a 32-byte big-endian length, followed by b, right-zero-padded to the
// next 32-byte boundary. An empty slice encodes to 32 zero bytes.
func EncodeRawBytes(b []byte) []byte {
	length := EncodeU64BE(uint64(len(b)))
	padded := ceilTo32(len(b))
	out := make([]byte, 0, 32+padded)
	out = append(out, length[:]...)
	out = append(out, b...)
	out = append(out, make([]byte, padded-len(b))...)
	return out
}

func ceilTo32(n int) int {
	if n%32 == 0 {
		return n
	}
	return n + (32 - n%32)
}

// ABIEncodeTuple standard-ABI-encodes values against the given Solidity type
// strings, in order. Used by the V1_2/V1_5 leaf hashers, by the V1_6 EVM
// leaf hasher's fixed-field hash, and by the EVM ExtraArgs encoder.
func ABIEncodeTuple(solidityTypes []string, values ...interface{}) ([]byte, error) {
	if len(solidityTypes) != len(values) {
		return nil, fmt.Errorf("primitives: %d types but %d values", len(solidityTypes), len(values))
	}
	args := make(abi.Arguments, 0, len(solidityTypes))
	for _, t := range solidityTypes {
		abiType, err := abi.NewType(t, "", nil)
		if err != nil {
			return nil, fmt.Errorf("primitives: bad abi type %q: %w", t, err)
		}
		args = append(args, abi.Argument{Type: abiType})
	}
	return args.Pack(values...)
}
