// Copyright 2025 Certen Protocol

package leafhash

import (
	"fmt"
	"math/big"

	"github.com/certen/ccip-core/pkg/address"
	"github.com/certen/ccip-core/pkg/extraargs"
)

// decodeEVMGasLimit decodes an EVM destination's extraArgs, accepting only
// EVMExtraArgsV1/V2 per spec.md §4.3.2.
func decodeEVMGasLimit(raw []byte) (*big.Int, error) {
	return decodeGasLimit(raw, address.FamilyEVM)
}

// decodeGasLimit decodes family's extraArgs convention and extracts
// gasLimit, accepting EVMExtraArgsV1/V2 and SuiExtraArgsV1.
func decodeGasLimit(raw []byte, family address.ChainFamily) (*big.Int, error) {
	decoded, err := extraargs.Decode(raw, family)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraArgsInvalid, err)
	}
	switch v := decoded.(type) {
	case extraargs.EVMExtraArgsV1:
		return v.GasLimit, nil
	case extraargs.EVMExtraArgsV2:
		return v.GasLimit, nil
	case extraargs.SuiExtraArgsV1:
		return v.GasLimit, nil
	default:
		return nil, fmt.Errorf("%w: extraArgs tag decodes to %T, want EVMExtraArgsV1/V2 or SuiExtraArgsV1", ErrExtraArgsInvalid, decoded)
	}
}

// resolveGasLimitFamily returns m.GasLimit if pre-decoded, else decodes it
// from ExtraArgs under family's wire convention.
func resolveGasLimitFamily(m *Message, family address.ChainFamily) (*big.Int, error) {
	if m.GasLimit != nil {
		return m.GasLimit, nil
	}
	return decodeGasLimit(m.ExtraArgs, family)
}

// resolveTokenReceiver returns m.TokenReceiver if pre-decoded, else decodes
// it from a SuiExtraArgsV1-tagged ExtraArgs payload.
func resolveTokenReceiver(m *Message, family address.ChainFamily) ([32]byte, error) {
	if m.TokenReceiver != nil {
		return *m.TokenReceiver, nil
	}
	decoded, err := extraargs.Decode(m.ExtraArgs, family)
	if err != nil {
		return [32]byte{}, fmt.Errorf("%w: %v", ErrExtraArgsInvalid, err)
	}
	sui, ok := decoded.(extraargs.SuiExtraArgsV1)
	if !ok {
		return [32]byte{}, fmt.Errorf("%w: extraArgs tag decodes to %T, want SuiExtraArgsV1", ErrExtraArgsInvalid, decoded)
	}
	return sui.TokenReceiver, nil
}
