// Copyright 2025 Certen Protocol

package leafhash

import (
	"github.com/certen/ccip-core/pkg/address"
	"github.com/certen/ccip-core/pkg/primitives"
)

const v16AptosMetadataTag = "Any2AptosMessageHashV1"

func newV16AptosHasher(lane Lane) (func(*Message) (Bytes32, error), error) {
	tag := primitives.Keccak256([]byte(v16AptosMetadataTag))
	srcSel := primitives.EncodeU64BE(lane.SourceChainSelector)
	dstSel := primitives.EncodeU64BE(lane.DestChainSelector)
	onRampHash := primitives.Keccak256(lane.OnRamp.Bytes())
	metadataHash := primitives.Keccak256(tag[:], srcSel[:], dstSel[:], onRampHash[:])

	return func(m *Message) (Bytes32, error) {
		return hashV16AptosMessage(metadataHash, m)
	}, nil
}

func hashV16AptosMessage(metadataHash Bytes32, m *Message) (Bytes32, error) {
	gasLimit, err := resolveGasLimitFamily(m, address.FamilyAptos)
	if err != nil {
		return Bytes32{}, err
	}

	receiverPad, err := m.Receiver.CanonicalBytes32()
	if err != nil {
		return Bytes32{}, err
	}
	seqNum := primitives.EncodeU64BE(m.Header.SequenceNumber)
	gasLimitBE := primitives.EncodeU256BE(gasLimit)
	nonce := primitives.EncodeU64BE(m.Header.Nonce)
	innerHash := primitives.Keccak256(
		m.Header.MessageID[:], receiverPad[:], seqNum[:], gasLimitBE[:], nonce[:],
	)

	senderHash := primitives.Keccak256(m.Sender.Bytes())
	dataHash := primitives.Keccak256(m.Data)

	tokenHash, err := hashAptosSuiTokenAmounts(m.TokenAmounts)
	if err != nil {
		return Bytes32{}, err
	}

	return primitives.Keccak256(
		leafDomainSeparator32[:], metadataHash[:], innerHash[:], senderHash[:], dataHash[:], tokenHash[:],
	), nil
}

// hashAptosSuiTokenAmounts implements the tokenHash formula shared by the
// Aptos and Sui V1_6 hashers (spec.md §4.3.3/§4.3.4): a non-ABI, length-
// prefixed little-endian-host-agnostic concatenation rather than a
// Solidity-style offset-table encoding.
func hashAptosSuiTokenAmounts(amounts []TokenAmount) (Bytes32, error) {
	count := primitives.EncodeU64BE(uint64(len(amounts)))
	chunks := [][]byte{count[:]}
	for _, a := range amounts {
		srcRaw := primitives.EncodeRawBytes(a.SourcePoolAddress.Bytes())
		destPad, err := a.DestTokenAddress.CanonicalBytes32()
		if err != nil {
			return Bytes32{}, err
		}
		destGas := primitives.EncodeU64BE(uint64(a.DestGasAmount))
		extraRaw := primitives.EncodeRawBytes(a.ExtraData)
		amt := primitives.EncodeU256BE(a.Amount)

		chunks = append(chunks, srcRaw, destPad[:], destGas[:], extraRaw, amt[:])
	}
	return primitives.Keccak256(chunks...), nil
}
