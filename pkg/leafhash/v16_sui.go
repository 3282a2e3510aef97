// Copyright 2025 Certen Protocol

package leafhash

import (
	"github.com/certen/ccip-core/pkg/address"
	"github.com/certen/ccip-core/pkg/primitives"
)

const v16SuiMetadataTag = "Any2SuiMessageHashV1"

func newV16SuiHasher(lane Lane) (func(*Message) (Bytes32, error), error) {
	tag := primitives.Keccak256([]byte(v16SuiMetadataTag))
	srcSel := primitives.EncodeU64BE(lane.SourceChainSelector)
	dstSel := primitives.EncodeU64BE(lane.DestChainSelector)
	onRampHash := primitives.Keccak256(lane.OnRamp.Bytes())
	metadataHash := primitives.Keccak256(tag[:], srcSel[:], dstSel[:], onRampHash[:])

	return func(m *Message) (Bytes32, error) {
		return hashV16SuiMessage(metadataHash, m)
	}, nil
}

func hashV16SuiMessage(metadataHash Bytes32, m *Message) (Bytes32, error) {
	gasLimit, err := resolveGasLimitFamily(m, address.FamilySui)
	if err != nil {
		return Bytes32{}, err
	}
	tokenReceiver, err := resolveTokenReceiver(m, address.FamilySui)
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
		m.Header.MessageID[:], receiverPad[:], seqNum[:], gasLimitBE[:], tokenReceiver[:], nonce[:],
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
