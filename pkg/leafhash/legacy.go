// Copyright 2025 Certen Protocol

package leafhash

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/certen/ccip-core/pkg/primitives"
)

// legacyMetadataTag is the version-tag string folded into the V1_2/V1_5
// EVM-destination metadata hash.
const legacyMetadataTag = "EVM2EVMMessageHashV2"

// newLegacyEVMHasher returns the V1_2/V1_5 EVM-destination leaf hasher for
// lane, precomputing its metadataHash.
func newLegacyEVMHasher(lane Lane) (func(*Message) (Bytes32, error), error) {
	onRampPad, err := lane.OnRamp.CanonicalBytes32()
	if err != nil {
		return nil, err
	}
	tag := primitives.Keccak256([]byte(legacyMetadataTag))
	srcSel := primitives.EncodeU64BE(lane.SourceChainSelector)
	dstSel := primitives.EncodeU64BE(lane.DestChainSelector)
	metadataHash := primitives.Keccak256(tag[:], srcSel[:], dstSel[:], onRampPad[:])

	return func(m *Message) (Bytes32, error) {
		return hashLegacyEVMMessage(metadataHash, m)
	}, nil
}

func hashLegacyEVMMessage(metadataHash Bytes32, m *Message) (Bytes32, error) {
	legacy := m.Legacy
	if legacy == nil {
		return Bytes32{}, ErrExtraArgsInvalid
	}
	gasLimit, err := resolveGasLimit(m)
	if err != nil {
		return Bytes32{}, err
	}

	senderAddr := common.BytesToAddress(m.Sender.Bytes())
	receiverAddr := common.BytesToAddress(m.Receiver.Bytes())
	feeTokenAddr := common.BytesToAddress(legacy.FeeToken.Bytes())
	feeTokenAmount := legacy.FeeTokenAmount
	if feeTokenAmount == nil {
		feeTokenAmount = big.NewInt(0)
	}

	fixedBody, err := primitives.ABIEncodeTuple(
		[]string{"address", "address", "uint64", "uint256", "bool", "uint64", "address", "uint256"},
		senderAddr, receiverAddr, m.Header.SequenceNumber, gasLimit, legacy.Strict, m.Header.Nonce, feeTokenAddr, feeTokenAmount,
	)
	if err != nil {
		return Bytes32{}, err
	}
	fixedHash := primitives.Keccak256(fixedBody)

	dataHash := primitives.Keccak256(m.Data)

	tokensBody := encodeLegacyTokenAmounts(m.TokenAmounts)
	tokensHash := primitives.Keccak256(tokensBody)

	sourceTokenDataBody, err := primitives.ABIEncodeTuple([]string{"bytes[]"}, legacy.SourceTokenData)
	if err != nil {
		return Bytes32{}, err
	}
	sourceTokenDataHash := primitives.Keccak256(sourceTokenDataBody)

	outerBody, err := primitives.ABIEncodeTuple(
		[]string{"bytes1", "bytes32", "bytes32", "bytes32", "bytes32", "bytes32"},
		[1]byte{0x00}, metadataHash, fixedHash, dataHash, tokensHash, sourceTokenDataHash,
	)
	if err != nil {
		return Bytes32{}, err
	}
	return primitives.Keccak256(outerBody), nil
}

// encodeLegacyTokenAmounts ABI-encodes the V1_2/V1_5 token list as a single
// dynamic-array value of the static tuple (address destTokenAddress, uint256
// amount): the 32-byte head offset (0x20), the element count, then the
// elements concatenated. Because every element is fixed-size, there is no
// per-element offset table.
func encodeLegacyTokenAmounts(amounts []TokenAmount) []byte {
	offset := primitives.EncodeU64BE(32)
	count := primitives.EncodeU64BE(uint64(len(amounts)))
	out := append([]byte{}, offset[:]...)
	out = append(out, count[:]...)
	for _, a := range amounts {
		destAddr, _ := a.DestTokenAddress.CanonicalBytes32()
		amt := primitives.EncodeU256BE(a.Amount)
		out = append(out, destAddr[:]...)
		out = append(out, amt[:]...)
	}
	return out
}

// resolveGasLimit returns m.GasLimit if pre-decoded, else decodes it from
// ExtraArgs (EVMExtraArgsV1/V2 only, since this hasher only serves EVM
// destinations).
func resolveGasLimit(m *Message) (*big.Int, error) {
	if m.GasLimit != nil {
		return m.GasLimit, nil
	}
	return decodeEVMGasLimit(m.ExtraArgs)
}
