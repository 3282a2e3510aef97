// Copyright 2025 Certen Protocol

package leafhash

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/certen/ccip-core/pkg/primitives"
)

const v16EVMMetadataTag = "Any2EVMMessageHashV1"

// leafDomainSeparator32 is LEAF_DOMAIN_SEPARATOR (a single 0x00 byte) left-
// padded to 32 bytes, the bytes32 form V1_6 hashers use.
var leafDomainSeparator32 Bytes32

func newV16EVMHasher(lane Lane) (func(*Message) (Bytes32, error), error) {
	tag := primitives.Keccak256([]byte(v16EVMMetadataTag))
	srcSel := primitives.EncodeU64BE(lane.SourceChainSelector)
	dstSel := primitives.EncodeU64BE(lane.DestChainSelector)
	onRampHash := primitives.Keccak256(lane.OnRamp.PadOrRaw())
	metadataHash := primitives.Keccak256(tag[:], srcSel[:], dstSel[:], onRampHash[:])

	return func(m *Message) (Bytes32, error) {
		return hashV16EVMMessage(metadataHash, m)
	}, nil
}

// v16TokenAmountABI mirrors the (bytes sourcePoolAddress, address
// destTokenAddress, uint32 destGasAmount, bytes extraData, uint256 amount)
// tuple spec.md §4.3.2 names; field names are matched case-insensitively by
// go-ethereum's abi.Pack against the tuple's component names.
type v16TokenAmountABI struct {
	SourcePoolAddress []byte
	DestTokenAddress  common.Address
	DestGasAmount     uint32
	ExtraData         []byte
	Amount            *big.Int
}

var v16TokenAmountArrayType = mustTokenAmountArrayType()

func mustTokenAmountArrayType() abi.Type {
	t, err := abi.NewType("tuple[]", "", []abi.ArgumentMarshaling{
		{Name: "sourcePoolAddress", Type: "bytes"},
		{Name: "destTokenAddress", Type: "address"},
		{Name: "destGasAmount", Type: "uint32"},
		{Name: "extraData", Type: "bytes"},
		{Name: "amount", Type: "uint256"},
	})
	if err != nil {
		panic(err)
	}
	return t
}

func hashV16EVMMessage(metadataHash Bytes32, m *Message) (Bytes32, error) {
	gasLimit, err := resolveGasLimit(m)
	if err != nil {
		return Bytes32{}, err
	}

	receiverAddr := common.BytesToAddress(m.Receiver.Bytes())
	fixedBody, err := primitives.ABIEncodeTuple(
		[]string{"bytes32", "address", "uint64", "uint256", "uint64"},
		m.Header.MessageID, receiverAddr, m.Header.SequenceNumber, gasLimit, m.Header.Nonce,
	)
	if err != nil {
		return Bytes32{}, err
	}
	fixedHash := primitives.Keccak256(fixedBody)

	senderHash := m.Sender.PadOrKeccak()
	dataHash := primitives.Keccak256(m.Data)

	tokensHash, err := hashV16TokenAmounts(m.TokenAmounts)
	if err != nil {
		return Bytes32{}, err
	}

	bt := mustBytes32Type()
	outerArgs := abi.Arguments{
		{Type: bt}, {Type: bt}, {Type: bt}, {Type: bt}, {Type: bt}, {Type: bt},
	}
	outerBody, err := outerArgs.Pack(leafDomainSeparator32, metadataHash, fixedHash, senderHash, dataHash, tokensHash)
	if err != nil {
		return Bytes32{}, err
	}
	return primitives.Keccak256(outerBody), nil
}

func hashV16TokenAmounts(amounts []TokenAmount) (Bytes32, error) {
	elems := make([]v16TokenAmountABI, len(amounts))
	for i, a := range amounts {
		srcPad, err := a.SourcePoolAddress.CanonicalBytes32()
		if err != nil {
			return Bytes32{}, err
		}
		elems[i] = v16TokenAmountABI{
			SourcePoolAddress: srcPad[:],
			DestTokenAddress:  common.BytesToAddress(a.DestTokenAddress.Bytes()),
			DestGasAmount:     a.DestGasAmount,
			ExtraData:         a.ExtraData,
			Amount:            a.Amount,
		}
	}
	args := abi.Arguments{{Type: v16TokenAmountArrayType}}
	body, err := args.Pack(elems)
	if err != nil {
		return Bytes32{}, err
	}
	return primitives.Keccak256(body), nil
}

func mustBytes32Type() abi.Type {
	t, err := abi.NewType("bytes32", "", nil)
	if err != nil {
		panic(err)
	}
	return t
}
