// Copyright 2025 Certen Protocol
//
// Package extraargs implements the versioned, 4-byte-tagged ExtraArgs codec:
// EVMExtraArgsV1/V2, SVMExtraArgsV1 and SuiExtraArgsV1. The wire encoding of
// a given variant depends on which family's convention is in play (ABI for
// EVM, little-endian binary for Aptos/Sui/Solana) per spec.md §4.2 - the
// codec is selected by the same precomputed-tag-table idiom the teacher uses
// for function selectors and event signatures in
// pkg/execution/commitment_builder.go.
package extraargs

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/certen/ccip-core/pkg/address"
	"github.com/certen/ccip-core/pkg/primitives"
)

// Tag is the 4-byte family-version selector prefixing every ExtraArgs payload.
type Tag [4]byte

var (
	TagEVMV1 = computeTag("CCIP EVMExtraArgsV1")
	TagEVMV2 = computeTag("CCIP EVMExtraArgsV2")
	TagSVMV1 = computeTag("CCIP SVMExtraArgsV1")
	TagSuiV1 = computeTag("CCIP SuiExtraArgsV1")
)

func computeTag(literal string) Tag {
	h := primitives.Keccak256([]byte(literal))
	var t Tag
	copy(t[:], h[:4])
	return t
}

// ExtraArgs is implemented by every decoded ExtraArgs variant.
type ExtraArgs interface {
	Tag() Tag
}

// EVMExtraArgsV1 carries only a gas limit.
type EVMExtraArgsV1 struct {
	GasLimit *big.Int
}

func (EVMExtraArgsV1) Tag() Tag { return TagEVMV1 }

// EVMExtraArgsV2 adds the out-of-order-execution flag.
type EVMExtraArgsV2 struct {
	GasLimit                 *big.Int
	AllowOutOfOrderExecution bool
}

func (EVMExtraArgsV2) Tag() Tag { return TagEVMV2 }

// SVMExtraArgsV1 carries Solana-specific execution hints.
type SVMExtraArgsV1 struct {
	ComputeUnits             uint32
	AccountIsWritableBitmap  uint64
	AllowOutOfOrderExecution bool
	TokenReceiver            [32]byte
	Accounts                 [][32]byte
}

func (SVMExtraArgsV1) Tag() Tag { return TagSVMV1 }

// SuiExtraArgsV1 carries Sui-specific execution hints.
type SuiExtraArgsV1 struct {
	GasLimit                 *big.Int
	AllowOutOfOrderExecution bool
	TokenReceiver            [32]byte
}

func (SuiExtraArgsV1) Tag() Tag { return TagSuiV1 }

// Decode parses raw into the ExtraArgs variant its tag names, using the
// encoding flavour (ABI vs little-endian binary) that family uses for
// ExtraArgs payloads. family is whichever family's convention produced the
// bytes being decoded (for a message in flight this is the family that
// encoded it, not necessarily the chain decoding it).
func Decode(raw []byte, family address.ChainFamily) (ExtraArgs, error) {
	if len(raw) < 4 {
		return nil, fmt.Errorf("%w: payload %d bytes, need at least 4 for a tag", ErrExtraArgsInvalid, len(raw))
	}
	var tag Tag
	copy(tag[:], raw[:4])
	body := raw[4:]

	switch family {
	case address.FamilyEVM:
		return decodeABI(tag, body)
	case address.FamilyAptos:
		return decodeAptosLE(tag, body)
	case address.FamilySui:
		return decodeSuiLE(tag, body)
	case address.FamilySolana:
		return decodeSolanaLE(tag, body)
	default:
		return nil, fmt.Errorf("%w: unsupported family %q", ErrExtraArgsInvalid, family)
	}
}

func decodeABI(tag Tag, body []byte) (ExtraArgs, error) {
	switch tag {
	case TagEVMV1:
		args, err := unpackABI([]string{"uint256"}, body)
		if err != nil {
			return nil, fmt.Errorf("%w: EVMExtraArgsV1: %v", ErrExtraArgsInvalid, err)
		}
		return EVMExtraArgsV1{GasLimit: args[0].(*big.Int)}, nil
	case TagEVMV2:
		args, err := unpackABI([]string{"uint256", "bool"}, body)
		if err != nil {
			return nil, fmt.Errorf("%w: EVMExtraArgsV2: %v", ErrExtraArgsInvalid, err)
		}
		return EVMExtraArgsV2{GasLimit: args[0].(*big.Int), AllowOutOfOrderExecution: args[1].(bool)}, nil
	default:
		return nil, fmt.Errorf("%w: tag %x not valid for EVM destinations", ErrUnknownTag, tag)
	}
}

// decodeAptosLE decodes the fixed little-endian binary payloads an Aptos
// destination uses. The SVMExtraArgsV1 branch here is the abbreviated
// 13-byte (tag + 8-byte LE computeUnits + 1-byte flag) variant the original
// decoder exercises; see DESIGN.md Open Question Decision 3.
func decodeAptosLE(tag Tag, body []byte) (ExtraArgs, error) {
	switch tag {
	case TagEVMV2:
		if len(body) != 33 {
			return nil, fmt.Errorf("%w: Aptos EVMExtraArgsV2 body must be 33 bytes, got %d", ErrExtraArgsInvalid, len(body))
		}
		return EVMExtraArgsV2{
			GasLimit:                 decodeU256LE(body[:32]),
			AllowOutOfOrderExecution: body[32] != 0,
		}, nil
	case TagSVMV1:
		if len(body) != 9 {
			return nil, fmt.Errorf("%w: Aptos SVMExtraArgsV1 body must be 9 bytes, got %d", ErrExtraArgsInvalid, len(body))
		}
		return SVMExtraArgsV1{
			ComputeUnits:             uint32(binary.LittleEndian.Uint64(body[:8])),
			AllowOutOfOrderExecution: body[8] != 0,
		}, nil
	default:
		return nil, fmt.Errorf("%w: tag %x not valid for Aptos destinations", ErrUnknownTag, tag)
	}
}

func decodeSuiLE(tag Tag, body []byte) (ExtraArgs, error) {
	if tag != TagSuiV1 {
		return nil, fmt.Errorf("%w: tag %x not valid for Sui destinations", ErrUnknownTag, tag)
	}
	if len(body) != 65 {
		return nil, fmt.Errorf("%w: SuiExtraArgsV1 body must be 65 bytes, got %d", ErrExtraArgsInvalid, len(body))
	}
	var tokenReceiver [32]byte
	copy(tokenReceiver[:], body[33:65])
	return SuiExtraArgsV1{
		GasLimit:                 decodeU256LE(body[:32]),
		AllowOutOfOrderExecution: body[32] != 0,
		TokenReceiver:            tokenReceiver,
	}, nil
}

// decodeSolanaLE decodes the full SVMExtraArgsV1 struct in its native,
// Solana-destination little-endian binary form: u32 computeUnits, u64
// accountIsWritableBitmap, 1-byte flag, 32-byte tokenReceiver, then a u32
// account count followed by that many 32-byte account keys.
func decodeSolanaLE(tag Tag, body []byte) (ExtraArgs, error) {
	if tag != TagSVMV1 {
		return nil, fmt.Errorf("%w: tag %x not valid for Solana destinations", ErrUnknownTag, tag)
	}
	const fixedLen = 4 + 8 + 1 + 32 + 4
	if len(body) < fixedLen {
		return nil, fmt.Errorf("%w: SVMExtraArgsV1 body must be at least %d bytes, got %d", ErrExtraArgsInvalid, fixedLen, len(body))
	}
	computeUnits := binary.LittleEndian.Uint32(body[0:4])
	bitmap := binary.LittleEndian.Uint64(body[4:12])
	allowOOOE := body[12] != 0
	var tokenReceiver [32]byte
	copy(tokenReceiver[:], body[13:45])
	count := binary.LittleEndian.Uint32(body[45:49])

	rest := body[49:]
	if uint64(len(rest)) != uint64(count)*32 {
		return nil, fmt.Errorf("%w: SVMExtraArgsV1 declares %d accounts but body has %d trailing bytes", ErrExtraArgsInvalid, count, len(rest))
	}
	accounts := make([][32]byte, count)
	for i := range accounts {
		copy(accounts[i][:], rest[i*32:(i+1)*32])
	}

	return SVMExtraArgsV1{
		ComputeUnits:             computeUnits,
		AccountIsWritableBitmap:  bitmap,
		AllowOutOfOrderExecution: allowOOOE,
		TokenReceiver:            tokenReceiver,
		Accounts:                 accounts,
	}, nil
}

// Encode serialises args using the wire convention of family. Only the
// combinations the original decoder exercises are supported; see DESIGN.md
// Open Question Decision 3 for the asymmetric cases that return
// ErrEncodeNotSupported.
func Encode(args ExtraArgs, family address.ChainFamily) ([]byte, error) {
	tag := args.Tag()
	switch family {
	case address.FamilyEVM:
		return encodeABI(tag, args)
	case address.FamilyAptos:
		return encodeAptosLE(tag, args)
	case address.FamilySui:
		return encodeSuiLE(tag, args)
	case address.FamilySolana:
		return encodeSolanaLE(tag, args)
	default:
		return nil, fmt.Errorf("%w: family %q", ErrEncodeNotSupported, family)
	}
}

func encodeABI(tag Tag, args ExtraArgs) ([]byte, error) {
	switch v := args.(type) {
	case EVMExtraArgsV1:
		body, err := primitives.ABIEncodeTuple([]string{"uint256"}, v.GasLimit)
		if err != nil {
			return nil, err
		}
		return append(tag[:], body...), nil
	case EVMExtraArgsV2:
		body, err := primitives.ABIEncodeTuple([]string{"uint256", "bool"}, v.GasLimit, v.AllowOutOfOrderExecution)
		if err != nil {
			return nil, err
		}
		return append(tag[:], body...), nil
	default:
		return nil, fmt.Errorf("%w: EVM destinations only encode EVMExtraArgsV1/V2", ErrEncodeNotSupported)
	}
}

func encodeAptosLE(tag Tag, args ExtraArgs) ([]byte, error) {
	v, ok := args.(EVMExtraArgsV2)
	if !ok {
		return nil, fmt.Errorf("%w: Aptos destinations only encode EVMExtraArgsV2", ErrEncodeNotSupported)
	}
	out := append([]byte{}, tag[:]...)
	gasLimitLE := encodeU256LE(v.GasLimit)
	out = append(out, gasLimitLE[:]...)
	flag := byte(0)
	if v.AllowOutOfOrderExecution {
		flag = 1
	}
	return append(out, flag), nil
}

func encodeSuiLE(tag Tag, args ExtraArgs) ([]byte, error) {
	v, ok := args.(SuiExtraArgsV1)
	if !ok {
		return nil, fmt.Errorf("%w: Sui destinations only encode SuiExtraArgsV1", ErrEncodeNotSupported)
	}
	out := append([]byte{}, tag[:]...)
	gasLimitLE := encodeU256LE(v.GasLimit)
	out = append(out, gasLimitLE[:]...)
	flag := byte(0)
	if v.AllowOutOfOrderExecution {
		flag = 1
	}
	out = append(out, flag)
	return append(out, v.TokenReceiver[:]...), nil
}

func encodeSolanaLE(tag Tag, args ExtraArgs) ([]byte, error) {
	v, ok := args.(SVMExtraArgsV1)
	if !ok {
		return nil, fmt.Errorf("%w: Solana destinations only encode SVMExtraArgsV1", ErrEncodeNotSupported)
	}
	out := append([]byte{}, tag[:]...)

	var computeUnits [4]byte
	binary.LittleEndian.PutUint32(computeUnits[:], v.ComputeUnits)
	out = append(out, computeUnits[:]...)

	var bitmap [8]byte
	binary.LittleEndian.PutUint64(bitmap[:], v.AccountIsWritableBitmap)
	out = append(out, bitmap[:]...)

	flag := byte(0)
	if v.AllowOutOfOrderExecution {
		flag = 1
	}
	out = append(out, flag)
	out = append(out, v.TokenReceiver[:]...)

	var count [4]byte
	binary.LittleEndian.PutUint32(count[:], uint32(len(v.Accounts)))
	out = append(out, count[:]...)
	for _, acc := range v.Accounts {
		out = append(out, acc[:]...)
	}
	return out, nil
}

func unpackABI(types []string, body []byte) ([]interface{}, error) {
	args := make(abi.Arguments, 0, len(types))
	for _, t := range types {
		abiType, err := abi.NewType(t, "", nil)
		if err != nil {
			return nil, fmt.Errorf("bad abi type %q: %w", t, err)
		}
		args = append(args, abi.Argument{Type: abiType})
	}
	return args.Unpack(body)
}

// encodeU256LE returns n as 32 little-endian bytes: the byte-reverse of the
// big-endian encoding primitives.EncodeU256BE produces.
func encodeU256LE(n *big.Int) [32]byte {
	be := primitives.EncodeU256BE(n)
	var le [32]byte
	for i := range be {
		le[i] = be[31-i]
	}
	return le
}

func decodeU256LE(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i := range b {
		be[len(b)-1-i] = b[i]
	}
	return new(big.Int).SetBytes(be)
}
