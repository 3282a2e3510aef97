package primitives

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestEncodeU256BE(t *testing.T) {
	got := EncodeU256BE(big.NewInt(1))
	want := make([]byte, 32)
	want[31] = 1
	if !bytes.Equal(got[:], want) {
		t.Fatalf("EncodeU256BE(1) = %x, want %x", got, want)
	}
}

func TestPadLeft32(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
	}{
		{"empty", nil},
		{"20 bytes", bytes.Repeat([]byte{0xab}, 20)},
		{"32 bytes", bytes.Repeat([]byte{0xcd}, 32)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := PadLeft32(c.in)
			if err != nil {
				t.Fatalf("PadLeft32: %v", err)
			}
			if !bytes.Equal(got[32-len(c.in):], c.in) {
				t.Fatalf("PadLeft32(%x) = %x, wrong suffix", c.in, got)
			}
			for _, b := range got[:32-len(c.in)] {
				if b != 0 {
					t.Fatalf("PadLeft32(%x) = %x, expected leading zeros", c.in, got)
				}
			}
		})
	}

	if _, err := PadLeft32(bytes.Repeat([]byte{1}, 33)); err == nil {
		t.Fatal("expected error padding a 33-byte value")
	}
}

func TestEncodeRawBytesEmpty(t *testing.T) {
	got := EncodeRawBytes(nil)
	if len(got) != 32 {
		t.Fatalf("EncodeRawBytes(nil) length = %d, want 32", len(got))
	}
	for _, b := range got {
		if b != 0 {
			t.Fatalf("EncodeRawBytes(nil) = %x, want all zero", got)
		}
	}
}

func TestEncodeRawBytesRoundLength(t *testing.T) {
	data := []byte("hello")
	got := EncodeRawBytes(data)
	// 32-byte length prefix + 32-byte padded tail (5 bytes rounds up to 32).
	if len(got) != 64 {
		t.Fatalf("EncodeRawBytes(%q) length = %d, want 64", data, len(got))
	}
	lengthField := new(big.Int).SetBytes(got[:32])
	if lengthField.Uint64() != uint64(len(data)) {
		t.Fatalf("length field = %d, want %d", lengthField.Uint64(), len(data))
	}
	if !bytes.Equal(got[32:32+len(data)], data) {
		t.Fatalf("EncodeRawBytes(%q) body = %x", data, got[32:32+len(data)])
	}
	for _, b := range got[32+len(data):] {
		if b != 0 {
			t.Fatalf("EncodeRawBytes(%q) padding not zero: %x", data, got)
		}
	}
}

func TestABIEncodeTupleLengthMismatch(t *testing.T) {
	_, err := ABIEncodeTuple([]string{"uint256"})
	if err == nil {
		t.Fatal("expected error for mismatched types/values")
	}
}

func TestABIEncodeTupleAddressUint256(t *testing.T) {
	out, err := ABIEncodeTuple([]string{"address", "uint256"},
		common.Address{0x01}, big.NewInt(42))
	if err != nil {
		t.Fatalf("ABIEncodeTuple: %v", err)
	}
	if len(out) != 64 {
		t.Fatalf("ABIEncodeTuple(address,uint256) length = %d, want 64", len(out))
	}
}
