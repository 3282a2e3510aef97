package extraargs

import (
	"math/big"
	"testing"

	"github.com/certen/ccip-core/pkg/address"
)

func TestEVMExtraArgsV1RoundTrip(t *testing.T) {
	want := EVMExtraArgsV1{GasLimit: big.NewInt(200000)}
	raw, err := Encode(want, address.FamilyEVM)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(raw, address.FamilyEVM)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	gotV1, ok := got.(EVMExtraArgsV1)
	if !ok {
		t.Fatalf("Decode returned %T, want EVMExtraArgsV1", got)
	}
	if gotV1.GasLimit.Cmp(want.GasLimit) != 0 {
		t.Fatalf("GasLimit = %s, want %s", gotV1.GasLimit, want.GasLimit)
	}
}

func TestEVMExtraArgsV2RoundTrip(t *testing.T) {
	want := EVMExtraArgsV2{GasLimit: big.NewInt(500000), AllowOutOfOrderExecution: true}
	raw, err := Encode(want, address.FamilyEVM)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(raw, address.FamilyEVM)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	gotV2 := got.(EVMExtraArgsV2)
	if gotV2.GasLimit.Cmp(want.GasLimit) != 0 || gotV2.AllowOutOfOrderExecution != want.AllowOutOfOrderExecution {
		t.Fatalf("got %+v, want %+v", gotV2, want)
	}
}

func TestEVMExtraArgsV2AptosRoundTrip(t *testing.T) {
	want := EVMExtraArgsV2{GasLimit: big.NewInt(123456789), AllowOutOfOrderExecution: true}
	raw, err := Encode(want, address.FamilyAptos)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(raw) != 4+33 {
		t.Fatalf("Aptos EVMExtraArgsV2 payload length = %d, want 37", len(raw))
	}
	got, err := Decode(raw, address.FamilyAptos)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	gotV2 := got.(EVMExtraArgsV2)
	if gotV2.GasLimit.Cmp(want.GasLimit) != 0 || gotV2.AllowOutOfOrderExecution != want.AllowOutOfOrderExecution {
		t.Fatalf("got %+v, want %+v", gotV2, want)
	}
}

func TestSuiExtraArgsV1RoundTrip(t *testing.T) {
	var tokenReceiver [32]byte
	tokenReceiver[0] = 0xaa
	want := SuiExtraArgsV1{GasLimit: big.NewInt(9999), AllowOutOfOrderExecution: false, TokenReceiver: tokenReceiver}
	raw, err := Encode(want, address.FamilySui)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(raw, address.FamilySui)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	gotSui := got.(SuiExtraArgsV1)
	if gotSui.GasLimit.Cmp(want.GasLimit) != 0 || gotSui.TokenReceiver != want.TokenReceiver {
		t.Fatalf("got %+v, want %+v", gotSui, want)
	}
}

func TestSVMExtraArgsV1RoundTrip(t *testing.T) {
	var tokenReceiver, acc1, acc2 [32]byte
	tokenReceiver[0] = 0x01
	acc1[0] = 0x02
	acc2[0] = 0x03
	want := SVMExtraArgsV1{
		ComputeUnits:             1_400_000,
		AccountIsWritableBitmap:  0b101,
		AllowOutOfOrderExecution: true,
		TokenReceiver:            tokenReceiver,
		Accounts:                 [][32]byte{acc1, acc2},
	}
	raw, err := Encode(want, address.FamilySolana)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(raw, address.FamilySolana)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	gotSVM := got.(SVMExtraArgsV1)
	if gotSVM.ComputeUnits != want.ComputeUnits ||
		gotSVM.AccountIsWritableBitmap != want.AccountIsWritableBitmap ||
		gotSVM.AllowOutOfOrderExecution != want.AllowOutOfOrderExecution ||
		gotSVM.TokenReceiver != want.TokenReceiver ||
		len(gotSVM.Accounts) != 2 {
		t.Fatalf("got %+v, want %+v", gotSVM, want)
	}
}

func TestDecodeUnknownTag(t *testing.T) {
	raw := []byte{0xde, 0xad, 0xbe, 0xef, 0x01}
	if _, err := Decode(raw, address.FamilyEVM); err == nil {
		t.Fatal("expected error for unknown tag")
	}
}

func TestDecodeTooShort(t *testing.T) {
	if _, err := Decode([]byte{0x01, 0x02}, address.FamilyEVM); err == nil {
		t.Fatal("expected error for payload shorter than a tag")
	}
}

func TestEncodeSVMOnAptosNotSupported(t *testing.T) {
	args := SVMExtraArgsV1{ComputeUnits: 1}
	if _, err := Encode(args, address.FamilyAptos); err == nil {
		t.Fatal("expected ErrEncodeNotSupported for SVMExtraArgsV1 on Aptos")
	}
}

func TestAptosSVMExtraArgsV1AbbreviatedDecode(t *testing.T) {
	raw := append([]byte{}, TagSVMV1[:]...)
	raw = append(raw, make([]byte, 8)...) // 8-byte LE computeUnits
	raw[4] = 0x40                          // 0x40 = 64
	raw = append(raw, 1)                   // allowOOOE = true

	got, err := Decode(raw, address.FamilyAptos)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	gotSVM := got.(SVMExtraArgsV1)
	if gotSVM.ComputeUnits != 0x40 || !gotSVM.AllowOutOfOrderExecution {
		t.Fatalf("got %+v", gotSVM)
	}
}
