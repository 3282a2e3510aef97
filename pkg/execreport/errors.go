// Copyright 2025 Certen Protocol

package execreport

import "fmt"

// MessageNotInBatchError is returned when the target messageId is absent
// from the batch the assembler was given. It carries the batch's
// sequence-number window so the caller can report a useful diagnostic.
type MessageNotInBatchError struct {
	Target [32]byte
	MinSeq uint64
	MaxSeq uint64
}

func (e *MessageNotInBatchError) Error() string {
	return fmt.Sprintf("execreport: message %x not found in batch (sequence window [%d, %d])", e.Target, e.MinSeq, e.MaxSeq)
}

// MerkleRootMismatchError is returned when a caller-supplied expected root
// does not match the root computed from the batch.
type MerkleRootMismatchError struct {
	Expected [32]byte
	Computed [32]byte
}

func (e *MerkleRootMismatchError) Error() string {
	return fmt.Sprintf("execreport: merkle root mismatch: expected %x, computed %x", e.Expected, e.Computed)
}
