// Copyright 2025 Certen Protocol

package merkletree

import "errors"

// Sentinel errors for the merkletree package, matching the teacher's
// one-errors.go-per-package convention (pkg/execution/errors.go,
// pkg/batch/errors.go).
var (
	// ErrEmptyTree is returned when Build is given zero leaves.
	ErrEmptyTree = errors.New("merkletree: cannot build a tree from zero leaves")

	// ErrTooManyLeaves is returned when Build is given more than
	// MaxTreeLeaves leaves.
	ErrTooManyLeaves = errors.New("merkletree: leaf count exceeds the maximum supported tree size")

	// ErrIndexOutOfRange is returned by Prove when an index is outside
	// [0, original leaf count).
	ErrIndexOutOfRange = errors.New("merkletree: leaf index out of range")

	// ErrIndicesNotSorted is returned by Prove when indices are not a
	// strictly ascending, distinct sequence.
	ErrIndicesNotSorted = errors.New("merkletree: leaf indices must be sorted and distinct")

	// ErrIndicesEmpty is returned by Prove when given no indices.
	ErrIndicesEmpty = errors.New("merkletree: at least one leaf index is required")

	// ErrProofMalformed is returned by VerifyComputeRoot when the flag/hash
	// queues underflow, the flag count doesn't match the hash count, or the
	// working queue doesn't reduce to exactly one root.
	ErrProofMalformed = errors.New("merkletree: malformed multi-proof")

	// ErrTooManyFlags is returned by ProofFlagsToBits when given more than
	// 256 flags, the width of the packed bitmap.
	ErrTooManyFlags = errors.New("merkletree: cannot pack more than 256 proof flags")
)
