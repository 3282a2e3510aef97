// Copyright 2025 Certen Protocol

package leafhash

import "errors"

// Sentinel errors for the leafhash package, matching the teacher's
// one-errors.go-per-package convention (pkg/execution/errors.go).
var (
	// ErrHasherVersionUnsupported is returned by NewLeafHasher when the
	// lane's (destination family, version) pair has no hasher. This
	// currently covers every Solana-destination lane: the exact V1_6 leaf
	// layout for Solana destinations is not specified upstream (see
	// DESIGN.md Open Question Decision 1), so this module refuses to guess
	// it rather than invent a wire format nothing can verify against.
	ErrHasherVersionUnsupported = errors.New("leafhash: no hasher for this destination family and version")

	// ErrExtraArgsInvalid wraps a decode failure, or the absence of a
	// pre-decoded field the hasher needed, while deriving gasLimit/
	// tokenReceiver/etc. from a message's extraArgs.
	ErrExtraArgsInvalid = errors.New("leafhash: message extraArgs invalid for this destination family")
)
