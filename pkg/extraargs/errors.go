// Copyright 2025 Certen Protocol

package extraargs

import "errors"

// Sentinel errors for the ExtraArgs codec, matching the teacher's
// one-errors.go-per-package convention (pkg/execution/errors.go,
// pkg/batch/errors.go).
var (
	// ErrExtraArgsInvalid is wrapped with the offending family/tag/length
	// whenever a payload cannot be decoded to the expected schema.
	ErrExtraArgsInvalid = errors.New("extraargs: invalid payload")

	// ErrUnknownTag is returned when the 4-byte tag doesn't match any known
	// ExtraArgs variant.
	ErrUnknownTag = errors.New("extraargs: unknown tag")

	// ErrEncodeNotSupported is returned when Encode is asked for a
	// (variant, family) combination this module doesn't produce, per
	// DESIGN.md Open Question Decision 3.
	ErrEncodeNotSupported = errors.New("extraargs: encode not supported for this family")
)
