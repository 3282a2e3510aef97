// Copyright 2025 Certen Protocol
//
// Package proofcache memoizes Calculate results keyed by lane and batch, so
// repeated manual-execution requests against the same committed batch skip
// re-hashing and re-proving. A cache miss always falls back to computing
// fresh; the cache never changes the result, only how often it's recomputed.
package proofcache

import (
	"context"
	"math/big"

	"github.com/certen/ccip-core/pkg/primitives"
)

// Entry is the cached payload for a single (lane, batch, target index) key: everything
// execreport.ExecutionReport needs except the message itself, which the
// caller already has.
type Entry struct {
	MerkleRoot    primitives.Bytes32
	Proofs        []primitives.Bytes32
	ProofFlagBits *big.Int
}

// Key identifies a cached proof by lane and batch content, plus the target
// message within that batch. Two Calculate calls over the same messages,
// lane, and target always produce the same Entry.
type Key struct {
	LaneHash    primitives.Bytes32
	BatchHash   primitives.Bytes32
	TargetIndex int
}

// Cache stores and retrieves Entry values. Implementations must be safe
// for concurrent use.
type Cache interface {
	Get(ctx context.Context, key Key) (*Entry, bool, error)
	Put(ctx context.Context, key Key, entry *Entry) error
}
