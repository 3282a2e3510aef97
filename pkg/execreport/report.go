// Copyright 2025 Certen Protocol
//
// Package execreport assembles the manual-execution proof payload a caller
// submits to re-execute a single message out of a committed batch.
// Grounded on the teacher's pkg/execution/commitment_builder.go (the
// scan-then-assemble shape) generalized from its EVM-only commitment format
// to the family-polymorphic leaf hasher and merkle tree this module builds.
package execreport

import (
	"context"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/certen/ccip-core/pkg/address"
	"github.com/certen/ccip-core/pkg/leafhash"
	"github.com/certen/ccip-core/pkg/merkletree"
	"github.com/certen/ccip-core/pkg/primitives"
	"github.com/certen/ccip-core/pkg/proofcache"
	"github.com/certen/ccip-core/pkg/telemetry"
)

// CommitReport is the on-chain commit the assembler can optionally check
// its own computed root against.
type CommitReport struct {
	SourceChainSelector uint64
	OnRampAddress       address.Address
	MinSeqNr            uint64
	MaxSeqNr            uint64
	MerkleRoot          primitives.Bytes32
}

// ExecutionReport is the bundle a caller submits to manually execute a
// single message: the message itself, its multi-proof against the batch's
// root, and any opaque offchain token data the caller attaches verbatim.
type ExecutionReport struct {
	Message           *leafhash.Message
	Proofs            []primitives.Bytes32
	ProofFlagBits     *big.Int
	MerkleRoot        primitives.Bytes32
	OffchainTokenData [][]byte

	// RequestID correlates this Calculate call across logs and metric
	// labels emitted by the caller. It is never a hash input.
	RequestID uuid.UUID
}

// Assembler computes manual execution proofs. Every call is pure and
// synchronous with respect to its messages/lane arguments (spec.md §5);
// the optional Cache and Recorder are the only state it carries, and
// neither ever changes what a given call returns.
type Assembler struct {
	cache    proofcache.Cache
	recorder telemetry.Recorder
}

// AssemblerOption configures an Assembler at construction time, mirroring
// proofcache.PostgresCacheOption's functional-option shape.
type AssemblerOption func(*Assembler)

// WithCache attaches a proof cache. Calculate consults it before hashing
// and proving, and populates it after a fresh computation. Without this
// option, Calculate never caches and always recomputes.
func WithCache(cache proofcache.Cache) AssemblerOption {
	return func(a *Assembler) {
		a.cache = cache
	}
}

// WithRecorder attaches a metrics recorder. Without this option, Calculate
// uses telemetry.NoopRecorder and records nothing.
func WithRecorder(recorder telemetry.Recorder) AssemblerOption {
	return func(a *Assembler) {
		a.recorder = recorder
	}
}

// NewAssembler returns an Assembler. With no options, it has no cache and
// a no-op recorder, so its behavior is fully determined by Calculate's
// arguments.
func NewAssembler(opts ...AssemblerOption) *Assembler {
	a := &Assembler{recorder: telemetry.NoopRecorder{}}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Calculate implements calculate_manual_exec_proof: it locates
// targetMessageID within messages, hashes the batch under lane, builds the
// merkle tree, and proves the target's inclusion. If expectedRoot is
// non-nil, the computed root must match it or Calculate fails with
// MerkleRootMismatchError.
//
// If the Assembler was built WithCache, Calculate first checks the cache
// keyed by (lane, batch, target index); a hit skips re-hashing and
// re-proving entirely. A miss falls back to computing fresh and populates
// the cache for next time. The cache is purely an optimization: a miss, a
// disabled cache, or a cache error all fall back to the same fresh
// computation and never change the result.
func (a *Assembler) Calculate(
	ctx context.Context,
	messages []*leafhash.Message,
	lane leafhash.Lane,
	targetMessageID [32]byte,
	expectedRoot *[32]byte,
	offchainTokenData [][]byte,
) (report *ExecutionReport, err error) {
	start := time.Now()
	defer func() {
		a.recorder.ObserveAssembly(time.Since(start), err)
	}()

	targetIdx := -1
	var minSeq, maxSeq uint64
	for i, m := range messages {
		if i == 0 || m.Header.SequenceNumber < minSeq {
			minSeq = m.Header.SequenceNumber
		}
		if i == 0 || m.Header.SequenceNumber > maxSeq {
			maxSeq = m.Header.SequenceNumber
		}
		if m.Header.MessageID == targetMessageID {
			targetIdx = i
		}
	}
	if targetIdx == -1 {
		err = &MessageNotInBatchError{Target: targetMessageID, MinSeq: minSeq, MaxSeq: maxSeq}
		return nil, err
	}

	cacheKey := proofcache.Key{
		LaneHash:    hashLane(lane),
		BatchHash:   hashBatch(messages),
		TargetIndex: targetIdx,
	}

	if a.cache != nil {
		if entry, ok, cacheErr := a.cache.Get(ctx, cacheKey); cacheErr == nil && ok {
			if expectedRoot != nil && entry.MerkleRoot != *expectedRoot {
				err = &MerkleRootMismatchError{Expected: *expectedRoot, Computed: entry.MerkleRoot}
				return nil, err
			}
			report = &ExecutionReport{
				Message:           messages[targetIdx],
				Proofs:            entry.Proofs,
				ProofFlagBits:     entry.ProofFlagBits,
				MerkleRoot:        entry.MerkleRoot,
				OffchainTokenData: offchainTokenData,
				RequestID:         uuid.New(),
			}
			return report, nil
		}
	}

	hasher, err := leafhash.NewLeafHasher(lane)
	if err != nil {
		return nil, err
	}

	hashStart := time.Now()
	leaves, hashErr := leafhash.HashBatch(hasher, messages)
	a.recorder.ObserveLeafHash(string(lane.DestFamily), time.Since(hashStart), hashErr)
	if hashErr != nil {
		err = hashErr
		return nil, err
	}

	buildStart := time.Now()
	tree, buildErr := merkletree.Build(leaves)
	a.recorder.ObserveTreeBuild(len(leaves), time.Since(buildStart), buildErr)
	if buildErr != nil {
		err = buildErr
		return nil, err
	}

	proof, err := tree.Prove([]int{targetIdx})
	if err != nil {
		return nil, err
	}

	root := tree.Root()
	if expectedRoot != nil && root != *expectedRoot {
		err = &MerkleRootMismatchError{Expected: *expectedRoot, Computed: root}
		return nil, err
	}

	flagBits, err := merkletree.ProofFlagsToBits(proof.SourceFlags)
	if err != nil {
		return nil, err
	}

	report = &ExecutionReport{
		Message:           messages[targetIdx],
		Proofs:            proof.Hashes,
		ProofFlagBits:     flagBits,
		MerkleRoot:        root,
		OffchainTokenData: offchainTokenData,
		RequestID:         uuid.New(),
	}

	if a.cache != nil {
		_ = a.cache.Put(ctx, cacheKey, &proofcache.Entry{
			MerkleRoot:    root,
			Proofs:        proof.Hashes,
			ProofFlagBits: flagBits,
		})
	}

	return report, nil
}

// hashLane derives a stable identity hash for a lane, used as half of the
// proof cache key. It covers every field that changes which leaf hasher
// Calculate selects.
func hashLane(lane leafhash.Lane) primitives.Bytes32 {
	return primitives.Keccak256(
		primitives.EncodeU64BE(lane.SourceChainSelector)[:],
		primitives.EncodeU64BE(lane.DestChainSelector)[:],
		lane.OnRamp.Bytes(),
		[]byte(lane.DestFamily),
		[]byte(lane.Version),
	)
}

// hashBatch derives a stable identity hash for a batch of messages, used as
// the other half of the proof cache key. It hashes the already-known
// message IDs and sequence numbers rather than re-deriving anything, so
// consulting the cache never costs what it's meant to save.
func hashBatch(messages []*leafhash.Message) primitives.Bytes32 {
	parts := make([][]byte, 0, len(messages)*2)
	for _, m := range messages {
		id := m.Header.MessageID
		parts = append(parts, id[:], primitives.EncodeU64BE(m.Header.SequenceNumber)[:])
	}
	return primitives.Keccak256(parts...)
}
