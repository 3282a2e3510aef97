// Copyright 2025 Certen Protocol

package leafhash

import "github.com/certen/ccip-core/pkg/address"

// LeafHasherFunc is a lane-bound leaf hasher: a pure function from a decoded
// message to its 32-byte leaf hash.
type LeafHasherFunc func(*Message) (Bytes32, error)

// NewLeafHasher selects and constructs the leaf hasher for lane, by
// (lane.DestFamily, lane.Version), precomputing the lane's metadataHash
// once. The returned function is then O(|message|) per call.
func NewLeafHasher(lane Lane) (LeafHasherFunc, error) {
	switch lane.Version {
	case VersionV1_2, VersionV1_5:
		if lane.DestFamily != address.FamilyEVM {
			return nil, ErrHasherVersionUnsupported
		}
		return newLegacyEVMHasher(lane)
	case VersionV1_6:
		switch lane.DestFamily {
		case address.FamilyEVM:
			return newV16EVMHasher(lane)
		case address.FamilyAptos:
			return newV16AptosHasher(lane)
		case address.FamilySui:
			return newV16SuiHasher(lane)
		default:
			// Solana (and any other family): the exact V1_6 leaf layout is
			// not specified upstream. See DESIGN.md Open Question
			// Decision 1.
			return nil, ErrHasherVersionUnsupported
		}
	default:
		return nil, ErrHasherVersionUnsupported
	}
}

// HashBatch applies hasher to each message in order, returning leaves in
// the same order. Per spec.md §5, implementations may parallelize this
// internally; HashBatch does so with a bounded worker pool while
// preserving input order in the result, matching the teacher's
// pkg/batch worker-pool idiom.
func HashBatch(hasher LeafHasherFunc, messages []*Message) ([]Bytes32, error) {
	leaves := make([]Bytes32, len(messages))
	errs := make([]error, len(messages))

	const maxWorkers = 8
	workers := maxWorkers
	if len(messages) < workers {
		workers = len(messages)
	}
	if workers <= 1 {
		for i, m := range messages {
			leaves[i], errs[i] = hasher(m)
		}
	} else {
		jobs := make(chan int)
		done := make(chan struct{})
		for w := 0; w < workers; w++ {
			go func() {
				for i := range jobs {
					leaves[i], errs[i] = hasher(messages[i])
				}
				done <- struct{}{}
			}()
		}
		go func() {
			for i := range messages {
				jobs <- i
			}
			close(jobs)
		}()
		for w := 0; w < workers; w++ {
			<-done
		}
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return leaves, nil
}
