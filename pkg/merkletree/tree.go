// Copyright 2025 Certen Protocol
//
// Package merkletree builds sparse binary Merkle trees over CCIP leaf
// hashes and assembles/verifies multi-proofs against them. Grounded on the
// teacher's pkg/merkle/tree.go, generalized from its fixed single-proof
// shape to the sorted-pair, flag-driven multi-proof scheme CCIP's manual
// execution report requires.
package merkletree

import (
	"bytes"
	"math/big"

	"github.com/certen/ccip-core/pkg/primitives"
)

// Bytes32 is a leaf, internal node, or root hash.
type Bytes32 = primitives.Bytes32

// MaxTreeLeaves bounds the number of leaves a single Tree may hold, guarding
// against unbounded memory growth from a malformed or adversarial batch.
const MaxTreeLeaves = 1 << 20

// ZeroHash stands in for a missing sibling whenever a layer has an odd
// number of nodes: the lone leftover node is combined with ZeroHash to
// produce its parent, rather than being promoted or duplicated. It is
// all-0xFF rather than all-zero so that this placeholder can never collide
// with a legitimate keccak256 digest the way an all-zero leaf plausibly
// could under a weak hasher.
var ZeroHash = func() Bytes32 {
	var z Bytes32
	for i := range z {
		z[i] = 0xFF
	}
	return z
}()

// internalDomainSeparator tags internal-node hashes so a two-leaf subtree's
// hash can never be replayed as a leaf, and vice versa.
var internalDomainSeparator = primitives.EncodeU64BE(1)

// hashInternal combines two sibling hashes into their parent. The pair is
// sorted lexicographically first, so the tree (and every proof against it)
// is agnostic to left/right ordering of equal siblings.
func hashInternal(a, b Bytes32) Bytes32 {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return primitives.Keccak256(internalDomainSeparator[:], a[:], b[:])
}

// Tree is a sparse binary Merkle tree built from a fixed leaf set. Layers
// are not padded to a power of two up front; instead, whenever a layer has
// an odd length, its last node is combined with ZeroHash to produce the
// next layer, one level at a time.
type Tree struct {
	layers    [][]Bytes32 // layers[0] is the leaf layer; last is the root
	leafCount int
}

// Build constructs a Tree over leaves in the order given. Leaf order is
// significant: leaf i's proof is always relative to index i in this order.
func Build(leaves []Bytes32) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyTree
	}
	if len(leaves) > MaxTreeLeaves {
		return nil, ErrTooManyLeaves
	}

	layer0 := make([]Bytes32, len(leaves))
	copy(layer0, leaves)

	layers := [][]Bytes32{layer0}
	for len(layers[len(layers)-1]) > 1 {
		cur := layers[len(layers)-1]
		next := make([]Bytes32, (len(cur)+1)/2)
		for i := range next {
			left := cur[2*i]
			right := ZeroHash
			if 2*i+1 < len(cur) {
				right = cur[2*i+1]
			}
			next[i] = hashInternal(left, right)
		}
		layers = append(layers, next)
	}

	return &Tree{layers: layers, leafCount: len(leaves)}, nil
}

// Root returns the tree's root hash.
func (t *Tree) Root() Bytes32 {
	top := t.layers[len(t.layers)-1]
	return top[0]
}

// LeafCount returns the original, unpadded number of leaves.
func (t *Tree) LeafCount() int {
	return t.leafCount
}

// Leaf returns the leaf hash at index i, which must be < LeafCount().
func (t *Tree) Leaf(i int) Bytes32 {
	return t.layers[0][i]
}

// Proof is a CCIP multi-proof: the sibling hashes the verifier can't derive
// on its own, plus a per-step flag telling it how to consume them.
type Proof struct {
	Hashes      []Bytes32
	SourceFlags []bool
}

// Prove builds a multi-proof for the given sorted, distinct leaf indices.
func (t *Tree) Prove(indices []int) (Proof, error) {
	if len(indices) == 0 {
		return Proof{}, ErrIndicesEmpty
	}
	for i, idx := range indices {
		if idx < 0 || idx >= t.leafCount {
			return Proof{}, ErrIndexOutOfRange
		}
		if i > 0 && indices[i-1] >= idx {
			return Proof{}, ErrIndicesNotSorted
		}
	}

	// A single-leaf tree has no internal structure: the leaf is the root,
	// and the proof is empty.
	if len(t.layers) == 1 {
		return Proof{}, nil
	}

	known := make(map[int]bool, len(indices))
	for _, idx := range indices {
		known[idx] = true
	}

	var hashes []Bytes32
	var flags []bool

	for level := 0; level < len(t.layers)-1; level++ {
		layer := t.layers[level]
		next := make(map[int]bool)
		nextLen := (len(layer) + 1) / 2
		for j := 0; j < nextLen; j++ {
			left := 2 * j
			right := 2*j + 1
			leftKnown := known[left]
			rightKnown := false
			rightVal := ZeroHash
			if right < len(layer) {
				rightKnown = known[right]
				rightVal = layer[right]
			}
			switch {
			case leftKnown && rightKnown:
				next[j] = true
				flags = append(flags, true)
			case leftKnown || rightKnown:
				if leftKnown {
					hashes = append(hashes, rightVal)
				} else {
					hashes = append(hashes, layer[left])
				}
				next[j] = true
				flags = append(flags, false)
			default:
				// Neither sibling known yet; this parent stays unknown
				// unless a later level pairs it with a known node.
			}
		}
		known = next
	}

	return Proof{Hashes: hashes, SourceFlags: flags}, nil
}

// VerifyComputeRoot recomputes the root a proof implies for the given
// subset of leaves (in ascending index order matching the indices Prove was
// called with) and returns it for the caller to compare against the
// expected root. It never takes an expected root itself, so the same
// routine serves both "verify" and "compute root for a not-yet-known tree"
// callers.
func VerifyComputeRoot(leaves []Bytes32, proof Proof) (Bytes32, error) {
	if len(leaves) == 0 {
		return Bytes32{}, ErrIndicesEmpty
	}
	if len(proof.SourceFlags) == 0 {
		if len(leaves) != 1 || len(proof.Hashes) != 0 {
			return Bytes32{}, ErrProofMalformed
		}
		return leaves[0], nil
	}

	total := len(proof.SourceFlags)
	working := make([]Bytes32, total)
	leafPos, workPos, proofPos := 0, 0, 0
	var i int // number of working entries produced so far

	popLeafOrWorking := func() (Bytes32, error) {
		if leafPos < len(leaves) {
			v := leaves[leafPos]
			leafPos++
			return v, nil
		}
		if workPos < i {
			v := working[workPos]
			workPos++
			return v, nil
		}
		return Bytes32{}, ErrProofMalformed
	}

	for i = 0; i < total; i++ {
		a, err := popLeafOrWorking()
		if err != nil {
			return Bytes32{}, err
		}
		var b Bytes32
		if proof.SourceFlags[i] {
			b, err = popLeafOrWorking()
			if err != nil {
				return Bytes32{}, err
			}
		} else {
			if proofPos >= len(proof.Hashes) {
				return Bytes32{}, ErrProofMalformed
			}
			b = proof.Hashes[proofPos]
			proofPos++
		}
		working[i] = hashInternal(a, b)
	}

	if leafPos != len(leaves) || proofPos != len(proof.Hashes) || workPos != total-1 {
		return Bytes32{}, ErrProofMalformed
	}

	return working[total-1], nil
}

// ProofFlagsToBits packs flags into a little-endian bitmap (bit i =
// flags[i]) and returns it as an unsigned 256-bit integer, the wire format
// the on-chain verifier expects for a sourceFlags array. At most 256 flags
// are supported.
func ProofFlagsToBits(flags []bool) (*big.Int, error) {
	if len(flags) > 256 {
		return nil, ErrTooManyFlags
	}
	result := new(big.Int)
	for i, f := range flags {
		if f {
			result.SetBit(result, i, 1)
		}
	}
	return result, nil
}
