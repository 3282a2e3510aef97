package execreport

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/google/uuid"

	"github.com/certen/ccip-core/pkg/address"
	"github.com/certen/ccip-core/pkg/leafhash"
	"github.com/certen/ccip-core/pkg/proofcache"
)

func testLane() leafhash.Lane {
	return leafhash.Lane{
		SourceChainSelector: 10,
		DestChainSelector:   20,
		OnRamp:              address.MustNew([]byte{0x01, 0x02, 0x03}),
		DestFamily:          address.FamilyEVM,
		Version:             leafhash.VersionV1_6,
	}
}

func testMessage(seq uint64) *leafhash.Message {
	return &leafhash.Message{
		Header: leafhash.Header{
			SequenceNumber: seq,
			Nonce:          seq,
		},
		Sender:   address.MustNew(make([]byte, 20)),
		Receiver: address.MustNew(make([]byte, 20)),
		Data:     []byte{byte(seq)},
		GasLimit: big.NewInt(1000),
	}
}

// messageIDFor hashes m under lane and stamps the result into m.Header as
// its messageId, mirroring how messages arrive from the external layer
// (constructed with messageId already equal to their own leaf hash).
func messageIDFor(t *testing.T, lane leafhash.Lane, m *leafhash.Message) [32]byte {
	t.Helper()
	hasher, err := leafhash.NewLeafHasher(lane)
	if err != nil {
		t.Fatalf("NewLeafHasher: %v", err)
	}
	id, err := hasher(m)
	if err != nil {
		t.Fatalf("hasher: %v", err)
	}
	m.Header.MessageID = id
	return id
}

func TestCalculateFindsTargetAndVerifies(t *testing.T) {
	lane := testLane()
	m1 := testMessage(1)
	m2 := testMessage(2)
	messageIDFor(t, lane, m1)
	id2 := messageIDFor(t, lane, m2)

	asm := NewAssembler()
	report, err := asm.Calculate(context.Background(), []*leafhash.Message{m1, m2}, lane, id2, nil, nil)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if report.Message != m2 {
		t.Fatal("report.Message should be the target message")
	}
	if report.MerkleRoot == ([32]byte{}) {
		t.Fatal("expected non-zero merkle root")
	}
	if report.RequestID == uuid.Nil {
		t.Fatal("expected a non-zero RequestID")
	}
}

func TestCalculateMessageNotInBatch(t *testing.T) {
	lane := testLane()
	m1 := testMessage(5)
	m2 := testMessage(9)
	messageIDFor(t, lane, m1)
	messageIDFor(t, lane, m2)

	asm := NewAssembler()
	var target [32]byte
	target[0] = 0xde
	target[1] = 0xad
	_, err := asm.Calculate(context.Background(), []*leafhash.Message{m1, m2}, lane, target, nil, nil)
	var notFound *MessageNotInBatchError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want *MessageNotInBatchError", err)
	}
	if notFound.MinSeq != 5 || notFound.MaxSeq != 9 {
		t.Fatalf("sequence window = [%d, %d], want [5, 9]", notFound.MinSeq, notFound.MaxSeq)
	}
}

func TestCalculateMerkleRootMismatch(t *testing.T) {
	lane := testLane()
	m1 := testMessage(1)
	id1 := messageIDFor(t, lane, m1)

	asm := NewAssembler()
	var bogus [32]byte
	bogus[31] = 0x01
	_, err := asm.Calculate(context.Background(), []*leafhash.Message{m1}, lane, id1, &bogus, nil)
	var mismatch *MerkleRootMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want *MerkleRootMismatchError", err)
	}
	if mismatch.Expected != bogus {
		t.Fatalf("Expected = %x, want %x", mismatch.Expected, bogus)
	}
}

func TestCalculateSingleMessageRootEqualsLeaf(t *testing.T) {
	lane := testLane()
	m1 := testMessage(1)
	id1 := messageIDFor(t, lane, m1)

	asm := NewAssembler()
	report, err := asm.Calculate(context.Background(), []*leafhash.Message{m1}, lane, id1, nil, nil)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if report.MerkleRoot != id1 {
		t.Fatalf("single-message root = %x, want leaf %x", report.MerkleRoot, id1)
	}
	if len(report.Proofs) != 0 {
		t.Fatalf("single-message proof should need no hashes, got %d", len(report.Proofs))
	}
}

// countingCache wraps a MemoryCache and counts Get/Put calls so tests can
// assert a second Calculate call for the same batch hits the cache instead
// of recomputing.
type countingCache struct {
	*proofcache.MemoryCache
	gets, puts int
}

func newCountingCache() *countingCache {
	return &countingCache{MemoryCache: proofcache.NewMemoryCache()}
}

func (c *countingCache) Get(ctx context.Context, key proofcache.Key) (*proofcache.Entry, bool, error) {
	c.gets++
	return c.MemoryCache.Get(ctx, key)
}

func (c *countingCache) Put(ctx context.Context, key proofcache.Key, entry *proofcache.Entry) error {
	c.puts++
	return c.MemoryCache.Put(ctx, key, entry)
}

func TestCalculateCachesAcrossCalls(t *testing.T) {
	lane := testLane()
	m1 := testMessage(1)
	m2 := testMessage(2)
	messageIDFor(t, lane, m1)
	id2 := messageIDFor(t, lane, m2)

	cache := newCountingCache()
	asm := NewAssembler(WithCache(cache))

	first, err := asm.Calculate(context.Background(), []*leafhash.Message{m1, m2}, lane, id2, nil, nil)
	if err != nil {
		t.Fatalf("Calculate (first): %v", err)
	}
	if cache.gets != 1 || cache.puts != 1 {
		t.Fatalf("after first call: gets=%d puts=%d, want 1/1", cache.gets, cache.puts)
	}

	second, err := asm.Calculate(context.Background(), []*leafhash.Message{m1, m2}, lane, id2, nil, nil)
	if err != nil {
		t.Fatalf("Calculate (second): %v", err)
	}
	if cache.gets != 2 || cache.puts != 1 {
		t.Fatalf("after second call: gets=%d puts=%d, want 2/1 (second should hit cache, not re-Put)", cache.gets, cache.puts)
	}
	if second.MerkleRoot != first.MerkleRoot {
		t.Fatalf("cached MerkleRoot = %x, want %x", second.MerkleRoot, first.MerkleRoot)
	}
	if len(second.Proofs) != len(first.Proofs) {
		t.Fatalf("cached Proofs length = %d, want %d", len(second.Proofs), len(first.Proofs))
	}
}

func TestCalculateCacheHitStillChecksExpectedRoot(t *testing.T) {
	lane := testLane()
	m1 := testMessage(1)
	id1 := messageIDFor(t, lane, m1)

	cache := newCountingCache()
	asm := NewAssembler(WithCache(cache))

	if _, err := asm.Calculate(context.Background(), []*leafhash.Message{m1}, lane, id1, nil, nil); err != nil {
		t.Fatalf("Calculate (warm cache): %v", err)
	}

	var bogus [32]byte
	bogus[31] = 0x01
	_, err := asm.Calculate(context.Background(), []*leafhash.Message{m1}, lane, id1, &bogus, nil)
	var mismatch *MerkleRootMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want *MerkleRootMismatchError on cache-hit path too", err)
	}
}
