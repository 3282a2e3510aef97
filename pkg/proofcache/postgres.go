// Copyright 2025 Certen Protocol
//
// Postgres-backed Cache, grounded on pkg/database/client.go's connection
// pool setup: functional ClientOption configuration, ping-on-construct, and
// a dedicated logger. Unlike the teacher's client, this one owns a single
// table rather than running migrations — callers apply proofcache's schema
// once via EnsureSchema.
package proofcache

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/lib/pq"

	"github.com/certen/ccip-core/pkg/primitives"
)

// PostgresCache stores cache entries in a Postgres table, pooling
// connections the way pkg/database/client.go does.
type PostgresCache struct {
	db     *sql.DB
	logger *log.Logger
}

// PostgresCacheOption configures a PostgresCache at construction time.
type PostgresCacheOption func(*PostgresCache)

// WithLogger overrides the PostgresCache's default logger.
func WithLogger(logger *log.Logger) PostgresCacheOption {
	return func(c *PostgresCache) {
		c.logger = logger
	}
}

// PostgresCacheConfig carries the connection-pool tuning a PostgresCache
// needs; it mirrors the subset of pkg/config.Config relevant here so this
// package doesn't import pkg/config directly.
type PostgresCacheConfig struct {
	DatabaseURL     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewPostgresCache opens a pooled connection to cfg.DatabaseURL and
// verifies it with a ping before returning.
func NewPostgresCache(cfg PostgresCacheConfig, opts ...PostgresCacheOption) (*PostgresCache, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("proofcache: database URL cannot be empty")
	}

	c := &PostgresCache{
		logger: log.New(log.Writer(), "[ProofCache] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(c)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("proofcache: open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("proofcache: ping database: %w", err)
	}

	c.db = db
	c.logger.Printf("Connected to proof cache database (max_conns=%d)", cfg.MaxOpenConns)
	return c, nil
}

// EnsureSchema creates the proof_cache_entries table if it doesn't already
// exist. Callers run this once at startup; it is not run implicitly by
// NewPostgresCache so read-only callers never need CREATE privileges.
func (c *PostgresCache) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS proof_cache_entries (
	lane_hash      BYTEA NOT NULL,
	batch_hash     BYTEA NOT NULL,
	target_index   INTEGER NOT NULL,
	merkle_root    BYTEA NOT NULL,
	proof_hashes   BYTEA[] NOT NULL,
	proof_flag_bits BYTEA NOT NULL,
	cached_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (lane_hash, batch_hash, target_index)
)`
	_, err := c.db.ExecContext(ctx, ddl)
	return err
}

// Close closes the underlying connection pool.
func (c *PostgresCache) Close() error {
	return c.db.Close()
}

func (c *PostgresCache) Get(ctx context.Context, key Key) (*Entry, bool, error) {
	const q = `SELECT merkle_root, proof_hashes, proof_flag_bits FROM proof_cache_entries
		WHERE lane_hash = $1 AND batch_hash = $2 AND target_index = $3`

	var root []byte
	var proofHashes pq.ByteaArray
	var flagBits []byte
	err := c.db.QueryRowContext(ctx, q, key.LaneHash[:], key.BatchHash[:], key.TargetIndex).
		Scan(&root, &proofHashes, &flagBits)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("proofcache: get: %w", err)
	}

	entry := &Entry{
		ProofFlagBits: new(big.Int).SetBytes(flagBits),
	}
	copy(entry.MerkleRoot[:], root)
	entry.Proofs = make([]primitives.Bytes32, len(proofHashes))
	for i, h := range proofHashes {
		copy(entry.Proofs[i][:], h)
	}
	return entry, true, nil
}

func (c *PostgresCache) Put(ctx context.Context, key Key, entry *Entry) error {
	const q = `INSERT INTO proof_cache_entries
		(lane_hash, batch_hash, target_index, merkle_root, proof_hashes, proof_flag_bits)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (lane_hash, batch_hash, target_index) DO UPDATE SET
			merkle_root = EXCLUDED.merkle_root,
			proof_hashes = EXCLUDED.proof_hashes,
			proof_flag_bits = EXCLUDED.proof_flag_bits`

	proofHashes := make(pq.ByteaArray, len(entry.Proofs))
	for i, h := range entry.Proofs {
		h := h
		proofHashes[i] = h[:]
	}

	_, err := c.db.ExecContext(ctx, q,
		key.LaneHash[:], key.BatchHash[:], key.TargetIndex,
		entry.MerkleRoot[:], proofHashes, entry.ProofFlagBits.Bytes())
	if err != nil {
		return fmt.Errorf("proofcache: put: %w", err)
	}
	return nil
}
