// Copyright 2025 Certen Protocol
//
// Package selector implements the chain-selector lookup table that backs the
// "Address & Selector Utilities" component of the CCIP core: a YAML-declared
// mapping from a chain's 64-bit selector to its address family and a human
// name, loaded once at startup per the teacher's flat-config style
// (pkg/config/config.go) but as data rather than per-deployment settings.
package selector

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/certen/ccip-core/pkg/address"
)

// Entry is a single row of the selector table.
type Entry struct {
	Selector uint64              `yaml:"selector"`
	Family   address.ChainFamily `yaml:"family"`
	Name     string              `yaml:"name"`
}

// ErrSelectorUnknown is returned by Lookup when the selector has no entry.
var ErrSelectorUnknown = fmt.Errorf("selector: unknown chain selector")

// Registry is an immutable selector -> (family, name) lookup table.
type Registry struct {
	entries map[uint64]Entry
}

// LoadYAML parses a list of Entry values from r. Every entry must name a
// valid ChainFamily; duplicate selectors are rejected since a selector must
// identify exactly one chain.
func LoadYAML(r io.Reader) (*Registry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("selector: read: %w", err)
	}

	var rows []Entry
	if err := yaml.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("selector: parse yaml: %w", err)
	}

	return build(rows)
}

func build(rows []Entry) (*Registry, error) {
	entries := make(map[uint64]Entry, len(rows))
	for _, row := range rows {
		if !row.Family.IsValid() {
			return nil, fmt.Errorf("selector: entry %d (%q) has invalid family %q", row.Selector, row.Name, row.Family)
		}
		if _, exists := entries[row.Selector]; exists {
			return nil, fmt.Errorf("selector: duplicate entry for selector %d", row.Selector)
		}
		entries[row.Selector] = row
	}
	return &Registry{entries: entries}, nil
}

// New builds a Registry directly from entries, for callers that already have
// them in memory (e.g. DefaultRegistry, or tests).
func New(rows []Entry) (*Registry, error) {
	return build(rows)
}

// Lookup resolves a chain selector to its family and name.
func (r *Registry) Lookup(sel uint64) (address.ChainFamily, string, error) {
	entry, ok := r.entries[sel]
	if !ok {
		return "", "", fmt.Errorf("%w: %d", ErrSelectorUnknown, sel)
	}
	return entry.Family, entry.Name, nil
}

// Len returns the number of entries in the registry.
func (r *Registry) Len() int {
	return len(r.entries)
}

// DefaultRegistry returns a small built-in table covering the families this
// module hashes for, intended for tests and callers that have not supplied
// their own selector file.
func DefaultRegistry() *Registry {
	reg, err := New([]Entry{
		{Selector: 5009297550715157269, Family: address.FamilyEVM, Name: "ethereum-mainnet"},
		{Selector: 3478487238524512106, Family: address.FamilyEVM, Name: "ethereum-sepolia"},
		{Selector: 16281711391670634445, Family: address.FamilyEVM, Name: "arbitrum-sepolia"},
		{Selector: 16423721717087811551, Family: address.FamilySolana, Name: "solana-devnet"},
		{Selector: 4741433654826277614, Family: address.FamilyAptos, Name: "aptos-testnet"},
		{Selector: 9632459993452104135, Family: address.FamilySui, Name: "sui-testnet"},
	})
	if err != nil {
		// The built-in table is a compile-time constant; a failure here is a
		// programming error in this file, not a runtime condition.
		panic(err)
	}
	return reg
}
