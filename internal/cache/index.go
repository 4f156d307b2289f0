// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package cache

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/apex/log"
)

// IndexFileName is the name of the persisted metadata index at the cache root.
const IndexFileName = "cache_index.json"

// index is the in-memory mirror of cache_index.json. It maps bucket name to
// key to entry, plus aggregate stats. The whole file is rewritten on every
// mutation; there is no incremental diffing.
type index struct {
	Buckets map[string]map[string]*Entry `json:"cache_index"`
	Stats   indexStats                   `json:"stats"`
}

type indexStats struct {
	TotalSize       int64 `json:"total_size"`
	MaxSize         int64 `json:"max_size"`
	LastCleanup     int64 `json:"last_cleanup"`
	CleanupInterval int64 `json:"cleanup_interval"`
}

// newIndex returns a fresh empty index seeded with the configured limits.
func newIndex(opts Options, now int64) *index {
	buckets := make(map[string]map[string]*Entry, len(knownBuckets))
	for _, b := range knownBuckets {
		buckets[b] = map[string]*Entry{}
	}
	return &index{
		Buckets: buckets,
		Stats: indexStats{
			MaxSize:         opts.MaxSize,
			LastCleanup:     now,
			CleanupInterval: opts.CleanupInterval,
		},
	}
}

// loadIndex reads the persisted index, falling back to a fresh empty one on
// any read or parse failure. A corrupt index is never fatal; the cache just
// cold-starts.
func loadIndex(path string, opts Options, now int64) *index {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).Warnf("failed to read cache index %s, starting empty", path)
		}
		return newIndex(opts, now)
	}

	var ix index
	if err := json.Unmarshal(data, &ix); err != nil {
		log.WithError(err).Warnf("cache index %s is corrupt, starting empty", path)
		return newIndex(opts, now)
	}

	if ix.Buckets == nil {
		ix.Buckets = map[string]map[string]*Entry{}
	}
	for _, b := range knownBuckets {
		if ix.Buckets[b] == nil {
			ix.Buckets[b] = map[string]*Entry{}
		}
	}

	// The configured limits win over whatever was persisted.
	ix.Stats.MaxSize = opts.MaxSize
	ix.Stats.CleanupInterval = opts.CleanupInterval
	if ix.Stats.LastCleanup == 0 {
		ix.Stats.LastCleanup = now
	}

	return &ix
}

// save rewrites the full index. A temp-file rename keeps a crashed write
// from leaving a truncated index behind.
func (ix *index) save(path string) error {
	data, err := json.MarshalIndent(ix, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache index: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write cache index: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace cache index: %w", err)
	}
	return nil
}

// lookup returns the entry for bucket/key, or nil.
func (ix *index) lookup(bucket, key string) *Entry {
	return ix.Buckets[bucket][key]
}

// totalSize sums Size over every indexed entry. It is recomputed in full
// after each mutation rather than tracked incrementally, trading O(n) per
// write for immunity to drift bugs on deletion and failure paths.
func (ix *index) totalSize() int64 {
	var total int64
	for _, entries := range ix.Buckets {
		for _, e := range entries {
			total += e.Size
		}
	}
	return total
}

// nextSeq returns an insertion sequence number greater than any in use.
func (ix *index) nextSeq() uint64 {
	var max uint64
	for _, entries := range ix.Buckets {
		for _, e := range entries {
			if e.Seq > max {
				max = e.Seq
			}
		}
	}
	return max + 1
}
