// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package cache

// Entry is the index record for one cached artifact. File is relative to the
// cache root; timestamps are unix seconds. QueryHash redundantly stores the
// cache key so index listings are self-describing. Seq is a monotonically
// increasing insertion number used only to break accessed-at ties during LRU
// eviction, keeping eviction order deterministic.
type Entry struct {
	File       string `json:"file"`
	CreatedAt  int64  `json:"created_at"`
	AccessedAt int64  `json:"accessed_at"`
	Size       int64  `json:"size"`
	QueryHash  string `json:"query_hash"`
	TTL        int64  `json:"ttl"`
	Params     Params `json:"params"`
	Seq        uint64 `json:"seq"`
}

// ExpiresAt returns the unix second after which the entry is stale.
func (e *Entry) ExpiresAt() int64 {
	return e.CreatedAt + e.TTL
}

// Expired reports whether the entry's TTL has elapsed at the given unix time.
func (e *Entry) Expired(now int64) bool {
	return now-e.CreatedAt > e.TTL
}
