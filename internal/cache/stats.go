// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package cache

import (
	"sort"
)

// BucketStats is the entry count and byte size of one bucket.
type BucketStats struct {
	Count int   `json:"count"`
	Size  int64 `json:"size"`
}

// Stats is a point-in-time snapshot of cache occupancy.
type Stats struct {
	Enabled      bool                   `json:"enabled"`
	TotalSize    int64                  `json:"total_size"`
	MaxSize      int64                  `json:"max_size"`
	UsagePercent float64                `json:"usage_percent"`
	LastCleanup  int64                  `json:"last_cleanup"`
	Buckets      map[string]BucketStats `json:"buckets"`
}

// Summary is one entry as reported by List, with the derived expiry fields
// computed at call time.
type Summary struct {
	Category   string `json:"category"`
	Key        string `json:"key"`
	Params     Params `json:"params"`
	Size       int64  `json:"size"`
	CreatedAt  int64  `json:"created_at"`
	AccessedAt int64  `json:"accessed_at"`
	TTL        int64  `json:"ttl"`
	ExpiresAt  int64  `json:"expires_at"`
	Expired    bool   `json:"is_expired"`
}

// Stats reports per-bucket counts and sizes plus the aggregate figures.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Enabled:     c.opts.Enabled,
		TotalSize:   c.ix.Stats.TotalSize,
		MaxSize:     c.ix.Stats.MaxSize,
		LastCleanup: c.ix.Stats.LastCleanup,
		Buckets:     make(map[string]BucketStats, len(c.ix.Buckets)),
	}
	if s.MaxSize > 0 {
		s.UsagePercent = float64(s.TotalSize) / float64(s.MaxSize) * 100
	}
	for bucket, entries := range c.ix.Buckets {
		var bs BucketStats
		for _, e := range entries {
			bs.Count++
			bs.Size += e.Size
		}
		s.Buckets[bucket] = bs
	}
	return s
}

// List returns entry summaries sorted most-recently-accessed first,
// truncated to limit. An empty category lists every bucket; a short alias
// like "event" is normalized to its bucket.
func (c *Cache) List(category string, limit int) []Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now().Unix()

	buckets := bucketScanOrder(c.ix)
	if category != "" {
		buckets = []string{Bucket(category)}
	}

	var result []Summary
	for _, bucket := range buckets {
		for key, e := range c.ix.Buckets[bucket] {
			result = append(result, Summary{
				Category:   bucket,
				Key:        key,
				Params:     e.Params,
				Size:       e.Size,
				CreatedAt:  e.CreatedAt,
				AccessedAt: e.AccessedAt,
				TTL:        e.TTL,
				ExpiresAt:  e.ExpiresAt(),
				Expired:    now > e.ExpiresAt(),
			})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AccessedAt > result[j].AccessedAt
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
