// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package cache

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
)

// evictHeadroom is the fraction of MaxSize that LRU eviction shrinks the
// cache down to, so the very next write does not immediately re-trigger it.
const evictHeadroom = 0.8

// CleanupResult reports what a cleanup pass removed.
type CleanupResult struct {
	Deleted    int   `json:"deleted"`
	FreedBytes int64 `json:"freed_bytes"`
}

// CleanupExpired scans every bucket and drops entries whose TTL has elapsed,
// removing their files. O(total entries), which is fine for a bounded cache.
// Running it twice with no writes in between deletes nothing the second time.
func (c *Cache) CleanupExpired() CleanupResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cleanupExpiredLocked(c.now().Unix())
}

func (c *Cache) cleanupExpiredLocked(now int64) CleanupResult {
	var res CleanupResult

	for _, bucket := range bucketScanOrder(c.ix) {
		for key, e := range c.ix.Buckets[bucket] {
			if !e.Expired(now) {
				continue
			}
			path := filepath.Join(c.dir, filepath.FromSlash(e.File))
			if st, err := os.Stat(path); err == nil {
				res.FreedBytes += st.Size()
				if err := os.Remove(path); err != nil {
					log.WithError(err).Warnf("failed to remove expired cache file %s", path)
				}
			}
			delete(c.ix.Buckets[bucket], key)
			res.Deleted++
			log.Debugf("expired cache removed: %s/%s", bucket, key)
		}
	}

	c.ix.Stats.TotalSize = c.ix.totalSize()
	c.ix.Stats.LastCleanup = now
	c.persistLocked()

	if res.Deleted > 0 {
		log.Infof("expired cleanup removed %d entries, freed %s",
			res.Deleted, humanize.Bytes(uint64(res.FreedBytes)))
	}
	return res
}

// CleanupBySize enforces the size bound. While total size exceeds MaxSize it
// evicts least-recently-accessed entries (accessed_at ascending, insertion
// sequence breaking ties) until total size is at or below 80% of MaxSize.
// A no-op while the cache is within bounds.
func (c *Cache) CleanupBySize() CleanupResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cleanupBySizeLocked()
}

func (c *Cache) cleanupBySizeLocked() CleanupResult {
	var res CleanupResult

	total := c.ix.totalSize()
	if total <= c.ix.Stats.MaxSize {
		return res
	}

	log.Infof("cache over limit (%s > %s), running LRU eviction",
		humanize.Bytes(uint64(total)), humanize.Bytes(uint64(c.ix.Stats.MaxSize)))

	type victim struct {
		bucket string
		key    string
		entry  *Entry
	}
	var all []victim
	for bucket, entries := range c.ix.Buckets {
		for key, e := range entries {
			all = append(all, victim{bucket, key, e})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i].entry, all[j].entry
		if a.AccessedAt != b.AccessedAt {
			return a.AccessedAt < b.AccessedAt
		}
		return a.Seq < b.Seq
	})

	target := int64(float64(c.ix.Stats.MaxSize) * evictHeadroom)
	for _, v := range all {
		if total <= target {
			break
		}
		path := filepath.Join(c.dir, filepath.FromSlash(v.entry.File))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.WithError(err).Warnf("failed to remove cache file %s", path)
		}
		total -= v.entry.Size
		res.FreedBytes += v.entry.Size
		delete(c.ix.Buckets[v.bucket], v.key)
		res.Deleted++
		log.Debugf("LRU evicted: %s/%s", v.bucket, v.key)
	}

	c.ix.Stats.TotalSize = c.ix.totalSize()
	c.persistLocked()

	log.Infof("LRU eviction removed %d entries, freed %s, now %s",
		res.Deleted, humanize.Bytes(uint64(res.FreedBytes)),
		humanize.Bytes(uint64(c.ix.Stats.TotalSize)))
	return res
}

// ClearCategory deletes every file and entry in one category's bucket.
func (c *Cache) ClearCategory(category string) CleanupResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	bucket := Bucket(category)
	var res CleanupResult
	for key, e := range c.ix.Buckets[bucket] {
		path := filepath.Join(c.dir, filepath.FromSlash(e.File))
		if st, err := os.Stat(path); err == nil {
			res.FreedBytes += st.Size()
			_ = os.Remove(path)
		}
		delete(c.ix.Buckets[bucket], key)
		res.Deleted++
	}

	c.ix.Stats.TotalSize = c.ix.totalSize()
	c.persistLocked()

	log.Infof("cache bucket %s cleared: %d entries, freed %s",
		bucket, res.Deleted, humanize.Bytes(uint64(res.FreedBytes)))
	return res
}

// ClearAll unconditionally deletes every file and entry in every bucket.
func (c *Cache) ClearAll() CleanupResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	var res CleanupResult
	for bucket, entries := range c.ix.Buckets {
		for key, e := range entries {
			path := filepath.Join(c.dir, filepath.FromSlash(e.File))
			if st, err := os.Stat(path); err == nil {
				res.FreedBytes += st.Size()
				_ = os.Remove(path)
			}
			delete(c.ix.Buckets[bucket], key)
			res.Deleted++
		}
	}

	c.ix.Stats.TotalSize = 0
	c.persistLocked()

	log.Infof("cache cleared: %d entries, freed %s",
		res.Deleted, humanize.Bytes(uint64(res.FreedBytes)))
	return res
}

// bucketScanOrder returns the index bucket names, known buckets first, so
// scans are deterministic even with ad hoc categories present.
func bucketScanOrder(ix *index) []string {
	order := make([]string, 0, len(ix.Buckets))
	seen := map[string]bool{}
	for _, b := range knownBuckets {
		if _, ok := ix.Buckets[b]; ok {
			order = append(order, b)
			seen[b] = true
		}
	}
	var rest []string
	for b := range ix.Buckets {
		if !seen[b] {
			rest = append(rest, b)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}
