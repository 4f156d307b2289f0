// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package cache

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/apex/log"
)

// Cache is the artifact cache service. One instance owns the cache directory
// tree, the in-memory index, and the mutex serializing every read-modify-
// write against it. Reads are not read-only at the storage layer: hits bump
// accessed_at and corrective deletions prune stale entries, and both persist
// the index.
type Cache struct {
	dir  string
	opts Options

	mu sync.Mutex
	ix *index

	// now is wall-clock time, injectable for tests.
	now func() time.Time
}

// New creates the cache rooted at dir, making the bucket directories and
// loading (or cold-starting) the index.
func New(dir string, opts Options) (*Cache, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	for _, b := range knownBuckets {
		if err := os.MkdirAll(filepath.Join(dir, b), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache bucket %s: %w", b, err)
		}
	}

	c := &Cache{
		dir:  dir,
		opts: opts,
		now:  time.Now,
	}
	c.ix = loadIndex(c.indexPath(), opts, c.now().Unix())
	return c, nil
}

// Dir returns the cache root directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Enabled reports whether caching is active.
func (c *Cache) Enabled() bool {
	return c.opts.Enabled
}

// Get resolves a cached artifact. It returns the absolute path and true on a
// hit. A miss (key absent, backing file gone, or TTL elapsed) returns
// ("", false); the two corrective cases also prune the stale entry so the
// index self-heals.
func (c *Cache) Get(category string, params Params) (string, bool) {
	if !c.opts.Enabled {
		return "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	bucket := Bucket(category)
	key := Key(category, params)

	e := c.ix.lookup(bucket, key)
	if e == nil {
		return "", false
	}

	path := filepath.Join(c.dir, filepath.FromSlash(e.File))
	if _, err := os.Stat(path); err != nil {
		log.Warnf("cache file missing for %s/%s, dropping entry", bucket, key)
		c.removeLocked(bucket, key, e)
		c.persistLocked()
		return "", false
	}

	now := c.now().Unix()
	if e.Expired(now) {
		log.Infof("cache expired: %s/%s", bucket, key)
		_ = os.Remove(path)
		c.removeLocked(bucket, key, e)
		c.persistLocked()
		return "", false
	}

	e.AccessedAt = now
	c.persistLocked()
	return path, true
}

// Set copies sourcePath into the category bucket and records the entry. The
// optional ttl override is in seconds; otherwise the category default
// applies. Returns false, with no state mutated, when the source is missing
// or the copy fails. A successful write opportunistically runs the cleanup
// pair when the cleanup interval has elapsed.
func (c *Cache) Set(category, sourcePath string, params Params, ttl ...int64) bool {
	if !c.opts.Enabled {
		return false
	}

	if _, err := os.Stat(sourcePath); err != nil {
		log.Errorf("cache source file missing: %s", sourcePath)
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	bucket := Bucket(category)
	key := Key(category, params)

	entryTTL := c.opts.ttlFor(category)
	if len(ttl) > 0 && ttl[0] > 0 {
		entryTTL = ttl[0]
	}

	name := category + "_" + key + filepath.Ext(sourcePath)
	relPath := bucket + "/" + name
	dst := filepath.Join(c.dir, bucket, name)

	// Pass-through categories get their bucket directory on first write.
	if err := os.MkdirAll(filepath.Join(c.dir, bucket), 0o755); err != nil {
		log.WithError(err).Errorf("failed to create cache bucket %s", bucket)
		return false
	}

	size, err := copyFile(sourcePath, dst)
	if err != nil {
		log.WithError(err).Errorf("failed to store cache file %s", dst)
		return false
	}

	now := c.now().Unix()
	if c.ix.Buckets[bucket] == nil {
		c.ix.Buckets[bucket] = map[string]*Entry{}
	}
	// An overwrite with a different source extension lands under a new file
	// name; drop the superseded artifact so it cannot linger uncounted.
	if prev := c.ix.lookup(bucket, key); prev != nil && prev.File != relPath {
		old := filepath.Join(c.dir, filepath.FromSlash(prev.File))
		if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
			log.WithError(err).Warnf("failed to remove superseded cache file %s", old)
		}
	}
	c.ix.Buckets[bucket][key] = &Entry{
		File:       relPath,
		CreatedAt:  now,
		AccessedAt: now,
		Size:       size,
		QueryHash:  key,
		TTL:        entryTTL,
		Params:     params,
		Seq:        c.ix.nextSeq(),
	}
	c.ix.Stats.TotalSize = c.ix.totalSize()
	c.persistLocked()

	log.Infof("cached %s/%s (%d bytes)", bucket, key, size)

	if now-c.ix.Stats.LastCleanup >= c.opts.CleanupInterval {
		log.Info("cleanup interval elapsed, running inline cleanup")
		c.cleanupExpiredLocked(now)
		c.cleanupBySizeLocked()
	}

	return true
}

// Delete removes the artifact and its index entry for the given query.
// Returns whether anything was actually removed; absent entries are a no-op.
func (c *Cache) Delete(category string, params Params) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	bucket := Bucket(category)
	key := Key(category, params)

	e := c.ix.lookup(bucket, key)
	if e == nil {
		return false
	}

	c.removeLocked(bucket, key, e)
	c.persistLocked()
	log.Infof("cache deleted: %s/%s", bucket, key)
	return true
}

// removeLocked deletes the backing file (best effort) and the index entry,
// then recomputes the aggregate size. Caller holds c.mu.
func (c *Cache) removeLocked(bucket, key string, e *Entry) {
	path := filepath.Join(c.dir, filepath.FromSlash(e.File))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warnf("failed to remove cache file %s", path)
	}
	delete(c.ix.Buckets[bucket], key)
	c.ix.Stats.TotalSize = c.ix.totalSize()
}

// persistLocked rewrites the index file. Persistence failures are logged and
// absorbed; the in-memory state remains authoritative for this process.
func (c *Cache) persistLocked() {
	if err := c.ix.save(c.indexPath()); err != nil {
		log.WithError(err).Error("failed to save cache index")
	}
}

func (c *Cache) indexPath() string {
	return filepath.Join(c.dir, IndexFileName)
}

// copyFile copies src to dst and returns the byte count written. A partial
// destination is removed on failure so the index never points at a torn file.
func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return 0, err
	}
	return n, nil
}
