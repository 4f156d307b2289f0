// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupExpired(t *testing.T) {
	c, clock := newTestCache(t, DefaultOptions())

	require.True(t, c.Set("event", writeSource(t, "a.png", 100), Params{"event_id": 1}, 10))
	require.True(t, c.Set("card", writeSource(t, "b.png", 200), Params{"char_id": 2}, 1000))

	*clock = clock.Add(500 * time.Second)

	res := c.CleanupExpired()
	assert.Equal(t, 1, res.Deleted)
	assert.Equal(t, int64(100), res.FreedBytes)
	assert.Equal(t, clock.Unix(), c.Stats().LastCleanup)
	assert.Equal(t, int64(200), c.Stats().TotalSize)

	// Idempotent: a second pass with no writes deletes nothing.
	res = c.CleanupExpired()
	assert.Equal(t, 0, res.Deleted)
	assert.Equal(t, int64(0), res.FreedBytes)
}

func TestCleanupBySizeNoop(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxSize = 1000
	c, _ := newTestCache(t, opts)

	require.True(t, c.Set("event", writeSource(t, "a.png", 400), Params{"event_id": 1}))

	res := c.CleanupBySize()
	assert.Equal(t, 0, res.Deleted)
	assert.Equal(t, int64(400), c.Stats().TotalSize)
}

// Three 400-byte entries against a 1000-byte limit: only the least recently
// accessed one goes, landing exactly on the 80% target.
func TestCleanupBySizeLRU(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxSize = 1000
	c, clock := newTestCache(t, opts)

	require.True(t, c.Set("event", writeSource(t, "a.png", 400), Params{"event_id": 1}))
	*clock = clock.Add(time.Second)
	require.True(t, c.Set("event", writeSource(t, "b.png", 400), Params{"event_id": 2}))
	*clock = clock.Add(time.Second)
	require.True(t, c.Set("event", writeSource(t, "c.png", 400), Params{"event_id": 3}))

	require.Equal(t, int64(1200), c.Stats().TotalSize)

	res := c.CleanupBySize()
	assert.Equal(t, 1, res.Deleted)
	assert.Equal(t, int64(400), res.FreedBytes)
	assert.Equal(t, int64(800), c.Stats().TotalSize)

	// The oldest-accessed entry is the one that went.
	assert.Nil(t, c.ix.lookup("events", Key("event", Params{"event_id": 1})))
	assert.NotNil(t, c.ix.lookup("events", Key("event", Params{"event_id": 2})))
	assert.NotNil(t, c.ix.lookup("events", Key("event", Params{"event_id": 3})))
}

// Eviction must never remove an entry while keeping one accessed earlier.
func TestCleanupBySizeNoInversion(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxSize = 500
	c, clock := newTestCache(t, opts)

	ids := []int{1, 2, 3, 4, 5}
	for _, id := range ids {
		require.True(t, c.Set("card", writeSource(t, "x.png", 200), Params{"char_id": id}))
		*clock = clock.Add(time.Second)
	}

	// A Get refreshes entry 1, making entry 2 the coldest.
	_, ok := c.Get("card", Params{"char_id": 1})
	require.True(t, ok)

	c.CleanupBySize()

	survivors := map[int]bool{}
	for _, id := range ids {
		if e := c.ix.lookup("cards", Key("card", Params{"char_id": id})); e != nil {
			survivors[id] = true
		}
	}

	// 5 x 200 = 1000 against max 500: evict down to <= 400, so two survive.
	assert.Len(t, survivors, 2)
	assert.True(t, survivors[1], "freshly accessed entry must survive")
	assert.False(t, survivors[2], "coldest entry must go first")
	assert.LessOrEqual(t, c.Stats().TotalSize, int64(400))
}

func TestCleanupBySizeTieBreak(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxSize = 1000
	c, _ := newTestCache(t, opts)

	// All entries share one accessed_at; insertion order must decide.
	for id := 1; id <= 3; id++ {
		require.True(t, c.Set("event", writeSource(t, "x.png", 400), Params{"event_id": id}))
	}

	c.CleanupBySize()

	assert.Nil(t, c.ix.lookup("events", Key("event", Params{"event_id": 1})))
	assert.NotNil(t, c.ix.lookup("events", Key("event", Params{"event_id": 2})))
	assert.NotNil(t, c.ix.lookup("events", Key("event", Params{"event_id": 3})))
}

func TestClearCategory(t *testing.T) {
	c, _ := newTestCache(t, DefaultOptions())

	require.True(t, c.Set("event", writeSource(t, "a.png", 100), Params{"event_id": 1}))
	require.True(t, c.Set("card", writeSource(t, "b.png", 200), Params{"char_id": 2}))

	res := c.ClearCategory("event")
	assert.Equal(t, 1, res.Deleted)
	assert.Equal(t, int64(100), res.FreedBytes)
	assert.Equal(t, int64(200), c.Stats().TotalSize)

	_, ok := c.Get("event", Params{"event_id": 1})
	assert.False(t, ok)
	_, ok = c.Get("card", Params{"char_id": 2})
	assert.True(t, ok)
}

func TestClearAll(t *testing.T) {
	c, _ := newTestCache(t, DefaultOptions())

	require.True(t, c.Set("event", writeSource(t, "a.png", 100), Params{"event_id": 1}))
	require.True(t, c.Set("card", writeSource(t, "b.png", 200), Params{"char_id": 2}))

	res := c.ClearAll()
	assert.Equal(t, 2, res.Deleted)
	assert.Equal(t, int64(300), res.FreedBytes)
	assert.Equal(t, int64(0), c.Stats().TotalSize)

	_, ok := c.Get("event", Params{"event_id": 1})
	assert.False(t, ok)

	// Bucket directories still exist; only their contents are gone.
	for _, bucket := range []string{"events", "cards", "birthdays"} {
		entries, err := os.ReadDir(filepath.Join(c.Dir(), bucket))
		require.NoError(t, err)
		assert.Empty(t, entries)
	}
}

func TestInlineCleanupOnSet(t *testing.T) {
	opts := DefaultOptions()
	opts.CleanupInterval = 60
	c, clock := newTestCache(t, opts)

	require.True(t, c.Set("event", writeSource(t, "a.png", 100), Params{"event_id": 1}, 10))

	// Past both the entry TTL and the cleanup interval: the next write
	// fires the cleanup pair inline.
	*clock = clock.Add(120 * time.Second)
	require.True(t, c.Set("event", writeSource(t, "b.png", 100), Params{"event_id": 2}))

	assert.Nil(t, c.ix.lookup("events", Key("event", Params{"event_id": 1})))
	assert.Equal(t, clock.Unix(), c.Stats().LastCleanup)
	assert.Equal(t, int64(100), c.Stats().TotalSize)
}

func TestSchedulerCancellation(t *testing.T) {
	opts := DefaultOptions()
	opts.CleanupInterval = 1
	c, _ := newTestCache(t, opts)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop on cancellation")
	}
}

func TestSchedulerRunsCleanup(t *testing.T) {
	opts := DefaultOptions()
	opts.CleanupInterval = 1
	c, clock := newTestCache(t, opts)

	require.True(t, c.Set("event", writeSource(t, "a.png", 100), Params{"event_id": 1}, 10))
	*clock = clock.Add(60 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	// The 1s ticker fires within a couple of real seconds and removes the
	// (fake-clock) expired entry.
	assert.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.ix.lookup("events", Key("event", Params{"event_id": 1})) == nil
	}, 5*time.Second, 50*time.Millisecond)
}
