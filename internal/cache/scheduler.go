// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"time"

	"github.com/apex/log"
)

// Run drives the background cleanup loop: sleep the cleanup interval, then
// run the expiry scan followed by LRU eviction, until ctx is cancelled. No
// lock is held across the sleep, and every cleanup pass persists the index,
// so cancellation always leaves a fully-flushed index behind. Set fires the
// same pair inline when the interval has elapsed, so a stalled loop cannot
// leave the cache unbounded.
func (c *Cache) Run(ctx context.Context) {
	interval := time.Duration(c.opts.CleanupInterval) * time.Second
	log.Infof("cache cleanup scheduler started (interval %s)", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("cache cleanup scheduler stopped")
			return
		case <-ticker.C:
			log.Debug("running scheduled cache cleanup")
			c.CleanupExpired()
			c.CleanupBySize()
		}
	}
}
