// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

// Package cache memoizes expensive rendered artifacts on disk so that
// repeated logical queries are served from files instead of re-triggering
// network fetches and rendering.
//
// Artifacts are partitioned into category buckets (events, cards,
// birthdays), keyed by a deterministic hash of the query parameters, and
// tracked in a single JSON index that is rewritten on every mutation.
// Entries expire by per-category TTL and the cache as a whole is bounded
// by a size limit enforced with LRU eviction down to 80% of the limit.
//
// All failures are absorbed at the package boundary: a miss looks the same
// to the caller whether the entry never existed, expired, or its backing
// file disappeared. Callers fall back to regenerating the artifact.
package cache
