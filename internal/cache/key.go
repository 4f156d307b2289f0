// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
)

// Params are the query parameters that identify a cached artifact, e.g.
// {"event_id": 123, "server": "cn"} or {"card_ids": [101, 102]}. Values must
// be JSON-serializable. Insertion order never matters.
type Params map[string]any

// keyDigestLen is the number of hex characters of the MD5 digest kept in a
// cache key. Collisions are irrelevant for a best-effort cache.
const keyDigestLen = 16

// Key derives the cache key for a category and parameter set. The params are
// serialized as canonical JSON (object keys sorted), hashed with MD5, and the
// key is "<category>_<first 16 hex chars>". The same logical query always
// yields the same key, across process restarts and regardless of the order
// params were assembled in.
func Key(category string, params Params) string {
	if params == nil {
		params = Params{}
	}
	// encoding/json sorts map keys, which is exactly the canonical form we
	// need. Marshal errors can only come from unserializable values; fold
	// those into the empty-object key rather than failing the lookup.
	canonical, err := json.Marshal(params)
	if err != nil {
		canonical = []byte("{}")
	}
	sum := md5.Sum(canonical)
	return category + "_" + hex.EncodeToString(sum[:])[:keyDigestLen]
}
