// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package cache

// Short category names accepted on the public API.
const (
	CategoryEvent    = "event"
	CategoryCard     = "card"
	CategoryBirthday = "birthday"
)

// bucketNames maps short category aliases to their plural storage bucket
// names. Unknown categories fall through unchanged so the same logical
// category can never resolve to two different buckets.
var bucketNames = map[string]string{
	CategoryEvent:    "events",
	CategoryCard:     "cards",
	CategoryBirthday: "birthdays",
}

// knownBuckets is the fixed set of bucket directories created under the
// cache root and scanned during cleanup.
var knownBuckets = []string{"events", "cards", "birthdays"}

// Bucket normalizes a category to its storage bucket name. It is applied
// identically on every read, write, and delete path.
func Bucket(category string) string {
	if b, ok := bucketNames[category]; ok {
		return b
	}
	return category
}
