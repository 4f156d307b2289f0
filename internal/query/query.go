// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var indexedKey = regexp.MustCompile(`^(.*)\[(\d+)\]$`)

// Drill resolves a dotted path like "startAt[3]" or "musicTitle[0]" into a
// JSON document. Segments index arrays with [n]; a single-element array is
// drilled through implicitly, so "items.id" works on {"items":[{"id":1}]}.
// A path that resolves nowhere returns a zero Result (Exists() == false).
func Drill(doc, path string) gjson.Result {
	result := gjson.Parse(doc)

	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			continue
		}

		key := seg
		idx := -1
		if m := indexedKey.FindStringSubmatch(seg); m != nil {
			key = m[1]
			idx, _ = strconv.Atoi(m[2])
		}

		result = elemOf(result)
		if key != "" {
			result = result.Get(key)
		}
		if idx >= 0 {
			arr := result.Array()
			if !result.IsArray() || idx >= len(arr) {
				return gjson.Result{}
			}
			result = arr[idx]
		}
		if !result.Exists() {
			return result
		}
	}

	return elemOf(result)
}

// elemOf unwraps a single-element array to its element.
func elemOf(r gjson.Result) gjson.Result {
	if r.IsArray() {
		if arr := r.Array(); len(arr) == 1 {
			return arr[0]
		}
	}
	return r
}
