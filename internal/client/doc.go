// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

// Package client fetches BanG Dream game data from the Bestdori API. Raw
// JSON documents are kept beside the data directory and reused for six hours
// by file mtime, with a stale-on-error fallback when the network is down.
// These fetches are the expensive upstream queries whose derived artifacts
// the cache package memoizes.
package client
