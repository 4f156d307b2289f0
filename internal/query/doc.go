// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

// Package query drills dotted paths into cached JSON artifacts.
package query
