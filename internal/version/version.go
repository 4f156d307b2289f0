// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

// Package version holds the build version, overridable at link time.
package version

// Version is set via -ldflags at release build time.
var Version = "0.1.0-dev"
