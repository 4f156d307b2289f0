// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

// bdorictl is the main package for the bdorictl command line tool. It wires
// the CLI, delegates to internal packages, and serves as the entry point.
package main
