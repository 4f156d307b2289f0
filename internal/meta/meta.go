// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/findx010197/bdorictl/internal/config"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string
}
