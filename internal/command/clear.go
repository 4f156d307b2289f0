// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/findx010197/bdorictl/internal/cache"
	"github.com/findx010197/bdorictl/internal/meta"
)

// ClearCommandAction empties the cache: every file and every index entry,
// or just one bucket when --category is given.
func ClearCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	c, err := OpenCache(cmd)
	if err != nil {
		return err
	}

	var res cache.CleanupResult
	if category := cmd.String("category"); category != "" {
		res = c.ClearCategory(category)
	} else {
		res = c.ClearAll()
	}
	fmt.Printf("cleared %d entries, freed %s\n",
		res.Deleted, humanize.Bytes(uint64(res.FreedBytes)))
	return nil
}

// ClearCommandBuilder constructs the cli.Command for "clear".
func ClearCommandBuilder(cmd *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "clear",
		Usage:     "remove every cache entry",
		UsageText: `bdorictl clear [options]`,
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			NewCategoryFlag(false),
		}, NewGlobalFlags("clear")...),
		Action: ClearCommandAction,
	}
}
