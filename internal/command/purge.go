// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/findx010197/bdorictl/internal/meta"
)

// PurgeCommandAction runs the cleanup pair (TTL expiry scan, then LRU
// eviction) once, or keeps running them on the configured interval with
// --watch until interrupted.
func PurgeCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	c, err := OpenCache(cmd)
	if err != nil {
		return err
	}

	expired := c.CleanupExpired()
	evicted := c.CleanupBySize()
	fmt.Printf("expired: %d entries (%s), evicted: %d entries (%s)\n",
		expired.Deleted, humanize.Bytes(uint64(expired.FreedBytes)),
		evicted.Deleted, humanize.Bytes(uint64(evicted.FreedBytes)))

	if cmd.Bool("watch") {
		wctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		c.Run(wctx)
	}
	return nil
}

// PurgeCommandBuilder constructs the cli.Command for "purge".
func PurgeCommandBuilder(cmd *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "purge",
		Usage:     "run cache cleanup",
		UsageText: `bdorictl purge [options]`,
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "keep running cleanup on the configured interval",
				Value: false,
			},
		}, NewGlobalFlags("purge")...),
		Action: PurgeCommandAction,
	}
}
