// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/findx010197/bdorictl/internal/meta"
	"github.com/findx010197/bdorictl/internal/output"
)

// StatsCommandAction reports cache occupancy per bucket and in aggregate.
func StatsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	c, err := OpenCache(cmd)
	if err != nil {
		return err
	}

	stats := c.Stats()

	headers := []string{"Bucket", "Entries", "Size"}
	var rows [][]string
	for _, bucket := range []string{"events", "cards", "birthdays"} {
		bs := stats.Buckets[bucket]
		rows = append(rows, []string{
			bucket,
			fmt.Sprintf("%d", bs.Count),
			humanize.Bytes(uint64(bs.Size)),
		})
	}
	rows = append(rows, []string{
		"total",
		"",
		fmt.Sprintf("%s / %s (%.1f%%)",
			humanize.Bytes(uint64(stats.TotalSize)),
			humanize.Bytes(uint64(stats.MaxSize)),
			stats.UsagePercent),
	})
	if stats.LastCleanup > 0 {
		rows = append(rows, []string{
			"last cleanup",
			"",
			humanize.Time(time.Unix(stats.LastCleanup, 0)),
		})
	}

	output.Spit(os.Stdout, cmd.String("output"), stats, headers, rows)
	return nil
}

// StatsCommandBuilder constructs the cli.Command for "stats".
func StatsCommandBuilder(cmd *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "cache statistics",
		UsageText: `bdorictl stats [options]`,
		Metadata: map[string]any{
			"meta": m,
		},
		Flags:  NewGlobalFlags("stats"),
		Action: StatsCommandAction,
	}
}
