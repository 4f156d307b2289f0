// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/findx010197/bdorictl/internal/meta"
	"github.com/findx010197/bdorictl/internal/output"
)

// ListCommandAction prints cache entries, most recently accessed first.
func ListCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	c, err := OpenCache(cmd)
	if err != nil {
		return err
	}

	entries := c.List(cmd.String("category"), cmd.Int("limit"))

	headers := []string{"Category", "Key", "Params", "Size", "Accessed", "Expires"}
	var rows [][]string
	for _, e := range entries {
		params, _ := json.Marshal(e.Params)
		expires := humanize.Time(time.Unix(e.ExpiresAt, 0))
		if e.Expired {
			expires = "expired"
		}
		rows = append(rows, []string{
			e.Category,
			e.Key,
			string(params),
			humanize.Bytes(uint64(e.Size)),
			humanize.Time(time.Unix(e.AccessedAt, 0)),
			expires,
		})
	}

	output.Spit(os.Stdout, cmd.String("output"), entries, headers, rows)
	return nil
}

// ListCommandBuilder constructs the cli.Command for "list".
func ListCommandBuilder(cmd *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "list cache entries",
		UsageText: `bdorictl list [options]`,
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			NewCategoryFlag(false),
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "maximum entries to list",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("list.limit", altsrc.StringSourcer(cfg.Source)),
					yaml.YAML("limit", altsrc.StringSourcer(cfg.Source)),
				),
				Value: 20,
				Validator: func(value int) error {
					if value < 1 {
						return fmt.Errorf("limit must be positive")
					}
					return nil
				},
			},
		}, NewGlobalFlags("list")...),
		Action: ListCommandAction,
	}
}
