// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/findx010197/bdorictl/internal/cache"
	"github.com/findx010197/bdorictl/internal/client"
	"github.com/findx010197/bdorictl/internal/meta"
)

// BirthdayCommandAction produces the birthday roster artifact for a month,
// served from the cache while fresh.
func BirthdayCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	month := cmd.Int("month")
	if month == 0 {
		month = int(time.Now().Month())
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("invalid month: %d", month)
	}

	c, err := OpenCache(cmd)
	if err != nil {
		return err
	}

	params := cache.Params{"month": month}

	path, err := Produce(c, cache.CategoryBirthday, params, func() (any, error) {
		return map[string]any{
			"month":      month,
			"characters": client.BirthdaysInMonth(time.Month(month)),
		}, nil
	})
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}

// BirthdayCommandBuilder constructs the cli.Command for "birthday".
func BirthdayCommandBuilder(cmd *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "birthday",
		Usage:     "birthday roster artifact for a month",
		UsageText: `bdorictl birthday [--month N]`,
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:        "month",
				Aliases:     []string{"m"},
				Usage:       "month number (defaults to the current month)",
				HideDefault: true,
			},
		}, NewGlobalFlags("birthday")...),
		Action: BirthdayCommandAction,
	}
}
