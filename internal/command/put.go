// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/findx010197/bdorictl/internal/meta"
)

// PutCommandAction stores a produced artifact file under a category and
// parameter set, optionally overriding the category's default TTL.
func PutCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	params, err := ParseParams(cmd.StringSlice("param"))
	if err != nil {
		return err
	}

	c, err := OpenCache(cmd)
	if err != nil {
		return err
	}

	category := cmd.String("category")
	var ok bool
	if ttl := cmd.Int("ttl"); ttl > 0 {
		ok = c.Set(category, cmd.String("file"), params, int64(ttl))
	} else {
		ok = c.Set(category, cmd.String("file"), params)
	}
	if !ok {
		return fmt.Errorf("failed to cache %s", cmd.String("file"))
	}

	path, _ := c.Get(category, params)
	fmt.Println(path)
	return nil
}

// PutCommandBuilder constructs the cli.Command for "put".
func PutCommandBuilder(cmd *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "put",
		Usage:     "store an artifact in the cache",
		UsageText: `bdorictl put --category card --file render.png -p character_id=5`,
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			NewCategoryFlag(true),
			NewParamFlag(),
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "artifact file to store",
				Required: true,
			},
			&cli.IntFlag{
				Name:        "ttl",
				Usage:       "TTL override in seconds",
				HideDefault: true,
			},
		}, NewGlobalFlags("put")...),
		Action: PutCommandAction,
	}
}
