// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/findx010197/bdorictl/internal/meta"
	"github.com/findx010197/bdorictl/internal/query"
)

// GetCommandAction resolves a cached artifact path for a category and
// parameter set. Exits nonzero on a miss so scripts can branch on it. With
// --query the artifact is read as JSON and the drilled value is printed
// instead of the path.
func GetCommandAction(ctx context.Context, cmd *cli.Command) error {
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

	path, ok := c.Get(cmd.String("category"), params)
	if !ok {
		return fmt.Errorf("cache miss")
	}

	if q := cmd.String("query"); q != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read cached artifact: %w", err)
		}
		result := query.Drill(string(data), q)
		if !result.Exists() {
			return fmt.Errorf("no value at %s", q)
		}
		fmt.Println(result.String())
		return nil
	}

	fmt.Println(path)
	return nil
}

// GetCommandBuilder constructs the cli.Command for "get".
func GetCommandBuilder(cmd *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "resolve a cached artifact path",
		UsageText: `bdorictl get --category event -p event_id=123 -p server=cn`,
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			NewCategoryFlag(true),
			NewParamFlag(),
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "drill a dotted path into the cached JSON artifact",
			},
		}, NewGlobalFlags("get")...),
		Action: GetCommandAction,
	}
}
