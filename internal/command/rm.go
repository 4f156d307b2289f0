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

// RmCommandAction deletes one cached artifact and its index entry.
func RmCommandAction(ctx context.Context, cmd *cli.Command) error {
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

	if c.Delete(cmd.String("category"), params) {
		fmt.Println("removed")
	} else {
		fmt.Println("not found")
	}
	return nil
}

// RmCommandBuilder constructs the cli.Command for "rm".
func RmCommandBuilder(cmd *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "remove one cache entry",
		UsageText: `bdorictl rm --category event -p event_id=123 -p server=cn`,
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			NewCategoryFlag(true),
			NewParamFlag(),
		}, NewGlobalFlags("rm")...),
		Action: RmCommandAction,
	}
}
