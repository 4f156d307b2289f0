// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/findx010197/bdorictl/internal/cache"
	"github.com/findx010197/bdorictl/internal/client"
	"github.com/findx010197/bdorictl/internal/meta"
)

// CardCommandAction produces the card-list artifact for one character,
// served from the cache while fresh.
func CardCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	ch, ok := client.CharacterByName(cmd.String("character"))
	if !ok {
		return fmt.Errorf("unknown character: %s", cmd.String("character"))
	}

	c, err := OpenCache(cmd)
	if err != nil {
		return err
	}
	cl, err := OpenClient(cmd)
	if err != nil {
		return err
	}

	params := cache.Params{"character_id": ch.ID}

	path, err := Produce(c, cache.CategoryCard, params, func() (any, error) {
		cards, err := cl.CharacterCards(ctx, ch.ID)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"character": ch,
			"cards":     cards,
		}, nil
	})
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}

// CardCommandBuilder constructs the cli.Command for "card".
func CardCommandBuilder(cmd *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "card",
		Usage:     "card list artifact for a character",
		UsageText: `bdorictl card --character kasumi`,
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "character",
				Aliases:  []string{"C"},
				Usage:    "character name or alias",
				Required: true,
			},
		}, NewGlobalFlags("card")...),
		Action: CardCommandAction,
	}
}
