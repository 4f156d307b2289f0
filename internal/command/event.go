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

// EventCommandAction produces the event overview artifact for an event on a
// server, serving it from the cache when current. With no --id the event
// running now is resolved first.
func EventCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	c, err := OpenCache(cmd)
	if err != nil {
		return err
	}
	cl, err := OpenClient(cmd)
	if err != nil {
		return err
	}

	server := client.ServerID(cmd.String("server"))

	eventID := cmd.Int("id")
	if eventID == 0 {
		ev, err := cl.CurrentEvent(ctx, server)
		if err != nil {
			return err
		}
		eventID = ev.ID
	}

	params := cache.Params{
		"event_id": eventID,
		"server":   client.ServerCode(server),
	}

	path, err := Produce(c, cache.CategoryEvent, params, func() (any, error) {
		ev, err := cl.CurrentEvent(ctx, server)
		if err != nil || ev.ID != eventID {
			// Asked for a specific event rather than the live one.
			detail, derr := cl.EventDetail(ctx, eventID, false)
			if derr != nil {
				return nil, derr
			}
			return map[string]any{
				"event_id": eventID,
				"server":   client.ServerCode(server),
				"detail":   detail.Value(),
			}, nil
		}
		return map[string]any{
			"event_id": ev.ID,
			"server":   client.ServerCode(server),
			"name":     ev.Name,
			"type":     ev.Type,
			"start_at": ev.StartAt,
			"end_at":   ev.EndAt,
		}, nil
	})
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}

// EventCommandBuilder constructs the cli.Command for "event".
func EventCommandBuilder(cmd *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "event",
		Usage:     "event overview artifact",
		UsageText: `bdorictl event [--id N] [--server cn]`,
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:        "id",
				Usage:       "event ID (defaults to the event running now)",
				HideDefault: true,
			},
			NewServerFlag("event"),
		}, NewGlobalFlags("event")...),
		Action: EventCommandAction,
	}
}
