// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/findx010197/bdorictl/internal/config"
	"github.com/findx010197/bdorictl/internal/meta"
)

// InitApp builds the root cli.Command with every subcommand wired.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg immediately following the binary is the subcommand and also
	// the namespace key for config lookups, unless it looks like a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, _ := config.Load(ns)
	m := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:  "bdorictl",
		Usage: "Bestdori artifact cache control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "bdorictl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		BirthdayCommandBuilder(app, m),
		CardCommandBuilder(app, m),
		ClearCommandBuilder(app, m),
		EventCommandBuilder(app, m),
		GetCommandBuilder(app, m),
		ListCommandBuilder(app, m),
		PurgeCommandBuilder(app, m),
		PutCommandBuilder(app, m),
		RmCommandBuilder(app, m),
		StatsCommandBuilder(app, m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
