// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package command

import (
	"fmt"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/findx010197/bdorictl/internal/config"
	"github.com/findx010197/bdorictl/internal/output"
)

func init() {
	cfg, _ = config.Load("")
}

var cfg config.Type

// NewGlobalFlags returns the flags shared by every subcommand. params[0] is
// the subcommand name, used to namespace config-file value sources.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "cache-dir",
			Usage:   "cache root directory",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("BDORICTL_CACHE_DIR"),
				yaml.YAML("cache.dir", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: func(value string) error {
				if !output.ValidFormat(value) {
					return fmt.Errorf("invalid output format: %s", value)
				}
				return nil
			},
		},
	}

	return
}

// NewServerFlag constructs the --server flag, sourced from the env and the
// config file with a per-command override.
func NewServerFlag(subcmd string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "server",
		Aliases: []string{"s"},
		Usage:   "game server (jp, en, tw, cn, kr)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("BDORICTL_SERVER"),
			yaml.YAML(subcmd+"."+"server", altsrc.StringSourcer(cfg.Source)),
			yaml.YAML("server", altsrc.StringSourcer(cfg.Source)),
		),
		Value: "cn",
	}
}

// NewCategoryFlag constructs the --category flag used by the raw cache
// operations.
func NewCategoryFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "category",
		Aliases:  []string{"c"},
		Usage:    "cache category (event, card, birthday)",
		Required: required,
	}
}

// NewParamFlag constructs the repeatable --param flag holding key=value
// pairs that identify a cached query.
func NewParamFlag() *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:    "param",
		Aliases: []string{"p"},
		Usage:   "query parameter as key=value (repeatable)",
	}
}
