// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package command

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/findx010197/bdorictl/internal/cache"
	"github.com/findx010197/bdorictl/internal/client"
	"github.com/findx010197/bdorictl/internal/meta"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// CacheDir resolves the cache root: the --cache-dir flag (which is also fed
// by BDORICTL_CACHE_DIR and the config file), then the user cache dir.
func CacheDir(cmd *cli.Command) (string, error) {
	if dir := cmd.String("cache-dir"); dir != "" {
		return dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve cache directory: %w", err)
	}
	return filepath.Join(base, "bdorictl"), nil
}

// OpenCache builds the cache service for a command invocation.
func OpenCache(cmd *cli.Command) (*cache.Cache, error) {
	dir, err := CacheDir(cmd)
	if err != nil {
		return nil, err
	}
	return cache.New(dir, cache.OptionsFromConfig())
}

// OpenClient builds the Bestdori client, storing raw JSON under
// <cacheRoot>/data.
func OpenClient(cmd *cli.Command) (*client.Client, error) {
	dir, err := CacheDir(cmd)
	if err != nil {
		return nil, err
	}
	return client.New(filepath.Join(dir, "data"))
}

// ParseParams turns repeated key=value flags into cache params. Values that
// parse as integers become numbers so the derived key matches params built
// programmatically.
func ParseParams(pairs []string) (cache.Params, error) {
	params := cache.Params{}
	for _, pair := range pairs {
		k, v, found := strings.Cut(pair, "=")
		if !found || k == "" {
			return nil, fmt.Errorf("invalid param %q, expected key=value", pair)
		}
		if n, err := strconv.Atoi(v); err == nil {
			params[k] = n
		} else {
			params[k] = v
		}
	}
	return params, nil
}

// Produce resolves an artifact through the cache: on a hit the cached path
// is returned, otherwise generate is invoked, its result is written out as
// JSON, stored in the cache, and the cached path returned. When the cache is
// disabled or the store fails, the freshly produced file is returned as-is
// so the command still succeeds.
func Produce(c *cache.Cache, category string, params cache.Params,
	generate func() (any, error)) (string, error) {

	if path, ok := c.Get(category, params); ok {
		log.Debugf("cache hit for %s %v", category, params)
		return path, nil
	}

	v, err := generate()
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode artifact: %w", err)
	}

	tmp, err := os.CreateTemp("", "bdorictl-*.json")
	if err != nil {
		return "", fmt.Errorf("failed to create artifact file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write artifact file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write artifact file: %w", err)
	}

	if !c.Set(category, tmpPath, params) {
		// Disabled or store failure: hand back the fresh file.
		return tmpPath, nil
	}
	os.Remove(tmpPath)

	if path, ok := c.Get(category, params); ok {
		return path, nil
	}
	return "", fmt.Errorf("artifact vanished after store")
}
