// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/findx010197/bdorictl/internal/cache"
	"github.com/findx010197/bdorictl/internal/meta"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    cache.Params
		wantErr bool
	}{
		{
			name: "string value",
			in:   []string{"server=cn"},
			want: cache.Params{"server": "cn"},
		},
		{
			name: "integer value coerced",
			in:   []string{"event_id=123"},
			want: cache.Params{"event_id": 123},
		},
		{
			name: "mixed pairs",
			in:   []string{"event_id=123", "server=cn"},
			want: cache.Params{"event_id": 123, "server": "cn"},
		},
		{
			name: "value containing equals",
			in:   []string{"expr=a=b"},
			want: cache.Params{"expr": "a=b"},
		},
		{
			name: "empty input",
			in:   nil,
			want: cache.Params{},
		},
		{
			name:    "missing separator",
			in:      []string{"noequals"},
			wantErr: true,
		},
		{
			name:    "empty key",
			in:      []string{"=value"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseParams(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetMeta(t *testing.T) {
	assert.Equal(t, meta.Meta{}, GetMeta(nil))
	assert.Equal(t, meta.Meta{}, GetMeta(&cli.Command{}))

	m := meta.Meta{Args: []string{"bdorictl", "stats"}}
	cmd := &cli.Command{Metadata: map[string]any{"meta": m}}
	assert.Equal(t, m, GetMeta(cmd))

	bad := &cli.Command{Metadata: map[string]any{"meta": "wrong type"}}
	assert.Equal(t, meta.Meta{}, GetMeta(bad))
}

func TestProduce(t *testing.T) {
	c, err := cache.New(t.TempDir(), cache.DefaultOptions())
	require.NoError(t, err)

	calls := 0
	generate := func() (any, error) {
		calls++
		return map[string]any{"id": 1, "name": "test"}, nil
	}

	params := cache.Params{"event_id": 1}
	path1, err := Produce(c, "event", params, generate)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	data, err := os.ReadFile(path1)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "test"`)

	// Second call is a hit; generate does not run again.
	path2, err := Produce(c, "event", params, generate)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, path1, path2)
}

func TestProduceDisabledCache(t *testing.T) {
	opts := cache.DefaultOptions()
	opts.Enabled = false
	c, err := cache.New(t.TempDir(), opts)
	require.NoError(t, err)

	path, err := Produce(c, "event", cache.Params{"event_id": 1},
		func() (any, error) { return map[string]any{"id": 1}, nil })
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	// Store is skipped, so the fresh temp file comes back.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id": 1`)
}

// runApp builds a fresh app and runs one invocation.
func runApp(t *testing.T, args ...string) error {
	t.Helper()
	ctx := context.Background()
	app, err := InitApp(ctx, args)
	require.NoError(t, err)
	return app.Run(ctx, args)
}

func TestListCommandLimit(t *testing.T) {
	dir := t.TempDir()

	err := runApp(t, "bdorictl", "list", "--cache-dir", dir, "--limit", "5")
	require.NoError(t, err)

	// The validator rejects non-positive limits.
	err = runApp(t, "bdorictl", "list", "--cache-dir", dir, "--limit", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit must be positive")
}

func TestPutCommandTTLOverride(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(t.TempDir(), "render.png")
	require.NoError(t, os.WriteFile(src, []byte("png bytes"), 0o600))

	err := runApp(t, "bdorictl", "put", "--cache-dir", dir,
		"--category", "event", "-p", "event_id=1", "--file", src, "--ttl", "120")
	require.NoError(t, err)

	c, err := cache.New(dir, cache.DefaultOptions())
	require.NoError(t, err)
	entries := c.List("event", 10)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(120), entries[0].TTL)
}

func TestProduceGenerateError(t *testing.T) {
	c, err := cache.New(t.TempDir(), cache.DefaultOptions())
	require.NoError(t, err)

	_, err = Produce(c, "event", cache.Params{"event_id": 1},
		func() (any, error) { return nil, assert.AnError })
	assert.ErrorIs(t, err, assert.AnError)
}
