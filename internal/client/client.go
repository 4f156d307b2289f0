// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the Bestdori API root.
const DefaultBaseURL = "https://bestdori.com/api"

// sidecarMaxAge is how long a fetched JSON document is served from disk
// before it is considered stale and refetched.
const sidecarMaxAge = 6 * time.Hour

// Client fetches Bestdori game data. Raw documents land in dataDir and are
// reused while fresh; when a refetch fails and a stale sidecar exists, the
// stale copy is served as a fallback.
type Client struct {
	BaseURL string
	dataDir string
	http    *http.Client

	// now is wall-clock time, injectable for tests.
	now func() time.Time
}

// New creates a client storing JSON sidecars under dataDir.
func New(dataDir string) (*Client, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Client{
		BaseURL: DefaultBaseURL,
		dataDir: dataDir,
		http:    &http.Client{Timeout: 30 * time.Second},
		now:     time.Now,
	}, nil
}

// fetchJSON returns the parsed document for an endpoint, serving the local
// sidecar while it is younger than sidecarMaxAge unless force is set.
func (c *Client) fetchJSON(ctx context.Context, endpoint, filename string, force bool) (gjson.Result, error) {
	path := filepath.Join(c.dataDir, filename)

	if !force {
		if st, err := os.Stat(path); err == nil && c.now().Sub(st.ModTime()) < sidecarMaxAge {
			if data, err := os.ReadFile(path); err == nil && gjson.ValidBytes(data) {
				return gjson.ParseBytes(data), nil
			}
			// Unreadable or corrupt sidecar: fall through to refetch.
		}
	}

	url := c.BaseURL + "/" + endpoint
	log.Infof("fetching %s", url)

	data, err := c.download(ctx, url)
	if err != nil {
		// Network down: a stale sidecar beats a hard failure.
		if stale, rerr := os.ReadFile(path); rerr == nil && gjson.ValidBytes(stale) {
			log.Warnf("fetch failed (%v), using stale %s", err, filename)
			return gjson.ParseBytes(stale), nil
		}
		return gjson.Result{}, err
	}

	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("invalid JSON from %s", url)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		log.WithError(err).Warnf("failed to save %s", filename)
	}
	return gjson.ParseBytes(data), nil
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}

// Events returns the all-events summary document.
func (c *Client) Events(ctx context.Context, force bool) (gjson.Result, error) {
	return c.fetchJSON(ctx, "events/all.5.json", "events.json", force)
}

// Cards returns the all-cards summary document.
func (c *Client) Cards(ctx context.Context, force bool) (gjson.Result, error) {
	return c.fetchJSON(ctx, "cards/all.5.json", "cards.json", force)
}

// Characters returns the all-characters summary document.
func (c *Client) Characters(ctx context.Context, force bool) (gjson.Result, error) {
	return c.fetchJSON(ctx, "characters/all.2.json", "characters.json", force)
}

// EventDetail returns the full document for one event.
func (c *Client) EventDetail(ctx context.Context, eventID int, force bool) (gjson.Result, error) {
	return c.fetchJSON(ctx,
		fmt.Sprintf("events/%d.json", eventID),
		fmt.Sprintf("event_%d.json", eventID), force)
}

// Event is an event summary on one server.
type Event struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

// CurrentEvent returns the event running now on the given server, or when
// none is live, the most recently started one. Per-server fields in the
// Bestdori schema are five-element arrays of millisecond timestamps.
func (c *Client) CurrentEvent(ctx context.Context, server int) (*Event, error) {
	doc, err := c.Events(ctx, false)
	if err != nil {
		return nil, err
	}

	now := c.now()
	var current, latest *Event

	doc.ForEach(func(key, value gjson.Result) bool {
		id, err := strconv.Atoi(key.String())
		if err != nil {
			return true
		}
		start := serverMillis(value.Get("startAt"), server)
		end := serverMillis(value.Get("endAt"), server)
		if start.IsZero() || end.IsZero() {
			return true
		}
		ev := &Event{
			ID:      id,
			Name:    serverString(value.Get("eventName"), server),
			Type:    value.Get("eventType").String(),
			StartAt: start,
			EndAt:   end,
		}
		if !start.After(now) && !end.Before(now) {
			current = ev
			return false
		}
		if start.Before(now) && (latest == nil || start.After(latest.StartAt)) {
			latest = ev
		}
		return true
	})

	if current != nil {
		return current, nil
	}
	if latest != nil {
		return latest, nil
	}
	return nil, fmt.Errorf("no event found for server %s", ServerCode(server))
}

// Card is a card summary.
type Card struct {
	ID          int       `json:"id"`
	CharacterID int       `json:"character_id"`
	Rarity      int       `json:"rarity"`
	Attribute   string    `json:"attribute"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	ReleasedAt  time.Time `json:"released_at"`
}

// CharacterCards returns every card belonging to a character, newest first.
func (c *Client) CharacterCards(ctx context.Context, characterID int) ([]Card, error) {
	doc, err := c.Cards(ctx, false)
	if err != nil {
		return nil, err
	}

	var cards []Card
	doc.ForEach(func(key, value gjson.Result) bool {
		if int(value.Get("characterId").Int()) != characterID {
			return true
		}
		id, err := strconv.Atoi(key.String())
		if err != nil {
			return true
		}
		cards = append(cards, Card{
			ID:          id,
			CharacterID: characterID,
			Rarity:      int(value.Get("rarity").Int()),
			Attribute:   value.Get("attribute").String(),
			Type:        value.Get("type").String(),
			Name:        anyServerString(value.Get("prefix")),
			ReleasedAt:  anyServerMillis(value.Get("releasedAt")),
		})
		return true
	})

	sort.Slice(cards, func(i, j int) bool {
		if !cards[i].ReleasedAt.Equal(cards[j].ReleasedAt) {
			return cards[i].ReleasedAt.After(cards[j].ReleasedAt)
		}
		return cards[i].ID > cards[j].ID
	})
	return cards, nil
}

// serverMillis parses a per-server millisecond timestamp array element.
func serverMillis(arr gjson.Result, server int) time.Time {
	vals := arr.Array()
	if server < 0 || server >= len(vals) {
		return time.Time{}
	}
	ms := vals[server].Int()
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// serverString reads a per-server string array element, falling back
// through ServerPriority when missing on the requested server.
func serverString(arr gjson.Result, server int) string {
	vals := arr.Array()
	if server >= 0 && server < len(vals) && vals[server].String() != "" {
		return vals[server].String()
	}
	for _, s := range ServerPriority {
		if s < len(vals) && vals[s].String() != "" {
			return vals[s].String()
		}
	}
	return ""
}

// anyServerString returns the first non-empty element in priority order.
func anyServerString(arr gjson.Result) string {
	return serverString(arr, -1)
}

// anyServerMillis returns the earliest non-zero per-server timestamp.
func anyServerMillis(arr gjson.Result) time.Time {
	var earliest time.Time
	for _, v := range arr.Array() {
		if ms := v.Int(); ms != 0 {
			t := time.UnixMilli(ms)
			if earliest.IsZero() || t.Before(earliest) {
				earliest = t
			}
		}
	}
	return earliest
}
