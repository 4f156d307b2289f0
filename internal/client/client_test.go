// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a client at a local test server.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(t.TempDir())
	require.NoError(t, err)
	c.BaseURL = srv.URL
	return c
}

const eventsDoc = `{
	"1": {
		"eventName": ["past event jp", null, null, "past event cn", null],
		"eventType": "story",
		"startAt": ["1000000000000", null, null, "1000000000000", null],
		"endAt": ["1000600000000", null, null, "1000600000000", null]
	},
	"2": {
		"eventName": ["live event jp", null, null, "live event cn", null],
		"eventType": "challenge",
		"startAt": ["1700000000000", null, null, "1699990000000", null],
		"endAt": ["1700600000000", null, null, "1700600000000", null]
	},
	"3": {
		"eventName": ["future event", null, null, null, null],
		"eventType": "story",
		"startAt": ["1800000000000", null, null, "1800000000000", null],
		"endAt": ["1800600000000", null, null, "1800600000000", null]
	}
}`

const cardsDoc = `{
	"10": {
		"characterId": 5,
		"rarity": 3,
		"attribute": "powerful",
		"type": "permanent",
		"prefix": ["Old Card", null, null, null, null],
		"releasedAt": ["1600000000000", null, null, null, null]
	},
	"11": {
		"characterId": 5,
		"rarity": 4,
		"attribute": "cool",
		"type": "limited",
		"prefix": [null, null, null, "New Card", null],
		"releasedAt": ["1650000000000", null, null, "1650000000000", null]
	},
	"12": {
		"characterId": 6,
		"rarity": 5,
		"attribute": "happy",
		"type": "permanent",
		"prefix": ["Other Character", null, null, null, null],
		"releasedAt": ["1660000000000", null, null, null, null]
	}
}`

func TestEventsSidecarReuse(t *testing.T) {
	var hits int
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/events/all.5.json", r.URL.Path)
		_, _ = w.Write([]byte(eventsDoc))
	}))

	ctx := context.Background()
	doc, err := c.Events(ctx, false)
	require.NoError(t, err)
	assert.True(t, doc.Get("2").Exists())

	// Second call is served from the fresh sidecar.
	_, err = c.Events(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, hits)

	// Force bypasses the sidecar.
	_, err = c.Events(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestEventsStaleFallback(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	// A stale but valid sidecar is already on disk.
	path := filepath.Join(c.dataDir, "events.json")
	require.NoError(t, os.WriteFile(path, []byte(eventsDoc), 0o600))
	old := time.Now().Add(-24 * time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	doc, err := c.Events(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, doc.Get("1").Exists())
}

func TestEventsFetchFailure(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.Events(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestEventsInvalidJSON(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))

	_, err := c.Events(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestCurrentEventLive(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(eventsDoc))
	}))
	// Inside event 2's CN window.
	c.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }

	ev, err := c.CurrentEvent(context.Background(), ServerCN)
	require.NoError(t, err)
	assert.Equal(t, 2, ev.ID)
	assert.Equal(t, "live event cn", ev.Name)
	assert.Equal(t, "challenge", ev.Type)
}

func TestCurrentEventFallsBackToLatest(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(eventsDoc))
	}))
	// After event 2 ended, before event 3 starts: most recently started wins.
	c.now = func() time.Time { return time.UnixMilli(1_750_000_000_000) }

	ev, err := c.CurrentEvent(context.Background(), ServerCN)
	require.NoError(t, err)
	assert.Equal(t, 2, ev.ID)
}

func TestCurrentEventNoneFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))

	_, err := c.CurrentEvent(context.Background(), ServerCN)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no event found")
}

func TestCharacterCards(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards/all.5.json", r.URL.Path)
		_, _ = w.Write([]byte(cardsDoc))
	}))

	cards, err := c.CharacterCards(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	// Newest release first.
	assert.Equal(t, 11, cards[0].ID)
	assert.Equal(t, "New Card", cards[0].Name)
	assert.Equal(t, 4, cards[0].Rarity)
	assert.Equal(t, 10, cards[1].ID)
	assert.Equal(t, "Old Card", cards[1].Name)
}

func TestCharactersDoc(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/characters/all.2.json", r.URL.Path)
		_, _ = w.Write([]byte(`{"1": {"characterName": ["戸山香澄", null, null, null, null]}}`))
	}))

	doc, err := c.Characters(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, doc.Get("1").Exists())
}

func TestCharacterCardsNoMatches(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(cardsDoc))
	}))

	cards, err := c.CharacterCards(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, cards)
}
