// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package cache

import (
	"github.com/findx010197/bdorictl/internal/config"
)

// Defaults for the cache configuration surface.
const (
	// DefaultMaxSize is the cache size bound in bytes (1 GiB).
	DefaultMaxSize = 1073741824

	// DefaultEventTTL is the event artifact TTL in seconds (24 hours).
	DefaultEventTTL = 86400

	// DefaultCardTTL is the card artifact TTL in seconds (7 days).
	DefaultCardTTL = 604800

	// DefaultBirthdayTTL is the birthday artifact TTL in seconds (30 days).
	DefaultBirthdayTTL = 2592000

	// DefaultCleanupInterval is the seconds between cleanup passes (24 hours).
	DefaultCleanupInterval = 86400
)

// Options configure a Cache.
type Options struct {
	// Enabled turns the cache off entirely when false; every Get misses
	// and every Set reports failure.
	Enabled bool

	// MaxSize is the size bound in bytes enforced by LRU eviction.
	MaxSize int64

	// Per-category TTLs in seconds.
	EventTTL    int64
	CardTTL     int64
	BirthdayTTL int64

	// CleanupInterval is the seconds between cleanup passes, both for the
	// background scheduler and the inline trigger on writes.
	CleanupInterval int64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Enabled:         true,
		MaxSize:         DefaultMaxSize,
		EventTTL:        DefaultEventTTL,
		CardTTL:         DefaultCardTTL,
		BirthdayTTL:     DefaultBirthdayTTL,
		CleanupInterval: DefaultCleanupInterval,
	}
}

// OptionsFromConfig builds Options from the cache.* keys of the loaded
// config file, falling back to the defaults for anything unset.
func OptionsFromConfig() Options {
	o := DefaultOptions()
	if v, err := config.GetBool("cache.enabled"); err == nil {
		o.Enabled = v
	}
	if v, err := config.GetInt("cache.max_size"); err == nil && v > 0 {
		o.MaxSize = int64(v)
	}
	if v, err := config.GetInt("cache.event_ttl"); err == nil && v > 0 {
		o.EventTTL = int64(v)
	}
	if v, err := config.GetInt("cache.card_ttl"); err == nil && v > 0 {
		o.CardTTL = int64(v)
	}
	if v, err := config.GetInt("cache.birthday_ttl"); err == nil && v > 0 {
		o.BirthdayTTL = int64(v)
	}
	if v, err := config.GetInt("cache.cleanup_interval"); err == nil && v > 0 {
		o.CleanupInterval = int64(v)
	}
	return o
}

// ttlFor returns the default TTL in seconds for a short category name.
// Unrecognized categories get the event default of 24 hours.
func (o Options) ttlFor(category string) int64 {
	switch category {
	case CategoryEvent:
		return o.EventTTL
	case CategoryCard:
		return o.CardTTL
	case CategoryBirthday:
		return o.BirthdayTTL
	default:
		return DefaultEventTTL
	}
}
