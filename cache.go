// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Statikbin
// Source: github.com/statikbin/filecache

package filecache

import "log/slog"

// FileCache packages files and directory markers into one archive blob and
// answers existence, byte, and size lookups over a loaded table.
//
// A cache is populated exactly once: either by the builder (RegisterFile,
// RegisterPlaceholder) or by one of the loaders (Load, LoadMapped). After
// population it is logically immutable and any number of goroutines may
// query it concurrently without locking, provided no goroutine mutates it.
// Construction and loading themselves are single-threaded.
//
// The table is in exactly one ownership mode for its whole lifetime: owned
// (buffers are ordinary heap slices) or mapped (buffers alias one read-only
// memory-mapped region released as a unit by Close). Mixing modes is a
// programmer error and panics.
type FileCache struct {
	cfg     Config
	entries map[string]*buffer
	// names preserves insertion order so Serialize output is stable for a
	// given build sequence.
	names  []string
	region []byte
	mode   ownershipMode
	loaded bool
	closed bool
}

// New creates an empty cache with the given configuration.
func New(cfg Config) *FileCache {
	cfg.applyDefaults()

	return &FileCache{
		cfg:     cfg,
		entries: make(map[string]*buffer),
	}
}

// log returns the configured logger, falling back to a discard logger.
func (c *FileCache) log() *slog.Logger {
	if c.cfg.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return c.cfg.Logger
}

// insert adds an entry, preserving insertion order for serialization.
// The caller must have verified the name is not present.
func (c *FileCache) insert(name string, b *buffer) {
	c.entries[name] = b
	c.names = append(c.names, name)
}

// Close releases the cache. In mapped mode the whole region is unmapped as a
// single unit and every entry buffer becomes invalid; in owned mode entry
// buffers are ordinary heap allocations and need no explicit release.
// Close is idempotent.
func (c *FileCache) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	if c.cfg.Backend != nil {
		return nil
	}

	if c.mode == modeMapped {
		region := c.region
		c.region = nil
		c.entries = nil
		c.names = nil
		return unmapRegion(region)
	}

	return nil
}

// AdviseOut hints to the memory manager that the mapped archive pages are
// not needed imminently. The mapping stays valid; later reads fault pages
// back in on demand. No-op for owned tables and backend-delegated caches.
func (c *FileCache) AdviseOut() {
	if c.cfg.Backend != nil || c.mode != modeMapped || len(c.region) == 0 {
		return
	}

	if err := adviseNotNeeded(c.region); err != nil {
		c.log().Error("madvise failed", "error", err)
	}
}
