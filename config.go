// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Statikbin
// Source: github.com/statikbin/filecache

package filecache

import "log/slog"

// Config carries per-instance settings. It replaces ambient process-wide
// state so two caches with different source roots can coexist in one
// process and in parallel tests.
type Config struct {
	// SourceRoot is the path prefix stripped by RelativePath and the
	// absolute-path query variants. Matching is byte-exact.
	SourceRoot string
	// Policy decides per-path compressibility and performs encode/decode.
	// Nil selects DefaultPolicy.
	Policy Policy
	// Backend, when non-nil, selects the alternate cache backend; all
	// operations delegate to it and the built-in archive format is bypassed.
	Backend Backend
	// Logger receives diagnostics (madvise failures, backend detection).
	// Nil discards.
	Logger *slog.Logger
}

// applyDefaults fills zero-valued config fields with defaults.
func (c *Config) applyDefaults() {
	if c.Policy == nil {
		c.Policy = DefaultPolicy()
	}
}
