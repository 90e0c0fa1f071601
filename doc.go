// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Statikbin
// Source: github.com/statikbin/filecache

/*
Package filecache packages a file tree into one binary archive blob at build
time and serves byte-exact reads of any entry by name at run time, without
touching the original filesystem.

An archive holds three kinds of entries: static files (raw bytes, optionally
with a gzip-compressed form), source placeholders (the path exists as a file
but carries no inline bytes), and directory markers synthesized from entry
path prefixes. Compressed forms are kept only when strictly smaller than 75%
of the original.

# Building

Register entries, then save:

	c := filecache.New(filecache.Config{SourceRoot: "/srv/app/"})
	defer c.Close()

	if err := c.RegisterPlaceholder("app.php", true); err != nil {
	    return err
	}
	if err := c.RegisterFile("assets/data.json", "/srv/app/assets/data.json"); err != nil {
	    return err
	}
	if err := c.Save("app.fc"); err != nil {
	    return err
	}

Compressibility is decided per path by the configured Policy; the default
policy compresses common text-like extensions with gzip. Custom rule sets
use github.com/woozymasta/pathrules:

	policy, err := filecache.NewGzipPolicy([]pathrules.Rule{
	    {Action: pathrules.ActionInclude, Pattern: "*.json"},
	    {Action: pathrules.ActionInclude, Pattern: "templates/**"},
	}, pathrules.MatcherOptions{
	    CaseInsensitive: true,
	    DefaultAction:   pathrules.ActionExclude,
	})
	if err != nil {
	    return err
	}
	c := filecache.New(filecache.Config{Policy: policy})

# Serving

Two loaders reconstruct the table. Load deserializes into owned buffers and
understands both the current and the legacy (headerless) sub-format:

	c := filecache.New(filecache.Config{})
	defer c.Close()
	if err := c.Load("app.fc", filecache.LoadOptions{DeferDecompress: true}); err != nil {
	    return err
	}

LoadMapped maps the file read-only and parses it zero-copy; entry bytes
alias the mapping until Close. It requires the current format version and
panics on legacy archives (a version negotiation bug, not runtime input):

	if err := c.LoadMapped("app.fc"); err != nil {
	    return err
	}

Queries behave identically under either loader:

	data, compressed, ok := c.Read("assets/data.json", false)

The compressed flag returned by Read is authoritative: with deferred
decompression only the compressed form is resident and Read returns it with
compressed=true even when the caller asked for raw bytes.

A loaded cache is immutable and safe for concurrent readers without locking.

# Alternate backend

Config.Backend delegates every operation to an external cache implementation
with its own archive format; DetectVersion reports BackendVersion for
archives that backend self-identifies.
*/
package filecache
