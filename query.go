// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Statikbin
// Source: github.com/statikbin/filecache

package filecache

import (
	"fmt"
	"io"
	"sort"
)

// Exists reports whether name is present in the entry table.
func (c *FileCache) Exists(name string) bool {
	if c.cfg.Backend != nil {
		return c.cfg.Backend.EntryExists(name)
	}

	if name == "" {
		return false
	}

	_, ok := c.entries[name]
	return ok
}

// FileExists reports whether name is a static file or source placeholder.
// Placeholders count as files even though they carry no bytes.
func (c *FileCache) FileExists(name string) bool {
	if c.cfg.Backend != nil {
		return c.cfg.Backend.FileExists(name) || c.cfg.Backend.EmptyEntryExists(name)
	}

	if name == "" {
		return false
	}

	b, ok := c.entries[name]
	return ok && b.isFile()
}

// DirExists reports whether name is a synthesized directory entry.
func (c *FileCache) DirExists(name string) bool {
	if c.cfg.Backend != nil {
		return c.cfg.Backend.DirExists(name)
	}

	if name == "" {
		return false
	}

	b, ok := c.entries[name]
	return ok && b.isDirectory()
}

// ExistsAbs is Exists after SourceRoot normalization.
func (c *FileCache) ExistsAbs(path string) bool {
	return c.Exists(c.RelativePath(path))
}

// FileExistsAbs is FileExists after SourceRoot normalization.
func (c *FileCache) FileExistsAbs(path string) bool {
	return c.FileExists(c.RelativePath(path))
}

// DirExistsAbs is DirExists after SourceRoot normalization.
func (c *FileCache) DirExistsAbs(path string) bool {
	return c.DirExists(c.RelativePath(path))
}

// Read returns the bytes stored for name.
//
// The returned compressed flag is authoritative and may differ from
// wantCompressed: when only a compressed form is resident (deferred
// decompression), the compressed bytes are returned with compressed=true
// regardless of what was requested, and decoding is the caller's
// responsibility. Zero-length static files return a shared non-nil empty
// slice; directories and placeholders return nil data with ok=true.
// ok is false when name is absent.
//
// In mapped mode the returned slice aliases the mapped region and is valid
// until Close.
func (c *FileCache) Read(name string, wantCompressed bool) (data []byte, compressed bool, ok bool) {
	if c.cfg.Backend != nil {
		return c.cfg.Backend.FileContents(name)
	}

	if name == "" {
		return nil, false, false
	}

	b, found := c.entries[name]
	if !found {
		return nil, false, false
	}

	if wantCompressed && b.cdata != nil {
		return b.cdata, true, true
	}

	if !wantCompressed && b.data == nil && b.cdata != nil {
		// Only the compressed form is resident; the caller must decode.
		return b.cdata, true, true
	}

	if b.len == 0 {
		return emptyContent, false, true
	}

	return b.data, false, true
}

// FileSize returns the raw (uncompressed) byte count for name. Directory and
// placeholder entries report -1: they have no byte size. When only a
// compressed form is resident, the payload is decoded once just to learn the
// count and the decoded bytes are discarded.
func (c *FileCache) FileSize(name string) (int64, error) {
	if c.cfg.Backend != nil {
		size, ok := c.cfg.Backend.UncompressedFileSize(name)
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
		}

		return size, nil
	}

	if name == "" {
		return 0, fmt.Errorf("%w: empty name", ErrEntryNotFound)
	}

	b, ok := c.entries[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}

	if b.len >= 0 {
		return int64(b.len), nil
	}

	if b.cdata != nil {
		raw, err := c.cfg.Policy.Decode(b.cdata, int(b.clen))
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %w", ErrBadCompressedData, name, err)
		}

		return int64(len(raw)), nil
	}

	return -1, nil
}

// FileSizeAbs is FileSize after SourceRoot normalization.
func (c *FileCache) FileSizeAbs(path string) (int64, error) {
	return c.FileSize(c.RelativePath(path))
}

// EntryNames returns all entry paths in sorted order.
func (c *FileCache) EntryNames() []string {
	var names []string
	if c.cfg.Backend != nil {
		names = c.cfg.Backend.EntryNames()
	} else {
		names = append(make([]string, 0, len(c.names)), c.names...)
	}

	sort.Strings(names)
	return names
}

// Dump writes all entry paths to w, one per line, sorted.
func (c *FileCache) Dump(w io.Writer) error {
	for _, name := range c.EntryNames() {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return fmt.Errorf("dump entries: %w", err)
		}
	}

	return nil
}

// Len returns the number of entries in the table.
func (c *FileCache) Len() int {
	if c.cfg.Backend != nil {
		return len(c.cfg.Backend.EntryNames())
	}

	return len(c.entries)
}
