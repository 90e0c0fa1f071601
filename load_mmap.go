// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Statikbin
// Source: github.com/statikbin/filecache

package filecache

import (
	"fmt"
	"os"
)

// LoadMapped maps the archive at path read-only and parses it without
// copying: every entry buffer is a slice of the mapped region. Only the
// current sub-format is supported; calling this on a legacy archive is a
// caller bug in version negotiation and panics. After parsing, the mapped
// pages are advised out to trim resident memory; reads stay valid until
// Close, which releases the whole region as one unit.
//
// With a configured backend the call delegates to the backend's own load.
func (c *FileCache) LoadMapped(path string) error {
	if c.cfg.Backend != nil {
		if c.cfg.Backend.IsBackendArchive(path) {
			c.log().Info("autodetected backend archive format", "path", path)
		}
		if err := c.cfg.Backend.LoadCache(path); err != nil {
			return fmt.Errorf("load cache from %s: %w", path, err)
		}

		return nil
	}

	if c.closed {
		return ErrClosed
	}
	if c.mode == modeMapped || c.loaded || len(c.entries) > 0 {
		panic("filecache: mapped load over a populated table")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open archive %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat archive %s: %w", path, err)
	}
	if fi.Size() < headerSize {
		return fmt.Errorf("%w: %s: short header", ErrBadArchive, path)
	}

	region, err := mapRegionReadOnly(f, fi.Size())
	if err != nil {
		return fmt.Errorf("mmap archive %s: %w", path, err)
	}

	// Tag the mode and stash the region before parsing so a failed parse
	// still tears down with a single unmap.
	c.mode = modeMapped
	c.region = region

	if err := c.parseMapped(region, path); err != nil {
		return err
	}

	c.loaded = true
	c.AdviseOut()

	return nil
}

// parseMapped walks the mapped region with a bounds-checked cursor and
// fills the entry table with slices aliasing the region. Compressed entries
// always defer decompression; materializing raw bytes here would defeat the
// zero-copy point.
func (c *FileCache) parseMapped(region []byte, path string) error {
	cur := newCursor(region)

	marker, err := cur.readInt16()
	if err != nil {
		return fmt.Errorf("%w: %s: short header", ErrBadArchive, path)
	}
	version, err := cur.readInt16()
	if err != nil {
		return fmt.Errorf("%w: %s: short header", ErrBadArchive, path)
	}
	if marker != archiveMarker || version <= 0 {
		panic(fmt.Sprintf("filecache: mapped load of legacy archive %s (marker %d, version %d)", path, marker, version))
	}

	for cur.remaining() > 0 {
		nameLen, err := cur.readInt16()
		if err != nil || nameLen <= 0 {
			return fmt.Errorf("%w: %s: bad entry name length", ErrBadArchive, path)
		}

		nameBytes, err := cur.take(int(nameLen))
		if err != nil {
			return fmt.Errorf("%w: %s: bad entry name", ErrBadArchive, path)
		}
		name := string(nameBytes)

		if _, ok := c.entries[name]; ok {
			return fmt.Errorf("%w: %s appears twice in %s", ErrDuplicateEntry, name, path)
		}

		flag, err := cur.readByte()
		if err != nil {
			return fmt.Errorf("%w: %s: bad data length for %s", ErrBadArchive, path, name)
		}
		length, err := cur.readInt32()
		if err != nil {
			return fmt.Errorf("%w: %s: bad data length for %s", ErrBadArchive, path, name)
		}

		b := &buffer{len: length, clen: -1}
		if length > 0 {
			payload, err := cur.take(int(length))
			if err != nil {
				return fmt.Errorf("%w: %s: truncated payload for %s", ErrBadArchive, path, name)
			}

			term, err := cur.readByte()
			if err != nil {
				return fmt.Errorf("%w: %s: truncated payload for %s", ErrBadArchive, path, name)
			}
			if term != 0 {
				// A non-null terminator after an in-bounds payload means the
				// archive content itself is corrupt, not merely truncated.
				panic(fmt.Sprintf("filecache: corrupt payload terminator for %s in %s", name, path))
			}

			if flag != 0 {
				b.clen = length
				b.cdata = payload
				b.len = lenPlaceholder
			} else {
				b.data = payload
			}
		}

		c.insert(name, b)
	}

	return nil
}
