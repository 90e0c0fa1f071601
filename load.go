// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Statikbin
// Source: github.com/statikbin/filecache

package filecache

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// loadReadBuffer is the buffered reader size for sequential archive parsing.
const loadReadBuffer = 64 * 1024

// DetectVersion peeks at the first four bytes of the archive at path and
// returns its format version. When the configured backend recognizes the
// file as its own format, BackendVersion is returned instead. Archives that
// do not start with the marker report ErrUnknownFormat; legacy archives
// (written without a header) fall in that category and are still loadable
// via Load.
func (c *FileCache) DetectVersion(path string) (int16, error) {
	if c.cfg.Backend != nil && c.cfg.Backend.IsBackendArchive(path) {
		c.log().Info("autodetected backend archive format", "path", path)
		return BackendVersion, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open archive %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var head [headerSize]byte
	if _, err := io.ReadFull(f, head[:]); err != nil {
		return 0, fmt.Errorf("%w: %s: short header", ErrUnknownFormat, path)
	}

	if int16(binary.LittleEndian.Uint16(head[0:2])) != archiveMarker {
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	return int16(binary.LittleEndian.Uint16(head[2:4])), nil
}

// Load reads the archive at path into individually allocated entry buffers.
func (c *FileCache) Load(path string, opts LoadOptions) error {
	if c.cfg.Backend != nil {
		return fmt.Errorf("%w: owned load", errBackendUnsupported)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open archive %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := c.LoadFrom(f, opts); err != nil {
		return fmt.Errorf("archive %s: %w", path, err)
	}

	return nil
}

// LoadFrom reads a serialized archive from r into individually allocated
// entry buffers (owned mode). The leading marker selects the sub-format:
// marker plus version means the current format with on-disk payload
// terminators, anything else is the legacy format without header or
// terminators. Any failure abandons the load; the cache is then only safe
// to Close, not to query.
func (c *FileCache) LoadFrom(r io.Reader, opts LoadOptions) error {
	if c.cfg.Backend != nil {
		return fmt.Errorf("%w: owned load", errBackendUnsupported)
	}
	if c.closed {
		return ErrClosed
	}
	if c.mode == modeMapped {
		panic("filecache: owned load over a memory-mapped table")
	}

	br := bufio.NewReaderSize(r, loadReadBuffer)

	version := int16(0)
	head, err := br.Peek(2)
	if err != nil {
		if err == io.EOF && len(head) == 0 {
			// Zero entries is a valid archive in the legacy sub-format.
			c.loaded = true
			return nil
		}

		return fmt.Errorf("%w: read header: %w", ErrBadArchive, err)
	}
	if int16(binary.LittleEndian.Uint16(head)) == archiveMarker {
		var fixed [headerSize]byte
		if _, err := io.ReadFull(br, fixed[:]); err != nil {
			return fmt.Errorf("%w: short header", ErrBadArchive)
		}
		version = int16(binary.LittleEndian.Uint16(fixed[2:4]))
	}

	for {
		done, err := c.loadRecord(br, version, opts)
		if err != nil {
			return err
		}
		if done {
			break
		}
	}

	c.loaded = true

	return nil
}

// loadRecord reads one entry record. done is true at a clean end of stream.
func (c *FileCache) loadRecord(br *bufio.Reader, version int16, opts LoadOptions) (done bool, err error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(br, lenBuf[:]); err != nil {
		if err == io.EOF {
			return true, nil
		}

		return false, fmt.Errorf("%w: bad entry name length: %w", ErrBadArchive, err)
	}

	nameLen := int16(binary.LittleEndian.Uint16(lenBuf[:]))
	if nameLen <= 0 {
		return false, fmt.Errorf("%w: bad entry name length %d", ErrBadArchive, nameLen)
	}

	nameBuf := make([]byte, nameLen)
	if _, err := io.ReadFull(br, nameBuf); err != nil {
		return false, fmt.Errorf("%w: bad entry name: %w", ErrBadArchive, err)
	}
	name := string(nameBuf)

	if _, ok := c.entries[name]; ok {
		return false, fmt.Errorf("%w: %s appears twice", ErrDuplicateEntry, name)
	}

	var fields [5]byte
	if _, err := io.ReadFull(br, fields[:]); err != nil {
		return false, fmt.Errorf("%w: bad data length for %s: %w", ErrBadArchive, name, err)
	}
	flag := fields[0]
	length := int32(binary.LittleEndian.Uint32(fields[1:5]))

	b := &buffer{len: length, clen: -1}
	if length > 0 {
		// One extra byte holds the terminator: consumed from disk in the
		// current sub-format, synthesized in the legacy one.
		data := make([]byte, length+1)
		if version > 0 {
			if _, err := io.ReadFull(br, data); err != nil {
				return false, fmt.Errorf("%w: bad data for %s: %w", ErrBadArchive, name, err)
			}
			if data[length] != 0 {
				return false, fmt.Errorf("%w: bad payload terminator for %s", ErrBadArchive, name)
			}
		} else {
			if _, err := io.ReadFull(br, data[:length]); err != nil {
				return false, fmt.Errorf("%w: bad data for %s: %w", ErrBadArchive, name, err)
			}
			data[length] = 0
		}
		b.data = data[:length:length]

		if flag != 0 {
			if opts.DeferDecompress {
				b.clen = b.len
				b.cdata = b.data
				b.len = lenPlaceholder
				b.data = nil
			} else {
				raw, err := c.cfg.Policy.Decode(b.data, int(b.len))
				if err != nil {
					return false, fmt.Errorf("%w: %s: %w", ErrBadCompressedData, name, err)
				}
				if int64(len(raw)) > maxPayloadLen {
					return false, fmt.Errorf("%w: %s decodes to %d bytes", ErrBadArchive, name, len(raw))
				}

				b.clen = b.len
				b.cdata = b.data
				b.len = int32(len(raw))
				b.data = raw
			}
		}
	}

	c.insert(name, b)

	return false, nil
}
