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

// builderWriteBuffer is the buffered writer size used by Serialize.
const builderWriteBuffer = 64 * 1024

// RegisterPlaceholder inserts a source placeholder entry: the path exists as
// a file but carries no inline bytes. When addDirs is true, directory
// entries are synthesized for every parent prefix of name.
func (c *FileCache) RegisterPlaceholder(name string, addDirs bool) error {
	if err := c.checkRegister(name); err != nil {
		return err
	}

	if c.cfg.Backend != nil {
		if err := c.cfg.Backend.AddEmptyEntry(name); err != nil {
			return fmt.Errorf("add entry %s: %w", name, err)
		}

		return nil
	}

	c.insert(name, &buffer{len: lenPlaceholder, clen: -1})

	if addDirs {
		c.writeDirectories(name)
	}

	return nil
}

// RegisterFile reads the full contents of fullPath and inserts them under
// name. Payloads judged compressible by the policy keep a compressed form
// only when it is strictly smaller than 75% of the original size. Directory
// entries are synthesized for every parent prefix of name.
func (c *FileCache) RegisterFile(name, fullPath string) error {
	if err := c.checkRegister(name); err != nil {
		return err
	}
	if fullPath == "" {
		return fmt.Errorf("%w: empty source path for %s", ErrInvalidEntryPath, name)
	}

	if c.cfg.Backend != nil {
		if err := c.cfg.Backend.AddFileContents(name, fullPath); err != nil {
			return fmt.Errorf("add entry %s (%s): %w", name, fullPath, err)
		}

		return nil
	}

	if _, err := os.Stat(fullPath); err != nil {
		return fmt.Errorf("stat %s: %w", fullPath, err)
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", fullPath, err)
	}
	if int64(len(data)) > maxPayloadLen {
		return fmt.Errorf("%w: %s is %d bytes", ErrBadArchive, fullPath, len(data))
	}

	b := &buffer{len: int32(len(data)), clen: -1}
	if len(data) > 0 {
		b.data = data

		if c.cfg.Policy.Compressible(name) {
			// Keep the compressed form only when strictly smaller than 75%
			// of the original, integer math. Downstream tooling depends on
			// exactly which files end up compressed; do not change this.
			compressed, err := c.cfg.Policy.Encode(data)
			if err == nil && len(compressed) < (len(data)*3)/4 {
				b.clen = int32(len(compressed))
				b.cdata = compressed
			}
		}
	}

	c.insert(name, b)
	c.writeDirectories(name)

	return nil
}

// checkRegister validates builder preconditions shared by both register calls.
func (c *FileCache) checkRegister(name string) error {
	if c.mode == modeMapped {
		panic("filecache: register on a memory-mapped table")
	}
	if c.closed {
		return ErrClosed
	}
	if name == "" {
		return ErrInvalidEntryPath
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("%w: %q exceeds %d bytes", ErrInvalidEntryPath, name, maxNameLen)
	}
	if c.cfg.Backend == nil && c.Exists(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, name)
	}

	return nil
}

// writeDirectories synthesizes directory entries for every path prefix of
// name ending at a "/" strictly after the first byte. Trailing slashes are
// never stored: "a/b/c" synthesizes "a" and "a/b".
func (c *FileCache) writeDirectories(name string) {
	for i := 1; i < len(name); i++ {
		if name[i] != '/' {
			continue
		}

		dir := name[:i]
		if _, ok := c.entries[dir]; ok {
			continue
		}

		c.insert(dir, &buffer{len: lenDirectory, clen: lenDirectory})
	}
}

// Serialize writes the archive to dst: the header (marker, CurrentVersion)
// followed by one record per entry in table insertion order. Output is
// stable for a given registration sequence; keys are not sorted.
func (c *FileCache) Serialize(dst io.Writer) error {
	if dst == nil {
		return ErrNilWriter
	}
	if c.closed {
		return ErrClosed
	}
	if c.cfg.Backend != nil {
		return fmt.Errorf("%w: serialize to stream", errBackendUnsupported)
	}

	w := bufio.NewWriterSize(dst, builderWriteBuffer)

	var head [headerSize]byte
	marker := archiveMarker
	binary.LittleEndian.PutUint16(head[0:2], uint16(marker))
	binary.LittleEndian.PutUint16(head[2:4], uint16(CurrentVersion))
	if _, err := w.Write(head[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	var scratch [4]byte
	for _, name := range c.names {
		b := c.entries[name]

		binary.LittleEndian.PutUint16(scratch[0:2], uint16(int16(len(name))))
		if _, err := w.Write(scratch[0:2]); err != nil {
			return fmt.Errorf("write name length: %w", err)
		}
		if _, err := w.WriteString(name); err != nil {
			return fmt.Errorf("write name: %w", err)
		}

		flag := byte(0)
		length := b.len
		payload := b.data
		if b.cdata != nil {
			flag = 1
			length = b.clen
			payload = b.cdata
		}

		if err := w.WriteByte(flag); err != nil {
			return fmt.Errorf("write compressed flag: %w", err)
		}

		binary.LittleEndian.PutUint32(scratch[0:4], uint32(length))
		if _, err := w.Write(scratch[0:4]); err != nil {
			return fmt.Errorf("write payload length: %w", err)
		}

		if length > 0 {
			if _, err := w.Write(payload); err != nil {
				return fmt.Errorf("write payload %s: %w", name, err)
			}
			if err := w.WriteByte(0); err != nil {
				return fmt.Errorf("write payload terminator: %w", err)
			}
		}
	}

	return w.Flush()
}

// Save writes the archive to path. With a configured backend the call
// delegates to the backend's own save.
func (c *FileCache) Save(path string) error {
	if c.closed {
		return ErrClosed
	}

	if c.cfg.Backend != nil {
		if err := c.cfg.Backend.SaveCache(path); err != nil {
			return fmt.Errorf("save cache to %s: %w", path, err)
		}

		return nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create archive %s: %w", path, err)
	}
	defer func() {
		if f != nil {
			_ = f.Close()
		}
	}()

	if err := c.Serialize(f); err != nil {
		return err
	}

	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync archive %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close archive %s: %w", path, err)
	}
	f = nil

	return nil
}
