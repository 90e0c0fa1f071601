// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Statikbin
// Source: github.com/statikbin/filecache

package filecache

import (
	"encoding/binary"
	"io"
)

// cursor walks a byte region with bounds-checked reads. Every read fails
// with io.ErrUnexpectedEOF when the declared size would cross the end of
// the region; callers never advance offsets themselves.
type cursor struct {
	buf []byte
	off int
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

// remaining returns the number of unread bytes.
func (c *cursor) remaining() int {
	return len(c.buf) - c.off
}

// take returns the next n bytes as a subslice aliasing the region.
func (c *cursor) take(n int) ([]byte, error) {
	if n < 0 || n > c.remaining() {
		return nil, io.ErrUnexpectedEOF
	}

	out := c.buf[c.off : c.off+n : c.off+n]
	c.off += n

	return out, nil
}

// readByte returns the next byte.
func (c *cursor) readByte() (byte, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// readInt16 returns the next little-endian int16.
func (c *cursor) readInt16() (int16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}

	return int16(binary.LittleEndian.Uint16(b)), nil
}

// readInt32 returns the next little-endian int32.
func (c *cursor) readInt32() (int32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}

	return int32(binary.LittleEndian.Uint32(b)), nil
}
