// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Statikbin
// Source: github.com/statikbin/filecache

package filecache

import "math"

// Binary layout and format limits.
const (
	// headerSize is the fixed archive header size: int16 marker + int16 version.
	headerSize = 4
	// archiveMarker is the header marker written before the version field.
	archiveMarker int16 = -1
	// maxNameLen bounds entry path length; name_len is stored as int16.
	maxNameLen = math.MaxInt16
	// maxPayloadLen bounds entry payload size; payload_len is stored as int32.
	maxPayloadLen = math.MaxInt32
)

// Archive format versions.
const (
	// CurrentVersion is the format version written by Serialize and Save.
	CurrentVersion int16 = 1
	// BackendVersion is reported by DetectVersion when the configured
	// alternate backend recognizes the archive as its own format.
	BackendVersion int16 = 2
)

// Sentinel length values stored in an entry's length field.
const (
	// lenDirectory marks a synthesized directory entry.
	lenDirectory int32 = -2
	// lenPlaceholder marks a source placeholder entry with no inline bytes.
	lenPlaceholder int32 = -1
)

// buffer is the in-memory payload of one archive entry.
//
// The len field encodes the entry kind: -2 directory, -1 source placeholder,
// 0 empty static file, >0 raw byte count. clen is -1 when no compressed form
// is kept (or -2 for directories) and the compressed byte count otherwise.
// At most one of data/cdata is populated for entries loaded from an archive;
// eager-decompression loads retain both.
type buffer struct {
	data  []byte
	cdata []byte
	len   int32
	clen  int32
}

// isDirectory reports whether the buffer marks a synthesized directory.
func (b *buffer) isDirectory() bool {
	return b.len == lenDirectory
}

// isFile reports whether the buffer is a static file or source placeholder.
func (b *buffer) isFile() bool {
	return b.len >= lenPlaceholder
}

// ownershipMode tags how the entry table's byte slices are owned.
type ownershipMode uint8

const (
	// modeOwned means entry buffers are individually heap-allocated
	// (built tables and owned-deserialization loads).
	modeOwned ownershipMode = iota
	// modeMapped means entry buffers alias one memory-mapped region that
	// is released as a unit at Close.
	modeMapped
)

// LoadOptions configures owned-deserialization load behavior.
type LoadOptions struct {
	// DeferDecompress stores compressed payloads as-is and shifts
	// decompression to the read caller. When false, compressed payloads are
	// decoded during load and both forms are retained.
	DeferDecompress bool
}

// emptyContent is the shared zero-length payload returned for empty static
// files, distinguishing "exists, empty" from "absent".
var emptyContent = []byte{}
