// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Statikbin
// Source: github.com/statikbin/filecache

package filecache

import "errors"

// Sentinel errors for archive operations. Use errors.Is in callers.
var (
	// ErrUnknownFormat means the archive does not start with the expected marker.
	ErrUnknownFormat = errors.New("unknown archive format")
	// ErrBadArchive means the archive byte stream is malformed or truncated.
	ErrBadArchive = errors.New("bad archive data")
	// ErrDuplicateEntry means the entry path is already present in the table.
	ErrDuplicateEntry = errors.New("duplicate entry path")
	// ErrEntryNotFound means the entry is not present in the table.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrBadCompressedData means a compressed payload could not be decoded.
	ErrBadCompressedData = errors.New("bad compressed data in archive")
	// ErrClosed means the cache was already closed.
	ErrClosed = errors.New("file cache already closed")
	// ErrNilWriter means the destination writer is nil.
	ErrNilWriter = errors.New("writer is nil")
	// ErrInvalidEntryPath means an entry path is empty after normalization.
	ErrInvalidEntryPath = errors.New("invalid entry path")
	// ErrInvalidCompressPattern means one or more compression rules are invalid.
	ErrInvalidCompressPattern = errors.New("invalid compress rules")
	// ErrMappingUnsupported means zero-copy mapped load is not available on this platform.
	ErrMappingUnsupported = errors.New("memory-mapped load not supported on this platform")
)

// errBackendUnsupported marks operations with no alternate-backend equivalent.
var errBackendUnsupported = errors.New("not supported with alternate backend")
