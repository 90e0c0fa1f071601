// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Statikbin
// Source: github.com/statikbin/filecache

package filecache

// Backend is the alternate cache backend the cache delegates to when
// Config.Backend is set. It owns its own archive format; the built-in
// format in this package is bypassed entirely.
type Backend interface {
	// AddEmptyEntry records a source placeholder entry.
	AddEmptyEntry(name string) error
	// AddFileContents reads fullPath and records it under name.
	AddFileContents(name, fullPath string) error
	// SaveCache writes the backend archive to path.
	SaveCache(path string) error
	// LoadCache reads the backend archive from path.
	LoadCache(path string) error

	// EntryExists reports whether any entry is recorded under name.
	EntryExists(name string) bool
	// FileExists reports whether a static file entry is recorded under name.
	FileExists(name string) bool
	// DirExists reports whether a directory entry is recorded under name.
	DirExists(name string) bool
	// EmptyEntryExists reports whether a placeholder entry is recorded under name.
	EmptyEntryExists(name string) bool

	// FileContents returns entry bytes. compressed reports whether the
	// returned bytes are still encoded; ok is false when name is absent.
	FileContents(name string) (data []byte, compressed bool, ok bool)
	// UncompressedFileSize returns the decoded byte count for name.
	UncompressedFileSize(name string) (int64, bool)
	// EntryNames returns all recorded entry paths.
	EntryNames() []string

	// IsBackendArchive reports whether the file at path carries the
	// backend's own magic number. Used during version auto-detection.
	IsBackendArchive(path string) bool
}
