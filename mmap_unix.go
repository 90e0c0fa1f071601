// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Statikbin
// Source: github.com/statikbin/filecache

//go:build darwin || linux

package filecache

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapRegionReadOnly maps size bytes of f read-only and private. The mapping
// outlives the file descriptor, so callers may close f afterward.
func mapRegionReadOnly(f *os.File, size int64) ([]byte, error) {
	return unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
}

// unmapRegion releases a mapping produced by mapRegionReadOnly.
func unmapRegion(region []byte) error {
	if region == nil {
		return nil
	}

	return unix.Munmap(region)
}

// adviseNotNeeded tells the kernel the mapped pages are not needed
// imminently. The mapping stays valid; pages fault back in on access.
func adviseNotNeeded(region []byte) error {
	return unix.Madvise(region, unix.MADV_DONTNEED)
}
