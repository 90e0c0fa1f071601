// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Statikbin
// Source: github.com/statikbin/filecache

//go:build !darwin && !linux

package filecache

import "os"

// mapRegionReadOnly reports that zero-copy loading is unavailable here;
// callers should fall back to Load.
func mapRegionReadOnly(_ *os.File, _ int64) ([]byte, error) {
	return nil, ErrMappingUnsupported
}

// unmapRegion is a no-op without a real mapping.
func unmapRegion(_ []byte) error {
	return nil
}

// adviseNotNeeded is a no-op without a real mapping.
func adviseNotNeeded(_ []byte) error {
	return nil
}
