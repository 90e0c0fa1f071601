// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Statikbin
// Source: github.com/statikbin/filecache

package filecache

import "strings"

// RelativePath converts an absolute source path to the archive-relative form
// used as an entry table key. The configured SourceRoot prefix is stripped
// when path starts with it and is strictly longer than it (byte-exact match,
// no case folding), then one trailing "/" is removed if present.
func (c *FileCache) RelativePath(path string) string {
	root := c.cfg.SourceRoot
	if len(root) > 0 && len(path) > len(root) && strings.HasPrefix(path, root) {
		path = path[len(root):]
	}

	return strings.TrimSuffix(path, "/")
}
