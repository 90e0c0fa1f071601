// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Statikbin
// Source: github.com/statikbin/filecache

package filecache

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/woozymasta/pathrules"
)

// Policy decides whether an entry path is worth compressing and performs the
// raw byte encode/decode. The archive format stores no original-size field
// per record, so Decode must work from the compressed bytes alone; sizeHint
// is an allocation hint only and may be zero.
type Policy interface {
	// Compressible reports whether the payload at name should be a
	// compression candidate.
	Compressible(name string) bool
	// Encode compresses data.
	Encode(data []byte) ([]byte, error)
	// Decode decompresses data. sizeHint, when positive, pre-sizes the
	// output buffer; it does not bound or validate the result.
	Decode(data []byte, sizeHint int) ([]byte, error)
}

// GzipPolicy implements Policy with gzip encoding and ordered path rules
// for the compressibility decision.
type GzipPolicy struct {
	matcher *pathrules.Matcher
	level   int
}

// NewGzipPolicy compiles compression path rules into a policy.
// An empty rule set yields a policy that compresses nothing.
func NewGzipPolicy(rules []pathrules.Rule, opts pathrules.MatcherOptions) (*GzipPolicy, error) {
	rules = normalizeCompressRules(rules)
	if len(rules) == 0 {
		return &GzipPolicy{level: gzip.BestCompression}, nil
	}

	matcher, err := pathrules.NewMatcher(rules, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: compile rules: %w", ErrInvalidCompressPattern, err)
	}

	return &GzipPolicy{matcher: matcher, level: gzip.BestCompression}, nil
}

// normalizeCompressRules normalizes rule patterns and drops empty patterns.
func normalizeCompressRules(rules []pathrules.Rule) []pathrules.Rule {
	normalized := make([]pathrules.Rule, 0, len(rules))
	for _, rule := range rules {
		pattern := strings.TrimSpace(rule.Pattern)
		if pattern == "" {
			continue
		}

		normalized = append(normalized, pathrules.Rule{
			Action:  rule.Action,
			Pattern: pattern,
		})
	}

	return normalized
}

// Compressible reports whether name is included by at least one rule.
func (p *GzipPolicy) Compressible(name string) bool {
	if p == nil || p.matcher == nil {
		return false
	}

	candidate := strings.TrimSpace(name)
	if candidate == "" {
		return false
	}

	return p.matcher.Included(candidate, false)
}

// Encode compresses data with gzip.
func (p *GzipPolicy) Encode(data []byte) ([]byte, error) {
	level := p.level
	if level == 0 {
		level = gzip.BestCompression
	}

	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("gzip writer: %w", err)
	}

	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("gzip encode: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("gzip encode: %w", err)
	}

	return buf.Bytes(), nil
}

// Decode decompresses gzip data.
func (p *GzipPolicy) Decode(data []byte, sizeHint int) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	defer func() { _ = zr.Close() }()

	var buf bytes.Buffer
	if sizeHint > 0 {
		buf.Grow(sizeHint)
	}

	if _, err := io.Copy(&buf, zr); err != nil {
		return nil, fmt.Errorf("gzip decode: %w", err)
	}

	return buf.Bytes(), nil
}

// defaultCompressRules lists text-like path patterns compressed by default.
func defaultCompressRules() []pathrules.Rule {
	patterns := []string{
		"*.php", "*.js", "*.css", "*.html", "*.htm", "*.json",
		"*.xml", "*.txt", "*.svg", "*.md", "*.ini", "*.csv",
	}

	rules := make([]pathrules.Rule, 0, len(patterns))
	for _, pattern := range patterns {
		rules = append(rules, pathrules.Rule{
			Action:  pathrules.ActionInclude,
			Pattern: pattern,
		})
	}

	return rules
}

var defaultPolicy = sync.OnceValue(func() *GzipPolicy {
	p, err := NewGzipPolicy(defaultCompressRules(), pathrules.MatcherOptions{
		CaseInsensitive: true,
		DefaultAction:   pathrules.ActionExclude,
	})
	if err != nil {
		// Static patterns above always compile; compress nothing otherwise.
		return &GzipPolicy{level: gzip.BestCompression}
	}

	return p
})

// DefaultPolicy returns the shared gzip policy with the default text-like
// extension rules.
func DefaultPolicy() Policy {
	return defaultPolicy()
}
