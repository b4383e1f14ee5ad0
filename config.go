// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package qf

import (
	"fmt"
	"io"
)

// maxLoadingFactor is the loading fraction Config.QBits sizes for.
// Quotient filters degrade sharply as they approach full, so callers
// sizing ahead of time are steered toward a conservative fill.
const maxLoadingFactor = 0.65

// minQBits is the smallest quotient width Config will ever choose.
const minQBits = 4

// Config helps size a filter ahead of time from an expected entry
// count, mirroring the sizing helpers a caller would otherwise have to
// work out by hand from TableSize.
type Config struct {
	// ExpectedEntries is the number of entries the filter is expected
	// to hold. QBits is derived from this so that, at capacity, the
	// filter sits at or under maxLoadingFactor.
	ExpectedEntries uint64
	// RBits is the remainder width to use; callers pick this based on
	// their desired false-positive rate (more bits, lower FP rate, at
	// the cost of table size).
	RBits uint
}

// QBits returns the quotient width this configuration implies.
func (c *Config) QBits() uint {
	bits := uint(0)
	x := uint64(1)
	for float64(x)*maxLoadingFactor < float64(c.ExpectedEntries) {
		x <<= 1
		bits++
	}
	if bits < minQBits {
		bits = minQBits
	}
	return bits
}

// BucketCount returns 2^QBits, the filter's capacity once built.
func (c *Config) BucketCount() uint64 {
	return uint64(1) << c.QBits()
}

// ExpectedLoading reports the expected percentage loading given
// ExpectedEntries and the derived bucket count.
func (c *Config) ExpectedLoading() float64 {
	return 100 * float64(c.ExpectedEntries) / float64(c.BucketCount())
}

// Build allocates a Filter sized from this configuration.
func (c *Config) Build(alloc Allocator) (*Filter, error) {
	return Init(c.QBits(), c.RBits, alloc)
}

// Explain writes a human-readable summary of what this configuration
// will build.
func (c *Config) Explain(w io.Writer) {
	fmt.Fprintf(w, "%2d bits quotient (%d buckets)\n", c.QBits(), c.BucketCount())
	fmt.Fprintf(w, "%2d bits remainder\n", c.RBits)
	fmt.Fprintf(w, "%2d bits metadata per bucket\n", 3)
	fmt.Fprintf(w, "%0.2f%% loading expected at %d entries\n", c.ExpectedLoading(), c.ExpectedEntries)
	fmt.Fprintf(w, "%s table size\n", humanBytes(TableSize(c.QBits(), c.RBits)))
}

func humanBytes(n uint64) string {
	v := float64(n)
	suffix := "bytes"
	for _, s := range []string{"KB", "MB", "GB"} {
		if v < 1024 {
			break
		}
		v /= 1024
		suffix = s
	}
	if v < 10 {
		return fmt.Sprintf("%0.2f %s", v, suffix)
	} else if v < 100 {
		return fmt.Sprintf("%0.1f %s", v, suffix)
	}
	return fmt.Sprintf("%0.0f %s", v, suffix)
}
