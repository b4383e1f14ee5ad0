// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package qf

import "math"

// TableSize returns the number of bytes needed to back a filter with
// the given quotient and remainder widths: ceil(2^q * (r+3) / 8).
func TableSize(q, r uint) uint64 {
	bits := (uint64(1) << q) * uint64(r+3)
	return (bits + 7) / 8
}

// FalsePositiveRate estimates the current false-positive probability
// under the standard approximate-filter assumption of uniform
// hashing: 1 - exp(-entries / 2^p), where p = q+r. The computation
// stays in float64 throughout so it doesn't overflow for p >= 32, the
// way a single-precision, 32-bit-count rendition would.
func (f *Filter) FalsePositiveRate() float64 {
	p := f.qBits + f.rBits
	load := float64(f.entries) / math.Pow(2, float64(p))
	return 1 - math.Exp(-load)
}
