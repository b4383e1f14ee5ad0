// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

// Package qf implements an in-memory quotient filter: a compact,
// approximate-set data structure admitting false positives but never
// false negatives (subject to the hash-width caveat documented on
// Remove). Unlike a Bloom filter it stores each fingerprint
// contiguously in a single linear table, which gives better cache
// locality, deterministic deletion, rehash-free merging, and
// enumeration of stored fingerprints.
package qf

// Filter is a quotient filter. It is not safe for concurrent use;
// callers must serialize mutation externally.
type Filter struct {
	entries uint64

	qBits, rBits  uint
	size          uint64 // 1 << qBits
	indexMask     uint64
	remainderMask uint64

	t *table

	alloc Allocator
}

// Init allocates a quotient filter with q quotient bits and r
// remainder bits (capacity 2^q, fingerprint width p = q+r <= 64). If
// alloc is nil, DefaultAllocator is used.
func Init(q, r uint, alloc Allocator) (*Filter, error) {
	if q == 0 || r == 0 || q+r > 64 {
		return nil, ErrInvalidParams
	}
	if alloc == nil {
		alloc = DefaultAllocator
	}

	f := &Filter{
		qBits:         q,
		rBits:         r,
		size:          uint64(1) << q,
		indexMask:     (uint64(1) << q) - 1,
		remainderMask: (uint64(1) << r) - 1,
		alloc:         alloc,
	}

	words, err := alloc.Allocate(wordsRequired(r+3, f.size))
	if err != nil {
		return nil, ErrAllocFailed
	}
	f.t = newTable(words, r+3)
	return f, nil
}

// New allocates a quotient filter using DefaultAllocator, panicking on
// invalid parameters. It is a convenience wrapper around Init for
// callers who don't need to inject an allocator or handle allocation
// failure (which DefaultAllocator never produces).
func New(q, r uint) *Filter {
	f, err := Init(q, r, DefaultAllocator)
	if err != nil {
		panic(err)
	}
	return f
}

// Entries returns the number of fingerprints currently stored.
func (f *Filter) Entries() uint64 {
	return f.entries
}

// Cap returns the filter's capacity, 2^q.
func (f *Filter) Cap() uint64 {
	return f.size
}

// Clear zeros the backing buffer without releasing it.
func (f *Filter) Clear() {
	f.t.zero()
	f.entries = 0
}

// Destroy releases the filter's backing buffer. It is safe to call
// more than once, and on the nil *Filter that a failed Init returns.
func (f *Filter) Destroy() {
	if f == nil || f.t == nil {
		return
	}
	f.alloc.Release(f.t.words)
	f.t = nil
	f.entries = 0
}

func (f *Filter) right(i uint64) uint64 {
	i++
	if i >= f.size {
		i = 0
	}
	return i
}

func (f *Filter) left(i uint64) uint64 {
	if i == 0 {
		i = f.size
	}
	return i - 1
}

func (f *Filter) quotientAndRemainder(hash uint64) (uint64, uint64) {
	return (hash >> f.rBits) & f.indexMask, hash & f.remainderMask
}

// RawWords exposes the filter's backing buffer for host-level
// serialization. Persistence is a host concern; this is the seam a host serializer hangs off, alongside
// Entries and the q/r widths it already knows. Callers must not
// mutate the returned slice except through Filter's own methods.
func (f *Filter) RawWords() []uint64 {
	return f.t.words
}

// Restore reconstructs a Filter from a raw word buffer and entry
// count previously obtained via RawWords and Entries, bypassing
// Init's allocation path. It's the primitive a host serializer calls
// after reading its own header format; it does not itself know any
// file format.
func Restore(q, r uint, entries uint64, words []uint64, alloc Allocator) (*Filter, error) {
	if q == 0 || r == 0 || q+r > 64 {
		return nil, ErrInvalidParams
	}
	if alloc == nil {
		alloc = DefaultAllocator
	}
	f := &Filter{
		qBits:         q,
		rBits:         r,
		size:          uint64(1) << q,
		indexMask:     (uint64(1) << q) - 1,
		remainderMask: (uint64(1) << r) - 1,
		alloc:         alloc,
		entries:       entries,
	}
	f.t = newTable(words, r+3)
	return f, nil
}

// MaskHash truncates hash to its low q+r bits, the only bits a filter
// with these widths actually stores. Callers that can't guarantee
// their hash function produces exactly p significant bits should mask
// before calling Insert to avoid silent fingerprint collisions between
// otherwise-distinct keys.
func MaskHash(hash uint64, q, r uint) uint64 {
	p := q + r
	if p >= 64 {
		return hash
	}
	return hash & ((uint64(1) << p) - 1)
}
