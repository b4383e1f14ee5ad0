// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package qf

import (
	"testing"

	"github.com/bits-and-blooms/bloom/v3"
)

func BenchmarkQuotientFilterInsert(b *testing.B) {
	f := New(20, 8)
	g := &lcg{state: 1}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if f.Entries() == f.Cap() {
			f.Clear()
		}
		f.Insert(g.next() & ((1 << 28) - 1))
	}
}

func BenchmarkQuotientFilterMayContain(b *testing.B) {
	f := New(20, 8)
	g := &lcg{state: 2}
	for i := 0; i < 1<<19; i++ {
		f.Insert(g.next() & ((1 << 28) - 1))
	}
	g = &lcg{state: 2}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.MayContain(g.next() & ((1 << 28) - 1))
	}
}

// BenchmarkBloomFilterInsert and BenchmarkBloomFilterTest benchmark the
// same workload against bits-and-blooms/bloom, for comparison against
// the quotient filter above.
func BenchmarkBloomFilterInsert(b *testing.B) {
	bf := bloom.NewWithEstimates(1<<19, 0.01)
	g := &lcg{state: 1}
	buf := make([]byte, 8)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h := g.next() & ((1 << 28) - 1)
		putUint64(buf, h)
		bf.Add(buf)
	}
}

func BenchmarkBloomFilterTest(b *testing.B) {
	bf := bloom.NewWithEstimates(1<<19, 0.01)
	g := &lcg{state: 2}
	buf := make([]byte, 8)
	for i := 0; i < 1<<19; i++ {
		h := g.next() & ((1 << 28) - 1)
		putUint64(buf, h)
		bf.Add(buf)
	}
	g = &lcg{state: 2}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h := g.next() & ((1 << 28) - 1)
		putUint64(buf, h)
		bf.Test(buf)
	}
}

func putUint64(buf []byte, v uint64) {
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
}
