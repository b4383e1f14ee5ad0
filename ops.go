// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package qf

import (
	"fmt"
	"io"
)

// Insert stores hash (its low q+r bits) in the filter. It returns
// false, leaving the filter unchanged, if the filter is already at
// capacity (2^q entries). Re-inserting a hash already present is a
// no-op that still returns true, and never increases Entries.
func (f *Filter) Insert(hash uint64) bool {
	if f.entries == f.size {
		return false
	}

	fq, fr := f.quotientAndRemainder(hash)
	t := f.t.readSlot(fq)

	if t.isEmpty() {
		f.t.writeSlot(fq, newSlotData(fr).setOccupied(true))
		f.entries++
		return true
	}

	extendingRun := t.isOccupied()
	if !extendingRun {
		f.t.writeSlot(fq, t.setOccupied(true))
	}

	start := f.findRunIndex(fq)
	s := start

	if extendingRun {
		cur := f.t.readSlot(s)
		inRun := true
		for {
			if cur.isEmpty() || cur.remainder() >= fr {
				break
			}
			s = f.right(s)
			cur = f.t.readSlot(s)
			if !cur.isContinuation() {
				inRun = false
				break
			}
		}
		if inRun && !cur.isEmpty() && cur.remainder() == fr {
			// duplicate: already present, don't grow entries
			return true
		}
	}

	entry := newSlotData(fr)
	if extendingRun {
		if s == start {
			f.t.writeSlot(start, f.t.readSlot(start).setContinuation(true))
		} else {
			entry = entry.setContinuation(true)
		}
	}
	if s != fq {
		entry = entry.setShifted(true)
	}

	f.insertInto(s, entry)
	f.entries++
	return true
}

// MayContain reports whether hash is possibly present. False
// positives are possible; false negatives are not, subject to the
// hash-width caveat documented on Remove.
func (f *Filter) MayContain(hash uint64) bool {
	fq, fr := f.quotientAndRemainder(hash)
	if !f.t.readSlot(fq).isOccupied() {
		return false
	}

	s := f.findRunIndex(fq)
	cur := f.t.readSlot(s)
	for {
		if cur.remainder() == fr {
			return true
		}
		if cur.remainder() > fr {
			return false
		}
		s = f.right(s)
		cur = f.t.readSlot(s)
		if !cur.isContinuation() {
			return false
		}
	}
}

// Remove deletes hash from the filter if present, and is a no-op
// (returning true) if it is absent. It returns false, without
// modifying the filter, only when hash carries bits above position
// p = q+r: such a hash could never have been legitimately inserted
// under these widths, and deleting its low-p projection risks evicting
// an unrelated key that happens to share that projection.
//
// Because only the low p bits of any inserted hash are ever stored,
// two distinct keys whose low p bits collide are indistinguishable to
// the filter; removing one manufactures a false negative for the
// other. Callers whose hash function doesn't already guarantee p
// significant bits should mask with MaskHash before Insert.
func (f *Filter) Remove(hash uint64) bool {
	p := f.qBits + f.rBits
	if hash>>p != 0 {
		return false
	}

	fq, fr := f.quotientAndRemainder(hash)
	if !f.t.readSlot(fq).isOccupied() || f.entries == 0 {
		return true
	}

	s := f.findRunIndex(fq)
	cur := f.t.readSlot(s)
	found := false
	for {
		if cur.remainder() == fr {
			found = true
			break
		}
		if cur.remainder() > fr {
			break
		}
		s = f.right(s)
		cur = f.t.readSlot(s)
		if !cur.isContinuation() {
			break
		}
	}
	if !found {
		return true
	}

	kill := cur
	wasRunStart := kill.isRunStart()
	runContinues := f.t.readSlot(f.right(s)).isContinuation()

	if wasRunStart && !runContinues {
		f.t.writeSlot(fq, f.t.readSlot(fq).setOccupied(false))
	}

	f.deleteEntry(s, fq)

	if wasRunStart && runContinues {
		newStart := f.t.readSlot(s).setContinuation(false)
		if s == fq {
			newStart = newStart.setShifted(false)
		}
		f.t.writeSlot(s, newStart)
	}

	f.entries--
	return true
}

// maxUint returns the larger of a and b.
func maxUint(a, b uint) uint {
	if a > b {
		return a
	}
	return b
}

// Merge allocates a new filter sized to safely hold every fingerprint
// stored in a and b, and inserts all of them into it via the public
// Insert path. The output is sized with q_out = 1+max(q_a, q_b) and
// r_out = max(r_a, r_b), which is guaranteed large enough to avoid
// overflow. It returns ErrInvalidParams if q_out+r_out exceeds 64, and
// ErrAllocFailed if allocating the output filter fails.
func Merge(a, b *Filter, alloc Allocator) (*Filter, error) {
	qOut := 1 + maxUint(a.qBits, b.qBits)
	rOut := maxUint(a.rBits, b.rBits)

	out, err := Init(qOut, rOut, alloc)
	if err != nil {
		return nil, err
	}

	for _, src := range []*Filter{a, b} {
		it := src.Iterator()
		for !it.Done() {
			out.Insert(it.Next())
		}
	}
	return out, nil
}

// DebugDump writes one line per non-empty slot: its index, O/C/S
// bookkeeping bits, and remainder.
func (f *Filter) DebugDump(w io.Writer) {
	fmt.Fprintf(w, "quotient filter: %d bits quotient, %d bits remainder, %d/%d entries\n",
		f.qBits, f.rBits, f.entries, f.size)
	fmt.Fprintf(w, "  slot       O C S remainder\n")
	for i := uint64(0); i < f.size; i++ {
		e := f.t.readSlot(i)
		if e.isEmpty() {
			continue
		}
		o, c, s := 0, 0, 0
		if e.isOccupied() {
			o = 1
		}
		if e.isContinuation() {
			c = 1
		}
		if e.isShifted() {
			s = 1
		}
		fmt.Fprintf(w, "%8d   %d %d %d %x\n", i, o, c, s, e.remainder())
	}
}
