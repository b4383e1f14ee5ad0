// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package qf

// findRunIndex locates the first slot of the run whose quotient is
// fq. The caller must have already verified slots[fq] is occupied.
//
// It walks backward from fq to the start of the enclosing cluster,
// then advances two cursors forward from there in lock step: s walks
// run starts, b walks occupied quotient slots. By invariant 6 (the
// k-th occupied quotient in a cluster corresponds to the k-th run),
// s lands on the run for fq exactly when b reaches fq.
func (f *Filter) findRunIndex(fq uint64) uint64 {
	b := fq
	for f.t.readSlot(b).isShifted() {
		b = f.left(b)
	}

	s := b
	for b != fq {
		s = f.right(s)
		for f.t.readSlot(s).isContinuation() {
			s = f.right(s)
		}

		b = f.right(b)
		for !f.t.readSlot(b).isOccupied() {
			b = f.right(b)
		}
	}
	return s
}

// insertInto shift-inserts entry at slot s, preserving metadata: the
// is_occupied bit belongs to the slot index and must be carried by
// whatever entry ends up resident there, while is_continuation and
// is_shifted travel with the payload being displaced.
func (f *Filter) insertInto(s uint64, entry slotData) {
	curr := entry
	for {
		prev := f.t.readSlot(s)
		empty := prev.isEmpty()
		if !empty {
			prev = prev.setShifted(true)
			if prev.isOccupied() {
				curr = curr.setOccupied(true)
				prev = prev.setOccupied(false)
			}
		}
		f.t.writeSlot(s, curr)
		curr = prev
		s = f.right(s)
		if empty {
			return
		}
	}
}

// deleteEntry shifts the cluster tail left by one slot starting at s,
// closing the gap left by removing the entry with quotient fq that
// resided there. It preserves is_occupied on the slot index being
// overwritten (never from the moving payload) and clears is_shifted
// on any entry that slides back into its own canonical slot, tracked
// by a quotient cursor that advances over occupied indices exactly as
// the iterator's does.
//
// The walk terminates when the next slot is empty, starts a new
// cluster, or would wrap back to s (the fully-saturated filter case,
// where the whole table is one cluster and there is no empty slot to
// stop at naturally).
func (f *Filter) deleteEntry(s uint64, fq uint64) {
	quotient := fq
	i := s

	for {
		j := f.right(i)
		if j == s {
			f.t.writeSlot(i, 0)
			return
		}

		next := f.t.readSlot(j)
		if next.isEmpty() || next.isClusterStart() {
			f.t.writeSlot(i, 0)
			return
		}

		if next.isRunStart() {
			quotient = f.right(quotient)
			for !f.t.readSlot(quotient).isOccupied() {
				quotient = f.right(quotient)
			}
		}

		moved := next.setOccupied(f.t.readSlot(i).isOccupied())
		if moved.isShifted() && i == quotient {
			moved = moved.setShifted(false)
		}
		f.t.writeSlot(i, moved)
		i = j
	}
}
