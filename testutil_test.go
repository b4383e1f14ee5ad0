// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package qf

import "fmt"

// checkInvariants scans the whole table and verifies the structural
// invariants from spec §3: non-empty count matches entries, empty
// slots carry zero remainder, continuations are shifted with a
// non-empty predecessor, runs are strictly increasing, and every
// occupied quotient maps to exactly one run with no overlap — the
// same shape as the teacher's own checkConsistency helper.
func checkInvariants(f *Filter) error {
	nonEmpty := uint64(0)
	for i := uint64(0); i < f.size; i++ {
		e := f.t.readSlot(i)
		if e.isEmpty() {
			if e.remainder() != 0 {
				return fmt.Errorf("slot %d is empty but has nonzero remainder %d", i, e.remainder())
			}
			continue
		}
		nonEmpty++
		if e.isContinuation() {
			if !e.isShifted() {
				return fmt.Errorf("slot %d is a continuation but not shifted", i)
			}
			prev := f.t.readSlot(f.left(i))
			if prev.isEmpty() {
				return fmt.Errorf("slot %d is a continuation but predecessor %d is empty", i, f.left(i))
			}
		}
	}
	if nonEmpty != f.entries {
		return fmt.Errorf("entries=%d but %d non-empty slots found", f.entries, nonEmpty)
	}

	usage := map[uint64]uint64{}
	for i := uint64(0); i < f.size; i++ {
		if !f.t.readSlot(i).isOccupied() {
			continue
		}
		s := f.findRunIndex(i)
		var last uint64
		first := true
		for {
			e := f.t.readSlot(s)
			if !first && e.remainder() <= last {
				return fmt.Errorf("run for quotient %d is not strictly increasing at slot %d", i, s)
			}
			last, first = e.remainder(), false
			if who, used := usage[s]; used {
				return fmt.Errorf("slot %d claimed by both quotient %d and %d", s, i, who)
			}
			usage[s] = i
			s = f.right(s)
			if !f.t.readSlot(s).isContinuation() {
				break
			}
		}
	}
	if uint64(len(usage)) != f.entries {
		return fmt.Errorf("run-walk visited %d entries, entries=%d", len(usage), f.entries)
	}
	return nil
}
