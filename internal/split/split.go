// Package split computes per-participant shares for an equal split.
//
// Shares are integers (KRW has no sub-unit), sum exactly to the total,
// and differ by at most 1. The remainder goes to the earliest
// participants in list order, which makes the result deterministic for
// a fixed total and ordering.
package split

import (
	"strconv"
	"strings"
)

// Shares returns the per-position share amounts for splitting total
// among n participants. n == 0 yields an empty slice; a negative total
// is treated as 0.
func Shares(total int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	if total < 0 {
		total = 0
	}

	base := total / int64(n)
	rem := total - base*int64(n)

	shares := make([]int64, n)
	for i := range shares {
		extra := int64(0)
		if rem > 0 {
			extra = 1
			rem--
		}
		shares[i] = base + extra
	}
	return shares
}

// FinalAmount is the display amount for a participant after applying
// their deduction, floored at 0. It never alters the share itself, so
// the cross-participant sum invariant holds regardless of deductions.
func FinalAmount(share, deduction int64) int64 {
	if deduction <= 0 {
		return share
	}
	if deduction >= share {
		return 0
	}
	return share - deduction
}

// ParseAmount coerces free-form input to a non-negative integer amount.
// Non-digit characters are stripped and anything unparseable counts as
// 0, mirroring the input-boundary guard so the calculator never sees a
// non-numeric total.
func ParseAmount(s string) int64 {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
