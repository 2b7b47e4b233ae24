package dmt

import (
	"fmt"
	"math/bits"
)

// CoveringNodes returns the arena indices of the maximal perfect subtrees
// that exactly tile the leaf range [start, end), ordered left to right.
// Pairing the result with Node gives the smallest set of digests that
// commits to the range; a full range yields just the root. The result
// never has more than 2*height entries.
func (t *Tree) CoveringNodes(start, end int) ([]int, error) {
	if start < 0 || start >= end || end > t.capacity {
		return nil, fmt.Errorf("%w: got leaf range [%d, %d), want 0 <= start < end <= %d", ErrIndexOutOfBounds, start, end, t.capacity)
	}

	var nodes []int
	for cur := start; cur < end; {
		// The widest subtree rooted over cur spans as many leaves as the
		// alignment of cur allows, shrunk until it fits the range.
		span := t.capacity
		if cur != 0 {
			span = 1 << bits.TrailingZeros(uint(cur))
		}
		for cur+span > end {
			span >>= 1
		}

		depth := t.height - (bits.Len(uint(span)) - 1)
		nodes = append(nodes, levelOffset(depth)+cur/span)
		cur += span
	}
	return nodes, nil
}
