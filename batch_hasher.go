package dmt

import (
	"crypto/sha256"
	"fmt"
	"runtime"
	"sync"

	"github.com/prysmaticlabs/gohashtree"
)

// LevelHasher is an optional batching interface a TreeHasher can implement.
// When the tree's hasher implements it, BuildFromHeight hands it entire
// levels of sibling pairs at once instead of hashing node by node, which
// lets vectorized implementations fill all their SIMD lanes.
type LevelHasher interface {
	// HashInternalLevel digests children pairwise: out[i] covers
	// children[2*i] and children[2*i+1]. The number of children must be
	// even and every child must be Size() bytes.
	HashInternalLevel(children [][]byte) ([][]byte, error)
}

// parallelHashThreshold is the leaf count from which BuildFromHeight
// spreads leaf digesting across all CPUs. Below it the goroutine overhead
// outweighs the hashing.
const parallelHashThreshold = 512

var (
	_ TreeHasher  = BatchHasher{}
	_ LevelHasher = BatchHasher{}
)

// BatchHasher is a SHA-256 TreeHasher that hashes whole internal levels
// through gohashtree's vectorized two-to-one compression. The zero value
// is ready to use.
//
// gohashtree only compresses 64-byte blocks, so internal nodes carry no
// prefix byte:
//
//	leaf     = SHA-256(SHA-256(LeafPrefix || data))
//	internal = SHA-256(left || right)
//
// Domain separation still holds: leaf preimages at the outer level are
// exactly 32 bytes while internal preimages are exactly 64, so no leaf
// digest can collide with an internal digest. Roots are not interchangeable
// with DefaultHasher roots; openings must be verified with the same hasher
// the tree was built with.
type BatchHasher struct{}

// Size returns the SHA-256 digest size in bytes.
func (BatchHasher) Size() int {
	return sha256.Size
}

// HashLeaf computes SHA-256(SHA-256(LeafPrefix || data)).
func (BatchHasher) HashLeaf(data []byte) []byte {
	prefixed := make([]byte, 0, 1+len(data))
	prefixed = append(prefixed, LeafPrefix)
	prefixed = append(prefixed, data...)
	inner := sha256.Sum256(prefixed)
	outer := sha256.Sum256(inner[:])
	return outer[:]
}

// HashInternal computes SHA-256(left || right) over exactly 64 bytes of
// child digests.
func (BatchHasher) HashInternal(left, right []byte) []byte {
	var block [2 * sha256.Size]byte
	copy(block[:sha256.Size], left)
	copy(block[sha256.Size:], right)
	digest := sha256.Sum256(block[:])
	return digest[:]
}

// HashInternalLevel digests a full level of sibling pairs in one
// gohashtree call.
func (b BatchHasher) HashInternalLevel(children [][]byte) ([][]byte, error) {
	if len(children) == 0 {
		return nil, nil
	}
	if len(children)%2 != 0 {
		return nil, fmt.Errorf("cannot hash level: got %d children, want an even number", len(children))
	}

	chunks := make([][32]byte, len(children))
	for i, child := range children {
		if len(child) != sha256.Size {
			return nil, fmt.Errorf("cannot hash level: child %d is %d bytes, want %d", i, len(child), sha256.Size)
		}
		copy(chunks[i][:], child)
	}

	digests := make([][32]byte, len(children)/2)
	if err := gohashtree.Hash(digests, chunks); err != nil {
		return nil, fmt.Errorf("gohashtree: %w", err)
	}

	out := make([][]byte, len(digests))
	for i := range digests {
		out[i] = digests[i][:]
	}
	return out, nil
}

// hashLeafRange digests the raw values in t.leaves[start:end] into their
// arena slots.
func (t *Tree) hashLeafRange(start, end int) {
	for i := start; i < end; i++ {
		copy(t.nodes[t.firstLeaf+i], t.treeHasher.HashLeaf(t.leaves[i]))
	}
}

// hashLeavesParallel splits the first n leaves into contiguous chunks and
// digests them across all CPUs. Leaf slots are disjoint, so the workers
// never write the same bytes.
func (t *Tree) hashLeavesParallel(n int) {
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			t.hashLeafRange(start, end)
		}(start, end)
	}
	wg.Wait()
}
