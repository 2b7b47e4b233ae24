package dmt

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

var (
	// ErrInvalidHeight is returned when a tree height is negative or
	// exceeds the configured maximum.
	ErrInvalidHeight = errors.New("tree height outside the supported range")

	// ErrTooManyLeaves is returned when more leaves are supplied or pushed
	// than the tree has capacity for.
	ErrTooManyLeaves = errors.New("leaf count exceeds tree capacity")

	// ErrIndexOutOfBounds is returned when a leaf or node index falls
	// outside the tree.
	ErrIndexOutOfBounds = errors.New("index out of bounds")
)

// Tree is a dense Merkle tree: a complete binary hash tree of fixed height
// whose 2^height leaf slots are addressable by index from the moment the
// tree is built. All 2^(height+1)-1 node digests live in one contiguous
// level-order arena; the node at index i has its children at 2i+1 and
// 2i+2, and the leaves occupy the final 2^height slots.
//
// A Tree is not safe for concurrent use.
type Tree struct {
	treeHasher TreeHasher

	height    int
	capacity  int // 1 << height
	firstLeaf int // capacity - 1, arena index of leaf 0

	// nodes holds one digest per tree node, each a fixed-size view into a
	// single backing allocation.
	nodes [][]byte

	// leaves keeps the raw value of every leaf slot so that openings can
	// carry the opened value and leaves can be read back.
	leaves [][]byte

	// length is the append cursor: the number of slots occupied by the
	// initial leaves plus everything pushed since. Insert does not move it.
	length int

	// stale marks internal arena indices whose digests predate the newest
	// leaf writes below them.
	stale *bitset.BitSet

	padding []byte
	visit   NodeVisitorFn
}

// BuildFromHeight builds a tree of the given height over the supplied
// leaves, filling the remaining slots with the padding value (empty unless
// overridden via Padding). Every node digest is computed before the tree
// is returned, so the tree starts clean.
//
// It returns ErrInvalidHeight if height is negative or exceeds the
// configured maximum, and ErrTooManyLeaves if the leaves do not fit. Leaf
// values are copied.
func BuildFromHeight(treeHasher TreeHasher, height int, leaves [][]byte, setters ...Option) (*Tree, error) {
	opts := &Options{
		MaxHeight: DefaultMaxHeight,
	}
	for _, setter := range setters {
		setter(opts)
	}

	if height < 0 || height > opts.MaxHeight {
		return nil, fmt.Errorf("%w: got %d, want a height in [0, %d]", ErrInvalidHeight, height, opts.MaxHeight)
	}
	capacity := 1 << height
	if len(leaves) > capacity {
		return nil, fmt.Errorf("%w: got %d leaves, want at most %d", ErrTooManyLeaves, len(leaves), capacity)
	}

	size := treeHasher.Size()
	numNodes := 2*capacity - 1
	arena := make([]byte, numNodes*size)
	nodes := make([][]byte, numNodes)
	for i := range nodes {
		nodes[i] = arena[i*size : (i+1)*size]
	}

	t := &Tree{
		treeHasher: treeHasher,
		height:     height,
		capacity:   capacity,
		firstLeaf:  capacity - 1,
		nodes:      nodes,
		leaves:     make([][]byte, capacity),
		length:     len(leaves),
		stale:      bitset.MustNew(uint(capacity - 1)),
		padding:    opts.Padding,
		visit:      opts.NodeVisitor,
	}

	for i, leaf := range leaves {
		t.leaves[i] = append([]byte(nil), leaf...)
	}
	for i := len(leaves); i < capacity; i++ {
		t.leaves[i] = t.padding
	}

	if len(leaves) >= parallelHashThreshold && t.visit == nil {
		t.hashLeavesParallel(len(leaves))
	} else {
		t.hashLeafRange(0, len(leaves))
	}
	if len(leaves) < capacity {
		// The padded tail shares a single digest.
		padDigest := treeHasher.HashLeaf(t.padding)
		for i := len(leaves); i < capacity; i++ {
			copy(t.nodes[t.firstLeaf+i], padDigest)
		}
	}
	if t.visit != nil {
		for i := 0; i < capacity; i++ {
			t.visit(t.nodes[t.firstLeaf+i], t.leaves[i])
		}
	}

	if err := t.computeInternalLevels(); err != nil {
		return nil, err
	}
	return t, nil
}

// computeInternalLevels recomputes every internal digest bottom-up. When
// the hasher batches levels, the children of level l are exactly the
// contiguous arena range of level l+1, so each level is a single call.
func (t *Tree) computeInternalLevels() error {
	levelHasher, batched := t.treeHasher.(LevelHasher)
	for level := t.height - 1; level >= 0; level-- {
		start, end := levelOffset(level), levelOffset(level+1)
		if batched {
			childEnd := levelOffset(level + 2)
			digests, err := levelHasher.HashInternalLevel(t.nodes[end:childEnd])
			if err != nil {
				return fmt.Errorf("failed to hash level %d: %w", level, err)
			}
			for i, digest := range digests {
				copy(t.nodes[start+i], digest)
			}
		} else {
			for i := start; i < end; i++ {
				copy(t.nodes[i], t.treeHasher.HashInternal(t.nodes[leftChildIdx(i)], t.nodes[rightChildIdx(i)]))
			}
		}
		if t.visit != nil {
			for i := start; i < end; i++ {
				t.visit(t.nodes[i], t.nodes[leftChildIdx(i)], t.nodes[rightChildIdx(i)])
			}
		}
	}
	return nil
}

// Insert writes data into the leaf slot at index and recomputes the leaf
// digest, but not the digests of the leaf's ancestors: those keep their
// previous value and are marked stale until UpdateInternalNodes or
// UpdateAllInternalNodes runs. The data is copied.
//
// It returns ErrIndexOutOfBounds if index does not address a leaf slot.
func (t *Tree) Insert(index int, data []byte) error {
	if index < 0 || index >= t.capacity {
		return fmt.Errorf("%w: got leaf index %d, want an index in [0, %d)", ErrIndexOutOfBounds, index, t.capacity)
	}

	t.leaves[index] = append([]byte(nil), data...)
	copy(t.nodes[t.firstLeaf+index], t.treeHasher.HashLeaf(data))
	if t.visit != nil {
		t.visit(t.nodes[t.firstLeaf+index], t.leaves[index])
	}

	for i := t.firstLeaf + index; i != 0; {
		i = parentIdx(i)
		t.stale.Set(uint(i))
	}
	return nil
}

// Push inserts data into the next free leaf slot, i.e. the slot after the
// last initial or pushed leaf. Like Insert it leaves the ancestors stale.
//
// It returns ErrTooManyLeaves once all slots are occupied.
func (t *Tree) Push(data []byte) error {
	if t.length >= t.capacity {
		return fmt.Errorf("%w: tree is full at %d leaves", ErrTooManyLeaves, t.capacity)
	}
	if err := t.Insert(t.length, data); err != nil {
		return err
	}
	t.length++
	return nil
}

// UpdateInternalNodes recomputes the digests on the path from the leaf at
// index up to the root, children before parents. After it returns, a write
// to that leaf is folded into every node on the path. Path nodes whose
// other subtree holds pending writes remain stale, so the tree stays
// dirty until those writes are folded in too. Recomputing an already
// clean path is a no-op in effect.
//
// It returns ErrIndexOutOfBounds if index does not address a leaf slot.
func (t *Tree) UpdateInternalNodes(index int) error {
	if index < 0 || index >= t.capacity {
		return fmt.Errorf("%w: got leaf index %d, want an index in [0, %d)", ErrIndexOutOfBounds, index, t.capacity)
	}
	for i := t.firstLeaf + index; i != 0; {
		i = parentIdx(i)
		t.recomputeNode(i)
	}
	return nil
}

// UpdateAllInternalNodes recomputes every stale internal digest, walking
// the levels bottom-up so children are always recomputed before their
// parents. After it returns the tree is clean: the root reflects every
// leaf write so far. Batching writes and then calling this once costs one
// ancestor-path recompute per distinct dirty subtree instead of one per
// write.
func (t *Tree) UpdateAllInternalNodes() {
	if t.stale.None() {
		return
	}
	for level := t.height - 1; level >= 0; level-- {
		end := uint(levelOffset(level + 1))
		for i, ok := t.stale.NextSet(uint(levelOffset(level))); ok && i < end; i, ok = t.stale.NextSet(i + 1) {
			t.recomputeNode(int(i))
		}
	}
}

// recomputeNode recomputes the digest of the internal node at arena index
// i from its children. The stale bit is cleared only when both children
// are clean: a recompute over a still-stale child folds an outdated
// digest into i, so i must stay marked for the next update round or
// UpdateAllInternalNodes would skip it.
func (t *Tree) recomputeNode(i int) {
	left, right := leftChildIdx(i), rightChildIdx(i)
	copy(t.nodes[i], t.treeHasher.HashInternal(t.nodes[left], t.nodes[right]))
	// Leaf children sit past the end of the bitset and read clean.
	if t.stale.Test(uint(left)) || t.stale.Test(uint(right)) {
		t.stale.Set(uint(i))
	} else {
		t.stale.Clear(uint(i))
	}
	if t.visit != nil {
		t.visit(t.nodes[i], t.nodes[left], t.nodes[right])
	}
}

// Set writes data into the leaf slot at index and immediately recomputes
// the leaf's ancestor path, combining Insert and UpdateInternalNodes into
// one clean step.
func (t *Tree) Set(index int, data []byte) error {
	if err := t.Insert(index, data); err != nil {
		return err
	}
	return t.UpdateInternalNodes(index)
}

// Root returns a copy of the root digest. If the tree is dirty the root
// reflects the last completed update round, not the pending leaf writes;
// call UpdateAllInternalNodes first for a root covering everything.
func (t *Tree) Root() []byte {
	return append([]byte(nil), t.nodes[0]...)
}

// LeafHash returns a copy of the digest of the leaf at index.
func (t *Tree) LeafHash(index int) ([]byte, error) {
	if index < 0 || index >= t.capacity {
		return nil, fmt.Errorf("%w: got leaf index %d, want an index in [0, %d)", ErrIndexOutOfBounds, index, t.capacity)
	}
	return append([]byte(nil), t.nodes[t.firstLeaf+index]...), nil
}

// LeafData returns a copy of the raw value of the leaf at index. Slots not
// written since the build hold the padding value.
func (t *Tree) LeafData(index int) ([]byte, error) {
	if index < 0 || index >= t.capacity {
		return nil, fmt.Errorf("%w: got leaf index %d, want an index in [0, %d)", ErrIndexOutOfBounds, index, t.capacity)
	}
	return append([]byte(nil), t.leaves[index]...), nil
}

// Node is one node of the tree as read back through Tree.Node: its
// level-order arena index, its digest and, for leaves, the raw value the
// digest covers.
type Node struct {
	Index  int
	Digest []byte
	Leaf   bool
	Data   []byte
}

// Node returns the node at the given level-order arena index, root at 0.
func (t *Tree) Node(index int) (Node, error) {
	if index < 0 || index >= len(t.nodes) {
		return Node{}, fmt.Errorf("%w: got node index %d, want an index in [0, %d)", ErrIndexOutOfBounds, index, len(t.nodes))
	}
	node := Node{
		Index:  index,
		Digest: append([]byte(nil), t.nodes[index]...),
		Leaf:   index >= t.firstLeaf,
	}
	if node.Leaf {
		node.Data = append([]byte(nil), t.leaves[index-t.firstLeaf]...)
	}
	return node, nil
}

// Height returns the tree height. A tree of height h has 2^h leaf slots.
func (t *Tree) Height() int {
	return t.height
}

// Capacity returns the number of leaf slots, 2^height.
func (t *Tree) Capacity() int {
	return t.capacity
}

// Len returns the append cursor: the number of leaf slots occupied by the
// initial leaves plus every Push since. Insert writes do not move it.
func (t *Tree) Len() int {
	return t.length
}

// Dirty reports whether any internal digest is stale, i.e. whether a leaf
// write has not yet been folded into its ancestors.
func (t *Tree) Dirty() bool {
	return t.stale.Any()
}

// Open builds the opening for the leaf at index: the raw leaf value plus
// the sibling digest and side for every level on the path to the root. The
// opening is self-contained; all bytes are copied out of the tree.
//
// Opening a dirty tree yields sibling digests of the last completed update
// round, which will not verify against a root computed after the pending
// writes are folded in.
func (t *Tree) Open(index int) (Opening, error) {
	if index < 0 || index >= t.capacity {
		return Opening{}, fmt.Errorf("%w: got leaf index %d, want an index in [0, %d)", ErrIndexOutOfBounds, index, t.capacity)
	}

	siblings := make([][]byte, 0, t.height)
	sides := make([]Side, 0, t.height)
	for i := t.firstLeaf + index; i != 0; i = parentIdx(i) {
		var sibling int
		if i%2 == 1 {
			// i is a left child, its sibling sits on the right.
			sibling = i + 1
			sides = append(sides, Right)
		} else {
			sibling = i - 1
			sides = append(sides, Left)
		}
		siblings = append(siblings, append([]byte(nil), t.nodes[sibling]...))
	}
	if t.height == 0 {
		siblings, sides = nil, nil
	}

	return NewOpening(index, append([]byte(nil), t.leaves[index]...), siblings, sides), nil
}

func parentIdx(i int) int {
	return (i - 1) / 2
}

func leftChildIdx(i int) int {
	return 2*i + 1
}

func rightChildIdx(i int) int {
	return 2*i + 2
}

// levelOffset returns the arena index of the first node of the given
// level, root level 0.
func levelOffset(level int) int {
	return 1<<level - 1
}
