package dmt

import (
	"bytes"
	"crypto"
	"crypto/sha512"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualRoot recomputes the root of a dense tree the slow recursive way,
// as a reference for the arena-based implementation. Missing leaves are
// treated as empty.
func manualRoot(th TreeHasher, height int, leaves [][]byte) []byte {
	if height == 0 {
		var leaf []byte
		if len(leaves) > 0 {
			leaf = leaves[0]
		}
		return th.HashLeaf(leaf)
	}
	half := 1 << (height - 1)
	left, right := leaves, [][]byte(nil)
	if len(leaves) > half {
		left, right = leaves[:half], leaves[half:]
	}
	return th.HashInternal(manualRoot(th, height-1, left), manualRoot(th, height-1, right))
}

func TestBuildFromHeightPadsMissingLeaves(t *testing.T) {
	// Height 2 with leaves "a" and "b": the two right slots hold the
	// empty padding value, so the right subtree hashes to
	// H(1, H(0, ""), H(0, "")).
	tree, err := BuildFromHeight(defaultHasher, 2, [][]byte{[]byte("a"), []byte("b")})
	require.NoError(t, err)

	hashA := sum(crypto.SHA256, []byte{LeafPrefix}, []byte("a"))
	hashB := sum(crypto.SHA256, []byte{LeafPrefix}, []byte("b"))
	hashPad := sum(crypto.SHA256, []byte{LeafPrefix})
	leftSubtree := sum(crypto.SHA256, []byte{NodePrefix}, hashA, hashB)
	rightSubtree := sum(crypto.SHA256, []byte{NodePrefix}, hashPad, hashPad)
	wantRoot := sum(crypto.SHA256, []byte{NodePrefix}, leftSubtree, rightSubtree)

	assert.Equal(t, wantRoot, tree.Root())

	for _, paddedIdx := range []int{2, 3} {
		gotHash, err := tree.LeafHash(paddedIdx)
		require.NoError(t, err)
		assert.Equal(t, hashPad, gotHash)

		gotData, err := tree.LeafData(paddedIdx)
		require.NoError(t, err)
		assert.Empty(t, gotData)
	}
}

func TestBuildFromHeight(t *testing.T) {
	tests := []struct {
		name      string
		height    int
		numLeaves int
	}{
		{"height 0 empty", 0, 0},
		{"height 0 full", 0, 1},
		{"height 1 half", 1, 1},
		{"height 1 full", 1, 2},
		{"height 3 partial", 3, 5},
		{"height 3 full", 3, 8},
		{"height 6 empty", 6, 0},
		{"height 6 partial", 6, 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leaves := makeLeaves(tt.numLeaves)
			tree, err := BuildFromHeight(defaultHasher, tt.height, leaves)
			require.NoError(t, err)

			assert.Equal(t, tt.height, tree.Height())
			assert.Equal(t, 1<<tt.height, tree.Capacity())
			assert.Equal(t, tt.numLeaves, tree.Len())
			assert.False(t, tree.Dirty())
			assert.Equal(t, manualRoot(defaultHasher, tt.height, leaves), tree.Root())
		})
	}

	t.Run("sha512 backed tree", func(t *testing.T) {
		hasher := NewDefaultHasher(sha512.New)
		leaves := makeLeaves(3)
		tree, err := BuildFromHeight(hasher, 2, leaves)
		require.NoError(t, err)
		assert.Len(t, tree.Root(), sha512.Size)
		assert.Equal(t, manualRoot(hasher, 2, leaves), tree.Root())
	})
}

func TestBuildFromHeightErrors(t *testing.T) {
	tests := []struct {
		name      string
		height    int
		numLeaves int
		opts      []Option
		wantErr   error
	}{
		{"negative height", -1, 0, nil, ErrInvalidHeight},
		{"height above default max", DefaultMaxHeight + 1, 0, nil, ErrInvalidHeight},
		{"height above lowered max", 5, 0, []Option{MaxHeight(4)}, ErrInvalidHeight},
		{"too many leaves", 1, 3, nil, ErrTooManyLeaves},
		{"too many leaves height 0", 0, 2, nil, ErrTooManyLeaves},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFromHeight(defaultHasher, tt.height, makeLeaves(tt.numLeaves), tt.opts...)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("raised max admits taller trees", func(t *testing.T) {
		_, err := BuildFromHeight(defaultHasher, 12, nil, MaxHeight(12))
		require.NoError(t, err)
	})
}

func TestBuildDeterminism(t *testing.T) {
	leaves := makeLeaves(11)
	first, err := BuildFromHeight(defaultHasher, 4, leaves)
	require.NoError(t, err)
	second, err := BuildFromHeight(defaultHasher, 4, leaves)
	require.NoError(t, err)
	assert.Equal(t, first.Root(), second.Root())
}

func TestInsertDefersAncestorUpdates(t *testing.T) {
	tree, err := BuildFromHeight(defaultHasher, 2, makeLeaves(4))
	require.NoError(t, err)
	rootBefore := tree.Root()

	require.NoError(t, tree.Insert(1, []byte("changed")))

	// The leaf digest changes immediately, the root does not.
	leafHash, err := tree.LeafHash(1)
	require.NoError(t, err)
	assert.Equal(t, defaultHasher.HashLeaf([]byte("changed")), leafHash)
	assert.Equal(t, rootBefore, tree.Root())
	assert.True(t, tree.Dirty())

	require.NoError(t, tree.UpdateInternalNodes(1))
	assert.False(t, tree.Dirty())

	rebuilt, err := BuildFromHeight(defaultHasher, 2, [][]byte{
		[]byte("leaf-0"), []byte("changed"), []byte("leaf-2"), []byte("leaf-3"),
	})
	require.NoError(t, err)
	assert.Equal(t, rebuilt.Root(), tree.Root())
}

func TestUpdateInternalNodesIsPerPath(t *testing.T) {
	tree, err := BuildFromHeight(defaultHasher, 2, makeLeaves(4))
	require.NoError(t, err)

	require.NoError(t, tree.Insert(0, []byte("left write")))
	require.NoError(t, tree.Insert(3, []byte("right write")))

	// Updating leaf 0's path folds in the left write only; the right
	// subtree digest is still the old one.
	require.NoError(t, tree.UpdateInternalNodes(0))
	assert.True(t, tree.Dirty())

	fullRebuild, err := BuildFromHeight(defaultHasher, 2, [][]byte{
		[]byte("left write"), []byte("leaf-1"), []byte("leaf-2"), []byte("right write"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, fullRebuild.Root(), tree.Root())

	require.NoError(t, tree.UpdateInternalNodes(3))
	assert.False(t, tree.Dirty())
	assert.Equal(t, fullRebuild.Root(), tree.Root())
}

func TestUpdateInternalNodesInterleavedWithBatch(t *testing.T) {
	// Folding in one leaf's path while another write is still pending
	// recomputes the shared ancestors over a stale subtree. Those
	// ancestors must stay marked, or the closing batch update would skip
	// them and leave a wrong root behind a clean Dirty().
	tree, err := BuildFromHeight(defaultHasher, 2, makeLeaves(4))
	require.NoError(t, err)

	require.NoError(t, tree.Insert(0, []byte("w0")))
	require.NoError(t, tree.Insert(3, []byte("w3")))
	require.NoError(t, tree.UpdateInternalNodes(0))
	assert.True(t, tree.Dirty())

	tree.UpdateAllInternalNodes()
	assert.False(t, tree.Dirty())

	fresh, err := BuildFromHeight(defaultHasher, 2, [][]byte{
		[]byte("w0"), []byte("leaf-1"), []byte("leaf-2"), []byte("w3"),
	})
	require.NoError(t, err)
	assert.Equal(t, fresh.Root(), tree.Root())

	// Same shape on a deeper tree: batch four writes, then fold the paths
	// one by one. Shared ancestors must stay stale until the last path
	// below them is folded in.
	deep, err := BuildFromHeight(defaultHasher, 4, makeLeaves(16))
	require.NoError(t, err)
	want := makeLeaves(16)
	writes := []int{15, 0, 8, 6}
	for _, idx := range writes {
		data := []byte(fmt.Sprintf("w%d", idx))
		want[idx] = data
		require.NoError(t, deep.Insert(idx, data))
	}
	for i, idx := range writes {
		assert.True(t, deep.Dirty(), "tree clean with %d paths pending", len(writes)-i)
		require.NoError(t, deep.UpdateInternalNodes(idx))
	}
	assert.False(t, deep.Dirty())
	assert.Equal(t, manualRoot(defaultHasher, 4, want), deep.Root())
}

func TestUpdateInternalNodesOnCleanTree(t *testing.T) {
	tree, err := BuildFromHeight(defaultHasher, 3, makeLeaves(8))
	require.NoError(t, err)
	root := tree.Root()

	require.NoError(t, tree.UpdateInternalNodes(5))
	tree.UpdateAllInternalNodes()

	assert.Equal(t, root, tree.Root())
	assert.False(t, tree.Dirty())
}

func TestUpdateAllInternalNodes(t *testing.T) {
	const height = 4
	tree, err := BuildFromHeight(defaultHasher, height, nil)
	require.NoError(t, err)

	leaves := makeLeaves(1 << height)
	for i, leaf := range leaves {
		require.NoError(t, tree.Insert(i, leaf))
	}
	assert.True(t, tree.Dirty())

	tree.UpdateAllInternalNodes()
	assert.False(t, tree.Dirty())
	assert.Equal(t, manualRoot(defaultHasher, height, leaves), tree.Root())

	// A second pass has nothing to do.
	root := tree.Root()
	tree.UpdateAllInternalNodes()
	assert.Equal(t, root, tree.Root())
}

func TestUpdateAllInternalNodesSparseWrites(t *testing.T) {
	const height = 5
	initial := makeLeaves(1 << height)
	tree, err := BuildFromHeight(defaultHasher, height, initial)
	require.NoError(t, err)

	want := make([][]byte, len(initial))
	copy(want, initial)
	for _, idx := range []int{0, 7, 8, 31, 16} {
		data := []byte(fmt.Sprintf("rewrite-%d", idx))
		want[idx] = data
		require.NoError(t, tree.Insert(idx, data))
	}

	tree.UpdateAllInternalNodes()
	assert.Equal(t, manualRoot(defaultHasher, height, want), tree.Root())
}

func TestPush(t *testing.T) {
	tree, err := BuildFromHeight(defaultHasher, 2, [][]byte{[]byte("first")})
	require.NoError(t, err)
	require.Equal(t, 1, tree.Len())

	for i, data := range [][]byte{[]byte("second"), []byte("third"), []byte("fourth")} {
		require.NoError(t, tree.Push(data))
		require.Equal(t, i+2, tree.Len())
	}

	err = tree.Push([]byte("overflow"))
	require.ErrorIs(t, err, ErrTooManyLeaves)
	assert.Equal(t, 4, tree.Len())

	tree.UpdateAllInternalNodes()
	assert.Equal(t, manualRoot(defaultHasher, 2, [][]byte{
		[]byte("first"), []byte("second"), []byte("third"), []byte("fourth"),
	}), tree.Root())
}

func TestPushIgnoresInsertWrites(t *testing.T) {
	tree, err := BuildFromHeight(defaultHasher, 2, nil)
	require.NoError(t, err)

	// Insert does not move the append cursor, so the next Push overwrites
	// the inserted slot.
	require.NoError(t, tree.Insert(0, []byte("inserted")))
	assert.Equal(t, 0, tree.Len())

	require.NoError(t, tree.Push([]byte("pushed")))
	assert.Equal(t, 1, tree.Len())

	data, err := tree.LeafData(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("pushed"), data)
}

func TestSet(t *testing.T) {
	tree, err := BuildFromHeight(defaultHasher, 3, makeLeaves(8))
	require.NoError(t, err)

	require.NoError(t, tree.Set(5, []byte("direct write")))
	assert.False(t, tree.Dirty())

	viaTwoPhase, err := BuildFromHeight(defaultHasher, 3, makeLeaves(8))
	require.NoError(t, err)
	require.NoError(t, viaTwoPhase.Insert(5, []byte("direct write")))
	require.NoError(t, viaTwoPhase.UpdateInternalNodes(5))

	assert.Equal(t, viaTwoPhase.Root(), tree.Root())
}

func TestIndexOutOfBounds(t *testing.T) {
	tree, err := BuildFromHeight(defaultHasher, 2, makeLeaves(4))
	require.NoError(t, err)

	ops := []struct {
		name string
		op   func(index int) error
	}{
		{"Insert", func(index int) error { return tree.Insert(index, []byte("x")) }},
		{"UpdateInternalNodes", tree.UpdateInternalNodes},
		{"Set", func(index int) error { return tree.Set(index, []byte("x")) }},
		{"LeafHash", func(index int) error { _, err := tree.LeafHash(index); return err }},
		{"LeafData", func(index int) error { _, err := tree.LeafData(index); return err }},
		{"Open", func(index int) error { _, err := tree.Open(index); return err }},
	}
	for _, tt := range ops {
		t.Run(tt.name, func(t *testing.T) {
			for _, index := range []int{-1, tree.Capacity(), tree.Capacity() + 17} {
				require.ErrorIs(t, tt.op(index), ErrIndexOutOfBounds, "index %d", index)
			}
			require.NoError(t, tt.op(0))
			require.NoError(t, tt.op(tree.Capacity()-1))
		})
	}

	t.Run("Node", func(t *testing.T) {
		_, err := tree.Node(-1)
		require.ErrorIs(t, err, ErrIndexOutOfBounds)
		_, err = tree.Node(2*tree.Capacity() - 1)
		require.ErrorIs(t, err, ErrIndexOutOfBounds)
	})
}

func TestNodeAccessor(t *testing.T) {
	tree, err := BuildFromHeight(defaultHasher, 2, makeLeaves(4))
	require.NoError(t, err)

	root, err := tree.Node(0)
	require.NoError(t, err)
	assert.Equal(t, 0, root.Index)
	assert.False(t, root.Leaf)
	assert.Nil(t, root.Data)
	assert.Equal(t, tree.Root(), root.Digest)

	leaf, err := tree.Node(3)
	require.NoError(t, err)
	assert.True(t, leaf.Leaf)
	assert.Equal(t, []byte("leaf-0"), leaf.Data)
	wantHash, err := tree.LeafHash(0)
	require.NoError(t, err)
	assert.Equal(t, wantHash, leaf.Digest)

	// Children of the root hash up to the root digest.
	left, err := tree.Node(1)
	require.NoError(t, err)
	right, err := tree.Node(2)
	require.NoError(t, err)
	assert.Equal(t, tree.Root(), defaultHasher.HashInternal(left.Digest, right.Digest))
}

func TestReturnedDigestsAreCopies(t *testing.T) {
	tree, err := BuildFromHeight(defaultHasher, 1, makeLeaves(2))
	require.NoError(t, err)

	root := tree.Root()
	root[0] ^= 0xFF
	assert.NotEqual(t, root, tree.Root())

	leafHash, err := tree.LeafHash(0)
	require.NoError(t, err)
	leafHash[0] ^= 0xFF
	unchanged, err := tree.LeafHash(0)
	require.NoError(t, err)
	assert.NotEqual(t, leafHash, unchanged)

	leafData, err := tree.LeafData(0)
	require.NoError(t, err)
	leafData[0] ^= 0xFF
	unchangedData, err := tree.LeafData(0)
	require.NoError(t, err)
	assert.NotEqual(t, leafData, unchangedData)
}

func TestInsertCopiesData(t *testing.T) {
	tree, err := BuildFromHeight(defaultHasher, 1, nil)
	require.NoError(t, err)

	data := []byte("mutable")
	require.NoError(t, tree.Set(0, data))
	data[0] = 'X'

	stored, err := tree.LeafData(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("mutable"), stored)
}

func TestNodeVisitor(t *testing.T) {
	var leafVisits, internalVisits int
	visitor := func(digest []byte, children ...[]byte) {
		require.Len(t, digest, defaultHasher.Size())
		switch len(children) {
		case 1:
			leafVisits++
		case 2:
			internalVisits++
		default:
			t.Fatalf("unexpected number of children: %d", len(children))
		}
	}

	tree, err := BuildFromHeight(defaultHasher, 2, makeLeaves(3), NodeVisitor(visitor))
	require.NoError(t, err)
	assert.Equal(t, 4, leafVisits)
	assert.Equal(t, 3, internalVisits)

	leafVisits, internalVisits = 0, 0
	require.NoError(t, tree.Set(2, []byte("rewrite")))
	assert.Equal(t, 1, leafVisits)
	assert.Equal(t, 2, internalVisits)
}

func TestPaddingOption(t *testing.T) {
	pad := []byte("reserved")
	tree, err := BuildFromHeight(defaultHasher, 2, [][]byte{[]byte("a")}, Padding(pad))
	require.NoError(t, err)

	explicit, err := BuildFromHeight(defaultHasher, 2, [][]byte{[]byte("a"), pad, pad, pad})
	require.NoError(t, err)
	assert.Equal(t, explicit.Root(), tree.Root())

	data, err := tree.LeafData(3)
	require.NoError(t, err)
	assert.Equal(t, pad, data)
}

func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { MaxHeight(-1) })
	require.Panics(t, func() { MaxHeight(31) })
	require.NotPanics(t, func() { MaxHeight(30) })
}

func TestHeightZeroTree(t *testing.T) {
	tree, err := BuildFromHeight(defaultHasher, 0, [][]byte{[]byte("only")})
	require.NoError(t, err)

	assert.Equal(t, defaultHasher.HashLeaf([]byte("only")), tree.Root())

	// The single leaf is the root; updating its path touches no internal
	// nodes but the leaf digest itself still changes on insert.
	require.NoError(t, tree.Insert(0, []byte("replaced")))
	assert.False(t, tree.Dirty())
	assert.Equal(t, defaultHasher.HashLeaf([]byte("replaced")), tree.Root())
}

func makeLeaves(n int) [][]byte {
	if n == 0 {
		return nil
	}
	leaves := make([][]byte, n)
	for i := range leaves {
		leaves[i] = []byte(fmt.Sprintf("leaf-%d", i))
	}
	return leaves
}

func TestLeafDataRoundTrip(t *testing.T) {
	leaves := [][]byte{[]byte("a"), {}, []byte("long leaf value with some bytes"), {0x00, 0x01}}
	tree, err := BuildFromHeight(defaultHasher, 2, leaves)
	require.NoError(t, err)

	for i, want := range leaves {
		got, err := tree.LeafData(i)
		require.NoError(t, err)
		if !bytes.Equal(got, want) {
			t.Errorf("LeafData(%d) = %q, want %q", i, got, want)
		}
	}
}
