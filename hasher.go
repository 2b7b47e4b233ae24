package dmt

import (
	"crypto/sha256"
	"hash"
)

const (
	// LeafPrefix is the domain separation prefix hashed in front of raw
	// leaf data.
	LeafPrefix = 0

	// NodePrefix is the domain separation prefix hashed in front of the
	// concatenated child digests of an internal node.
	NodePrefix = 1
)

// TreeHasher is the hashing boundary of the tree. The tree never touches a
// hash primitive directly; it only calls these two entry points, so the
// primitive can be swapped without touching the tree logic (e.g. for a
// cheap stand-in under test).
//
// HashLeaf and HashInternal must be deterministic and must keep leaf and
// internal hashing in separate domains, so that no leaf value can
// reproduce an internal digest. Implementations must be safe for
// concurrent use; the tree digests leaves from multiple goroutines during
// large builds.
type TreeHasher interface {
	// HashLeaf digests one raw leaf value.
	HashLeaf(data []byte) []byte

	// HashInternal digests an internal node from its children. The
	// left/right order is fixed by tree position and is never swapped.
	HashInternal(left, right []byte) []byte

	// Size returns the digest size in bytes. All digests produced by the
	// hasher have exactly this size; it is a tree-wide constant.
	Size() int
}

var _ TreeHasher = (*DefaultHasher)(nil)

// DefaultHasher is a TreeHasher over an arbitrary base hash, with
// RFC 6962 style domain separation:
//
//	leaf     = H(LeafPrefix || data)
//	internal = H(NodePrefix || left || right)
//
// A fresh base hash instance is created per call, which keeps the hasher
// safe for concurrent use without locking.
type DefaultHasher struct {
	newHash func() hash.Hash
	size    int
}

// NewDefaultHasher returns a DefaultHasher minting base hash instances
// from newHash.
func NewDefaultHasher(newHash func() hash.Hash) *DefaultHasher {
	return &DefaultHasher{
		newHash: newHash,
		size:    newHash().Size(),
	}
}

// NewDefaultSha256Hasher returns a DefaultHasher backed by SHA-256.
func NewDefaultSha256Hasher() *DefaultHasher {
	return NewDefaultHasher(sha256.New)
}

// Size returns the digest size of the base hash in bytes.
func (d *DefaultHasher) Size() int {
	return d.size
}

// HashLeaf computes H(LeafPrefix || data).
func (d *DefaultHasher) HashLeaf(data []byte) []byte {
	h := d.newHash()
	prefixed := make([]byte, 0, 1+len(data))
	prefixed = append(prefixed, LeafPrefix)
	prefixed = append(prefixed, data...)
	//nolint:errcheck
	h.Write(prefixed)
	return h.Sum(nil)
}

// HashInternal computes H(NodePrefix || left || right).
func (d *DefaultHasher) HashInternal(left, right []byte) []byte {
	h := d.newHash()

	// Note a single Write seems a little faster than calling several
	// Write()s on the underlying hash function (see:
	// https://github.com/google/trillian/pull/1503):
	prefixed := make([]byte, 0, 1+len(left)+len(right))
	prefixed = append(prefixed, NodePrefix)
	prefixed = append(prefixed, left...)
	prefixed = append(prefixed, right...)
	//nolint:errcheck
	h.Write(prefixed)
	return h.Sum(nil)
}
