package dmt

import "fmt"

const (
	// DefaultMaxHeight is the tallest tree BuildFromHeight accepts unless
	// raised via the MaxHeight option.
	DefaultMaxHeight = 20

	// maxSupportedHeight bounds the MaxHeight option itself. A full tree
	// of this height already holds 2^31-1 nodes; anything taller does not
	// fit the dense in-memory layout.
	maxSupportedHeight = 30
)

// NodeVisitorFn is called for every node digest the tree computes, with
// the digest followed by the data it was computed over: the raw leaf value
// for leaves, the two child digests for internal nodes. The arguments
// alias tree-owned memory and must not be retained or modified.
type NodeVisitorFn = func(digest []byte, children ...[]byte)

// Options configure a Tree. They are set through the functional Option
// setters passed to BuildFromHeight.
type Options struct {
	MaxHeight   int
	Padding     []byte
	NodeVisitor NodeVisitorFn
}

type Option func(*Options)

// MaxHeight raises (or lowers) the height bound enforced by
// BuildFromHeight. It panics if max is negative or exceeds the supported
// maximum of 30.
func MaxHeight(max int) Option {
	if max < 0 || max > maxSupportedHeight {
		panic(fmt.Sprintf("Got invalid max height %d. Expected int between 0 and %d.", max, maxSupportedHeight))
	}
	return func(opts *Options) {
		opts.MaxHeight = max
	}
}

// Padding sets the raw leaf value used for every slot not covered by the
// initial leaves. It defaults to the empty value. The data is copied.
func Padding(data []byte) Option {
	padding := append([]byte(nil), data...)
	return func(opts *Options) {
		opts.Padding = padding
	}
}

// NodeVisitor sets a callback invoked on every digest the tree computes,
// e.g. to persist nodes as they are produced. Visits happen on the
// calling goroutine; setting a visitor disables parallel leaf digesting.
func NodeVisitor(visitor NodeVisitorFn) Option {
	return func(opts *Options) {
		opts.NodeVisitor = visitor
	}
}
