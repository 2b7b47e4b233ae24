// Package dmt implements a dense Merkle tree: a complete binary hash tree
// of fixed height over a bounded, index-addressed array of data leaves.
//
// The tree is dense: all 2^height leaf slots exist from construction on,
// with unset slots holding a documented default value, so independently
// built trees over the same logical leaves commit to the same root.
// All digests live in one contiguous level-order arena; there are no
// pointer-linked nodes.
//
// Writes follow a two-phase protocol. [*Tree.Insert] (or [*Tree.Push])
// overwrites a single leaf without touching internal nodes, and a separate
// update call ([*Tree.UpdateInternalNodes] for one leaf's ancestor path,
// [*Tree.UpdateAllInternalNodes] for everything written since the last
// update) restores the internal digests. This lets callers batch many leaf
// writes and pay the recompute once per path. Reads between the two phases
// return the pre-write digests; [*Tree.Set] performs both phases for
// callers that do not batch.
//
// A Tree is not safe for concurrent use. Read-only operations may run
// concurrently with each other, but any Insert/Push/Update sequence needs
// exclusive access, including over the reads in between.
//
// Inclusion proofs are produced as [Opening] values, which are
// self-contained: they verify against a root digest with no access to the
// tree that produced them.
package dmt
