// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

// Package hashchain provides the SHA256 hashing and Merkle tree
// primitives underlying every trust bundle and anchor proof.
//
// Every digest in the system is a 64-character lowercase hex encoding
// of a 32-byte SHA256 output. Two contracts in this package are
// load-bearing for compatibility with previously issued bundles and
// must never change:
//
//   - [MerkleRoot] sorts its leaves lexicographically before building
//     the tree, so the root is invariant to the order components were
//     added.
//   - A level with an odd number of nodes pairs the last node with a
//     duplicate of itself. Parent nodes hash the concatenation of the
//     two raw 32-byte child digests (a 64-byte input), not their hex
//     text.
//
// This package has no dependencies on other Veridact packages.
package hashchain
