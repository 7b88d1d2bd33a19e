// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package hashchain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
)

// Algorithm is the digest algorithm tag recorded in manifest integrity
// blocks. There is exactly one supported algorithm; bundles issued with
// a different tag cannot be verified by this implementation.
const Algorithm = "sha256"

// Hash computes the SHA256 digest of data and returns its canonical
// 64-character lowercase hex encoding.
func Hash(data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}

// HashString computes the SHA256 digest of the UTF-8 bytes of text.
func HashString(text string) string {
	return Hash([]byte(text))
}

// ParseDigest parses a hex-encoded SHA256 digest string into a 32-byte
// array. Returns an error if the string is not a valid 64-character hex
// encoding of 32 bytes. Leading and trailing whitespace is rejected, not
// trimmed: digests are machine-generated and a stray space indicates a
// corrupted source.
func ParseDigest(hexString string) ([32]byte, error) {
	var digest [32]byte
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing hash digest: %w", err)
	}
	if len(decoded) != 32 {
		return digest, fmt.Errorf("hash digest is %d bytes, want 32", len(decoded))
	}
	copy(digest[:], decoded)
	return digest, nil
}

// FormatDigest returns the canonical hex encoding of a raw 32-byte
// digest. Inverse of [ParseDigest].
func FormatDigest(digest [32]byte) string {
	return hex.EncodeToString(digest[:])
}

// MerkleRoot combines a set of leaf digests into a single root digest.
//
// Leaves are hex-encoded SHA256 digests. They are sorted
// lexicographically before tree construction so that the same multiset
// of leaves always produces the same root. Zero leaves yield
// Hash(nil); a single leaf is returned unchanged. Otherwise adjacent
// leaves are paired (an odd count duplicates the last leaf) and each
// pair is hashed over the concatenated raw child digests, level by
// level, until one digest remains.
func MerkleRoot(leaves []string) (string, error) {
	if len(leaves) == 0 {
		return Hash(nil), nil
	}

	sorted := make([]string, len(leaves))
	copy(sorted, leaves)
	sortDigests(sorted)

	if len(sorted) == 1 {
		if _, err := ParseDigest(sorted[0]); err != nil {
			return "", fmt.Errorf("invalid leaf hash: %w", err)
		}
		return strings.ToLower(sorted[0]), nil
	}

	level := make([][32]byte, 0, len(sorted))
	for _, leaf := range sorted {
		digest, err := ParseDigest(leaf)
		if err != nil {
			return "", fmt.Errorf("invalid leaf hash: %w", err)
		}
		level = append(level, digest)
	}

	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			var pair [64]byte
			copy(pair[:32], left[:])
			copy(pair[32:], right[:])
			next = append(next, sha256.Sum256(pair[:]))
		}
		level = next
	}

	return FormatDigest(level[0]), nil
}

// sortDigests lowercases and sorts hex digest strings in place. The
// ordering contract is plain byte comparison of the lowercase hex text.
func sortDigests(digests []string) {
	for i := range digests {
		digests[i] = strings.ToLower(digests[i])
	}
	slices.Sort(digests)
}
