// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

package hashchain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
)

func TestHashKnownValue(t *testing.T) {
	// SHA256("") is a published constant; anything else indicates the
	// digest primitive itself is broken.
	got := Hash(nil)
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got != want {
		t.Errorf("Hash(nil) = %s, want %s", got, want)
	}
}

func TestHashStringFormat(t *testing.T) {
	got := HashString("Patient John Doe, SSN 123-45-6789")
	if len(got) != 64 {
		t.Fatalf("digest length = %d, want 64", len(got))
	}
	if got != strings.ToLower(got) {
		t.Errorf("digest is not lowercase: %s", got)
	}
	if _, err := hex.DecodeString(got); err != nil {
		t.Errorf("digest is not valid hex: %v", err)
	}
}

func TestParseDigestRoundTrip(t *testing.T) {
	original := HashString("round trip")
	digest, err := ParseDigest(original)
	if err != nil {
		t.Fatalf("ParseDigest: %v", err)
	}
	if FormatDigest(digest) != original {
		t.Errorf("FormatDigest(ParseDigest(h)) = %s, want %s", FormatDigest(digest), original)
	}
}

func TestParseDigestRejectsBadInput(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"short", "abcd"},
		{"odd length", HashString("x")[:63]},
		{"not hex", strings.Repeat("zz", 32)},
		{"whitespace", " " + HashString("x")},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := ParseDigest(testCase.input); err == nil {
				t.Errorf("ParseDigest(%q) should fail", testCase.input)
			}
		})
	}
}

func TestMerkleRootEmpty(t *testing.T) {
	got, err := MerkleRoot(nil)
	if err != nil {
		t.Fatalf("MerkleRoot: %v", err)
	}
	if got != Hash(nil) {
		t.Errorf("MerkleRoot(nil) = %s, want Hash(nil) = %s", got, Hash(nil))
	}
}

func TestMerkleRootSingleLeaf(t *testing.T) {
	leaf := HashString("only leaf")
	got, err := MerkleRoot([]string{leaf})
	if err != nil {
		t.Fatalf("MerkleRoot: %v", err)
	}
	if got != leaf {
		t.Errorf("MerkleRoot([x]) = %s, want the leaf unchanged %s", got, leaf)
	}
}

// pairHash reproduces the parent-node construction independently of
// MerkleRoot: sha256 over the two concatenated raw 32-byte digests.
func pairHash(t *testing.T, left, right string) string {
	t.Helper()
	leftRaw, err := ParseDigest(left)
	if err != nil {
		t.Fatalf("ParseDigest(%q): %v", left, err)
	}
	rightRaw, err := ParseDigest(right)
	if err != nil {
		t.Fatalf("ParseDigest(%q): %v", right, err)
	}
	combined := append(leftRaw[:], rightRaw[:]...)
	digest := sha256.Sum256(combined)
	return hex.EncodeToString(digest[:])
}

func TestMerkleRootTwoLeaves(t *testing.T) {
	a := HashString("a")
	b := HashString("b")

	got, err := MerkleRoot([]string{a, b})
	if err != nil {
		t.Fatalf("MerkleRoot: %v", err)
	}

	// Expected root pairs the leaves in sorted order.
	left, right := a, b
	if right < left {
		left, right = right, left
	}
	want := pairHash(t, left, right)
	if got != want {
		t.Errorf("MerkleRoot([a,b]) = %s, want %s", got, want)
	}
}

func TestMerkleRootOddLeafDuplication(t *testing.T) {
	leaves := []string{HashString("a"), HashString("b"), HashString("c")}

	three, err := MerkleRoot(leaves)
	if err != nil {
		t.Fatalf("MerkleRoot(3 leaves): %v", err)
	}

	// Duplicating the last leaf after sorting must produce the same
	// root: [a,b,c] hashes as [a,b,c,c].
	sorted := make([]string, len(leaves))
	copy(sorted, leaves)
	sortDigests(sorted)
	four, err := MerkleRoot(append(sorted, sorted[2]))
	if err != nil {
		t.Fatalf("MerkleRoot(4 leaves): %v", err)
	}

	if three != four {
		t.Errorf("odd-leaf root %s != duplicated-last-leaf root %s", three, four)
	}
}

func TestMerkleRootOrderInvariant(t *testing.T) {
	leaves := []string{
		HashString("manifest"),
		HashString("certificate"),
		HashString("redacted"),
		HashString("policy"),
		HashString("instructions"),
	}

	forward, err := MerkleRoot(leaves)
	if err != nil {
		t.Fatalf("MerkleRoot(forward): %v", err)
	}

	reversed := make([]string, len(leaves))
	for i, leaf := range leaves {
		reversed[len(leaves)-1-i] = leaf
	}
	backward, err := MerkleRoot(reversed)
	if err != nil {
		t.Fatalf("MerkleRoot(reversed): %v", err)
	}

	if forward != backward {
		t.Errorf("root depends on leaf order: %s != %s", forward, backward)
	}
}

func TestMerkleRootUppercaseLeavesNormalized(t *testing.T) {
	leaf := HashString("case")
	lower, err := MerkleRoot([]string{leaf})
	if err != nil {
		t.Fatalf("MerkleRoot(lower): %v", err)
	}
	upper, err := MerkleRoot([]string{strings.ToUpper(leaf)})
	if err != nil {
		t.Fatalf("MerkleRoot(upper): %v", err)
	}
	if lower != upper {
		t.Errorf("MerkleRoot is case sensitive: %s != %s", lower, upper)
	}
}

func TestMerkleRootRejectsInvalidLeaf(t *testing.T) {
	if _, err := MerkleRoot([]string{"not-a-digest"}); err == nil {
		t.Error("MerkleRoot should reject a non-hex leaf")
	}
	if _, err := MerkleRoot([]string{HashString("ok"), "abcd"}); err == nil {
		t.Error("MerkleRoot should reject a short leaf")
	}
}

func TestMerkleRootDoesNotMutateInput(t *testing.T) {
	leaves := []string{HashString("z"), HashString("a")}
	original := make([]string, len(leaves))
	copy(original, leaves)

	if _, err := MerkleRoot(leaves); err != nil {
		t.Fatalf("MerkleRoot: %v", err)
	}

	for i := range leaves {
		if leaves[i] != original[i] {
			t.Errorf("MerkleRoot mutated leaves[%d]: %s -> %s", i, original[i], leaves[i])
		}
	}
}
